package model

import (
	"fmt"

	"github.com/pkg/errors"
)

type Tag uint8

const (
	Neutral Tag = iota
	Unchanged
	Removed
	Added
)

func (t Tag) String() string {
	switch t {
	case Unchanged:
		return "unchanged"
	case Removed:
		return "removed"
	case Added:
		return "added"
	}
	return "neutral"
}

func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tag) UnmarshalText(text []byte) error {
	for _, c := range []Tag{Neutral, Unchanged, Removed, Added} {
		if c.String() == string(text) {
			*t = c
			return nil
		}
	}
	return errors.Errorf("unknown tag %q", text)
}

// NoStart is the start time given to an interval closed by a note_off that
// had no matching note_on.
const NoStart int64 = -1

// NoteKey is the part of an Interval that takes part in set membership.
type NoteKey struct {
	Channel int
	Pitch   int
	Start   int64
	End     int64
}

type Interval struct {
	Channel int   `json:"channel"`
	Pitch   int   `json:"pitch"`
	Start   int64 `json:"start"`
	End     int64 `json:"end"`
	Tag     Tag   `json:"tag"`
}

func (i Interval) Key() NoteKey {
	return NoteKey{Channel: i.Channel, Pitch: i.Pitch, Start: i.Start, End: i.End}
}

func (i Interval) WithTag(t Tag) Interval {
	i.Tag = t
	return i
}

func (i Interval) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d, %v)", i.Channel, i.Pitch, i.Start, i.End, i.Tag)
}

type AnomalyKind uint8

const (
	UnmatchedNoteOff AnomalyKind = iota + 1
	UnclosedNote
)

func (k AnomalyKind) String() string {
	switch k {
	case UnmatchedNoteOff:
		return "unmatched note_off"
	case UnclosedNote:
		return "unclosed note"
	}
	return "unknown"
}

func (k AnomalyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *AnomalyKind) UnmarshalText(text []byte) error {
	for _, c := range []AnomalyKind{UnmatchedNoteOff, UnclosedNote} {
		if c.String() == string(text) {
			*k = c
			return nil
		}
	}
	return errors.Errorf("unknown anomaly %q", text)
}

// Anomaly records malformed or unusual input found during extraction.
// Time is the tick at which it was detected.
type Anomaly struct {
	Kind    AnomalyKind `json:"kind"`
	Channel int         `json:"channel"`
	Pitch   int         `json:"pitch"`
	Time    int64       `json:"time"`
}
