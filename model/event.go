package model

type EventKind uint8

const (
	Other EventKind = iota
	NoteOn
	NoteOff
)

func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "note_on"
	case NoteOff:
		return "note_off"
	}
	return "other"
}

// Event is one decoded channel message. Delta is the number of ticks since
// the previous event on the same channel.
type Event struct {
	Channel int
	Kind    EventKind
	Pitch   int
	Delta   int64
}
