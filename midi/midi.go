package midi

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/jsphweid/mididiff/constants"
	"github.com/jsphweid/mididiff/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(path string) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s = nil
			e = errors.Errorf("panic while parsing %v: %v", path, r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "error reading midi file")
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing midi file %v", path)
	}
	return res, nil
}

// Load reads and decodes the file at path.
func Load(path string) (*model.File, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(filepath.Base(path), s)
}

type timedEvent struct {
	absTicks int64
	event    model.Event
}

func toEvent(msg smf.Message) (model.Event, bool) {
	var channel, key, velocity uint8
	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		return model.Event{Channel: int(channel), Kind: model.NoteOn, Pitch: int(key)}, true
	case msg.GetNoteEnd(&channel, &key):
		return model.Event{Channel: int(channel), Kind: model.NoteOff, Pitch: int(key)}, true
	case gomidi.Message(msg).GetChannel(&channel):
		return model.Event{Channel: int(channel), Kind: model.Other}, true
	}
	return model.Event{}, false
}

func tempoFromBPM(bpm float64) uint32 {
	return uint32(math.Round(60000000 / bpm))
}

// Decode groups the channel messages of every track of s by channel. Each
// event's delta is re-expressed relative to the previous event on the same
// channel. Only the first tempo event is honoured.
func Decode(name string, s *smf.SMF) (*model.File, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.Errorf("%v: unsupported time format %v", name, s.TimeFormat)
	}

	f := &model.File{
		Name:         name,
		TicksPerBeat: ticks.Resolution(),
		Tempo:        constants.DefaultTempo,
	}

	var perChannel [constants.NumChannels][]timedEvent
	var tempoAt int64 = -1
	for _, track := range s.Tracks {
		var absTicks int64
		for _, evt := range track {
			absTicks += int64(evt.Delta)

			var bpm float64
			if evt.Message.GetMetaTempo(&bpm) {
				if bpm > 0 && (tempoAt < 0 || absTicks < tempoAt) {
					f.Tempo = tempoFromBPM(bpm)
					tempoAt = absTicks
				}
				continue
			}

			e, ok := toEvent(evt.Message)
			if !ok {
				continue
			}
			perChannel[e.Channel] = append(perChannel[e.Channel], timedEvent{absTicks, e})
		}
	}

	for ch, timed := range perChannel {
		sort.SliceStable(timed, func(i, j int) bool {
			return timed[i].absTicks < timed[j].absTicks
		})
		var last int64
		events := make([]model.Event, 0, len(timed))
		for _, te := range timed {
			e := te.event
			e.Delta = te.absTicks - last
			last = te.absTicks
			events = append(events, e)
		}
		f.Channels[ch] = events
	}
	return f, nil
}
