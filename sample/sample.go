package sample

import (
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Note is a sounding pitch between two absolute ticks.
type Note struct {
	Channel uint8
	Pitch   uint8
	Start   uint32
	End     uint32
}

type placed struct {
	tick uint32
	off  bool
	msg  midi.Message
}

// Create builds a single track file playing notes. Note offs sort before
// note ons on the same tick.
func Create(notes []Note, ticksPerBeat uint16, bpm float64) *smf.SMF {
	var msgs []placed
	for _, n := range notes {
		msgs = append(msgs,
			placed{n.Start, false, midi.NoteOn(n.Channel, n.Pitch, 100)},
			placed{n.End, true, midi.NoteOff(n.Channel, n.Pitch)},
		)
	}
	sort.SliceStable(msgs, func(i, j int) bool {
		if msgs[i].tick != msgs[j].tick {
			return msgs[i].tick < msgs[j].tick
		}
		return msgs[i].off && !msgs[j].off
	})

	var track smf.Track
	track.Add(0, smf.MetaTempo(bpm))
	var last uint32
	for _, m := range msgs {
		track.Add(m.tick-last, m.msg)
		last = m.tick
	}
	track.Close(0)

	res := smf.New()
	res.TimeFormat = smf.MetricTicks(ticksPerBeat)
	res.Add(track)
	return res
}

// Excerpt copies mf from ticksOffset onwards, keeping at most maxNotes note
// messages per track. Non note messages before the offset are moved to its
// start; everything after it keeps its tick relative to the offset.
func Excerpt(mf *smf.SMF, ticksOffset uint64, maxNotes int) *smf.SMF {
	res := smf.New()
	res.TimeFormat = mf.TimeFormat

	for _, track := range mf.Tracks {
		var newTrack smf.Track
		var absTicks uint64
		// absolute tick of the last event written to newTrack
		var written uint64
		var numNoteOnOff int
	TrackEventLoop:
		for _, evt := range track {
			absTicks += uint64(evt.Delta)
			isNote := evt.Message.Is(midi.NoteOnMsg) || evt.Message.Is(midi.NoteOffMsg)
			if absTicks < ticksOffset {
				if !isNote {
					evt.Delta = 0
					newTrack = append(newTrack, evt)
				}
				continue
			}

			at := absTicks - ticksOffset
			evt.Delta = uint32(at - written)
			written = at
			newTrack = append(newTrack, evt)
			if isNote {
				numNoteOnOff += 1
				if maxNotes > 0 && numNoteOnOff >= maxNotes {
					break TrackEventLoop
				}
			}
		}
		newTrack.Close(0)
		res.Add(newTrack)
	}

	return res
}

// Pair returns a demo old and new passage on channel 0 differing by one
// moved note and one added note.
func Pair() (old, new []Note) {
	old = []Note{
		{Channel: 0, Pitch: 60, Start: 0, End: 96},
		{Channel: 0, Pitch: 64, Start: 96, End: 192},
		{Channel: 0, Pitch: 67, Start: 192, End: 288},
		{Channel: 1, Pitch: 48, Start: 0, End: 384},
	}
	new = []Note{
		{Channel: 0, Pitch: 60, Start: 0, End: 96},
		{Channel: 0, Pitch: 65, Start: 96, End: 192},
		{Channel: 0, Pitch: 67, Start: 192, End: 288},
		{Channel: 0, Pitch: 72, Start: 288, End: 384},
		{Channel: 1, Pitch: 48, Start: 0, End: 384},
	}
	return old, new
}
