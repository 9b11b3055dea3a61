package model

import "github.com/jsphweid/mididiff/constants"

// File is a decoded MIDI file reduced to what the comparison needs.
type File struct {
	Name         string
	Channels     [constants.NumChannels][]Event
	TicksPerBeat uint16
	// microseconds per beat
	Tempo uint32
}

func (f *File) ChannelTicks(channel int) int64 {
	var total int64
	for _, e := range f.Channels[channel] {
		total += e.Delta
	}
	return total
}

func (f *File) TotalTicks() int64 {
	var max int64
	for ch := range f.Channels {
		if t := f.ChannelTicks(ch); t > max {
			max = t
		}
	}
	return max
}

// Seconds converts ticks to seconds at the file's static tempo.
func (f *File) Seconds(ticks int64) float64 {
	if f.TicksPerBeat == 0 {
		return 0
	}
	return float64(ticks) * float64(f.Tempo) / (1e6 * float64(f.TicksPerBeat))
}

// Ticks converts seconds to ticks at the file's static tempo.
func (f *File) Ticks(seconds float64) float64 {
	if f.Tempo == 0 {
		return 0
	}
	return seconds * 1e6 * float64(f.TicksPerBeat) / float64(f.Tempo)
}
