package midi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/mididiff/model"
	"github.com/jsphweid/mididiff/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestDecodeSingleNote(t *testing.T) {
	s := sample.Create([]sample.Note{{Channel: 0, Pitch: 60, Start: 0, End: 4}}, 96, 120)
	f, err := Decode("one.mid", s)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("one.mid", f.Name)
	assert.Equal(uint16(96), f.TicksPerBeat)
	assert.Equal(uint32(500000), f.Tempo)
	assert.Equal([]model.Event{
		{Channel: 0, Kind: model.NoteOn, Pitch: 60, Delta: 0},
		{Channel: 0, Kind: model.NoteOff, Pitch: 60, Delta: 4},
	}, f.Channels[0])
	assert.Empty(f.Channels[1])
	assert.Equal(int64(4), f.TotalTicks())
}

func TestDecodeDeltasArePerChannel(t *testing.T) {
	s := sample.Create([]sample.Note{
		{Channel: 0, Pitch: 60, Start: 0, End: 10},
		{Channel: 3, Pitch: 40, Start: 5, End: 7},
	}, 96, 100)
	f, err := Decode("x.mid", s)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.Event{
		{Channel: 0, Kind: model.NoteOn, Pitch: 60, Delta: 0},
		{Channel: 0, Kind: model.NoteOff, Pitch: 60, Delta: 10},
	}, f.Channels[0])
	assert.Equal([]model.Event{
		{Channel: 3, Kind: model.NoteOn, Pitch: 40, Delta: 5},
		{Channel: 3, Kind: model.NoteOff, Pitch: 40, Delta: 2},
	}, f.Channels[3])
	assert.Equal(uint32(600000), f.Tempo)
}

func TestDecodeMergesTracks(t *testing.T) {
	var a, b smf.Track
	a.Add(0, gomidi.NoteOn(2, 60, 100))
	a.Add(8, gomidi.NoteOff(2, 60))
	a.Close(0)
	b.Add(4, gomidi.ControlChange(2, 7, 100))
	b.Add(0, gomidi.NoteOn(2, 64, 90))
	b.Add(2, gomidi.NoteOn(2, 64, 0))
	b.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)
	s.Add(a)
	s.Add(b)

	f, err := Decode("tracks.mid", s)
	require.NoError(t, err)
	assert.Equal(t, []model.Event{
		{Channel: 2, Kind: model.NoteOn, Pitch: 60, Delta: 0},
		{Channel: 2, Kind: model.Other, Delta: 4},
		{Channel: 2, Kind: model.NoteOn, Pitch: 64, Delta: 0},
		{Channel: 2, Kind: model.NoteOff, Pitch: 64, Delta: 2},
		{Channel: 2, Kind: model.NoteOff, Pitch: 60, Delta: 2},
	}, f.Channels[2])
	assert.Equal(t, uint32(500000), f.Tempo)
}

func TestDecodeRejectsSMPTE(t *testing.T) {
	s := smf.New()
	s.TimeFormat = smf.TimeCode{FramesPerSecond: 25, SubFrames: 40}
	_, err := Decode("smpte.mid", s)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	old, _ := sample.Pair()
	path := filepath.Join(t.TempDir(), "old.mid")
	require.NoError(t, sample.Create(old, 96, 120).WriteFile(path))

	f, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal("old.mid", f.Name)
	assert.Len(f.Channels[0], 6)
	assert.Len(f.Channels[1], 2)
	assert.Equal(int64(384), f.TotalTicks())
}

func TestReadMidiFileErrors(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "missing.mid"))
	assert.Error(t, err)

	junk := filepath.Join(t.TempDir(), "junk.mid")
	require.NoError(t, os.WriteFile(junk, []byte("not a midi file"), 0644))
	_, err = ReadMidiFile(junk)
	assert.Error(t, err)
}
