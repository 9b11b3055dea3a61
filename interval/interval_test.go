package interval

import (
	"fmt"
	"testing"

	"github.com/jsphweid/mididiff/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func on(ch, pitch int, delta int64) model.Event {
	return model.Event{Channel: ch, Kind: model.NoteOn, Pitch: pitch, Delta: delta}
}

func off(ch, pitch int, delta int64) model.Event {
	return model.Event{Channel: ch, Kind: model.NoteOff, Pitch: pitch, Delta: delta}
}

func other(ch int, delta int64) model.Event {
	return model.Event{Channel: ch, Kind: model.Other, Delta: delta}
}

func iv(ch, pitch int, start, end int64) model.Interval {
	return model.Interval{Channel: ch, Pitch: pitch, Start: start, End: end}
}

func TestNoteOnThenOff(t *testing.T) {
	res, err := ExtractChannel(0, []model.Event{on(0, 60, 0), off(0, 60, 4)})
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.Interval{iv(0, 60, 0, 4)}, res.Intervals)
	assert.Empty(res.Anomalies)
	assert.Equal(model.Neutral, res.Intervals[0].Tag)
}

func TestStartTimeIncludesOwnDelta(t *testing.T) {
	events := []model.Event{other(2, 10), on(2, 64, 3), other(2, 1), off(2, 64, 6)}
	res, err := ExtractChannel(2, events)
	require.NoError(t, err)
	assert.Equal(t, []model.Interval{iv(2, 64, 13, 20)}, res.Intervals)
}

func TestRoundTripClosure(t *testing.T) {
	cases := []struct {
		onDelta, gap int64
	}{
		{0, 1}, {5, 5}, {96, 480}, {1, 0},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("on=%d gap=%d", c.onDelta, c.gap), func(t *testing.T) {
			res, err := ExtractChannel(1, []model.Event{on(1, 40, c.onDelta), off(1, 40, c.gap)})
			require.NoError(t, err)
			assert.Equal(t, []model.Interval{iv(1, 40, c.onDelta, c.onDelta+c.gap)}, res.Intervals)
		})
	}
}

func TestRetrigger(t *testing.T) {
	events := []model.Event{on(0, 60, 0), on(0, 60, 5), off(0, 60, 3)}
	res, err := ExtractChannel(0, events)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.Interval{iv(0, 60, 0, 5), iv(0, 60, 5, 8)}, res.Intervals)
	assert.Empty(res.Anomalies)
}

func TestUnclosedNoteClosedAtChannelEnd(t *testing.T) {
	events := []model.Event{on(0, 62, 2), other(0, 10)}
	res, err := ExtractChannel(0, events)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.Interval{iv(0, 62, 2, 12)}, res.Intervals)
	assert.Equal([]model.Anomaly{{Kind: model.UnclosedNote, Channel: 0, Pitch: 62, Time: 12}}, res.Anomalies)
}

func TestUnclosedNotesClosedInPitchOrder(t *testing.T) {
	events := []model.Event{on(0, 70, 0), on(0, 50, 1), on(0, 60, 1)}
	res, err := ExtractChannel(0, events)
	require.NoError(t, err)
	assert.Equal(t, []model.Interval{iv(0, 50, 1, 2), iv(0, 60, 2, 2), iv(0, 70, 0, 2)}, res.Intervals)
}

func TestUnmatchedNoteOff(t *testing.T) {
	events := []model.Event{off(0, 60, 7), on(0, 61, 1), off(0, 61, 1)}
	res, err := ExtractChannel(0, events)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.Interval{iv(0, 60, model.NoStart, 7), iv(0, 61, 8, 9)}, res.Intervals)
	assert.Equal([]model.Anomaly{{Kind: model.UnmatchedNoteOff, Channel: 0, Pitch: 60, Time: 7}}, res.Anomalies)
}

func TestDoubleNoteOffOnlyFirstMatches(t *testing.T) {
	events := []model.Event{on(0, 60, 0), off(0, 60, 2), off(0, 60, 2)}
	res, err := ExtractChannel(0, events)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.Interval{iv(0, 60, 0, 2), iv(0, 60, model.NoStart, 4)}, res.Intervals)
	assert.Len(res.Anomalies, 1)
}

func TestPitchesAreIndependent(t *testing.T) {
	events := []model.Event{on(0, 60, 0), on(0, 64, 1), off(0, 60, 1), off(0, 64, 1)}
	res, err := ExtractChannel(0, events)
	require.NoError(t, err)
	assert.Equal(t, []model.Interval{iv(0, 60, 0, 2), iv(0, 64, 1, 3)}, res.Intervals)
}

func TestNonOverlappingPerPitch(t *testing.T) {
	events := []model.Event{
		on(0, 60, 0), off(0, 60, 4), on(0, 60, 1), on(0, 60, 2), off(0, 60, 3), on(0, 60, 1),
	}
	res, err := ExtractChannel(0, events)
	require.NoError(t, err)

	for i := 1; i < len(res.Intervals); i++ {
		assert.LessOrEqual(t, res.Intervals[i-1].End, res.Intervals[i].Start)
	}
}

func TestOutOfRange(t *testing.T) {
	cases := map[string]struct {
		channel int
		events  []model.Event
	}{
		"pitch too high":   {0, []model.Event{on(0, 128, 0)}},
		"negative pitch":   {0, []model.Event{off(0, -1, 0)}},
		"channel too high": {16, nil},
		"negative channel": {-1, nil},
		"negative delta":   {0, []model.Event{on(0, 60, -3)}},
		"foreign channel":  {0, []model.Event{on(3, 60, 0)}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := ExtractChannel(c.channel, c.events)
			assert.ErrorIs(t, err, ErrOutOfRange)
			assert.Empty(t, res.Intervals)
		})
	}
}

func TestOtherEventsIgnorePitch(t *testing.T) {
	e := other(0, 1)
	e.Pitch = 500
	res, err := ExtractChannel(0, []model.Event{e})
	require.NoError(t, err)
	assert.Empty(t, res.Intervals)
}

func TestDoesNotMutateInput(t *testing.T) {
	events := []model.Event{on(0, 60, 0), off(0, 60, 4)}
	snapshot := append([]model.Event(nil), events...)
	_, err := ExtractChannel(0, events)
	require.NoError(t, err)
	assert.Equal(t, snapshot, events)
}

func testFile() *model.File {
	f := &model.File{Name: "test.mid", TicksPerBeat: 96, Tempo: 500000}
	f.Channels[0] = []model.Event{on(0, 60, 0), off(0, 60, 4)}
	// left open so it would leak into channel 1 if registers were shared
	f.Channels[1] = []model.Event{on(1, 1, 0), other(1, 3)}
	f.Channels[2] = []model.Event{off(2, 1, 5)}
	f.Channels[9] = []model.Event{on(9, 36, 1), off(9, 36, 1), on(9, 38, 1), off(9, 38, 1)}
	return f
}

func TestExtractAllChannelsInOrder(t *testing.T) {
	res, err := Extract(testFile())
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.Interval{
		iv(0, 60, 0, 4),
		iv(1, 1, 0, 3),
		iv(2, 1, model.NoStart, 5),
		iv(9, 36, 1, 2),
		iv(9, 38, 3, 4),
	}, res.Intervals)
	assert.Equal([]model.Anomaly{
		{Kind: model.UnclosedNote, Channel: 1, Pitch: 1, Time: 3},
		{Kind: model.UnmatchedNoteOff, Channel: 2, Pitch: 1, Time: 5},
	}, res.Anomalies)
}

func TestExtractIsIdempotent(t *testing.T) {
	f := testFile()
	first, err := Extract(f)
	require.NoError(t, err)
	second, err := Extract(f)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExtractFailsOnBadChannel(t *testing.T) {
	f := testFile()
	f.Channels[4] = []model.Event{on(4, 200, 0)}
	_, err := Extract(f)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestEmptyFile(t *testing.T) {
	res, err := Extract(&model.File{})
	require.NoError(t, err)
	assert.Empty(t, res.Intervals)
	assert.Empty(t, res.Anomalies)
}

func TestStartNeverAfterEnd(t *testing.T) {
	events := []model.Event{
		off(0, 60, 0), on(0, 60, 0), on(0, 60, 0), off(0, 60, 0),
		on(0, 61, 3), on(0, 61, 0), off(0, 60, 2), on(0, 62, 1),
	}
	res, err := ExtractChannel(0, events)
	require.NoError(t, err)

	require.NotEmpty(t, res.Intervals)
	for _, i := range res.Intervals {
		assert.LessOrEqual(t, i.Start, i.End, i.String())
	}
}
