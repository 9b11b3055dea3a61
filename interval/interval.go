package interval

import (
	"github.com/jsphweid/mididiff/constants"
	"github.com/jsphweid/mididiff/model"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var ErrOutOfRange = errors.New("value out of range")

type Result struct {
	Intervals []model.Interval
	Anomalies []model.Anomaly
}

// register holds, per pitch, the tick at which the sounding note started.
type register struct {
	open  [constants.NumPitches]bool
	start [constants.NumPitches]int64
}

func validate(channel int, e model.Event) error {
	if e.Channel != channel {
		return errors.Wrapf(ErrOutOfRange, "event for channel %d found in channel %d", e.Channel, channel)
	}
	if e.Delta < 0 {
		return errors.Wrapf(ErrOutOfRange, "negative delta %d on channel %d", e.Delta, channel)
	}
	if e.Kind != model.Other && (e.Pitch < 0 || e.Pitch >= constants.NumPitches) {
		return errors.Wrapf(ErrOutOfRange, "pitch %d on channel %d", e.Pitch, channel)
	}
	return nil
}

// emit appends a closed interval. Deltas are never negative, so start is
// never after end.
func emit(res *Result, channel, pitch int, start, end int64) {
	res.Intervals = append(res.Intervals, model.Interval{
		Channel: channel,
		Pitch:   pitch,
		Start:   start,
		End:     end,
	})
}

// ExtractChannel turns the events of one channel into closed intervals.
// A note starts or stops once its event's delta has fully elapsed. Notes
// still sounding when the events run out are closed at the channel's final
// tick.
func ExtractChannel(channel int, events []model.Event) (Result, error) {
	var res Result
	if channel < 0 || channel >= constants.NumChannels {
		return res, errors.Wrapf(ErrOutOfRange, "channel %d", channel)
	}

	var reg register
	var t int64
	for _, e := range events {
		if err := validate(channel, e); err != nil {
			return Result{}, err
		}

		now := t + e.Delta
		switch e.Kind {
		case model.NoteOn:
			if reg.open[e.Pitch] {
				// retrigger
				emit(&res, channel, e.Pitch, reg.start[e.Pitch], now)
			}
			reg.open[e.Pitch] = true
			reg.start[e.Pitch] = now
		case model.NoteOff:
			start := model.NoStart
			if reg.open[e.Pitch] {
				start = reg.start[e.Pitch]
			} else {
				res.Anomalies = append(res.Anomalies, model.Anomaly{
					Kind:    model.UnmatchedNoteOff,
					Channel: channel,
					Pitch:   e.Pitch,
					Time:    now,
				})
			}
			emit(&res, channel, e.Pitch, start, now)
			reg.open[e.Pitch] = false
		}
		t = now
	}

	for pitch := range reg.open {
		if !reg.open[pitch] {
			continue
		}
		res.Anomalies = append(res.Anomalies, model.Anomaly{
			Kind:    model.UnclosedNote,
			Channel: channel,
			Pitch:   pitch,
			Time:    t,
		})
		emit(&res, channel, pitch, reg.start[pitch], t)
	}
	return res, nil
}

// Extract runs ExtractChannel over every channel of f. Channels are
// independent so they are extracted concurrently; the result is in channel
// order.
func Extract(f *model.File) (Result, error) {
	var results [constants.NumChannels]Result
	var g errgroup.Group
	for ch := range f.Channels {
		ch := ch
		g.Go(func() error {
			res, err := ExtractChannel(ch, f.Channels[ch])
			if err != nil {
				return err
			}
			results[ch] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, errors.Wrapf(err, "could not extract intervals from %v", f.Name)
	}

	var res Result
	for _, r := range results {
		res.Intervals = append(res.Intervals, r.Intervals...)
		res.Anomalies = append(res.Anomalies, r.Anomalies...)
	}
	return res, nil
}
