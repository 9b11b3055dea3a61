package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jsphweid/mididiff/compare"
	"github.com/jsphweid/mididiff/constants"
	"github.com/jsphweid/mididiff/diff"
	"github.com/jsphweid/mididiff/midi"
	"github.com/jsphweid/mididiff/render"
	"github.com/pkg/errors"
)

func loadSession(oldPath, newPath string) (*compare.Session, error) {
	old, err := midi.Load(oldPath)
	if err != nil {
		return nil, err
	}
	new, err := midi.Load(newPath)
	if err != nil {
		return nil, err
	}

	s := compare.NewSession(old, new, log)
	if s.LengthMismatch() {
		fmt.Println("WARNING: Please choose two MIDI files of the same length!")
	}
	return s, nil
}

func parseChannel(s string) (int, error) {
	ch, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Errorf("%q is not a channel number", s)
	}
	if ch < 0 || ch >= constants.NumChannels {
		return 0, errors.Errorf("channel %d is outside 0..%d", ch, constants.NumChannels-1)
	}
	return ch, nil
}

// channelFilter turns an optional channel argument into a diff filter.
// An empty string selects every channel.
func channelFilter(s string) (diff.Filter, error) {
	if s == "" {
		return diff.AllChannels, nil
	}
	ch, err := parseChannel(s)
	if err != nil {
		return diff.Filter{}, err
	}
	return diff.OnlyChannel(ch), nil
}

func renderOptions() render.Options {
	return render.Options{Width: cfg.Width, Height: cfg.Height}
}

// runAndSave compares, draws and writes the roll to path.
func runAndSave(s *compare.Session, f diff.Filter, path string) (compare.Report, error) {
	r, err := s.Run(f)
	if err != nil {
		return r, err
	}
	img, err := render.Roll(s.Old, s.New, r, renderOptions())
	if err != nil {
		return r, err
	}
	return r, render.SavePNG(img, path)
}

func printCounts(w io.Writer, r compare.Report) {
	fmt.Fprintf(w, "unchanged: %v, removed: %v, added: %v\n", r.OldCounts.Unchanged, r.OldCounts.Removed, r.NewCounts.Added)
	if n := len(r.OldAnomalies) + len(r.NewAnomalies); n > 0 {
		fmt.Fprintf(w, "anomalies: %v (run inspect for details)\n", n)
	}
}
