package compare

import (
	"github.com/jsphweid/mididiff/diff"
	"github.com/jsphweid/mididiff/interval"
	"github.com/jsphweid/mididiff/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Session compares two decoded files. Each Run extracts intervals afresh
// from the decoded events, so a Session can be run repeatedly.
type Session struct {
	Old    *model.File
	New    *model.File
	Logger *zap.SugaredLogger
}

type Report struct {
	Filter         diff.Filter
	Old            []model.Interval
	New            []model.Interval
	OldAnomalies   []model.Anomaly
	NewAnomalies   []model.Anomaly
	OldCounts      diff.Counts
	NewCounts      diff.Counts
	LengthMismatch bool
}

func NewSession(old, new *model.File, logger *zap.SugaredLogger) *Session {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Session{Old: old, New: new, Logger: logger}
}

func (s *Session) LengthMismatch() bool {
	return s.Old.TotalTicks() != s.New.TotalTicks()
}

func anomaliesFor(anomalies []model.Anomaly, f diff.Filter) []model.Anomaly {
	var res []model.Anomaly
	for _, a := range anomalies {
		if f.Allows(a.Channel) {
			res = append(res, a)
		}
	}
	return res
}

func (s *Session) logAnomalies(name string, anomalies []model.Anomaly) {
	for _, a := range anomalies {
		if a.Kind == model.UnclosedNote {
			s.Logger.Debugw("closing note at end of channel", "file", name, "channel", a.Channel, "pitch", a.Pitch, "tick", a.Time)
			continue
		}
		s.Logger.Warnw(a.Kind.String(), "file", name, "channel", a.Channel, "pitch", a.Pitch, "tick", a.Time)
	}
}

// Run extracts both files and tags them against each other. Differing file
// lengths are reported but do not stop the comparison.
func (s *Session) Run(f diff.Filter) (Report, error) {
	report := Report{Filter: f, LengthMismatch: s.LengthMismatch()}
	if f.Enabled && (f.Channel < 0 || f.Channel >= len(s.Old.Channels)) {
		return report, errors.Wrapf(interval.ErrOutOfRange, "channel %d", f.Channel)
	}

	if report.LengthMismatch {
		s.Logger.Warnw("files differ in length, notes past the shorter one will show as changed",
			"old", s.Old.Name, "oldTicks", s.Old.TotalTicks(),
			"new", s.New.Name, "newTicks", s.New.TotalTicks())
	}

	oldRes, err := interval.Extract(s.Old)
	if err != nil {
		return report, errors.Wrap(err, "old file")
	}
	newRes, err := interval.Extract(s.New)
	if err != nil {
		return report, errors.Wrap(err, "new file")
	}

	report.Old, report.New = diff.Compare(oldRes.Intervals, newRes.Intervals, f)
	report.OldAnomalies = anomaliesFor(oldRes.Anomalies, f)
	report.NewAnomalies = anomaliesFor(newRes.Anomalies, f)
	report.OldCounts = diff.Summarize(report.Old)
	report.NewCounts = diff.Summarize(report.New)

	s.logAnomalies(s.Old.Name, report.OldAnomalies)
	s.logAnomalies(s.New.Name, report.NewAnomalies)
	s.Logger.Debugw("compared",
		"channelFilter", f.Enabled, "channel", f.Channel,
		"unchanged", report.OldCounts.Unchanged,
		"removed", report.OldCounts.Removed,
		"added", report.NewCounts.Added)
	return report, nil
}
