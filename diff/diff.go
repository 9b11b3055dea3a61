package diff

import "github.com/jsphweid/mididiff/model"

// Filter restricts a comparison to one channel. The zero value compares
// every channel.
type Filter struct {
	Channel int
	Enabled bool
}

var AllChannels = Filter{}

func OnlyChannel(channel int) Filter {
	return Filter{Channel: channel, Enabled: true}
}

func (f Filter) Allows(channel int) bool {
	return !f.Enabled || f.Channel == channel
}

type Counts struct {
	Unchanged int `json:"unchanged"`
	Removed   int `json:"removed"`
	Added     int `json:"added"`
}

func keySet(intervals []model.Interval, f Filter) map[model.NoteKey]struct{} {
	set := make(map[model.NoteKey]struct{}, len(intervals))
	for _, i := range intervals {
		if f.Allows(i.Channel) {
			set[i.Key()] = struct{}{}
		}
	}
	return set
}

// Tag re-emits every interval of subject that passes f, tagged Unchanged if
// an interval with the same channel, pitch, start and end exists in other
// and tagged missing otherwise. Matching is exact; a note moved by a single
// tick does not match.
func Tag(subject, other []model.Interval, missing model.Tag, f Filter) []model.Interval {
	set := keySet(other, f)
	res := make([]model.Interval, 0, len(subject))
	for _, i := range subject {
		if !f.Allows(i.Channel) {
			continue
		}
		if _, ok := set[i.Key()]; ok {
			res = append(res, i.WithTag(model.Unchanged))
		} else {
			res = append(res, i.WithTag(missing))
		}
	}
	return res
}

// Compare tags old against new (Removed for misses) and new against old
// (Added for misses).
func Compare(old, new []model.Interval, f Filter) ([]model.Interval, []model.Interval) {
	return Tag(old, new, model.Removed, f), Tag(new, old, model.Added, f)
}

func Summarize(tagged []model.Interval) Counts {
	var c Counts
	for _, i := range tagged {
		switch i.Tag {
		case model.Unchanged:
			c.Unchanged++
		case model.Removed:
			c.Removed++
		case model.Added:
			c.Added++
		}
	}
	return c
}
