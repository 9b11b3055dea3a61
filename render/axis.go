package render

import (
	"math"

	"github.com/jsphweid/mididiff/model"
)

const numTimeLabels = 20

const pitchLabelStep = 16

type axisTick struct {
	Tick  float64
	Label float64
}

// timeAxis places up to numTimeLabels second labels along a roll of length
// ticks. Files longer than ten seconds get whole second steps.
func timeAxis(f *model.File, length int64) []axisTick {
	seconds := f.Seconds(length)
	period := seconds / 10
	if seconds > 10 {
		period = math.Floor(seconds / 10)
	}
	step := f.Ticks(period)

	ticks := []axisTick{{0, 0}}
	if step <= 0 {
		return ticks
	}
	for i := 1; i < numTimeLabels; i++ {
		tick := float64(i) * step
		if tick > float64(length) {
			break
		}
		ticks = append(ticks, axisTick{
			Tick:  tick,
			Label: math.Round(float64(i)*period*100) / 100,
		})
	}
	return ticks
}

func pitchAxis() []int {
	var res []int
	for p := 0; p < 8; p++ {
		res = append(res, p*pitchLabelStep)
	}
	return res
}
