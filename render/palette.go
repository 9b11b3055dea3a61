package render

import (
	"image/color"

	"github.com/jsphweid/mididiff/model"
	"golang.org/x/image/colornames"
)

// Palette maps "no note" and the three tags to display colors. The four
// colors must be distinct.
type Palette struct {
	Background color.Color
	Unchanged  color.Color
	Removed    color.Color
	Added      color.Color
}

var DefaultPalette = Palette{
	Background: colornames.White,
	Unchanged:  colornames.Black,
	Removed:    colornames.Red,
	Added:      colornames.Lime,
}

func (p Palette) For(t model.Tag) color.Color {
	switch t {
	case model.Removed:
		return p.Removed
	case model.Added:
		return p.Added
	}
	return p.Unchanged
}
