package render

import (
	"fmt"
	"image"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/jsphweid/mididiff/compare"
	"github.com/jsphweid/mididiff/constants"
	"github.com/jsphweid/mididiff/model"
	"github.com/jsphweid/mididiff/util"
	"github.com/pkg/errors"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	titleH       = 50
	marginLeft   = 70
	marginRight  = 20
	marginTop    = 40
	marginBottom = 50
)

type Options struct {
	Width   int
	Height  int
	Title   string
	Palette Palette
}

func (o Options) title(r compare.Report) string {
	if o.Title != "" {
		return o.Title
	}
	if r.Filter.Enabled {
		return fmt.Sprintf("Showing MIDI diff in channel %d", r.Filter.Channel)
	}
	return "Showing MIDI diff in all channels"
}

// panel is the plot area of one file's roll, in pixels.
type panel struct {
	x, y, w, h float64
	length     int64
}

func layout(opts Options, index int, length int64) panel {
	panelH := float64(opts.Height-titleH) / 2
	if length <= 0 {
		length = 1
	}
	return panel{
		x:      marginLeft,
		y:      titleH + panelH*float64(index) + marginTop,
		w:      float64(opts.Width - marginLeft - marginRight),
		h:      panelH - marginTop - marginBottom,
		length: length,
	}
}

func (p panel) rowH() float64 {
	return p.h / constants.NumPitches
}

func (p panel) tickX(tick float64) float64 {
	return p.x + tick*p.w/float64(p.length)
}

// pitchY is the top edge of a pitch's row. Low pitches are at the bottom.
func (p panel) pitchY(pitch int) float64 {
	return p.y + p.h - float64(pitch+1)*p.rowH()
}

// span is the rectangle painted for i, covering ticks [start, end).
func (p panel) span(i model.Interval) (x, y, w, h float64, ok bool) {
	start := util.Max(i.Start, 0)
	end := util.Min(i.End, p.length)
	if i.Start < 0 || end <= start {
		return 0, 0, 0, 0, false
	}
	x = p.tickX(float64(start))
	return x, p.pitchY(i.Pitch), p.tickX(float64(end)) - x, p.rowH(), true
}

func parseFont() (*truetype.Font, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse font")
	}
	return f, nil
}

func drawPanel(dc *gg.Context, f *truetype.Font, p panel, file *model.File, intervals []model.Interval, pal Palette) {
	dc.SetColor(pal.Background)
	dc.DrawRectangle(p.x, p.y, p.w, p.h)
	dc.Fill()

	for _, i := range intervals {
		x, y, w, h, ok := p.span(i)
		if !ok {
			continue
		}
		dc.SetColor(pal.For(i.Tag))
		dc.DrawRectangle(x, y, w, h)
		dc.Fill()
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(p.x, p.y, p.w, p.h)
	dc.Stroke()

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 12}))
	for _, t := range timeAxis(file, p.length) {
		x := p.tickX(t.Tick)
		dc.DrawLine(x, p.y+p.h, x, p.y+p.h+4)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprintf("%g", t.Label), x, p.y+p.h+14, 0.5, 0.5)
	}
	for _, pitch := range pitchAxis() {
		y := p.pitchY(pitch) + p.rowH()
		dc.DrawLine(p.x-4, y, p.x, y)
		dc.Stroke()
		dc.DrawStringAnchored(fmt.Sprint(pitch), p.x-8, y, 1, 0.5)
	}
	dc.DrawStringAnchored("time (s)", p.x+p.w/2, p.y+p.h+34, 0.5, 0.5)
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), p.x-50, p.y+p.h/2)
	dc.DrawStringAnchored("note (midi number)", p.x-50, p.y+p.h/2, 0.5, 0.5)
	dc.Pop()

	dc.SetFontFace(truetype.NewFace(f, &truetype.Options{Size: 16}))
	dc.DrawStringAnchored("File: "+file.Name, p.x+p.w/2, p.y-16, 0.5, 0.5)
}

// Roll draws the old file's tagged intervals above the new file's. Each
// panel spans its own file's length.
func Roll(old, new *model.File, r compare.Report, opts Options) (image.Image, error) {
	if opts.Width <= marginLeft+marginRight || opts.Height <= titleH+2*(marginTop+marginBottom) {
		return nil, errors.Errorf("image size %dx%d is too small", opts.Width, opts.Height)
	}
	if opts.Palette == (Palette{}) {
		opts.Palette = DefaultPalette
	}
	font, err := parseFont()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	drawPanel(dc, font, layout(opts, 0, old.TotalTicks()), old, r.Old, opts.Palette)
	drawPanel(dc, font, layout(opts, 1, new.TotalTicks()), new, r.New, opts.Palette)

	dc.SetRGB(0, 0, 0)
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 25}))
	dc.DrawStringAnchored(opts.title(r), float64(opts.Width)/2, titleH/2, 0.5, 0.5)
	return dc.Image(), nil
}

func SavePNG(img image.Image, path string) error {
	if err := gg.SavePNG(path, img); err != nil {
		return errors.Wrapf(err, "could not save %v", path)
	}
	return nil
}

func WritePNG(w io.Writer, img image.Image) error {
	return gg.NewContextForImage(img).EncodePNG(w)
}
