package draw

import (
	"image"
	"image/color"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

const dpi = 72

// Face is a sized TrueType font.
type Face struct {
	font *truetype.Font
	size float64
	face font.Face
}

// NewFace parses a TrueType font. A nil ttf selects the Go Regular font.
func NewFace(ttf []byte, size float64) (*Face, error) {
	if ttf == nil {
		ttf = goregular.TTF
	}
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, err
	}
	return &Face{
		font: f,
		size: size,
		face: truetype.NewFace(f, &truetype.Options{
			Size:    size,
			DPI:     dpi,
			Hinting: font.HintingFull,
		}),
	}, nil
}

// Close releases the glyph cache.
func (f *Face) Close() error {
	return f.face.Close()
}

// Size is the font size in points.
func (f *Face) Size() float64 {
	return f.size
}

// Measure returns the size of the box s occupies when drawn, in pixels.
func (f *Face) Measure(s string) image.Point {
	m := f.face.Metrics()
	return image.Pt(font.MeasureString(f.face, s).Ceil(), (m.Ascent + m.Descent).Ceil())
}

// DrawCentered draws s centered inside r. Glyphs are clipped to r.
func (f *Face) DrawCentered(dst Image, r image.Rectangle, s string, c color.Color) error {
	var (
		size = f.Measure(s)
		x    = r.Min.X + (r.Dx()-size.X)/2
		y    = r.Min.Y + (r.Dy()-size.Y)/2 + f.face.Metrics().Ascent.Ceil()
	)

	ctx := freetype.NewContext()
	ctx.SetDPI(dpi)
	ctx.SetFont(f.font)
	ctx.SetFontSize(f.size)
	ctx.SetHinting(font.HintingFull)
	ctx.SetClip(r.Intersect(dst.Bounds()))
	ctx.SetDst(dst)
	ctx.SetSrc(image.NewUniform(c))

	_, err := ctx.DrawString(s, freetype.Pt(x, y))
	return err
}
