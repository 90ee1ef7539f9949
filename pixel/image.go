package pixel

import (
	"image"
	"image/color"
)

// Image is a drawable image that can be cleared and filled.
type Image interface {
	image.Image
	Set(x, y int, c color.Color)

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

// Clear sets all bytes to zero, which is black for mono images.
func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

// MonoImage is a 1-bit per pixel monochrome image.
//
// Rows are packed most significant bit first, each row starting on a byte
// boundary. A set bit is a white pixel. This is the RAM layout of most
// e-paper controllers.
type MonoImage struct {
	Buffer
}

// NewMonoImage returns a black image of w×h pixels.
func NewMonoImage(w, h int) *MonoImage {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := (w + 7) / 8 // round up to whole bytes
	return &MonoImage{
		Buffer: Buffer{
			Rect:   image.Rect(0, 0, w, h),
			Pix:    make([]byte, stride*h),
			Stride: stride,
		},
	}
}

func (p *MonoImage) ColorModel() color.Model {
	return MonoModel
}

// PixOffset returns the index of the byte holding the pixel at (x, y).
func (p *MonoImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)/8
}

func (p *MonoImage) bit(x int) byte {
	return 0x80 >> uint((x-p.Rect.Min.X)&7)
}

func (p *MonoImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{On: p.Pix[p.PixOffset(x, y)]&p.bit(x) != 0}
}

func (p *MonoImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	i := p.PixOffset(x, y)
	if monoModel(c).(Mono).On {
		p.Pix[i] |= p.bit(x)
	} else {
		p.Pix[i] &^= p.bit(x)
	}
}

func (p *MonoImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Threshold converts src to a MonoImage using MonoModel.
func Threshold(src image.Image) *MonoImage {
	b := src.Bounds()
	dst := NewMonoImage(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x-b.Min.X, y-b.Min.Y, src.At(x, y))
		}
	}
	return dst
}

// Interface checks.
var (
	_ Image = (*MonoImage)(nil)
)
