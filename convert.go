package epaper

import (
	"image"
	"image/color"

	"github.com/pingcap/errors"

	"github.com/BeatGlow/epaper/pixel"
)

// rotated is a lazily rotated view of an image, with its origin at (0, 0).
type rotated struct {
	src image.Image
	r   Rotation
}

func rotate(src image.Image, r Rotation) image.Image {
	if r%4 == NoRotation {
		return src
	}
	return &rotated{src: src, r: r % 4}
}

func (i *rotated) ColorModel() color.Model {
	return i.src.ColorModel()
}

func (i *rotated) Bounds() image.Rectangle {
	size := i.src.Bounds().Size()
	if i.r == Rotate90 || i.r == Rotate270 {
		size.X, size.Y = size.Y, size.X
	}
	return image.Rectangle{Max: size}
}

func (i *rotated) At(x, y int) color.Color {
	var (
		b = i.src.Bounds()
		w = b.Dx()
		h = b.Dy()
	)
	switch i.r {
	case Rotate90:
		x, y = y, h-1-x
	case Rotate180:
		x, y = w-1-x, h-1-y
	case Rotate270:
		x, y = w-1-y, x
	}
	return i.src.At(b.Min.X+x, b.Min.Y+y)
}

// toPanel converts img to the 1-bit layout of a panel with the given bounds.
// The configured rotation is applied first; an image with swapped dimensions
// is then turned to portrait.
func toPanel(img image.Image, bounds image.Rectangle, r Rotation) (*pixel.MonoImage, error) {
	var (
		src   = rotate(img, r)
		size  = src.Bounds().Size()
		panel = bounds.Size()
	)
	switch {
	case size == panel:
	case size.X == panel.Y && size.Y == panel.X:
		src = rotate(src, Rotate270)
	default:
		return nil, errors.Annotatef(ErrBounds, "image is %dx%d, display is %dx%d or %dx%d",
			size.X, size.Y, panel.X, panel.Y, panel.Y, panel.X)
	}
	return pixel.Threshold(src), nil
}
