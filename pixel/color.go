package pixel

import "image/color"

// MonoModel converts any color to a Mono color by thresholding its luminance.
var MonoModel color.Model = color.ModelFunc(monoModel)

var (
	Off = Mono{false} // black ink
	On  = Mono{true}  // white paper
)

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func (c Mono) String() string {
	if c.On {
		return "on"
	}
	return "off"
}

// Luminance returns the 16-bit luma of c composited over white paper, so
// transparent pixels come out white.
//
// These coefficients (the fractions 0.299, 0.587 and 0.114) are the same as
// those given by the JFIF specification. Note that 19595 + 38470 + 7471 equals
// 65536, so the result fits in 16 bits.
func Luminance(c color.Color) uint32 {
	r, g, b, a := c.RGBA()

	// RGBA is alpha premultiplied; the uncovered part shows the paper.
	paper := 0xffff - a
	r, g, b = r+paper, g+paper, b+paper
	return (19595*r + 38470*g + 7471*b + 1<<15) >> 16
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	return Mono{On: Luminance(c) >= 0x8000}
}
