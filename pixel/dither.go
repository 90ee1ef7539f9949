package pixel

import "image"

// Dither converts src to a MonoImage using Floyd–Steinberg error diffusion.
//
// Photos keep their tonal range this way, at the cost of a grainy texture.
func Dither(src image.Image) *MonoImage {
	var (
		b   = src.Bounds()
		w   = b.Dx()
		h   = b.Dy()
		dst = NewMonoImage(w, h)
	)
	if w == 0 || h == 0 {
		return dst
	}

	// Two rows of accumulated error, in 16-bit luma units.
	cur := make([]int32, w+2)
	next := make([]int32, w+2)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := int32(Luminance(src.At(b.Min.X+x, b.Min.Y+y))) + cur[x+1]/16

			var out int32
			if v >= 0x8000 {
				out = 0xffff
				dst.Pix[dst.PixOffset(x, y)] |= dst.bit(x)
			}

			e := v - out
			cur[x+2] += e * 7
			next[x] += e * 3
			next[x+1] += e * 5
			next[x+2] += e * 1
		}
		cur, next = next, cur
		for i := range next {
			next[i] = 0
		}
	}
	return dst
}
