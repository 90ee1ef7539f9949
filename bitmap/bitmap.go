// Package bitmap loads and stores the raster images shown on the panel.
//
// BMP files of any bit depth, including the 1-bit monochrome bitmaps made for
// e-paper panels, are handled by github.com/jsummers/gobmp. Other formats are
// delegated to the standard library codecs and to golang.org/x/image, which are
// registered with the [image] package when this package is imported.
package bitmap

import (
	"bufio"
	"bytes"
	"image"
	"image/color"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"

	"github.com/jsummers/gobmp"
	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP

	"github.com/BeatGlow/epaper/pixel"
)

// bmpMagic starts every Windows bitmap file.
var bmpMagic = []byte("BM")

// monoPalette maps a 1-bit palette index to ink (0) or paper (1).
var monoPalette = color.Palette{color.Black, color.White}

// Errors
var (
	ErrUnknownFormat = errors.New("bitmap: unknown image format")
)

// Decoder turns an encoded byte stream into an image.
type Decoder interface {
	Decode(r io.Reader) (image.Image, error)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(r io.Reader) (image.Image, error)

func (f DecoderFunc) Decode(r io.Reader) (image.Image, error) {
	return f(r)
}

// Codecs decodes BMP files of any bit depth and any format registered with
// the image package.
var Codecs Decoder = DecoderFunc(decode)

func decode(r io.Reader) (image.Image, error) {
	var (
		br     = bufio.NewReader(r)
		img    image.Image
		format = "bmp"
		err    error
	)
	if magic, _ := br.Peek(len(bmpMagic)); bytes.Equal(magic, bmpMagic) {
		img, err = gobmp.Decode(br)
	} else {
		img, format, err = image.Decode(br)
	}
	if err != nil {
		if err == image.ErrFormat {
			return nil, errors.Trace(ErrUnknownFormat)
		}
		return nil, errors.Annotate(err, "bitmap: decode failed")
	}
	log.Debug("decoded bitmap",
		zap.String("format", format),
		zap.Stringer("size", img.Bounds().Size()))
	return img, nil
}

// OpenFunc opens a named file for reading.
type OpenFunc func(name string) (io.ReadCloser, error)

// OpenFile opens a file from the local file system.
func OpenFile(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Load decodes the image stored in the named file. The file is closed before
// Load returns, whatever the outcome.
func Load(open OpenFunc, name string, dec Decoder) (img image.Image, err error) {
	if open == nil {
		open = OpenFile
	}
	if dec == nil {
		dec = Codecs
	}

	f, err := open(name)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			img, err = nil, errors.Trace(cerr)
		}
	}()

	if img, err = dec.Decode(f); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, errors.Trace(ErrUnknownFormat)
	}
	return img, nil
}

// EncodeBMP writes img as a 1-bit monochrome Windows bitmap. Images other
// than a [pixel.MonoImage] are thresholded first.
func EncodeBMP(w io.Writer, img image.Image) error {
	return errors.Trace(gobmp.Encode(w, Paletted(img)))
}

// Paletted converts img to a two color paletted image, index 0 being black
// ink and index 1 white paper.
func Paletted(img image.Image) *image.Paletted {
	m, ok := img.(*pixel.MonoImage)
	if !ok {
		m = pixel.Threshold(img)
	}

	b := m.Bounds()
	dst := image.NewPaletted(b, monoPalette)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if m.At(x, y).(pixel.Mono).On {
				dst.Pix[dst.PixOffset(x, y)] = 1
			}
		}
	}
	return dst
}

// Fit scales src to fit inside size, preserving its aspect ratio, and centers
// the result on a white canvas of exactly that size.
func Fit(src image.Image, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)

	sb := src.Bounds()
	if sb.Empty() || size.X <= 0 || size.Y <= 0 {
		return dst
	}

	w, h := size.X, sb.Dy()*size.X/sb.Dx()
	if h > size.Y {
		w, h = sb.Dx()*size.Y/sb.Dy(), size.Y
	}
	w, h = max(w, 1), max(h, 1)

	off := image.Pt((size.X-w)/2, (size.Y-h)/2)
	xdraw.CatmullRom.Scale(dst, image.Rectangle{Min: off, Max: off.Add(image.Pt(w, h))}, src, sb, xdraw.Over, nil)
	return dst
}
