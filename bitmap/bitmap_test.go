package bitmap

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/pingcap/errors"
	"github.com/stretchr/testify/require"
)

type trackedReader struct {
	io.Reader
	closed int
}

func (r *trackedReader) Close() error {
	r.closed++
	return nil
}

func testImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 16, 8))
	for i := range img.Pix {
		if i%3 == 0 {
			img.Pix[i] = 0xff
		}
	}
	return img
}

// monoBMP returns an 8×2 1-bit bitmap, stored bottom-up with a black/white
// palette. The top row alternates white and black, the bottom row is four
// white pixels followed by four black ones.
func monoBMP() []byte {
	var (
		buf  bytes.Buffer
		le   = binary.LittleEndian
		rows = []byte{
			0xf0, 0, 0, 0, // bottom row, padded to 4 bytes
			0xaa, 0, 0, 0, // top row
		}
	)
	buf.WriteString("BM")
	binary.Write(&buf, le, uint32(14+40+8+len(rows))) // file size
	binary.Write(&buf, le, uint32(0))                  // reserved
	binary.Write(&buf, le, uint32(14+40+8))            // pixel data offset
	binary.Write(&buf, le, struct {
		Size, Width, Height     int32
		Planes, BitCount        uint16
		Compression, ImageSize  uint32
		XPerMeter, YPerMeter    int32
		ColorsUsed, ColorsImprt uint32
	}{40, 8, 2, 1, 1, 0, uint32(len(rows)), 2835, 2835, 2, 0})
	buf.Write([]byte{0x00, 0x00, 0x00, 0x00}) // index 0: black (BGRX)
	buf.Write([]byte{0xff, 0xff, 0xff, 0x00}) // index 1: white
	buf.Write(rows)
	return buf.Bytes()
}

func isWhite(t *testing.T, img image.Image, x, y int) bool {
	t.Helper()
	r, g, b, _ := img.At(x, y).RGBA()
	return r == 0xffff && g == 0xffff && b == 0xffff
}

func TestCodecsMonoBMP(t *testing.T) {
	img, err := Codecs.Decode(bytes.NewReader(monoBMP()))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 2), img.Bounds())

	for x := 0; x < 8; x++ {
		require.Equal(t, x%2 == 0, isWhite(t, img, x, 0), "top row x=%d", x)
		require.Equal(t, x < 4, isWhite(t, img, x, 1), "bottom row x=%d", x)
	}
}

func TestCodecsBMP(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeBMP(&buf, testImage()))
	require.Equal(t, "BM", buf.String()[:2])
	require.Equal(t, uint16(1), binary.LittleEndian.Uint16(buf.Bytes()[28:]), "bits per pixel")

	img, err := Codecs.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 16, 8), img.Bounds())

	r, _, _, _ := img.At(0, 0).RGBA()
	require.Equal(t, uint32(0xffff), r)
	r, _, _, _ = img.At(1, 0).RGBA()
	require.Equal(t, uint32(0), r)
}

func TestCodecsPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))

	img, err := Codecs.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 16, img.Bounds().Dx())
}

func TestCodecsUnknown(t *testing.T) {
	_, err := Codecs.Decode(bytes.NewBufferString("this is not an image"))
	require.Error(t, err)
	require.Equal(t, ErrUnknownFormat, errors.Cause(err))
}

func TestLoad(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeBMP(&buf, testImage()))

	t.Run("ok", func(t *testing.T) {
		f := &trackedReader{Reader: bytes.NewReader(buf.Bytes())}
		img, err := Load(func(name string) (io.ReadCloser, error) {
			require.Equal(t, "image.bmp", name)
			return f, nil
		}, "image.bmp", nil)
		require.NoError(t, err)
		require.Equal(t, 8, img.Bounds().Dy())
		require.Equal(t, 1, f.closed)
	})

	t.Run("corrupt", func(t *testing.T) {
		f := &trackedReader{Reader: bytes.NewReader(buf.Bytes()[:20])}
		_, err := Load(func(string) (io.ReadCloser, error) { return f, nil }, "image.bmp", Codecs)
		require.Error(t, err)
		require.Equal(t, 1, f.closed)
	})

	t.Run("decoder error", func(t *testing.T) {
		f := &trackedReader{Reader: bytes.NewReader(nil)}
		boom := errors.New("boom")
		_, err := Load(func(string) (io.ReadCloser, error) { return f, nil }, "image.bmp", DecoderFunc(func(io.Reader) (image.Image, error) {
			return nil, boom
		}))
		require.Equal(t, boom, errors.Cause(err))
		require.Equal(t, 1, f.closed)
	})

	t.Run("open error", func(t *testing.T) {
		_, err := Load(nil, filepath.Join(t.TempDir(), "missing.bmp"), nil)
		require.Error(t, err)
		require.True(t, os.IsNotExist(errors.Cause(err)))
	})

	t.Run("file", func(t *testing.T) {
		name := filepath.Join(t.TempDir(), "image.bmp")
		require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o644))
		img, err := Load(nil, name, nil)
		require.NoError(t, err)
		require.Equal(t, 16, img.Bounds().Dx())
	})
}

func TestPaletted(t *testing.T) {
	src := image.NewNRGBA(image.Rect(2, 3, 6, 5))
	src.Set(2, 3, color.Black)
	src.Set(5, 4, color.NRGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff})

	dst := Paletted(src)
	require.Equal(t, image.Rect(0, 0, 4, 2), dst.Bounds())
	require.Len(t, dst.Palette, 2)
	require.Equal(t, uint8(0), dst.ColorIndexAt(0, 0))
	require.Equal(t, uint8(0), dst.ColorIndexAt(3, 1))
	// Transparent pixels are paper.
	require.Equal(t, uint8(1), dst.ColorIndexAt(1, 0))
}

func TestFit(t *testing.T) {
	tests := []struct {
		name string
		src  image.Rectangle
		size image.Point
	}{
		{"landscape", image.Rect(0, 0, 400, 100), image.Pt(122, 250)},
		{"portrait", image.Rect(0, 0, 100, 400), image.Pt(250, 122)},
		{"empty", image.Rectangle{}, image.Pt(10, 10)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			src := image.NewGray(test.src)
			dst := Fit(src, test.size)
			require.Equal(t, image.Rectangle{Max: test.size}, dst.Bounds())
			// Corners are letterboxed in white.
			require.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, dst.RGBAAt(0, 0))
		})
	}
}
