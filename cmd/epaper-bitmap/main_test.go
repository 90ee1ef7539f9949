package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BeatGlow/epaper"
	"github.com/BeatGlow/epaper/bitmap"
	"github.com/BeatGlow/epaper/pixel"
)

func countInk(img *pixel.MonoImage) (ink int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.At(x, y) == pixel.Off {
				ink++
			}
		}
	}
	return
}

func TestRenderBanner(t *testing.T) {
	o := &options{model: epaper.Waveshare2in13V2, text: "Like a Sir"}
	img, err := o.render()
	require.NoError(t, err)
	require.Equal(t, epaper.Waveshare2in13V2.Size(), img.Bounds().Size())

	// Frame corners stay white, frame edges are black.
	require.Equal(t, pixel.On, img.At(0, 0))
	require.Equal(t, pixel.Off, img.At(61, 2))

	framed := countInk(img)
	o.text = ""
	plain, err := o.render()
	require.NoError(t, err)
	require.Greater(t, framed, countInk(plain))
}

func TestRenderFrom(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			src.Set(x, y, color.Gray{Y: uint8(x * 6)})
		}
	}
	name := filepath.Join(t.TempDir(), "gradient.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	require.NoError(t, os.WriteFile(name, buf.Bytes(), 0o644))

	for _, dither := range []bool{false, true} {
		o := &options{model: epaper.Waveshare2in13V2, from: name, dither: dither}
		img, err := o.render()
		require.NoError(t, err)
		require.Equal(t, image.Pt(122, 250), img.Bounds().Size())
		require.NotZero(t, countInk(img))
	}
}

func TestRenderMissingSource(t *testing.T) {
	o := &options{model: epaper.Waveshare2in13V2, from: filepath.Join(t.TempDir(), "nope.png")}
	_, err := o.render()
	require.Error(t, err)
}

func TestCommand(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	cmd := newCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--model", "waveshare2in13v2", "--text", "Hi", "--out", dir})
	require.NoError(t, cmd.Execute())

	name := filepath.Join(dir, "like_a_sir_122x250-mono.bmp")
	require.Contains(t, out.String(), name)

	data, err := os.ReadFile(name)
	require.NoError(t, err)
	require.Equal(t, "BM", string(data[:2]))
	require.Equal(t, byte(1), data[28], "monochrome bitmap")

	img, err := bitmap.Load(bitmap.OpenFile, name, bitmap.Codecs)
	require.NoError(t, err)
	require.Equal(t, image.Pt(122, 250), img.Bounds().Size())
}

func TestCommandUnknownModel(t *testing.T) {
	cmd := newCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--model", "ssd1306", "--out", t.TempDir()})
	require.Error(t, cmd.Execute())
}
