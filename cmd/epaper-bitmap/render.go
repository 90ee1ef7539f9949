package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/BeatGlow/epaper"
	"github.com/BeatGlow/epaper/bitmap"
	"github.com/BeatGlow/epaper/draw"
	"github.com/BeatGlow/epaper/internal/runner"
	"github.com/BeatGlow/epaper/pixel"
)

const (
	borderInset  = 2
	borderRadius = 8
	textPadding  = 6
	maxFontSize  = 32
	minFontSize  = 6
)

type options struct {
	model  epaper.Model
	text   string
	from   string
	dither bool
	out    string
}

// write renders the bitmap and stores it in the output directory.
func (o *options) write() (name string, err error) {
	img, err := o.render()
	if err != nil {
		return "", err
	}

	size := img.Bounds().Size()
	name = filepath.Join(o.out, runner.DefaultBitmapName(size.X, size.Y))
	f, err := os.Create(name)
	if err != nil {
		return "", errors.Trace(err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Trace(cerr)
		}
	}()

	if err = bitmap.EncodeBMP(f, img); err != nil {
		return "", err
	}
	log.Info("bitmap written",
		zap.String("path", name),
		zap.Stringer("model", o.model),
		zap.Bool("dither", o.dither))
	return name, nil
}

// render produces a mono image in the native orientation of the panel.
func (o *options) render() (*pixel.MonoImage, error) {
	size := o.model.Size()
	if size == (image.Point{}) {
		return nil, errors.Annotatef(epaper.ErrModel, "model %s", o.model)
	}

	var canvas *image.RGBA
	if o.from != "" {
		src, err := bitmap.Load(bitmap.OpenFile, o.from, bitmap.Codecs)
		if err != nil {
			return nil, errors.Annotatef(err, "load %s", o.from)
		}
		canvas = bitmap.Fit(src, size)
	} else {
		var err error
		if canvas, err = banner(size, o.text); err != nil {
			return nil, err
		}
	}

	if o.dither {
		return pixel.Dither(canvas), nil
	}
	return pixel.Threshold(canvas), nil
}

// banner draws text inside a rounded frame on a white canvas.
func banner(size image.Point, text string) (*image.RGBA, error) {
	canvas := image.NewRGBA(image.Rectangle{Max: size})
	draw.Fill(canvas, image.White)

	frame := canvas.Bounds().Inset(borderInset)
	draw.RoundedRectangle(canvas, frame, borderRadius, color.Black)
	if text == "" {
		return canvas, nil
	}

	area := frame.Inset(textPadding)
	face, err := fitFace(text, area.Size())
	if err != nil {
		return nil, err
	}
	defer face.Close()

	if err = face.DrawCentered(canvas, area, text, color.Black); err != nil {
		return nil, errors.Trace(err)
	}
	return canvas, nil
}

// fitFace returns the largest Go Regular face that fits text into size.
func fitFace(text string, size image.Point) (*draw.Face, error) {
	for pt := maxFontSize; ; pt-- {
		face, err := draw.NewFace(nil, float64(pt))
		if err != nil {
			return nil, errors.Trace(err)
		}
		m := face.Measure(text)
		if pt == minFontSize || (m.X <= size.X && m.Y <= size.Y) {
			return face, nil
		}
		face.Close()
	}
}
