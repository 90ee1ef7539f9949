package epaper

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/waveshare2in13v2"
)

// panel is the part of the periph e-paper drivers used here.
type panel interface {
	Clear(color.Color) error
	Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error
	Bounds() image.Rectangle
	Sleep() error
}

// updateModeFunc switches the driver between full and partial refresh.
type updateModeFunc func(partial bool) error

type waveshare2in13 struct {
	model   Model
	dev     panel
	port    io.Closer
	busy    gpio.PinIn
	setMode updateModeFunc // nil if the driver only does full refreshes
	partial bool
	config  Config
	closed  bool
}

func openWaveshare2in13(model Model, config *Config) (Display, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	h, err := openHAT(config)
	if err != nil {
		return nil, err
	}

	opts := waveshare2in13v2.EPD2in13v2
	dev, err := waveshare2in13v2.New(h.port, h.dc, h.cs, h.rst, h.busy, &opts)
	if err != nil {
		_ = h.port.Close()
		return nil, errors.Annotate(err, "epaper: driver setup failed")
	}
	if err = dev.Init(); err != nil {
		_ = h.port.Close()
		return nil, errors.Annotate(err, "epaper: display init failed")
	}

	return newWaveshare2in13(model, dev, h.port, h.busy, updateMode(dev), config), nil
}

// updateMode drives the refresh mode of the periph driver, which starts out
// in full refresh mode.
func updateMode(dev *waveshare2in13v2.Dev) updateModeFunc {
	return func(partial bool) error {
		if partial {
			return dev.SetUpdateMode(waveshare2in13v2.Partial)
		}
		return dev.SetUpdateMode(waveshare2in13v2.Full)
	}
}

func newWaveshare2in13(model Model, dev panel, port io.Closer, busy gpio.PinIn, setMode updateModeFunc, config *Config) *waveshare2in13 {
	return &waveshare2in13{
		model:   model,
		dev:     dev,
		port:    port,
		busy:    busy,
		setMode: setMode,
		config:  *config,
	}
}

func (d *waveshare2in13) String() string {
	size := d.Bounds().Size()
	return fmt.Sprintf("%s e-paper %dx%d", d.model, size.X, size.Y)
}

func (d *waveshare2in13) Bounds() image.Rectangle {
	return d.dev.Bounds()
}

func (d *waveshare2in13) Width() int {
	return d.Bounds().Dx()
}

func (d *waveshare2in13) Height() int {
	return d.Bounds().Dy()
}

func (d *waveshare2in13) Clear() error {
	if d.closed {
		return ErrClosed
	}
	return errors.Annotate(d.dev.Clear(color.White), "epaper: clear failed")
}

func (d *waveshare2in13) WaitUntilReady() error {
	if d.closed {
		return ErrClosed
	}
	return waitIdle(d.busy, d.config.BusyPoll, d.config.BusyTimeout)
}

func (d *waveshare2in13) DisplayImage(img image.Image, fullRefresh bool) error {
	if d.closed {
		return ErrClosed
	}

	frame, err := toPanel(img, d.Bounds(), d.config.Rotation)
	if err != nil {
		return err
	}

	if partial := !fullRefresh && d.setMode != nil; partial != d.partial {
		if err = d.setMode(partial); err != nil {
			return errors.Annotate(err, "epaper: switching update mode failed")
		}
		d.partial = partial
	}

	log.Debug("refresh",
		zap.Stringer("display", d),
		zap.Bool("partial", d.partial))
	return errors.Annotate(d.dev.Draw(d.Bounds(), frame, image.Point{}), "epaper: draw failed")
}

func (d *waveshare2in13) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	err := d.dev.Sleep()
	if cerr := d.port.Close(); err == nil {
		err = cerr
	}
	return errors.Trace(err)
}
