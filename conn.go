package epaper

import (
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Conn errors.
var (
	ErrPin = errors.New("epaper: GPIO pin is invalid")
)

// hat is the SPI port and GPIO wiring of a panel.
type hat struct {
	port spi.PortCloser
	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn
}

func openHAT(config *Config) (*hat, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Annotate(err, "epaper: host init failed")
	}

	var (
		h   hat
		err error
	)
	if h.dc, err = outPin("dc", config.DCPin); err != nil {
		return nil, err
	}
	if h.cs, err = outPin("cs", config.CSPin); err != nil {
		return nil, err
	}
	if h.rst, err = outPin("rst", config.RSTPin); err != nil {
		return nil, err
	}
	if h.busy = gpioreg.ByName(config.BusyPin); h.busy == nil || h.busy == gpio.INVALID {
		return nil, errors.Annotatef(ErrPin, "busy %q", config.BusyPin)
	}
	if err = h.busy.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, errors.Annotatef(err, "epaper: busy pin %s", config.BusyPin)
	}

	if h.port, err = spireg.Open(config.SPIPort); err != nil {
		return nil, errors.Annotatef(err, "epaper: SPI open %q failed", config.SPIPort)
	}

	log.Debug("opened e-paper HAT",
		zap.Stringer("port", h.port),
		zap.Stringer("dc", h.dc),
		zap.Stringer("cs", h.cs),
		zap.Stringer("rst", h.rst),
		zap.Stringer("busy", h.busy))
	return &h, nil
}

func outPin(name, pin string) (gpio.PinOut, error) {
	p := gpioreg.ByName(pin)
	if p == nil || p == gpio.INVALID {
		return nil, errors.Annotatef(ErrPin, "%s %q", name, pin)
	}
	return p, nil
}

// waitIdle polls busy until it reads Low. The panel holds BUSY high while it
// is refreshing.
func waitIdle(busy gpio.PinIn, poll, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if busy.Read() == gpio.Low {
			return nil
		}
		if !time.Now().Before(deadline) {
			return errors.Annotatef(ErrBusyTimeout, "after %s", timeout)
		}
		time.Sleep(poll)
	}
}
