// Package epaper contains drivers for e-paper displays.
//
// The panel protocol itself (waveforms, refresh sequencing, RAM packing) is handled by
// the periph.io device drivers; this package wraps them behind a small [Display]
// interface suited to "clear, wait, show" programs.
package epaper

import (
	"image"
	"os"
	"strings"

	"github.com/pingcap/errors"
)

var debug bool

func init() {
	debug = os.Getenv("DISPLAY_DEBUG") != ""
}

// Debug reports whether the DISPLAY_DEBUG environment variable is set.
func Debug() bool {
	return debug
}

// Errors
var (
	ErrBounds      = errors.New("epaper: image does not fit the display")
	ErrBusyTimeout = errors.New("epaper: timeout waiting for display to be ready")
	ErrClosed      = errors.New("epaper: display is closed")
	ErrModel       = errors.New("epaper: unsupported display model")
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// MarshalText encodes the rotation in degrees.
func (r Rotation) MarshalText() ([]byte, error) {
	return []byte(strings.TrimSuffix(r.String(), "°")), nil
}

// UnmarshalText parses a rotation in degrees or a direction name.
func (r *Rotation) UnmarshalText(text []byte) error {
	switch v := strings.ToLower(strings.TrimSpace(string(text))); v {
	case "", "no", "0":
		*r = NoRotation
	case "90", "right", "cw":
		*r = Rotate90
	case "180", "flip":
		*r = Rotate180
	case "270", "left", "ccw":
		*r = Rotate270
	default:
		return errors.Errorf("epaper: invalid rotation %q", v)
	}
	return nil
}

// Display is an e-paper display.
type Display interface {
	String() string

	// Close puts the panel to sleep and releases the bus.
	Close() error

	// Bounds is the display bounding box (dimensions).
	Bounds() image.Rectangle

	// Width of the panel in pixels.
	Width() int

	// Height of the panel in pixels.
	Height() int

	// Clear the panel to white.
	Clear() error

	// WaitUntilReady blocks until the panel reports it is idle.
	WaitUntilReady() error

	// DisplayImage sends img to the panel. A full refresh redraws the whole
	// panel; otherwise a partial update is used when the panel supports it.
	DisplayImage(img image.Image, fullRefresh bool) error
}
