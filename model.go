package epaper

import (
	"image"
	"strings"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
)

// Model identifies a supported e-paper panel.
type Model uint8

// Supported models.
const (
	Waveshare2in13V2 Model = iota + 1 // Waveshare 2.13" e-Paper HAT V2, 122×250 black/white
)

type modelInfo struct {
	name string
	size image.Point
	open func(Model, *Config) (Display, error)
}

var models = map[Model]modelInfo{
	Waveshare2in13V2: {
		name: "waveshare2in13v2",
		size: image.Pt(122, 250),
		open: openWaveshare2in13,
	},
}

// Models lists the supported models.
func Models() []Model {
	return []Model{Waveshare2in13V2}
}

// ParseModel returns the model with the given name.
func ParseModel(name string) (Model, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range Models() {
		if models[m].name == name {
			return m, nil
		}
	}
	return 0, errors.Annotatef(ErrModel, "%q", name)
}

func (m Model) String() string {
	if info, ok := models[m]; ok {
		return info.name
	}
	return "unknown"
}

// Size is the native panel size in pixels.
func (m Model) Size() image.Point {
	return models[m].size
}

// Set implements pflag.Value.
func (m *Model) Set(name string) (err error) {
	*m, err = ParseModel(name)
	return
}

// Type implements pflag.Value.
func (m *Model) Type() string {
	return "model"
}

// Create initializes the display of the given model. On failure the reason is
// logged and no resources are left open.
func Create(model Model, config *Config) (Display, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig()
	}

	info, ok := models[model]
	if !ok {
		err := errors.Annotatef(ErrModel, "%d", uint8(model))
		log.Error("cannot create e-paper display", zap.Error(err))
		return nil, err
	}

	d, err := info.open(model, config)
	if err != nil {
		log.Error("cannot create e-paper display",
			zap.Stringer("model", model),
			zap.Error(err))
		return nil, err
	}

	log.Info("e-paper display ready",
		zap.Stringer("model", model),
		zap.Int("width", d.Width()),
		zap.Int("height", d.Height()))
	return d, nil
}
