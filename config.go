package epaper

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
)

// ConfigFile is the name of the optional configuration file, looked up next
// to the executable.
const ConfigFile = "epaper.toml"

// Config is the display configuration.
type Config struct {
	// SPIPort is the periph SPI port name, empty for the first available port.
	SPIPort string `toml:"spi-port"`

	// DCPin is the data/command GPIO pin.
	DCPin string `toml:"dc-pin"`

	// CSPin is the chip select GPIO pin.
	CSPin string `toml:"cs-pin"`

	// RSTPin is the reset GPIO pin.
	RSTPin string `toml:"rst-pin"`

	// BusyPin is the BUSY input GPIO pin.
	BusyPin string `toml:"busy-pin"`

	// BusyTimeout bounds WaitUntilReady.
	BusyTimeout time.Duration `toml:"busy-timeout"`

	// BusyPoll is the BUSY pin polling interval.
	BusyPoll time.Duration `toml:"busy-poll"`

	// Rotation of the panel.
	Rotation Rotation `toml:"rotation"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `toml:"log-level"`
}

// DefaultConfig returns the wiring of the Waveshare e-Paper HAT.
func DefaultConfig() Config {
	return Config{
		DCPin:       "GPIO25",
		CSPin:       "GPIO8",
		RSTPin:      "GPIO17",
		BusyPin:     "GPIO24",
		BusyTimeout: 10 * time.Second,
		BusyPoll:    10 * time.Millisecond,
		LogLevel:    "info",
	}
}

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	for name, pin := range map[string]string{
		"dc-pin":   c.DCPin,
		"cs-pin":   c.CSPin,
		"rst-pin":  c.RSTPin,
		"busy-pin": c.BusyPin,
	} {
		if pin == "" {
			return errors.Errorf("epaper: %s is required", name)
		}
	}
	if c.BusyTimeout <= 0 {
		return errors.Errorf("epaper: busy-timeout must be positive, got %s", c.BusyTimeout)
	}
	if c.BusyPoll <= 0 {
		return errors.Errorf("epaper: busy-poll must be positive, got %s", c.BusyPoll)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("epaper: invalid log-level %q", c.LogLevel)
	}
	return nil
}

// LoadConfig decodes the TOML file at path over the defaults. A missing file
// yields the defaults; unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Annotatef(err, "epaper: failed to decode config file %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, errors.Errorf("epaper: config file %s contained unknown configuration options: %s",
			path, strings.Join(keys, ", "))
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigPath returns the configuration file path inside dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFile)
}
