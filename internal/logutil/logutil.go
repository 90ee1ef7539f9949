// Package logutil sets up the process wide logger.
package logutil

import (
	"os"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BeatGlow/epaper"
)

// InitLogger installs a stderr logger at the given level as the global
// logger. DISPLAY_DEBUG forces the debug level.
func InitLogger(level string) error {
	if epaper.Debug() {
		level = "debug"
	}
	lg, props, err := NewLogger(zapcore.Lock(os.Stderr), level)
	if err != nil {
		return err
	}
	log.ReplaceGlobals(lg, props)
	return nil
}

// NewLogger builds a console logger writing to w.
func NewLogger(w zapcore.WriteSyncer, level string) (*zap.Logger, *log.ZapProperties, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, errors.Annotatef(err, "invalid log level %q", level)
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), w, lvl)
	return zap.New(core, zap.AddCaller()), &log.ZapProperties{
		Core:   core,
		Syncer: w,
		Level:  lvl,
	}, nil
}
