// Package runner implements the e-paper example: acquire a display, load a
// bitmap, clear the panel and show the bitmap.
package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pingcap/errors"
	"github.com/pingcap/log"
	"go.uber.org/zap"

	"github.com/BeatGlow/epaper"
	"github.com/BeatGlow/epaper/bitmap"
)

// DisplayModel is the panel driven by the example.
const DisplayModel = epaper.Waveshare2in13V2

// Status is the outcome of a run that did not fail.
type Status int

// Run outcomes.
const (
	StatusDone Status = iota
	StatusFailed
	StatusNoDisplay
	StatusNoBitmap
)

// Process exit codes.
const (
	ExitCodeDone      = 0
	ExitCodeFatal     = 1
	ExitCodeNoDisplay = 2
	ExitCodeNoBitmap  = 3
)

func (s Status) String() string {
	switch s {
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	case StatusNoDisplay:
		return "no display"
	case StatusNoBitmap:
		return "no bitmap"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// ExitCode maps the status to a process exit code.
func (s Status) ExitCode() int {
	switch s {
	case StatusDone:
		return ExitCodeDone
	case StatusNoDisplay:
		return ExitCodeNoDisplay
	case StatusNoBitmap:
		return ExitCodeNoBitmap
	default:
		return ExitCodeFatal
	}
}

// Factory creates a display for a panel model.
type Factory func(model epaper.Model, config *epaper.Config) (epaper.Display, error)

// StatFunc reports file information, like os.Stat.
type StatFunc func(name string) (os.FileInfo, error)

// Runner runs the example once.
type Runner struct {
	model   epaper.Model
	config  *epaper.Config
	create  Factory
	decoder bitmap.Decoder
	stat    StatFunc
	open    bitmap.OpenFunc
	exeDir  func() (string, error)
	out     io.Writer
	now     func() time.Time
}

// Option configures a Runner.
type Option func(*Runner)

// WithConfig sets the configuration passed to the display factory.
func WithConfig(config *epaper.Config) Option {
	return func(r *Runner) { r.config = config }
}

// WithFactory replaces the display factory.
func WithFactory(create Factory) Option {
	return func(r *Runner) { r.create = create }
}

// WithDecoder replaces the bitmap decoder.
func WithDecoder(dec bitmap.Decoder) Option {
	return func(r *Runner) { r.decoder = dec }
}

// WithStat replaces the file existence check.
func WithStat(stat StatFunc) Option {
	return func(r *Runner) { r.stat = stat }
}

// WithOpen replaces the bitmap file opener.
func WithOpen(open bitmap.OpenFunc) Option {
	return func(r *Runner) { r.open = open }
}

// WithExecutableDir replaces the resolver for the default bitmap directory.
func WithExecutableDir(dir func() (string, error)) Option {
	return func(r *Runner) { r.exeDir = dir }
}

// WithOutput redirects progress messages.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) { r.out = w }
}

// WithClock replaces the time source of the phase timers.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New returns a Runner wired to the real hardware and file system unless
// overridden by opts.
func New(opts ...Option) *Runner {
	r := &Runner{
		model:   DisplayModel,
		create:  epaper.Create,
		decoder: bitmap.Codecs,
		stat:    os.Stat,
		open:    bitmap.OpenFile,
		exeDir:  ExecutableDir,
		out:     os.Stdout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run acquires the display, loads the bitmap named by args (or the default
// bitmap next to the executable) and shows it. Errors are fatal; the other
// early exits are reported through the returned Status.
func (r *Runner) Run(args []string) (Status, error) {
	t := newTimer(r.out, "Initializing E-Paper Display...", r.now)
	d, err := r.create(r.model, r.config)
	if err != nil || d == nil {
		t.Abort()
		return StatusNoDisplay, nil
	}
	t.Stop()
	defer func() {
		if err := d.Close(); err != nil {
			log.Warn("close display failed", zap.Stringer("display", d), zap.Error(err))
		}
	}()

	path, err := r.bitmapPath(args, d.Width(), d.Height())
	if err != nil {
		return StatusFailed, err
	}
	if !r.exists(path) {
		fmt.Fprintf(r.out, "Can not find Bitmap file: '%s'!\n", path)
		return StatusNoBitmap, nil
	}

	fmt.Fprintf(r.out, "Loading Bitmap from '%s'...\n", path)
	img, err := bitmap.Load(r.open, path, r.decoder)
	if err != nil {
		return StatusFailed, errors.Annotatef(err, "Can not load Bitmap from '%s'!", path)
	}
	size := img.Bounds().Size()
	fmt.Fprintf(r.out, "Bitmap loaded: %dx%d\n", size.X, size.Y)

	if err = r.phase("Waiting for E-Paper Display...", d.Clear, d.WaitUntilReady); err != nil {
		return StatusFailed, err
	}
	if err = r.phase("Sending Image to E-Paper Display...", func() error {
		return d.DisplayImage(img, true)
	}); err != nil {
		return StatusFailed, err
	}

	fmt.Fprintln(r.out, "Done")
	return StatusDone, nil
}

// phase runs steps in order inside one timed scope.
func (r *Runner) phase(label string, steps ...func() error) error {
	t := newTimer(r.out, label, r.now)
	for _, step := range steps {
		if err := step(); err != nil {
			t.Abort()
			return errors.Trace(err)
		}
	}
	t.Stop()
	return nil
}

func (r *Runner) bitmapPath(args []string, width, height int) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	dir, err := r.exeDir()
	if err != nil {
		return "", errors.Annotate(err, "resolve executable directory")
	}
	return ResolveBitmapPath(nil, dir, width, height), nil
}

func (r *Runner) exists(path string) bool {
	info, err := r.stat(path)
	if err != nil {
		log.Debug("bitmap not accessible", zap.String("path", path), zap.Error(err))
		return false
	}
	return !info.IsDir()
}

// DefaultBitmapName is the bitmap looked up when no path is given.
func DefaultBitmapName(width, height int) string {
	return fmt.Sprintf("like_a_sir_%dx%d-mono.bmp", width, height)
}

// ResolveBitmapPath returns the first argument verbatim, or the default
// bitmap name inside exeDir when there are no arguments.
func ResolveBitmapPath(args []string, exeDir string, width, height int) string {
	if len(args) > 0 {
		return args[0]
	}
	return filepath.Join(exeDir, DefaultBitmapName(width, height))
}

// ExecutableDir is the directory holding the running executable.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Trace(err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
