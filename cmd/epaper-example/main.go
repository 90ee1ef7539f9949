// Command epaper-example shows a bitmap on a Waveshare 2.13" e-paper HAT.
//
// Usage:
//
//	epaper-example [bitmap]
//
// Without an argument the bitmap like_a_sir_{width}x{height}-mono.bmp next to
// the executable is shown. Pin assignments and rotation are read from
// epaper.toml in the same directory, if present.
package main

import (
	"fmt"
	"os"

	"github.com/BeatGlow/epaper"
	"github.com/BeatGlow/epaper/internal/logutil"
	"github.com/BeatGlow/epaper/internal/runner"
)

func main() {
	dir, err := runner.ExecutableDir()
	if err != nil {
		fatal(err)
	}

	config, err := epaper.LoadConfig(epaper.ConfigPath(dir))
	if err != nil {
		fatal(err)
	}
	if err = logutil.InitLogger(config.LogLevel); err != nil {
		fatal(err)
	}

	status, err := runner.New(
		runner.WithConfig(config),
		runner.WithExecutableDir(func() (string, error) { return dir, nil }),
	).Run(os.Args[1:])
	if err != nil {
		fatal(err)
	}
	os.Exit(status.ExitCode())
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(runner.ExitCodeFatal)
}
