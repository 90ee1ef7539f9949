// Command epaper-bitmap writes the bitmap shown by epaper-example when it is
// started without arguments.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BeatGlow/epaper"
	"github.com/BeatGlow/epaper/internal/logutil"
	"github.com/BeatGlow/epaper/internal/runner"
)

const (
	FlagModel  = "model"
	FlagText   = "text"
	FlagFrom   = "from"
	FlagDither = "dither"
	FlagOut    = "out"
)

func main() {
	if err := logutil.InitLogger("info"); err != nil {
		fatal(err)
	}
	if err := newCommand().Execute(); err != nil {
		os.Exit(runner.ExitCodeFatal)
	}
}

func newCommand() *cobra.Command {
	o := &options{
		model: epaper.Waveshare2in13V2,
		text:  "Like a Sir",
		out:   ".",
	}

	cmd := &cobra.Command{
		Use:   "epaper-bitmap",
		Short: "Generate the default e-paper example bitmap",
		Long: "Generate like_a_sir_{width}x{height}-mono.bmp for a panel model, either as a " +
			"framed text banner or by fitting an existing picture to the panel",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, err := o.write()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bitmap written to '%s'\n", name)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.VarP(&o.model, FlagModel, "m", fmt.Sprintf("panel model %v", epaper.Models()))
	flags.StringVarP(&o.text, FlagText, "t", o.text, "banner text")
	flags.StringVarP(&o.from, FlagFrom, "f", "", "picture to fit to the panel instead of the banner")
	flags.BoolVarP(&o.dither, FlagDither, "d", false, "use Floyd-Steinberg dithering instead of a threshold")
	flags.StringVarP(&o.out, FlagOut, "o", o.out, "output directory")
	return cmd
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(runner.ExitCodeFatal)
}
