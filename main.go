package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/vidframes/cmd"
	"github.com/lepinkainen/vidframes/types"
	"github.com/lepinkainen/vidframes/ui"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var Version = "dev"

type CLI struct {
	Verbose bool             `short:"v" help:"Enable debug logging"`
	Silent  bool             `help:"Only log warnings and errors"`
	LogFile string           `help:"Write log output to this file instead of stderr" type:"path"`
	Config  kong.ConfigFlag  `help:"Load flag values from a YAML file" type:"existingfile"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Extract cmd.ExtractCmd `cmd:"" default:"withargs" help:"Extract sampled frames from every video in a folder"`
	Probe   cmd.ProbeCmd   `cmd:"" help:"Show stream properties and the sampling plan for videos"`
	Verify  cmd.VerifyCmd  `cmd:"" help:"Verify extracted frames against their manifest checksums"`
}

// logLevel maps the verbosity flags to a logrus level.
func (c *CLI) logLevel() logrus.Level {
	switch {
	case c.Verbose:
		return logrus.DebugLevel
	case c.Silent:
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

// newLogger builds the application logger. The returned function closes the log
// file, if any.
func (c *CLI) newLogger() (*logrus.Logger, func(), error) {
	if c.LogFile == "" {
		styled := isatty.IsTerminal(os.Stderr.Fd())
		return ui.NewLogger(os.Stderr, c.logLevel(), styled), func() {}, nil
	}

	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return ui.NewLogger(io.Writer(f), c.logLevel(), false), func() { _ = f.Close() }, nil
}

func newParser(cli *CLI) (*kong.Kong, error) {
	return kong.New(cli,
		kong.Name("vidframes"),
		kong.Description("Extract sampled, optionally resized, cropped and grayscaled frames from a folder of videos."),
		kong.UsageOnError(),
		kong.DefaultEnvars("VIDFRAMES"),
		kong.Configuration(cmd.YAMLConfig),
		kong.Vars{"version": Version},
	)
}

func main() {
	var cli CLI
	parser, err := newParser(&cli)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	log, closeLog, err := cli.newLogger()
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&types.AppContext{Version: Version, Logger: log})
	closeLog()
	ctx.FatalIfErrorf(err)
}
