package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/adnsv/go-utils/fs"
	"github.com/adnsv/svgrender/errs"
	"github.com/adnsv/svgrender/model"
	"github.com/adnsv/svgrender/render"
	"github.com/charmbracelet/log"
	cli "github.com/jawher/mow.cli"
)

// selection holds the command-line overrides of the config file.
type selection struct {
	configFN string
	src      string
	out      string
	glob     string
	marker   string
	tool     string
	assets   []string
}

func (s *selection) register(cmd *cli.Cmd) {
	cmd.StringOptPtr(&s.src, "s src", "", "source directory")
	cmd.StringOptPtr(&s.out, "o out", "", "output directory")
	cmd.StringOptPtr(&s.glob, "g glob", "", "discover sources matching this pattern")
	cmd.StringOptPtr(&s.marker, "m marker", "", "drop source lines containing this text")
	cmd.StringOptPtr(&s.tool, "t tool", "", "path to the vector graphics editor")
	cmd.StringsArgPtr(&s.assets, "ASSETS", nil, "asset names (overrides the configured list)")
}

// load resolves the config (explicit file, file in the working directory,
// or built-in defaults) and applies the overrides.
func (s *selection) load() (*model.Config, error) {
	fn := s.configFN
	if fn == "" {
		fn = model.FindConfig(".")
	}

	cfg := model.DefaultConfig()
	if fn != "" {
		var err error
		cfg, err = model.LoadConfig(fn)
		if err != nil {
			return nil, err
		}
	}

	if s.src != "" {
		cfg.SourceDir = s.src
	}
	if s.out != "" {
		cfg.OutputDir = s.out
	}
	if len(s.assets) > 0 {
		cfg.Assets = s.assets
		cfg.Glob = ""
	}
	if s.glob != "" {
		if len(s.assets) == 0 {
			cfg.Assets = nil
		}
		cfg.Glob = s.glob
	}
	if s.marker != "" {
		cfg.Marker = s.marker
	}
	if s.tool != "" {
		cfg.Tool.Exec = s.tool
	}
	return cfg, cfg.Validate()
}

func runRender(ctx context.Context, s *selection, logger *log.Logger) error {
	cfg, err := s.load()
	if err != nil {
		return err
	}
	assets, err := cfg.Discover()
	if err != nil {
		return err
	}
	logger.Debugf("%d asset(s) in %s", len(assets), cfg.SourceDir)

	r := render.New(cfg, render.NewExecTool(cfg, logger), logger)
	_, err = r.Run(ctx, assets)
	return err
}

func runStatus(w io.Writer, s *selection) error {
	cfg, err := s.load()
	if err != nil {
		return err
	}
	assets, err := cfg.Discover()
	if err != nil {
		return err
	}
	steps, err := render.New(cfg, nil, nil).Plan(assets)
	if err != nil {
		return err
	}
	for _, st := range steps {
		fmt.Fprintln(w, formatStep(st))
	}
	return nil
}

func runInit(fn string, force bool, logger *log.Logger) error {
	if fs.FileExists(fn) && !force {
		return errs.New(errs.CodeConfig, "%s already exists (use --force to overwrite)", fn)
	}
	buf, err := model.DefaultConfig().Marshal()
	if err != nil {
		return err
	}
	logger.Infof("writing %s", fn)
	if err := fs.WriteFileIfChanged(fn, buf); err != nil {
		return errs.Wrap(errs.CodeIO, err, "writing %s", fn)
	}
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := newLogger(os.Stderr, log.InfoLevel)
	verbose := false

	fail := func(err error) {
		if err == nil {
			return
		}
		if errors.Is(err, context.Canceled) {
			cli.Exit(130)
		}
		logger.Error(err)
		logger.Debugf("%+v", err)
		cli.Exit(errs.ExitCode(err))
	}

	app := cli.App("svgrender", "Incremental SVG asset renderer")
	app.Version("version", appVersion())
	app.BoolOptPtr(&verbose, "v verbose", false, "enable debug logging")
	app.Before = func() {
		if verbose {
			logger.SetLevel(log.DebugLevel)
		}
	}

	configOpt := func(cmd *cli.Cmd, s *selection) {
		cmd.StringOptPtr(&s.configFN, "c config", "", "config file (yaml or toml)")
	}

	app.Command("render", "render stale assets", func(cmd *cli.Cmd) {
		s := &selection{}
		cmd.Spec = "[-c=<CONFIG>] [-s=<DIR>] [-o=<DIR>] [-g=<PATTERN>] [-m=<TEXT>] [-t=<EXEC>] [ASSETS...]"
		configOpt(cmd, s)
		s.register(cmd)
		cmd.Action = func() {
			fail(runRender(ctx, s, logger))
		}
	})

	app.Command("status", "show which assets are stale", func(cmd *cli.Cmd) {
		s := &selection{}
		cmd.Spec = "[-c=<CONFIG>] [-s=<DIR>] [-o=<DIR>] [-g=<PATTERN>] [-m=<TEXT>] [-t=<EXEC>] [ASSETS...]"
		configOpt(cmd, s)
		s.register(cmd)
		cmd.Action = func() {
			fail(runStatus(os.Stdout, s))
		}
	})

	app.Command("init", "write a default svgrender.yaml", func(cmd *cli.Cmd) {
		cmd.Spec = "[-f] [FILE]"
		force := cmd.BoolOpt("f force", false, "overwrite an existing file")
		fn := cmd.StringArg("FILE", model.DefaultConfigNames[0], "config file to create")
		cmd.Action = func() {
			fail(runInit(*fn, *force, logger))
		}
	})

	// no command: render with the config found in the working directory
	app.Action = func() {
		fail(runRender(ctx, &selection{}, logger))
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
