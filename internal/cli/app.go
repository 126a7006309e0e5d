package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/dyike/indexstats/config"
	"github.com/dyike/indexstats/internal/client"
	"github.com/dyike/indexstats/internal/dashboard"
	"github.com/dyike/indexstats/internal/display"
	"github.com/dyike/indexstats/internal/export"
	"github.com/dyike/indexstats/internal/table"
	"github.com/dyike/indexstats/internal/utils"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	configPath string
	baseURL    string
	cookies    string
	theme      string
	exportDir  string
	debug      bool
}

// app is everything a command needs, built once per invocation.
type app struct {
	cfg      *config.Config
	manager  *config.Manager
	logger   *logrus.Logger
	closeLog func() error
	out      io.Writer

	view      *table.View
	dashboard *dashboard.Dashboard
}

// loadConfig resolves the effective config: the config file (--config, an
// indexstats.{yaml,yml,json} in the working directory, or the per-user file
// created with defaults on first use), then environment variables, then flags.
func loadConfig(opts *rootOptions) (*config.Config, *config.Manager, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("determine working directory: %w", err)
	}
	path, err := utils.NewConfigStore().Resolve(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	managerOpts := []config.ManagerOption{
		config.WithInitialConfig(config.DefaultConfigWithRoot(wd)),
		config.WithOverlay(opts.overlay),
	}
	if path != "" {
		managerOpts = append(managerOpts, config.WithConfigPath(path))
	}
	mgr, err := config.NewManager(managerOpts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := mgr.Get()
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, mgr, nil
}

// overlay applies environment variables and then flags on top of the values
// read from the config file. It runs again on every reload of the file.
func (opts *rootOptions) overlay(cfg *config.Config) {
	cfg.ApplyEnv()
	if opts.baseURL != "" {
		cfg.BaseURL = opts.baseURL
	}
	if opts.cookies != "" {
		cfg.Cookies = opts.cookies
	}
	if opts.exportDir != "" {
		cfg.ExportDir = opts.exportDir
	}
	if opts.theme != "" {
		cfg.Theme = opts.theme
	}
	if opts.debug {
		cfg.Debug = true
	}
}

type appOptions struct {
	interactive bool
	spinner     bool
}

func newApp(opts *rootOptions, out io.Writer, aopts appOptions) (*app, error) {
	cfg, mgr, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	logger, closeLog, err := utils.NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	c, err := client.New(cfg, logger)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	view := table.NewView(dashboard.SortModeFor(cfg.SortMode), cfg.Theme == config.ThemeDark)
	dark := func() bool { return view.Snapshot().Dark }
	dash := dashboard.New(c, view, export.NewExporter(cfg.ExportDir),
		dashboard.WithLogger(logger),
		dashboard.WithAlerter(display.NewTerminalAlerter(out, dark, aopts.interactive)),
		dashboard.WithIndicator(display.NewSpinner(out, aopts.spinner && isStdout(out))),
	)

	return &app{
		cfg:       cfg,
		manager:   mgr,
		logger:    logger,
		closeLog:  closeLog,
		out:       out,
		view:      view,
		dashboard: dash,
	}, nil
}

func (a *app) Close() {
	if err := a.closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
	}
}

func (a *app) render() {
	fmt.Fprint(a.out, display.Render(a.view.Snapshot()))
}

func (a *app) dark() bool {
	return a.view.Snapshot().Dark
}

func isStdout(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && f == os.Stdout
}
