// Package cli provides the command-line interface for IndexStats
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/dyike/indexstats/config"
	"github.com/dyike/indexstats/internal/display"
	"github.com/dyike/indexstats/internal/table"
)

const Version = "1.0.0"

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "indexstats",
		Short: "IndexStats - ticker statistics dashboard",
		Long: `IndexStats shows the opening scenario and close statistics of every tracked ticker.
It reads the table from an IndexStats server, can ask the server to regenerate it,
and exports the table to CSV or PDF.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default behavior: start interactive mode
			a, err := newApp(opts, cmd.OutOrStdout(), appOptions{interactive: true, spinner: true})
			if err != nil {
				return err
			}
			defer a.Close()
			return NewInteractiveSession(a).Start(cmd.Context())
		},
	}

	rootCmd.AddCommand(newShowCmd(opts))
	rootCmd.AddCommand(newRefreshCmd(opts))
	rootCmd.AddCommand(newExportCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	// Global flags
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Configuration file path (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "IndexStats server URL")
	rootCmd.PersistentFlags().StringVar(&opts.cookies, "cookies", "", `Cookies sent to the server, e.g. "csrftoken=abc; sessionid=xyz"`)
	rootCmd.PersistentFlags().StringVar(&opts.theme, "theme", "", "Color theme: light or dark")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	return rootCmd
}

// viewFlags are the filter and sort actions applied before a table is shown
// or exported. Sorts run in the order given, so naming a column twice sorts
// it one way and then the other.
type viewFlags struct {
	search string
	sorts  []string
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.search, "search", "", "Only show symbols containing this text")
	cmd.Flags().StringArrayVar(&f.sorts, "sort", nil, "Sort by column (index 1-6, header or alias); repeatable")
}

func (f *viewFlags) apply(a *app) error {
	for _, name := range f.sorts {
		col, err := parseColumn(name)
		if err != nil {
			return err
		}
		if _, err := a.dashboard.Sort(col); err != nil {
			return err
		}
	}
	if f.search != "" {
		a.dashboard.Search(f.search)
	}
	return nil
}

// newShowCmd creates the show command
func newShowCmd(opts *rootOptions) *cobra.Command {
	var vf viewFlags
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Fetch the ticker table and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.OutOrStdout(), appOptions{spinner: true})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.dashboard.Load(cmd.Context()); err != nil {
				return err
			}
			if err := vf.apply(a); err != nil {
				return err
			}
			a.render()
			return nil
		},
	}
	vf.register(cmd)
	return cmd
}

// newRefreshCmd creates the refresh command
func newRefreshCmd(opts *rootOptions) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Ask the server to regenerate the ticker data, then print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.OutOrStdout(), appOptions{spinner: true})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.dashboard.Refresh(cmd.Context()); err != nil {
				return err
			}
			display.Success(a.out, a.dark(), "Data refreshed")
			if !quiet {
				a.render()
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print the table after refreshing")
	return cmd
}

// newExportCmd creates the export command and its csv, pdf and list subcommands
func newExportCmd(opts *rootOptions) *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export the ticker table to CSV or PDF",
	}
	exportCmd.PersistentFlags().StringVarP(&opts.exportDir, "out", "o", "", "Export directory (defaults to export_dir)")

	newFormatCmd := func(format string) *cobra.Command {
		var vf viewFlags
		cmd := &cobra.Command{
			Use:   format,
			Short: fmt.Sprintf("Write the table to a %s file", format),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				a, err := newApp(opts, cmd.OutOrStdout(), appOptions{spinner: true})
				if err != nil {
					return err
				}
				defer a.Close()

				if err := a.dashboard.Load(cmd.Context()); err != nil {
					return err
				}
				if err := vf.apply(a); err != nil {
					return err
				}
				return exportTable(a, format)
			},
		}
		vf.register(cmd)
		return cmd
	}
	exportCmd.AddCommand(newFormatCmd("csv"))
	exportCmd.AddCommand(newFormatCmd("pdf"))

	exportCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List files in the export directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return NewResultsManager(cfg.ExportDir).PrintExports(cmd.OutOrStdout())
		},
	})
	return exportCmd
}

func exportTable(a *app, format string) error {
	write := a.dashboard.ExportCSV
	if format == "pdf" {
		write = a.dashboard.ExportPDF
	}
	result, err := write()
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	display.Success(a.out, a.dark(), describeExport(result))
	return nil
}

// newWatchCmd creates the watch command
func newWatchCmd(opts *rootOptions) *cobra.Command {
	var schedule string
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the table and reprint it on a schedule until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := newApp(opts, cmd.OutOrStdout(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()
			return runWatch(ctx, a, schedule)
		},
	}
	cmd.Flags().StringVar(&schedule, "schedule", "", `Reload schedule, cron syntax or "@every 5m" (defaults to reload_schedule)`)
	return cmd
}

func runWatch(ctx context.Context, a *app, schedule string) error {
	if schedule == "" {
		schedule = a.cfg.ReloadSchedule
	}

	// The first load may fail; the schedule keeps trying.
	_ = a.dashboard.Load(ctx)
	a.render()

	if err := a.manager.Watch(ctx, func(cfg config.Config) {
		a.dashboard.ApplySettings(&cfg)
		a.logger.WithField("theme", cfg.Theme).Info("Configuration reloaded")
	}); err != nil {
		a.logger.WithError(err).Warn("Config file watch unavailable")
	}

	hook := func(snap table.Snapshot) {
		fmt.Fprint(a.out, display.Render(snap))
		if next, ok := a.dashboard.NextReload(); ok {
			display.Info(a.out, a.dark(), "Next reload at "+next.Format(time.Kitchen))
		}
	}
	a.dashboard.SetReloadHook(hook)
	if err := a.dashboard.StartAutoReload(schedule, a.cfg.Timeout()); err != nil {
		return err
	}
	defer a.dashboard.StopAutoReload()
	if next, ok := a.dashboard.NextReload(); ok {
		display.Info(a.out, a.dark(), "Next reload at "+next.Format(time.Kitchen))
	}

	<-ctx.Done()
	return nil
}

// newVersionCmd creates the version command
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "IndexStats v%s\n", Version)
		},
	}
}

// newConfigCmd creates the config command
func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "Show, validate and edit the IndexStats configuration file",
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, mgr, err := loadConfig(opts)
			if err != nil {
				return err
			}
			return showConfig(cmd.OutOrStdout(), cfg, mgr.Path(), format)
		},
	}
	showCmd.Flags().StringVar(&format, "format", "text", "Output format: text, json or yaml")
	configCmd.AddCommand(showCmd)

	configCmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration and check the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(opts, cmd.OutOrStdout(), appOptions{})
			if err != nil {
				return err
			}
			defer a.Close()
			return validateConfig(cmd.Context(), a)
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "get KEY",
		Short: "Print one configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(opts)
			if err != nil {
				return err
			}
			value, err := GetConfigValue(cfg, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	})

	configCmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one value in the configuration file",
		Long:  "Change one value in the configuration file. Keys: " + fmt.Sprint(ListAvailableKeys()),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, mgr, err := loadConfig(opts)
			if err != nil {
				return err
			}
			updated, err := SetConfigValue(mgr.Stored(), args[0], args[1])
			if err != nil {
				return err
			}
			if err := mgr.Update(updated); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s updated in %s\n", args[0], mgr.Path())
			return nil
		},
	})

	return configCmd
}

// showConfig displays the current configuration
func showConfig(w io.Writer, cfg *config.Config, path, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(data))
		return nil
	case "text":
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	fmt.Fprintln(w, "📋 Current IndexStats Configuration:")
	fmt.Fprintln(w, "═══════════════════════════════════════")
	fmt.Fprintf(w, "Config File:          %s\n", path)
	fmt.Fprintf(w, "Project Directory:    %s\n", cfg.ProjectDir)
	fmt.Fprintf(w, "Export Directory:     %s\n", cfg.ExportDir)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Server URL:           %s\n", cfg.BaseURL)
	fmt.Fprintf(w, "Data Path:            %s\n", cfg.DataPath)
	fmt.Fprintf(w, "Refresh Path:         %s\n", cfg.RefreshPath)
	fmt.Fprintf(w, "CSRF Cookie:          %s\n", cfg.CSRFCookieName)
	fmt.Fprintf(w, "Request Timeout:      %s\n", cfg.Timeout())
	if cfg.Cookies != "" {
		fmt.Fprintln(w, "Cookies:              ✅ Configured")
	} else {
		fmt.Fprintln(w, "Cookies:              ❌ Not configured")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Theme:                %s\n", cfg.Theme)
	fmt.Fprintf(w, "Sort Mode:            %s\n", cfg.SortMode)
	fmt.Fprintf(w, "Reload Schedule:      %s\n", cfg.ReloadSchedule)
	fmt.Fprintf(w, "Debug Mode:           %t\n", cfg.Debug)
	if cfg.LogFile != "" {
		fmt.Fprintf(w, "Log File:             %s\n", cfg.LogFile)
	}
	return nil
}

// validateConfig validates the configuration and probes the server
func validateConfig(ctx context.Context, a *app) error {
	w := a.out
	fmt.Fprintln(w, "🔍 Validating IndexStats Configuration...")
	fmt.Fprintln(w, "═══════════════════════════════════════")

	fmt.Fprint(w, "⚙️  Checking configuration values... ")
	if err := a.cfg.Validate(); err != nil {
		fmt.Fprintln(w, "❌")
		return err
	}
	fmt.Fprintln(w, "✅")

	fmt.Fprint(w, "📁 Checking directories... ")
	if err := a.cfg.EnsureDirectories(); err != nil {
		fmt.Fprintln(w, "❌")
		return fmt.Errorf("directory validation failed: %w", err)
	}
	fmt.Fprintln(w, "✅")

	fmt.Fprint(w, "🌐 Fetching ticker data... ")
	probeCtx, cancel := context.WithTimeout(ctx, a.cfg.Timeout())
	defer cancel()
	if err := a.dashboard.Load(probeCtx); err != nil {
		fmt.Fprintln(w, "❌")
		return fmt.Errorf("server check failed: %w", err)
	}
	fmt.Fprintln(w, "✅")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "✅ Configuration validation completed successfully!")
	return nil
}
