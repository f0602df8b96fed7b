package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alignedempire/aligned/internal/config"
	"github.com/alignedempire/aligned/internal/logging"
	"github.com/alignedempire/aligned/internal/ui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	// Global flags
	configPath  string
	catalogPath string
	dbPath      string
	remoteURL   string
	debug       bool

	// TUI flags
	startPage string
	noReveal  bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd starts the site in the terminal
var rootCmd = &cobra.Command{
	Use:   "aligned",
	Short: "The Aligned Empire in your terminal",
	Long: `aligned shows the Aligned Empire coaching site as a terminal UI:
the blog, coaching programs, courses, client stories and a booking form.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if configPath != "" {
			cfg, err = config.LoadFrom(configPath)
		} else {
			cfg, err = config.LoadConfig()
		}
		if err != nil {
			return err
		}
		applyFlags(cfg)

		logFile, err := cfg.LogFile()
		if err != nil {
			return err
		}
		logger, err = logging.New(logFile, cfg.Log.Level)
		if err != nil {
			return err
		}
		logger.Debug("starting", zap.String("command", cmd.CommandPath()), zap.String("version", version))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/aligned/config.toml)")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "Catalog YAML file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite catalog database")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", "", "Remote catalog base URL")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.Flags().StringVarP(&startPage, "page", "p", "home", "Page to open first (name or 1-8)")
	rootCmd.Flags().BoolVar(&noReveal, "no-reveal", false, "Show every section immediately")

	rootCmd.AddCommand(postsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(bookCmd)
	rootCmd.AddCommand(versionCmd)
}

// applyFlags lets command line flags override the config file.
func applyFlags(c *config.Config) {
	if catalogPath != "" {
		c.Content.CatalogPath = catalogPath
	}
	if dbPath != "" {
		c.Content.DBPath = dbPath
	}
	if remoteURL != "" {
		c.Content.RemoteURL = remoteURL
	}
	if debug {
		c.Log.Level = "debug"
	}
	if noReveal {
		c.UI.Reveal = false
	}
}

func runTUI(ctx context.Context) error {
	page, ok := ui.ParsePage(startPage)
	if !ok {
		return fmt.Errorf("unknown page %q", startPage)
	}

	cat, _, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}

	ui.ApplyColorProfile()
	model := ui.NewModel(cat, cfg, ui.WithLogger(logger), ui.WithPage(page))

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
