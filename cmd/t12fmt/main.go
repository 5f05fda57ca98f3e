package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"t12fmt/internal/assist"
	"t12fmt/internal/config"
	"t12fmt/internal/logger"
	"t12fmt/internal/t12"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const resultsDirName = "results"

// app carries what every command needs once the config is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	logFile    io.Closer
	resolver   *assist.DateAssistant
}

func main() {
	if err := rootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "t12fmt",
		Short: "Normalize T12 property financial reports",
		Long: `t12fmt turns exported trailing twelve month (T12) workbooks into a
canonical layout: header rows removed, totals bolded, panes frozen and the
output named after the property and reporting period.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.close()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "configs/config.toml", "Config file path")

	root.AddCommand(
		formatCmd(a),
		formatAllCmd(a),
		inspectCmd(a),
		pickCmd(a),
	)
	return root
}

func (a *app) load() error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		return fmt.Errorf("error loading config: %w", err)
	}
	a.cfg = cfg

	logFile, err := logger.Setup(cfg.Log.Directory, cfg.Log.Level)
	if err != nil {
		return err
	}
	a.logFile = logFile

	if cfg.Assist.Enabled {
		// Without a key the run continues and unreadable dates become Unknown_Date
		if key := assist.GetGeminiAPIKey(); key != "" {
			timeout := time.Duration(cfg.Assist.TimeoutSeconds) * time.Second
			resolver, err := assist.NewDateAssistant(key, cfg.Assist.Model, timeout)
			if err != nil {
				logger.Warn("Date assist disabled", "error", err)
			} else {
				a.resolver = resolver
			}
		}
	}
	return nil
}

func (a *app) close() error {
	if a.resolver != nil {
		if err := a.resolver.Close(); err != nil {
			logger.Warn("Failed to close date assistant", "error", err)
		}
	}
	if a.logFile != nil {
		return a.logFile.Close()
	}
	return nil
}

func (a *app) settings() t12.Settings {
	s := t12.DefaultSettings()
	s.FooterMarker = a.cfg.Format.FooterMarker
	s.FooterWindow = a.cfg.Format.FooterWindow
	s.ColumnWidth = a.cfg.Format.ColumnWidth
	if a.resolver != nil {
		s.Resolver = a.resolver
	}
	return s
}

func (a *app) resultsDir() string {
	return filepath.Join(a.cfg.Scan.OutputDirectory, resultsDirName)
}

func (a *app) formatter() *t12.Formatter {
	return t12.NewFormatter(afero.NewOsFs(), a.resultsDir(), a.settings())
}

// kindOrDefault falls back to the configured report kind when --kind is unset.
func (a *app) kindOrDefault(kind string) string {
	if kind != "" {
		return kind
	}
	return a.cfg.Format.ReportKind
}
