// Package main provides the CLI entry point for timetable-go.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ukaji3/timetable-go/config"
	"github.com/ukaji3/timetable-go/pkg/logger"
	"github.com/ukaji3/timetable-go/pkg/timetable"
	"github.com/ukaji3/timetable-go/pkg/timetable/fetch"
)

// app holds what every subcommand needs once configuration is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
	fetch      *fetch.Client
}

func main() {
	if err := newRootCmd(&app{}).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "timetable",
		Short: "Extract class schedules from spreadsheet files",
		Long: `timetable-go reads loosely formatted schedule spreadsheets (.xls, .xlsx),
detects the day and time columns and outputs each group's pairs and lessons.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(
		newExtractCmd(a),
		newGroupsCmd(a),
		newLinksCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = log
	a.fetch = fetch.NewClient(cfg.Fetch.Timeout, log,
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithMaxBytes(cfg.Fetch.MaxBytes),
		fetch.WithExtensions(cfg.Fetch.Extensions...),
	)
	return nil
}

func (a *app) extractor(opts timetable.Options) *timetable.Extractor {
	return timetable.NewExtractor(opts, a.fetch, a.logger)
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err := stdout.Write(data)
	return err
}
