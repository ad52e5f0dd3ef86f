package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/harrison/searchtool/internal/config"
	"github.com/harrison/searchtool/internal/display"
	"github.com/harrison/searchtool/internal/history"
	"github.com/harrison/searchtool/internal/logger"
	"github.com/harrison/searchtool/internal/search"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runSearch implements the root command
func runSearch(cmd *cobra.Command, v *viper.Viper, args []string) error {
	cfg, err := loadConfig(v)
	if err != nil {
		return err
	}

	if v.IsSet("history") {
		return runHistory(cmd, cfg, v.GetInt("history"))
	}

	if len(args) == 0 {
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return ErrMissingExpression
	}

	searchArgs, err := ResolveArgs(args, cfg.ContextLines)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	colorMode, err := display.ParseColorMode(cfg.Color)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	stderrColor := display.UseColor(colorMode, stderr)

	for _, w := range searchArgs.Warnings {
		w.Render(stderr, stderrColor)
	}

	runID := history.NewRunID()
	log, closeLog := buildLogger(cfg, stderr, stderrColor, runID)
	defer closeLog()

	log.LogDebug(fmt.Sprintf("run %s: %s", runID, describeArgs(searchArgs)))

	mode := search.ContextClassic
	if cfg.SlidingContext {
		mode = search.ContextSliding
	}

	printer := display.NewPrinter(stdout, colorMode)
	printer.Banner(display.Banner{
		Expression:   searchArgs.Expression,
		Root:         searchArgs.Root,
		Pattern:      searchArgs.Pattern,
		ContextLines: searchArgs.ContextLines,
		Mode:         mode,
	})

	startedAt := time.Now()
	summary, err := search.NewEngine(printer, log).Run(search.Request{
		Expression:   searchArgs.Expression,
		Root:         searchArgs.Root,
		Pattern:      searchArgs.Pattern,
		ContextLines: searchArgs.ContextLines,
		Mode:         mode,
		ExcludeDirs:  cfg.ExcludeDirs,
		SkipHidden:   cfg.SkipHidden,
	})
	if err != nil {
		if !errors.Is(err, search.ErrRootNotFound) {
			return err
		}
		log.LogWarn(err.Error())
		display.WarnMissingRoot(searchArgs.Root, err).Render(stderr, stderrColor)
	}

	printer.Summary(summary)

	if cfg.History.Enabled {
		recordRun(cfg, log, &history.Run{
			RunID:        runID,
			StartedAt:    startedAt,
			Expression:   searchArgs.Expression,
			Root:         searchArgs.Root,
			Pattern:      searchArgs.Pattern,
			ContextLines: searchArgs.ContextLines,
			Mode:         mode.String(),
			FilesScanned: summary.FilesScanned,
			MatchedFiles: summary.MatchedFiles,
			TotalMatches: summary.TotalMatches,
			Duration:     summary.Duration,
		})
	}

	return nil
}

// loadConfig reads the config file and applies flag and environment overrides.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	configPath := v.GetString("config")
	if configPath == "" {
		var err error
		configPath, err = config.DefaultConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to locate config: %w", err)
		}
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	var logLevelPtr, logDirPtr, colorPtr *string
	var slidingPtr *bool

	if v.IsSet("log-level") {
		logLevel := v.GetString("log-level")
		logLevelPtr = &logLevel
	}
	if v.IsSet("log-dir") {
		logDir := v.GetString("log-dir")
		logDirPtr = &logDir
	}
	if v.IsSet("color") {
		colorMode := v.GetString("color")
		colorPtr = &colorMode
	}
	if v.IsSet("sliding-context") {
		sliding := v.GetBool("sliding-context")
		slidingPtr = &sliding
	}

	cfg.MergeWithFlags(logLevelPtr, logDirPtr, colorPtr, slidingPtr)

	if err := cfg.ResolveHistoryPath(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// buildLogger returns the console logger, joined with a per-run file logger when log_dir
// is configured. The returned func closes the file logger.
func buildLogger(cfg *config.Config, stderr io.Writer, useColor bool, runID string) (logger.Logger, func()) {
	console := logger.NewConsoleLoggerWithColor(stderr, cfg.LogLevel, useColor)
	if cfg.LogDir == "" {
		return console, func() {}
	}

	fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, runID)
	if err != nil {
		console.LogWarn(fmt.Sprintf("file logging disabled: %v", err))
		return console, func() {}
	}

	return logger.NewMultiLogger(console, fileLog), func() {
		if err := fileLog.Close(); err != nil {
			console.LogWarn(err.Error())
		}
	}
}

// recordRun stores a finished run. Failures are logged and never fail the search.
func recordRun(cfg *config.Config, log logger.Logger, run *history.Run) {
	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		log.LogWarn(fmt.Sprintf("history disabled: %v", err))
		return
	}
	defer store.Close()

	if err := store.Record(context.Background(), run, cfg.History.KeepRuns); err != nil {
		log.LogWarn(fmt.Sprintf("failed to record run: %v", err))
		return
	}
	log.LogDebug(fmt.Sprintf("run %s recorded in %s", run.RunID, store.Path()))
}
