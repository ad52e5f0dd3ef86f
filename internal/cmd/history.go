package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/searchtool/internal/config"
	"github.com/harrison/searchtool/internal/display"
	"github.com/harrison/searchtool/internal/history"
	"github.com/spf13/cobra"
)

// runHistory prints the most recent recorded runs
func runHistory(cmd *cobra.Command, cfg *config.Config, limit int) error {
	output := cmd.OutOrStdout()

	if limit <= 0 {
		return fmt.Errorf("--history must be a positive number, got %d", limit)
	}

	if _, err := os.Stat(cfg.History.DBPath); os.IsNotExist(err) {
		fmt.Fprintf(output, "No search history found (%s does not exist)\n", cfg.History.DBPath)
		return nil
	}

	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), limit)
	if err != nil {
		return fmt.Errorf("get recent runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Fprintln(output, "No search history found")
		return nil
	}

	colorMode, err := display.ParseColorMode(cfg.Color)
	if err != nil {
		return err
	}
	printRuns(output, runs, display.UseColor(colorMode, output))

	return nil
}

// printRuns formats runs, newest first
func printRuns(w io.Writer, runs []*history.Run, useColor bool) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	gray := color.New(color.FgHiBlack)
	for _, c := range []*color.Color{cyan, green, gray} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	cyan.Fprintf(w, "\n=== Recent searches (%d) ===\n\n", len(runs))

	for _, run := range runs {
		cyan.Fprintf(w, "%s  %q\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.Expression)

		pattern := run.Pattern
		if pattern == "" {
			pattern = "(all text and log files)"
		}
		fmt.Fprintf(w, "  Directory: %s  Pattern: %s  Context: %d (%s)\n", run.Root, pattern, run.ContextLines, run.Mode)

		green.Fprintf(w, "  %d matching files", run.MatchedFiles)
		fmt.Fprintf(w, ", %d files scanned, %d matching lines, %s\n",
			run.FilesScanned, run.TotalMatches, run.Duration.Round(time.Millisecond))

		gray.Fprintf(w, "  Run: %s\n\n", run.RunID)
	}
}
