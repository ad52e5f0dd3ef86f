package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// EnvPrefix is the prefix of environment variables that override flags
const EnvPrefix = "SEARCHTOOL"

// NewRootCommand creates and returns the root cobra command for searchtool
func NewRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "searchtool [flags] <search_expression> [directory] [file_pattern] [context_lines]",
		Short: "Search text and log files for lines matching an expression",
		Long: `searchtool walks a directory tree and prints every line of every text or log
file that matches a search expression, with optional surrounding context.

Search expression:
  error|warning     lines containing "error" OR "warning"
  user&login        lines containing "user" AND "login"
  timeout           lines containing "timeout"
  Matching is case-sensitive. When both | and & appear, | wins.

File matching rules:
  - Only text files and log files are searched
  - Wildcards are supported: * matches any run of characters, ? matches one character
  - Without wildcards, files whose name contains the pattern are searched (case-insensitive)
  - An empty pattern searches all text and log files
  - Log files ending in a date are recognised (e.g. app-2025-05-05)

Context lines are read from the fourth argument and limited to 0-5.

Flags must come before the search expression; everything after it is positional.
An expression that starts with "-" needs "--" in front of it.

Examples:
  searchtool "error" . ""               # "error" in all text and log files
  searchtool "error" logs "*.log"       # "error" in every .log file under logs
  searchtool "DEBUG" . "app*"           # "DEBUG" in files starting with app
  searchtool "user" . "*2025-05-05*"    # "user" in files carrying that date
  searchtool "TODO" src ""              # "TODO" in every text file under src
  searchtool "hello"                    # "hello" in the current directory
  searchtool "timeout|refused" /var/log "" 2
  searchtool --sliding-context "m" . "" 2
  searchtool -- "-v" . ""               # expression starting with a dash
  searchtool --history 10               # list the last 10 searches

Supported text file types:
  Source code: .c, .h, .cpp, .java, .py, .js, .go, .rs, .php, ...
  Markup: .html, .css, .xml, .json, .md, .tex, ...
  Configuration: .conf, .config, .ini, .yml, .properties, ...
  Scripts: .sh, .bat, .ps1, .sql, ...
  Plain text: .txt, .csv, .text, ...
  Logs: .log, .out, .err, and names ending in a date such as app-2025-05-05

Configuration is loaded from $SEARCHTOOL_HOME/config.yaml (default ~/.searchtool).
Every flag can also be set through a SEARCHTOOL_<FLAG> environment variable,
for example SEARCHTOOL_LOG_LEVEL=debug.`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		// Errors are printed once by main; usage only for a missing expression
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, v, args)
		},
	}

	// Positional arguments may look like flags ("-1" as the context count)
	cmd.Flags().SetInterspersed(false)

	cmd.Flags().Bool("version", false, "Print the version and exit")
	cmd.Flags().String("config", "", "Path to config file (default: $SEARCHTOOL_HOME/config.yaml)")
	cmd.Flags().String("log-level", "", "Diagnostics level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Write a per-run log file into this directory")
	cmd.Flags().String("color", "", "Colour output: auto, always, never")
	cmd.Flags().Bool("sliding-context", false, "Evaluate every line, including lines shown as trailing context")
	cmd.Flags().Int("history", 0, "Print the last N recorded searches and exit")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(cmd.Flags())

	return cmd
}
