package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pinwheel-labs/tabulon/grid"
	"github.com/pinwheel-labs/tabulon/loader"
)

var (
	verbose    bool
	delimiter  string
	encoding   string
	policyName string
	fixedWidth int
	columnGap  int

	Logger *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "tabulon <file>",
		Short: "A terminal viewer for CSV and other delimited data",
		Long: `Tabulon is a terminal user interface for browsing delimited tabular
data. It loads CSV, TSV and friends, fits the columns to the screen,
and offers vim-style navigation, full-table search and per-column
sorting without ever modifying the file.`,
		Args: cobra.ExactArgs(1),
		Example: `  tabulon data.csv
  tabulon data.tsv -d tab
  tabulon legacy.csv -e latin-1 --policy fixed --width 14 -v`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger()
		},
		RunE: runTabulon,
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "Field delimiter (single character or 'tab'; default: sniff)")
	rootCmd.Flags().StringVarP(&encoding, "encoding", "e", "", "File encoding: utf-8, latin-1 or utf-16 (default: detect)")
	rootCmd.Flags().StringVar(&policyName, "policy", "", "Column width policy: fixed, max or mode (default: mode)")
	rootCmd.Flags().IntVarP(&fixedWidth, "width", "w", 0, "Column width for the fixed policy")
	rootCmd.Flags().IntVar(&columnGap, "gap", -1, "Cells of space between columns")

	// will be reconfigured in PersistentPreRun based on flags
	setupLogger()
}

func runTabulon(cmd *cobra.Command, args []string) error {
	dataFile := args[0]

	if err := ValidateDataFile(dataFile); err != nil {
		return fmt.Errorf("invalid input file: %w", err)
	}

	loadOpts, err := buildLoaderOptions()
	if err != nil {
		return err
	}
	gridOpts, err := buildGridOptions()
	if err != nil {
		return err
	}

	Logger.Debug("launching viewer",
		"file", dataFile,
		"delimiter", delimiter,
		"encoding", encoding,
		"policy", gridOpts.Layout.Policy.String())

	if err := LaunchTUI(dataFile, loadOpts, gridOpts); err != nil {
		return fmt.Errorf("failed to launch TUI: %w", err)
	}

	return nil
}

func buildLoaderOptions() (loader.Options, error) {
	delim, err := parseDelimiter(delimiter)
	if err != nil {
		return loader.Options{}, err
	}
	return loader.Options{
		Delimiter: delim,
		Encoding:  encoding,
	}, nil
}

func buildGridOptions() (grid.Options, error) {
	opts := grid.DefaultOptions

	if policyName != "" {
		policy, ok := grid.ParseWidthPolicy(policyName)
		if !ok {
			return grid.Options{}, fmt.Errorf("unknown width policy: %s", policyName)
		}
		opts.Layout.Policy = policy
	} else if fixedWidth > 0 {
		opts.Layout.Policy = grid.PolicyFixed
	}
	if fixedWidth > 0 {
		opts.Layout.FixedWidth = fixedWidth
	}
	if columnGap >= 0 {
		opts.Layout.Gap = columnGap
	}

	return opts, nil
}

// parseDelimiter turns the flag value into a rune. Accepts a single
// character, the word "tab", or the two-character escape "\t".
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case "tab", "\\t":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}

// setupLogger configures the global slog logger based on the verbose flag
func setupLogger() {
	var opts *slog.HandlerOptions

	if verbose {
		opts = &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}
	} else {
		opts = &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
	}

	handler := slog.NewTextHandler(os.Stderr, opts)
	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	if verbose {
		Logger.Debug("verbose logging enabled",
			"level", slog.LevelDebug.String(),
			"pid", os.Getpid())
	}
}

// GetLogger returns the global logger instance
func GetLogger() *slog.Logger {
	if Logger == nil {
		setupLogger()
	}
	return Logger
}

// ValidateDataFile checks that the path exists and is a regular file.
func ValidateDataFile(path string) error {
	if path == "" {
		return fmt.Errorf("input file path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", path)
		}
		return fmt.Errorf("error accessing file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("provided path is a directory, not a file: %s", path)
	}

	return nil
}
