package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pinwheel-labs/tabulon/csvgen"
)

var (
	genRows           int
	genCols           int
	genOutputFile     string
	genInjectTerms    []string
	genSeed           int64
	genDictPath       string
	genDelimiter      string
	genShowInjections bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate delimited test files with optional search term injection",
	Long: `Generate CSV files of various shapes for testing. Specific search
terms can be injected into random cells, with their coordinates
reported, for exercising search functionality.

Examples:
  tabulon generate -n 100 -o test.csv
  tabulon generate -n 1000 -c 12 -i apple,banana
  tabulon generate --rows 10 --inject searchterm --seed 42`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().IntVarP(&genRows, "rows", "n", 100, "Number of data rows to generate")
	generateCmd.Flags().IntVarP(&genCols, "cols", "c", 6, "Number of columns to generate")
	generateCmd.Flags().StringVarP(&genOutputFile, "output", "o", "", "Output file path (default: csvgen-{timestamp}.csv)")
	generateCmd.Flags().StringSliceVarP(&genInjectTerms, "inject", "i", []string{}, "Terms to inject (comma-separated)")
	generateCmd.Flags().Int64VarP(&genSeed, "seed", "s", 0, "Random seed for reproducibility (0 = use current time)")
	generateCmd.Flags().StringVar(&genDictPath, "dict", "", "Dictionary file path (default: built-in word list)")
	generateCmd.Flags().StringVarP(&genDelimiter, "delimiter", "d", "", "Output delimiter (single character or 'tab'; default: comma)")
	generateCmd.Flags().BoolVar(&genShowInjections, "show-injections", true, "Show injection details after generation")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	delim, err := parseDelimiter(genDelimiter)
	if err != nil {
		return err
	}

	outputFile := genOutputFile
	if outputFile == "" {
		outputFile = fmt.Sprintf("csvgen-%d.csv", time.Now().Unix())
	}

	opts := csvgen.GenerateOptions{
		Rows:           genRows,
		Columns:        genCols,
		InjectTerms:    genInjectTerms,
		Seed:           genSeed,
		DictionaryPath: genDictPath,
	}

	injected, err := csvgen.GenerateToFile(outputFile, delim, opts)
	if err != nil {
		return fmt.Errorf("failed to generate file: %w", err)
	}

	fmt.Printf("\n✓ Generated file: %s\n", outputFile)
	fmt.Printf("  Rows: %d, Columns: %d\n", genRows, genCols)

	if genShowInjections && len(injected) > 0 {
		fmt.Printf("\nInjected terms:\n")
		for _, inj := range injected {
			fmt.Printf("  • '%s' at row %d, column %d\n", inj.Term, inj.Row+1, inj.Col+1)
		}
	}

	return nil
}
