// Package csvgen generates deterministic delimited sample data. It
// backs the `generate` command and gives search and loader tests
// fixtures with known terms at known coordinates.
package csvgen

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"
)

// ColumnKind selects the shape of generated cells in one column.
type ColumnKind int

const (
	KindWord ColumnKind = iota
	KindNumber
	KindDate
	KindSentence
)

// String returns the kind name used in generated headers.
func (k ColumnKind) String() string {
	switch k {
	case KindWord:
		return "word"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindSentence:
		return "sentence"
	default:
		return "unknown"
	}
}

// GenerateOptions configures table generation.
type GenerateOptions struct {
	Rows           int      // data rows, header excluded
	Columns        int      // columns; kinds cycle word/number/date/sentence
	InjectTerms    []string // terms planted in random cells for search testing
	Seed           int64    // 0 = current time
	DictionaryPath string   // optional word list, one word per line; "" = built-in
}

// DefaultGenerateOptions provides sensible defaults.
var DefaultGenerateOptions = GenerateOptions{
	Rows:    100,
	Columns: 6,
}

// Position addresses one data cell, header excluded.
type Position struct {
	Row int
	Col int
}

// Injected records where a term was planted.
type Injected struct {
	Term string
	Row  int // 0-based data row, header excluded
	Col  int
}

// Generate produces a header plus data rows. The same seed always
// yields the same table.
func Generate(opts GenerateOptions) ([][]string, []Injected, error) {
	if opts.Rows <= 0 {
		opts.Rows = DefaultGenerateOptions.Rows
	}
	if opts.Columns <= 0 {
		opts.Columns = DefaultGenerateOptions.Columns
	}
	dict, err := loadDictionary(opts.DictionaryPath)
	if err != nil {
		return nil, nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	kinds := make([]ColumnKind, opts.Columns)
	header := make([]string, opts.Columns)
	for c := range kinds {
		kinds[c] = ColumnKind(c % 4)
		header[c] = fmt.Sprintf("%s_%d", kinds[c], c)
	}

	rows := make([][]string, 0, opts.Rows+1)
	rows = append(rows, header)
	for r := 0; r < opts.Rows; r++ {
		row := make([]string, opts.Columns)
		for c := 0; c < opts.Columns; c++ {
			row[c] = cell(kinds[c], dict, rng)
		}
		rows = append(rows, row)
	}

	// every injected term keeps its own cell, so reported coordinates
	// stay valid even when terms collide on the same draw
	used := make(map[Position]bool, len(opts.InjectTerms))
	injected := make([]Injected, 0, len(opts.InjectTerms))
	for _, term := range opts.InjectTerms {
		if len(used) >= opts.Rows*opts.Columns {
			break
		}
		var p Position
		for {
			p = Position{Row: rng.Intn(opts.Rows), Col: rng.Intn(opts.Columns)}
			if !used[p] {
				break
			}
		}
		used[p] = true
		rows[p.Row+1][p.Col] = term
		injected = append(injected, Injected{Term: term, Row: p.Row, Col: p.Col})
	}

	return rows, injected, nil
}

// GenerateToFile writes a generated table as delimited text.
func GenerateToFile(path string, delimiter rune, opts GenerateOptions) ([]Injected, error) {
	rows, injected, err := Generate(opts)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if delimiter != 0 {
		w.Comma = delimiter
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write rows: %w", err)
	}
	w.Flush()
	return injected, w.Error()
}

func cell(kind ColumnKind, dict []string, rng *rand.Rand) string {
	switch kind {
	case KindNumber:
		// a spread of magnitudes, occasionally negative or fractional
		switch rng.Intn(3) {
		case 0:
			return fmt.Sprintf("%d", rng.Intn(100000))
		case 1:
			return fmt.Sprintf("%d", -rng.Intn(1000))
		default:
			return fmt.Sprintf("%.2f", rng.Float64()*1000)
		}
	case KindDate:
		base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		return base.AddDate(0, 0, rng.Intn(2000)).Format("2006-01-02")
	case KindSentence:
		n := 3 + rng.Intn(5)
		s := ""
		for i := 0; i < n; i++ {
			if i > 0 {
				s += " "
			}
			s += dict[rng.Intn(len(dict))]
		}
		return s
	default:
		return dict[rng.Intn(len(dict))]
	}
}
