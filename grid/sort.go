package grid

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// SortKey selects the comparison used when sorting rows by a column.
type SortKey int

const (
	// SortLexical compares raw strings.
	SortLexical SortKey = iota
	// SortNatural compares alternating digit/non-digit runs, digit
	// runs as integers, so "item2" sorts before "item10".
	SortNatural
	// SortNumeric parses cells as floats; unparseable cells form a
	// separate, consistently ordered bucket instead of failing.
	SortNumeric
)

// String returns the key name for the status bar and help text.
func (k SortKey) String() string {
	switch k {
	case SortLexical:
		return "lexical"
	case SortNatural:
		return "natural"
	case SortNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// SortRows stably reorders the data rows by the given column. The
// header row is never part of the sort while it is held separately.
// Descending inverts the comparison; ties keep their prior relative
// order either way.
func (t *Table) SortRows(col int, key SortKey, descending bool) {
	if col < 0 || col >= t.cols {
		return
	}
	less := lessFunc(key)
	sort.SliceStable(t.rows, func(i, j int) bool {
		a, b := t.Cell(i, col), t.Cell(j, col)
		if descending {
			return less(b, a)
		}
		return less(a, b)
	})
}

// SortColumn sorts the table by the column under the cursor.
func (v *Viewer) SortColumn(key SortKey, descending bool) {
	v.table.SortRows(v.Absolute().X, key, descending)
}

func lessFunc(key SortKey) func(a, b string) bool {
	switch key {
	case SortNatural:
		return naturalLess
	case SortNumeric:
		return numericLess
	default:
		return func(a, b string) bool { return a < b }
	}
}

// numericLess orders parseable numbers by value and groups cells that
// fail to parse into a single bucket after the numbers. Within the
// bucket, strings compare lexically so the order stays deterministic.
func numericLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(strings.TrimSpace(a), 64)
	fb, errB := strconv.ParseFloat(strings.TrimSpace(b), 64)
	switch {
	case errA == nil && errB == nil:
		return fa < fb
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

// naturalLess compares strings the way humans expect, treating
// embedded digit runs as numbers.
func naturalLess(a, b string) bool {
	ra, rb := splitRuns(a), splitRuns(b)
	for i := 0; i < len(ra) && i < len(rb); i++ {
		x, y := ra[i], rb[i]
		if x.numeric && y.numeric {
			if c := digitRunCompare(x.text, y.text); c != 0 {
				return c < 0
			}
			continue
		}
		if x.text != y.text {
			return x.text < y.text
		}
	}
	return len(ra) < len(rb)
}

type run struct {
	text    string
	numeric bool
}

// splitRuns decomposes a string into alternating non-digit and digit
// segments.
func splitRuns(s string) []run {
	var runs []run
	start := 0
	var numeric bool
	for i, r := range s {
		d := unicode.IsDigit(r)
		if i == 0 {
			numeric = d
			continue
		}
		if d != numeric {
			runs = append(runs, run{text: s[start:i], numeric: numeric})
			start, numeric = i, d
		}
	}
	if start < len(s) {
		runs = append(runs, run{text: s[start:], numeric: numeric})
	}
	return runs
}

// digitRunCompare compares two digit runs as integers without
// parsing, so arbitrarily long runs never overflow: strip leading
// zeros, then a longer run is larger and equal lengths compare
// lexically.
func digitRunCompare(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
