// Package loader reads delimited text files into the normalized
// rectangular form the viewer consumes: every row padded to the same
// cell count, first row treated as the header. It owns encoding
// detection, delimiter sniffing, and the file fingerprint used to
// tell whether a reload actually changed anything.
package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Options configures loading. Zero values mean "detect".
type Options struct {
	Delimiter rune   // 0 = sniff from the first line
	Encoding  string // "" = detect; otherwise "utf-8", "latin-1", "utf-16"
}

// Source is a loaded, normalized table plus the provenance shown in
// the metadata popup and used by reload.
type Source struct {
	Path        string
	Delimiter   rune
	Encoding    string
	Size        int64
	Fingerprint string // xxhash of the raw bytes

	opts Options
	name string // display name for in-memory sources
	rows [][]string
}

// Rows returns the normalized rows, header included as row 0.
func (s *Source) Rows() [][]string {
	return s.rows
}

// Reload re-reads the backing file with the original options. An
// in-memory source has no backing file and reloads to itself.
func (s *Source) Reload() (*Source, error) {
	if s.Path == "" {
		return s, nil
	}
	return Load(s.Path, s.opts)
}

// Load reads and normalizes a delimited text file.
func Load(path string, opts Options) (*Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	enc := opts.Encoding
	if enc == "" {
		enc = DetectEncoding(raw)
	}
	text, err := decode(raw, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s as %s: %w", path, enc, err)
	}

	delim := opts.Delimiter
	if delim == 0 {
		delim = SniffDelimiter(firstLine(text))
	}

	rows, err := parse(text, delim)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &Source{
		Path:        path,
		Delimiter:   delim,
		Encoding:    enc,
		Size:        int64(len(raw)),
		Fingerprint: fmt.Sprintf("%016x", xxhash.Sum64(raw)),
		opts:        opts,
		rows:        Normalize(rows),
	}, nil
}

// FromRows wraps already-parsed in-memory data as a Source so the
// viewer can be driven without a file.
func FromRows(name string, rows [][]string) *Source {
	var size int64
	h := xxhash.New()
	for _, row := range rows {
		for _, cell := range row {
			size += int64(len(cell))
			_, _ = h.WriteString(cell)
			_, _ = h.WriteString("\x1f")
		}
		_, _ = h.WriteString("\x1e")
	}
	return &Source{
		Path:        "",
		Delimiter:   ',',
		Encoding:    "utf-8",
		Size:        size,
		Fingerprint: fmt.Sprintf("%016x", h.Sum64()),
		name:        name,
		rows:        Normalize(rows),
	}
}

// Name returns a display name for the source.
func (s *Source) Name() string {
	switch {
	case s.Path != "":
		return s.Path
	case s.name != "":
		return s.name
	default:
		return "(in-memory)"
	}
}

// DetectEncoding guesses the file encoding: UTF-16 by BOM, then valid
// UTF-8, then Latin-1 as the fallback that never fails.
func DetectEncoding(raw []byte) string {
	if len(raw) >= 2 {
		if (raw[0] == 0xFF && raw[1] == 0xFE) || (raw[0] == 0xFE && raw[1] == 0xFF) {
			return "utf-16"
		}
	}
	if utf8.Valid(raw) {
		return "utf-8"
	}
	return "latin-1"
}

func decode(raw []byte, enc string) (string, error) {
	switch strings.ToLower(enc) {
	case "utf-8", "utf8":
		return string(raw), nil
	case "latin-1", "iso8859-1", "iso-8859-1":
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case "utf-16", "utf16":
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, err := dec.Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", enc)
	}
}

// SniffDelimiter picks the delimiter candidate that occurs most often
// in the first line. Comma wins ties and empty input.
func SniffDelimiter(line string) rune {
	best, bestCount := ',', 0
	for _, cand := range []rune{',', '\t', ';', '|'} {
		if n := strings.Count(line, string(cand)); n > bestCount {
			best, bestCount = cand, n
		}
	}
	return best
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

func parse(text string, delim rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // jagged input is normalized afterwards
	return r.ReadAll()
}

// Normalize pads every row to the widest row's cell count so the
// viewer sees a rectangle.
func Normalize(rows [][]string) [][]string {
	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == cols {
			out[i] = row
			continue
		}
		padded := make([]string, cols)
		copy(padded, row)
		out[i] = padded
	}
	return out
}

// Changed reports whether another source has different content,
// compared by fingerprint.
func (s *Source) Changed(other *Source) bool {
	return other == nil || s.Fingerprint != other.Fingerprint
}
