package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestLoad_CommaSeparated(t *testing.T) {
	path := writeTemp(t, "basic.csv", []byte("name,age\nalice,30\nbob,25\n"))

	src, err := Load(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, ',', src.Delimiter)
	assert.Equal(t, "utf-8", src.Encoding)
	require.Len(t, src.Rows(), 3)
	assert.Equal(t, []string{"name", "age"}, src.Rows()[0])
	assert.Equal(t, []string{"bob", "25"}, src.Rows()[2])
	assert.NotEmpty(t, src.Fingerprint)
	assert.Equal(t, int64(25), src.Size)
}

func TestLoad_SniffsTabsAndSemicolons(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		delim rune
	}{
		{"tabs", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"semicolons", "a;b;c\n1;2;3\n", ';'},
		{"pipes", "a|b|c\n1|2|3\n", '|'},
		{"commas win ties", "plain\nsecond\n", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "f.txt", []byte(tt.data))
			src, err := Load(path, Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.delim, src.Delimiter)
		})
	}
}

func TestLoad_DelimiterOverride(t *testing.T) {
	// commas dominate the first line, but the caller knows better
	path := writeTemp(t, "odd.csv", []byte("a,b;c,d\n1,2;3,4\n"))

	src, err := Load(path, Options{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, []string{"a,b", "c,d"}, src.Rows()[0])
}

func TestLoad_PadsJaggedRows(t *testing.T) {
	path := writeTemp(t, "jagged.csv", []byte("a,b,c\n1\n2,3\n"))

	src, err := Load(path, Options{})
	require.NoError(t, err)
	for _, row := range src.Rows() {
		assert.Len(t, row, 3)
	}
	assert.Equal(t, []string{"1", "", ""}, src.Rows()[1])
}

func TestLoad_Latin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 and invalid UTF-8
	path := writeTemp(t, "latin.csv", []byte{'c', 'a', 'f', 0xE9, ',', 'x', '\n'})

	src, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "latin-1", src.Encoding)
	assert.Equal(t, "café", src.Rows()[0][0])
}

func TestDetectEncoding(t *testing.T) {
	assert.Equal(t, "utf-8", DetectEncoding([]byte("hello")))
	assert.Equal(t, "latin-1", DetectEncoding([]byte{0xE9, 0xE9}))
	assert.Equal(t, "utf-16", DetectEncoding([]byte{0xFF, 0xFE, 'a', 0}))
	assert.Equal(t, "utf-16", DetectEncoding([]byte{0xFE, 0xFF, 0, 'a'}))
}

func TestLoad_UnsupportedEncoding(t *testing.T) {
	path := writeTemp(t, "x.csv", []byte("a,b\n"))
	_, err := Load(path, Options{Encoding: "ebcdic"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported encoding")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), Options{})
	assert.Error(t, err)
}

func TestReload_SeesNewContent(t *testing.T) {
	path := writeTemp(t, "grow.csv", []byte("a,b\n1,2\n"))
	src, err := Load(path, Options{})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n3,4\n"), 0644))
	again, err := src.Reload()
	require.NoError(t, err)

	assert.Len(t, again.Rows(), 3)
	assert.True(t, again.Changed(src))
	assert.Equal(t, src.Delimiter, again.Delimiter, "reload keeps the original options")
}

func TestFingerprint_StableForSameContent(t *testing.T) {
	path := writeTemp(t, "same.csv", []byte("a,b\n1,2\n"))
	first, err := Load(path, Options{})
	require.NoError(t, err)
	second, err := Load(path, Options{})
	require.NoError(t, err)

	assert.Equal(t, first.Fingerprint, second.Fingerprint)
	assert.False(t, first.Changed(second))
}

func TestFromRows(t *testing.T) {
	src := FromRows("inline", [][]string{{"h1", "h2"}, {"a"}})

	assert.Equal(t, "inline", src.Name())
	assert.Equal(t, []string{"a", ""}, src.Rows()[1], "in-memory rows are normalized too")
	assert.NotEmpty(t, src.Fingerprint)
	assert.Equal(t, "(in-memory)", FromRows("", nil).Name())

	again, err := src.Reload()
	require.NoError(t, err)
	assert.Same(t, src, again)
}

func TestSniffDelimiter(t *testing.T) {
	assert.Equal(t, '\t', SniffDelimiter("a\tb\tc,d"))
	assert.Equal(t, ',', SniffDelimiter(""))
}
