package csvgen

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// builtinWords is used when no dictionary file is supplied. Small on
// purpose: collisions across cells make duplicate-handling visible in
// sort and search tests.
var builtinWords = []string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
	"golf", "hotel", "india", "juliet", "kilo", "lima",
	"mike", "november", "oscar", "papa", "quebec", "romeo",
	"sierra", "tango", "uniform", "victor", "whiskey", "xray",
	"yankee", "zulu", "amber", "basalt", "cobalt", "dune",
	"ember", "fjord", "granite", "harbor", "inlet", "jetty",
	"karst", "lagoon", "mesa", "nimbus", "onyx", "plateau",
	"quartz", "ridge", "summit", "tundra", "umbra", "vale",
}

// loadDictionary returns the word list from path, or the built-in
// list when path is empty.
func loadDictionary(path string) ([]string, error) {
	if path == "" {
		return builtinWords, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("dictionary %s contains no words", path)
	}
	return words, nil
}
