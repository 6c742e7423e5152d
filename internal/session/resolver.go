package session

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResolveInputs expands an input specifier into the session table files it
// names. The specifier can be a single CSV file or a directory, in which case
// every *.csv file directly inside it is returned in lexical order.
func ResolveInputs(input string) ([]string, error) {
	if strings.TrimSpace(input) == "" {
		return nil, fmt.Errorf("no input specified")
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("could not resolve input %s: %w", input, err)
	}

	if !info.IsDir() {
		return []string{input}, nil
	}

	matches, err := filepath.Glob(filepath.Join(input, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no CSV files found in %s", input)
	}
	sort.Strings(matches)
	return matches, nil
}

// LoadAll scans every file named by input and returns the concatenated records
// in file order.
func LoadAll(input string) ([]Record, error) {
	paths, err := ResolveInputs(input)
	if err != nil {
		return nil, err
	}

	scanner := NewScanner()
	var all []Record
	for _, p := range paths {
		records, err := scanner.ScanFile(p)
		if err != nil {
			return nil, err
		}
		all = append(all, records...)
	}
	return all, nil
}
