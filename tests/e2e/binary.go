package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindProjectBinary locates the plenary binary under test. PLENARY_BINARY
// wins; otherwise bin/plenary in the nearest directory holding a go.mod.
func FindProjectBinary() (string, error) {
	if bin := os.Getenv("PLENARY_BINARY"); bin != "" {
		return bin, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			bin := filepath.Join(dir, "bin", "plenary")
			if _, err := os.Stat(bin); err != nil {
				return "", fmt.Errorf("plenary binary not found at %s, build it first or set PLENARY_BINARY", bin)
			}
			return bin, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root from working directory")
		}
		dir = parent
	}
}
