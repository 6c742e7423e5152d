package main

import (
	"os"

	"github.com/grovetools/plenary/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
