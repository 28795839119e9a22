package main

import (
	"os"

	"github.com/pinwheel-labs/tabulon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}