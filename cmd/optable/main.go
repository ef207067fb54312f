package main

import (
	"os"

	"github.com/simonhull/optable/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
