package main

// Entry point of housing-charts
// Executes the Cobra root command and exits non-zero on failure

import (
	"fmt"
	"os"

	"housing-charts/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
