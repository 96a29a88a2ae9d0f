// Package main is the entry point for the platdetect CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/platdetect/cmd/platdetect/commands"
	"github.com/thoreinstein/platdetect/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		exitErr := errors.Classify(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr)
		if exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
		os.Exit(exitErr.Code)
	}
}
