// Package main is the entry point for the gertty CLI.
package main

import (
	"fmt"
	"os"

	"github.com/thoreinstein/gertty/cmd/gertty/commands"
	"github.com/thoreinstein/gertty/internal/document"
	"github.com/thoreinstein/gertty/internal/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := commands.Execute()
	if err == nil {
		return errors.ExitSuccess
	}

	var missing *document.MissingError
	if errors.As(err, &missing) {
		fmt.Fprintln(os.Stderr, missing.Guidance())
		return errors.ExitUser
	}

	var exitErr *errors.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
		}
		if exitErr.Suggestion != "" {
			fmt.Fprintln(os.Stderr, exitErr.Suggestion)
		}
		return exitErr.Code
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return errors.ExitUser
}
