// Package main is the entry point for the ollama-agent CLI.
package main

import (
	"errors"
	"os"

	"github.com/ollama-acp/ollama-agent/pkg/task"
)

func main() {
	if err := Execute(); err != nil {
		// A failed build target exits with the wrapped tool's status.
		var exitErr *task.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
