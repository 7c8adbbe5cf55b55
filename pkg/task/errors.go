// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package task

import (
	"errors"
	"fmt"
)

// Exit codes for failures originating in the runner itself. Failures of a
// wrapped tool reuse that tool's exit code instead.
const (
	ExitSuccess      = 0   // Target completed
	ExitRunnerError  = 1   // Runner error (bad target, cycle, cleanup failure)
	ExitTimeout      = 124 // Step timed out
	ExitInterrupted  = 130 // Run cancelled
	ExitToolNotFound = 127 // Wrapped tool missing from PATH
)

// Errors
var (
	ErrTargetNotFound    = errors.New("target not found")
	ErrToolNotFound      = errors.New("command not found in PATH")
	ErrProcessNotRunning = errors.New("process is not running")
	ErrProcessAlreadyRun = errors.New("process has already been started")
	ErrTimeout           = errors.New("step timed out")
	ErrSequenceCycle     = errors.New("target sequence forms a cycle")
	ErrNoArtifacts       = errors.New("no distribution artifacts found")
	ErrEmptyStep         = errors.New("step has an empty command")
)

// ExitError carries the exit status a failed target run should terminate
// the process with. It wraps whatever made the target fail.
type ExitError struct {
	Code    int
	Target  string
	Command string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Command != "" {
		if e.Err != nil {
			return fmt.Sprintf("target %s: %s: %v", e.Target, e.Command, e.Err)
		}
		return fmt.Sprintf("target %s: %s: exit status %d", e.Target, e.Command, e.Code)
	}
	return fmt.Sprintf("target %s: %v", e.Target, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the code a run error should exit the process with.
// A nil error means success.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitRunnerError
}
