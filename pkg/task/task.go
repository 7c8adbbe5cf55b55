// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package task dispatches build-automation targets to external toolchain
// commands. A target is either a list of command steps, a sequence of other
// targets, or a native artifact cleanup. Failures are not transformed: the
// wrapped tool's exit status is the target's exit status.
package task

import "strings"

// Step is a single external command invocation.
type Step struct {
	// Argv is the command and its arguments.
	Argv []string
	// ExpandGlobs expands glob patterns in Argv against the working
	// directory before invoking the command, the way a shell would.
	ExpandGlobs bool
}

// Target is a named unit of work.
type Target struct {
	Name    string
	Summary string

	// Steps are run in definition order; the first failure stops the target.
	Steps []Step

	// Sequence makes this a meta target: the named targets run in order
	// instead of Steps. dev and check are sequences.
	Sequence []string

	// RemoveGlobs and RemoveDirsNamed make this a native cleanup target.
	// Globs are resolved against the working directory; dir names are
	// removed wherever they appear in the tree.
	RemoveGlobs     []string
	RemoveDirsNamed []string
}

// IsSequence reports whether the target delegates to other targets.
func (t *Target) IsSequence() bool {
	return len(t.Sequence) > 0
}

// IsNative reports whether the target is implemented in-process.
func (t *Target) IsNative() bool {
	return len(t.RemoveGlobs) > 0 || len(t.RemoveDirsNamed) > 0
}

// CommandLine renders a step the way it would be typed in a shell.
func (s Step) CommandLine() string {
	return strings.Join(s.Argv, " ")
}
