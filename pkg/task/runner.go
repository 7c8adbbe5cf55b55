// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ollama-acp/ollama-agent/pkg/observability"
)

// Runner executes targets.
type Runner struct {
	registry *Registry
	logger   observability.Logger

	workdir string
	stdout  io.Writer
	stderr  io.Writer

	stepTimeout time.Duration
	verbose     bool
	dryRun      bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkDir sets the working directory for steps and cleanup globs.
func WithWorkDir(dir string) Option {
	return func(r *Runner) {
		r.workdir = dir
	}
}

// WithOutput sets the writers steps stream to.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// WithStepTimeout bounds each step. Zero means no bound.
func WithStepTimeout(timeout time.Duration) Option {
	return func(r *Runner) {
		r.stepTimeout = timeout
	}
}

// WithVerbose echoes a banner and duration for every target run.
func WithVerbose(verbose bool) Option {
	return func(r *Runner) {
		r.verbose = verbose
	}
}

// WithDryRun prints commands without running them.
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger observability.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a runner over the given registry.
func NewRunner(registry *Registry, opts ...Option) *Runner {
	r := &Runner{
		registry: registry,
		logger:   observability.NewNopLogger(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the named target. A failing step terminates the run and the
// returned error is an *ExitError carrying the wrapped tool's exit code.
func (r *Runner) Run(ctx context.Context, name string) error {
	return r.run(ctx, name, map[string]bool{})
}

func (r *Runner) run(ctx context.Context, name string, active map[string]bool) error {
	target := r.registry.Get(name)
	if target == nil {
		return &ExitError{
			Code:   ExitRunnerError,
			Target: name,
			Err:    fmt.Errorf("%w: %s", ErrTargetNotFound, name),
		}
	}

	if active[name] {
		return &ExitError{
			Code:   ExitRunnerError,
			Target: name,
			Err:    fmt.Errorf("%w: %s", ErrSequenceCycle, name),
		}
	}
	active[name] = true
	defer delete(active, name)

	start := time.Now()
	if r.verbose {
		fmt.Fprintf(r.stdout, "==> %s\n", name)
	}
	r.logger.Debug("running target", observability.String("target", name))

	var err error
	switch {
	case target.IsSequence():
		err = r.runSequence(ctx, target, active)
	case target.IsNative():
		err = r.runClean(target)
	default:
		err = r.runSteps(ctx, target)
	}

	if err != nil {
		r.logger.Error("target failed",
			observability.String("target", name),
			observability.Err(err))
		return err
	}

	if r.verbose {
		fmt.Fprintf(r.stdout, "==> %s done in %s\n", name, time.Since(start).Round(time.Millisecond))
	}
	r.logger.Debug("target done",
		observability.String("target", name),
		observability.String("duration", time.Since(start).String()))
	return nil
}

func (r *Runner) runSequence(ctx context.Context, target *Target, active map[string]bool) error {
	for _, dep := range target.Sequence {
		if err := r.run(ctx, dep, active); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runSteps(ctx context.Context, target *Target) error {
	for _, step := range target.Steps {
		argv, err := r.expandStep(step)
		if err != nil {
			return &ExitError{
				Code:    ExitRunnerError,
				Target:  target.Name,
				Command: step.CommandLine(),
				Err:     err,
			}
		}

		// Echo the command the way make does.
		fmt.Fprintln(r.stdout, Step{Argv: argv}.CommandLine())
		if r.dryRun {
			continue
		}

		if err := r.runStep(ctx, target, argv); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runStep(ctx context.Context, target *Target, argv []string) error {
	stepCtx := ctx
	if r.stepTimeout > 0 {
		var cancel context.CancelFunc
		stepCtx, cancel = context.WithTimeout(ctx, r.stepTimeout)
		defer cancel()
	}

	process := NewProcess(argv, r.workdir, r.stdout, r.stderr)
	if err := process.Start(stepCtx); err != nil {
		code := ExitRunnerError
		if errors.Is(err, ErrToolNotFound) {
			code = ExitToolNotFound
		}
		return &ExitError{
			Code:    code,
			Target:  target.Name,
			Command: Step{Argv: argv}.CommandLine(),
			Err:     err,
		}
	}

	code, err := process.Wait(stepCtx)
	if err != nil {
		exitCode := code
		switch {
		case errors.Is(err, ErrTimeout) && ctx.Err() == nil:
			exitCode = ExitTimeout
		case ctx.Err() != nil:
			exitCode = ExitInterrupted
		case exitCode <= 0:
			exitCode = ExitRunnerError
		}
		return &ExitError{
			Code:    exitCode,
			Target:  target.Name,
			Command: Step{Argv: argv}.CommandLine(),
			Err:     err,
		}
	}
	return nil
}

// expandStep resolves glob patterns in a step's argv, shell-style. A
// pattern with no matches fails the step instead of being passed through
// literally.
func (r *Runner) expandStep(step Step) ([]string, error) {
	if !step.ExpandGlobs {
		return step.Argv, nil
	}

	expanded := make([]string, 0, len(step.Argv))
	for _, arg := range step.Argv {
		if !hasGlobMeta(arg) {
			expanded = append(expanded, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(r.workdir, arg))
		if err != nil {
			return nil, err
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoArtifacts, arg)
		}
		for _, m := range matches {
			if r.workdir != "" {
				if rel, err := filepath.Rel(r.workdir, m); err == nil {
					m = rel
				}
			}
			expanded = append(expanded, m)
		}
	}
	return expanded, nil
}

func hasGlobMeta(s string) bool {
	for _, c := range s {
		switch c {
		case '*', '?', '[':
			return true
		}
	}
	return false
}
