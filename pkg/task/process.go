// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package task

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"
)

// Process manages a single toolchain subprocess. Output is streamed
// straight to the configured writers; nothing is buffered or rewritten.
type Process struct {
	mu sync.RWMutex

	cmd *exec.Cmd

	argv    []string
	dir     string
	stdout  io.Writer
	stderr  io.Writer
	started bool
	exited  bool

	// Wait channel
	waitCh   chan error
	exitCode int
}

// NewProcess creates a new process for the given argv.
func NewProcess(argv []string, dir string, stdout, stderr io.Writer) *Process {
	return &Process{
		argv:   argv,
		dir:    dir,
		stdout: stdout,
		stderr: stderr,
		waitCh: make(chan error, 1),
	}
}

// Start starts the process.
func (p *Process) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrProcessAlreadyRun
	}
	if len(p.argv) == 0 {
		return ErrEmptyStep
	}

	// Check the tool exists before invoking it, so a missing toolchain
	// reads as "command not found" rather than a bare exec error.
	if _, err := exec.LookPath(p.argv[0]); err != nil {
		return fmt.Errorf("%w: %s", ErrToolNotFound, p.argv[0])
	}

	p.cmd = exec.CommandContext(ctx, p.argv[0], p.argv[1:]...)
	p.cmd.Dir = p.dir
	p.cmd.Stdout = p.stdout
	p.cmd.Stderr = p.stderr

	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", p.argv[0], err)
	}

	p.started = true

	// Wait for the process in the background
	go func() {
		err := p.cmd.Wait()
		p.mu.Lock()
		p.exited = true
		if p.cmd.ProcessState != nil {
			p.exitCode = p.cmd.ProcessState.ExitCode()
		}
		p.mu.Unlock()
		p.waitCh <- err
	}()

	return nil
}

// Wait waits for the process to complete and returns its exit code.
func (p *Process) Wait(ctx context.Context) (int, error) {
	select {
	case err := <-p.waitCh:
		p.mu.RLock()
		exitCode := p.exitCode
		p.mu.RUnlock()

		if err != nil {
			if ctx.Err() != nil {
				return exitCode, ErrTimeout
			}
			return exitCode, fmt.Errorf("%s failed: %w", p.argv[0], err)
		}
		return exitCode, nil

	case <-ctx.Done():
		_ = p.Kill()
		// Drain the wait goroutine so the process is fully reaped.
		<-p.waitCh
		return -1, ErrTimeout
	}
}

// Stop gracefully stops the process.
func (p *Process) Stop() error {
	p.mu.RLock()
	if !p.started || p.exited {
		p.mu.RUnlock()
		return nil
	}
	cmd := p.cmd
	p.mu.RUnlock()

	if cmd.Process == nil {
		return nil
	}

	// Send SIGTERM for graceful shutdown
	if err := cmd.Process.Signal(syscall.SIGTERM); err != nil {
		// Process might have already exited
		if !strings.Contains(err.Error(), "process already finished") {
			return fmt.Errorf("failed to send SIGTERM: %w", err)
		}
	}

	return nil
}

// Kill forcefully kills the process.
func (p *Process) Kill() error {
	p.mu.RLock()
	if !p.started || p.exited {
		p.mu.RUnlock()
		return nil
	}
	cmd := p.cmd
	p.mu.RUnlock()

	if cmd.Process == nil {
		return nil
	}

	if err := cmd.Process.Kill(); err != nil {
		if !strings.Contains(err.Error(), "process already finished") {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	return nil
}

// IsRunning checks if the process is running.
func (p *Process) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.started && !p.exited
}

// ExitCode returns the process exit code.
func (p *Process) ExitCode() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.exitCode
}
