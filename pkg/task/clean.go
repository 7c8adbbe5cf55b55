// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package task

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// runClean removes the target's artifact globs and named directories. It is
// implemented in-process rather than shelling out to rm and find, so it
// behaves the same everywhere.
func (r *Runner) runClean(target *Target) error {
	workdir := r.workdir
	if workdir == "" {
		workdir = "."
	}

	for _, pattern := range target.RemoveGlobs {
		matches, err := filepath.Glob(filepath.Join(workdir, pattern))
		if err != nil {
			return &ExitError{Code: ExitRunnerError, Target: target.Name, Err: err}
		}
		for _, m := range matches {
			fmt.Fprintf(r.stdout, "rm -rf %s\n", m)
			if r.dryRun {
				continue
			}
			if err := os.RemoveAll(m); err != nil {
				return &ExitError{Code: ExitRunnerError, Target: target.Name, Err: err}
			}
		}
	}

	if len(target.RemoveDirsNamed) == 0 {
		return nil
	}

	named := make(map[string]bool, len(target.RemoveDirsNamed))
	for _, name := range target.RemoveDirsNamed {
		named[name] = true
	}

	var doomed []string
	err := filepath.WalkDir(workdir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable subtree, skip
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		if named[d.Name()] {
			doomed = append(doomed, path)
			return filepath.SkipDir
		}
		return nil
	})
	if err != nil {
		return &ExitError{Code: ExitRunnerError, Target: target.Name, Err: err}
	}

	for _, path := range doomed {
		fmt.Fprintf(r.stdout, "rm -rf %s\n", path)
		if r.dryRun {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			return &ExitError{Code: ExitRunnerError, Target: target.Name, Err: err}
		}
	}
	return nil
}
