// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package task

// builtinTargets is the default automation surface. Every command binding
// can be replaced per-project through the tasks section of the config file;
// the target names and their relationships are fixed.
func builtinTargets() []*Target {
	return []*Target{
		{
			Name:    "install",
			Summary: "Install the package",
			Steps:   []Step{{Argv: []string{"uv", "tool", "install", "."}}},
		},
		{
			Name:    "install-dev",
			Summary: "Install the package in editable mode with development extras",
			Steps:   []Step{{Argv: []string{"pip", "install", "-e", ".[dev]"}}},
		},
		{
			Name:    "test",
			Summary: "Run the test suite",
			Steps:   []Step{{Argv: []string{"pytest"}}},
		},
		{
			Name:    "lint",
			Summary: "Run the static checker",
			Steps:   []Step{{Argv: []string{"ruff", "check", "."}}},
		},
		{
			Name:    "format",
			Summary: "Run the code formatter",
			Steps:   []Step{{Argv: []string{"black", "."}}},
		},
		{
			Name:    "clean",
			Summary: "Remove build artifacts and caches",
			RemoveGlobs: []string{
				"build",
				"dist",
				"*.egg-info",
				".pytest_cache",
				".ruff_cache",
			},
			RemoveDirsNamed: []string{"__pycache__"},
		},
		{
			Name:    "build",
			Summary: "Produce distribution packages",
			Steps:   []Step{{Argv: []string{"python", "-m", "build"}}},
		},
		{
			Name:    "upload",
			Summary: "Upload built packages to the package index",
			Steps:   []Step{{Argv: []string{"twine", "upload", "dist/*"}, ExpandGlobs: true}},
		},
		{
			Name:     "dev",
			Summary:  "Alias for install-dev",
			Sequence: []string{"install-dev"},
		},
		{
			Name:     "check",
			Summary:  "Run lint then test",
			Sequence: []string{"lint", "test"},
		},
	}
}

// Builtin returns a registry holding the default targets with any command
// overrides applied. An override replaces the target's steps with a single
// command; sequence and native targets keep their behavior.
func Builtin(overrides map[string][]string) *Registry {
	reg := NewRegistry()
	for _, t := range builtinTargets() {
		if argv, ok := overrides[t.Name]; ok && len(argv) > 0 && !t.IsSequence() && !t.IsNative() {
			t.Steps = []Step{{Argv: argv}}
		}
		// Registration of the fixed table cannot fail.
		_ = reg.Register(t)
	}
	return reg
}
