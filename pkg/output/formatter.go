// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package output renders human-readable listings for the CLI.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ollama-acp/ollama-agent/pkg/ollama"
	"github.com/ollama-acp/ollama-agent/pkg/task"
)

const rule = "----------------------------------------------------------------------"

// WriteModelTable renders the model listing for a host.
func WriteModelTable(w io.Writer, host string, models []ollama.Model) {
	fmt.Fprintf(w, "\nAvailable models on %s:\n", host)
	fmt.Fprintln(w, rule)

	for _, m := range models {
		name := m.Model
		if name == "" {
			name = m.Name
		}
		sizeGB := float64(m.Size) / (1 << 30)
		modified := "Unknown"
		if !m.ModifiedAt.IsZero() {
			modified = m.ModifiedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %-35s %7.2f GB    %s\n", name, sizeGB, modified)
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total: %d models\n\n", len(models))
}

// WriteTargetTable renders the available build targets.
func WriteTargetTable(w io.Writer, targets []*task.Target) {
	fmt.Fprintln(w, "Available targets:")
	for _, t := range targets {
		detail := t.Summary
		if t.IsSequence() {
			detail = fmt.Sprintf("%s (runs: %s)", t.Summary, strings.Join(t.Sequence, ", "))
		}
		fmt.Fprintf(w, "  %-14s %s\n", t.Name, detail)
	}
}
