// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package task

import (
	"errors"
	"sort"
	"sync"
)

// ErrInvalidTarget is returned when trying to register an invalid target.
var ErrInvalidTarget = errors.New("invalid target: name is required")

// Registry manages available targets.
type Registry struct {
	mu      sync.RWMutex
	targets map[string]*Target
}

// NewRegistry creates a new target registry.
func NewRegistry() *Registry {
	return &Registry{
		targets: make(map[string]*Target),
	}
}

// Register registers a target.
func (r *Registry) Register(t *Target) error {
	if t == nil || t.Name == "" {
		return ErrInvalidTarget
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets[t.Name] = t
	return nil
}

// RegisterAll registers multiple targets at once.
// Returns an error if any target fails to register.
func (r *Registry) RegisterAll(targets []*Target) error {
	for _, t := range targets {
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a target by name.
// Returns the target or nil if not found.
func (r *Registry) Get(name string) *Target {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.targets[name]
}

// Exists checks if a target is registered.
func (r *Registry) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.targets[name]
	return ok
}

// Count returns the number of registered targets.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.targets)
}

// Names returns all registered target names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.targets))
	for name := range r.targets {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// List returns all registered targets ordered by name.
func (r *Registry) List() []*Target {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.targets))
	for name := range r.targets {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]*Target, 0, len(names))
	for _, name := range names {
		result = append(result, r.targets[name])
	}
	return result
}
