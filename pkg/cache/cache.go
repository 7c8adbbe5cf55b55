// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package cache provides caching for Ollama model listings.
package cache

import (
	"context"
	"time"
)

// Cache is the cache interface.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// Entry represents a cache entry.
type Entry struct {
	Key       string    `json:"key"`
	Value     []byte    `json:"value"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CacheError represents a cache error.
type CacheError struct {
	Code string
}

func (e *CacheError) Error() string {
	return e.Code
}

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = &CacheError{Code: "CACHE_MISS"}

// Tiered chains caches: reads hit the first tier that answers, writes go
// to every tier.
type Tiered struct {
	tiers []Cache
}

// NewTiered creates a tiered cache from fastest to slowest tier.
func NewTiered(tiers ...Cache) *Tiered {
	return &Tiered{tiers: tiers}
}

// Get returns the value from the first tier holding the key. A hit in a
// slower tier is promoted to the tiers in front of it.
func (t *Tiered) Get(ctx context.Context, key string) ([]byte, error) {
	for i, tier := range t.tiers {
		value, err := tier.Get(ctx, key)
		if err != nil {
			continue
		}
		for j := 0; j < i; j++ {
			_ = t.tiers[j].Set(ctx, key, value, time.Minute)
		}
		return value, nil
	}
	return nil, ErrCacheMiss
}

// Set stores the value in every tier.
func (t *Tiered) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var lastErr error
	for _, tier := range t.tiers {
		if err := tier.Set(ctx, key, value, ttl); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Delete removes the key from every tier.
func (t *Tiered) Delete(ctx context.Context, key string) error {
	var lastErr error
	for _, tier := range t.tiers {
		if err := tier.Delete(ctx, key); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Clear empties every tier.
func (t *Tiered) Clear(ctx context.Context) error {
	var lastErr error
	for _, tier := range t.tiers {
		if err := tier.Clear(ctx); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
