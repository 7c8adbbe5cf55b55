// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// DiskCache is a disk-based cache. Each entry is a JSON file named by its
// key under the cache directory, so entries survive across invocations.
type DiskCache struct {
	path string
}

// NewDiskCache creates a new disk cache rooted at path.
func NewDiskCache(path string) *DiskCache {
	return &DiskCache{
		path: path,
	}
}

func (d *DiskCache) entryPath(key string) string {
	return filepath.Join(d.path, key+".json")
}

// Get retrieves a value from disk cache.
func (d *DiskCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(d.entryPath(key))
	if err != nil {
		return nil, ErrCacheMiss
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Corrupt entry, drop it.
		_ = os.Remove(d.entryPath(key))
		return nil, ErrCacheMiss
	}

	if time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(d.entryPath(key))
		return nil, ErrCacheMiss
	}
	return entry.Value, nil
}

// Set stores a value in disk cache.
func (d *DiskCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return err
	}

	entry := Entry{
		Key:       key,
		Value:     value,
		ExpiresAt: time.Now().Add(ttl),
	}
	data, err := json.Marshal(&entry)
	if err != nil {
		return err
	}

	tmp := d.entryPath(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, d.entryPath(key))
}

// Delete removes a value from disk cache.
func (d *DiskCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(d.entryPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes all entries from disk cache.
func (d *DiskCache) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var lastErr error
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		if err := os.Remove(filepath.Join(d.path, e.Name())); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
