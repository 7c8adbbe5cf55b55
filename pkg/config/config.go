// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config provides configuration management for ollama-agent.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Config file: .ollama-agent.yaml in cwd or a parent, else
//    $HOME/.config/ollama-agent/config.yaml
// 3. Environment variables: OLLAMA_MODEL, OLLAMA_HOST, OLLAMA_AGENT_*
package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config represents the complete application configuration.
type Config struct {
	Ollama OllamaConfig        `yaml:"ollama"`
	Log    LogConfig           `yaml:"log"`
	Cache  CacheConfig         `yaml:"cache"`
	Tasks  map[string][]string `yaml:"tasks,omitempty"`
}

// OllamaConfig contains Ollama server settings.
type OllamaConfig struct {
	Model   string `yaml:"model"`
	Host    string `yaml:"host"`
	Timeout string `yaml:"timeout"` // Go duration string, e.g. "2m"
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// CacheConfig contains model-list cache settings.
type CacheConfig struct {
	Dir string `yaml:"dir"`
	TTL string `yaml:"ttl"` // Go duration string, e.g. "60s"
}

// TimeoutDuration returns the parsed Ollama request timeout.
func (c *OllamaConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d <= 0 {
		return 2 * time.Minute
	}
	return d
}

// TTLDuration returns the parsed cache TTL.
func (c *CacheConfig) TTLDuration() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}

	if c.Ollama.Host != "" {
		u, err := url.Parse(c.Ollama.Host)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid ollama host: %q", c.Ollama.Host)
		}
	}

	if c.Ollama.Timeout != "" {
		if _, err := time.ParseDuration(c.Ollama.Timeout); err != nil {
			return fmt.Errorf("invalid ollama timeout: %q", c.Ollama.Timeout)
		}
	}

	if c.Cache.TTL != "" {
		if _, err := time.ParseDuration(c.Cache.TTL); err != nil {
			return fmt.Errorf("invalid cache ttl: %q", c.Cache.TTL)
		}
	}

	for name, argv := range c.Tasks {
		if len(argv) == 0 {
			return fmt.Errorf("task override %q has an empty command", name)
		}
	}

	return nil
}
