package config

import (
	"os"
	"path/filepath"
)

const (
	// DefaultModel is the model used when none is configured.
	DefaultModel = "llama3.2"
	// DefaultHost is the Ollama server URL used when none is configured.
	DefaultHost = "http://localhost:11434"
)

// defaultConfig returns the built-in configuration.
func defaultConfig() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for optional fields
func applyDefaults(cfg *Config) {
	if cfg.Ollama.Model == "" {
		cfg.Ollama.Model = DefaultModel
	}
	if cfg.Ollama.Host == "" {
		cfg.Ollama.Host = DefaultHost
	}
	if cfg.Ollama.Timeout == "" {
		cfg.Ollama.Timeout = "2m"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = defaultCacheDir()
	}
	if cfg.Cache.TTL == "" {
		cfg.Cache.TTL = "60s"
	}
}

func defaultCacheDir() string {
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "ollama-agent")
	}
	return ".ollama-agent-cache"
}
