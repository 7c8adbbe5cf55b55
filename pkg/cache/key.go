// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyGenerator generates cache keys.
type KeyGenerator struct {
	prefix string
}

// NewKeyGenerator creates a new key generator.
func NewKeyGenerator(prefix string) *KeyGenerator {
	if prefix == "" {
		prefix = "ollama-agent"
	}
	return &KeyGenerator{
		prefix: prefix,
	}
}

// Generate generates a cache key from the SHA256 hash of all inputs.
func (kg *KeyGenerator) Generate(inputs ...string) string {
	h := sha256.New()
	for _, input := range inputs {
		h.Write([]byte(input))
	}
	return kg.prefix + "-" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GenerateForHost generates a key for a per-host model listing.
func (kg *KeyGenerator) GenerateForHost(host string) string {
	return kg.Generate("models", host)
}
