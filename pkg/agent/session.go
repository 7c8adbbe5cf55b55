// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package agent

import (
	"context"
	"sync"

	"github.com/ollama-acp/ollama-agent/pkg/ollama"
)

// Session holds one conversation: its history and the cancel handle of the
// in-flight prompt, if any.
type Session struct {
	mu      sync.Mutex
	history []ollama.Message
	cancel  context.CancelFunc
}

// newSession creates an empty session.
func newSession() *Session {
	return &Session{}
}

// begin cancels any in-flight prompt and installs the new prompt's cancel
// handle. It returns the prompt context.
func (s *Session) begin(parent context.Context) context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	s.cancel = cancel
	return ctx
}

// end clears the cancel handle once the prompt finishes.
func (s *Session) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// interrupt cancels the in-flight prompt, if any.
func (s *Session) interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// append adds a message to the conversation history.
func (s *Session) append(msg ollama.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, msg)
}

// messages returns a copy of the conversation history.
func (s *Session) messages() []ollama.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ollama.Message, len(s.history))
	copy(out, s.history)
	return out
}
