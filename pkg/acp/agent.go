// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package acp implements the agent side of the Agent Client Protocol:
// JSON-RPC 2.0 as newline-delimited JSON over a byte stream, normally the
// agent's stdio.
package acp

import "context"

// Agent handles the protocol's agent-side methods. Prompt may run for a
// long time; the connection dispatches it concurrently so Cancel can
// arrive while a turn is in flight.
type Agent interface {
	Initialize(ctx context.Context, req *InitializeRequest) (*InitializeResponse, error)
	Authenticate(ctx context.Context, req *AuthenticateRequest) (*AuthenticateResponse, error)
	NewSession(ctx context.Context, req *NewSessionRequest) (*NewSessionResponse, error)
	Prompt(ctx context.Context, req *PromptRequest) (*PromptResponse, error)
	Cancel(ctx context.Context, n *CancelNotification)

	// OnConnect hands the agent its channel back to the client before the
	// connection starts serving.
	OnConnect(client Client)
}

// Client is the agent's view of the connected client.
type Client interface {
	// SessionUpdate sends a session/update notification.
	SessionUpdate(ctx context.Context, n *SessionNotification) error
}
