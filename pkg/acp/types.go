// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package acp

import "encoding/json"

// ProtocolVersion is the Agent Client Protocol version this package speaks.
const ProtocolVersion = 1

// Stop reasons for a completed prompt turn.
const (
	StopReasonEndTurn   = "end_turn"
	StopReasonCancelled = "cancelled"
)

// UpdateAgentMessageChunk is the session update kind for streamed agent text.
const UpdateAgentMessageChunk = "agent_message_chunk"

// Content block types.
const (
	ContentTypeText  = "text"
	ContentTypeImage = "image"
)

// Implementation identifies an agent or client implementation.
type Implementation struct {
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`
}

// PromptCapabilities describes what an agent accepts in prompts.
type PromptCapabilities struct {
	Image bool `json:"image"`
}

// AgentCapabilities describes what an agent can do.
type AgentCapabilities struct {
	LoadSession        bool               `json:"loadSession"`
	PromptCapabilities PromptCapabilities `json:"promptCapabilities"`
}

// InitializeRequest starts the protocol handshake.
type InitializeRequest struct {
	ProtocolVersion    int             `json:"protocolVersion"`
	ClientCapabilities json.RawMessage `json:"clientCapabilities,omitempty"`
	ClientInfo         *Implementation `json:"clientInfo,omitempty"`
}

// InitializeResponse answers the handshake.
type InitializeResponse struct {
	ProtocolVersion   int               `json:"protocolVersion"`
	AgentCapabilities AgentCapabilities `json:"agentCapabilities"`
	AgentInfo         Implementation    `json:"agentInfo"`
}

// AuthenticateRequest asks the agent to authenticate the client.
type AuthenticateRequest struct {
	MethodID string `json:"methodId,omitempty"`
}

// AuthenticateResponse acknowledges authentication.
type AuthenticateResponse struct{}

// NewSessionRequest creates a conversation session.
type NewSessionRequest struct {
	Cwd        string          `json:"cwd,omitempty"`
	McpServers json.RawMessage `json:"mcpServers,omitempty"`
}

// NewSessionResponse returns the new session id.
type NewSessionResponse struct {
	SessionID string `json:"sessionId"`
	Modes     any    `json:"modes,omitempty"`
}

// ContentBlock is one element of a prompt or update. Image data is
// base64-encoded.
type ContentBlock struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Data     string `json:"data,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// PromptRequest carries a user turn.
type PromptRequest struct {
	SessionID string         `json:"sessionId"`
	Prompt    []ContentBlock `json:"prompt"`
}

// PromptResponse finishes a turn.
type PromptResponse struct {
	StopReason string `json:"stopReason"`
}

// CancelNotification asks the agent to cancel the in-flight prompt.
type CancelNotification struct {
	SessionID string `json:"sessionId"`
}

// SessionUpdate is the payload of a session/update notification.
type SessionUpdate struct {
	SessionUpdate string        `json:"sessionUpdate"`
	Content       *ContentBlock `json:"content,omitempty"`
}

// SessionNotification is a session/update notification.
type SessionNotification struct {
	SessionID string        `json:"sessionId"`
	Update    SessionUpdate `json:"update"`
}

// AgentMessageText builds an agent_message_chunk update for streamed text.
func AgentMessageText(text string) SessionUpdate {
	return SessionUpdate{
		SessionUpdate: UpdateAgentMessageChunk,
		Content: &ContentBlock{
			Type: ContentTypeText,
			Text: text,
		},
	}
}
