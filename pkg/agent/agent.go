// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package agent implements the Ollama-backed Agent Client Protocol agent.
package agent

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/ollama-acp/ollama-agent/pkg/acp"
	"github.com/ollama-acp/ollama-agent/pkg/observability"
	"github.com/ollama-acp/ollama-agent/pkg/ollama"
	"github.com/ollama-acp/ollama-agent/pkg/version"
)

// OllamaAgent adapts an Ollama model to the Agent Client Protocol.
type OllamaAgent struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	conn     acp.Client

	client *ollama.Client
	model  string
	logger observability.Logger
}

// New creates an agent answering with the given model.
func New(client *ollama.Client, model string, logger observability.Logger) *OllamaAgent {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &OllamaAgent{
		sessions: make(map[string]*Session),
		client:   client,
		model:    model,
		logger:   logger,
	}
}

// OnConnect stores the channel back to the client.
func (a *OllamaAgent) OnConnect(conn acp.Client) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.conn = conn
}

// VerifyConnection checks the Ollama server is reachable and warns when the
// configured model is not present. A missing model is not an error; the
// user may pull it later.
func (a *OllamaAgent) VerifyConnection(ctx context.Context) error {
	models, err := a.client.List(ctx)
	if err != nil {
		return err
	}

	for _, m := range models {
		name := m.Model
		if name == "" {
			name = m.Name
		}
		if strings.Contains(name, a.model) {
			return nil
		}
	}

	a.logger.Warn("model not found on server",
		observability.String("model", a.model),
		observability.Int("available", len(models)))
	a.logger.Warn("pull it first", observability.String("command", "ollama pull "+a.model))
	return nil
}

// Initialize answers the protocol handshake.
func (a *OllamaAgent) Initialize(ctx context.Context, req *acp.InitializeRequest) (*acp.InitializeResponse, error) {
	return &acp.InitializeResponse{
		ProtocolVersion: acp.ProtocolVersion,
		AgentCapabilities: acp.AgentCapabilities{
			LoadSession: false,
			PromptCapabilities: acp.PromptCapabilities{
				Image: true,
			},
		},
		AgentInfo: acp.Implementation{
			Name:    "ollama-agent",
			Title:   "Ollama Agent",
			Version: version.String(),
		},
	}, nil
}

// Authenticate accepts every client; no auth methods are offered.
func (a *OllamaAgent) Authenticate(ctx context.Context, req *acp.AuthenticateRequest) (*acp.AuthenticateResponse, error) {
	return &acp.AuthenticateResponse{}, nil
}

// NewSession creates a conversation session.
func (a *OllamaAgent) NewSession(ctx context.Context, req *acp.NewSessionRequest) (*acp.NewSessionResponse, error) {
	id := uuid.NewString()

	a.mu.Lock()
	a.sessions[id] = newSession()
	a.mu.Unlock()

	a.logger.Info("created session", observability.String("session", id))

	return &acp.NewSessionResponse{SessionID: id}, nil
}

// Prompt handles one user turn: it cancels any pending prompt on the
// session, forwards the conversation to Ollama and streams the response
// back as session/update notifications.
func (a *OllamaAgent) Prompt(ctx context.Context, req *acp.PromptRequest) (*acp.PromptResponse, error) {
	session := a.session(req.SessionID)

	promptCtx := session.begin(ctx)
	defer session.end()

	text, images := extractContent(req.Prompt, a.logger)
	if text == "" && len(images) == 0 {
		return &acp.PromptResponse{StopReason: acp.StopReasonEndTurn}, nil
	}

	session.append(ollama.Message{
		Role:    "user",
		Content: text,
		Images:  images,
	})

	response, err := a.streamResponse(promptCtx, req.SessionID, session)
	if err != nil {
		if promptCtx.Err() != nil {
			return &acp.PromptResponse{StopReason: acp.StopReasonCancelled}, nil
		}
		// Tell the client instead of failing the turn.
		a.logger.Error("ollama call failed", observability.Err(err))
		a.sendUpdate(ctx, req.SessionID, acp.AgentMessageText(
			fmt.Sprintf("Sorry, something went wrong: %v", err)))
		return &acp.PromptResponse{StopReason: acp.StopReasonEndTurn}, nil
	}

	session.append(ollama.Message{
		Role:    "assistant",
		Content: response,
	})

	return &acp.PromptResponse{StopReason: acp.StopReasonEndTurn}, nil
}

// Cancel interrupts the session's in-flight prompt.
func (a *OllamaAgent) Cancel(ctx context.Context, n *acp.CancelNotification) {
	a.mu.RLock()
	session := a.sessions[n.SessionID]
	a.mu.RUnlock()

	if session != nil {
		session.interrupt()
	}
}

// session returns the session, creating it when the client never called
// session/new for this id.
func (a *OllamaAgent) session(id string) *Session {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, ok := a.sessions[id]
	if !ok {
		s = newSession()
		a.sessions[id] = s
	}
	return s
}

// streamResponse runs the chat call, forwarding every chunk to the client.
func (a *OllamaAgent) streamResponse(ctx context.Context, sessionID string, session *Session) (string, error) {
	return a.client.Chat(ctx, a.model, session.messages(), func(chunk ollama.ChatChunk) error {
		a.sendUpdate(ctx, sessionID, acp.AgentMessageText(chunk.Message.Content))
		return ctx.Err()
	})
}

func (a *OllamaAgent) sendUpdate(ctx context.Context, sessionID string, update acp.SessionUpdate) {
	a.mu.RLock()
	conn := a.conn
	a.mu.RUnlock()

	if conn == nil {
		return
	}
	if err := conn.SessionUpdate(ctx, &acp.SessionNotification{
		SessionID: sessionID,
		Update:    update,
	}); err != nil {
		a.logger.Warn("session update failed", observability.Err(err))
	}
}

// extractContent pulls the text and valid base64 images out of the prompt
// blocks. Undecodable image data is logged and skipped.
func extractContent(blocks []acp.ContentBlock, logger observability.Logger) (string, []string) {
	var text strings.Builder
	var images []string

	for _, block := range blocks {
		switch block.Type {
		case acp.ContentTypeText:
			text.WriteString(block.Text)
		case acp.ContentTypeImage:
			if block.Data == "" {
				continue
			}
			if _, err := base64.StdEncoding.DecodeString(block.Data); err != nil {
				logger.Warn("failed to decode image", observability.Err(err))
				continue
			}
			images = append(images, block.Data)
		}
	}

	return strings.TrimSpace(text.String()), images
}
