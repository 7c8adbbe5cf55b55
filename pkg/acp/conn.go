// Copyright 2026 Ollama Agent CLI. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package acp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ollama-acp/ollama-agent/pkg/observability"
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInternalError  = -32603
)

// request is an incoming JSON-RPC message. Notifications carry no id.
type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// rpcError is the error member of a response.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Conn serves an Agent over a newline-delimited JSON-RPC byte stream.
type Conn struct {
	agent  Agent
	reader *bufio.Reader
	logger observability.Logger

	writeMu sync.Mutex
	writer  io.Writer

	wg sync.WaitGroup
}

// NewConn creates a connection serving agent over r and w.
func NewConn(agent Agent, r io.Reader, w io.Writer, logger observability.Logger) *Conn {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &Conn{
		agent:  agent,
		reader: bufio.NewReader(r),
		writer: w,
		logger: logger,
	}
}

// Serve reads and dispatches messages until EOF or context cancellation.
// Requests are handled concurrently so a session/cancel notification can
// land while a session/prompt is still being answered.
func (c *Conn) Serve(ctx context.Context) error {
	c.agent.OnConnect(c)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for {
		line, err := c.reader.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			c.dispatchLine(ctx, bytes.TrimSpace(line))
		}
		if err != nil {
			c.wg.Wait()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read failed: %w", err)
		}
		if ctx.Err() != nil {
			c.wg.Wait()
			return nil
		}
	}
}

// SessionUpdate sends a session/update notification to the client.
func (c *Conn) SessionUpdate(ctx context.Context, n *SessionNotification) error {
	return c.writeMessage(map[string]any{
		"jsonrpc": "2.0",
		"method":  "session/update",
		"params":  n,
	})
}

func (c *Conn) dispatchLine(ctx context.Context, line []byte) {
	var req request
	if err := json.Unmarshal(line, &req); err != nil {
		c.writeError(nil, codeParseError, "parse error")
		return
	}
	if req.Method == "" {
		c.writeError(req.ID, codeInvalidRequest, "invalid request")
		return
	}

	// Notifications get no reply and must not block the read loop.
	if len(req.ID) == 0 {
		c.handleNotification(ctx, &req)
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.handleRequest(ctx, &req)
	}()
}

func (c *Conn) handleNotification(ctx context.Context, req *request) {
	switch req.Method {
	case "session/cancel":
		var n CancelNotification
		if err := json.Unmarshal(req.Params, &n); err != nil {
			c.logger.Warn("bad cancel notification", observability.Err(err))
			return
		}
		c.agent.Cancel(ctx, &n)
	default:
		c.logger.Debug("ignoring notification", observability.String("method", req.Method))
	}
}

func (c *Conn) handleRequest(ctx context.Context, req *request) {
	result, err := c.callAgent(ctx, req)
	if err != nil {
		var rpcErr *rpcError
		if errors.As(err, &rpcErr) {
			c.writeError(req.ID, rpcErr.Code, rpcErr.Message)
			return
		}
		c.logger.Error("request failed",
			observability.String("method", req.Method),
			observability.Err(err))
		c.writeError(req.ID, codeInternalError, err.Error())
		return
	}
	c.writeResult(req.ID, result)
}

func (c *Conn) callAgent(ctx context.Context, req *request) (any, error) {
	switch req.Method {
	case "initialize":
		var p InitializeRequest
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, err
		}
		return c.agent.Initialize(ctx, &p)

	case "authenticate":
		var p AuthenticateRequest
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, err
		}
		return c.agent.Authenticate(ctx, &p)

	case "session/new":
		var p NewSessionRequest
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, err
		}
		return c.agent.NewSession(ctx, &p)

	case "session/prompt":
		var p PromptRequest
		if err := unmarshalParams(req.Params, &p); err != nil {
			return nil, err
		}
		return c.agent.Prompt(ctx, &p)

	default:
		return nil, &rpcError{Code: codeMethodNotFound, Message: "method not found: " + req.Method}
	}
}

func unmarshalParams(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, v); err != nil {
		return &rpcError{Code: codeInvalidRequest, Message: "invalid params: " + err.Error()}
	}
	return nil
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func (c *Conn) writeResult(id json.RawMessage, result any) {
	_ = c.writeMessage(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	})
}

func (c *Conn) writeError(id json.RawMessage, code int, message string) {
	// A nil id marshals as null, which is what a response must carry when
	// the request id could not be read.
	_ = c.writeMessage(map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": &rpcError{
			Code:    code,
			Message: message,
		},
	})
}

func (c *Conn) writeMessage(msg any) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if _, err := c.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}
