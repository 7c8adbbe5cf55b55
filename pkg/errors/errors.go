// Package errors provides typed errors for ollama-agent
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of error
type ErrorType int

const (
	// ErrConfig indicates a configuration error
	ErrConfig ErrorType = iota
	// ErrOllama indicates an Ollama server error
	ErrOllama
	// ErrProtocol indicates an Agent Client Protocol error
	ErrProtocol
	// ErrTask indicates a build task execution error
	ErrTask
	// ErrValidation indicates an input validation error
	ErrValidation
	// ErrTimeout indicates a timeout occurred
	ErrTimeout
)

// AgentError is the base error type for all ollama-agent errors
type AgentError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error returns the error message
func (e *AgentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", errorTypeString(e.Type), e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", errorTypeString(e.Type), e.Message)
}

// Unwrap returns the underlying cause
func (e *AgentError) Unwrap() error {
	return e.Cause
}

// New creates a new AgentError
func New(errType ErrorType, message string, cause error) *AgentError {
	return &AgentError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context to the error
func (e *AgentError) WithContext(key string, value interface{}) *AgentError {
	e.Context[key] = value
	return e
}

// IsType checks if an error is of a specific type
func IsType(err error, errType ErrorType) bool {
	var agentErr *AgentError
	if err == nil {
		return false
	}
	if errors.As(err, &agentErr) {
		return agentErr.Type == errType
	}
	return false
}

// IsRetryable returns true if the error is transient and retryable
func IsRetryable(err error) bool {
	var agentErr *AgentError
	if !errors.As(err, &agentErr) {
		return false
	}

	switch agentErr.Type {
	case ErrOllama, ErrTimeout:
		return true
	default:
		return false
	}
}

func errorTypeString(et ErrorType) string {
	switch et {
	case ErrConfig:
		return "CONFIG"
	case ErrOllama:
		return "OLLAMA"
	case ErrProtocol:
		return "PROTOCOL"
	case ErrTask:
		return "TASK"
	case ErrValidation:
		return "VALIDATION"
	case ErrTimeout:
		return "TIMEOUT"
	default:
		return "UNKNOWN"
	}
}

// Convenience functions for common errors

// ConfigError creates a configuration error
func ConfigError(message string, cause error) *AgentError {
	return New(ErrConfig, message, cause)
}

// OllamaError creates an Ollama server error
func OllamaError(message string, cause error) *AgentError {
	return New(ErrOllama, message, cause)
}

// ProtocolError creates an Agent Client Protocol error
func ProtocolError(message string, cause error) *AgentError {
	return New(ErrProtocol, message, cause)
}

// TaskError creates a task execution error
func TaskError(message string, cause error) *AgentError {
	return New(ErrTask, message, cause)
}

// ValidationError creates a validation error
func ValidationError(message string, cause error) *AgentError {
	return New(ErrValidation, message, cause)
}

// TimeoutError creates a timeout error
func TimeoutError(message string, cause error) *AgentError {
	return New(ErrTimeout, message, cause)
}
