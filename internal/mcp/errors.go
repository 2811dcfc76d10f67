package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/swipecount/internal/domain/activity"
	"github.com/rpggio/swipecount/internal/domain/counter"
	"github.com/rpggio/swipecount/internal/engine"
)

// Error codes shared by the MCP tools and the JSON-RPC surface.
const (
	CodeMethodNotFound  = "METHOD_NOT_FOUND"
	CodeInvalidParams   = "INVALID_PARAMS"
	CodeInvalidTarget   = "INVALID_TARGET"
	CodeInvalidCount    = "INVALID_COUNT"
	CodeCounterNotFound = "COUNTER_NOT_FOUND"
	CodeEditing         = "EDIT_IN_PROGRESS"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, counter.ErrInvalidTarget):
		return &APIError{Code: CodeInvalidTarget, Message: err.Error(), RecoveryHint: "Use a whole number greater than zero"}
	case errors.Is(err, counter.ErrInvalidCount):
		return &APIError{Code: CodeInvalidCount, Message: err.Error(), RecoveryHint: "Use a count of zero or more"}
	case errors.Is(err, counter.ErrCounterNotFound):
		return &APIError{Code: CodeCounterNotFound, Message: "counter not found", RecoveryHint: "Call list_counters for valid ids"}
	case errors.Is(err, engine.ErrEditing):
		return &APIError{Code: CodeEditing, Message: "an edit is in progress", RecoveryHint: "Retry after the edit closes"}
	case errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: CodeInvalidParams, Message: err.Error()}
	default:
		return nil
	}
}

func invalidParams(err error) *APIError {
	return &APIError{Code: CodeInvalidParams, Message: err.Error()}
}
