package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON-RPC 2.0 error codes. Counter errors all use ErrApplication and name
// themselves in ErrorData.Code.
const (
	ErrParseCode      = -32700
	ErrInvalidReq     = -32600
	ErrMethodNotFound = -32601
	ErrInvalidParams  = -32602
	ErrInternal       = -32603
	ErrApplication    = -32000
)

// maxRequestBytes bounds a /rpc body. Gesture and edit calls are a few
// hundred bytes.
const maxRequestBytes = 64 << 10

var (
	errParse          = errors.New("parse error")
	errInvalidRequest = errors.New("invalid request")
)

// codedError is implemented by errors that carry a stable application code.
type codedError interface {
	error
	CodeValue() string
	MessageValue() string
	DetailsValue() any
	RecoveryHintValue() string
}

// Request is a single JSON-RPC 2.0 call. Batches are not accepted.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
	ID      any             `json:"id,omitempty"`
}

// Response is a JSON-RPC 2.0 reply carrying either Result or Error.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      any    `json:"id,omitempty"`
}

// Error is the JSON-RPC error object.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ErrorData is the data member of application errors, e.g.
// {"code":"INVALID_TARGET","recovery_hint":"..."}.
type ErrorData struct {
	Code         string `json:"code"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

// ParseRequest decodes one call from body. Malformed JSON wraps errParse;
// well-formed JSON that is not a usable call wraps errInvalidRequest.
func ParseRequest(body io.Reader) (Request, error) {
	var req Request
	if err := json.NewDecoder(io.LimitReader(body, maxRequestBytes)).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return Request{}, fmt.Errorf("%w: %s must not be %s", errInvalidRequest, fieldName(typeErr), typeErr.Value)
		}
		return Request{}, fmt.Errorf("%w: %v", errParse, err)
	}

	switch {
	case req.JSONRPC != "2.0":
		return Request{}, fmt.Errorf(`%w: jsonrpc must be "2.0"`, errInvalidRequest)
	case req.Method == "":
		return Request{}, fmt.Errorf("%w: method is required", errInvalidRequest)
	}
	return req, nil
}

func fieldName(err *json.UnmarshalTypeError) string {
	if err.Field == "" {
		return "request"
	}
	return err.Field
}

// requestError maps a ParseRequest failure to its JSON-RPC error.
func requestError(err error) *Error {
	code := ErrInvalidReq
	if errors.Is(err, errParse) {
		code = ErrParseCode
	}
	return &Error{Code: code, Message: err.Error()}
}

// handlerError maps a method failure to its JSON-RPC error. coded is false
// when err carries no application code.
func handlerError(err error) (rpcErr *Error, coded bool) {
	var ce codedError
	if !errors.As(err, &ce) {
		return &Error{Code: ErrInternal, Message: err.Error()}, false
	}

	code := ErrApplication
	switch ce.CodeValue() {
	case "METHOD_NOT_FOUND":
		code = ErrMethodNotFound
	case "INVALID_PARAMS":
		code = ErrInvalidParams
	}
	return &Error{
		Code:    code,
		Message: ce.MessageValue(),
		Data: ErrorData{
			Code:         ce.CodeValue(),
			Details:      ce.DetailsValue(),
			RecoveryHint: ce.RecoveryHintValue(),
		},
	}, true
}

// WriteResult writes a success reply.
func WriteResult(w http.ResponseWriter, id any, result any) {
	writeResponse(w, Response{JSONRPC: "2.0", Result: result, ID: id})
}

// WriteError writes an error reply. JSON-RPC errors always travel with
// HTTP 200.
func WriteError(w http.ResponseWriter, id any, code int, message string, data any) {
	writeRPCError(w, id, &Error{Code: code, Message: message, Data: data})
}

func writeRPCError(w http.ResponseWriter, id any, rpcErr *Error) {
	writeResponse(w, Response{JSONRPC: "2.0", Error: rpcErr, ID: id})
}

func writeResponse(w http.ResponseWriter, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}
