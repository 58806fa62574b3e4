package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// Responder writes application errors to HTTP responses with standardized
// logging. Upstream and unexpected failures are logged with full detail and
// surfaced to the caller as a generic message only.
type Responder struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewResponder(logger Logger) *Responder {
	return &Responder{logger: logger}
}

type errorBody struct {
	Error string `json:"error"`
}

// Respond normalizes err to a StandardError, logs it, and writes the JSON
// error body. Response bodies never carry internal detail.
func (r *Responder) Respond(w http.ResponseWriter, req *http.Request, err error) {
	stdErr := r.normalizeError(err)

	fields := map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"message":   stdErr.Message,
		"details":   stdErr.Details,
		"path":      req.URL.Path,
		"method":    req.Method,
	}
	switch stdErr.Code {
	case ErrCodeUpstreamFailure, ErrCodeInternal:
		r.logger.Error("request failed", fields)
	default:
		r.logger.Warn("request rejected", fields)
	}

	WriteJSON(w, stdErr.HTTPStatus(), errorBody{Error: stdErr.Message})
}

// normalizeError ensures we always have a StandardError.
func (r *Responder) normalizeError(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Internal error",
		Details:   err.Error(),
		Timestamp: time.Now().UTC(),
	}
}

// WriteJSON writes v as the JSON response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
