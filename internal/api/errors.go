package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// ErrSessionExpired is returned when the backend rejected the session token.
// The local session has already been cleared when it is returned.
var ErrSessionExpired = errors.New("session expired")

// GenericMessage is shown for failures the backend did not explain
const GenericMessage = "An error occurred. Please try again."

// Error is a non-2xx response from the backend
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Detail)
}

// NetworkError wraps a transport failure (connection refused, timeout, bad body)
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UserMessage converts err into the text shown in an error banner
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	switch {
	case errors.Is(err, ErrSessionExpired):
		return "Your session has expired. Please sign in again."
	case errors.As(err, &apiErr) && apiErr.Detail != "":
		return apiErr.Detail
	default:
		return GenericMessage
	}
}

// IsStatus reports whether err is a backend error with the given status
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// parseDetail extracts FastAPI's "detail" field, which is either a string or
// a list of validation errors.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	if len(envelope.Detail) == 0 {
		return envelope.Message
	}

	var text string
	if err := json.Unmarshal(envelope.Detail, &text); err == nil {
		return text
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err != nil {
		return ""
	}
	msgs := make([]string, 0, len(items))
	for _, it := range items {
		field := ""
		if n := len(it.Loc); n > 0 {
			field = fmt.Sprint(it.Loc[n-1])
		}
		if field != "" && field != "body" {
			msgs = append(msgs, field+": "+it.Msg)
		} else {
			msgs = append(msgs, it.Msg)
		}
	}
	return strings.Join(msgs, "; ")
}
