package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode"
	"unicode/utf8"

	"github.com/fieldops/opsconsole/internal/ui/types"
)

// ErrorKind classifies a ClientError
type ErrorKind int

const (
	KindInternal          ErrorKind = iota // request could not be built or a response could not be decoded
	KindConnection                         // no HTTP response was received
	KindSessionExpired                     // the backend answered 401
	KindRequestFailed                      // any other non-2xx response
	KindMalformedResponse                  // a 2xx response whose body is not JSON
	KindConflict                           // the record changed under us (409/412 or a stale status)
	KindInvalidInput                       // rejected before any request was sent
)

var kindNames = []string{"Internal", "Connection", "SessionExpired", "RequestFailed", "MalformedResponse", "Conflict", "InvalidInput"}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindNames[k]
}

var (
	// ErrSessionExpired matches any ClientError caused by a 401
	ErrSessionExpired = errors.New("session expired")
	// ErrConflict matches errors caused by concurrent modification of a record
	ErrConflict = errors.New("conflicting update")
	// ErrInvalidTransition matches status changes refused by the record lifecycle
	ErrInvalidTransition = types.ErrInvalidTransition
)

const (
	SessionExpiredMessage = "Session expired. Please login again."
	ConflictMessage       = "This job was already accepted by someone else."
)

// ClientError represents an error encountered when communicating with the backend API
// StatusCode 0 = no HTTP response was involved, >0 = HTTP response received
type ClientError struct {
	Kind        ErrorKind `json:"kind"`
	StatusCode  int       `json:"status_code"`
	UserMessage string    `json:"user_message"`
	LogMessage  string    `json:"log_message"`
	Err         error     `json:"-"`
}

func (e *ClientError) Error() string {
	return e.LogMessage
}

// UserError returns the user-friendly message
func (e *ClientError) UserError() string {
	return e.UserMessage
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

func (e *ClientError) Is(target error) bool {
	switch target {
	case ErrSessionExpired:
		return e.Kind == KindSessionExpired
	case ErrConflict:
		return e.Kind == KindConflict
	}
	return false
}

// NewClientConnectionError creates a ClientError for network/connection issues
func NewClientConnectionError(err error) *ClientError {
	return &ClientError{
		Kind:        KindConnection,
		UserMessage: "Unable to connect. Please check your internet connection and try again.",
		LogMessage:  fmt.Sprintf("network error: %v", err),
		Err:         err,
	}
}

// NewClientInternalError creates a ClientError for internal errors, supply the error and an explanation of what was being done when the error occurred
func NewClientInternalError(err error, while string) *ClientError {
	return &ClientError{
		Kind:        KindInternal,
		UserMessage: "An error occurred. Please try again later.",
		LogMessage:  fmt.Sprintf("internal error: %v while %v", err, while),
		Err:         err,
	}
}

// NewClientInputError creates a ClientError for requests refused before they were sent
func NewClientInputError(err error) *ClientError {
	msg := err.Error()
	if r, size := utf8.DecodeRuneInString(msg); size > 0 {
		msg = string(unicode.ToUpper(r)) + msg[size:]
	}
	return &ClientError{
		Kind:        KindInvalidInput,
		UserMessage: msg,
		LogMessage:  fmt.Sprintf("invalid input: %v", err),
		Err:         err,
	}
}

func newSessionExpiredError(method, path string) *ClientError {
	return &ClientError{
		Kind:        KindSessionExpired,
		StatusCode:  http.StatusUnauthorized,
		UserMessage: SessionExpiredMessage,
		LogMessage:  fmt.Sprintf("%s %s: backend status 401, session purged", method, path),
	}
}

func newMalformedResponseError(err error, method, path string, status int) *ClientError {
	return &ClientError{
		Kind:        KindMalformedResponse,
		StatusCode:  status,
		UserMessage: "The server sent an unexpected response. Please try again later.",
		LogMessage:  fmt.Sprintf("%s %s: malformed JSON in status %d response: %v", method, path, status, err),
		Err:         err,
	}
}

// newJobConflictError is used when a re-read shows a job was taken by someone else. cause may be nil.
func newJobConflictError(status int, detail string, cause error) *ClientError {
	return &ClientError{
		Kind:        KindConflict,
		StatusCode:  status,
		UserMessage: ConflictMessage,
		LogMessage:  "conflict: " + detail,
		Err:         cause,
	}
}

// NewClientApiError creates a ClientError from a non-2xx HTTP response sent by the backend.
// The message is taken from the body's "error" field, then "detail", else a generic status message.
// Error bodies that are not JSON are treated as empty.
func NewClientApiError(method, path string, status int, body []byte) *ClientError {
	var serverErr struct {
		Error  any `json:"error"`
		Detail any `json:"detail"`
	}
	_ = json.Unmarshal(body, &serverErr)

	msg := firstMessage(serverErr.Error, serverErr.Detail)
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}

	logMsg := fmt.Sprintf("%s %s: backend status %d", method, path, status)
	if len(body) > 0 {
		logMsg += fmt.Sprintf(" - %s", truncate(body, 200))
	}

	kind := KindRequestFailed
	if status == http.StatusConflict || status == http.StatusPreconditionFailed {
		kind = KindConflict
	}

	return &ClientError{
		Kind:        kind,
		StatusCode:  status,
		UserMessage: msg,
		LogMessage:  logMsg,
	}
}

// firstMessage returns the first candidate that is a non-empty string
func firstMessage(candidates ...any) string {
	for _, c := range candidates {
		if s, ok := c.(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// PartialError reports a composite operation that stopped after some of its steps succeeded
type PartialError struct {
	Completed string // what was done
	Err       error  // why the rest failed
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%s, then failed: %v", e.Completed, e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}

// UserError explains which part succeeded alongside the user message of the failure
func (e *PartialError) UserError() string {
	return fmt.Sprintf("%s, but the next step failed: %s", e.Completed, UserMessage(e.Err))
}

// UserMessage returns the message to show the end user for err
func UserMessage(err error) string {
	var ue interface{ UserError() string }
	if errors.As(err, &ue) {
		return ue.UserError()
	}
	if errors.Is(err, ErrInvalidTransition) {
		return "That action is not allowed for this record's current status."
	}
	return "An error occurred. Please try again later."
}
