// Package rtdb is a small client for the Firebase Realtime Database REST API.
//
// Every node of the database tree is addressable as <base>/<path>.json and
// accepts GET, PUT, PATCH, POST and DELETE with JSON bodies.
package rtdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Database is the set of REST verbs the maintenance commands use. It is
// implemented by Client.
type Database interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body any) (json.RawMessage, error)
	Post(ctx context.Context, path string, body any) (string, error)
	Delete(ctx context.Context, path string) error

	GetRules(ctx context.Context) (json.RawMessage, error)
	PutRules(ctx context.Context, rules json.RawMessage) error
}

// ErrInvalidKey is returned when a path segment contains a character the
// database does not allow in keys.
var ErrInvalidKey = errors.New("invalid database key")

// APIError represents a non-2xx response from the database.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// StatusCode extracts the HTTP status from err, or 0 when err is not an
// *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
