// Package journal keeps an append-only record of every mutation sent to the
// database, so an operator can see later what a command actually changed.
package journal

import (
	"context"
	"time"
)

// Entry is one journaled request.
type Entry struct {
	ID          int64     `json:"id"`
	OpID        string    `json:"op_id"`
	Command     string    `json:"command"`
	Method      string    `json:"method"`
	Path        string    `json:"path"`
	Status      int       `json:"status"`
	Bytes       int       `json:"bytes"`
	Error       string    `json:"error,omitempty"`
	DatabaseURL string    `json:"database_url"`
	Actor       string    `json:"actor"`
	CreatedAt   time.Time `json:"created_at"`
}

// Filter narrows List results.
type Filter struct {
	OpID  string
	Limit int
}

// Journal stores entries.
type Journal interface {
	Record(ctx context.Context, e *Entry) error
	List(ctx context.Context, f Filter) ([]*Entry, error)
	Close() error
}

// Noop discards entries (used when no journal database is configured).
type Noop struct{}

func (Noop) Record(context.Context, *Entry) error           { return nil }
func (Noop) List(context.Context, Filter) ([]*Entry, error) { return nil, nil }
func (Noop) Close() error                                   { return nil }

// Open returns a PostgreSQL journal for databaseURL, or Noop when it is empty.
func Open(databaseURL string) (Journal, error) {
	if databaseURL == "" {
		return Noop{}, nil
	}
	return NewPostgres(databaseURL)
}
