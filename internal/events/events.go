// Package events publishes a record of every database mutation so other
// tools (or a second operator running `umkmctl watch`) can follow along.
package events

import (
	"context"
	"time"
)

// Event topic constants
const (
	TopicPut    = "umkm.rtdb.put"
	TopicPatch  = "umkm.rtdb.patch"
	TopicPost   = "umkm.rtdb.post"
	TopicDelete = "umkm.rtdb.delete"
	TopicRules  = "umkm.rtdb.rules"

	TopicBackupWritten = "umkm.backup.written"

	// TopicAll matches every topic above.
	TopicAll = "umkm.>"
)

// TopicForMethod maps an HTTP method to its mutation topic.
func TopicForMethod(method string) string {
	switch method {
	case "PUT":
		return TopicPut
	case "PATCH":
		return TopicPatch
	case "POST":
		return TopicPost
	case "DELETE":
		return TopicDelete
	}
	return ""
}

// Mutation describes a single write against the database.
type Mutation struct {
	OpID    string    `json:"op_id"`
	Command string    `json:"command"`
	Method  string    `json:"method"`
	Path    string    `json:"path"`
	Status  int       `json:"status"`
	Bytes   int       `json:"bytes"`
	Error   string    `json:"error,omitempty"`
	At      time.Time `json:"at"`
}

// BackupWritten is emitted after a snapshot reaches every destination.
type BackupWritten struct {
	OpID         string    `json:"op_id"`
	Name         string    `json:"name"`
	Bytes        int       `json:"bytes"`
	Destinations int       `json:"destinations"`
	At           time.Time `json:"at"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
