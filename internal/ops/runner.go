// Package ops implements the maintenance operations run against the
// database. Every write goes through Runner so that it is logged, published
// as an event and journaled under the run's operation id.
package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/alfredjeanlab/umkmctl/internal/backup"
	"github.com/alfredjeanlab/umkmctl/internal/events"
	"github.com/alfredjeanlab/umkmctl/internal/journal"
	"github.com/alfredjeanlab/umkmctl/internal/rtdb"
)

// ErrNoAuth is returned by operations that need credentials when the client
// has none.
var ErrNoAuth = errors.New("credentials required: set UMKM_AUTH_SECRET or GOOGLE_APPLICATION_CREDENTIALS, or run gcloud auth application-default login")

// Runner carries the collaborators shared by every operation. Only Client is
// required.
type Runner struct {
	Client    rtdb.Database
	Publisher events.Publisher
	Journal   journal.Journal
	Backup    *backup.Exporter
	Logger    *zap.Logger
	// Confirm asks the operator a yes/no question. A nil Confirm refuses.
	Confirm func(question string) error
	// Out receives operator-facing progress lines.
	Out io.Writer

	OpID        string
	Command     string
	Actor       string
	DatabaseURL string

	now func() time.Time
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return io.Discard
	}
	return r.Out
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out(), format, args...)
}

func (r *Runner) timeNow() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now()
}

func (r *Runner) confirm(question string) error {
	if r.Confirm == nil {
		return errors.New("no confirmation handler")
	}
	return r.Confirm(question)
}

// put, patch, post and remove wrap the client verbs with record.

func (r *Runner) put(ctx context.Context, path string, body json.RawMessage) (json.RawMessage, error) {
	resp, err := r.Client.Put(ctx, path, body)
	r.record(ctx, "PUT", path, len(body), err)
	return resp, err
}

func (r *Runner) patch(ctx context.Context, path string, body json.RawMessage) (json.RawMessage, error) {
	resp, err := r.Client.Patch(ctx, path, body)
	r.record(ctx, "PATCH", path, len(body), err)
	return resp, err
}

func (r *Runner) post(ctx context.Context, path string, body json.RawMessage) (string, error) {
	key, err := r.Client.Post(ctx, path, body)
	r.record(ctx, "POST", path, len(body), err)
	return key, err
}

func (r *Runner) remove(ctx context.Context, path string) error {
	err := r.Client.Delete(ctx, path)
	r.record(ctx, "DELETE", path, 0, err)
	return err
}

// record logs, publishes and journals one mutation. Publish and journal
// failures are logged and never fail the operation.
func (r *Runner) record(ctx context.Context, method, path string, size int, err error) {
	r.recordTo(ctx, events.TopicForMethod(method), method, path, size, err)
}

func (r *Runner) recordTo(ctx context.Context, topic, method, path string, size int, err error) {
	status := statusOf(err)
	fields := []zap.Field{
		zap.String("op_id", r.OpID),
		zap.String("method", method),
		zap.String("path", displayPath(path)),
		zap.Int("status", status),
		zap.Int("bytes", size),
	}
	errText := ""
	if err != nil {
		errText = err.Error()
		r.logger().Warn("mutation failed", append(fields, zap.Error(err))...)
	} else {
		r.logger().Info("mutation", fields...)
	}

	at := r.timeNow().UTC()
	if r.Publisher != nil {
		m := events.Mutation{
			OpID:    r.OpID,
			Command: r.Command,
			Method:  method,
			Path:    path,
			Status:  status,
			Bytes:   size,
			Error:   errText,
			At:      at,
		}
		if perr := r.Publisher.Publish(ctx, topic, m); perr != nil {
			r.logger().Warn("publish event", zap.Error(perr))
		}
	}
	if r.Journal != nil {
		e := &journal.Entry{
			OpID:        r.OpID,
			Command:     r.Command,
			Method:      method,
			Path:        path,
			Status:      status,
			Bytes:       size,
			Error:       errText,
			DatabaseURL: r.DatabaseURL,
			Actor:       r.Actor,
			CreatedAt:   at,
		}
		if jerr := r.Journal.Record(ctx, e); jerr != nil {
			r.logger().Warn("journal entry", zap.Error(jerr))
		}
	}
}

// backupFirst exports the database to the configured destinations before a
// destructive write. It does nothing when no destination is configured.
func (r *Runner) backupFirst(ctx context.Context) error {
	if !r.Backup.Enabled() {
		return nil
	}
	r.printf("backing up database...\n")
	snap, err := r.Backup.Run(ctx)
	if err != nil {
		return fmt.Errorf("backup before %s: %w", r.Command, err)
	}
	r.logger().Info("backup written",
		zap.String("op_id", r.OpID),
		zap.String("name", snap.Name),
		zap.Int("bytes", len(snap.Data)),
	)
	r.printf("  -> %s (%d bytes)\n", snap.Name, len(snap.Data))
	return nil
}

// statusOf returns the HTTP status implied by err: 200 on success, the
// response status for API errors, 0 when no response was received.
func statusOf(err error) int {
	if err == nil {
		return 200
	}
	return rtdb.StatusCode(err)
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
