// Package backup exports the whole database tree and writes it to one or
// more destinations before destructive commands run, or on a schedule.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alfredjeanlab/umkmctl/internal/events"
	"github.com/alfredjeanlab/umkmctl/internal/snapshot"
)

// Destination is the interface for a backup target (directory, S3, git).
type Destination interface {
	// Write stores data under name.
	Write(ctx context.Context, name string, data []byte) error
	// String describes the destination for logs.
	String() string
}

// Source reads a subtree of the database.
type Source interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
}

// Snapshot is one export of the database root.
type Snapshot struct {
	Name        string
	Data        []byte
	Fingerprint uint64
	TakenAt     time.Time
}

// Exporter fetches the database root and fans it out to destinations.
type Exporter struct {
	Source       Source
	Destinations []Destination
	Publisher    events.Publisher
	// Logger receives publish failures. Nil discards them.
	Logger *zap.Logger
	OpID   string

	now func() time.Time
}

// Enabled reports whether any destination is configured.
func (e *Exporter) Enabled() bool {
	return e != nil && len(e.Destinations) > 0
}

// Fetch exports the database root.
func (e *Exporter) Fetch(ctx context.Context) (*Snapshot, error) {
	raw, err := e.Source.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("export database: %w", err)
	}
	now := time.Now
	if e.now != nil {
		now = e.now
	}
	at := now().UTC()
	data := snapshot.Pretty(raw)
	return &Snapshot{
		Name:        SnapshotName(at, e.OpID),
		Data:        data,
		Fingerprint: snapshot.Fingerprint(data),
		TakenAt:     at,
	}, nil
}

// Write sends snap to every destination concurrently. It fails if any
// destination fails.
func (e *Exporter) Write(ctx context.Context, snap *Snapshot) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, dest := range e.Destinations {
		dest := dest
		g.Go(func() error {
			if err := dest.Write(gctx, snap.Name, snap.Data); err != nil {
				return fmt.Errorf("%s: %w", dest, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if e.Publisher != nil {
		err := e.Publisher.Publish(ctx, events.TopicBackupWritten, events.BackupWritten{
			OpID:         e.OpID,
			Name:         snap.Name,
			Bytes:        len(snap.Data),
			Destinations: len(e.Destinations),
			At:           snap.TakenAt,
		})
		if err != nil && e.Logger != nil {
			e.Logger.Warn("publishing backup event failed", zap.String("name", snap.Name), zap.Error(err))
		}
	}
	return nil
}

// Run fetches and writes one snapshot.
func (e *Exporter) Run(ctx context.Context) (*Snapshot, error) {
	snap, err := e.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if err := e.Write(ctx, snap); err != nil {
		return nil, err
	}
	return snap, nil
}

// SnapshotName builds the object/file name for a snapshot taken at t.
func SnapshotName(t time.Time, opID string) string {
	name := "rtdb-" + t.UTC().Format("20060102T150405Z")
	if opID != "" {
		name += "-" + opID
	}
	return name + ".json"
}
