package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alfredjeanlab/umkmctl/internal/rtdb"
)

// DefaultUploadFile is read by upload when no file is given.
const DefaultUploadFile = "umkm.json"

var (
	// ErrFileNotFound is returned by ReadJSONFile for a missing file.
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidJSON is returned by ReadJSONFile when the file does not parse.
	ErrInvalidJSON = errors.New("invalid JSON")
)

// ReadJSONFile reads path and checks that it holds a JSON document.
func ReadJSONFile(path string) (json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidJSON, path)
	}
	return json.RawMessage(data), nil
}

// Upload replaces the entire database with data after the operator
// confirms. source names where data came from, for the log.
func (r *Runner) Upload(ctx context.Context, data json.RawMessage, source string) error {
	if !json.Valid(data) {
		return fmt.Errorf("%w: %s", ErrInvalidJSON, source)
	}

	r.printf("sending %s to %s\n", source, r.DatabaseURL)
	r.printf("WARNING: this replaces ALL data in the database.\n")
	if err := r.confirm("Are you sure you want to continue?"); err != nil {
		return err
	}

	if err := r.backupFirst(ctx); err != nil {
		return err
	}

	r.printf("uploading %d bytes...\n", len(data))
	if _, err := r.put(ctx, "", data); err != nil {
		r.printf("upload failed\nstatus code: %d\nresponse: %s\n", rtdb.StatusCode(err), responseText(err))
		return fmt.Errorf("upload: %w", err)
	}
	r.printf("database updated\n")
	return nil
}
