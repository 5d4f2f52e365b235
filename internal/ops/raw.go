package ops

import (
	"context"
	"encoding/json"
	"fmt"
)

// Get reads path. It is not journaled.
func (r *Runner) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return r.Client.Get(ctx, path)
}

// Put writes body at path, replacing whatever was there.
func (r *Runner) Put(ctx context.Context, path string, body json.RawMessage) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, ErrInvalidJSON
	}
	if path == "" || path == "/" {
		return nil, fmt.Errorf("refusing to PUT at the root: use upload")
	}
	return r.put(ctx, path, body)
}

// Patch merges the children of body into path.
func (r *Runner) Patch(ctx context.Context, path string, body json.RawMessage) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, ErrInvalidJSON
	}
	return r.patch(ctx, path, body)
}

// Delete removes path. Deleting the root asks for confirmation first.
func (r *Runner) Delete(ctx context.Context, path string) error {
	if path == "" || path == "/" {
		r.printf("WARNING: this deletes ALL data in the database.\n")
		if err := r.confirm("Are you sure you want to continue?"); err != nil {
			return err
		}
		if err := r.backupFirst(ctx); err != nil {
			return err
		}
	}
	return r.remove(ctx, path)
}
