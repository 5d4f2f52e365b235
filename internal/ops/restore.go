package ops

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alfredjeanlab/umkmctl/internal/model"
	"github.com/alfredjeanlab/umkmctl/internal/rtdb"
)

// ErrReseedIncomplete is returned by Reseed when at least one write failed.
var ErrReseedIncomplete = errors.New("reseed incomplete")

// Restore sends ds as a single multi-path PATCH at the root. Only the
// "<node>/<id>" entries in ds are replaced; other ids under the same nodes
// and everything else in the database are left untouched.
func (r *Runner) Restore(ctx context.Context, ds model.Dataset) error {
	for _, e := range ds.Entries() {
		if err := rtdb.ValidateKey(e.Node); err != nil {
			return err
		}
		if err := rtdb.ValidateKey(e.ID); err != nil {
			return err
		}
	}
	if err := model.ValidateDataset(ds); err != nil {
		return err
	}
	body, err := json.Marshal(ds.UpdatePaths())
	if err != nil {
		return fmt.Errorf("encoding dataset: %w", err)
	}
	if err := r.backupFirst(ctx); err != nil {
		return err
	}

	r.printf("restoring %d records...\n", ds.Len())
	if _, err := r.patch(ctx, "", body); err != nil {
		r.printf("  -> restore failed (status %d)\n", rtdb.StatusCode(err))
		return fmt.Errorf("restore: %w", err)
	}
	r.printf("  -> data restored\n")
	return nil
}

// Step is the outcome of one request made by Reseed.
type Step struct {
	Method string `json:"method"`
	Path   string `json:"path"`
	Status int    `json:"status"`
	Error  string `json:"error,omitempty"`
}

// OK reports whether the request succeeded.
func (s Step) OK() bool { return s.Error == "" }

// ReseedReport lists every delete and write made by Reseed, in order.
type ReseedReport struct {
	Deletes []Step `json:"deletes"`
	Puts    []Step `json:"puts"`
}

// FailedPuts returns the number of writes that did not succeed.
func (r *ReseedReport) FailedPuts() int {
	n := 0
	for _, s := range r.Puts {
		if !s.OK() {
			n++
		}
	}
	return n
}

func newStep(method, path string, err error) Step {
	s := Step{Method: method, Path: path, Status: statusOf(err)}
	if err != nil {
		s.Error = err.Error()
	}
	return s
}

// Reseed replaces the records of ids. First every <node>/<id> for each id
// and each of model.Nodes is deleted; a failed delete is reported and the
// run continues. Then each entry of ds is written with its own PUT so that
// nothing outside the targeted records is touched; failed writes are also
// reported without stopping. The returned error wraps ErrReseedIncomplete
// when any write failed.
func (r *Runner) Reseed(ctx context.Context, ids []string, ds model.Dataset) (*ReseedReport, error) {
	for _, id := range ids {
		if err := rtdb.ValidateKey(id); err != nil {
			return nil, err
		}
	}
	if err := model.ValidateDataset(ds); err != nil {
		return nil, err
	}
	if err := r.backupFirst(ctx); err != nil {
		return nil, err
	}

	report := &ReseedReport{}

	r.printf("deleting old records...\n")
	for _, id := range ids {
		for _, node := range model.Nodes {
			path := rtdb.Join(node, id)
			r.printf("  deleting %s... ", path)
			err := r.remove(ctx, path)
			report.Deletes = append(report.Deletes, newStep("DELETE", path, err))
			if err != nil {
				r.printf("nothing to delete or error (status %d)\n", rtdb.StatusCode(err))
				continue
			}
			r.printf("deleted\n")
		}
	}
	r.printf("delete phase done\n\n")

	r.printf("writing new records...\n")
	for _, e := range ds.Entries() {
		path := e.Path()
		r.printf("  writing %s... ", path)
		_, err := r.put(ctx, path, e.Value)
		report.Puts = append(report.Puts, newStep("PUT", path, err))
		if err != nil {
			r.printf("failed (status %d)\n     response: %s\n", rtdb.StatusCode(err), responseText(err))
			continue
		}
		r.printf("written\n")
	}
	r.printf("write phase done\n")

	if n := report.FailedPuts(); n > 0 {
		return report, fmt.Errorf("%w: %d of %d writes failed", ErrReseedIncomplete, n, len(report.Puts))
	}
	return report, nil
}

// responseText returns the server's message for API errors and the error
// text otherwise.
func responseText(err error) string {
	var apiErr *rtdb.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
