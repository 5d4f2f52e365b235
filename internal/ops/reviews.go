package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alfredjeanlab/umkmctl/internal/model"
	"github.com/alfredjeanlab/umkmctl/internal/rtdb"
)

// ReviewMigration is the set of legacy reviews converted for one business.
type ReviewMigration struct {
	UmkmID  string                  `json:"umkm_id"`
	Reviews map[string]model.Review `json:"reviews"`
	Error   string                  `json:"error,omitempty"`
}

// MigrateReport summarizes a MigrateReviews run.
type MigrateReport struct {
	DryRun     bool              `json:"dry_run"`
	Scanned    int               `json:"scanned"`
	Migrations []ReviewMigration `json:"migrations"`
}

// Converted returns the number of reviews converted (or to be converted).
func (r *MigrateReport) Converted() int {
	n := 0
	for _, m := range r.Migrations {
		n += len(m.Reviews)
	}
	return n
}

// Failed returns the number of businesses whose PATCH failed.
func (r *MigrateReport) Failed() int {
	n := 0
	for _, m := range r.Migrations {
		if m.Error != "" {
			n++
		}
	}
	return n
}

// MigrateReviews rewrites every legacy string review as a structured review
// with the anonymous author and the default rating. Each business's changed
// reviews are sent as one PATCH to reviews/<id>. With dryRun nothing is
// written.
func (r *Runner) MigrateReviews(ctx context.Context, dryRun bool) (*MigrateReport, error) {
	raw, err := r.Client.Get(ctx, model.NodeReviews)
	if err != nil {
		return nil, fmt.Errorf("reading reviews: %w", err)
	}
	report := &MigrateReport{DryRun: dryRun}
	if model.IsNull(raw) {
		r.printf("no reviews found\n")
		return report, nil
	}

	byUmkm, err := model.Children(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding reviews: %w", err)
	}

	ids := model.SortedKeys(byUmkm)
	for _, id := range ids {
		reviews, err := model.Children(byUmkm[id])
		if err != nil {
			r.printf("  skipping %s: %v\n", rtdb.Join(model.NodeReviews, id), err)
			continue
		}
		converted := map[string]model.Review{}
		for _, key := range model.SortedKeys(reviews) {
			report.Scanned++
			rev, legacy, err := model.ParseReview(reviews[key])
			if err != nil || !legacy {
				continue
			}
			converted[key] = rev
		}
		if len(converted) > 0 {
			report.Migrations = append(report.Migrations, ReviewMigration{UmkmID: id, Reviews: converted})
		}
	}

	if len(report.Migrations) == 0 {
		r.printf("all %d reviews are already structured\n", report.Scanned)
		return report, nil
	}
	if dryRun {
		for _, m := range report.Migrations {
			r.printf("  would convert %d reviews under %s\n", len(m.Reviews), rtdb.Join(model.NodeReviews, m.UmkmID))
		}
		return report, nil
	}

	if err := r.backupFirst(ctx); err != nil {
		return nil, err
	}
	for i := range report.Migrations {
		m := &report.Migrations[i]
		path := rtdb.Join(model.NodeReviews, m.UmkmID)
		body, err := json.Marshal(m.Reviews)
		if err != nil {
			return report, fmt.Errorf("encoding reviews for %s: %w", m.UmkmID, err)
		}
		r.printf("  converting %d reviews under %s... ", len(m.Reviews), path)
		if _, err := r.patch(ctx, path, body); err != nil {
			m.Error = err.Error()
			r.printf("failed (status %d)\n", rtdb.StatusCode(err))
			continue
		}
		r.printf("done\n")
	}
	if n := report.Failed(); n > 0 {
		return report, fmt.Errorf("review migration: %d of %d businesses failed", n, len(report.Migrations))
	}
	return report, nil
}

// AddReview appends rev under reviews/<umkmID> and returns the push key the
// server assigned. An empty author is stored as the anonymous author.
func (r *Runner) AddReview(ctx context.Context, umkmID string, rev model.Review) (string, error) {
	if err := rtdb.ValidateKey(umkmID); err != nil {
		return "", err
	}
	rev.Comment = strings.TrimSpace(rev.Comment)
	if strings.TrimSpace(rev.Author) == "" {
		rev.Author = model.AnonymousAuthor
	}
	if err := model.ValidateReview(&rev); err != nil {
		return "", err
	}
	body, err := json.Marshal(rev)
	if err != nil {
		return "", fmt.Errorf("encoding review: %w", err)
	}
	key, err := r.post(ctx, rtdb.Join(model.NodeReviews, umkmID), body)
	if err != nil {
		return "", fmt.Errorf("add review: %w", err)
	}
	r.printf("review %s added to %s\n", key, umkmID)
	return key, nil
}
