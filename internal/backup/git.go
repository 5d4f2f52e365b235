package backup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// GitDestination keeps the latest snapshot in a file of a git repo, so the
// repo history becomes the backup history.
type GitDestination struct {
	repo   string // path to the local clone
	file   string // file path within the repo
	branch string // branch to commit and push to
	push   bool
}

// NewGitDestination creates a git destination. repo is the path to an
// existing local clone. When push is false commits stay local.
func NewGitDestination(repo, file, branch string, push bool) *GitDestination {
	return &GitDestination{repo: repo, file: file, branch: branch, push: push}
}

// Write overwrites the configured file, commits, and pushes.
func (d *GitDestination) Write(ctx context.Context, name string, data []byte) error {
	if err := d.git(ctx, "checkout", d.branch); err != nil {
		return fmt.Errorf("git checkout: %w", err)
	}

	// The remote may not have the branch yet.
	if d.push {
		_ = d.git(ctx, "pull", "--ff-only", "origin", d.branch)
	}

	filePath := filepath.Join(d.repo, d.file)
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	if err := d.git(ctx, "add", d.file); err != nil {
		return fmt.Errorf("git add: %w", err)
	}

	// Nothing staged means the tree is unchanged since the last backup.
	if err := d.git(ctx, "diff", "--cached", "--quiet"); err == nil {
		return nil
	}

	if err := d.git(ctx, "commit", "-m", "backup: "+name); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}

	if d.push {
		if err := d.git(ctx, "push", "origin", d.branch); err != nil {
			return fmt.Errorf("git push: %w", err)
		}
	}
	return nil
}

func (d *GitDestination) String() string { return "git:" + filepath.Join(d.repo, d.file) }

func (d *GitDestination) git(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = d.repo
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
