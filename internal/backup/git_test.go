package backup

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, dir string, name string, args ...string) string {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("%s %v: %v\n%s", name, args, err, out)
	}
	return string(out)
}

// initClone creates a bare remote plus a working clone on branch main.
func initClone(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found in PATH")
	}
	remoteDir := t.TempDir()
	run(t, remoteDir, "git", "init", "--bare")

	workDir := t.TempDir()
	run(t, workDir, "git", "clone", remoteDir, "repo")
	repoDir := filepath.Join(workDir, "repo")

	run(t, repoDir, "git", "config", "user.email", "ops@example.com")
	run(t, repoDir, "git", "config", "user.name", "Ops")
	run(t, repoDir, "git", "symbolic-ref", "HEAD", "refs/heads/main")
	if err := os.WriteFile(filepath.Join(repoDir, ".gitkeep"), nil, 0o644); err != nil {
		t.Fatalf("write .gitkeep: %v", err)
	}
	run(t, repoDir, "git", "add", ".")
	run(t, repoDir, "git", "commit", "-m", "init")
	run(t, repoDir, "git", "push", "-u", "origin", "main")
	return repoDir
}

func TestGitDestination(t *testing.T) {
	repoDir := initClone(t)
	dest := NewGitDestination(repoDir, "snapshots/rtdb.json", "main", true)
	ctx := context.Background()

	data1 := []byte(`{"umkm":{}}`)
	if err := dest.Write(ctx, "rtdb-1.json", data1); err != nil {
		t.Fatalf("first write: %v", err)
	}
	got, err := os.ReadFile(filepath.Join(repoDir, "snapshots", "rtdb.json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(got) != string(data1) {
		t.Fatalf("file content mismatch: got %q", got)
	}

	// Same content again: no new commit.
	if err := dest.Write(ctx, "rtdb-2.json", data1); err != nil {
		t.Fatalf("second write (no-op): %v", err)
	}

	if err := dest.Write(ctx, "rtdb-3.json", []byte(`{"umkm":{"umkm0":{}}}`)); err != nil {
		t.Fatalf("third write: %v", err)
	}

	log := run(t, repoDir, "git", "log", "--format=%s")
	if strings.Contains(log, "rtdb-2.json") {
		t.Errorf("unchanged snapshot was committed:\n%s", log)
	}
	for _, want := range []string{"backup: rtdb-1.json", "backup: rtdb-3.json"} {
		if !strings.Contains(log, want) {
			t.Errorf("git log missing %q:\n%s", want, log)
		}
	}
}

func TestGitDestination_NoPush(t *testing.T) {
	repoDir := initClone(t)
	dest := NewGitDestination(repoDir, "rtdb.json", "main", false)

	if err := dest.Write(context.Background(), "rtdb-1.json", []byte(`{}`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	status := run(t, repoDir, "git", "status", "-sb")
	if !strings.Contains(status, "ahead 1") {
		t.Errorf("expected local commit ahead of origin, got:\n%s", status)
	}
}
