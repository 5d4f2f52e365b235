package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileDestination writes each snapshot as a file in a local directory.
// Snapshots contain user records, so files are private to the owner.
type FileDestination struct {
	Dir string
}

func (d *FileDestination) Write(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(d.Dir, name), data, 0o600); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func (d *FileDestination) String() string { return "dir:" + d.Dir }
