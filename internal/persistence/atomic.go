package persistence

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeAtomic writes data to path using the write-temp/fsync/rename pattern:
// create parent directories on demand, write a sibling temp file with
// restrictive permissions, fsync it so the bytes are durable before the
// rename, then atomically rename it over the target. A failure at any step
// never touches the existing file at path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("persistence: create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".jefe-tmp-*")
	if err != nil {
		return fmt.Errorf("persistence: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op once the rename below succeeds

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("persistence: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("persistence: fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("persistence: close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o600); err != nil {
		return fmt.Errorf("persistence: chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("persistence: finalize %s: %w", path, err)
	}
	return nil
}
