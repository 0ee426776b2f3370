// Package pkg provides small shared utilities for emend.
package pkg

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to path using the write-to-temp-then-rename
// pattern: the content is written to a temporary file in the same
// directory, flushed, and renamed over the original. A crash or power
// loss mid-write can therefore never leave a truncated or half-written
// file: either the whole file is replaced or it is not.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".emend-*.tmp")
	if err != nil {
		slog.Error("failed to create temp file", "dir", dir, "error", err)
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}

	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		slog.Error("failed to write temp file", "path", tmpName, "error", err)

		return fmt.Errorf("write temp file %s: %w", tmpName, err)
	}

	if err := tmp.Chmod(perm); err != nil {
		cleanup()
		return fmt.Errorf("chmod temp file %s: %w", tmpName, err)
	}

	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("sync temp file %s: %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		slog.Error("failed to rename temp file", "from", tmpName, "to", path, "error", err)

		return fmt.Errorf("rename %s over %s: %w", tmpName, path, err)
	}

	slog.Debug("atomically replaced file", "path", path, "bytes", len(data))

	return nil
}
