// Package snapshot moves the local store file to and from its durable copy.
//
// The durable copy is a plain SQLite file committed next to the code, so
// export has to produce a single self-contained file: the WAL is checkpointed
// into the main file first, then the file is copied through a temp name and
// renamed into place so readers never observe a half-written snapshot.
package snapshot

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Lawrencium-103/finstrat/internal/logger"
)

// Export checkpoints the open store and writes its durable copy.
func Export(db *sql.DB, storePath, snapshotPath string) error {
	log := logger.With("snapshot")

	if _, err := db.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
		return fmt.Errorf("wal checkpoint: %w", err)
	}

	if err := copyFile(storePath, snapshotPath); err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	info, err := os.Stat(snapshotPath)
	if err != nil {
		return fmt.Errorf("stat snapshot: %w", err)
	}
	log.Info().Str("path", snapshotPath).Int64("bytes", info.Size()).Msg("snapshot exported")
	return nil
}

// Restore seeds the local store from the durable copy.
//
// It only acts when the local store is absent or empty; an existing store is
// always considered fresher than the snapshot and left alone. A missing
// snapshot is not an error, the store just starts empty.
func Restore(storePath, snapshotPath string) error {
	log := logger.With("snapshot")

	if info, err := os.Stat(storePath); err == nil && info.Size() > 0 {
		return nil
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat store: %w", err)
	}

	info, err := os.Stat(snapshotPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", snapshotPath).Msg("no snapshot to restore, starting empty")
			return nil
		}
		return fmt.Errorf("stat snapshot: %w", err)
	}
	if info.Size() == 0 {
		log.Warn().Str("path", snapshotPath).Msg("snapshot is empty, starting empty")
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(storePath), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	if err := copyFile(snapshotPath, storePath); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}

	log.Info().Str("from", snapshotPath).Str("to", storePath).Int64("bytes", info.Size()).Msg("store restored from snapshot")
	return nil
}

// copyFile writes src to dst atomically via a temp file in dst's directory.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}
