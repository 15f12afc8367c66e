package infra

import (
	"os"
	"path/filepath"

	"product-catalog/internal/pkg/errs"
)

// WriteFileAtomic writes data to dir/name through a temporary file in the same directory,
// syncing it before the rename so a successful return means the bytes are on disk.
func WriteFileAtomic(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errs.Wrapf(err, "create directory %s", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return errs.Wrapf(err, "create temp file for %s", name)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return errs.Wrapf(err, "write %s", name)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		cleanup()
		return errs.Wrapf(err, "sync %s", name)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errs.Wrapf(err, "close %s", name)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		cleanup()
		return errs.Wrapf(err, "rename %s", name)
	}
	return nil
}
