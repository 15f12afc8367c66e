package catalog

import (
	"context"
	"log/slog"
)

// Dump writes the whole catalog to a snapshot and then empties the repository. The lock is
// held across both steps so no review lands between them. On failure nothing is cleared.
func (r *Repository) Dump(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := r.copyEntries()
	path, err := r.snapshots.Dump(ctx, entries)
	if err != nil {
		return "", err
	}

	r.replace(nil)
	r.logger.InfoContext(ctx, "Catalog dumped",
		slog.String("file", path),
		slog.Int("products", len(entries)))
	return path, nil
}

// Restore replaces the whole catalog with the oldest snapshot. On failure the current
// contents stay as they are.
func (r *Repository) Restore(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := r.snapshots.Restore(ctx)
	if err != nil {
		return err
	}

	r.replace(entries)
	r.logger.InfoContext(ctx, "Catalog restored",
		slog.Int("products", len(r.entries)))
	return nil
}
