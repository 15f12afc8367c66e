// Package snapshot stores the whole repository as a single gob-encoded file in the temp
// folder and reads it back.
package snapshot

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"product-catalog/internal/infra"
	"product-catalog/internal/infra/metrics"
	"product-catalog/internal/pkg/clock"
	"product-catalog/internal/pkg/config"
	"product-catalog/internal/usecase/catalog"
)

const (
	timestampLayout = "20060102T150405.000000000Z"
	artifactSuffix  = ".tmp"
)

type Snapshotter struct {
	cfg     config.StoreConfig
	clock   clock.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(cfg config.StoreConfig, c clock.Clock, logger *slog.Logger, m *metrics.Metrics) *Snapshotter {
	return &Snapshotter{
		cfg:     cfg,
		clock:   c,
		logger:  logger,
		metrics: m,
	}
}

// Dump writes entries to a new timestamped artifact and returns its path. The file is
// synced before Dump returns.
func (s *Snapshotter) Dump(ctx context.Context, entries []catalog.Entry) (path string, err error) {
	defer func() {
		s.metrics.SnapshotOps.WithLabelValues(metrics.OpDump, metrics.Status(err)).Inc()
	}()

	if err := ctx.Err(); err != nil {
		return "", infra.WrapStoreErr(s.logger, infra.KindIOFailure, "dump canceled", err)
	}

	now := s.clock.Now().UTC()
	dto, err := toDTO(entries, now)
	if err != nil {
		return "", infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to map snapshot", err)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(dto); err != nil {
		return "", infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to encode snapshot", err)
	}

	name := fmt.Sprintf(s.cfg.TempFile, now.Format(timestampLayout))
	if err := infra.WriteFileAtomic(s.cfg.TempFolder, name, buf.Bytes()); err != nil {
		return "", infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to write snapshot "+name, err)
	}

	path = filepath.Join(s.cfg.TempFolder, name)
	s.logger.InfoContext(ctx, "Snapshot written",
		slog.String("file", path),
		slog.Int("products", len(entries)),
		slog.Int("bytes", buf.Len()))
	return path, nil
}

// Restore decodes the lexically first artifact in the temp folder and deletes it. A file
// that fails to decode is left in place.
func (s *Snapshotter) Restore(ctx context.Context) (entries []catalog.Entry, err error) {
	defer func() {
		s.metrics.SnapshotOps.WithLabelValues(metrics.OpRestore, metrics.Status(err)).Inc()
	}()

	if err := ctx.Err(); err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindIOFailure, "restore canceled", err)
	}

	name, err := s.findArtifact()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(s.cfg.TempFolder, name)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to read snapshot "+name, err)
	}

	var dto snapshotDTO
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&dto); err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindParse, "failed to decode snapshot "+name, err)
	}
	if dto.Version != formatVersion {
		return nil, infra.WrapStoreErr(s.logger, infra.KindParse, fmt.Sprintf("unsupported snapshot version %d in %s", dto.Version, name), nil)
	}

	if err := os.Remove(path); err != nil {
		return nil, infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to delete snapshot "+name, err)
	}

	entries = fromDTO(dto)
	s.logger.InfoContext(ctx, "Snapshot restored",
		slog.String("file", path),
		slog.Int("products", len(entries)))
	return entries, nil
}

func (s *Snapshotter) findArtifact() (string, error) {
	files, err := os.ReadDir(s.cfg.TempFolder)
	if err != nil {
		if os.IsNotExist(err) {
			return "", infra.WrapStoreErr(s.logger, infra.KindNotFound, "no snapshot in "+s.cfg.TempFolder, nil)
		}
		return "", infra.WrapStoreErr(s.logger, infra.KindIOFailure, "failed to list temp folder", err)
	}

	var names []string
	for _, f := range files {
		name := f.Name()
		// dot files are in-flight atomic writes
		if f.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, artifactSuffix) {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", infra.WrapStoreErr(s.logger, infra.KindNotFound, "no snapshot in "+s.cfg.TempFolder, nil)
	}
	sort.Strings(names)
	return names[0], nil
}
