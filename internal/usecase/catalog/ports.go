package catalog

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/catalog/ports.go -package=catalogmock

import (
	"context"

	"product-catalog/internal/domain/product"
	"product-catalog/internal/domain/review"
)

// Entry is one product together with its reviews in submission order. It is the unit
// exchanged with persistence.
type Entry struct {
	Product product.Product
	Reviews []review.Review
}

// Store loads and saves the text-record data directory.
type Store interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
}

// ReportWriter persists a rendered per-product report. client may be empty.
type ReportWriter interface {
	WriteReport(ctx context.Context, productID int, client string, lines []string) error
}

// Snapshotter writes and consumes full binary snapshots of the repository.
type Snapshotter interface {
	Dump(ctx context.Context, entries []Entry) (string, error)
	Restore(ctx context.Context) ([]Entry, error)
}
