package catalog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"product-catalog/internal/domain/product"
	"product-catalog/internal/domain/review"
	"product-catalog/internal/infra/i18n"
	"product-catalog/internal/infra/metrics"
	"product-catalog/internal/pkg/clock"
	"product-catalog/internal/pkg/errs"
)

type Deps struct {
	Store     Store
	Reports   ReportWriter
	Snapshots Snapshotter
	Locales   *i18n.Registry
	Clock     clock.Clock
	Logger    *slog.Logger
	Metrics   *metrics.Metrics
	// Output receives PrintProducts listings. Defaults to os.Stdout.
	Output io.Writer
}

// Repository is the in-memory product catalog. Products are keyed by id and each carries
// its reviews in submission order.
//
// Locking: mu guards the map itself. Operations on a single product hold mu for reading
// and the entry's own mutex, so reviews of one product serialize while different products
// proceed in parallel. Create, bulk views, dump and restore hold mu exclusively.
type Repository struct {
	mu      sync.RWMutex
	entries map[int]*entry

	formatter atomic.Pointer[i18n.Formatter]

	store     Store
	reports   ReportWriter
	snapshots Snapshotter
	locales   *i18n.Registry
	clock     clock.Clock
	logger    *slog.Logger
	metrics   *metrics.Metrics
	out       io.Writer
	outMu     sync.Mutex
}

type entry struct {
	mu      sync.Mutex
	product product.Product
	reviews []review.Review
}

// NewRepository builds the repository and loads the persisted catalog. A load failure is
// logged and leaves whatever was parsed.
func NewRepository(ctx context.Context, deps Deps) *Repository {
	out := deps.Output
	if out == nil {
		out = os.Stdout
	}

	r := &Repository{
		entries:   make(map[int]*entry),
		store:     deps.Store,
		reports:   deps.Reports,
		snapshots: deps.Snapshots,
		locales:   deps.Locales,
		clock:     deps.Clock,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		out:       out,
	}
	r.formatter.Store(deps.Locales.Default())

	loaded, err := r.store.Load(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to load catalog data",
			slog.String("error", err.Error()))
	}
	r.replace(loaded)

	return r
}

// Len reports the number of products.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// replace swaps in a new map built from entries. Callers must hold mu exclusively or own r.
func (r *Repository) replace(entries []Entry) {
	m := make(map[int]*entry, len(entries))
	for _, e := range entries {
		if _, dup := m[e.Product.ID()]; dup {
			continue
		}
		m[e.Product.ID()] = &entry{
			product: e.Product,
			reviews: append([]review.Review{}, e.Reviews...),
		}
	}
	r.entries = m
}

// view copies every entry under the exclusive lock so callers can render without holding it.
func (r *Repository) view() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.copyEntries()
}

// copyEntries requires mu held exclusively.
func (r *Repository) copyEntries() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, Entry{
			Product: e.product,
			Reviews: append([]review.Review{}, e.reviews...),
		})
	}
	return out
}

// withEntry runs fn with the entry for id locked. The map stays read-locked throughout.
func (r *Repository) withEntry(id int, fn func(e *entry)) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return productNotFound(id)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e)
	return nil
}

func productNotFound(id int) error {
	return errs.Wrapf(errs.ErrProductNotFound, "product id %d", id)
}
