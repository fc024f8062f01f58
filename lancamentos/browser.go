package lancamentos

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for a load whose result arrived after a newer
// load of the same kind was issued. The result is discarded.
var ErrSuperseded = errors.New("lancamentos: superseded by a newer request")

// Source is what a Browser loads from; *API satisfies it.
type Source interface {
	List(ctx context.Context, f Filters) (Page, error)
	Stats(ctx context.Context, f Filters) (Stats, error)
}

// Browser holds the current page and stats for an interactive filter
// session. Each load is numbered; only the most recently issued load of each
// kind may update the held result.
type Browser struct {
	source Source

	mu       sync.Mutex
	listSeq  uint64
	statsSeq uint64
	filters  Filters
	page     Page
	stats    Stats
}

func NewBrowser(source Source) *Browser {
	return &Browser{source: source}
}

// Load fetches the page for f. Requests are never cancelled; a stale reply
// returns ErrSuperseded and leaves the held page untouched.
func (b *Browser) Load(ctx context.Context, f Filters) (Page, error) {
	b.mu.Lock()
	b.listSeq++
	seq := b.listSeq
	b.mu.Unlock()

	page, err := b.source.List(ctx, f)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.listSeq {
		return Page{}, ErrSuperseded
	}
	if err != nil {
		return Page{}, err
	}
	b.filters = f
	b.page = page
	return page, nil
}

// LoadStats is Load for the aggregate statistics.
func (b *Browser) LoadStats(ctx context.Context, f Filters) (Stats, error) {
	b.mu.Lock()
	b.statsSeq++
	seq := b.statsSeq
	b.mu.Unlock()

	stats, err := b.source.Stats(ctx, f)

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq != b.statsSeq {
		return Stats{}, ErrSuperseded
	}
	if err != nil {
		return Stats{}, err
	}
	b.stats = stats
	return stats, nil
}

// Current returns the filters and page of the latest successful load.
func (b *Browser) Current() (Filters, Page) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters, b.page
}

func (b *Browser) CurrentStats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}
