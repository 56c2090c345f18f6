package browser

import (
	"context"
	"strings"
	"sync"

	"foodfacts/explorer/internal/client"
	"foodfacts/explorer/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Mode is one of the three mutually exclusive states governing how the
// product set is populated.
type Mode string

const (
	// ModeFeed is the default paged feed. It is the only mode that
	// accumulates pages incrementally.
	ModeFeed Mode = "feed"
	// ModeSearch holds the one-shot result of a free-text query.
	ModeSearch Mode = "search"
	// ModeCategory holds the one-shot result of a category query.
	ModeCategory Mode = "category"
)

// Browser owns the current product listing, its mode and its pagination
// cursor. Mode transitions take effect (cleared set, new mode) before
// their query is issued; a query result whose sequence number no longer
// matches the browser's is stale and gets discarded.
type Browser struct {
	client client.CatalogClient

	mu       sync.Mutex
	mode     Mode
	products []domain.Product
	page     int
	hasMore  bool
	order    SortOrder
	seq      uint64
}

func New(c client.CatalogClient) *Browser {
	return &Browser{
		client:  c,
		mode:    ModeFeed,
		page:    1,
		hasMore: true,
		order:   SortNameAsc,
	}
}

// Reset enters the default feed: the product set and cursor are
// discarded, hasMore turns optimistically true and page 1 is fetched.
// An empty first page corrects hasMore to false.
func (b *Browser) Reset(ctx context.Context) {
	b.mu.Lock()
	b.mode = ModeFeed
	b.products = nil
	b.page = 1
	b.hasMore = true
	b.seq++
	seq := b.seq
	b.mu.Unlock()

	products := b.client.Feed(ctx, 1)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seq != seq {
		log.Debugf("Discarding stale feed page 1 with %d products", len(products))
		return
	}
	if len(products) == 0 {
		b.hasMore = false
		return
	}
	b.products = products
}

// LoadMore fetches the next feed page and appends it to the current set.
// An empty page marks the end of the feed without advancing the cursor.
// Outside feed mode, or once the feed is exhausted, this is a no-op.
func (b *Browser) LoadMore(ctx context.Context) {
	b.mu.Lock()
	if b.mode != ModeFeed || !b.hasMore {
		b.mu.Unlock()
		return
	}
	seq := b.seq
	next := b.page + 1
	b.mu.Unlock()

	products := b.client.Feed(ctx, next)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.seq != seq || b.page+1 != next {
		log.Debugf("Discarding stale feed page %d with %d products", next, len(products))
		return
	}
	if len(products) == 0 {
		b.hasMore = false
		return
	}
	b.products = append(b.products, products...)
	b.page = next
}

// Search replaces the set with free-text matches. A blank term is
// equivalent to re-entering the feed. An empty result is a valid
// terminal state ("no matches"), not an error.
func (b *Browser) Search(ctx context.Context, term string) {
	term = strings.TrimSpace(term)
	if term == "" {
		b.Reset(ctx)
		return
	}

	seq := b.transition(ModeSearch)
	b.install(seq, b.client.Search(ctx, term))
}

// FilterCategory replaces the set with members of the given category.
// A blank tag is equivalent to re-entering the feed.
func (b *Browser) FilterCategory(ctx context.Context, tag string) {
	if tag == "" {
		b.Reset(ctx)
		return
	}

	seq := b.transition(ModeCategory)
	b.install(seq, b.client.ByCategory(ctx, tag))
}

// transition switches to a one-shot mode: the set and cursor are
// discarded immediately and pagination stays disabled until the browser
// returns to the feed.
func (b *Browser) transition(mode Mode) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.mode = mode
	b.products = nil
	b.page = 1
	b.hasMore = false
	b.seq++
	return b.seq
}

// install replaces the set with a one-shot query result, unless a newer
// transition made the result stale.
func (b *Browser) install(seq uint64, products []domain.Product) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.seq != seq {
		log.Debugf("Discarding stale %s result with %d products", b.mode, len(products))
		return
	}
	b.products = products
}

// SetSortOrder changes the sort transform. It never triggers a query.
func (b *Browser) SetSortOrder(order SortOrder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.order = order
}

// Products returns the current set under the current sort order. The
// sort is a pure, stable re-ordering of whatever is loaded.
func (b *Browser) Products() []domain.Product {
	b.mu.Lock()
	products := append([]domain.Product(nil), b.products...)
	order := b.order
	b.mu.Unlock()

	sortProducts(products, order)
	return products
}

func (b *Browser) Mode() Mode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mode
}

func (b *Browser) Page() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

func (b *Browser) HasMore() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hasMore
}

func (b *Browser) SortOrder() SortOrder {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.order
}
