package collection

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"pickup-vendor-backend/internal/model"
	"pickup-vendor-backend/internal/upstream"
)

// PageFetcher is the slice of the upstream client the collection needs.
type PageFetcher interface {
	FetchPage(ctx context.Context, resource string, page, pageSize int) (*upstream.PageResponse, error)
}

// LoadMode selects how a fetched page is merged into the collection.
type LoadMode int

const (
	// Replace makes the fetched page the new collection.
	Replace LoadMode = iota
	// Append merges the page after dropping already-held identities.
	Append
)

// Collection is an incremental loader over one paged upstream resource.
// It keeps each record identity exactly once, serializes its own fetches,
// and never destroys held records on a failed fetch.
type Collection struct {
	fetcher  PageFetcher
	resource string
	pageSize int

	mu            sync.Mutex // guards all state below
	records       []model.PickupRecord
	vendor        *model.Vendor
	currentPage   int
	lastPage      int
	hasMore       bool
	loading       bool
	lastRequested int
	generation    uint64
	lastError     string
	limiter       *rate.Limiter
}

// New creates a collection for one upstream resource. loadMoreInterval is
// the minimum spacing between accepted load-more triggers.
func New(fetcher PageFetcher, resource string, pageSize int, loadMoreInterval time.Duration) *Collection {
	return &Collection{
		fetcher:  fetcher,
		resource: resource,
		pageSize: pageSize,
		limiter:  rate.NewLimiter(rate.Every(loadMoreInterval), 1),
	}
}

// LoadPage fetches page n and merges it according to mode. It is a no-op
// while another fetch is in flight, or when n was already the most
// recently requested page (guards against bursty scroll triggers).
func (c *Collection) LoadPage(ctx context.Context, n int, mode LoadMode) {
	c.mu.Lock()
	if c.loading || n == c.lastRequested {
		c.mu.Unlock()
		return
	}
	c.loading = true
	c.lastRequested = n
	gen := c.generation
	c.mu.Unlock()

	resp, err := c.fetcher.FetchPage(ctx, c.resource, n, c.pageSize)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// A reset happened while this fetch was in flight. The response is
		// stale; the reset already cleared the flags this call set.
		log.Printf("collection %s: discarding stale page %d response", c.resource, n)
		return
	}

	c.loading = false
	if err != nil {
		// Prior records stay untouched and the guard is released so the
		// same page can be retried.
		c.lastError = upstream.DisplayMessage(err)
		c.lastRequested = 0
		log.Printf("collection %s: page %d fetch failed: %v", c.resource, n, err)
		return
	}

	c.lastError = ""
	c.currentPage = resp.Meta.CurrentPage
	c.lastPage = resp.Meta.LastPage
	c.hasMore = c.currentPage < c.lastPage
	if resp.Vendor != nil {
		c.vendor = resp.Vendor
	}

	switch mode {
	case Replace:
		c.records = dedupe(nil, resp.Records)
	case Append:
		c.records = dedupe(c.records, resp.Records)
	}
}

// Reset clears the request guard and in-flight state, invalidates any
// outstanding fetch, and loads page 1 in replace mode.
func (c *Collection) Reset(ctx context.Context) {
	c.mu.Lock()
	c.generation++
	c.loading = false
	c.lastRequested = 0
	c.mu.Unlock()

	c.LoadPage(ctx, 1, Replace)
}

// MaybeLoadMore requests the next page in append mode when the list-end
// signal fires. It no-ops while loading, when the collection is
// exhausted, or when triggers arrive faster than the configured interval.
func (c *Collection) MaybeLoadMore(ctx context.Context) {
	c.mu.Lock()
	if c.loading || !c.hasMore {
		c.mu.Unlock()
		return
	}
	if !c.limiter.Allow() {
		c.mu.Unlock()
		return
	}
	next := c.currentPage + 1
	c.mu.Unlock()

	c.LoadPage(ctx, next, Append)
}

// dedupe appends incoming records to held, dropping any identity already
// present. Server order is preserved among the survivors.
func dedupe(held, incoming []model.PickupRecord) []model.PickupRecord {
	seen := make(map[int64]struct{}, len(held)+len(incoming))
	merged := make([]model.PickupRecord, 0, len(held)+len(incoming))
	for _, r := range held {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		merged = append(merged, r)
	}
	for _, r := range incoming {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		merged = append(merged, r)
	}
	return merged
}

// Records returns a copy of the held records in merge order.
func (c *Collection) Records() []model.PickupRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.PickupRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Record returns the held record with the given identity.
func (c *Collection) Record(id int64) (model.PickupRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return model.PickupRecord{}, false
}

// Vendor returns the vendor envelope from the most recent successful
// fetch, if the resource carries one.
func (c *Collection) Vendor() *model.Vendor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.vendor
}

// HasMore reports whether more pages remain.
func (c *Collection) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Loading reports whether a fetch is in flight.
func (c *Collection) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastError returns the display message of the most recent failed fetch,
// or "" after a success.
func (c *Collection) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}
