package api

import (
	"context"

	"pickup-vendor-backend/internal/feed"
	"pickup-vendor-backend/internal/ledger"
	"pickup-vendor-backend/internal/model"
	"pickup-vendor-backend/internal/reconcile"
	"pickup-vendor-backend/internal/tokenstore"
)

// VendorFetcher is the slice of the upstream client the profile handler
// needs.
type VendorFetcher interface {
	FetchVendor(ctx context.Context) (*model.Vendor, error)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	feeds      map[string]*feed.Feed
	feedOrder  []string
	ledger     *ledger.Ledger
	reconciler *reconcile.Reconciler
	vendor     VendorFetcher
	tokens     tokenstore.Store
}

// NewHandler creates a new API handler over the given feeds.
func NewHandler(feeds []*feed.Feed, l *ledger.Ledger, r *reconcile.Reconciler, vendor VendorFetcher, tokens tokenstore.Store) *Handler {
	byName := make(map[string]*feed.Feed, len(feeds))
	order := make([]string, 0, len(feeds))
	for _, f := range feeds {
		byName[f.Name()] = f
		order = append(order, f.Name())
	}
	return &Handler{
		feeds:      byName,
		feedOrder:  order,
		ledger:     l,
		reconciler: r,
		vendor:     vendor,
		tokens:     tokens,
	}
}

// findRecord locates a held record across feeds, together with the feed
// that owns it.
func (h *Handler) findRecord(id int64) (model.PickupRecord, *feed.Feed, bool) {
	for _, name := range h.feedOrder {
		f := h.feeds[name]
		if record, ok := f.Record(id); ok {
			return record, f, true
		}
	}
	return model.PickupRecord{}, nil, false
}
