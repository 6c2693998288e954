package feed

import (
	"context"
	"time"

	"pickup-vendor-backend/config"
	"pickup-vendor-backend/internal/collection"
	"pickup-vendor-backend/internal/ledger"
	"pickup-vendor-backend/internal/model"
	"pickup-vendor-backend/internal/view"
)

// Feed binds one paged upstream resource to its grouped view and the
// shared price ledger: the collection produces the flat record set, the
// view derives sections from it, and each record's draft state lives in
// the ledger. Two instances exist, "today" and "history".
type Feed struct {
	name       string
	collection *collection.Collection
	view       *view.GroupedView
	ledger     *ledger.Ledger
	todayOnly  bool
	loc        *time.Location
	now        func() time.Time
}

// Options tune feed behaviour beyond the shared pagination config.
type Options struct {
	// TodayOnly keeps only records whose pickup date falls on the
	// current calendar day.
	TodayOnly bool
	// Location is the calendar used for the today filter and section
	// titles. Defaults to time.Local.
	Location *time.Location
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// New creates a feed over one upstream resource.
func New(name, resource string, fetcher collection.PageFetcher, l *ledger.Ledger, cfg *config.FeedsConfig, opts Options) *Feed {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Feed{
		name:       name,
		collection: collection.New(fetcher, resource, cfg.PageSize, cfg.LoadMoreInterval),
		view:       view.New(view.PickupDateKey),
		ledger:     l,
		todayOnly:  opts.TodayOnly,
		loc:        loc,
		now:        now,
	}
}

// Name returns the feed's route name.
func (f *Feed) Name() string { return f.name }

// Refresh reloads the feed from page 1, discarding any in-flight fetch.
// Drafts are not touched.
func (f *Feed) Refresh(ctx context.Context) {
	f.collection.Reset(ctx)
}

// Reset satisfies reconcile.Refresher.
func (f *Feed) Reset(ctx context.Context) {
	f.collection.Reset(ctx)
}

// LoadMore forwards the list-end signal to the collection.
func (f *Feed) LoadMore(ctx context.Context) {
	f.collection.MaybeLoadMore(ctx)
}

// ToggleSection flips one date section's collapsed state.
func (f *Feed) ToggleSection(title string) {
	f.view.ToggleSection(title)
}

// ToggleRow flips one record's expanded state.
func (f *Feed) ToggleRow(id int64) {
	f.view.ToggleRow(id)
}

// Record returns a held record by identity.
func (f *Feed) Record(id int64) (model.PickupRecord, bool) {
	return f.collection.Record(id)
}

// records returns the held records after the today filter.
func (f *Feed) records() []model.PickupRecord {
	records := f.collection.Records()
	if !f.todayOnly {
		return records
	}

	today := f.now().In(f.loc)
	filtered := records[:0]
	for _, r := range records {
		if f.isOn(r, today) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// isOn reports whether the record's pickup date (or its creation date
// when the pickup date is absent) falls on the same calendar day as ref.
func (f *Feed) isOn(r model.PickupRecord, ref time.Time) bool {
	ts := r.PickupDate
	if ts == nil || ts.IsZero() {
		ts = r.CreatedAt
	}
	if ts == nil || ts.IsZero() {
		return false
	}
	y1, m1, d1 := ts.In(f.loc).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
