package ledger

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"pickup-vendor-backend/internal/model"
	"pickup-vendor-backend/internal/numeric"
)

// Ledger holds the live per-record price drafts and their derivation
// rules. Edits go to the live draft immediately and reach the session
// store on a short debounce, so keystroke bursts cost one write.
//
// The invariant per item: at most one of unit price / total is the
// last-edited field; the other is always recomputed from it and the
// quantity.
type Ledger struct {
	store   *DraftStore
	flusher *flusher

	mu     sync.Mutex
	drafts map[int64]*Draft
}

// New creates a ledger over the given session store.
func New(store *DraftStore, flushDebounce time.Duration) *Ledger {
	l := &Ledger{
		store:  store,
		drafts: make(map[int64]*Draft),
	}
	l.flusher = newFlusher(flushDebounce, l.persist)
	return l
}

// Start launches the background flush worker.
func (l *Ledger) Start(ctx context.Context) {
	l.flusher.Start(ctx)
}

// persist copies one live draft into the session store.
func (l *Ledger) persist(recordID int64) {
	l.mu.Lock()
	d, ok := l.drafts[recordID]
	var snapshot *Draft
	if ok {
		snapshot = d.clone()
	}
	l.mu.Unlock()

	if snapshot != nil {
		l.store.Put(recordID, snapshot)
	}
}

// draftFor returns the live draft for a record, creating it lazily: a
// stored session draft wins over fresh seeding from server values.
// Callers must hold l.mu.
func (l *Ledger) draftFor(record model.PickupRecord) *Draft {
	if d, ok := l.drafts[record.ID]; ok {
		return d
	}
	if d, ok := l.store.Get(record.ID); ok {
		l.drafts[record.ID] = d
		return d
	}
	d := seed(record)
	l.drafts[record.ID] = d
	return d
}

// seed builds the initial draft from server-known values: unit price as
// text when present, total from the server value or derived from the
// seeded unit, blank otherwise.
func seed(record model.PickupRecord) *Draft {
	d := newDraft()
	for _, it := range record.Items {
		unit := ""
		if it.Price != nil {
			unit = numeric.Format(decimal.NewFromFloat(*it.Price))
		}
		d.Units[it.ID] = unit

		switch {
		case it.TotalPrice != nil:
			d.Totals[it.ID] = strconv.FormatInt(numeric.RoundWhole(decimal.NewFromFloat(*it.TotalPrice)), 10)
		case unit != "":
			qty := decimal.NewFromFloat(it.Quantity.Float64())
			d.Totals[it.ID] = strconv.FormatInt(numeric.RoundWhole(numeric.Amount(unit).Mul(qty)), 10)
		default:
			d.Totals[it.ID] = ""
		}
	}
	if record.Discount != nil {
		d.Discount = strconv.FormatInt(numeric.RoundWhole(decimal.NewFromFloat(*record.Discount)), 10)
	}
	return d
}

// Seed makes sure a live draft exists for the record. Called on first
// render of a record.
func (l *Ledger) Seed(record model.PickupRecord) {
	l.mu.Lock()
	l.draftFor(record)
	l.mu.Unlock()
}

// SetUnitPrice applies a unit-price edit: the text is sanitized as a
// decimal and the item total is recomputed as round(unit * quantity).
// Blank input clears both fields back to unedited.
func (l *Ledger) SetUnitPrice(record model.PickupRecord, itemID int64, text string) {
	item, ok := findItem(record, itemID)
	if !ok {
		return
	}

	l.mu.Lock()
	d := l.draftFor(record)
	sanitized := numeric.SanitizeDecimal(text)
	if sanitized == "" {
		d.Units[itemID] = ""
		d.Totals[itemID] = ""
	} else {
		qty := decimal.NewFromFloat(item.Quantity.Float64())
		d.Units[itemID] = sanitized
		d.Totals[itemID] = strconv.FormatInt(numeric.RoundWhole(numeric.Amount(sanitized).Mul(qty)), 10)
	}
	l.mu.Unlock()

	l.flusher.Schedule(record.ID)
}

// SetTotal applies a line-total edit: the text is sanitized as a whole
// amount and the unit price is re-derived as total / quantity when the
// quantity is positive, blank otherwise.
func (l *Ledger) SetTotal(record model.PickupRecord, itemID int64, text string) {
	item, ok := findItem(record, itemID)
	if !ok {
		return
	}

	l.mu.Lock()
	d := l.draftFor(record)
	sanitized := numeric.SanitizeInteger(text)
	if sanitized == "" {
		d.Units[itemID] = ""
		d.Totals[itemID] = ""
	} else {
		d.Totals[itemID] = sanitized
		if qty := item.Quantity.Float64(); qty > 0 {
			d.Units[itemID] = numeric.Format(numeric.Amount(sanitized).Div(decimal.NewFromFloat(qty)))
		} else {
			d.Units[itemID] = ""
		}
	}
	l.mu.Unlock()

	l.flusher.Schedule(record.ID)
}

// SetDiscount applies a discount edit. The discount is independent, never
// derived from line items.
func (l *Ledger) SetDiscount(record model.PickupRecord, text string) {
	l.mu.Lock()
	d := l.draftFor(record)
	d.Discount = numeric.SanitizeInteger(text)
	l.mu.Unlock()

	l.flusher.Schedule(record.ID)
}

// Flush persists the record's draft immediately (field blur, submit).
func (l *Ledger) Flush(recordID int64) {
	l.flusher.Flush(recordID)
}

// Clear drops a record's draft from the live set and the session store.
// Only explicit app action clears drafts; refreshes never do.
func (l *Ledger) Clear(recordID int64) {
	l.flusher.cancel(recordID)
	l.mu.Lock()
	delete(l.drafts, recordID)
	l.mu.Unlock()
	l.store.Delete(recordID)
}

// ItemTotal resolves one line's total in draft-first order: explicit
// total draft, then unit draft x quantity, then server price x quantity.
// Always whole currency units, floored at zero.
func (l *Ledger) ItemTotal(record model.PickupRecord, itemID int64) int64 {
	item, ok := findItem(record, itemID)
	if !ok {
		return 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return resolveItemTotal(l.draftFor(record), item)
}

func resolveItemTotal(d *Draft, item model.LineItem) int64 {
	qty := decimal.NewFromFloat(item.Quantity.Float64())
	if t := d.Totals[item.ID]; t != "" {
		return numeric.RoundWhole(numeric.Amount(t))
	}
	if u := d.Units[item.ID]; u != "" {
		return numeric.RoundWhole(numeric.Amount(u).Mul(qty))
	}
	if item.Price != nil {
		return numeric.RoundWhole(decimal.NewFromFloat(*item.Price).Mul(qty))
	}
	return 0
}

// RecordTotal sums ItemTotal over all line items.
func (l *Ledger) RecordTotal(record model.PickupRecord) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	d := l.draftFor(record)
	var sum int64
	for _, it := range record.Items {
		sum += resolveItemTotal(d, it)
	}
	return sum
}

// GrandTotal is the record total minus the discount, never negative.
func (l *Ledger) GrandTotal(record model.PickupRecord) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	d := l.draftFor(record)
	var sum int64
	for _, it := range record.Items {
		sum += resolveItemTotal(d, it)
	}
	discount := numeric.RoundWhole(numeric.Amount(d.Discount))
	if discount > sum {
		return 0
	}
	return sum - discount
}

// ItemDraft returns the current display strings for one line item.
func (l *Ledger) ItemDraft(record model.PickupRecord, itemID int64) (unit, total string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	d := l.draftFor(record)
	return d.Units[itemID], d.Totals[itemID]
}

// Discount returns the current discount display string.
func (l *Ledger) Discount(record model.PickupRecord) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.draftFor(record).Discount
}

func findItem(record model.PickupRecord, itemID int64) (model.LineItem, bool) {
	for _, it := range record.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return model.LineItem{}, false
}
