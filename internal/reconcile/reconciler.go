package reconcile

import (
	"context"
	"log"

	"github.com/shopspring/decimal"

	"pickup-vendor-backend/internal/ledger"
	"pickup-vendor-backend/internal/model"
	"pickup-vendor-backend/internal/numeric"
)

// Submitter is the slice of the upstream client the reconciler needs.
type Submitter interface {
	SubmitUpdate(ctx context.Context, pickupID int64, payload model.UpdatePayload) (string, error)
}

// Refresher re-fetches the authoritative collection after a submission.
type Refresher interface {
	Reset(ctx context.Context)
}

// Reconciler assembles a record's draft into the server payload, submits
// it, and reconciles the outcome back into view state. There is no
// optimistic mutation: after a successful submit the source of truth is
// always a fresh fetch.
type Reconciler struct {
	submitter Submitter
	ledger    *ledger.Ledger
}

// New creates a reconciler over the given submitter and ledger.
func New(submitter Submitter, l *ledger.Ledger) *Reconciler {
	return &Reconciler{submitter: submitter, ledger: l}
}

// Submit sends the record's current prices upstream. On success the draft
// is cleared and the collection refreshed; on failure the draft is left
// untouched so the vendor can retry without re-entering values.
func (r *Reconciler) Submit(ctx context.Context, record model.PickupRecord, refresher Refresher) (string, error) {
	r.ledger.Flush(record.ID)
	payload := r.BuildPayload(record)

	message, err := r.submitter.SubmitUpdate(ctx, record.ID, payload)
	if err != nil {
		log.Printf("submit for pickup %d failed: %v", record.ID, err)
		return "", err
	}

	r.ledger.Clear(record.ID)
	refresher.Reset(ctx)
	return message, nil
}

// BuildPayload resolves every line item to a mutually consistent
// (price, total) pair and applies the discount to the grand total.
func (r *Reconciler) BuildPayload(record model.PickupRecord) model.UpdatePayload {
	items := make([]model.UpdateItem, 0, len(record.Items))
	var sum int64
	for _, it := range record.Items {
		price, total := r.resolveItem(record, it)
		items = append(items, model.UpdateItem{
			ID:         it.ID,
			FlowerID:   it.FlowerID,
			Price:      price,
			TotalPrice: total,
		})
		sum += total
	}

	discount := numeric.RoundWhole(numeric.Amount(r.ledger.Discount(record)))
	grand := sum - discount
	if grand < 0 {
		grand = 0
	}

	return model.UpdatePayload{
		TotalPrice: sum,
		Discount:   discount,
		GrandTotal: grand,
		Items:      items,
	}
}

// resolveItem follows the same draft-first order as the ledger's item
// total, re-deriving the unit price from the total when the total was the
// authoritative source. Server-seeded pairs may disagree with
// price * quantity; outbound pairs never do.
func (r *Reconciler) resolveItem(record model.PickupRecord, it model.LineItem) (price float64, total int64) {
	unitText, totalText := r.ledger.ItemDraft(record, it.ID)
	qty := decimal.NewFromFloat(it.Quantity.Float64())

	switch {
	case totalText != "":
		total = numeric.RoundWhole(numeric.Amount(totalText))
		if qty.IsPositive() {
			price = decimal.NewFromInt(total).Div(qty).InexactFloat64()
		}
	case unitText != "":
		unit := numeric.Amount(unitText)
		price = unit.InexactFloat64()
		total = numeric.RoundWhole(unit.Mul(qty))
	case it.Price != nil:
		unit := decimal.NewFromFloat(*it.Price)
		price = *it.Price
		total = numeric.RoundWhole(unit.Mul(qty))
	}
	return price, total
}
