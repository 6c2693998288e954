package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickup-vendor-backend/internal/ledger"
	"pickup-vendor-backend/internal/model"
	"pickup-vendor-backend/internal/upstream"
)

type mockSubmitter struct {
	SubmitUpdateFunc func(ctx context.Context, pickupID int64, payload model.UpdatePayload) (string, error)
	gotPayload       *model.UpdatePayload
}

func (m *mockSubmitter) SubmitUpdate(ctx context.Context, pickupID int64, payload model.UpdatePayload) (string, error) {
	m.gotPayload = &payload
	return m.SubmitUpdateFunc(ctx, pickupID, payload)
}

type mockRefresher struct {
	resets int
}

func (m *mockRefresher) Reset(ctx context.Context) { m.resets++ }

func f(v float64) *float64 { return &v }

func testRecord() model.PickupRecord {
	return model.PickupRecord{
		ID: 42,
		Items: []model.LineItem{
			{ID: 1, FlowerID: 10, Quantity: 4, Price: f(12.5)},
			{ID: 2, FlowerID: 20, Quantity: 2},
			{ID: 3, FlowerID: 30, Quantity: 3},
		},
	}
}

func newTestLedger() *ledger.Ledger {
	return ledger.New(ledger.NewDraftStore(time.Hour), time.Millisecond)
}

func TestBuildPayload_MutuallyConsistentPairs(t *testing.T) {
	l := newTestLedger()
	rec := testRecord()

	l.SetUnitPrice(rec, 2, "7.5") // unit-edited item
	l.SetTotal(rec, 3, "40")      // total-edited item, qty 3

	r := New(&mockSubmitter{}, l)
	payload := r.BuildPayload(rec)

	require.Len(t, payload.Items, 3)

	// Item 1: untouched, server price 12.5 x 4.
	assert.Equal(t, 12.5, payload.Items[0].Price)
	assert.Equal(t, int64(50), payload.Items[0].TotalPrice)

	// Item 2: unit edit; the seeded-then-derived total is authoritative
	// and the price is re-derived from it, so the pair is consistent.
	assert.Equal(t, int64(15), payload.Items[1].TotalPrice)
	assert.InDelta(t, 7.5, payload.Items[1].Price, 1e-9)

	// Item 3: total edit; price re-derived as 40/3.
	assert.Equal(t, int64(40), payload.Items[2].TotalPrice)
	assert.InDelta(t, 40.0/3.0, payload.Items[2].Price, 1e-9)

	assert.Equal(t, int64(105), payload.TotalPrice)
	assert.Equal(t, int64(0), payload.Discount)
	assert.Equal(t, int64(105), payload.GrandTotal)
}

func TestBuildPayload_DiscountFloorsGrandTotal(t *testing.T) {
	l := newTestLedger()
	rec := model.PickupRecord{ID: 42, Items: []model.LineItem{{ID: 1, FlowerID: 10, Quantity: 4}}}

	l.SetUnitPrice(rec, 1, "10")
	l.SetDiscount(rec, "75")

	r := New(&mockSubmitter{}, l)
	payload := r.BuildPayload(rec)

	assert.Equal(t, int64(40), payload.TotalPrice)
	assert.Equal(t, int64(75), payload.Discount)
	assert.Equal(t, int64(0), payload.GrandTotal)
}

func TestSubmit_SuccessClearsDraftAndRefreshes(t *testing.T) {
	l := newTestLedger()
	rec := testRecord()
	l.SetUnitPrice(rec, 2, "7.5")

	submitter := &mockSubmitter{
		SubmitUpdateFunc: func(ctx context.Context, pickupID int64, payload model.UpdatePayload) (string, error) {
			assert.Equal(t, int64(42), pickupID)
			return "Prices updated.", nil
		},
	}
	refresher := &mockRefresher{}

	r := New(submitter, l)
	msg, err := r.Submit(context.Background(), rec, refresher)
	require.NoError(t, err)

	assert.Equal(t, "Prices updated.", msg)
	assert.Equal(t, 1, refresher.resets)

	// Draft was cleared; the item reseeds from server values (blank here).
	unit, _ := l.ItemDraft(rec, 2)
	assert.Equal(t, "", unit)
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	l := newTestLedger()
	rec := testRecord()
	l.SetUnitPrice(rec, 2, "7.5")

	submitter := &mockSubmitter{
		SubmitUpdateFunc: func(ctx context.Context, pickupID int64, payload model.UpdatePayload) (string, error) {
			return "", &upstream.ServerError{Status: 422, Message: "prices already locked"}
		},
	}
	refresher := &mockRefresher{}

	r := New(submitter, l)
	_, err := r.Submit(context.Background(), rec, refresher)
	require.Error(t, err)

	assert.Equal(t, "prices already locked", upstream.DisplayMessage(err))
	assert.Equal(t, 0, refresher.resets, "no refresh on failure")

	unit, _ := l.ItemDraft(rec, 2)
	assert.Equal(t, "7.5", unit, "draft must survive a failed submit for retry")
}
