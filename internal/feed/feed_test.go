package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickup-vendor-backend/config"
	"pickup-vendor-backend/internal/ledger"
	"pickup-vendor-backend/internal/model"
	"pickup-vendor-backend/internal/upstream"
)

type mockFetcher struct {
	FetchPageFunc func(ctx context.Context, resource string, page, pageSize int) (*upstream.PageResponse, error)
}

func (m *mockFetcher) FetchPage(ctx context.Context, resource string, page, pageSize int) (*upstream.PageResponse, error) {
	return m.FetchPageFunc(ctx, resource, page, pageSize)
}

func ts(date string) *model.Timestamp {
	var t model.Timestamp
	_ = t.UnmarshalJSON([]byte(`"` + date + `"`))
	return &t
}

func f(v float64) *float64 { return &v }

func feedConfig() *config.FeedsConfig {
	return &config.FeedsConfig{PageSize: 10, LoadMoreInterval: time.Millisecond}
}

func fixedClock(date string) func() time.Time {
	t, _ := time.ParseInLocation("2006-01-02 15:04:05", date, time.UTC)
	return func() time.Time { return t }
}

func TestFeed_SnapshotGroupsAndTotals(t *testing.T) {
	fetcher := &mockFetcher{
		FetchPageFunc: func(ctx context.Context, resource string, page, pageSize int) (*upstream.PageResponse, error) {
			return &upstream.PageResponse{
				Records: []model.PickupRecord{
					{ID: 1, PickupCode: "PU-001", PickupDate: ts("2024-01-05"), Status: "pending",
						Rider: &model.Rider{RiderName: "Arun"},
						Items: []model.LineItem{
							{ID: 11, FlowerID: 7, Quantity: 4, Price: f(12.5), Flower: &model.Flower{ItemName: "Rose"}, Unit: &model.Unit{UnitName: "kg"}},
						}},
					{ID: 2, PickupCode: "PU-002", PickupDate: ts("2024-01-06"), Status: "completed"},
				},
				Meta: model.PageMeta{CurrentPage: 1, LastPage: 1},
			}, nil
		},
	}

	l := ledger.New(ledger.NewDraftStore(time.Hour), time.Millisecond)
	fd := New("history", upstream.ResourceHistory, fetcher, l, feedConfig(), Options{Location: time.UTC})
	fd.Refresh(context.Background())

	snap := fd.Snapshot()
	assert.Equal(t, "history", snap.Feed)
	assert.False(t, snap.HasMore)
	assert.Empty(t, snap.Error)
	require.Len(t, snap.Sections, 2)

	first := snap.Sections[0]
	assert.Equal(t, "Jan 5, 2024", first.Title)
	assert.False(t, first.Collapsed)
	assert.True(t, snap.Sections[1].Collapsed)

	require.Len(t, first.Rows, 1)
	row := first.Rows[0]
	assert.Equal(t, "PU-001", row.PickupCode)
	assert.Equal(t, "Arun", row.RiderName)
	assert.True(t, row.Expanded, "very first row defaults expanded")

	require.Len(t, row.Items, 1)
	item := row.Items[0]
	assert.Equal(t, "Rose", item.Name)
	assert.Equal(t, "kg", item.UnitLabel)
	assert.Equal(t, "12.5", item.UnitPrice, "drafts seed from server values")
	assert.Equal(t, int64(50), item.ItemTotal)
	assert.Equal(t, "₹50", item.ItemTotalDisplay)
	assert.Equal(t, int64(50), row.RecordTotal)
	assert.Equal(t, "₹50", row.GrandTotalDisplay)
}

func TestFeed_TodayFilter(t *testing.T) {
	fetcher := &mockFetcher{
		FetchPageFunc: func(ctx context.Context, resource string, page, pageSize int) (*upstream.PageResponse, error) {
			return &upstream.PageResponse{
				Records: []model.PickupRecord{
					{ID: 1, PickupDate: ts("2024-01-05 08:00:00")},
					{ID: 2, PickupDate: ts("2024-01-04 23:00:00")},
					{ID: 3, CreatedAt: ts("2024-01-05 09:15:00")}, // pickup date absent, created today
					{ID: 4},                                       // no usable date
				},
				Meta: model.PageMeta{CurrentPage: 1, LastPage: 1},
			}, nil
		},
	}

	l := ledger.New(ledger.NewDraftStore(time.Hour), time.Millisecond)
	fd := New("today", upstream.ResourceToday, fetcher, l, feedConfig(), Options{
		TodayOnly: true,
		Location:  time.UTC,
		Now:       fixedClock("2024-01-05 12:00:00"),
	})
	fd.Refresh(context.Background())

	snap := fd.Snapshot()
	var got []int64
	for _, s := range snap.Sections {
		for _, r := range s.Rows {
			got = append(got, r.ID)
		}
	}
	assert.Equal(t, []int64{1, 3}, got)
}

func TestFeed_DraftSurvivesRefresh(t *testing.T) {
	record := model.PickupRecord{
		ID: 1, PickupCode: "PU-001", PickupDate: ts("2024-01-05"),
		Items: []model.LineItem{{ID: 11, FlowerID: 7, Quantity: 4}},
	}
	fetcher := &mockFetcher{
		FetchPageFunc: func(ctx context.Context, resource string, page, pageSize int) (*upstream.PageResponse, error) {
			return &upstream.PageResponse{
				Records: []model.PickupRecord{record},
				Meta:    model.PageMeta{CurrentPage: 1, LastPage: 1},
			}, nil
		},
	}

	l := ledger.New(ledger.NewDraftStore(time.Hour), time.Millisecond)
	fd := New("today", upstream.ResourceToday, fetcher, l, feedConfig(), Options{Location: time.UTC})
	fd.Refresh(context.Background())

	l.SetUnitPrice(record, 11, "12.5")

	// A background refresh replaces the collection but must not clear the
	// in-progress draft.
	fd.Refresh(context.Background())

	snap := fd.Snapshot()
	require.Len(t, snap.Sections, 1)
	item := snap.Sections[0].Rows[0].Items[0]
	assert.Equal(t, "12.5", item.UnitPrice)
	assert.Equal(t, "50", item.Total)
}
