package feed

import (
	"pickup-vendor-backend/internal/model"
	"pickup-vendor-backend/internal/numeric"
)

// Snapshot is the render-ready state of one feed.
type Snapshot struct {
	Feed     string        `json:"feed"`
	Loading  bool          `json:"loading"`
	HasMore  bool          `json:"has_more"`
	Error    string        `json:"error,omitempty"`
	Vendor   *model.Vendor `json:"vendor,omitempty"`
	Sections []Section     `json:"sections"`
}

// Section is one date group.
type Section struct {
	Title     string `json:"title"`
	Collapsed bool   `json:"collapsed"`
	Rows      []Row  `json:"rows"`
}

// Row is one pickup with its draft state and computed totals.
type Row struct {
	ID                 int64             `json:"id"`
	PickupCode         string            `json:"pick_up_id"`
	Status             string            `json:"status"`
	PaymentStatus      string            `json:"payment_status"`
	RiderName          string            `json:"rider_name,omitempty"`
	PickupDate         *model.Timestamp  `json:"pickup_date"`
	DeliveryDate       *model.Timestamp  `json:"delivery_date,omitempty"`
	Expanded           bool              `json:"expanded"`
	Items              []Item            `json:"items"`
	Discount           string            `json:"discount"`
	RecordTotal        int64             `json:"record_total"`
	GrandTotal         int64             `json:"grand_total"`
	RecordTotalDisplay string            `json:"record_total_display"`
	GrandTotalDisplay  string            `json:"grand_total_display"`
}

// Item is one line item with its editable draft values.
type Item struct {
	ID               int64   `json:"id"`
	FlowerID         int64   `json:"flower_id"`
	Name             string  `json:"name"`
	Quantity         float64 `json:"quantity"`
	UnitLabel        string  `json:"unit,omitempty"`
	UnitPrice        string  `json:"unit_price"`
	Total            string  `json:"total"`
	ItemTotal        int64   `json:"item_total"`
	ItemTotalDisplay string  `json:"item_total_display"`
}

// Snapshot assembles the grouped, draft-decorated state for rendering.
// Building it seeds drafts for newly seen records.
func (f *Feed) Snapshot() Snapshot {
	records := f.records()
	sections := f.view.Sections(records)

	out := Snapshot{
		Feed:     f.name,
		Loading:  f.collection.Loading(),
		HasMore:  f.collection.HasMore(),
		Error:    f.collection.LastError(),
		Vendor:   f.collection.Vendor(),
		Sections: make([]Section, 0, len(sections)),
	}

	for _, s := range sections {
		section := Section{
			Title:     s.Title,
			Collapsed: s.Collapsed,
			Rows:      make([]Row, 0, len(s.Records)),
		}
		for _, r := range s.Records {
			section.Rows = append(section.Rows, f.row(r))
		}
		out.Sections = append(out.Sections, section)
	}
	return out
}

func (f *Feed) row(r model.PickupRecord) Row {
	recordTotal := f.ledger.RecordTotal(r)
	grandTotal := f.ledger.GrandTotal(r)

	row := Row{
		ID:                 r.ID,
		PickupCode:         r.PickupCode,
		Status:             r.Status,
		PaymentStatus:      r.PaymentStatus,
		PickupDate:         r.PickupDate,
		DeliveryDate:       r.DeliveryDate,
		Expanded:           f.view.RowExpanded(r.ID),
		Items:              make([]Item, 0, len(r.Items)),
		Discount:           f.ledger.Discount(r),
		RecordTotal:        recordTotal,
		GrandTotal:         grandTotal,
		RecordTotalDisplay: numeric.FormatINR(recordTotal),
		GrandTotalDisplay:  numeric.FormatINR(grandTotal),
	}
	if r.Rider != nil {
		row.RiderName = r.Rider.RiderName
	}

	for _, it := range r.Items {
		unit, total := f.ledger.ItemDraft(r, it.ID)
		itemTotal := f.ledger.ItemTotal(r, it.ID)
		row.Items = append(row.Items, Item{
			ID:               it.ID,
			FlowerID:         it.FlowerID,
			Name:             it.Name(),
			Quantity:         it.Quantity.Float64(),
			UnitLabel:        it.UnitLabel(),
			UnitPrice:        unit,
			Total:            total,
			ItemTotal:        itemTotal,
			ItemTotalDisplay: numeric.FormatINR(itemTotal),
		})
	}
	return row
}
