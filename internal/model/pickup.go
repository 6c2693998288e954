package model

import (
	"bytes"
	"strconv"
)

// PickupRecord represents one pickup event as reported by the logistics
// backend. Records are immutable once fetched; price edits live in drafts.
type PickupRecord struct {
	ID            int64      `json:"id"`
	PickupCode    string     `json:"pick_up_id"`
	PickupDate    *Timestamp `json:"pickup_date"`
	DeliveryDate  *Timestamp `json:"delivery_date"`
	CreatedAt     *Timestamp `json:"created_at"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"payment_status"`
	TotalPrice    *float64   `json:"total_price"`
	Discount      *float64   `json:"discount"`
	GrandTotal    *float64   `json:"grand_total_price"`
	Rider         *Rider     `json:"rider"`
	Items         []LineItem `json:"flower_pickup_items"`
}

// LineItem is one priced item within a pickup. Price and TotalPrice are
// independently authoritative display values from the server; they are not
// required to satisfy total == price * quantity exactly.
type LineItem struct {
	ID         int64    `json:"id"`
	FlowerID   int64    `json:"flower_id"`
	Quantity   Quantity `json:"quantity"`
	Price      *float64 `json:"price"`
	TotalPrice *float64 `json:"total_price"`
	Flower     *Flower  `json:"flower"`
	Unit       *Unit    `json:"unit"`
}

// Name returns the item's display name, falling back through the flower
// descriptor to the raw flower id.
func (it LineItem) Name() string {
	if it.Flower != nil {
		if it.Flower.ItemName != "" {
			return it.Flower.ItemName
		}
		if it.Flower.Name != "" {
			return it.Flower.Name
		}
	}
	return strconv.FormatInt(it.FlowerID, 10)
}

// UnitLabel returns the quantity unit label, or "" when absent.
func (it LineItem) UnitLabel() string {
	if it.Unit == nil {
		return ""
	}
	return it.Unit.UnitName
}

// Flower is the item descriptor referenced by a line item.
type Flower struct {
	ID       int64  `json:"id"`
	ItemName string `json:"item_name"`
	Name     string `json:"name"`
}

// Unit is the measurement unit a quantity is expressed in.
type Unit struct {
	ID       int64  `json:"id"`
	UnitName string `json:"unit_name"`
}

// Rider is the person assigned to collect the pickup.
type Rider struct {
	ID        int64  `json:"id"`
	RiderName string `json:"rider_name"`
}

// Quantity is a non-negative amount that the backend serializes
// inconsistently, sometimes as a number and sometimes as a string.
type Quantity float64

// UnmarshalJSON accepts both `4` and `"4.00"`. Unparseable input decodes
// to zero rather than failing the whole record.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*q = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil || f < 0 {
		*q = 0
		return nil
	}
	*q = Quantity(f)
	return nil
}

// Float64 returns the quantity as a plain float64.
func (q Quantity) Float64() float64 { return float64(q) }
