package model

// UpdatePayload is the body POSTed to the price-update endpoint.
type UpdatePayload struct {
	TotalPrice int64        `json:"total_price"`
	Discount   int64        `json:"discount"`
	GrandTotal int64        `json:"grand_total_price"`
	Items      []UpdateItem `json:"flower_pickup_items"`
}

// UpdateItem carries the final price pair for one line item. Price and
// TotalPrice are always mutually consistent with the item quantity, even
// when the server-seeded values were not.
type UpdateItem struct {
	ID         int64   `json:"id"`
	FlowerID   int64   `json:"flower_id"`
	Price      float64 `json:"price"`
	TotalPrice int64   `json:"total_price"`
}

// PageMeta is the pagination envelope member of list responses.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}
