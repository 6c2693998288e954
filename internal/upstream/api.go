package upstream

import "pickup-vendor-backend/internal/model"

// Resources the vendor endpoints expose as paged lists.
const (
	ResourceToday   = "vendor-pickups"
	ResourceHistory = "get-all-pickups"
)

// listEnvelope models the top-level structure of the backend's list
// responses.
type listEnvelope struct {
	Data    []model.PickupRecord `json:"data"`
	Meta    *model.PageMeta      `json:"meta"`
	Vendor  *model.Vendor        `json:"vendor"`
	Message string               `json:"message"`
}

// vendorEnvelope models the vendor-details response.
type vendorEnvelope struct {
	Vendor  *model.Vendor `json:"vendor"`
	Data    *model.Vendor `json:"data"`
	Message string        `json:"message"`
}

// messageEnvelope is the minimal shape of mutation responses and error
// bodies.
type messageEnvelope struct {
	Message string `json:"message"`
}

// PageResponse is one fetched page plus its pagination metadata.
type PageResponse struct {
	Records []model.PickupRecord
	Meta    model.PageMeta
	Vendor  *model.Vendor
}
