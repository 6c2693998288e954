package model

// Vendor holds the vendor profile returned by the logistics backend.
type Vendor struct {
	ID       int64  `json:"id"`
	VendorID string `json:"vendor_id"`
	Name     string `json:"vendor_name"`
	Category string `json:"vendor_category"`
	Phone    string `json:"vendor_phone"`
	Email    string `json:"vendor_email"`
	Address  string `json:"vendor_address"`
}
