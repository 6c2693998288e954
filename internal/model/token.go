package model

import "time"

// VendorToken is the single bearer token this service holds for the
// logistics backend. One row only.
type VendorToken struct {
	ID        int64     `gorm:"primaryKey"`
	Token     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
