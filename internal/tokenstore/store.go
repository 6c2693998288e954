package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pickup-vendor-backend/internal/model"
)

// The token row is a singleton.
const tokenRowID = 1

// Store persists the vendor's bearer token across restarts. It satisfies
// upstream.TokenSource.
type Store interface {
	Token(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed token store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Token returns the stored token, or "" when none has been installed.
func (s *gormStore) Token(ctx context.Context) (string, error) {
	var row model.VendorToken
	err := s.db.WithContext(ctx).First(&row, tokenRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load vendor token: %w", err)
	}
	return row.Token, nil
}

// Save installs or replaces the token.
func (s *gormStore) Save(ctx context.Context, token string) error {
	row := model.VendorToken{ID: tokenRowID, Token: token}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save vendor token: %w", err)
	}
	return nil
}

// Delete removes the token, logging the vendor out of the backend.
func (s *gormStore) Delete(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Delete(&model.VendorToken{}, tokenRowID).Error; err != nil {
		return fmt.Errorf("failed to delete vendor token: %w", err)
	}
	return nil
}
