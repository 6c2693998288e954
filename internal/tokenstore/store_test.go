package tokenstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pickup-vendor-backend/internal/model"
)

func newTestStore(t *testing.T) Store {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.VendorToken{}))
	return NewGormStore(db)
}

func TestStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	token, err := store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "no token before install")

	require.NoError(t, store.Save(ctx, "first-token"))
	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first-token", token)

	// Replacing keeps the singleton row.
	require.NoError(t, store.Save(ctx, "second-token"))
	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second-token", token)

	require.NoError(t, store.Delete(ctx))
	token, err = store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
