package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
	"github.com/paintfactory/backend/internal/domain/trade"
)

func setupPurchaseTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&trade.Purchase{}, &trade.PurchaseItem{})
	require.NoError(t, err)

	return db
}

func newStoredPurchase(t *testing.T, repo *GormPurchaseRepository, number string) *trade.Purchase {
	t.Helper()
	purchase, err := trade.NewPurchase(uuid.New(), number, uuid.New(), "Acme Chemicals")
	require.NoError(t, err)

	_, err = purchase.AddItem(ledger.ItemRawMaterial, uuid.New(), "Resin", decimal.NewFromInt(50), decimal.NewFromInt(1000))
	require.NoError(t, err)
	_, err = purchase.AddItem(ledger.ItemPaintAccessory, uuid.New(), "Roller", decimal.NewFromInt(20), decimal.NewFromInt(30))
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), purchase))
	return purchase
}

func TestGormPurchaseRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("saves and reloads a purchase with items", func(t *testing.T) {
		repo := NewGormPurchaseRepository(setupPurchaseTestDB(t))
		purchase := newStoredPurchase(t, repo, "PO-001")

		found, err := repo.FindByID(ctx, purchase.ID)
		require.NoError(t, err)
		assert.Equal(t, "PO-001", found.PurchaseNumber)
		assert.Len(t, found.Items, 2)
		assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(50600)))
	})

	t.Run("deletes removed items on save", func(t *testing.T) {
		repo := NewGormPurchaseRepository(setupPurchaseTestDB(t))
		purchase := newStoredPurchase(t, repo, "PO-002")

		require.NoError(t, purchase.RemoveItem(purchase.Items[0].ID))
		require.NoError(t, repo.Save(ctx, purchase))

		found, err := repo.FindByID(ctx, purchase.ID)
		require.NoError(t, err)
		assert.Len(t, found.Items, 1)
	})

	t.Run("finds by document number", func(t *testing.T) {
		repo := NewGormPurchaseRepository(setupPurchaseTestDB(t))
		newStoredPurchase(t, repo, "PO-003")

		found, err := repo.FindByNumber(ctx, "PO-003")
		require.NoError(t, err)
		assert.Len(t, found.Items, 2)

		_, err = repo.FindByNumber(ctx, "PO-404")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("finds by status", func(t *testing.T) {
		repo := NewGormPurchaseRepository(setupPurchaseTestDB(t))
		purchase := newStoredPurchase(t, repo, "PO-004")
		newStoredPurchase(t, repo, "PO-005")

		require.NoError(t, purchase.Submit())
		require.NoError(t, repo.Save(ctx, purchase))

		ongoing, err := repo.FindByStatus(ctx, trade.StatusOngoing, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, ongoing, 1)
		assert.Equal(t, "PO-004", ongoing[0].PurchaseNumber)

		count, err := repo.Count(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}
