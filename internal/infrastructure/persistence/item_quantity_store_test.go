package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/paintfactory/backend/internal/domain/catalog"
	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
)

func setupQuantityStoreTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&catalog.RawMaterial{})
	require.NoError(t, err)

	return db
}

func TestGormItemQuantityStore(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("reads and writes the on-hand quantity", func(t *testing.T) {
		db := setupQuantityStoreTestDB(t)
		store := NewGormItemQuantityStore(db)

		material, err := catalog.NewRawMaterial(ownerID, uuid.New(), "Resin", decimal.NewFromInt(1000), decimal.NewFromInt(1500))
		require.NoError(t, err)
		require.NoError(t, db.Save(material).Error)

		quantity, err := store.Quantity(ctx, ledger.ItemRawMaterial, material.ID)
		require.NoError(t, err)
		assert.True(t, quantity.IsZero())

		require.NoError(t, store.SetQuantity(ctx, ledger.ItemRawMaterial, material.ID, decimal.NewFromInt(25)))

		quantity, err = store.Quantity(ctx, ledger.ItemRawMaterial, material.ID)
		require.NoError(t, err)
		assert.True(t, quantity.Equal(decimal.NewFromInt(25)))
	})

	t.Run("returns not found for unknown items", func(t *testing.T) {
		store := NewGormItemQuantityStore(setupQuantityStoreTestDB(t))

		_, err := store.Quantity(ctx, ledger.ItemRawMaterial, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)

		err = store.SetQuantity(ctx, ledger.ItemRawMaterial, uuid.New(), decimal.NewFromInt(5))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects unknown item types", func(t *testing.T) {
		store := NewGormItemQuantityStore(setupQuantityStoreTestDB(t))

		_, err := store.Quantity(ctx, ledger.ItemType("GLITTER"), uuid.New())
		require.Error(t, err)
	})
}

func TestGormItemQuantityStore_QuantityForUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("takes a row-level write lock", func(t *testing.T) {
		mockDB, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer mockDB.Close()

		dialector := postgres.New(postgres.Config{
			Conn:       mockDB,
			DriverName: "postgres",
		})
		gormDB, err := gorm.Open(dialector, &gorm.Config{
			SkipDefaultTransaction: true,
		})
		require.NoError(t, err)

		itemID := uuid.New()
		mock.ExpectQuery(`SELECT quantity FROM "finished_goods" WHERE id = (.+) FOR UPDATE`).
			WithArgs(itemID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow("42"))

		store := NewGormItemQuantityStore(gormDB)
		quantity, err := store.QuantityForUpdate(ctx, ledger.ItemFinishedGood, itemID)
		require.NoError(t, err)
		assert.True(t, quantity.Equal(decimal.NewFromInt(42)))

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
