package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
)

// GormItemQuantityStore implements ItemQuantityStore using GORM. Each item
// type maps to its own catalog table; the store only ever touches the
// quantity column of a single row.
type GormItemQuantityStore struct {
	db *gorm.DB
}

// NewGormItemQuantityStore creates a new GormItemQuantityStore
func NewGormItemQuantityStore(db *gorm.DB) *GormItemQuantityStore {
	return &GormItemQuantityStore{db: db}
}

func itemTable(itemType ledger.ItemType) (string, error) {
	switch itemType {
	case ledger.ItemRawMaterial:
		return "raw_materials", nil
	case ledger.ItemPaintAccessory:
		return "paint_accessories", nil
	case ledger.ItemSemiFinishedGood:
		return "semi_finished_goods", nil
	case ledger.ItemFinishedGood:
		return "finished_goods", nil
	default:
		return "", shared.NewDomainError("INVALID_ITEM_TYPE", "Invalid item type: "+string(itemType))
	}
}

// Quantity reads the current on-hand quantity of an item
func (s *GormItemQuantityStore) Quantity(ctx context.Context, itemType ledger.ItemType, itemID uuid.UUID) (decimal.Decimal, error) {
	table, err := itemTable(itemType)
	if err != nil {
		return decimal.Zero, err
	}

	var quantity decimal.Decimal
	err = s.db.WithContext(ctx).Table(table).
		Where("id = ?", itemID).
		Select("quantity").
		Take(&quantity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, shared.ErrNotFound
		}
		return decimal.Zero, err
	}
	return quantity, nil
}

// QuantityForUpdate reads the on-hand quantity while taking a row-level write
// lock on the item. Must run inside a transaction; the lock is held until
// commit or rollback, which serializes competing ledger appends on the item.
func (s *GormItemQuantityStore) QuantityForUpdate(ctx context.Context, itemType ledger.ItemType, itemID uuid.UUID) (decimal.Decimal, error) {
	table, err := itemTable(itemType)
	if err != nil {
		return decimal.Zero, err
	}

	var quantity decimal.Decimal
	err = s.db.WithContext(ctx).Table(table).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", itemID).
		Select("quantity").
		Take(&quantity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, shared.ErrNotFound
		}
		return decimal.Zero, err
	}
	return quantity, nil
}

// SetQuantity overwrites the on-hand quantity of an item
func (s *GormItemQuantityStore) SetQuantity(ctx context.Context, itemType ledger.ItemType, itemID uuid.UUID, quantity decimal.Decimal) error {
	table, err := itemTable(itemType)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).Table(table).
		Where("id = ?", itemID).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormItemQuantityStore implements ItemQuantityStore
var _ ledger.ItemQuantityStore = (*GormItemQuantityStore)(nil)
