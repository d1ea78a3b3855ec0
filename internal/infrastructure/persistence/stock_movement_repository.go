package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
)

// signedQuantityExpr folds the movement direction into the stored quantity.
// Adjustments are stored signed already, so they pass through unchanged.
const signedQuantityExpr = "COALESCE(SUM(CASE " +
	"WHEN movement_type IN ('PURCHASE_IN', 'PRODUCTION_IN', 'RETURN_IN') THEN quantity " +
	"WHEN movement_type IN ('SALE_OUT', 'PRODUCTION_OUT') THEN -quantity " +
	"ELSE quantity END), 0)"

// GormStockMovementRepository implements StockMovementRepository using GORM.
// The ledger is append-only, so the repository exposes no update or delete.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Create appends a movement to the ledger
func (r *GormStockMovementRepository) Create(ctx context.Context, movement *ledger.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByID finds a movement by its ID
func (r *GormStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.StockMovement, error) {
	var movement ledger.StockMovement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByItem finds movements for an item, newest first
func (r *GormStockMovementRepository) FindByItem(ctx context.Context, itemType ledger.ItemType, itemID uuid.UUID, filter shared.Filter) ([]ledger.StockMovement, error) {
	var movements []ledger.StockMovement
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&ledger.StockMovement{}).
			Where("item_type = ? AND item_id = ?", itemType, itemID),
		filter,
	)
	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByRef finds movements originating from a business document
func (r *GormStockMovementRepository) FindByRef(ctx context.Context, ref ledger.DocumentRef) ([]ledger.StockMovement, error) {
	var movements []ledger.StockMovement
	query := r.db.WithContext(ctx).Model(&ledger.StockMovement{}).
		Where("ref_kind = ?", ref.Kind)
	if ref.DocumentID != nil {
		query = query.Where("ref_document_id = ?", *ref.DocumentID)
	} else {
		query = query.Where("ref_document_id IS NULL")
	}
	if err := query.Order("created_at ASC").Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// SumQuantity sums the signed quantities of all movements for an item. This
// is the ledger-derived truth the denormalized item quantity must match.
func (r *GormStockMovementRepository) SumQuantity(ctx context.Context, itemType ledger.ItemType, itemID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.WithContext(ctx).Model(&ledger.StockMovement{}).
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		Select(signedQuantityExpr).
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// CountByItem counts movements recorded for an item
func (r *GormStockMovementRepository) CountByItem(ctx context.Context, itemType ledger.ItemType, itemID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ledger.StockMovement{}).
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStockMovementRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "movement_type":
			query = query.Where("movement_type = ?", value)
		case "ref_kind":
			query = query.Where("ref_kind = ?", value)
		case "actor_id":
			query = query.Where("actor_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, StockMovementSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormStockMovementRepository implements StockMovementRepository
var _ ledger.StockMovementRepository = (*GormStockMovementRepository)(nil)
