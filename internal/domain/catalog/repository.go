package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/paintfactory/backend/internal/domain/shared"
)

// RawMaterialRepository defines the interface for raw material persistence
type RawMaterialRepository interface {
	// FindByID finds a raw material by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*RawMaterial, error)

	// FindBySupplier finds all raw materials from a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]RawMaterial, error)

	// FindAll finds all raw materials
	FindAll(ctx context.Context, filter shared.Filter) ([]RawMaterial, error)

	// Save creates or updates a raw material
	Save(ctx context.Context, material *RawMaterial) error

	// Count counts raw materials matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// PaintAccessoryRepository defines the interface for accessory persistence
type PaintAccessoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaintAccessory, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PaintAccessory, error)
	Save(ctx context.Context, accessory *PaintAccessory) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// SemiFinishedGoodRepository defines the interface for semi-finished good
// persistence. Detail lines are child entities of the aggregate and are
// persisted through Save; there is no update path for details.
type SemiFinishedGoodRepository interface {
	// FindByID finds a semi-finished good without its detail lines
	FindByID(ctx context.Context, id uuid.UUID) (*SemiFinishedGood, error)

	// FindByIDWithDetails finds a semi-finished good with detail lines and
	// their raw materials loaded
	FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*SemiFinishedGood, error)

	// FindAll finds all semi-finished goods
	FindAll(ctx context.Context, filter shared.Filter) ([]SemiFinishedGood, error)

	// Save creates or updates a semi-finished good and its detail lines
	Save(ctx context.Context, good *SemiFinishedGood) error

	// Count counts semi-finished goods matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// FinishedGoodRepository defines the interface for finished good persistence
type FinishedGoodRepository interface {
	// FindByID finds a finished good without its BOM
	FindByID(ctx context.Context, id uuid.UUID) (*FinishedGood, error)

	// FindByIDWithBOM finds a finished good with its full BOM tree loaded:
	// detail lines, referenced raw materials, and referenced semi-finished
	// goods down to their own raw material lines. This is the shape the
	// cost rollup requires.
	FindByIDWithBOM(ctx context.Context, id uuid.UUID) (*FinishedGood, error)

	// FindByProductionCode finds a finished good by its production code
	FindByProductionCode(ctx context.Context, code string) (*FinishedGood, error)

	// FindAll finds all finished goods
	FindAll(ctx context.Context, filter shared.Filter) ([]FinishedGood, error)

	// Save creates or updates a finished good and its detail lines
	Save(ctx context.Context, good *FinishedGood) error

	// Count counts finished goods matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
