package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/shared"
)

// StockMovementRepository defines the interface for ledger persistence. The
// ledger is append-only: there are no update or delete operations.
type StockMovementRepository interface {
	// Create appends a movement to the ledger
	Create(ctx context.Context, movement *StockMovement) error

	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)

	// FindByItem finds movements for an item, newest first
	FindByItem(ctx context.Context, itemType ItemType, itemID uuid.UUID, filter shared.Filter) ([]StockMovement, error)

	// FindByRef finds movements originating from a business document
	FindByRef(ctx context.Context, ref DocumentRef) ([]StockMovement, error)

	// SumQuantity sums the signed quantities of all movements for an item
	SumQuantity(ctx context.Context, itemType ItemType, itemID uuid.UUID) (decimal.Decimal, error)

	// CountByItem counts movements recorded for an item
	CountByItem(ctx context.Context, itemType ItemType, itemID uuid.UUID) (int64, error)
}
