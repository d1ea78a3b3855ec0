package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemQuantityStore reads and writes the denormalized on-hand quantity kept
// on each catalog item row. It abstracts over the four item tables so the
// ledger does not depend on individual catalog aggregates.
type ItemQuantityStore interface {
	// Quantity reads the current on-hand quantity of an item
	Quantity(ctx context.Context, itemType ItemType, itemID uuid.UUID) (decimal.Decimal, error)

	// QuantityForUpdate reads the on-hand quantity while taking a row-level
	// write lock on the item. Must be called inside a transaction; the lock
	// is held until commit or rollback.
	QuantityForUpdate(ctx context.Context, itemType ItemType, itemID uuid.UUID) (decimal.Decimal, error)

	// SetQuantity overwrites the on-hand quantity of an item
	SetQuantity(ctx context.Context, itemType ItemType, itemID uuid.UUID, quantity decimal.Decimal) error
}
