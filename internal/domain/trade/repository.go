package trade

import (
	"context"

	"github.com/google/uuid"

	"github.com/paintfactory/backend/internal/domain/shared"
)

// PurchaseRepository defines the interface for purchase persistence
type PurchaseRepository interface {
	// FindByID finds a purchase with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)

	// FindByNumber finds a purchase by its document number
	FindByNumber(ctx context.Context, purchaseNumber string) (*Purchase, error)

	// FindByStatus finds purchases in a given status
	FindByStatus(ctx context.Context, status DocumentStatus, filter shared.Filter) ([]Purchase, error)

	// FindAll finds all purchases
	FindAll(ctx context.Context, filter shared.Filter) ([]Purchase, error)

	// Save creates or updates a purchase and its line items
	Save(ctx context.Context, purchase *Purchase) error

	// Count counts purchases matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale with its line items
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByNumber finds a sale by its document number
	FindByNumber(ctx context.Context, saleNumber string) (*Sale, error)

	// FindByStatus finds sales in a given status
	FindByStatus(ctx context.Context, status DocumentStatus, filter shared.Filter) ([]Sale, error)

	// FindAll finds all sales
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// Save creates or updates a sale and its line items
	Save(ctx context.Context, sale *Sale) error

	// Count counts sales matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
