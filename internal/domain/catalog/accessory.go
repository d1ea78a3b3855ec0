package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/shared"
)

// PaintAccessory represents a resale item (brushes, rollers, thinners) that
// is bought and sold as-is, without entering any bill of materials.
// Quantity is ledger-maintained, same as RawMaterial.
type PaintAccessory struct {
	shared.OwnedAggregateRoot
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SupplierPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SellingPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PaintAccessory) TableName() string {
	return "paint_accessories"
}

// NewPaintAccessory creates a new paint accessory
func NewPaintAccessory(ownerID, supplierID uuid.UUID, name string, supplierPrice, sellingPrice decimal.Decimal) (*PaintAccessory, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Accessory name cannot be empty")
	}
	if supplierPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Supplier price must be positive")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	return &PaintAccessory{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		SupplierID:         supplierID,
		Name:               name,
		Quantity:           decimal.Zero,
		SupplierPrice:      supplierPrice,
		SellingPrice:       sellingPrice,
	}, nil
}

// ChangeSellingPrice updates the selling price
func (a *PaintAccessory) ChangeSellingPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	a.SellingPrice = price
	a.Touch()
	a.IncrementVersion()
	return nil
}

// CanConsume returns true if the on-hand quantity covers the requested amount
func (a *PaintAccessory) CanConsume(quantity decimal.Decimal) bool {
	return a.Quantity.GreaterThanOrEqual(quantity)
}
