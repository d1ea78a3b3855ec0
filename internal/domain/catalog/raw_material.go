package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/shared"
)

// RawMaterial represents a purchasable input material tracked in stock.
// Quantity is a denormalized cache of the stock ledger sum for this item;
// it must only ever change together with a ledger movement in the same
// transaction (see the ledger application service).
type RawMaterial struct {
	shared.OwnedAggregateRoot
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SupplierPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Purchase price per unit
	SellingPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (RawMaterial) TableName() string {
	return "raw_materials"
}

// NewRawMaterial creates a new raw material
func NewRawMaterial(ownerID, supplierID uuid.UUID, name string, supplierPrice, sellingPrice decimal.Decimal) (*RawMaterial, error) {
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	if supplierPrice.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Supplier price must be positive")
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	return &RawMaterial{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		SupplierID:         supplierID,
		Name:               name,
		Quantity:           decimal.Zero,
		SupplierPrice:      supplierPrice,
		SellingPrice:       sellingPrice,
	}, nil
}

// ChangeSupplierPrice updates the purchase price.
// Raises a SupplierPriceChanged event so cached unit costs can be invalidated.
func (m *RawMaterial) ChangeSupplierPrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Supplier price must be positive")
	}

	oldPrice := m.SupplierPrice
	m.SupplierPrice = price
	m.Touch()
	m.IncrementVersion()

	if !oldPrice.Equal(price) {
		m.AddDomainEvent(NewSupplierPriceChangedEvent(m, oldPrice, price))
	}
	return nil
}

// ChangeSellingPrice updates the selling price
func (m *RawMaterial) ChangeSellingPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}

	m.SellingPrice = price
	m.Touch()
	m.IncrementVersion()
	return nil
}

// Rename changes the display name
func (m *RawMaterial) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Material name cannot be empty")
	}
	m.Name = name
	m.Touch()
	m.IncrementVersion()
	return nil
}

// HasStock returns true if there is on-hand quantity
func (m *RawMaterial) HasStock() bool {
	return m.Quantity.GreaterThan(decimal.Zero)
}

// CanConsume returns true if the on-hand quantity covers the requested amount
func (m *RawMaterial) CanConsume(quantity decimal.Decimal) bool {
	return m.Quantity.GreaterThanOrEqual(quantity)
}
