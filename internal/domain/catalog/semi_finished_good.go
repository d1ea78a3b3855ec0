package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/shared"
)

// SemiFinishedGood represents an intermediate product (e.g. a paint base)
// produced from raw materials and later consumed when producing finished
// goods. Its detail lines are the historical record of what one production
// batch consumed; they are created once and never updated, so later price
// changes on the underlying raw materials do not rewrite history.
type SemiFinishedGood struct {
	shared.OwnedAggregateRoot
	Name     string          `gorm:"type:varchar(200);not null"`
	Quantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Details []SemiFinishedGoodDetail `gorm:"foreignKey:SemiFinishedGoodID;references:ID"`
}

// TableName returns the table name for GORM
func (SemiFinishedGood) TableName() string {
	return "semi_finished_goods"
}

// SemiFinishedGoodDetail is one BOM line of a semi-finished good: a raw
// material and the quantity consumed when the batch was produced.
// Immutable after creation.
type SemiFinishedGoodDetail struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key"`
	SemiFinishedGoodID uuid.UUID       `gorm:"type:uuid;not null;index"`
	RawMaterialID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt          time.Time       `gorm:"not null"`

	// Loaded association, used by the cost rollup
	RawMaterial *RawMaterial `gorm:"foreignKey:RawMaterialID;references:ID"`
}

// TableName returns the table name for GORM
func (SemiFinishedGoodDetail) TableName() string {
	return "semi_finished_good_details"
}

// BomLine describes one raw material consumption for a new batch
type BomLine struct {
	RawMaterialID uuid.UUID
	Quantity      decimal.Decimal
}

// NewSemiFinishedGood creates a semi-finished good for a production batch
// together with its complete, immutable set of BOM lines. At least one line
// is required and the batch must produce a positive quantity.
func NewSemiFinishedGood(ownerID uuid.UUID, name string, producedQty decimal.Decimal, lines []BomLine) (*SemiFinishedGood, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if producedQty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidQuantity
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_BOM", "At least one material line is required")
	}

	good := &SemiFinishedGood{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		Quantity:           decimal.Zero, // Set by the PRODUCTION_IN ledger movement
		Details:            make([]SemiFinishedGoodDetail, 0, len(lines)),
	}

	for _, line := range lines {
		if line.RawMaterialID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_MATERIAL", "Raw material ID cannot be empty")
		}
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.ErrInvalidQuantity
		}
		good.Details = append(good.Details, SemiFinishedGoodDetail{
			ID:                 uuid.New(),
			SemiFinishedGoodID: good.ID,
			RawMaterialID:      line.RawMaterialID,
			Quantity:           line.Quantity,
			CreatedAt:          good.CreatedAt,
		})
	}

	return good, nil
}

// MaterialCost returns the total raw-material cost of this good's BOM,
// priced at the current supplier prices of the loaded materials.
func (g *SemiFinishedGood) MaterialCost() decimal.Decimal {
	total := decimal.Zero
	for _, d := range g.Details {
		if d.RawMaterial == nil {
			continue
		}
		total = total.Add(d.Quantity.Mul(d.RawMaterial.SupplierPrice))
	}
	return total
}

// CanConsume returns true if the on-hand quantity covers the requested amount
func (g *SemiFinishedGood) CanConsume(quantity decimal.Decimal) bool {
	return g.Quantity.GreaterThanOrEqual(quantity)
}

// Rename changes the display name
func (g *SemiFinishedGood) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	g.Name = name
	g.Touch()
	g.IncrementVersion()
	return nil
}
