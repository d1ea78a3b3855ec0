package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/shared"
)

// QualityGrade classifies the output of a production run
type QualityGrade string

const (
	QualityGradeA QualityGrade = "A"
	QualityGradeB QualityGrade = "B"
	QualityGradeC QualityGrade = "C"
)

// IsValid returns true if the grade is a known quality grade
func (g QualityGrade) IsValid() bool {
	switch g {
	case QualityGradeA, QualityGradeB, QualityGradeC:
		return true
	}
	return false
}

// ComponentKind identifies which kind of item a finished-good BOM line
// consumes. A line consumes a raw material or a semi-finished good, never
// both.
type ComponentKind string

const (
	ComponentRawMaterial  ComponentKind = "RAW_MATERIAL"
	ComponentSemiFinished ComponentKind = "SEMI_FINISHED_GOOD"
)

// IsValid returns true if the kind is known
func (k ComponentKind) IsValid() bool {
	return k == ComponentRawMaterial || k == ComponentSemiFinished
}

// FinishedGood represents a produced, sellable paint product. One row
// corresponds to one production batch; Quantity is the produced amount net
// of later sales, maintained through the stock ledger.
type FinishedGood struct {
	shared.OwnedAggregateRoot
	ProductionCode string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string          `gorm:"type:varchar(200);not null"`
	ProductionDate time.Time       `gorm:"type:timestamptz;not null"`
	BatchNumber    string          `gorm:"type:varchar(50);not null"`
	Grade          QualityGrade    `gorm:"type:varchar(10);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Details []FinishedGoodDetail `gorm:"foreignKey:FinishedGoodID;references:ID"`
}

// TableName returns the table name for GORM
func (FinishedGood) TableName() string {
	return "finished_goods"
}

// FinishedGoodDetail is one BOM line of a finished good. The component
// reference is tagged by Kind; exactly one of RawMaterialID and
// SemiFinishedGoodID is set, enforced by the constructors. Immutable after
// creation.
type FinishedGoodDetail struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primary_key"`
	FinishedGoodID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Kind               ComponentKind   `gorm:"type:varchar(30);not null"`
	RawMaterialID      *uuid.UUID      `gorm:"type:uuid;index"`
	SemiFinishedGoodID *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity           decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt          time.Time       `gorm:"not null"`

	// Loaded associations, used by the cost rollup
	RawMaterial      *RawMaterial      `gorm:"foreignKey:RawMaterialID;references:ID"`
	SemiFinishedGood *SemiFinishedGood `gorm:"foreignKey:SemiFinishedGoodID;references:ID"`
}

// TableName returns the table name for GORM
func (FinishedGoodDetail) TableName() string {
	return "finished_good_details"
}

// ComponentID returns the referenced item ID regardless of kind
func (d *FinishedGoodDetail) ComponentID() uuid.UUID {
	switch d.Kind {
	case ComponentRawMaterial:
		if d.RawMaterialID != nil {
			return *d.RawMaterialID
		}
	case ComponentSemiFinished:
		if d.SemiFinishedGoodID != nil {
			return *d.SemiFinishedGoodID
		}
	}
	return uuid.Nil
}

// ComponentLine describes one consumption line for a new finished good
type ComponentLine struct {
	Kind     ComponentKind
	ItemID   uuid.UUID
	Quantity decimal.Decimal
}

// RawMaterialLine builds a component line consuming a raw material
func RawMaterialLine(rawMaterialID uuid.UUID, quantity decimal.Decimal) ComponentLine {
	return ComponentLine{Kind: ComponentRawMaterial, ItemID: rawMaterialID, Quantity: quantity}
}

// SemiFinishedLine builds a component line consuming a semi-finished good
func SemiFinishedLine(semiFinishedGoodID uuid.UUID, quantity decimal.Decimal) ComponentLine {
	return ComponentLine{Kind: ComponentSemiFinished, ItemID: semiFinishedGoodID, Quantity: quantity}
}

// NewFinishedGood creates a finished good for a production run together
// with its complete, immutable set of BOM lines.
func NewFinishedGood(
	ownerID uuid.UUID,
	productionCode, name string,
	productionDate time.Time,
	batchNumber string,
	grade QualityGrade,
	producedQty decimal.Decimal,
	sellingPrice decimal.Decimal,
	lines []ComponentLine,
) (*FinishedGood, error) {
	if productionCode == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCTION_CODE", "Production code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if !grade.IsValid() {
		return nil, shared.NewDomainError("INVALID_GRADE", "Unknown quality grade")
	}
	if producedQty.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidQuantity
	}
	if sellingPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_BOM", "At least one component line is required")
	}

	good := &FinishedGood{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		ProductionCode:     productionCode,
		Name:               name,
		ProductionDate:     productionDate,
		BatchNumber:        batchNumber,
		Grade:              grade,
		Quantity:           decimal.Zero, // Set by the PRODUCTION_IN ledger movement
		SellingPrice:       sellingPrice,
		Details:            make([]FinishedGoodDetail, 0, len(lines)),
	}

	for _, line := range lines {
		detail, err := newFinishedGoodDetail(good.ID, line)
		if err != nil {
			return nil, err
		}
		good.Details = append(good.Details, *detail)
	}

	return good, nil
}

func newFinishedGoodDetail(finishedGoodID uuid.UUID, line ComponentLine) (*FinishedGoodDetail, error) {
	if !line.Kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_COMPONENT", "Unknown component kind")
	}
	if line.ItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPONENT", "Component ID cannot be empty")
	}
	if line.Quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidQuantity
	}

	detail := &FinishedGoodDetail{
		ID:             uuid.New(),
		FinishedGoodID: finishedGoodID,
		Kind:           line.Kind,
		Quantity:       line.Quantity,
		CreatedAt:      time.Now(),
	}
	id := line.ItemID
	switch line.Kind {
	case ComponentRawMaterial:
		detail.RawMaterialID = &id
	case ComponentSemiFinished:
		detail.SemiFinishedGoodID = &id
	}
	return detail, nil
}

// ChangeSellingPrice updates the selling price used for margin reporting
func (g *FinishedGood) ChangeSellingPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Selling price cannot be negative")
	}
	g.SellingPrice = price
	g.Touch()
	g.IncrementVersion()
	return nil
}

// CanConsume returns true if the on-hand quantity covers the requested amount
func (g *FinishedGood) CanConsume(quantity decimal.Decimal) bool {
	return g.Quantity.GreaterThanOrEqual(quantity)
}
