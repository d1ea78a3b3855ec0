package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/shared"
)

// MovementType represents the type of stock movement
type MovementType string

const (
	MovementPurchaseIn    MovementType = "PURCHASE_IN"
	MovementSaleOut       MovementType = "SALE_OUT"
	MovementProductionIn  MovementType = "PRODUCTION_IN"
	MovementProductionOut MovementType = "PRODUCTION_OUT"
	MovementReturnIn      MovementType = "RETURN_IN"
	MovementAdjustment    MovementType = "ADJUSTMENT"
)

// IsValid checks if the movement type is valid
func (t MovementType) IsValid() bool {
	switch t {
	case MovementPurchaseIn, MovementSaleOut, MovementProductionIn,
		MovementProductionOut, MovementReturnIn, MovementAdjustment:
		return true
	}
	return false
}

// IsInbound checks if the movement type increases stock
func (t MovementType) IsInbound() bool {
	switch t {
	case MovementPurchaseIn, MovementProductionIn, MovementReturnIn:
		return true
	}
	return false
}

// IsOutbound checks if the movement type decreases stock
func (t MovementType) IsOutbound() bool {
	switch t {
	case MovementSaleOut, MovementProductionOut:
		return true
	}
	return false
}

// ItemType represents the inventory dimension a movement applies to
type ItemType string

const (
	ItemRawMaterial      ItemType = "RAW_MATERIAL"
	ItemSemiFinishedGood ItemType = "SEMI_FINISHED_GOOD"
	ItemFinishedGood     ItemType = "FINISHED_GOOD"
	ItemPaintAccessory   ItemType = "PAINT_ACCESSORIES"
)

// IsValid checks if the item type is valid
func (t ItemType) IsValid() bool {
	switch t {
	case ItemRawMaterial, ItemSemiFinishedGood, ItemFinishedGood, ItemPaintAccessory:
		return true
	}
	return false
}

// StockMovement is an append-only ledger entry. Rows are never updated or
// deleted after creation; corrections are recorded as ADJUSTMENT entries.
type StockMovement struct {
	shared.BaseEntity
	MovementType MovementType    `json:"movement_type" gorm:"type:varchar(20);not null;index"`
	ItemType     ItemType        `json:"item_type" gorm:"type:varchar(20);not null;index:idx_movement_item"`
	ItemID       uuid.UUID       `json:"item_id" gorm:"type:uuid;not null;index:idx_movement_item"`
	Quantity     decimal.Decimal `json:"quantity" gorm:"type:decimal(20,8);not null"`
	Ref          DocumentRef     `json:"ref" gorm:"embedded"`
	ActorID      uuid.UUID       `json:"actor_id" gorm:"type:uuid;not null"`
	Note         string          `json:"note" gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates a new stock movement entry. Quantity must be
// strictly positive for every type except ADJUSTMENT, which carries a signed
// delta and only needs to be non-zero.
func NewStockMovement(movementType MovementType, itemType ItemType, itemID uuid.UUID, quantity decimal.Decimal, ref DocumentRef, actorID uuid.UUID, note string) (*StockMovement, error) {
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MOVEMENT_TYPE", "Invalid movement type: "+string(movementType))
	}
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Invalid item type: "+string(itemType))
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM_ID", "Item ID is required")
	}
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR_ID", "Actor ID is required")
	}
	if !ref.Valid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_REF", "Document reference kind and ID do not match")
	}

	if movementType == MovementAdjustment {
		if quantity.IsZero() {
			return nil, shared.ErrInvalidQuantity
		}
	} else if !quantity.IsPositive() {
		return nil, shared.ErrInvalidQuantity
	}

	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		MovementType: movementType,
		ItemType:     itemType,
		ItemID:       itemID,
		Quantity:     quantity,
		Ref:          ref,
		ActorID:      actorID,
		Note:         note,
	}, nil
}

// SignedQuantity returns the movement's contribution to the stock balance.
// Inbound types count positive, outbound types negative, and ADJUSTMENT
// carries its own sign.
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	switch {
	case m.MovementType.IsInbound():
		return m.Quantity
	case m.MovementType.IsOutbound():
		return m.Quantity.Neg()
	default:
		return m.Quantity
	}
}
