package ledger

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeStockMovement = "StockMovement"
)

// Event type constants
const (
	EventTypeStockMovementRecorded = "StockMovementRecorded"
)

// StockMovementRecordedEvent is raised after a movement has been appended and
// the item's denormalized quantity updated in the same transaction.
type StockMovementRecordedEvent struct {
	shared.BaseDomainEvent
	MovementID   uuid.UUID       `json:"movement_id"`
	MovementType MovementType    `json:"movement_type"`
	ItemType     ItemType        `json:"item_type"`
	ItemID       uuid.UUID       `json:"item_id"`
	Quantity     decimal.Decimal `json:"quantity"`
	NewBalance   decimal.Decimal `json:"new_balance"`
}

// NewStockMovementRecordedEvent creates a new StockMovementRecordedEvent
func NewStockMovementRecordedEvent(movement *StockMovement, newBalance decimal.Decimal) *StockMovementRecordedEvent {
	return &StockMovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockMovementRecorded, AggregateTypeStockMovement, movement.ID),
		MovementID:      movement.ID,
		MovementType:    movement.MovementType,
		ItemType:        movement.ItemType,
		ItemID:          movement.ItemID,
		Quantity:        movement.Quantity,
		NewBalance:      newBalance,
	}
}

// EventType returns the event type name
func (e *StockMovementRecordedEvent) EventType() string {
	return EventTypeStockMovementRecorded
}
