package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeRawMaterial  = "RawMaterial"
	AggregateTypeFinishedGood = "FinishedGood"
)

// Event type constants
const (
	EventTypeSupplierPriceChanged = "SupplierPriceChanged"
	EventTypeFinishedGoodCreated  = "FinishedGoodCreated"
)

// SupplierPriceChangedEvent is raised when a raw material's purchase price
// changes. Cached cost rollups depending on this material become stale.
type SupplierPriceChangedEvent struct {
	shared.BaseDomainEvent
	RawMaterialID uuid.UUID       `json:"raw_material_id"`
	OldPrice      decimal.Decimal `json:"old_price"`
	NewPrice      decimal.Decimal `json:"new_price"`
}

// NewSupplierPriceChangedEvent creates a new SupplierPriceChangedEvent
func NewSupplierPriceChangedEvent(material *RawMaterial, oldPrice, newPrice decimal.Decimal) *SupplierPriceChangedEvent {
	return &SupplierPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierPriceChanged, AggregateTypeRawMaterial, material.ID),
		RawMaterialID:   material.ID,
		OldPrice:        oldPrice,
		NewPrice:        newPrice,
	}
}

// EventType returns the event type name
func (e *SupplierPriceChangedEvent) EventType() string {
	return EventTypeSupplierPriceChanged
}

// FinishedGoodCreatedEvent is raised when a production run registers a new
// finished good (and therefore a new BOM).
type FinishedGoodCreatedEvent struct {
	shared.BaseDomainEvent
	FinishedGoodID uuid.UUID       `json:"finished_good_id"`
	ProductionCode string          `json:"production_code"`
	ProducedQty    decimal.Decimal `json:"produced_qty"`
}

// NewFinishedGoodCreatedEvent creates a new FinishedGoodCreatedEvent
func NewFinishedGoodCreatedEvent(good *FinishedGood, producedQty decimal.Decimal) *FinishedGoodCreatedEvent {
	return &FinishedGoodCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeFinishedGoodCreated, AggregateTypeFinishedGood, good.ID),
		FinishedGoodID:  good.ID,
		ProductionCode:  good.ProductionCode,
		ProducedQty:     producedQty,
	}
}

// EventType returns the event type name
func (e *FinishedGoodCreatedEvent) EventType() string {
	return EventTypeFinishedGoodCreated
}
