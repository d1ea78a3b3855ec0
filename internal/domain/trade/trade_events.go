package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypePurchase = "Purchase"
	AggregateTypeSale     = "Sale"
)

// Event type constants
const (
	EventTypePurchaseCreated   = "PurchaseCreated"
	EventTypePurchaseSubmitted = "PurchaseSubmitted"
	EventTypePurchaseFinished  = "PurchaseFinished"
	EventTypePurchaseCanceled  = "PurchaseCanceled"

	EventTypeSaleCreated   = "SaleCreated"
	EventTypeSaleSubmitted = "SaleSubmitted"
	EventTypeSaleFinished  = "SaleFinished"
	EventTypeSaleCanceled  = "SaleCanceled"
	EventTypeSaleReturned  = "SaleReturned"
)

// PurchaseEvent carries the common purchase event payload
type PurchaseEvent struct {
	shared.BaseDomainEvent
	PurchaseID     uuid.UUID       `json:"purchase_id"`
	PurchaseNumber string          `json:"purchase_number"`
	SupplierID     uuid.UUID       `json:"supplier_id"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
}

func newPurchaseEvent(eventType string, p *Purchase) PurchaseEvent {
	return PurchaseEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypePurchase, p.ID),
		PurchaseID:      p.ID,
		PurchaseNumber:  p.PurchaseNumber,
		SupplierID:      p.SupplierID,
		TotalAmount:     p.TotalAmount,
	}
}

// PurchaseCreatedEvent is raised when a purchase is created
type PurchaseCreatedEvent struct{ PurchaseEvent }

// NewPurchaseCreatedEvent creates a new PurchaseCreatedEvent
func NewPurchaseCreatedEvent(p *Purchase) *PurchaseCreatedEvent {
	return &PurchaseCreatedEvent{newPurchaseEvent(EventTypePurchaseCreated, p)}
}

// PurchaseSubmittedEvent is raised when a purchase moves to ONGOING
type PurchaseSubmittedEvent struct{ PurchaseEvent }

// NewPurchaseSubmittedEvent creates a new PurchaseSubmittedEvent
func NewPurchaseSubmittedEvent(p *Purchase) *PurchaseSubmittedEvent {
	return &PurchaseSubmittedEvent{newPurchaseEvent(EventTypePurchaseSubmitted, p)}
}

// PurchaseFinishedEvent is raised when a purchase moves to FINISHED
type PurchaseFinishedEvent struct{ PurchaseEvent }

// NewPurchaseFinishedEvent creates a new PurchaseFinishedEvent
func NewPurchaseFinishedEvent(p *Purchase) *PurchaseFinishedEvent {
	return &PurchaseFinishedEvent{newPurchaseEvent(EventTypePurchaseFinished, p)}
}

// PurchaseCanceledEvent is raised when a purchase is canceled
type PurchaseCanceledEvent struct {
	PurchaseEvent
	Reason string `json:"reason"`
}

// NewPurchaseCanceledEvent creates a new PurchaseCanceledEvent
func NewPurchaseCanceledEvent(p *Purchase) *PurchaseCanceledEvent {
	return &PurchaseCanceledEvent{
		PurchaseEvent: newPurchaseEvent(EventTypePurchaseCanceled, p),
		Reason:        p.CancelReason,
	}
}

// SaleEvent carries the common sale event payload
type SaleEvent struct {
	shared.BaseDomainEvent
	SaleID      uuid.UUID       `json:"sale_id"`
	SaleNumber  string          `json:"sale_number"`
	CustomerID  uuid.UUID       `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func newSaleEvent(eventType string, s *Sale) SaleEvent {
	return SaleEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeSale, s.ID),
		SaleID:          s.ID,
		SaleNumber:      s.SaleNumber,
		CustomerID:      s.CustomerID,
		TotalAmount:     s.TotalAmount,
	}
}

// SaleCreatedEvent is raised when a sale is created
type SaleCreatedEvent struct{ SaleEvent }

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{newSaleEvent(EventTypeSaleCreated, s)}
}

// SaleSubmittedEvent is raised when a sale moves to ONGOING
type SaleSubmittedEvent struct{ SaleEvent }

// NewSaleSubmittedEvent creates a new SaleSubmittedEvent
func NewSaleSubmittedEvent(s *Sale) *SaleSubmittedEvent {
	return &SaleSubmittedEvent{newSaleEvent(EventTypeSaleSubmitted, s)}
}

// SaleFinishedEvent is raised when a sale moves to FINISHED
type SaleFinishedEvent struct{ SaleEvent }

// NewSaleFinishedEvent creates a new SaleFinishedEvent
func NewSaleFinishedEvent(s *Sale) *SaleFinishedEvent {
	return &SaleFinishedEvent{newSaleEvent(EventTypeSaleFinished, s)}
}

// SaleCanceledEvent is raised when a sale is canceled
type SaleCanceledEvent struct {
	SaleEvent
	Reason string `json:"reason"`
}

// NewSaleCanceledEvent creates a new SaleCanceledEvent
func NewSaleCanceledEvent(s *Sale) *SaleCanceledEvent {
	return &SaleCanceledEvent{
		SaleEvent: newSaleEvent(EventTypeSaleCanceled, s),
		Reason:    s.CancelReason,
	}
}

// SaleReturnedEvent is raised when the goods of a finished sale come back
type SaleReturnedEvent struct{ SaleEvent }

// NewSaleReturnedEvent creates a new SaleReturnedEvent
func NewSaleReturnedEvent(s *Sale) *SaleReturnedEvent {
	return &SaleReturnedEvent{newSaleEvent(EventTypeSaleReturned, s)}
}
