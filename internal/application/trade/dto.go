package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/trade"
)

// TradeItemRequest represents one line item in a create request
type TradeItemRequest struct {
	ItemType  ledger.ItemType `json:"item_type" binding:"required"`
	ItemID    uuid.UUID       `json:"item_id" binding:"required"`
	ItemName  string          `json:"item_name" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreatePurchaseRequest represents a request to create a purchase
type CreatePurchaseRequest struct {
	PurchaseNumber string             `json:"purchase_number" binding:"required,max=50"`
	SupplierID     uuid.UUID          `json:"supplier_id" binding:"required"`
	SupplierName   string             `json:"supplier_name" binding:"required"`
	Remark         string             `json:"remark"`
	Items          []TradeItemRequest `json:"items"`
}

// CreateSaleRequest represents a request to create a sale
type CreateSaleRequest struct {
	SaleNumber   string             `json:"sale_number" binding:"required,max=50"`
	CustomerID   uuid.UUID          `json:"customer_id" binding:"required"`
	CustomerName string             `json:"customer_name" binding:"required"`
	Remark       string             `json:"remark"`
	Items        []TradeItemRequest `json:"items"`
}

// CancelRequest represents a request to cancel a trade document
type CancelRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// TradeItemResponse represents a line item in API responses
type TradeItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ItemType  ledger.ItemType `json:"item_type"`
	ItemID    uuid.UUID       `json:"item_id"`
	ItemName  string          `json:"item_name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// PurchaseResponse represents a purchase in API responses
type PurchaseResponse struct {
	ID             uuid.UUID            `json:"id"`
	PurchaseNumber string               `json:"purchase_number"`
	SupplierID     uuid.UUID            `json:"supplier_id"`
	SupplierName   string               `json:"supplier_name"`
	Status         trade.DocumentStatus `json:"status"`
	TotalAmount    decimal.Decimal      `json:"total_amount"`
	Remark         string               `json:"remark,omitempty"`
	Items          []TradeItemResponse  `json:"items"`
	SubmittedAt    *time.Time           `json:"submitted_at,omitempty"`
	FinishedAt     *time.Time           `json:"finished_at,omitempty"`
	CanceledAt     *time.Time           `json:"canceled_at,omitempty"`
	CancelReason   string               `json:"cancel_reason,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID           uuid.UUID            `json:"id"`
	SaleNumber   string               `json:"sale_number"`
	CustomerID   uuid.UUID            `json:"customer_id"`
	CustomerName string               `json:"customer_name"`
	Status       trade.DocumentStatus `json:"status"`
	TotalAmount  decimal.Decimal      `json:"total_amount"`
	Remark       string               `json:"remark,omitempty"`
	Items        []TradeItemResponse  `json:"items"`
	SubmittedAt  *time.Time           `json:"submitted_at,omitempty"`
	FinishedAt   *time.Time           `json:"finished_at,omitempty"`
	CanceledAt   *time.Time           `json:"canceled_at,omitempty"`
	ReturnedAt   *time.Time           `json:"returned_at,omitempty"`
	CancelReason string               `json:"cancel_reason,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ToPurchaseResponse converts a purchase to its response representation
func ToPurchaseResponse(p *trade.Purchase) *PurchaseResponse {
	items := make([]TradeItemResponse, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, TradeItemResponse{
			ID:        item.ID,
			ItemType:  item.ItemType,
			ItemID:    item.ItemID,
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return &PurchaseResponse{
		ID:             p.ID,
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID,
		SupplierName:   p.SupplierName,
		Status:         p.Status,
		TotalAmount:    p.TotalAmount,
		Remark:         p.Remark,
		Items:          items,
		SubmittedAt:    p.SubmittedAt,
		FinishedAt:     p.FinishedAt,
		CanceledAt:     p.CanceledAt,
		CancelReason:   p.CancelReason,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToSaleResponse converts a sale to its response representation
func ToSaleResponse(s *trade.Sale) *SaleResponse {
	items := make([]TradeItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, TradeItemResponse{
			ID:        item.ID,
			ItemType:  item.ItemType,
			ItemID:    item.ItemID,
			ItemName:  item.ItemName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return &SaleResponse{
		ID:           s.ID,
		SaleNumber:   s.SaleNumber,
		CustomerID:   s.CustomerID,
		CustomerName: s.CustomerName,
		Status:       s.Status,
		TotalAmount:  s.TotalAmount,
		Remark:       s.Remark,
		Items:        items,
		SubmittedAt:  s.SubmittedAt,
		FinishedAt:   s.FinishedAt,
		CanceledAt:   s.CanceledAt,
		ReturnedAt:   s.ReturnedAt,
		CancelReason: s.CancelReason,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
