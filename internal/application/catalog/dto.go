package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/catalog"
)

// CreateRawMaterialRequest represents a request to register a raw material
type CreateRawMaterialRequest struct {
	SupplierID    uuid.UUID       `json:"supplier_id" binding:"required"`
	Name          string          `json:"name" binding:"required,max=200"`
	SupplierPrice decimal.Decimal `json:"supplier_price" binding:"required"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
}

// CreatePaintAccessoryRequest represents a request to register an accessory
type CreatePaintAccessoryRequest struct {
	SupplierID    uuid.UUID       `json:"supplier_id" binding:"required"`
	Name          string          `json:"name" binding:"required,max=200"`
	SupplierPrice decimal.Decimal `json:"supplier_price" binding:"required"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
}

// ChangePricesRequest represents a price update. Nil fields stay unchanged.
type ChangePricesRequest struct {
	SupplierPrice *decimal.Decimal `json:"supplier_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
}

// BomLineRequest represents one recipe line of a semi-finished good
type BomLineRequest struct {
	RawMaterialID uuid.UUID       `json:"raw_material_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateSemiFinishedGoodRequest represents a request to record the
// production of a semi-finished batch: the recipe consumed and the quantity
// the batch produced
type CreateSemiFinishedGoodRequest struct {
	Name     string           `json:"name" binding:"required,max=200"`
	Quantity decimal.Decimal  `json:"quantity" binding:"required"`
	Lines    []BomLineRequest `json:"lines" binding:"required,min=1"`
}

// RawMaterialResponse represents a raw material in API responses
type RawMaterialResponse struct {
	ID            uuid.UUID       `json:"id"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	SupplierPrice decimal.Decimal `json:"supplier_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToRawMaterialResponse converts a raw material to its response representation
func ToRawMaterialResponse(m *catalog.RawMaterial) *RawMaterialResponse {
	return &RawMaterialResponse{
		ID:            m.ID,
		SupplierID:    m.SupplierID,
		Name:          m.Name,
		Quantity:      m.Quantity,
		SupplierPrice: m.SupplierPrice,
		SellingPrice:  m.SellingPrice,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// PaintAccessoryResponse represents an accessory in API responses
type PaintAccessoryResponse struct {
	ID            uuid.UUID       `json:"id"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	Name          string          `json:"name"`
	Quantity      decimal.Decimal `json:"quantity"`
	SupplierPrice decimal.Decimal `json:"supplier_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ToPaintAccessoryResponse converts an accessory to its response representation
func ToPaintAccessoryResponse(a *catalog.PaintAccessory) *PaintAccessoryResponse {
	return &PaintAccessoryResponse{
		ID:            a.ID,
		SupplierID:    a.SupplierID,
		Name:          a.Name,
		Quantity:      a.Quantity,
		SupplierPrice: a.SupplierPrice,
		SellingPrice:  a.SellingPrice,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// BomLineResponse represents one recipe line in API responses
type BomLineResponse struct {
	RawMaterialID uuid.UUID       `json:"raw_material_id"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// SemiFinishedGoodResponse represents a semi-finished good in API responses
type SemiFinishedGoodResponse struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Quantity     decimal.Decimal   `json:"quantity"`
	MaterialCost decimal.Decimal   `json:"material_cost"`
	Lines        []BomLineResponse `json:"lines"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// ToSemiFinishedGoodResponse converts a semi-finished good to its response
// representation. MaterialCost is only meaningful when the detail lines were
// loaded with their raw materials.
func ToSemiFinishedGoodResponse(g *catalog.SemiFinishedGood) *SemiFinishedGoodResponse {
	lines := make([]BomLineResponse, 0, len(g.Details))
	for _, detail := range g.Details {
		lines = append(lines, BomLineResponse{
			RawMaterialID: detail.RawMaterialID,
			Quantity:      detail.Quantity,
		})
	}
	return &SemiFinishedGoodResponse{
		ID:           g.ID,
		Name:         g.Name,
		Quantity:     g.Quantity,
		MaterialCost: g.MaterialCost(),
		Lines:        lines,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}
