package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/catalog"
)

// ComponentRequest represents one consumed component of a production run
type ComponentRequest struct {
	Kind     catalog.ComponentKind `json:"kind" binding:"required"`
	ItemID   uuid.UUID             `json:"item_id" binding:"required"`
	Quantity decimal.Decimal       `json:"quantity" binding:"required"`
}

// RecordProductionRequest represents a request to register a production run
type RecordProductionRequest struct {
	ProductionCode string               `json:"production_code" binding:"required,max=50"`
	Name           string               `json:"name" binding:"required,max=200"`
	ProductionDate time.Time            `json:"production_date" binding:"required"`
	BatchNumber    string               `json:"batch_number" binding:"required,max=50"`
	Grade          catalog.QualityGrade `json:"grade" binding:"required"`
	Quantity       decimal.Decimal      `json:"quantity" binding:"required"`
	SellingPrice   decimal.Decimal      `json:"selling_price"`
	Components     []ComponentRequest   `json:"components" binding:"required,min=1"`
}

// ComponentResponse represents one BOM line in API responses
type ComponentResponse struct {
	ID       uuid.UUID             `json:"id"`
	Kind     catalog.ComponentKind `json:"kind"`
	ItemID   uuid.UUID             `json:"item_id"`
	Quantity decimal.Decimal       `json:"quantity"`
}

// FinishedGoodResponse represents a registered production run
type FinishedGoodResponse struct {
	ID             uuid.UUID            `json:"id"`
	ProductionCode string               `json:"production_code"`
	Name           string               `json:"name"`
	ProductionDate time.Time            `json:"production_date"`
	BatchNumber    string               `json:"batch_number"`
	Grade          catalog.QualityGrade `json:"grade"`
	Quantity       decimal.Decimal      `json:"quantity"`
	SellingPrice   decimal.Decimal      `json:"selling_price"`
	Components     []ComponentResponse  `json:"components"`
	CreatedAt      time.Time            `json:"created_at"`
}

// ToFinishedGoodResponse converts a finished good to its response representation
func ToFinishedGoodResponse(good *catalog.FinishedGood) *FinishedGoodResponse {
	components := make([]ComponentResponse, 0, len(good.Details))
	for i := range good.Details {
		detail := &good.Details[i]
		components = append(components, ComponentResponse{
			ID:       detail.ID,
			Kind:     detail.Kind,
			ItemID:   detail.ComponentID(),
			Quantity: detail.Quantity,
		})
	}
	return &FinishedGoodResponse{
		ID:             good.ID,
		ProductionCode: good.ProductionCode,
		Name:           good.Name,
		ProductionDate: good.ProductionDate,
		BatchNumber:    good.BatchNumber,
		Grade:          good.Grade,
		Quantity:       good.Quantity,
		SellingPrice:   good.SellingPrice,
		Components:     components,
		CreatedAt:      good.CreatedAt,
	}
}
