package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/ledger"
)

// AppendMovementRequest represents a request to append a stock movement
type AppendMovementRequest struct {
	MovementType  ledger.MovementType `json:"movement_type" binding:"required"`
	ItemType      ledger.ItemType     `json:"item_type" binding:"required"`
	ItemID        uuid.UUID           `json:"item_id" binding:"required"`
	Quantity      decimal.Decimal     `json:"quantity" binding:"required"`
	RefKind       ledger.RefKind      `json:"ref_kind"`
	RefDocumentID *uuid.UUID          `json:"ref_document_id"`
	Note          string              `json:"note"`
}

// DocumentRef builds the document reference from the request fields.
// An empty kind means no originating document.
func (r *AppendMovementRequest) DocumentRef() ledger.DocumentRef {
	if r.RefKind == "" {
		return ledger.NoRef()
	}
	return ledger.DocumentRef{Kind: r.RefKind, DocumentID: r.RefDocumentID}
}

// MovementResponse represents a stock movement in API responses
type MovementResponse struct {
	ID             uuid.UUID           `json:"id"`
	MovementType   ledger.MovementType `json:"movement_type"`
	ItemType       ledger.ItemType     `json:"item_type"`
	ItemID         uuid.UUID           `json:"item_id"`
	Quantity       decimal.Decimal     `json:"quantity"`
	SignedQuantity decimal.Decimal     `json:"signed_quantity"`
	RefKind        ledger.RefKind      `json:"ref_kind"`
	RefDocumentID  *uuid.UUID          `json:"ref_document_id,omitempty"`
	ActorID        uuid.UUID           `json:"actor_id"`
	Note           string              `json:"note,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ToMovementResponse converts a stock movement to its response representation
func ToMovementResponse(m *ledger.StockMovement) MovementResponse {
	return MovementResponse{
		ID:             m.ID,
		MovementType:   m.MovementType,
		ItemType:       m.ItemType,
		ItemID:         m.ItemID,
		Quantity:       m.Quantity,
		SignedQuantity: m.SignedQuantity(),
		RefKind:        m.Ref.Kind,
		RefDocumentID:  m.Ref.DocumentID,
		ActorID:        m.ActorID,
		Note:           m.Note,
		CreatedAt:      m.CreatedAt,
	}
}

// AppendMovementResponse is returned after a successful append
type AppendMovementResponse struct {
	Movement   MovementResponse `json:"movement"`
	NewBalance decimal.Decimal  `json:"new_balance"`
}

// StockResponse represents the current stock level of an item
type StockResponse struct {
	ItemType ledger.ItemType `json:"item_type"`
	ItemID   uuid.UUID       `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
}
