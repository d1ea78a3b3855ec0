package ledger

import (
	"github.com/google/uuid"
)

// RefKind identifies the kind of business document a movement originates from
type RefKind string

const (
	RefPurchase   RefKind = "PURCHASE"
	RefSale       RefKind = "SALE"
	RefReturn     RefKind = "RETURN"
	RefProduction RefKind = "PRODUCTION"
	RefNone       RefKind = "NONE"
)

// IsValid checks if the ref kind is valid
func (k RefKind) IsValid() bool {
	switch k {
	case RefPurchase, RefSale, RefReturn, RefProduction, RefNone:
		return true
	}
	return false
}

// DocumentRef points a movement back at the document that caused it. Exactly
// one of the two shapes is legal: a kind with a document ID, or RefNone with
// a nil ID (manual adjustments).
type DocumentRef struct {
	Kind       RefKind    `json:"kind" gorm:"column:ref_kind;type:varchar(20);not null;default:'NONE'"`
	DocumentID *uuid.UUID `json:"document_id,omitempty" gorm:"column:ref_document_id;type:uuid;index"`
}

// PurchaseRef creates a reference to a purchase document
func PurchaseRef(id uuid.UUID) DocumentRef {
	return DocumentRef{Kind: RefPurchase, DocumentID: &id}
}

// SaleRef creates a reference to a sale document
func SaleRef(id uuid.UUID) DocumentRef {
	return DocumentRef{Kind: RefSale, DocumentID: &id}
}

// ReturnRef creates a reference to the sale document a return reverses
func ReturnRef(saleID uuid.UUID) DocumentRef {
	return DocumentRef{Kind: RefReturn, DocumentID: &saleID}
}

// ProductionRef creates a reference to a finished good production run
func ProductionRef(finishedGoodID uuid.UUID) DocumentRef {
	return DocumentRef{Kind: RefProduction, DocumentID: &finishedGoodID}
}

// NoRef creates an empty reference for manual adjustments
func NoRef() DocumentRef {
	return DocumentRef{Kind: RefNone, DocumentID: nil}
}

// Valid checks the kind/ID pairing invariant
func (r DocumentRef) Valid() bool {
	if !r.Kind.IsValid() {
		return false
	}
	if r.Kind == RefNone {
		return r.DocumentID == nil
	}
	return r.DocumentID != nil && *r.DocumentID != uuid.Nil
}
