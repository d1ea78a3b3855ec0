package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
)

// PurchaseItem represents a line item in a purchase. Subtotal is always
// recomputed from quantity and unit price, never accepted from input.
type PurchaseItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemType   ledger.ItemType `gorm:"type:varchar(20);not null"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName   string          `gorm:"type:varchar(200);not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

func newPurchaseItem(purchaseID uuid.UUID, itemType ledger.ItemType, itemID uuid.UUID, itemName string, quantity, unitPrice decimal.Decimal) (*PurchaseItem, error) {
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Invalid item type: "+string(itemType))
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if itemName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &PurchaseItem{
		ID:         uuid.New(),
		PurchaseID: purchaseID,
		ItemType:   itemType,
		ItemID:     itemID,
		ItemName:   itemName,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		Subtotal:   quantity.Mul(unitPrice),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

func (i *PurchaseItem) updateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidQuantity
	}
	i.Quantity = quantity
	i.Subtotal = quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()
	return nil
}

func (i *PurchaseItem) updateUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	i.UnitPrice = unitPrice
	i.Subtotal = i.Quantity.Mul(unitPrice)
	i.UpdatedAt = time.Now()
	return nil
}

// Purchase represents an incoming goods document. Finishing it is what puts
// the purchased quantities into stock, through the ledger.
type Purchase struct {
	shared.OwnedAggregateRoot
	PurchaseNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierName   string          `gorm:"type:varchar(200);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status         DocumentStatus  `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Remark         string          `gorm:"type:text"`
	SubmittedAt    *time.Time      `gorm:"type:timestamptz"`
	FinishedAt     *time.Time      `gorm:"type:timestamptz"`
	CanceledAt     *time.Time      `gorm:"type:timestamptz"`
	CancelReason   string          `gorm:"type:varchar(500)"`

	Items []PurchaseItem `gorm:"foreignKey:PurchaseID;references:ID"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a new purchase in DRAFT status
func NewPurchase(ownerID uuid.UUID, purchaseNumber string, supplierID uuid.UUID, supplierName string) (*Purchase, error) {
	if purchaseNumber == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Purchase number cannot be empty")
	}
	if len(purchaseNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Purchase number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	purchase := &Purchase{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		PurchaseNumber:     purchaseNumber,
		SupplierID:         supplierID,
		SupplierName:       supplierName,
		TotalAmount:        decimal.Zero,
		Status:             StatusDraft,
		Items:              make([]PurchaseItem, 0),
	}

	purchase.AddDomainEvent(NewPurchaseCreatedEvent(purchase))

	return purchase, nil
}

// AddItem adds a line item. Only allowed in DRAFT status.
func (p *Purchase) AddItem(itemType ledger.ItemType, itemID uuid.UUID, itemName string, quantity, unitPrice decimal.Decimal) (*PurchaseItem, error) {
	if p.Status != StatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft purchase")
	}

	for _, item := range p.Items {
		if item.ItemID == itemID && item.ItemType == itemType {
			return nil, shared.NewDomainError("DUPLICATE_ITEM", "Item already exists in purchase, update quantity instead")
		}
	}

	item, err := newPurchaseItem(p.ID, itemType, itemID, itemName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	p.Items = append(p.Items, *item)
	p.recalculateTotal()
	p.Touch()

	return item, nil
}

// UpdateItemQuantity updates the quantity of a line item. DRAFT only.
func (p *Purchase) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if p.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-draft purchase")
	}

	for idx := range p.Items {
		if p.Items[idx].ID == itemID {
			if err := p.Items[idx].updateQuantity(quantity); err != nil {
				return err
			}
			p.recalculateTotal()
			p.Touch()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Purchase item not found")
}

// UpdateItemPrice updates the unit price of a line item. DRAFT only.
func (p *Purchase) UpdateItemPrice(itemID uuid.UUID, unitPrice decimal.Decimal) error {
	if p.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-draft purchase")
	}

	for idx := range p.Items {
		if p.Items[idx].ID == itemID {
			if err := p.Items[idx].updateUnitPrice(unitPrice); err != nil {
				return err
			}
			p.recalculateTotal()
			p.Touch()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Purchase item not found")
}

// RemoveItem removes a line item. DRAFT only.
func (p *Purchase) RemoveItem(itemID uuid.UUID) error {
	if p.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft purchase")
	}

	for idx, item := range p.Items {
		if item.ID == itemID {
			p.Items = append(p.Items[:idx], p.Items[idx+1:]...)
			p.recalculateTotal()
			p.Touch()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Purchase item not found")
}

// Submit transitions the purchase from DRAFT to ONGOING.
// Requires at least one item.
func (p *Purchase) Submit() error {
	if !p.Status.CanTransitionTo(StatusOngoing) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit purchase in %s status", p.Status))
	}
	if len(p.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot submit purchase without items")
	}

	now := time.Now()
	p.Status = StatusOngoing
	p.SubmittedAt = &now
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewPurchaseSubmittedEvent(p))

	return nil
}

// Finish transitions the purchase from ONGOING to FINISHED. The ledger
// movements for the received goods are appended by the application service
// in the same transaction.
func (p *Purchase) Finish() error {
	if !p.Status.CanTransitionTo(StatusFinished) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot finish purchase in %s status", p.Status))
	}

	now := time.Now()
	p.Status = StatusFinished
	p.FinishedAt = &now
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewPurchaseFinishedEvent(p))

	return nil
}

// Cancel cancels the purchase. Allowed in DRAFT or ONGOING status.
func (p *Purchase) Cancel(reason string) error {
	if !p.Status.CanTransitionTo(StatusCanceled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel purchase in %s status", p.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	p.Status = StatusCanceled
	p.CanceledAt = &now
	p.CancelReason = reason
	p.Touch()
	p.IncrementVersion()

	p.AddDomainEvent(NewPurchaseCanceledEvent(p))

	return nil
}

// SetRemark sets the document remark
func (p *Purchase) SetRemark(remark string) {
	p.Remark = remark
	p.Touch()
}

// CanModify returns true if line items can still change
func (p *Purchase) CanModify() bool {
	return p.Status == StatusDraft
}

// GetItem returns a line item by its ID
func (p *Purchase) GetItem(itemID uuid.UUID) *PurchaseItem {
	for idx := range p.Items {
		if p.Items[idx].ID == itemID {
			return &p.Items[idx]
		}
	}
	return nil
}

func (p *Purchase) recalculateTotal() {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.Subtotal)
	}
	p.TotalAmount = total
}
