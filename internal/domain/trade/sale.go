package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
)

// SaleItem represents a line item in a sale. Subtotal is always recomputed
// from quantity and unit price.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemType  ledger.ItemType `gorm:"type:varchar(20);not null"`
	ItemID    uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName  string          `gorm:"type:varchar(200);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

func newSaleItem(saleID uuid.UUID, itemType ledger.ItemType, itemID uuid.UUID, itemName string, quantity, unitPrice decimal.Decimal) (*SaleItem, error) {
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
	return &SaleItem{
		ID:        uuid.New(),
		SaleID:    saleID,
		ItemType:  itemType,
		ItemID:    itemID,
		ItemName:  itemName,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Subtotal:  quantity.Mul(unitPrice),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (i *SaleItem) updateQuantity(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.ErrInvalidQuantity
	}
	i.Quantity = quantity
	i.Subtotal = quantity.Mul(i.UnitPrice)
	i.UpdatedAt = time.Now()
	return nil
}

func (i *SaleItem) updateUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	i.UnitPrice = unitPrice
	i.Subtotal = i.Quantity.Mul(unitPrice)
	i.UpdatedAt = time.Now()
	return nil
}

// Sale represents an outgoing goods document. Finishing it is what takes the
// sold quantities out of stock, through the ledger.
type Sale struct {
	shared.OwnedAggregateRoot
	SaleNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName string          `gorm:"type:varchar(200);not null"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Status       DocumentStatus  `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Remark       string          `gorm:"type:text"`
	SubmittedAt  *time.Time      `gorm:"type:timestamptz"`
	FinishedAt   *time.Time      `gorm:"type:timestamptz"`
	CanceledAt   *time.Time      `gorm:"type:timestamptz"`
	ReturnedAt   *time.Time      `gorm:"type:timestamptz"`
	CancelReason string          `gorm:"type:varchar(500)"`

	Items []SaleItem `gorm:"foreignKey:SaleID;references:ID"`
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new sale in DRAFT status
func NewSale(ownerID uuid.UUID, saleNumber string, customerID uuid.UUID, customerName string) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Sale number cannot be empty")
	}
	if len(saleNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_NUMBER", "Sale number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	sale := &Sale{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		SaleNumber:         saleNumber,
		CustomerID:         customerID,
		CustomerName:       customerName,
		TotalAmount:        decimal.Zero,
		Status:             StatusDraft,
		Items:              make([]SaleItem, 0),
	}

	sale.AddDomainEvent(NewSaleCreatedEvent(sale))

	return sale, nil
}

// AddItem adds a line item. Only allowed in DRAFT status.
func (s *Sale) AddItem(itemType ledger.ItemType, itemID uuid.UUID, itemName string, quantity, unitPrice decimal.Decimal) (*SaleItem, error) {
	if s.Status != StatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft sale")
	}

	for _, item := range s.Items {
		if item.ItemID == itemID && item.ItemType == itemType {
			return nil, shared.NewDomainError("DUPLICATE_ITEM", "Item already exists in sale, update quantity instead")
		}
	}

	item, err := newSaleItem(s.ID, itemType, itemID, itemName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.recalculateTotal()
	s.Touch()

	return item, nil
}

// UpdateItemQuantity updates the quantity of a line item. DRAFT only.
func (s *Sale) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if s.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-draft sale")
	}

	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			if err := s.Items[idx].updateQuantity(quantity); err != nil {
				return err
			}
			s.recalculateTotal()
			s.Touch()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale item not found")
}

// UpdateItemPrice updates the unit price of a line item. DRAFT only.
func (s *Sale) UpdateItemPrice(itemID uuid.UUID, unitPrice decimal.Decimal) error {
	if s.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot update items in a non-draft sale")
	}

	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			if err := s.Items[idx].updateUnitPrice(unitPrice); err != nil {
				return err
			}
			s.recalculateTotal()
			s.Touch()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale item not found")
}

// RemoveItem removes a line item. DRAFT only.
func (s *Sale) RemoveItem(itemID uuid.UUID) error {
	if s.Status != StatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-draft sale")
	}

	for idx, item := range s.Items {
		if item.ID == itemID {
			s.Items = append(s.Items[:idx], s.Items[idx+1:]...)
			s.recalculateTotal()
			s.Touch()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Sale item not found")
}

// Submit transitions the sale from DRAFT to ONGOING.
// Requires at least one item.
func (s *Sale) Submit() error {
	if !s.Status.CanTransitionTo(StatusOngoing) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit sale in %s status", s.Status))
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot submit sale without items")
	}

	now := time.Now()
	s.Status = StatusOngoing
	s.SubmittedAt = &now
	s.Touch()
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleSubmittedEvent(s))

	return nil
}

// Finish transitions the sale from ONGOING to FINISHED. The SALE_OUT ledger
// movements are appended by the application service in the same transaction,
// so insufficient stock aborts the transition.
func (s *Sale) Finish() error {
	if !s.Status.CanTransitionTo(StatusFinished) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot finish sale in %s status", s.Status))
	}

	now := time.Now()
	s.Status = StatusFinished
	s.FinishedAt = &now
	s.Touch()
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleFinishedEvent(s))

	return nil
}

// Cancel cancels the sale. Allowed in DRAFT or ONGOING status; no stock has
// moved yet at that point.
func (s *Sale) Cancel(reason string) error {
	if !s.Status.CanTransitionTo(StatusCanceled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel sale in %s status", s.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	s.Status = StatusCanceled
	s.CanceledAt = &now
	s.CancelReason = reason
	s.Touch()
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleCanceledEvent(s))

	return nil
}

// MarkReturned records that the goods of a FINISHED sale came back. The
// RETURN_IN ledger movements are appended by the application service in the
// same transaction.
func (s *Sale) MarkReturned() error {
	if s.Status != StatusFinished {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot return sale in %s status", s.Status))
	}
	if s.ReturnedAt != nil {
		return shared.NewDomainError("ALREADY_RETURNED", "Sale has already been returned")
	}

	now := time.Now()
	s.ReturnedAt = &now
	s.Touch()
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleReturnedEvent(s))

	return nil
}

// SetRemark sets the document remark
func (s *Sale) SetRemark(remark string) {
	s.Remark = remark
	s.Touch()
}

// CanModify returns true if line items can still change
func (s *Sale) CanModify() bool {
	return s.Status == StatusDraft
}

// GetItem returns a line item by its ID
func (s *Sale) GetItem(itemID uuid.UUID) *SaleItem {
	for idx := range s.Items {
		if s.Items[idx].ID == itemID {
			return &s.Items[idx]
		}
	}
	return nil
}

func (s *Sale) recalculateTotal() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Subtotal)
	}
	s.TotalAmount = total
}
