package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
)

// LedgerService handles stock ledger operations. AppendMovement is the only
// path through which any on-hand quantity in the system changes.
type LedgerService struct {
	scope          TransactionScope
	movements      ledger.StockMovementRepository
	eventPublisher shared.EventPublisher
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(scope TransactionScope, movements ledger.StockMovementRepository) *LedgerService {
	return &LedgerService{
		scope:     scope,
		movements: movements,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// AppendMovement validates and appends a stock movement in one transaction:
// the item row is locked, the stock guard re-checked under the lock, the
// movement inserted and the denormalized quantity updated. Outbound
// movements that would drive stock negative fail with ErrInsufficientStock
// and leave nothing behind.
func (s *LedgerService) AppendMovement(ctx context.Context, actorID uuid.UUID, req AppendMovementRequest) (*AppendMovementResponse, error) {
	movement, err := ledger.NewStockMovement(
		req.MovementType, req.ItemType, req.ItemID,
		req.Quantity, req.DocumentRef(), actorID, req.Note,
	)
	if err != nil {
		return nil, err
	}

	var newBalance decimal.Decimal
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		newBalance, err = AppendInScope(ctx, repos, movement)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishRecorded(ctx, movement, newBalance)

	return &AppendMovementResponse{
		Movement:   ToMovementResponse(movement),
		NewBalance: newBalance,
	}, nil
}

// AppendInScope appends an already validated movement inside an open
// transaction scope. Trade and production services call this to combine
// document state changes and ledger appends into one unit of work.
func AppendInScope(ctx context.Context, repos TransactionalRepositories, movement *ledger.StockMovement) (decimal.Decimal, error) {
	current, err := repos.Items().QuantityForUpdate(ctx, movement.ItemType, movement.ItemID)
	if err != nil {
		return decimal.Zero, err
	}

	newBalance := current.Add(movement.SignedQuantity())
	if movement.MovementType.IsOutbound() && newBalance.IsNegative() {
		return decimal.Zero, shared.ErrInsufficientStock
	}

	if err := repos.Movements().Create(ctx, movement); err != nil {
		return decimal.Zero, err
	}
	if err := repos.Items().SetQuantity(ctx, movement.ItemType, movement.ItemID, newBalance); err != nil {
		return decimal.Zero, err
	}

	return newBalance, nil
}

// CurrentStock returns the stock level of an item as the sum of the signed
// quantities of all its ledger movements.
func (s *LedgerService) CurrentStock(ctx context.Context, itemType ledger.ItemType, itemID uuid.UUID) (*StockResponse, error) {
	if !itemType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ITEM_TYPE", "Invalid item type: "+string(itemType))
	}
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM_ID", "Item ID is required")
	}

	sum, err := s.movements.SumQuantity(ctx, itemType, itemID)
	if err != nil {
		return nil, err
	}

	return &StockResponse{ItemType: itemType, ItemID: itemID, Quantity: sum}, nil
}

// GetMovements returns the movement history of an item, newest first, along
// with the total number of movements recorded for it
func (s *LedgerService) GetMovements(ctx context.Context, itemType ledger.ItemType, itemID uuid.UUID, filter shared.Filter) ([]MovementResponse, int64, error) {
	if !itemType.IsValid() {
		return nil, 0, shared.NewDomainError("INVALID_ITEM_TYPE", "Invalid item type: "+string(itemType))
	}

	movements, err := s.movements.FindByItem(ctx, itemType, itemID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.movements.CountByItem(ctx, itemType, itemID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MovementResponse, 0, len(movements))
	for i := range movements {
		responses = append(responses, ToMovementResponse(&movements[i]))
	}
	return responses, total, nil
}

// VerifyConsistency cross-checks the denormalized on-hand quantity of an
// item against the ledger sum. Both values are read under the item's row
// lock so concurrent appends cannot produce a false alarm. Divergence
// returns ErrInconsistentLedger.
func (s *LedgerService) VerifyConsistency(ctx context.Context, itemType ledger.ItemType, itemID uuid.UUID) error {
	if !itemType.IsValid() {
		return shared.NewDomainError("INVALID_ITEM_TYPE", "Invalid item type: "+string(itemType))
	}

	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		stored, err := repos.Items().QuantityForUpdate(ctx, itemType, itemID)
		if err != nil {
			return err
		}
		sum, err := repos.Movements().SumQuantity(ctx, itemType, itemID)
		if err != nil {
			return err
		}
		if !stored.Equal(sum) {
			return shared.ErrInconsistentLedger
		}
		return nil
	})
}

func (s *LedgerService) publishRecorded(ctx context.Context, movement *ledger.StockMovement, newBalance decimal.Decimal) {
	if s.eventPublisher == nil {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, ledger.NewStockMovementRecordedEvent(movement, newBalance))
}
