package trade

import (
	"context"

	"github.com/google/uuid"

	ledgerapp "github.com/paintfactory/backend/internal/application/ledger"
	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
	"github.com/paintfactory/backend/internal/domain/trade"
)

// TradeService handles purchase and sale document operations. Finishing or
// returning a document flips its status and appends the matching ledger
// movements in one transaction, so a stock violation rolls back the status
// change as well.
type TradeService struct {
	scope          ledgerapp.TransactionScope
	purchases      trade.PurchaseRepository
	sales          trade.SaleRepository
	eventPublisher shared.EventPublisher
}

// NewTradeService creates a new TradeService
func NewTradeService(scope ledgerapp.TransactionScope, purchases trade.PurchaseRepository, sales trade.SaleRepository) *TradeService {
	return &TradeService{
		scope:     scope,
		purchases: purchases,
		sales:     sales,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *TradeService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreatePurchase creates a purchase in DRAFT status with its line items
func (s *TradeService) CreatePurchase(ctx context.Context, ownerID uuid.UUID, req CreatePurchaseRequest) (*PurchaseResponse, error) {
	purchase, err := trade.NewPurchase(ownerID, req.PurchaseNumber, req.SupplierID, req.SupplierName)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		purchase.SetRemark(req.Remark)
	}
	for _, item := range req.Items {
		if _, err := purchase.AddItem(item.ItemType, item.ItemID, item.ItemName, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.purchases.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, purchase.GetDomainEvents())
	purchase.ClearDomainEvents()

	return ToPurchaseResponse(purchase), nil
}

// GetPurchase returns a purchase by ID
func (s *TradeService) GetPurchase(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPurchaseResponse(purchase), nil
}

// ListPurchases returns purchases matching the filter and the total count
func (s *TradeService) ListPurchases(ctx context.Context, filter shared.Filter) ([]PurchaseResponse, int64, error) {
	purchases, err := s.purchases.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.purchases.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		responses = append(responses, *ToPurchaseResponse(&purchases[i]))
	}
	return responses, total, nil
}

// SubmitPurchase moves a purchase from DRAFT to ONGOING
func (s *TradeService) SubmitPurchase(ctx context.Context, id uuid.UUID) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := purchase.Submit(); err != nil {
		return nil, err
	}
	if err := s.purchases.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, purchase.GetDomainEvents())
	purchase.ClearDomainEvents()

	return ToPurchaseResponse(purchase), nil
}

// FinishPurchase moves a purchase from ONGOING to FINISHED and appends a
// PURCHASE_IN movement per line item, all in one transaction.
func (s *TradeService) FinishPurchase(ctx context.Context, actorID, id uuid.UUID) (*PurchaseResponse, error) {
	var purchase *trade.Purchase
	err := s.scope.Execute(ctx, func(repos ledgerapp.TransactionalRepositories) error {
		var err error
		purchase, err = repos.Purchases().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := purchase.Finish(); err != nil {
			return err
		}

		for _, item := range purchase.Items {
			movement, err := ledger.NewStockMovement(
				ledger.MovementPurchaseIn, item.ItemType, item.ItemID,
				item.Quantity, ledger.PurchaseRef(purchase.ID), actorID, "",
			)
			if err != nil {
				return err
			}
			if _, err := ledgerapp.AppendInScope(ctx, repos, movement); err != nil {
				return err
			}
		}

		return repos.Purchases().Save(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, purchase.GetDomainEvents())
	purchase.ClearDomainEvents()

	return ToPurchaseResponse(purchase), nil
}

// CancelPurchase cancels a DRAFT or ONGOING purchase. No stock has moved at
// that point, so no ledger entries are needed.
func (s *TradeService) CancelPurchase(ctx context.Context, id uuid.UUID, reason string) (*PurchaseResponse, error) {
	purchase, err := s.purchases.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := purchase.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.purchases.Save(ctx, purchase); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, purchase.GetDomainEvents())
	purchase.ClearDomainEvents()

	return ToPurchaseResponse(purchase), nil
}

// CreateSale creates a sale in DRAFT status with its line items
func (s *TradeService) CreateSale(ctx context.Context, ownerID uuid.UUID, req CreateSaleRequest) (*SaleResponse, error) {
	sale, err := trade.NewSale(ownerID, req.SaleNumber, req.CustomerID, req.CustomerName)
	if err != nil {
		return nil, err
	}
	if req.Remark != "" {
		sale.SetRemark(req.Remark)
	}
	for _, item := range req.Items {
		if _, err := sale.AddItem(item.ItemType, item.ItemID, item.ItemName, item.Quantity, item.UnitPrice); err != nil {
			return nil, err
		}
	}

	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale.GetDomainEvents())
	sale.ClearDomainEvents()

	return ToSaleResponse(sale), nil
}

// GetSale returns a sale by ID
func (s *TradeService) GetSale(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// ListSales returns sales matching the filter and the total count
func (s *TradeService) ListSales(ctx context.Context, filter shared.Filter) ([]SaleResponse, int64, error) {
	sales, err := s.sales.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.sales.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]SaleResponse, 0, len(sales))
	for i := range sales {
		responses = append(responses, *ToSaleResponse(&sales[i]))
	}
	return responses, total, nil
}

// SubmitSale moves a sale from DRAFT to ONGOING
func (s *TradeService) SubmitSale(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sale.Submit(); err != nil {
		return nil, err
	}
	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale.GetDomainEvents())
	sale.ClearDomainEvents()

	return ToSaleResponse(sale), nil
}

// FinishSale moves a sale from ONGOING to FINISHED and appends a SALE_OUT
// movement per line item in the same transaction. Insufficient stock on any
// line aborts the whole operation, including the status change.
func (s *TradeService) FinishSale(ctx context.Context, actorID, id uuid.UUID) (*SaleResponse, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos ledgerapp.TransactionalRepositories) error {
		var err error
		sale, err = repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := sale.Finish(); err != nil {
			return err
		}

		for _, item := range sale.Items {
			movement, err := ledger.NewStockMovement(
				ledger.MovementSaleOut, item.ItemType, item.ItemID,
				item.Quantity, ledger.SaleRef(sale.ID), actorID, "",
			)
			if err != nil {
				return err
			}
			if _, err := ledgerapp.AppendInScope(ctx, repos, movement); err != nil {
				return err
			}
		}

		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale.GetDomainEvents())
	sale.ClearDomainEvents()

	return ToSaleResponse(sale), nil
}

// CancelSale cancels a DRAFT or ONGOING sale
func (s *TradeService) CancelSale(ctx context.Context, id uuid.UUID, reason string) (*SaleResponse, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sale.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.sales.Save(ctx, sale); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale.GetDomainEvents())
	sale.ClearDomainEvents()

	return ToSaleResponse(sale), nil
}

// ReturnSale records the return of a FINISHED sale and appends a RETURN_IN
// movement per line item referencing the sale, all in one transaction.
func (s *TradeService) ReturnSale(ctx context.Context, actorID, id uuid.UUID) (*SaleResponse, error) {
	var sale *trade.Sale
	err := s.scope.Execute(ctx, func(repos ledgerapp.TransactionalRepositories) error {
		var err error
		sale, err = repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := sale.MarkReturned(); err != nil {
			return err
		}

		for _, item := range sale.Items {
			movement, err := ledger.NewStockMovement(
				ledger.MovementReturnIn, item.ItemType, item.ItemID,
				item.Quantity, ledger.ReturnRef(sale.ID), actorID, "",
			)
			if err != nil {
				return err
			}
			if _, err := ledgerapp.AppendInScope(ctx, repos, movement); err != nil {
				return err
			}
		}

		return repos.Sales().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale.GetDomainEvents())
	sale.ClearDomainEvents()

	return ToSaleResponse(sale), nil
}

func (s *TradeService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}
