package production

import (
	"context"
	"errors"

	"github.com/google/uuid"

	ledgerapp "github.com/paintfactory/backend/internal/application/ledger"
	"github.com/paintfactory/backend/internal/domain/catalog"
	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
)

// ProductionService registers production runs. A run creates the finished
// good with its immutable BOM and moves stock in one unit of work: every
// consumed component is taken out with PRODUCTION_OUT and the output is put
// in with PRODUCTION_IN. Insufficient input stock aborts the whole run.
type ProductionService struct {
	scope          ledgerapp.TransactionScope
	finishedGoods  catalog.FinishedGoodRepository
	eventPublisher shared.EventPublisher
}

// NewProductionService creates a new ProductionService
func NewProductionService(scope ledgerapp.TransactionScope, finishedGoods catalog.FinishedGoodRepository) *ProductionService {
	return &ProductionService{scope: scope, finishedGoods: finishedGoods}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// RecordProduction registers a production run
func (s *ProductionService) RecordProduction(ctx context.Context, ownerID, actorID uuid.UUID, req RecordProductionRequest) (*FinishedGoodResponse, error) {
	lines := make([]catalog.ComponentLine, 0, len(req.Components))
	for _, component := range req.Components {
		lines = append(lines, catalog.ComponentLine{
			Kind:     component.Kind,
			ItemID:   component.ItemID,
			Quantity: component.Quantity,
		})
	}

	good, err := catalog.NewFinishedGood(
		ownerID, req.ProductionCode, req.Name, req.ProductionDate,
		req.BatchNumber, req.Grade, req.Quantity, req.SellingPrice, lines,
	)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos ledgerapp.TransactionalRepositories) error {
		if _, err := repos.FinishedGoods().FindByProductionCode(ctx, req.ProductionCode); err == nil {
			return shared.NewDomainError("DUPLICATE_PRODUCTION_CODE", "Production code already exists: "+req.ProductionCode)
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}

		if err := repos.FinishedGoods().Save(ctx, good); err != nil {
			return err
		}

		for i := range good.Details {
			detail := &good.Details[i]
			movement, err := ledger.NewStockMovement(
				ledger.MovementProductionOut, componentItemType(detail.Kind), detail.ComponentID(),
				detail.Quantity, ledger.ProductionRef(good.ID), actorID, "",
			)
			if err != nil {
				return err
			}
			if _, err := ledgerapp.AppendInScope(ctx, repos, movement); err != nil {
				return err
			}
		}

		output, err := ledger.NewStockMovement(
			ledger.MovementProductionIn, ledger.ItemFinishedGood, good.ID,
			req.Quantity, ledger.ProductionRef(good.ID), actorID, "",
		)
		if err != nil {
			return err
		}
		balance, err := ledgerapp.AppendInScope(ctx, repos, output)
		if err != nil {
			return err
		}
		good.Quantity = balance

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishCreated(ctx, good)

	return ToFinishedGoodResponse(good), nil
}

// GetFinishedGood returns a production run with its full BOM loaded
func (s *ProductionService) GetFinishedGood(ctx context.Context, id uuid.UUID) (*FinishedGoodResponse, error) {
	good, err := s.finishedGoods.FindByIDWithBOM(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToFinishedGoodResponse(good), nil
}

// ListFinishedGoods returns production runs matching the filter and the
// total count
func (s *ProductionService) ListFinishedGoods(ctx context.Context, filter shared.Filter) ([]FinishedGoodResponse, int64, error) {
	goods, err := s.finishedGoods.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.finishedGoods.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]FinishedGoodResponse, 0, len(goods))
	for i := range goods {
		responses = append(responses, *ToFinishedGoodResponse(&goods[i]))
	}
	return responses, total, nil
}

func componentItemType(kind catalog.ComponentKind) ledger.ItemType {
	if kind == catalog.ComponentSemiFinished {
		return ledger.ItemSemiFinishedGood
	}
	return ledger.ItemRawMaterial
}

func (s *ProductionService) publishCreated(ctx context.Context, good *catalog.FinishedGood) {
	if s.eventPublisher == nil {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, catalog.NewFinishedGoodCreatedEvent(good, good.Quantity))
}
