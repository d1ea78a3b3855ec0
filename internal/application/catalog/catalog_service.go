package catalog

import (
	"context"

	"github.com/google/uuid"

	ledgerapp "github.com/paintfactory/backend/internal/application/ledger"
	"github.com/paintfactory/backend/internal/domain/catalog"
	"github.com/paintfactory/backend/internal/domain/ledger"
	"github.com/paintfactory/backend/internal/domain/shared"
)

// CatalogService handles catalog item management. On-hand quantities are
// never written here directly; they change only through the stock ledger,
// which is also how producing a semi-finished batch moves its materials.
type CatalogService struct {
	scope        ledgerapp.TransactionScope
	rawMaterials catalog.RawMaterialRepository
	accessories  catalog.PaintAccessoryRepository
	semiFinished catalog.SemiFinishedGoodRepository

	eventPublisher shared.EventPublisher
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	scope ledgerapp.TransactionScope,
	rawMaterials catalog.RawMaterialRepository,
	accessories catalog.PaintAccessoryRepository,
	semiFinished catalog.SemiFinishedGoodRepository,
) *CatalogService {
	return &CatalogService{
		scope:        scope,
		rawMaterials: rawMaterials,
		accessories:  accessories,
		semiFinished: semiFinished,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *CatalogService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateRawMaterial registers a raw material
func (s *CatalogService) CreateRawMaterial(ctx context.Context, ownerID uuid.UUID, req CreateRawMaterialRequest) (*RawMaterialResponse, error) {
	material, err := catalog.NewRawMaterial(ownerID, req.SupplierID, req.Name, req.SupplierPrice, req.SellingPrice)
	if err != nil {
		return nil, err
	}
	if err := s.rawMaterials.Save(ctx, material); err != nil {
		return nil, err
	}
	return ToRawMaterialResponse(material), nil
}

// GetRawMaterial returns a raw material by ID
func (s *CatalogService) GetRawMaterial(ctx context.Context, id uuid.UUID) (*RawMaterialResponse, error) {
	material, err := s.rawMaterials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToRawMaterialResponse(material), nil
}

// ListRawMaterials returns raw materials matching the filter and the total count
func (s *CatalogService) ListRawMaterials(ctx context.Context, filter shared.Filter) ([]RawMaterialResponse, int64, error) {
	materials, err := s.rawMaterials.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.rawMaterials.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]RawMaterialResponse, 0, len(materials))
	for i := range materials {
		responses = append(responses, *ToRawMaterialResponse(&materials[i]))
	}
	return responses, total, nil
}

// ChangeRawMaterialPrices updates a raw material's prices. A supplier price
// change raises the event that invalidates cached cost rollups.
func (s *CatalogService) ChangeRawMaterialPrices(ctx context.Context, id uuid.UUID, req ChangePricesRequest) (*RawMaterialResponse, error) {
	material, err := s.rawMaterials.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SupplierPrice != nil {
		if err := material.ChangeSupplierPrice(*req.SupplierPrice); err != nil {
			return nil, err
		}
	}
	if req.SellingPrice != nil {
		if err := material.ChangeSellingPrice(*req.SellingPrice); err != nil {
			return nil, err
		}
	}

	if err := s.rawMaterials.Save(ctx, material); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, material.GetDomainEvents())
	material.ClearDomainEvents()

	return ToRawMaterialResponse(material), nil
}

// CreatePaintAccessory registers a paint accessory
func (s *CatalogService) CreatePaintAccessory(ctx context.Context, ownerID uuid.UUID, req CreatePaintAccessoryRequest) (*PaintAccessoryResponse, error) {
	accessory, err := catalog.NewPaintAccessory(ownerID, req.SupplierID, req.Name, req.SupplierPrice, req.SellingPrice)
	if err != nil {
		return nil, err
	}
	if err := s.accessories.Save(ctx, accessory); err != nil {
		return nil, err
	}
	return ToPaintAccessoryResponse(accessory), nil
}

// GetPaintAccessory returns an accessory by ID
func (s *CatalogService) GetPaintAccessory(ctx context.Context, id uuid.UUID) (*PaintAccessoryResponse, error) {
	accessory, err := s.accessories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPaintAccessoryResponse(accessory), nil
}

// ListPaintAccessories returns accessories matching the filter and the total count
func (s *CatalogService) ListPaintAccessories(ctx context.Context, filter shared.Filter) ([]PaintAccessoryResponse, int64, error) {
	accessories, err := s.accessories.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.accessories.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PaintAccessoryResponse, 0, len(accessories))
	for i := range accessories {
		responses = append(responses, *ToPaintAccessoryResponse(&accessories[i]))
	}
	return responses, total, nil
}

// CreateSemiFinishedGood records the production of a semi-finished batch:
// the good is saved with its recipe and the stock moves in the same unit of
// work, PRODUCTION_OUT per consumed raw material and PRODUCTION_IN for the
// batch output. Insufficient raw-material stock aborts the whole creation.
func (s *CatalogService) CreateSemiFinishedGood(ctx context.Context, ownerID uuid.UUID, req CreateSemiFinishedGoodRequest) (*SemiFinishedGoodResponse, error) {
	lines := make([]catalog.BomLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, catalog.BomLine{
			RawMaterialID: line.RawMaterialID,
			Quantity:      line.Quantity,
		})
	}

	good, err := catalog.NewSemiFinishedGood(ownerID, req.Name, req.Quantity, lines)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos ledgerapp.TransactionalRepositories) error {
		if err := repos.SemiFinishedGoods().Save(ctx, good); err != nil {
			return err
		}

		for i := range good.Details {
			detail := &good.Details[i]
			movement, err := ledger.NewStockMovement(
				ledger.MovementProductionOut, ledger.ItemRawMaterial, detail.RawMaterialID,
				detail.Quantity, ledger.ProductionRef(good.ID), ownerID, "",
			)
			if err != nil {
				return err
			}
			if _, err := ledgerapp.AppendInScope(ctx, repos, movement); err != nil {
				return err
			}
		}

		output, err := ledger.NewStockMovement(
			ledger.MovementProductionIn, ledger.ItemSemiFinishedGood, good.ID,
			req.Quantity, ledger.ProductionRef(good.ID), ownerID, "",
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

	return ToSemiFinishedGoodResponse(good), nil
}

// GetSemiFinishedGood returns a semi-finished good with its recipe and the
// referenced raw materials loaded, so the response carries the recipe cost.
func (s *CatalogService) GetSemiFinishedGood(ctx context.Context, id uuid.UUID) (*SemiFinishedGoodResponse, error) {
	good, err := s.semiFinished.FindByIDWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSemiFinishedGoodResponse(good), nil
}

// ListSemiFinishedGoods returns semi-finished goods matching the filter and
// the total count
func (s *CatalogService) ListSemiFinishedGoods(ctx context.Context, filter shared.Filter) ([]SemiFinishedGoodResponse, int64, error) {
	goods, err := s.semiFinished.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.semiFinished.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	responses := make([]SemiFinishedGoodResponse, 0, len(goods))
	for i := range goods {
		responses = append(responses, *ToSemiFinishedGoodResponse(&goods[i]))
	}
	return responses, total, nil
}

func (s *CatalogService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Errors are logged by the event bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}
