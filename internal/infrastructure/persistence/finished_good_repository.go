package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paintfactory/backend/internal/domain/catalog"
	"github.com/paintfactory/backend/internal/domain/shared"
)

// GormFinishedGoodRepository implements FinishedGoodRepository using GORM
type GormFinishedGoodRepository struct {
	db *gorm.DB
}

// NewGormFinishedGoodRepository creates a new GormFinishedGoodRepository
func NewGormFinishedGoodRepository(db *gorm.DB) *GormFinishedGoodRepository {
	return &GormFinishedGoodRepository{db: db}
}

// FindByID finds a finished good without its BOM
func (r *GormFinishedGoodRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.FinishedGood, error) {
	var good catalog.FinishedGood
	if err := r.db.WithContext(ctx).First(&good, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &good, nil
}

// FindByIDWithBOM finds a finished good with its full BOM tree loaded. The
// nested preload reaches two levels down so a semi-finished component carries
// its own raw material lines, which is the shape the cost rollup walks.
func (r *GormFinishedGoodRepository) FindByIDWithBOM(ctx context.Context, id uuid.UUID) (*catalog.FinishedGood, error) {
	var good catalog.FinishedGood
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.RawMaterial").
		Preload("Details.SemiFinishedGood").
		Preload("Details.SemiFinishedGood.Details").
		Preload("Details.SemiFinishedGood.Details.RawMaterial").
		First(&good, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &good, nil
}

// FindByProductionCode finds a finished good by its production code
func (r *GormFinishedGoodRepository) FindByProductionCode(ctx context.Context, code string) (*catalog.FinishedGood, error) {
	var good catalog.FinishedGood
	if err := r.db.WithContext(ctx).
		First(&good, "production_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &good, nil
}

// FindAll finds all finished goods with filtering
func (r *GormFinishedGoodRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.FinishedGood, error) {
	var goods []catalog.FinishedGood
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.FinishedGood{}), filter)
	if err := query.Find(&goods).Error; err != nil {
		return nil, err
	}
	return goods, nil
}

// Save creates or updates a finished good and its detail lines. The BOM is
// immutable after creation; only the good itself changes on later saves.
func (r *GormFinishedGoodRepository) Save(ctx context.Context, good *catalog.FinishedGood) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Details").Save(good).Error; err != nil {
			return err
		}
		for i := range good.Details {
			good.Details[i].FinishedGoodID = good.ID
			if err := tx.Save(&good.Details[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts finished goods matching the filter
func (r *GormFinishedGoodRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.FinishedGood{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormFinishedGoodRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, FinishedGoodSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormFinishedGoodRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("production_code ILIKE ? OR name ILIKE ? OR batch_number ILIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "grade":
			query = query.Where("grade = ?", value)
		case "batch_number":
			query = query.Where("batch_number = ?", value)
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		}
	}

	return query
}

// Ensure GormFinishedGoodRepository implements FinishedGoodRepository
var _ catalog.FinishedGoodRepository = (*GormFinishedGoodRepository)(nil)
