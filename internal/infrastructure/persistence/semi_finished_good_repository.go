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

// GormSemiFinishedGoodRepository implements SemiFinishedGoodRepository using GORM
type GormSemiFinishedGoodRepository struct {
	db *gorm.DB
}

// NewGormSemiFinishedGoodRepository creates a new GormSemiFinishedGoodRepository
func NewGormSemiFinishedGoodRepository(db *gorm.DB) *GormSemiFinishedGoodRepository {
	return &GormSemiFinishedGoodRepository{db: db}
}

// FindByID finds a semi-finished good without its detail lines
func (r *GormSemiFinishedGoodRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.SemiFinishedGood, error) {
	var good catalog.SemiFinishedGood
	if err := r.db.WithContext(ctx).First(&good, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &good, nil
}

// FindByIDWithDetails finds a semi-finished good with its recipe lines and
// their raw materials loaded
func (r *GormSemiFinishedGoodRepository) FindByIDWithDetails(ctx context.Context, id uuid.UUID) (*catalog.SemiFinishedGood, error) {
	var good catalog.SemiFinishedGood
	if err := r.db.WithContext(ctx).
		Preload("Details").
		Preload("Details.RawMaterial").
		First(&good, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &good, nil
}

// FindAll finds all semi-finished goods with filtering
func (r *GormSemiFinishedGoodRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.SemiFinishedGood, error) {
	var goods []catalog.SemiFinishedGood
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.SemiFinishedGood{}), filter)
	if err := query.Find(&goods).Error; err != nil {
		return nil, err
	}
	return goods, nil
}

// Save creates or updates a semi-finished good and its detail lines. Detail
// lines are immutable after creation, so existing lines are only ever
// re-saved, never reconciled against a changed list.
func (r *GormSemiFinishedGoodRepository) Save(ctx context.Context, good *catalog.SemiFinishedGood) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Details").Save(good).Error; err != nil {
			return err
		}
		for i := range good.Details {
			good.Details[i].SemiFinishedGoodID = good.ID
			if err := tx.Save(&good.Details[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts semi-finished goods matching the filter
func (r *GormSemiFinishedGoodRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.SemiFinishedGood{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSemiFinishedGoodRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, CatalogSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormSemiFinishedGoodRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		}
	}

	return query
}

// Ensure GormSemiFinishedGoodRepository implements SemiFinishedGoodRepository
var _ catalog.SemiFinishedGoodRepository = (*GormSemiFinishedGoodRepository)(nil)
