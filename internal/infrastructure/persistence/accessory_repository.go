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

// GormPaintAccessoryRepository implements PaintAccessoryRepository using GORM
type GormPaintAccessoryRepository struct {
	db *gorm.DB
}

// NewGormPaintAccessoryRepository creates a new GormPaintAccessoryRepository
func NewGormPaintAccessoryRepository(db *gorm.DB) *GormPaintAccessoryRepository {
	return &GormPaintAccessoryRepository{db: db}
}

// FindByID finds an accessory by its ID
func (r *GormPaintAccessoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.PaintAccessory, error) {
	var accessory catalog.PaintAccessory
	if err := r.db.WithContext(ctx).First(&accessory, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &accessory, nil
}

// FindAll finds all accessories with filtering
func (r *GormPaintAccessoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.PaintAccessory, error) {
	var accessories []catalog.PaintAccessory
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.PaintAccessory{}), filter)
	if err := query.Find(&accessories).Error; err != nil {
		return nil, err
	}
	return accessories, nil
}

// Save creates or updates an accessory
func (r *GormPaintAccessoryRepository) Save(ctx context.Context, accessory *catalog.PaintAccessory) error {
	return r.db.WithContext(ctx).Save(accessory).Error
}

// Count counts accessories matching the filter
func (r *GormPaintAccessoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.PaintAccessory{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPaintAccessoryRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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

func (r *GormPaintAccessoryRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.TrimSpace(filter.Search) + "%"
		query = query.Where("name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		}
	}

	return query
}

// Ensure GormPaintAccessoryRepository implements PaintAccessoryRepository
var _ catalog.PaintAccessoryRepository = (*GormPaintAccessoryRepository)(nil)
