package postgres

import (
	"context"
	"errors"

	"github.com/Dexuser/property-service/internal/platform/logger"
	"github.com/Dexuser/property-service/internal/property/domain"
	"gorm.io/gorm"
)

// CatalogRepository is a small generic gateway shared by the reference
// catalogs (PropertyType, SaleType, Improvement). The entity type carries its
// table mapping through gorm tags.
type CatalogRepository[T any] struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewCatalogRepository creates a catalog gateway for entity type T.
func NewCatalogRepository[T any](db *gorm.DB, log *logger.Logger) *CatalogRepository[T] {
	return &CatalogRepository[T]{db: db, logger: log.Named("CatalogRepository")}
}

func (r *CatalogRepository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).First(&entity, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCatalogNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *CatalogRepository[T]) List(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *CatalogRepository[T]) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCatalogNotFound
	}
	return nil
}
