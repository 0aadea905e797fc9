package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dexuser/property-service/internal/platform/logger"
	"github.com/Dexuser/property-service/internal/property/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PropertyRepository is the gorm-backed persistence gateway for the Property
// aggregate.
type PropertyRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

// NewPropertyRepository creates a PropertyRepository bound to db.
func NewPropertyRepository(db *gorm.DB, log *logger.Logger) *PropertyRepository {
	return &PropertyRepository{db: db, logger: log.Named("PropertyRepository")}
}

// withAggregate preloads the owned collections and catalog names so callers
// always receive a fully reconstructed aggregate.
func withAggregate(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Images").
		Preload("Improvements.Improvement").
		Preload("PropertyType").
		Preload("SaleType")
}

func (r *PropertyRepository) Create(ctx context.Context, property *domain.Property) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.logger.Warn("Duplicate listing code on insert", zap.String("code", property.Code))
			return fmt.Errorf("%w: code %s", domain.ErrDuplicateCode, property.Code)
		}
		return err
	}
	return nil
}

func (r *PropertyRepository) Update(ctx context.Context, property *domain.Property) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(property).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: code %s", domain.ErrDuplicateCode, property.Code)
	}
	return err
}

func (r *PropertyRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Property{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id uint) (*domain.Property, error) {
	var property domain.Property
	err := withAggregate(r.db.WithContext(ctx)).First(&property, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepository) FindAvailableByID(ctx context.Context, id uint) (*domain.Property, error) {
	var property domain.Property
	err := withAggregate(r.db.WithContext(ctx)).
		Where("properties.is_available = ?", true).
		First(&property, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func (r *PropertyRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Property, error) {
	query := withAggregate(r.db.WithContext(ctx)).
		Where("properties.is_available = ?", true)
	query = applyConditions(query, filterConditions(filter))

	var properties []*domain.Property
	err := query.Order("properties.created_at DESC").Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PropertyRepository) FindByAgent(ctx context.Context, agentID string) ([]*domain.Property, error) {
	var properties []*domain.Property
	err := withAggregate(r.db.WithContext(ctx)).
		Where("properties.agent_id = ? AND properties.is_available = ?", agentID, true).
		Order("properties.created_at DESC").
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PropertyRepository) FindByCatalog(ctx context.Context, kind domain.CatalogKind, catalogID uint) ([]*domain.Property, error) {
	column, err := catalogColumn(kind)
	if err != nil {
		return nil, err
	}
	var properties []*domain.Property
	err = withAggregate(r.db.WithContext(ctx)).
		Where(column+" = ?", catalogID).
		Find(&properties).Error
	if err != nil {
		return nil, err
	}
	return properties, nil
}

func (r *PropertyRepository) CountByAgent(ctx context.Context, agentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Property{}).
		Where("agent_id = ? AND is_available = ?", agentID, true).
		Count(&count).Error
	return count, err
}

func (r *PropertyRepository) CountByCatalog(ctx context.Context, kind domain.CatalogKind, catalogID uint) (int64, error) {
	column, err := catalogColumn(kind)
	if err != nil {
		return 0, err
	}
	var count int64
	err = r.db.WithContext(ctx).Model(&domain.Property{}).
		Where(column+" = ?", catalogID).
		Count(&count).Error
	return count, err
}

func (r *PropertyRepository) AddImage(ctx context.Context, image *domain.PropertyImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *PropertyRepository) UpdateImage(ctx context.Context, image *domain.PropertyImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *PropertyRepository) RemoveImage(ctx context.Context, imageID uint) error {
	return r.db.WithContext(ctx).Delete(&domain.PropertyImage{}, imageID).Error
}

// ReplaceImprovements deletes every link for the property and reinserts the
// submitted selection. A full replace, not a diff: the final set always
// equals the submission.
func (r *PropertyRepository) ReplaceImprovements(ctx context.Context, propertyID uint, improvementIDs []uint) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("property_id = ?", propertyID).Delete(&domain.PropertyImprovementLink{}).Error; err != nil {
		return err
	}
	if len(improvementIDs) == 0 {
		return nil
	}
	links := make([]domain.PropertyImprovementLink, 0, len(improvementIDs))
	for _, id := range improvementIDs {
		links = append(links, domain.PropertyImprovementLink{PropertyID: propertyID, ImprovementID: id})
	}
	return tx.Create(&links).Error
}

// Transaction runs fn against a repository bound to one database
// transaction.
func (r *PropertyRepository) Transaction(ctx context.Context, fn func(domain.PropertyRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PropertyRepository{db: tx, logger: r.logger})
	})
}

func catalogColumn(kind domain.CatalogKind) (string, error) {
	switch kind {
	case domain.CatalogPropertyType:
		return "properties.property_type_id", nil
	case domain.CatalogSaleType:
		return "properties.sale_type_id", nil
	default:
		return "", fmt.Errorf("unknown catalog kind %q", kind)
	}
}
