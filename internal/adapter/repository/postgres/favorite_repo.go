package postgres

import (
	"context"
	"errors"

	"github.com/Dexuser/property-service/internal/platform/logger"
	"github.com/Dexuser/property-service/internal/property/domain"
	"gorm.io/gorm"
)

// FavoriteRepository answers favorite-marker existence checks for the search
// path and keeps the write pair used by the client-facing surface.
type FavoriteRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewFavoriteRepository(db *gorm.DB, log *logger.Logger) *FavoriteRepository {
	return &FavoriteRepository{db: db, logger: log.Named("FavoriteRepository")}
}

// Exists reports whether userID holds a favorite marker for the property.
func (r *FavoriteRepository) Exists(ctx context.Context, propertyID uint, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FavoriteProperty{}).
		Where("property_id = ? AND user_id = ?", propertyID, userID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Add inserts a favorite marker; adding an existing marker is a no-op.
func (r *FavoriteRepository) Add(ctx context.Context, propertyID uint, userID string) error {
	err := r.db.WithContext(ctx).Create(&domain.FavoriteProperty{PropertyID: propertyID, UserID: userID}).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// Remove deletes a favorite marker if present.
func (r *FavoriteRepository) Remove(ctx context.Context, propertyID uint, userID string) error {
	return r.db.WithContext(ctx).
		Where("property_id = ? AND user_id = ?", propertyID, userID).
		Delete(&domain.FavoriteProperty{}).Error
}
