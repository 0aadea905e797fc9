package postgres

import (
	"fmt"

	"github.com/Dexuser/property-service/internal/platform/logger"
	"github.com/Dexuser/property-service/internal/property/domain"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the database and migrates the schema. TranslateError is
// enabled so unique-index violations surface as gorm.ErrDuplicatedKey.
func Connect(dsn string, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.AutoMigrate(
		&domain.PropertyType{},
		&domain.SaleType{},
		&domain.Improvement{},
		&agentRecord{},
		&domain.Property{},
		&domain.PropertyImage{},
		&domain.PropertyImprovementLink{},
		&domain.FavoriteProperty{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Info("Connected to PostgreSQL and migrated schema", zap.Bool("dsn_present", dsn != ""))
	return db, nil
}
