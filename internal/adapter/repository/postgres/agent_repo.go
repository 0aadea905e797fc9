package postgres

import (
	"context"
	"errors"

	"github.com/Dexuser/property-service/internal/platform/logger"
	"github.com/Dexuser/property-service/internal/property/domain"
	"gorm.io/gorm"
)

// agentRecord mirrors the identity system's agent projection. Agent data is
// owned elsewhere; the engine only reads public profiles from it.
type agentRecord struct {
	ID        string `gorm:"type:varchar(64);primaryKey"`
	FirstName string `gorm:"type:varchar(100)"`
	LastName  string `gorm:"type:varchar(100)"`
	Email     string `gorm:"type:varchar(255)"`
	Phone     string `gorm:"type:varchar(50)"`
	PhotoPath string `gorm:"type:text"`
}

func (agentRecord) TableName() string {
	return "agents"
}

// AgentRepository implements domain.AgentLookup.
type AgentRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewAgentRepository(db *gorm.DB, log *logger.Logger) *AgentRepository {
	return &AgentRepository{db: db, logger: log.Named("AgentRepository")}
}

func (r *AgentRepository) GetByID(ctx context.Context, id string) (*domain.AgentSummary, error) {
	var record agentRecord
	err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, err
	}
	summary := toAgentSummary(record)
	return &summary, nil
}

func (r *AgentRepository) List(ctx context.Context) ([]domain.AgentSummary, error) {
	var records []agentRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	summaries := make([]domain.AgentSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, toAgentSummary(record))
	}
	return summaries, nil
}

func toAgentSummary(record agentRecord) domain.AgentSummary {
	return domain.AgentSummary{
		ID:        record.ID,
		FirstName: record.FirstName,
		LastName:  record.LastName,
		Email:     record.Email,
		Phone:     record.Phone,
		PhotoPath: record.PhotoPath,
	}
}
