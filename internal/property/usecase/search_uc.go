package usecase

import (
	"context"
	"errors"

	"github.com/Dexuser/property-service/internal/property/domain"
	"go.uber.org/zap"
)

// Search answers public discovery queries: available properties matching
// every supplied predicate, newest first, enriched with catalog names, the
// main image path and a per-client favorite flag. An empty match is an empty
// slice, never a failure.
func (uc *PropertyUsecase) Search(ctx context.Context, filter domain.Filter) ([]domain.PropertySummary, error) {
	uc.logger.Debug("Searching properties",
		zap.String("client_id", filter.ClientID),
		zap.Bool("only_favorites", filter.OnlyFavorites))

	properties, err := uc.repo.FindByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("Search failed", zap.Error(err))
		return nil, uc.classify(err)
	}

	summaries := make([]domain.PropertySummary, 0, len(properties))
	for _, property := range properties {
		isFavorite := false
		if filter.ClientID != "" {
			isFavorite, err = uc.favorites.Exists(ctx, property.ID, filter.ClientID)
			if err != nil {
				return nil, uc.classify(err)
			}
		}
		summaries = append(summaries, summaryOf(property, isFavorite))
	}
	return summaries, nil
}

// MaintenanceList is the owner view: the agent's available properties with
// full nested detail, including the improvement name list, newest first.
func (uc *PropertyUsecase) MaintenanceList(ctx context.Context, agentID string) ([]domain.PropertyDetail, error) {
	uc.logger.Debug("Listing agent properties", zap.String("agent_id", agentID))

	properties, err := uc.repo.FindByAgent(ctx, agentID)
	if err != nil {
		uc.logger.Error("Maintenance listing failed", zap.String("agent_id", agentID), zap.Error(err))
		return nil, uc.classify(err)
	}

	details := make([]domain.PropertyDetail, 0, len(properties))
	for _, property := range properties {
		details = append(details, *detailOf(property, nil))
	}
	return details, nil
}

// GetAvailableByID returns the property only while it is an active listing;
// sold or absent properties are a not-found condition on this path. The
// owning agent's public profile is attached by a separate lookup.
func (uc *PropertyUsecase) GetAvailableByID(ctx context.Context, id uint) (*domain.PropertyDetail, error) {
	property, err := uc.repo.FindAvailableByID(ctx, id)
	if err != nil {
		return nil, uc.classify(err)
	}

	agent, err := uc.agents.GetByID(ctx, property.AgentID)
	if err != nil && !errors.Is(err, domain.ErrAgentNotFound) {
		return nil, uc.classify(err)
	}
	return detailOf(property, agent), nil
}

// GetAnyByID returns the property regardless of availability. It serves
// administrative and maintenance contexts such as edit and delete screens.
func (uc *PropertyUsecase) GetAnyByID(ctx context.Context, id uint) (*domain.PropertyDetail, error) {
	property, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, uc.classify(err)
	}
	return detailOf(property, nil), nil
}
