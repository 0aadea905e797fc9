package usecase

import (
	"context"
	"fmt"

	"github.com/Dexuser/property-service/internal/property/domain"
	"go.uber.org/zap"
)

// DeleteCatalogEntity removes a PropertyType or SaleType together with every
// property that still references it. The dependent properties are deleted
// first, through the same delete path as a direct property delete so their
// stored files are cleaned up, then the catalog row itself. The FK is
// deliberately non-cascading at the catalog level; this explicit two-step
// sequence is the only mass-deletion path.
func (uc *PropertyUsecase) DeleteCatalogEntity(ctx context.Context, kind domain.CatalogKind, id uint) error {
	uc.logger.Info("Deleting catalog entity", zap.String("kind", string(kind)), zap.Uint("id", id))

	switch kind {
	case domain.CatalogPropertyType:
		if _, err := uc.types.GetByID(ctx, id); err != nil {
			return uc.classify(err)
		}
	case domain.CatalogSaleType:
		if _, err := uc.saleTypes.GetByID(ctx, id); err != nil {
			return uc.classify(err)
		}
	default:
		return domain.NewValidationError(fmt.Sprintf("unknown catalog kind %q", kind))
	}

	dependents, err := uc.repo.FindByCatalog(ctx, kind, id)
	if err != nil {
		return uc.classify(err)
	}
	for _, property := range dependents {
		if err := uc.Delete(ctx, property.ID); err != nil {
			uc.logger.Error("Cascade delete of dependent property failed",
				zap.Uint("property_id", property.ID), zap.Error(err))
			return err
		}
	}

	switch kind {
	case domain.CatalogPropertyType:
		err = uc.types.Delete(ctx, id)
	case domain.CatalogSaleType:
		err = uc.saleTypes.Delete(ctx, id)
	}
	if err != nil {
		return uc.classify(err)
	}

	uc.logger.Info("Catalog entity deleted",
		zap.String("kind", string(kind)), zap.Uint("id", id),
		zap.Int("cascaded_properties", len(dependents)))
	return nil
}

// ListAgents returns every agent with the count of their properties. The
// count is recomputed per call; nothing is cached.
func (uc *PropertyUsecase) ListAgents(ctx context.Context) ([]domain.AgentListing, error) {
	agents, err := uc.agents.List(ctx)
	if err != nil {
		return nil, uc.classify(err)
	}

	listings := make([]domain.AgentListing, 0, len(agents))
	for _, agent := range agents {
		count, err := uc.repo.CountByAgent(ctx, agent.ID)
		if err != nil {
			return nil, uc.classify(err)
		}
		listings = append(listings, domain.AgentListing{Agent: agent, PropertyCount: count})
	}
	return listings, nil
}

// CatalogListings returns the catalog entries of the given kind, each with
// its dependent-property count for the management screens.
func (uc *PropertyUsecase) CatalogListings(ctx context.Context, kind domain.CatalogKind) ([]domain.CatalogListing, error) {
	var listings []domain.CatalogListing

	switch kind {
	case domain.CatalogPropertyType:
		entries, err := uc.types.List(ctx)
		if err != nil {
			return nil, uc.classify(err)
		}
		for _, entry := range entries {
			listings = append(listings, domain.CatalogListing{ID: entry.ID, Name: entry.Name, Description: entry.Description})
		}
	case domain.CatalogSaleType:
		entries, err := uc.saleTypes.List(ctx)
		if err != nil {
			return nil, uc.classify(err)
		}
		for _, entry := range entries {
			listings = append(listings, domain.CatalogListing{ID: entry.ID, Name: entry.Name, Description: entry.Description})
		}
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("unknown catalog kind %q", kind))
	}

	for i := range listings {
		count, err := uc.repo.CountByCatalog(ctx, kind, listings[i].ID)
		if err != nil {
			return nil, uc.classify(err)
		}
		listings[i].PropertyCount = count
	}
	return listings, nil
}
