package usecase

import "github.com/Dexuser/property-service/internal/property/domain"

// Explicit mapping functions from the aggregate to its read views, one per
// view shape.

func summaryOf(property *domain.Property, isFavorite bool) domain.PropertySummary {
	summary := domain.PropertySummary{
		ID:            property.ID,
		Code:          property.Code,
		Price:         property.Price,
		SizeInMeters:  property.SizeInMeters,
		Rooms:         property.Rooms,
		Bathrooms:     property.Bathrooms,
		AgentID:       property.AgentID,
		MainImagePath: property.MainImagePath(),
		IsFavorite:    isFavorite,
		CreatedAt:     property.CreatedAt,
	}
	if property.PropertyType != nil {
		summary.TypeName = property.PropertyType.Name
	}
	if property.SaleType != nil {
		summary.SaleTypeName = property.SaleType.Name
	}
	return summary
}

func detailOf(property *domain.Property, agent *domain.AgentSummary) *domain.PropertyDetail {
	detail := &domain.PropertyDetail{
		ID:           property.ID,
		Code:         property.Code,
		Price:        property.Price,
		SizeInMeters: property.SizeInMeters,
		Rooms:        property.Rooms,
		Bathrooms:    property.Bathrooms,
		Description:  property.Description,
		IsAvailable:  property.IsAvailable,
		AgentID:      property.AgentID,
		Images:       property.Images,
		Improvements: improvementNames(property),
		Agent:        agent,
		CreatedAt:    property.CreatedAt,
	}
	if property.PropertyType != nil {
		detail.TypeName = property.PropertyType.Name
	}
	if property.SaleType != nil {
		detail.SaleTypeName = property.SaleType.Name
	}
	return detail
}

func improvementNames(property *domain.Property) []string {
	names := make([]string, 0, len(property.Improvements))
	for _, link := range property.Improvements {
		if link.Improvement != nil {
			names = append(names, link.Improvement.Name)
		}
	}
	return names
}
