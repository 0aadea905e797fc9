package usecase

import (
	"fmt"

	"github.com/Dexuser/property-service/internal/property/domain"
)

// CreateInput carries everything needed to publish a new listing. The main
// image is required; additional images and improvements are optional.
type CreateInput struct {
	PropertyTypeID uint
	SaleTypeID     uint
	Price          float64
	SizeInMeters   float64
	Rooms          int
	Bathrooms      int
	Description    string
	AgentID        string

	MainImage        *domain.FileUpload
	AdditionalImages []domain.FileUpload
	ImprovementIDs   []uint
}

// Validate enforces the boundary rules for create. Violations are collected
// into a single ValidationError rather than failing on the first.
func (in CreateInput) Validate() error {
	messages := validateScalars(in.PropertyTypeID, in.SaleTypeID, in.Price, in.SizeInMeters, in.Rooms, in.Bathrooms)
	if in.AgentID == "" {
		messages = append(messages, "agent id is required")
	}
	if in.MainImage == nil || len(in.MainImage.Data) == 0 {
		messages = append(messages, "a main image is required")
	}
	if len(messages) > 0 {
		return domain.NewValidationError(messages...)
	}
	return nil
}

// EditInput carries the full edit payload. ImprovementIDs is the complete
// desired selection, not a diff; DeleteImageIDs names existing image rows to
// remove.
type EditInput struct {
	PropertyID     uint
	Code           string
	PropertyTypeID uint
	SaleTypeID     uint
	Price          float64
	SizeInMeters   float64
	Rooms          int
	Bathrooms      int
	Description    string

	DeleteImageIDs   []uint
	NewMainImage     *domain.FileUpload
	AdditionalImages []domain.FileUpload
	ImprovementIDs   []uint
}

// Validate enforces the boundary rules for edit.
func (in EditInput) Validate() error {
	messages := validateScalars(in.PropertyTypeID, in.SaleTypeID, in.Price, in.SizeInMeters, in.Rooms, in.Bathrooms)
	if in.PropertyID == 0 {
		messages = append(messages, "property id is required")
	}
	if !isListingCode(in.Code) {
		messages = append(messages, "listing code must be exactly 6 digits")
	}
	if len(messages) > 0 {
		return domain.NewValidationError(messages...)
	}
	return nil
}

// isListingCode reports whether code is a zero-padded 6-digit listing code.
func isListingCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for i := 0; i < len(code); i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}

func validateScalars(typeID, saleTypeID uint, price, size float64, rooms, bathrooms int) []string {
	var messages []string
	if typeID == 0 {
		messages = append(messages, "property type is required")
	}
	if saleTypeID == 0 {
		messages = append(messages, "sale type is required")
	}
	if price <= 0 {
		messages = append(messages, fmt.Sprintf("price must be positive, got %v", price))
	}
	if size <= 0 {
		messages = append(messages, fmt.Sprintf("size in meters must be positive, got %v", size))
	}
	if rooms <= 0 {
		messages = append(messages, fmt.Sprintf("rooms must be positive, got %d", rooms))
	}
	if bathrooms <= 0 {
		messages = append(messages, fmt.Sprintf("bathrooms must be positive, got %d", bathrooms))
	}
	return messages
}
