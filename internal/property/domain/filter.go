package domain

import "time"

// Filter is the search specification for public discovery. All supplied
// predicates are combined with AND; a nil field imposes no constraint.
// ClientID is used only for favorite marking and the OnlyFavorites
// restriction, never as a match predicate on the property itself.
type Filter struct {
	AgentID        *string
	PropertyTypeID *uint
	MinPrice       *float64
	MaxPrice       *float64
	MinRooms       *int
	MinBathrooms   *int

	ClientID      string
	OnlyFavorites bool
}

// PropertySummary is the enriched row returned by public search.
type PropertySummary struct {
	ID            uint      `json:"id"`
	Code          string    `json:"code"`
	TypeName      string    `json:"type_name"`
	SaleTypeName  string    `json:"sale_type_name"`
	Price         float64   `json:"price"`
	SizeInMeters  float64   `json:"size_in_meters"`
	Rooms         int       `json:"rooms"`
	Bathrooms     int       `json:"bathrooms"`
	AgentID       string    `json:"agent_id"`
	MainImagePath string    `json:"main_image_path"`
	IsFavorite    bool      `json:"is_favorite"`
	CreatedAt     time.Time `json:"created_at"`
}

// PropertyDetail is the full reconstructed view of a property, including the
// improvement name list and, for the public single-property path, the owning
// agent's profile.
type PropertyDetail struct {
	ID           uint            `json:"id"`
	Code         string          `json:"code"`
	TypeName     string          `json:"type_name"`
	SaleTypeName string          `json:"sale_type_name"`
	Price        float64         `json:"price"`
	SizeInMeters float64         `json:"size_in_meters"`
	Rooms        int             `json:"rooms"`
	Bathrooms    int             `json:"bathrooms"`
	Description  string          `json:"description"`
	IsAvailable  bool            `json:"is_available"`
	AgentID      string          `json:"agent_id"`
	Images       []PropertyImage `json:"images"`
	Improvements []string        `json:"improvements"`
	Agent        *AgentSummary   `json:"agent,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AgentListing is the derived agent-plus-property-count projection.
type AgentListing struct {
	Agent         AgentSummary `json:"agent"`
	PropertyCount int64        `json:"property_count"`
}

// CatalogListing is the derived catalog-entity-plus-dependent-count
// projection used by type/sale-type management screens.
type CatalogListing struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	PropertyCount int64  `json:"property_count"`
}
