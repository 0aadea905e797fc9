package domain

import "time"

// Property is the listing aggregate root. It owns its images and improvement
// links; offers, chat messages and favorite markers reference it from outside
// the aggregate and are removed by the database cascade on delete.
type Property struct {
	ID             uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Code           string  `gorm:"type:char(6);not null;uniqueIndex" json:"code"`
	PropertyTypeID uint    `gorm:"not null;index" json:"property_type_id"`
	SaleTypeID     uint    `gorm:"not null;index" json:"sale_type_id"`
	Price          float64 `gorm:"type:decimal(18,2);not null" json:"price"`
	SizeInMeters   float64 `gorm:"type:decimal(10,2);not null" json:"size_in_meters"`
	Rooms          int     `gorm:"not null" json:"rooms"`
	Bathrooms      int     `gorm:"not null" json:"bathrooms"`
	Description    string  `gorm:"type:text" json:"description"`
	IsAvailable    bool    `gorm:"not null;default:true;index" json:"is_available"`
	AgentID        string  `gorm:"type:varchar(64);not null;index" json:"agent_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_properties_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	PropertyType *PropertyType `gorm:"foreignKey:PropertyTypeID" json:"property_type,omitempty"`
	SaleType     *SaleType     `gorm:"foreignKey:SaleTypeID" json:"sale_type,omitempty"`

	Images       []PropertyImage           `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Improvements []PropertyImprovementLink `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"improvements,omitempty"`
	Favorites    []FavoriteProperty        `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Property) TableName() string {
	return "properties"
}

// MainImage returns the image flagged as main, or nil when none is flagged.
func (p *Property) MainImage() *PropertyImage {
	for i := range p.Images {
		if p.Images[i].IsMain {
			return &p.Images[i]
		}
	}
	return nil
}

// MainImagePath returns the stored path of the main image, empty when the
// property has no main image.
func (p *Property) MainImagePath() string {
	if img := p.MainImage(); img != nil {
		return img.ImagePath
	}
	return ""
}

// ImprovementIDs returns the improvement selection currently linked to the
// property.
func (p *Property) ImprovementIDs() []uint {
	ids := make([]uint, 0, len(p.Improvements))
	for _, link := range p.Improvements {
		ids = append(ids, link.ImprovementID)
	}
	return ids
}

// PropertyImage is a stored image of a property. At most one image per
// property carries IsMain=true; if the property has any image at all, exactly
// one must be main after a successful edit.
type PropertyImage struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID uint   `gorm:"not null;index" json:"property_id"`
	ImagePath  string `gorm:"type:text;not null" json:"image_path"`
	IsMain     bool   `gorm:"not null;default:false" json:"is_main"`
}

func (PropertyImage) TableName() string {
	return "property_images"
}

// PropertyImprovementLink is the many-to-many join row between a property and
// an improvement. The link set always mirrors the caller's last submitted
// selection exactly.
type PropertyImprovementLink struct {
	ID            uint `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID    uint `gorm:"not null;index:idx_property_improvement,unique" json:"property_id"`
	ImprovementID uint `gorm:"not null;index:idx_property_improvement,unique" json:"improvement_id"`

	Improvement *Improvement `gorm:"foreignKey:ImprovementID" json:"improvement,omitempty"`
}

func (PropertyImprovementLink) TableName() string {
	return "property_improvements"
}

// PropertyType is a shared catalog entity. The FK from properties is
// deliberately non-cascading; the engine bulk-deletes dependents explicitly
// before removing a catalog row.
type PropertyType struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (PropertyType) TableName() string {
	return "property_types"
}

// SaleType is a shared catalog entity (e.g. sale, rent).
type SaleType struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (SaleType) TableName() string {
	return "sale_types"
}

// Improvement is a reusable amenity tag (e.g. "pool") linked to properties
// many-to-many.
type Improvement struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Improvement) TableName() string {
	return "improvements"
}

// FavoriteProperty marks a property as favorited by a client. Written by the
// client-facing surface; the engine only performs existence checks on it.
// Rows are removed by the FK cascade when their property is deleted.
type FavoriteProperty struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PropertyID uint      `gorm:"not null;index:idx_favorite_property_user,unique" json:"property_id"`
	UserID     string    `gorm:"type:varchar(64);not null;index:idx_favorite_property_user,unique" json:"user_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FavoriteProperty) TableName() string {
	return "favorite_properties"
}

// CatalogKind selects which catalog a catalog-level operation targets.
type CatalogKind string

const (
	CatalogPropertyType CatalogKind = "property_type"
	CatalogSaleType     CatalogKind = "sale_type"
)

// AgentSummary is the public profile of a listing agent, looked up outside
// the property store.
type AgentSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	PhotoPath string `json:"photo_path"`
}

// FileUpload is an uploaded file handed to the media store.
type FileUpload struct {
	Name string
	Data []byte
}
