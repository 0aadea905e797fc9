package domain

import "context"

// PropertyRepository is the persistence gateway for the Property aggregate
// and its owned collections. FindByID and FindAvailableByID return the
// aggregate with images, improvement links and catalog names preloaded.
type PropertyRepository interface {
	Create(ctx context.Context, property *Property) error
	Update(ctx context.Context, property *Property) error
	Delete(ctx context.Context, id uint) error

	// FindByID ignores availability; it serves administrative flows such as
	// edit and delete.
	FindByID(ctx context.Context, id uint) (*Property, error)
	// FindAvailableByID treats an unavailable property as absent.
	FindAvailableByID(ctx context.Context, id uint) (*Property, error)

	// FindByFilter returns available properties matching every supplied
	// predicate, most-recently-created first.
	FindByFilter(ctx context.Context, filter Filter) ([]*Property, error)
	// FindByAgent returns the agent's available properties, newest first.
	FindByAgent(ctx context.Context, agentID string) ([]*Property, error)
	// FindByCatalog returns every property referencing the catalog entity,
	// regardless of availability.
	FindByCatalog(ctx context.Context, kind CatalogKind, catalogID uint) ([]*Property, error)

	CountByAgent(ctx context.Context, agentID string) (int64, error)
	CountByCatalog(ctx context.Context, kind CatalogKind, catalogID uint) (int64, error)

	AddImage(ctx context.Context, image *PropertyImage) error
	UpdateImage(ctx context.Context, image *PropertyImage) error
	RemoveImage(ctx context.Context, imageID uint) error

	// ReplaceImprovements deletes every existing link for the property, then
	// inserts one link per submitted improvement id.
	ReplaceImprovements(ctx context.Context, propertyID uint, improvementIDs []uint) error

	// Transaction runs fn against a repository bound to a single database
	// transaction; fn returning an error rolls every write back.
	Transaction(ctx context.Context, fn func(repo PropertyRepository) error) error
}

// CatalogRepository is the uniform read/delete gateway shared by the
// reference catalogs (PropertyType, SaleType, Improvement).
type CatalogRepository[T any] interface {
	GetByID(ctx context.Context, id uint) (*T, error)
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id uint) error
}

// MediaStore persists uploaded files outside the database. Calls are
// synchronous; the engine defines no retry policy.
type MediaStore interface {
	// Store saves the file under the owner's logical folder and returns the
	// storage-relative path.
	Store(ctx context.Context, file FileUpload, ownerID uint, category string) (string, error)
	// StoreReplacing saves the file and removes the superseded file at
	// oldPath as part of the same upload. An empty oldPath behaves as Store.
	StoreReplacing(ctx context.Context, file FileUpload, ownerID uint, category string, oldPath string) (string, error)
	// Delete removes a previously stored file, reporting whether it existed.
	Delete(ctx context.Context, path string) (bool, error)
}

// CodeAllocator hands out globally unique, monotonically increasing listing
// codes as zero-padded 6-digit strings. The engine never derives codes itself.
type CodeAllocator interface {
	Next(ctx context.Context) (string, error)
}

// AgentLookup resolves agent public profiles; agent data lives outside the
// property store.
type AgentLookup interface {
	GetByID(ctx context.Context, id string) (*AgentSummary, error)
	List(ctx context.Context) ([]AgentSummary, error)
}

// FavoriteLookup answers whether a client holds a favorite marker for a
// property. Evaluated as an existence check, never a row-multiplying join.
type FavoriteLookup interface {
	Exists(ctx context.Context, propertyID uint, userID string) (bool, error)
}
