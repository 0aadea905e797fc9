package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dexuser/property-service/internal/platform/logger"
	"github.com/Dexuser/property-service/internal/property/domain"
	"go.uber.org/zap"
)

// mediaCategory is the logical location under which property files are
// stored; the property id is the folder key within it.
const mediaCategory = "properties"

// EventPublisher emits lifecycle events after successful mutations. A publish
// failure is logged and never fails the enclosing operation.
type EventPublisher interface {
	PropertyCreated(ctx context.Context, property *domain.Property) error
	PropertyUpdated(ctx context.Context, property *domain.Property) error
	PropertyDeleted(ctx context.Context, propertyID uint) error
}

// Deps bundles the collaborators the engine orchestrates.
type Deps struct {
	Repo         domain.PropertyRepository
	Types        domain.CatalogRepository[domain.PropertyType]
	SaleTypes    domain.CatalogRepository[domain.SaleType]
	Improvements domain.CatalogRepository[domain.Improvement]
	Media        domain.MediaStore
	Codes        domain.CodeAllocator
	Agents       domain.AgentLookup
	Favorites    domain.FavoriteLookup
	Publisher    EventPublisher
	Logger       *logger.Logger
}

// PropertyUsecase implements the property listing engine: create, edit,
// filtered search, maintenance listing and delete with side effects.
type PropertyUsecase struct {
	repo         domain.PropertyRepository
	types        domain.CatalogRepository[domain.PropertyType]
	saleTypes    domain.CatalogRepository[domain.SaleType]
	improvements domain.CatalogRepository[domain.Improvement]
	media        domain.MediaStore
	codes        domain.CodeAllocator
	agents       domain.AgentLookup
	favorites    domain.FavoriteLookup
	publisher    EventPublisher
	logger       *logger.Logger
}

// NewPropertyUsecase wires the engine to its collaborators.
func NewPropertyUsecase(deps Deps) *PropertyUsecase {
	return &PropertyUsecase{
		repo:         deps.Repo,
		types:        deps.Types,
		saleTypes:    deps.SaleTypes,
		improvements: deps.Improvements,
		media:        deps.Media,
		codes:        deps.Codes,
		agents:       deps.Agents,
		favorites:    deps.Favorites,
		publisher:    deps.Publisher,
		logger:       deps.Logger.Named("PropertyUsecase"),
	}
}

// Create publishes a new listing: allocates a code, persists the property row
// (available, created now), stores and records the main image, then the
// additional images, then the improvement links. Database writes run in one
// transaction; media writes are sequenced explicitly and a media failure
// aborts the whole operation.
func (uc *PropertyUsecase) Create(ctx context.Context, in CreateInput) (uint, error) {
	uc.logger.Info("Creating property",
		zap.String("agent_id", in.AgentID),
		zap.Uint("property_type_id", in.PropertyTypeID),
		zap.Int("additional_images", len(in.AdditionalImages)),
		zap.Int("improvements", len(in.ImprovementIDs)))

	if err := in.Validate(); err != nil {
		return 0, err
	}
	if err := uc.checkReferences(ctx, in.PropertyTypeID, in.SaleTypeID, in.ImprovementIDs); err != nil {
		return 0, err
	}

	code, err := uc.codes.Next(ctx)
	if err != nil {
		uc.logger.Error("Code allocation failed", zap.Error(err))
		return 0, uc.classify(err)
	}

	property := &domain.Property{
		Code:           code,
		PropertyTypeID: in.PropertyTypeID,
		SaleTypeID:     in.SaleTypeID,
		Price:          in.Price,
		SizeInMeters:   in.SizeInMeters,
		Rooms:          in.Rooms,
		Bathrooms:      in.Bathrooms,
		Description:    in.Description,
		IsAvailable:    true,
		AgentID:        in.AgentID,
		CreatedAt:      time.Now().UTC(),
	}

	err = uc.repo.Transaction(ctx, func(repo domain.PropertyRepository) error {
		if err := repo.Create(ctx, property); err != nil {
			return err
		}

		path, err := uc.media.Store(ctx, *in.MainImage, property.ID, mediaCategory)
		if err != nil {
			return fmt.Errorf("%w: storing main image: %v", domain.ErrStorage, err)
		}
		if err := repo.AddImage(ctx, &domain.PropertyImage{PropertyID: property.ID, ImagePath: path, IsMain: true}); err != nil {
			return err
		}

		for _, file := range in.AdditionalImages {
			path, err := uc.media.Store(ctx, file, property.ID, mediaCategory)
			if err != nil {
				return fmt.Errorf("%w: storing image %q: %v", domain.ErrStorage, file.Name, err)
			}
			if err := repo.AddImage(ctx, &domain.PropertyImage{PropertyID: property.ID, ImagePath: path, IsMain: false}); err != nil {
				return err
			}
		}

		if len(in.ImprovementIDs) > 0 {
			return repo.ReplaceImprovements(ctx, property.ID, in.ImprovementIDs)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("Create property failed", zap.String("code", code), zap.Error(err))
		return 0, uc.classify(err)
	}

	uc.logger.Info("Property created", zap.Uint("property_id", property.ID), zap.String("code", code))
	uc.publishCreated(ctx, property)
	return property.ID, nil
}

// Edit overwrites the property's scalar fields and reconciles its owned
// collections: listed images are deleted (file and row), an optional new main
// image supersedes the current one, new additional images are appended, the
// main-image invariant is repaired, and the improvement set is fully replaced
// by the submitted selection.
func (uc *PropertyUsecase) Edit(ctx context.Context, in EditInput) (*domain.PropertyDetail, error) {
	uc.logger.Info("Editing property",
		zap.Uint("property_id", in.PropertyID),
		zap.Int("images_to_delete", len(in.DeleteImageIDs)),
		zap.Bool("new_main_image", in.NewMainImage != nil))

	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := uc.checkReferences(ctx, in.PropertyTypeID, in.SaleTypeID, in.ImprovementIDs); err != nil {
		return nil, err
	}

	property, err := uc.repo.FindByID(ctx, in.PropertyID)
	if err != nil {
		return nil, uc.classify(err)
	}

	err = uc.repo.Transaction(ctx, func(repo domain.PropertyRepository) error {
		property.Code = in.Code
		property.PropertyTypeID = in.PropertyTypeID
		property.SaleTypeID = in.SaleTypeID
		property.Price = in.Price
		property.SizeInMeters = in.SizeInMeters
		property.Rooms = in.Rooms
		property.Bathrooms = in.Bathrooms
		property.Description = in.Description
		if err := repo.Update(ctx, property); err != nil {
			return err
		}

		images := make([]domain.PropertyImage, len(property.Images))
		copy(images, property.Images)

		for _, imageID := range in.DeleteImageIDs {
			idx := indexOfImage(images, imageID)
			if idx < 0 {
				uc.logger.Warn("Image to delete not found on property",
					zap.Uint("property_id", property.ID), zap.Uint("image_id", imageID))
				continue
			}
			if _, err := uc.media.Delete(ctx, images[idx].ImagePath); err != nil {
				return fmt.Errorf("%w: deleting image %q: %v", domain.ErrStorage, images[idx].ImagePath, err)
			}
			if err := repo.RemoveImage(ctx, imageID); err != nil {
				return err
			}
			images = append(images[:idx], images[idx+1:]...)
		}

		if in.NewMainImage != nil && len(in.NewMainImage.Data) > 0 {
			var oldPath string
			if idx := mainImageIndex(images); idx >= 0 {
				oldPath = images[idx].ImagePath
			}
			path, err := uc.media.StoreReplacing(ctx, *in.NewMainImage, property.ID, mediaCategory, oldPath)
			if err != nil {
				return fmt.Errorf("%w: storing new main image: %v", domain.ErrStorage, err)
			}
			if idx := mainImageIndex(images); idx >= 0 {
				images[idx].IsMain = false
				if err := repo.UpdateImage(ctx, &images[idx]); err != nil {
					return err
				}
			}
			img := domain.PropertyImage{PropertyID: property.ID, ImagePath: path, IsMain: true}
			if err := repo.AddImage(ctx, &img); err != nil {
				return err
			}
			images = append(images, img)
		}

		for _, file := range in.AdditionalImages {
			path, err := uc.media.Store(ctx, file, property.ID, mediaCategory)
			if err != nil {
				return fmt.Errorf("%w: storing image %q: %v", domain.ErrStorage, file.Name, err)
			}
			img := domain.PropertyImage{PropertyID: property.ID, ImagePath: path, IsMain: false}
			if err := repo.AddImage(ctx, &img); err != nil {
				return err
			}
			images = append(images, img)
		}

		// Invariant repair: a property with images must have exactly one main
		// image. Promote the lowest-id survivor when the main was removed.
		if mainImageIndex(images) < 0 && len(images) > 0 {
			idx := lowestIDIndex(images)
			images[idx].IsMain = true
			if err := repo.UpdateImage(ctx, &images[idx]); err != nil {
				return err
			}
			uc.logger.Info("Promoted image to main",
				zap.Uint("property_id", property.ID), zap.Uint("image_id", images[idx].ID))
		}

		return repo.ReplaceImprovements(ctx, property.ID, in.ImprovementIDs)
	})
	if err != nil {
		uc.logger.Error("Edit property failed", zap.Uint("property_id", in.PropertyID), zap.Error(err))
		return nil, uc.classify(err)
	}

	updated, err := uc.repo.FindByID(ctx, in.PropertyID)
	if err != nil {
		return nil, uc.classify(err)
	}

	uc.logger.Info("Property updated", zap.Uint("property_id", updated.ID))
	uc.publishUpdated(ctx, updated)
	return detailOf(updated, nil), nil
}

// Delete removes the property row (images, links, offers, messages and
// favorite markers go with it by referential cascade) after removing every
// stored image file from the media store.
func (uc *PropertyUsecase) Delete(ctx context.Context, id uint) error {
	uc.logger.Info("Deleting property", zap.Uint("property_id", id))

	property, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return uc.classify(err)
	}

	for _, img := range property.Images {
		if _, err := uc.media.Delete(ctx, img.ImagePath); err != nil {
			return fmt.Errorf("%w: deleting image %q: %v", domain.ErrStorage, img.ImagePath, err)
		}
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return uc.classify(err)
	}

	uc.logger.Info("Property deleted", zap.Uint("property_id", id))
	uc.publishDeleted(ctx, id)
	return nil
}

// checkReferences verifies that the submitted catalog references exist.
// Missing references are boundary failures, not not-found conditions.
func (uc *PropertyUsecase) checkReferences(ctx context.Context, typeID, saleTypeID uint, improvementIDs []uint) error {
	var messages []string
	if _, err := uc.types.GetByID(ctx, typeID); err != nil {
		if !errors.Is(err, domain.ErrCatalogNotFound) {
			return uc.classify(err)
		}
		messages = append(messages, fmt.Sprintf("property type %d does not exist", typeID))
	}
	if _, err := uc.saleTypes.GetByID(ctx, saleTypeID); err != nil {
		if !errors.Is(err, domain.ErrCatalogNotFound) {
			return uc.classify(err)
		}
		messages = append(messages, fmt.Sprintf("sale type %d does not exist", saleTypeID))
	}
	for _, id := range improvementIDs {
		if _, err := uc.improvements.GetByID(ctx, id); err != nil {
			if !errors.Is(err, domain.ErrCatalogNotFound) {
				return uc.classify(err)
			}
			messages = append(messages, fmt.Sprintf("improvement %d does not exist", id))
		}
	}
	if len(messages) > 0 {
		return domain.NewValidationError(messages...)
	}
	return nil
}

// classify maps an arbitrary error onto the failure taxonomy. Already-tagged
// errors pass through; anything else becomes an unexpected failure so raw
// driver errors never escape the engine.
func (uc *PropertyUsecase) classify(err error) error {
	if err == nil {
		return nil
	}
	if domain.IsNotFound(err) || domain.IsValidation(err) ||
		errors.Is(err, domain.ErrDuplicateCode) || errors.Is(err, domain.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrUnexpected, err)
}

func (uc *PropertyUsecase) publishCreated(ctx context.Context, property *domain.Property) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PropertyCreated(ctx, property); err != nil {
		uc.logger.Warn("Failed to publish property.created event",
			zap.Uint("property_id", property.ID), zap.Error(err))
	}
}

func (uc *PropertyUsecase) publishUpdated(ctx context.Context, property *domain.Property) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PropertyUpdated(ctx, property); err != nil {
		uc.logger.Warn("Failed to publish property.updated event",
			zap.Uint("property_id", property.ID), zap.Error(err))
	}
}

func (uc *PropertyUsecase) publishDeleted(ctx context.Context, id uint) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PropertyDeleted(ctx, id); err != nil {
		uc.logger.Warn("Failed to publish property.deleted event",
			zap.Uint("property_id", id), zap.Error(err))
	}
}

func indexOfImage(images []domain.PropertyImage, id uint) int {
	for i := range images {
		if images[i].ID == id {
			return i
		}
	}
	return -1
}

func mainImageIndex(images []domain.PropertyImage) int {
	for i := range images {
		if images[i].IsMain {
			return i
		}
	}
	return -1
}

func lowestIDIndex(images []domain.PropertyImage) int {
	idx := 0
	for i := range images {
		if images[i].ID < images[idx].ID {
			idx = i
		}
	}
	return idx
}
