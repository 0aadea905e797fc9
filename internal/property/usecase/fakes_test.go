package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Dexuser/property-service/internal/platform/logger"
	"github.com/Dexuser/property-service/internal/property/domain"
)

// memStore is the shared state behind the in-memory fakes, so the repository,
// catalog and favorite fakes observe one consistent world.
type memStore struct {
	nextPropertyID uint
	nextImageID    uint
	nextLinkID     uint

	properties   map[uint]*domain.Property
	images       map[uint]*domain.PropertyImage
	links        map[uint]*domain.PropertyImprovementLink
	types        map[uint]domain.PropertyType
	saleTypes    map[uint]domain.SaleType
	improvements map[uint]domain.Improvement
	favorites    map[string]map[uint]bool
}

func newMemStore() *memStore {
	return &memStore{
		properties:   map[uint]*domain.Property{},
		images:       map[uint]*domain.PropertyImage{},
		links:        map[uint]*domain.PropertyImprovementLink{},
		types:        map[uint]domain.PropertyType{},
		saleTypes:    map[uint]domain.SaleType{},
		improvements: map[uint]domain.Improvement{},
		favorites:    map[string]map[uint]bool{},
	}
}

func (s *memStore) imagesOf(propertyID uint) []*domain.PropertyImage {
	var out []*domain.PropertyImage
	for _, img := range s.images {
		if img.PropertyID == propertyID {
			out = append(out, img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *memStore) linksOf(propertyID uint) []*domain.PropertyImprovementLink {
	var out []*domain.PropertyImprovementLink
	for _, link := range s.links {
		if link.PropertyID == propertyID {
			out = append(out, link)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// aggregate reconstructs a property the way the real repository does with its
// preloads.
func (s *memStore) aggregate(id uint) *domain.Property {
	stored, ok := s.properties[id]
	if !ok {
		return nil
	}
	property := *stored
	property.Images = nil
	property.Improvements = nil
	for _, img := range s.imagesOf(id) {
		property.Images = append(property.Images, *img)
	}
	for _, stored := range s.linksOf(id) {
		link := *stored
		if improvement, ok := s.improvements[link.ImprovementID]; ok {
			link.Improvement = &improvement
		}
		property.Improvements = append(property.Improvements, link)
	}
	if t, ok := s.types[property.PropertyTypeID]; ok {
		property.PropertyType = &t
	}
	if st, ok := s.saleTypes[property.SaleTypeID]; ok {
		property.SaleType = &st
	}
	return &property
}

func (s *memStore) deleteProperty(id uint) {
	delete(s.properties, id)
	for imgID, img := range s.images {
		if img.PropertyID == id {
			delete(s.images, imgID)
		}
	}
	for linkID, link := range s.links {
		if link.PropertyID == id {
			delete(s.links, linkID)
		}
	}
	for _, set := range s.favorites {
		delete(set, id)
	}
}

type fakeRepo struct {
	store *memStore
}

func (r *fakeRepo) Create(_ context.Context, property *domain.Property) error {
	for _, existing := range r.store.properties {
		if existing.Code == property.Code {
			return fmt.Errorf("%w: code %s", domain.ErrDuplicateCode, property.Code)
		}
	}
	r.store.nextPropertyID++
	property.ID = r.store.nextPropertyID
	stored := *property
	stored.Images = nil
	stored.Improvements = nil
	r.store.properties[property.ID] = &stored
	return nil
}

func (r *fakeRepo) Update(_ context.Context, property *domain.Property) error {
	if _, ok := r.store.properties[property.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	stored := *property
	stored.Images = nil
	stored.Improvements = nil
	r.store.properties[property.ID] = &stored
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.store.properties[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	r.store.deleteProperty(id)
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uint) (*domain.Property, error) {
	property := r.store.aggregate(id)
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}
	return property, nil
}

func (r *fakeRepo) FindAvailableByID(_ context.Context, id uint) (*domain.Property, error) {
	property := r.store.aggregate(id)
	if property == nil || !property.IsAvailable {
		return nil, domain.ErrPropertyNotFound
	}
	return property, nil
}

func (r *fakeRepo) FindByFilter(_ context.Context, filter domain.Filter) ([]*domain.Property, error) {
	var matches []*domain.Property
	for id := range r.store.properties {
		property := r.store.aggregate(id)
		if !property.IsAvailable {
			continue
		}
		if filter.AgentID != nil && property.AgentID != *filter.AgentID {
			continue
		}
		if filter.PropertyTypeID != nil && property.PropertyTypeID != *filter.PropertyTypeID {
			continue
		}
		if filter.MinPrice != nil && property.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && property.Price > *filter.MaxPrice {
			continue
		}
		if filter.MinRooms != nil && property.Rooms < *filter.MinRooms {
			continue
		}
		if filter.MinBathrooms != nil && property.Bathrooms < *filter.MinBathrooms {
			continue
		}
		if filter.OnlyFavorites && !r.store.favorites[filter.ClientID][property.ID] {
			continue
		}
		matches = append(matches, property)
	}
	sortNewestFirst(matches)
	return matches, nil
}

func (r *fakeRepo) FindByAgent(_ context.Context, agentID string) ([]*domain.Property, error) {
	var matches []*domain.Property
	for id := range r.store.properties {
		property := r.store.aggregate(id)
		if property.IsAvailable && property.AgentID == agentID {
			matches = append(matches, property)
		}
	}
	sortNewestFirst(matches)
	return matches, nil
}

func (r *fakeRepo) FindByCatalog(_ context.Context, kind domain.CatalogKind, catalogID uint) ([]*domain.Property, error) {
	var matches []*domain.Property
	for id := range r.store.properties {
		property := r.store.aggregate(id)
		if matchesCatalog(property, kind, catalogID) {
			matches = append(matches, property)
		}
	}
	sortNewestFirst(matches)
	return matches, nil
}

func (r *fakeRepo) CountByAgent(_ context.Context, agentID string) (int64, error) {
	var count int64
	for _, property := range r.store.properties {
		if property.IsAvailable && property.AgentID == agentID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) CountByCatalog(_ context.Context, kind domain.CatalogKind, catalogID uint) (int64, error) {
	var count int64
	for _, property := range r.store.properties {
		if matchesCatalog(property, kind, catalogID) {
			count++
		}
	}
	return count, nil
}

func (r *fakeRepo) AddImage(_ context.Context, image *domain.PropertyImage) error {
	r.store.nextImageID++
	image.ID = r.store.nextImageID
	stored := *image
	r.store.images[image.ID] = &stored
	return nil
}

func (r *fakeRepo) UpdateImage(_ context.Context, image *domain.PropertyImage) error {
	if _, ok := r.store.images[image.ID]; !ok {
		return errors.New("image not found")
	}
	stored := *image
	r.store.images[image.ID] = &stored
	return nil
}

func (r *fakeRepo) RemoveImage(_ context.Context, imageID uint) error {
	delete(r.store.images, imageID)
	return nil
}

func (r *fakeRepo) ReplaceImprovements(_ context.Context, propertyID uint, improvementIDs []uint) error {
	for linkID, link := range r.store.links {
		if link.PropertyID == propertyID {
			delete(r.store.links, linkID)
		}
	}
	for _, improvementID := range improvementIDs {
		r.store.nextLinkID++
		r.store.links[r.store.nextLinkID] = &domain.PropertyImprovementLink{
			ID:            r.store.nextLinkID,
			PropertyID:    propertyID,
			ImprovementID: improvementID,
		}
	}
	return nil
}

func (r *fakeRepo) Transaction(_ context.Context, fn func(domain.PropertyRepository) error) error {
	return fn(r)
}

func matchesCatalog(property *domain.Property, kind domain.CatalogKind, catalogID uint) bool {
	switch kind {
	case domain.CatalogPropertyType:
		return property.PropertyTypeID == catalogID
	case domain.CatalogSaleType:
		return property.SaleTypeID == catalogID
	}
	return false
}

func sortNewestFirst(properties []*domain.Property) {
	sort.Slice(properties, func(i, j int) bool {
		if properties[i].CreatedAt.Equal(properties[j].CreatedAt) {
			return properties[i].ID > properties[j].ID
		}
		return properties[i].CreatedAt.After(properties[j].CreatedAt)
	})
}

type fakeCatalog[T any] struct {
	get func(id uint) (T, bool)
	del func(id uint) bool
	all func() []T
}

func (c *fakeCatalog[T]) GetByID(_ context.Context, id uint) (*T, error) {
	entity, ok := c.get(id)
	if !ok {
		return nil, domain.ErrCatalogNotFound
	}
	return &entity, nil
}

func (c *fakeCatalog[T]) List(_ context.Context) ([]T, error) {
	return c.all(), nil
}

func (c *fakeCatalog[T]) Delete(_ context.Context, id uint) error {
	if !c.del(id) {
		return domain.ErrCatalogNotFound
	}
	return nil
}

type fakeMedia struct {
	files      map[string]bool
	deleted    []string
	counter    int
	failStore  bool
	failDelete bool
}

func newFakeMedia() *fakeMedia {
	return &fakeMedia{files: map[string]bool{}}
}

func (m *fakeMedia) Store(_ context.Context, file domain.FileUpload, ownerID uint, category string) (string, error) {
	if m.failStore {
		return "", errors.New("object storage unavailable")
	}
	m.counter++
	path := fmt.Sprintf("%s/%d/%d-%s", category, ownerID, m.counter, file.Name)
	m.files[path] = true
	return path, nil
}

func (m *fakeMedia) StoreReplacing(ctx context.Context, file domain.FileUpload, ownerID uint, category string, oldPath string) (string, error) {
	path, err := m.Store(ctx, file, ownerID, category)
	if err != nil {
		return "", err
	}
	if oldPath != "" {
		delete(m.files, oldPath)
		m.deleted = append(m.deleted, oldPath)
	}
	return path, nil
}

func (m *fakeMedia) Delete(_ context.Context, path string) (bool, error) {
	if m.failDelete {
		return false, errors.New("object storage unavailable")
	}
	existed := m.files[path]
	delete(m.files, path)
	m.deleted = append(m.deleted, path)
	return existed, nil
}

type fakeCodes struct {
	next int
}

func (c *fakeCodes) Next(_ context.Context) (string, error) {
	c.next++
	return fmt.Sprintf("%06d", c.next), nil
}

type fakeAgents struct {
	agents map[string]domain.AgentSummary
}

func (a *fakeAgents) GetByID(_ context.Context, id string) (*domain.AgentSummary, error) {
	agent, ok := a.agents[id]
	if !ok {
		return nil, domain.ErrAgentNotFound
	}
	return &agent, nil
}

func (a *fakeAgents) List(_ context.Context) ([]domain.AgentSummary, error) {
	var out []domain.AgentSummary
	for _, agent := range a.agents {
		out = append(out, agent)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeFavorites struct {
	store *memStore
}

func (f *fakeFavorites) Exists(_ context.Context, propertyID uint, userID string) (bool, error) {
	return f.store.favorites[userID][propertyID], nil
}

type fakePublisher struct {
	created int
	updated int
	deleted int
}

func (p *fakePublisher) PropertyCreated(context.Context, *domain.Property) error {
	p.created++
	return nil
}

func (p *fakePublisher) PropertyUpdated(context.Context, *domain.Property) error {
	p.updated++
	return nil
}

func (p *fakePublisher) PropertyDeleted(context.Context, uint) error {
	p.deleted++
	return nil
}

type fixture struct {
	store  *memStore
	repo   *fakeRepo
	media  *fakeMedia
	codes  *fakeCodes
	agents *fakeAgents
	pub    *fakePublisher
	uc     *PropertyUsecase
}

func newFixture() *fixture {
	store := newMemStore()
	repo := &fakeRepo{store: store}
	media := newFakeMedia()
	codes := &fakeCodes{}
	agents := &fakeAgents{agents: map[string]domain.AgentSummary{}}
	pub := &fakePublisher{}

	types := &fakeCatalog[domain.PropertyType]{
		get: func(id uint) (domain.PropertyType, bool) { t, ok := store.types[id]; return t, ok },
		del: func(id uint) bool {
			_, ok := store.types[id]
			delete(store.types, id)
			return ok
		},
		all: func() []domain.PropertyType { return catalogValues(store.types) },
	}
	saleTypes := &fakeCatalog[domain.SaleType]{
		get: func(id uint) (domain.SaleType, bool) { t, ok := store.saleTypes[id]; return t, ok },
		del: func(id uint) bool {
			_, ok := store.saleTypes[id]
			delete(store.saleTypes, id)
			return ok
		},
		all: func() []domain.SaleType { return catalogValues(store.saleTypes) },
	}
	improvements := &fakeCatalog[domain.Improvement]{
		get: func(id uint) (domain.Improvement, bool) { t, ok := store.improvements[id]; return t, ok },
		del: func(id uint) bool {
			_, ok := store.improvements[id]
			delete(store.improvements, id)
			return ok
		},
		all: func() []domain.Improvement { return catalogValues(store.improvements) },
	}

	uc := NewPropertyUsecase(Deps{
		Repo:         repo,
		Types:        types,
		SaleTypes:    saleTypes,
		Improvements: improvements,
		Media:        media,
		Codes:        codes,
		Agents:       agents,
		Favorites:    &fakeFavorites{store: store},
		Publisher:    pub,
		Logger:       logger.Nop(),
	})

	return &fixture{store: store, repo: repo, media: media, codes: codes, agents: agents, pub: pub, uc: uc}
}

func catalogValues[T any](entries map[uint]T) []T {
	var ids []uint
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, entries[id])
	}
	return out
}

// seedCatalogs installs the reference data used across tests.
func (f *fixture) seedCatalogs() {
	f.store.types[1] = domain.PropertyType{ID: 1, Name: "House"}
	f.store.types[2] = domain.PropertyType{ID: 2, Name: "Apartment"}
	f.store.saleTypes[1] = domain.SaleType{ID: 1, Name: "Sale"}
	f.store.saleTypes[2] = domain.SaleType{ID: 2, Name: "Rent"}
	f.store.improvements[1] = domain.Improvement{ID: 1, Name: "Pool"}
	f.store.improvements[2] = domain.Improvement{ID: 2, Name: "Garage"}
	f.store.improvements[3] = domain.Improvement{ID: 3, Name: "Garden"}
}

func (f *fixture) favorite(userID string, propertyID uint) {
	if f.store.favorites[userID] == nil {
		f.store.favorites[userID] = map[uint]bool{}
	}
	f.store.favorites[userID][propertyID] = true
}

func upload(name string) domain.FileUpload {
	return domain.FileUpload{Name: name, Data: []byte("image-bytes-" + name)}
}

func uploadPtr(name string) *domain.FileUpload {
	u := upload(name)
	return &u
}

// createInput returns a valid create payload owned by agent.
func createInput(agent string) CreateInput {
	return CreateInput{
		PropertyTypeID:   1,
		SaleTypeID:       1,
		Price:            250,
		SizeInMeters:     120,
		Rooms:            3,
		Bathrooms:        2,
		Description:      "bright corner house",
		AgentID:          agent,
		MainImage:        uploadPtr("main.jpg"),
		AdditionalImages: []domain.FileUpload{upload("a.jpg"), upload("b.jpg")},
		ImprovementIDs:   []uint{1, 2},
	}
}

// editInputFor builds an edit payload that keeps the property's current
// scalar values.
func editInputFor(property *domain.Property) EditInput {
	return EditInput{
		PropertyID:     property.ID,
		Code:           property.Code,
		PropertyTypeID: property.PropertyTypeID,
		SaleTypeID:     property.SaleTypeID,
		Price:          property.Price,
		SizeInMeters:   property.SizeInMeters,
		Rooms:          property.Rooms,
		Bathrooms:      property.Bathrooms,
		Description:    property.Description,
		ImprovementIDs: property.ImprovementIDs(),
	}
}
