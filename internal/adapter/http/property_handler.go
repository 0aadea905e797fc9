package http

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Dexuser/property-service/internal/platform/logger"
	"github.com/Dexuser/property-service/internal/platform/metrics"
	"github.com/Dexuser/property-service/internal/property/domain"
	"github.com/Dexuser/property-service/internal/property/usecase"
	"github.com/go-chi/chi/v5"
)

// 32 MiB parse budget for multipart uploads.
const maxUploadMemory = 32 << 20

// PropertyHandler exposes the engine over HTTP. It is deliberately thin: it
// parses requests, calls the engine and maps results to status codes.
type PropertyHandler struct {
	uc      *usecase.PropertyUsecase
	metrics *metrics.MetricsManager
	logger  *logger.Logger
}

func NewPropertyHandler(uc *usecase.PropertyUsecase, mm *metrics.MetricsManager, log *logger.Logger) *PropertyHandler {
	return &PropertyHandler{uc: uc, metrics: mm, logger: log.Named("PropertyHandler")}
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer h.observe("create", time.Now())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form: " + err.Error()})
		return
	}

	in := usecase.CreateInput{
		PropertyTypeID: formUint(r, "property_type_id"),
		SaleTypeID:     formUint(r, "sale_type_id"),
		Price:          formFloat(r, "price"),
		SizeInMeters:   formFloat(r, "size_in_meters"),
		Rooms:          formInt(r, "rooms"),
		Bathrooms:      formInt(r, "bathrooms"),
		Description:    r.FormValue("description"),
		AgentID:        r.FormValue("agent_id"),
		ImprovementIDs: formUintList(r, "improvement_ids"),
	}
	if file, ok := formFile(r, "main_image"); ok {
		in.MainImage = &file
	}
	in.AdditionalImages = formFiles(r, "images")

	id, err := h.uc.Create(r.Context(), in)
	if err != nil {
		h.fail(w, "create", err)
		return
	}
	h.metrics.PropertiesCreatedTotal.Inc()
	writeJSON(w, http.StatusCreated, map[string]uint{"id": id})
}

func (h *PropertyHandler) Edit(w http.ResponseWriter, r *http.Request) {
	defer h.observe("edit", time.Now())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form: " + err.Error()})
		return
	}

	in := usecase.EditInput{
		PropertyID:     pathUint(r, "id"),
		Code:           r.FormValue("code"),
		PropertyTypeID: formUint(r, "property_type_id"),
		SaleTypeID:     formUint(r, "sale_type_id"),
		Price:          formFloat(r, "price"),
		SizeInMeters:   formFloat(r, "size_in_meters"),
		Rooms:          formInt(r, "rooms"),
		Bathrooms:      formInt(r, "bathrooms"),
		Description:    r.FormValue("description"),
		DeleteImageIDs: formUintList(r, "delete_image_ids"),
		ImprovementIDs: formUintList(r, "improvement_ids"),
	}
	if file, ok := formFile(r, "main_image"); ok {
		in.NewMainImage = &file
	}
	in.AdditionalImages = formFiles(r, "images")

	detail, err := h.uc.Edit(r.Context(), in)
	if err != nil {
		h.fail(w, "edit", err)
		return
	}
	h.metrics.PropertyEditsTotal.Inc()
	writeJSON(w, http.StatusOK, detail)
}

func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	defer h.observe("search", time.Now())

	filter := domain.Filter{
		AgentID:        queryString(r, "agent_id"),
		PropertyTypeID: queryUint(r, "property_type_id"),
		MinPrice:       queryFloat(r, "min_price"),
		MaxPrice:       queryFloat(r, "max_price"),
		MinRooms:       queryInt(r, "rooms"),
		MinBathrooms:   queryInt(r, "bathrooms"),
		ClientID:       r.URL.Query().Get("client_id"),
		OnlyFavorites:  r.URL.Query().Get("only_favorites") == "true",
	}

	summaries, err := h.uc.Search(r.Context(), filter)
	if err != nil {
		h.fail(w, "search", err)
		return
	}
	h.metrics.PropertySearchesTotal.Inc()
	writeJSON(w, http.StatusOK, summaries)
}

func (h *PropertyHandler) MaintenanceList(w http.ResponseWriter, r *http.Request) {
	defer h.observe("maintenance_list", time.Now())

	details, err := h.uc.MaintenanceList(r.Context(), chi.URLParam(r, "agentID"))
	if err != nil {
		h.fail(w, "maintenance_list", err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *PropertyHandler) GetAvailable(w http.ResponseWriter, r *http.Request) {
	defer h.observe("get_available", time.Now())

	detail, err := h.uc.GetAvailableByID(r.Context(), pathUint(r, "id"))
	if err != nil {
		h.fail(w, "get_available", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *PropertyHandler) GetAny(w http.ResponseWriter, r *http.Request) {
	defer h.observe("get_any", time.Now())

	detail, err := h.uc.GetAnyByID(r.Context(), pathUint(r, "id"))
	if err != nil {
		h.fail(w, "get_any", err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	defer h.observe("delete", time.Now())

	if err := h.uc.Delete(r.Context(), pathUint(r, "id")); err != nil {
		h.fail(w, "delete", err)
		return
	}
	h.metrics.PropertyDeletesTotal.Inc()
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *PropertyHandler) DeleteCatalog(w http.ResponseWriter, r *http.Request) {
	defer h.observe("delete_catalog", time.Now())

	kind := domain.CatalogKind(chi.URLParam(r, "kind"))
	if err := h.uc.DeleteCatalogEntity(r.Context(), kind, pathUint(r, "id")); err != nil {
		h.fail(w, "delete_catalog", err)
		return
	}
	h.metrics.CatalogCascadesTotal.Inc()
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *PropertyHandler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	defer h.observe("list_catalog", time.Now())

	kind := domain.CatalogKind(chi.URLParam(r, "kind"))
	listings, err := h.uc.CatalogListings(r.Context(), kind)
	if err != nil {
		h.fail(w, "list_catalog", err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *PropertyHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	defer h.observe("list_agents", time.Now())

	listings, err := h.uc.ListAgents(r.Context())
	if err != nil {
		h.fail(w, "list_agents", err)
		return
	}
	writeJSON(w, http.StatusOK, listings)
}

func (h *PropertyHandler) fail(w http.ResponseWriter, operation string, err error) {
	h.metrics.APIErrorsTotal.WithLabelValues(operation, errorType(err)).Inc()
	writeError(w, err)
}

func (h *PropertyHandler) observe(operation string, start time.Time) {
	h.metrics.APIRequestLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// form/query parsing helpers

func pathUint(r *http.Request, name string) uint {
	v, _ := strconv.ParseUint(chi.URLParam(r, name), 10, 32)
	return uint(v)
}

func formUint(r *http.Request, name string) uint {
	v, _ := strconv.ParseUint(r.FormValue(name), 10, 32)
	return uint(v)
}

func formInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.FormValue(name))
	return v
}

func formFloat(r *http.Request, name string) float64 {
	v, _ := strconv.ParseFloat(r.FormValue(name), 64)
	return v
}

func formUintList(r *http.Request, name string) []uint {
	raw := r.FormValue(name)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(v))
	}
	return ids
}

func formFile(r *http.Request, name string) (domain.FileUpload, bool) {
	if r.MultipartForm == nil {
		return domain.FileUpload{}, false
	}
	headers := r.MultipartForm.File[name]
	if len(headers) == 0 {
		return domain.FileUpload{}, false
	}
	upload, err := readUpload(headers[0])
	if err != nil {
		return domain.FileUpload{}, false
	}
	return upload, true
}

func formFiles(r *http.Request, name string) []domain.FileUpload {
	if r.MultipartForm == nil {
		return nil
	}
	headers := r.MultipartForm.File[name]
	uploads := make([]domain.FileUpload, 0, len(headers))
	for _, header := range headers {
		upload, err := readUpload(header)
		if err != nil {
			continue
		}
		uploads = append(uploads, upload)
	}
	return uploads
}

func readUpload(header *multipart.FileHeader) (domain.FileUpload, error) {
	file, err := header.Open()
	if err != nil {
		return domain.FileUpload{}, err
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return domain.FileUpload{}, err
	}
	return domain.FileUpload{Name: header.Filename, Data: data}, nil
}

func queryString(r *http.Request, name string) *string {
	if v := r.URL.Query().Get(name); v != "" {
		return &v
	}
	return nil
}

func queryUint(r *http.Request, name string) *uint {
	if raw := r.URL.Query().Get(name); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 32); err == nil {
			u := uint(v)
			return &u
		}
	}
	return nil
}

func queryInt(r *http.Request, name string) *int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return &v
		}
	}
	return nil
}

func queryFloat(r *http.Request, name string) *float64 {
	if raw := r.URL.Query().Get(name); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return &v
		}
	}
	return nil
}
