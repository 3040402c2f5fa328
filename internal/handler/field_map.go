package handler

import (
	"context"
	"net/http"

	"github.com/forgo/skirmish/api/internal/model"
)

// FieldMapService defines the field map operations the handler needs
type FieldMapService interface {
	List(ctx context.Context) ([]*model.FieldMap, error)
	Create(ctx context.Context, req *model.CreateFieldMapRequest) (*model.FieldMap, error)
	Get(ctx context.Context, id string) (*model.FieldMap, error)
	Update(ctx context.Context, id string, req *model.UpdateFieldMapRequest) (*model.FieldMap, error)
	Delete(ctx context.Context, id string) error
}

// FieldMapHandler handles field map HTTP requests
type FieldMapHandler struct {
	svc FieldMapService
}

// NewFieldMapHandler creates a new field map handler
func NewFieldMapHandler(svc FieldMapService) *FieldMapHandler {
	return &FieldMapHandler{svc: svc}
}

// RegisterRoutes registers field map routes
func (h *FieldMapHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /field-map", h.List)
	mux.HandleFunc("POST /field-map", h.Create)
	mux.HandleFunc("GET /field-map/{id}", h.Get)
	mux.HandleFunc("PATCH /field-map/{id}", h.Update)
	mux.HandleFunc("DELETE /field-map/{id}", h.Delete)
}

// List handles GET /field-map. The optional type query parameter is
// accepted for compatibility and does not filter.
func (h *FieldMapHandler) List(w http.ResponseWriter, r *http.Request) {
	maps, err := h.svc.List(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, "list field maps")
		return
	}
	WriteData(w, http.StatusOK, maps)
}

// Create handles POST /field-map
func (h *FieldMapHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateFieldMapRequest
	if pd := DecodeAndValidate(w, r, &req); pd != nil {
		WriteError(w, pd)
		return
	}

	fm, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, r, err, "create field map")
		return
	}
	WriteData(w, http.StatusCreated, fm)
}

// Get handles GET /field-map/{id}
func (h *FieldMapHandler) Get(w http.ResponseWriter, r *http.Request) {
	fm, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, r, err, "get field map")
		return
	}
	WriteData(w, http.StatusOK, fm)
}

// Update handles PATCH /field-map/{id}
func (h *FieldMapHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateFieldMapRequest
	if pd := DecodeAndValidate(w, r, &req); pd != nil {
		WriteError(w, pd)
		return
	}

	fm, err := h.svc.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		WriteServiceError(w, r, err, "update field map")
		return
	}
	WriteData(w, http.StatusOK, fm)
}

// Delete handles DELETE /field-map/{id}
func (h *FieldMapHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, r, err, "delete field map")
		return
	}
	WriteOK(w)
}
