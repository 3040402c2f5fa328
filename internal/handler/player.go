package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/forgo/skirmish/api/internal/model"
)

// PlayerService defines the player operations the handler needs
type PlayerService interface {
	List(ctx context.Context) ([]*model.Player, error)
	Create(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error)
	Get(ctx context.Context, id string) (*model.Player, error)
	Update(ctx context.Context, id string, req *model.UpdatePlayerRequest) (*model.Player, error)
	Delete(ctx context.Context, id string) error
}

// PlayerHandler handles player HTTP requests
type PlayerHandler struct {
	svc PlayerService
	now func() time.Time
}

// PlayerHandlerConfig holds configuration for the player handler
type PlayerHandlerConfig struct {
	Service PlayerService
	// Now reports the time used to derive apdIsValid. Defaults to time.Now.
	Now func() time.Time
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(cfg PlayerHandlerConfig) *PlayerHandler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &PlayerHandler{svc: cfg.Service, now: now}
}

// RegisterRoutes registers player routes
func (h *PlayerHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /players", h.List)
	mux.HandleFunc("POST /players", h.Create)
	mux.HandleFunc("GET /players/{id}", h.Get)
	mux.HandleFunc("PATCH /players/{id}", h.Update)
	mux.HandleFunc("DELETE /players/{id}", h.Delete)
}

// List handles GET /players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.svc.List(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, "list players")
		return
	}
	WriteData(w, http.StatusOK, model.PlayerViews(players, h.now()))
}

// Create handles POST /players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePlayerRequest
	if pd := DecodeAndValidate(w, r, &req); pd != nil {
		WriteError(w, pd)
		return
	}

	p, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, r, err, "create player")
		return
	}
	WriteData(w, http.StatusCreated, p.View(h.now()))
}

// Get handles GET /players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteServiceError(w, r, err, "get player")
		return
	}
	WriteData(w, http.StatusOK, p.View(h.now()))
}

// Update handles PATCH /players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdatePlayerRequest
	if pd := DecodeAndValidate(w, r, &req); pd != nil {
		WriteError(w, pd)
		return
	}

	p, err := h.svc.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		WriteServiceError(w, r, err, "update player")
		return
	}
	WriteData(w, http.StatusOK, p.View(h.now()))
}

// Delete handles DELETE /players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		WriteServiceError(w, r, err, "delete player")
		return
	}
	WriteOK(w)
}
