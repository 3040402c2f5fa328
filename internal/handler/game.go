package handler

import (
	"context"
	"net/http"

	"github.com/forgo/skirmish/api/internal/model"
)

// GameService defines the game operations the handler needs
type GameService interface {
	List(ctx context.Context) ([]*model.Game, error)
	Create(ctx context.Context, req *model.CreateGameRequest) (*model.Game, error)
	Get(ctx context.Context, id string) (*model.Game, error)
	Update(ctx context.Context, id string, req *model.UpdateGameRequest) (*model.Game, error)
	Delete(ctx context.Context, id string) error
	GetSettings(ctx context.Context, id string) (*model.GameSettings, error)
	ReplaceSettings(ctx context.Context, id string, req *model.UpdateGameSettingsRequest) (*model.GameSettings, error)
	SearchByDevice(ctx context.Context, deviceID string) ([]model.DeviceAssignment, error)
}

// SettingsReplacedResponse acknowledges a settings replacement
type SettingsReplacedResponse struct {
	OK     bool          `json:"ok"`
	Groups []model.Group `json:"groups"`
}

// GameHandler handles game HTTP requests
type GameHandler struct {
	svc GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(svc GameService) *GameHandler {
	return &GameHandler{svc: svc}
}

// RegisterRoutes registers game routes. The device search route is served
// separately under an open CORS policy, see RegisterDeviceRoutes.
func (h *GameHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /games", h.List)
	mux.HandleFunc("POST /games", h.Create)
	mux.HandleFunc("GET /games/{gameId}", h.Get)
	mux.HandleFunc("PATCH /games/{gameId}", h.Update)
	mux.HandleFunc("DELETE /games/{gameId}", h.Delete)
	mux.HandleFunc("GET /games/{gameId}/settings", h.GetSettings)
	mux.HandleFunc("PUT /games/{gameId}/settings", h.ReplaceSettings)
}

// RegisterDeviceRoutes registers the routes called by field devices
func (h *GameHandler) RegisterDeviceRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /games/search", h.Search)
}

// List handles GET /games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.svc.List(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, "list games")
		return
	}
	WriteData(w, http.StatusOK, games)
}

// Create handles POST /games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateGameRequest
	if pd := DecodeAndValidate(w, r, &req); pd != nil {
		WriteError(w, pd)
		return
	}

	g, err := h.svc.Create(r.Context(), &req)
	if err != nil {
		WriteServiceError(w, r, err, "create game")
		return
	}
	WriteData(w, http.StatusCreated, g)
}

// Get handles GET /games/{gameId}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.Get(r.Context(), r.PathValue("gameId"))
	if err != nil {
		WriteServiceError(w, r, err, "get game")
		return
	}
	WriteData(w, http.StatusOK, g)
}

// Update handles PATCH /games/{gameId}
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateGameRequest
	if pd := DecodeAndValidate(w, r, &req); pd != nil {
		WriteError(w, pd)
		return
	}

	g, err := h.svc.Update(r.Context(), r.PathValue("gameId"), &req)
	if err != nil {
		WriteServiceError(w, r, err, "update game")
		return
	}
	WriteData(w, http.StatusOK, g)
}

// Delete handles DELETE /games/{gameId}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("gameId")); err != nil {
		WriteServiceError(w, r, err, "delete game")
		return
	}
	WriteOK(w)
}

// GetSettings handles GET /games/{gameId}/settings
func (h *GameHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(r.Context(), r.PathValue("gameId"))
	if err != nil {
		WriteServiceError(w, r, err, "get game settings")
		return
	}
	WriteData(w, http.StatusOK, settings)
}

// ReplaceSettings handles PUT /games/{gameId}/settings
func (h *GameHandler) ReplaceSettings(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateGameSettingsRequest
	if pd := DecodeAndValidate(w, r, &req); pd != nil {
		WriteError(w, pd)
		return
	}

	settings, err := h.svc.ReplaceSettings(r.Context(), r.PathValue("gameId"), &req)
	if err != nil {
		WriteServiceError(w, r, err, "replace game settings")
		return
	}
	WriteData(w, http.StatusOK, SettingsReplacedResponse{OK: true, Groups: settings.Groups})
}

// Search handles POST /games/search
func (h *GameHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req model.SearchGamesRequest
	if pd := DecodeAndValidate(w, r, &req); pd != nil {
		WriteError(w, pd)
		return
	}

	matches, err := h.svc.SearchByDevice(r.Context(), req.DeviceID)
	if err != nil {
		WriteServiceError(w, r, err, "search games")
		return
	}
	WriteData(w, http.StatusOK, matches)
}
