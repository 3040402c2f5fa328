package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse describes the liveness of the API
type HealthResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	TS      time.Time `json:"ts"`
}

// HealthHandler handles the health check
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler creates a health handler. db may be nil.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// RegisterRoutes registers the health route
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
}

// Health handles GET /health. It always answers 200; a failing database
// ping is reported as status "degraded".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Message: "skirmish api is running",
		TS:      time.Now().UTC(),
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			slog.Warn("health check: database ping failed", slog.Any("error", err))
			resp.Status = "degraded"
			resp.Message = "database unreachable"
		}
	}

	WriteData(w, http.StatusOK, resp)
}
