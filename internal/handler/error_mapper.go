package handler

import (
	"errors"

	"github.com/forgo/skirmish/api/internal/database"
	"github.com/forgo/skirmish/api/internal/model"
	"github.com/forgo/skirmish/api/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// This centralizes error handling logic for all handlers, ensuring consistent
// HTTP status codes and error messages across the API.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	var pd *model.ProblemDetails
	if errors.As(err, &pd) {
		return pd
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrFieldMapNotFound):
		return model.NewNotFoundError("FieldMap")
	case errors.Is(err, service.ErrPlayerNotFound):
		return model.NewNotFoundError("Player")
	case errors.Is(err, service.ErrGameNotFound):
		return model.NewNotFoundError("Game")
	case errors.Is(err, service.ErrNoPlannedGamesForDevice):
		return model.NewNotFoundError("Planned game for this device")

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, service.ErrAPDTaken):
		return model.NewConflictError(err.Error())
	case errors.Is(err, database.ErrDuplicate):
		return model.NewConflictError("a record with the same unique value already exists")

	// ===== Database unavailable → 503 =====
	case errors.Is(err, database.ErrConnection):
		return model.NewServiceUnavailableError("database unavailable")

	// ===== Default → 500 =====
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == 500 {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
