package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Field Map Errors =====
var (
	ErrFieldMapNotFound = errors.New("field map not found")
)

// ===== Player Errors =====
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrAPDTaken       = errors.New("apd already registered to another player")
)

// ===== Game Errors =====
var (
	ErrGameNotFound            = errors.New("game not found")
	ErrNoPlannedGamesForDevice = errors.New("no planned games for device")
)
