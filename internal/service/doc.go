// Package service implements business logic for the Skirmish API.
//
// Services sit between handlers and repositories. Handlers validate request
// bodies; services enforce the rules that need stored state, such as apd
// uniqueness and existence checks, and translate missing records into the
// sentinel errors in errors.go.
//
// # Service Pattern
//
//	type PlayerService struct {
//	    repo PlayerRepository
//	}
//
//	func NewPlayerService(repo PlayerRepository) *PlayerService
//
// Each service declares the repository interface it depends on, so tests can
// substitute in-memory mocks.
//
// # Error Handling
//
// Handlers map service errors to HTTP responses with errors.Is:
//
//	if errors.Is(err, service.ErrGameNotFound) {
//	    // 404
//	}
package service
