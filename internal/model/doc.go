// Package model defines domain entities and data structures for the Skirmish API.
//
// The model package contains the documents stored for each collection, the
// request types accepted by the handlers and the RFC 9457 error types. Models
// are used across all layers of the application.
//
// # Domain Entities
//
//   - FieldMap: a playing field, with terrain type and social links
//   - Player: a league player with an optional APD licence
//   - Game: a scheduled match with its devices and group settings
//
// # Validation
//
// Request types carry declarative validate tags checked by
// go-playground/validator. Each request's Validate method trims strings in
// place first and returns one FieldError per violated rule, using JSON paths
// such as "socialLinks[1].url":
//
//	if errs := req.Validate(); len(errs) > 0 {
//	    model.NewValidationError(errs).WriteJSON(w)
//	    return
//	}
//
// # Partial updates
//
// Update requests use pointer fields. Changes returns only the fields the
// client supplied, keyed by stored field name. A nil value in the map means
// the field should be removed.
package model
