// Package handler provides HTTP request handlers for the Skirmish API.
//
// Each handler struct serves one resource (field maps, players, games) and
// registers its routes on a Go 1.22 pattern ServeMux via RegisterRoutes.
//
// # Handler Pattern
//
//   - DecodeAndValidate the body: unknown keys and malformed JSON are 400s;
//     a mistyped value and every rule violation come back together as one
//     400 with a FieldError each
//   - Call the service and map its sentinel errors with MapServiceError
//   - Write the result inside the {"data": ...} envelope
//
// # Response Format
//
//   - WriteData: any successful payload, wrapped as {"data": ...}
//   - WriteOK: {"data": {"ok": true}} for deletes
//   - WriteError: RFC 9457 Problem Details error response
package handler
