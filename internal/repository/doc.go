// Package repository implements the data access layer for the Skirmish API.
//
// Each repository handles one SurrealDB table: field_map, player or game.
//
// # Repository Pattern
//
//   - Constructor function (NewXxxRepository) accepts a database.Database
//   - Methods implement Create, List, GetByID, Update and Delete
//   - SurrealQL queries are parameterized with $variable syntax
//   - Documents are normalized and mapped onto model structs
//
// # Identifiers
//
// Record ids are exposed as "table:key" strings. An id that does not belong
// to the repository's table can never match a stored record, so lookups
// return nil without querying.
//
// # Not found
//
// GetByID and Update return a nil model when the record does not exist.
// Delete reports whether a record was removed. Callers map these to their
// own not-found errors.
//
// # Versioning
//
// Every document carries a version counter starting at 0 that each update
// increments. It is not part of the API models.
package repository
