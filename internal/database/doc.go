// Package database provides the persistence connector for the Skirmish API.
//
// A single SurrealDB handle is constructed in main, connected once, handed to
// every repository and closed at shutdown. There is no package-level
// connection state.
//
// # Database Interface
//
//	type Database interface {
//	    Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
//	    QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
//	    Execute(ctx context.Context, query string, vars map[string]interface{}) error
//	    Close() error
//	}
//
// Query returns one entry per SurrealQL statement in the shape
// {"status": "OK", "result": [...]}. QueryOne unwraps the first record of the
// first statement and returns ErrNotFound when the statement matched nothing.
//
// # Schema
//
// ApplySchema runs the embedded schema.surql. Every statement is written with
// IF NOT EXISTS so it can be applied on each start.
//
// # Error Types
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection failed
//   - ErrQuery: Statement failed
package database
