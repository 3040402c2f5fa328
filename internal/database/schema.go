package database

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.surql
var schemaSQL string

// Table names
const (
	TableFieldMap = "field_map"
	TablePlayer   = "player"
	TableGame     = "game"
)

// Schema returns the SurrealQL schema definition
func Schema() string {
	return schemaSQL
}

// ApplySchema defines tables and indexes. Safe to run on every start.
func ApplySchema(ctx context.Context, db Database) error {
	if strings.TrimSpace(schemaSQL) == "" {
		return nil
	}
	if err := db.Execute(ctx, schemaSQL, nil); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// isUniqueViolation matches SurrealDB's unique index conflict, e.g.
// "Database index `player_apd` already contains 'AB1', with record `player:x`"
func isUniqueViolation(msg string) bool {
	return strings.Contains(msg, "Database index") && strings.Contains(msg, "already contains")
}
