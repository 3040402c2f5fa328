package database

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestFirstRecord(t *testing.T) {
	t.Parallel()

	rec := map[string]interface{}{"id": "game:1"}

	tests := []struct {
		name    string
		results []interface{}
		want    interface{}
		wantErr error
	}{
		{name: "no statements", results: nil, wantErr: ErrNotFound},
		{name: "empty result", results: []interface{}{map[string]interface{}{"status": "OK", "result": []interface{}{}}}, wantErr: ErrNotFound},
		{name: "nil result", results: []interface{}{map[string]interface{}{"status": "OK", "result": nil}}, wantErr: ErrNotFound},
		{name: "first record", results: []interface{}{map[string]interface{}{"status": "OK", "result": []interface{}{rec, "other"}}}, want: rec},
		{name: "scalar", results: []interface{}{map[string]interface{}{"status": "OK", "result": float64(3)}}, want: float64(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := FirstRecord(tt.results)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m, ok := tt.want.(map[string]interface{}); ok {
				if got.(map[string]interface{})["id"] != m["id"] {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  string
		want bool
	}{
		{msg: "Database index `player_apd` already contains 'AB1', with record `player:x`", want: true},
		{msg: "UNIQUE constraint failed", want: false},
		{msg: "Duplicate key", want: false},
		{msg: "Found 'duplicate' where a number was expected", want: false},
		{msg: "Parse error: unexpected token", want: false},
	}

	for _, tt := range tests {
		if got := isUniqueViolation(tt.msg); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.msg, tt.want, got)
		}
	}
}

func TestSchema_DefinesEveryTable(t *testing.T) {
	t.Parallel()

	schema := Schema()
	for _, table := range []string{TableFieldMap, TablePlayer, TableGame} {
		if !strings.Contains(schema, "DEFINE TABLE IF NOT EXISTS "+table+" ") {
			t.Errorf("schema does not define table %s", table)
		}
	}
}

type execRecorder struct {
	Database
	queries []string
	err     error
}

func (e *execRecorder) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	e.queries = append(e.queries, query)
	return e.err
}

func TestApplySchema(t *testing.T) {
	t.Parallel()

	rec := &execRecorder{}
	if err := ApplySchema(context.Background(), rec); err != nil {
		t.Fatalf("ApplySchema: %v", err)
	}
	if len(rec.queries) != 1 || rec.queries[0] != Schema() {
		t.Errorf("expected the embedded schema to be executed once, got %d queries", len(rec.queries))
	}

	rec = &execRecorder{err: ErrConnection}
	if err := ApplySchema(context.Background(), rec); !errors.Is(err, ErrConnection) {
		t.Errorf("expected wrapped ErrConnection, got %v", err)
	}
}

func TestSurrealDB_NotConnected(t *testing.T) {
	t.Parallel()

	db := NewSurrealDB(Config{Host: "localhost", Port: "8000"})

	if err := db.Ping(context.Background()); !errors.Is(err, ErrConnection) {
		t.Errorf("Ping: expected ErrConnection, got %v", err)
	}
	if _, err := db.Query(context.Background(), "SELECT 1", nil); !errors.Is(err, ErrConnection) {
		t.Errorf("Query: expected ErrConnection, got %v", err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close on unconnected db: %v", err)
	}
}
