package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/forgo/skirmish/api/internal/database"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// recordKeyPattern matches the keys SurrealDB generates for CREATE
var recordKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// isRecordOf reports whether id is a well formed "table:key" id for table.
// Anything else can never name a stored record and is treated as not found.
func isRecordOf(id, table string) bool {
	key, ok := strings.CutPrefix(id, table+":")
	return ok && recordKeyPattern.MatchString(key)
}

// convertSurrealID renders a record id as "table:key"
func convertSurrealID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
	case map[string]interface{}:
		// {"tb": "table", "id": "xxx"} format
		if tb, ok := v["tb"].(string); ok {
			return fmt.Sprintf("%s:%v", tb, v["id"])
		}
	}
	return ""
}

// normalizeValue converts driver specific values into plain JSON friendly
// ones: record ids become strings and datetimes become time.Time.
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case models.RecordID, *models.RecordID:
		return convertSurrealID(t)
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t == nil {
			return nil
		}
		return t.Time
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[k] = normalizeValue(val)
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}

// decodeRecord maps a single stored document onto T
func decodeRecord[T any](result interface{}) (*T, error) {
	if result == nil {
		return nil, database.ErrNotFound
	}

	data, ok := normalizeValue(result).(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var out T
	if err := json.Unmarshal(jsonBytes, &out); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &out, nil
}

// decodeRecords maps every document returned by the statement at index stmt
func decodeRecords[T any](results []interface{}, stmt int) ([]*T, error) {
	items := make([]*T, 0)
	if stmt >= len(results) {
		return items, nil
	}

	resp, ok := results[stmt].(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	resultData, ok := resp["result"].([]interface{})
	if !ok {
		return items, nil
	}

	for _, item := range resultData {
		rec, err := decodeRecord[T](item)
		if err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	return items, nil
}

// decodeFirst maps the first document of the last statement, returning nil
// when the statement produced nothing
func decodeFirst[T any](results []interface{}) (*T, error) {
	if len(results) == 0 {
		return nil, nil
	}
	first, err := database.FirstRecord(results[len(results)-1:])
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return decodeRecord[T](first)
}

// dateParam formats an optional time for a <datetime> cast in SurrealQL
func dateParam(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// buildSetClause renders changes as "field = $set_field" assignments sorted
// by field name. Nil values remove the field and times are cast to datetime.
func buildSetClause(changes map[string]interface{}, vars map[string]interface{}) string {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		param := "set_" + strings.ReplaceAll(k, ".", "_")
		switch v := changes[k].(type) {
		case nil:
			parts = append(parts, k+" = NONE")
		case time.Time:
			vars[param] = dateParam(&v)
			parts = append(parts, fmt.Sprintf("%s = <datetime>$%s", k, param))
		default:
			vars[param] = v
			parts = append(parts, fmt.Sprintf("%s = $%s", k, param))
		}
	}
	return strings.Join(parts, ", ")
}

// updateQuery builds the partial update statement for a single record.
// Filtering the table by id never creates a missing record.
func updateQuery(table string, changes map[string]interface{}, vars map[string]interface{}) string {
	set := buildSetClause(changes, vars)
	if set != "" {
		set += ", "
	}
	return fmt.Sprintf(
		`UPDATE %s SET %supdatedAt = time::now(), version += 1 WHERE id = type::record($id) RETURN AFTER`,
		table, set,
	)
}

// nilIfEmpty returns nil for nil or empty strings
func nilIfEmpty(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
