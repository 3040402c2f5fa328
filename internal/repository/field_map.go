package repository

import (
	"context"

	"github.com/forgo/skirmish/api/internal/database"
	"github.com/forgo/skirmish/api/internal/model"
)

// FieldMapRepository handles field map data access
type FieldMapRepository struct {
	db database.Database
}

// NewFieldMapRepository creates a new field map repository
func NewFieldMapRepository(db database.Database) *FieldMapRepository {
	return &FieldMapRepository{db: db}
}

// Create stores a new field map and fills in its id and timestamps
func (r *FieldMapRepository) Create(ctx context.Context, fm *model.FieldMap) error {
	query := `
		LET $now = time::now();
		CREATE field_map SET
			name = $name,
			isActive = $is_active,
			type = $type,
			description = $description,
			location = $location,
			socialLinks = $social_links,
			createdBy = IF $created_by IS NOT NULL THEN $created_by ELSE NONE END,
			createdAt = $now,
			updatedAt = $now,
			version = 0
		RETURN AFTER;
	`

	vars := map[string]interface{}{
		"name":         fm.Name,
		"is_active":    fm.IsActive,
		"type":         string(fm.Type),
		"description":  fm.Description,
		"location":     fm.Location,
		"social_links": model.SocialLinkDocs(fm.SocialLinks),
		"created_by":   nilIfEmpty(fm.CreatedBy),
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := decodeFirst[model.FieldMap](results)
	if err != nil {
		return err
	}
	if created == nil {
		return database.ErrQuery
	}

	*fm = *created
	return nil
}

// List returns every field map, newest first
func (r *FieldMapRepository) List(ctx context.Context) ([]*model.FieldMap, error) {
	query := `SELECT * FROM field_map ORDER BY createdAt DESC`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return decodeRecords[model.FieldMap](results, 0)
}

// GetByID retrieves a field map by ID. It returns nil when none exists.
func (r *FieldMapRepository) GetByID(ctx context.Context, id string) (*model.FieldMap, error) {
	if !isRecordOf(id, database.TableFieldMap) {
		return nil, nil
	}

	results, err := r.db.Query(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}

	return decodeFirst[model.FieldMap](results)
}

// Update applies changes and returns the stored document, or nil if the
// field map does not exist
func (r *FieldMapRepository) Update(ctx context.Context, id string, changes map[string]interface{}) (*model.FieldMap, error) {
	if !isRecordOf(id, database.TableFieldMap) {
		return nil, nil
	}

	vars := map[string]interface{}{"id": id}
	query := updateQuery(database.TableFieldMap, changes, vars)

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return decodeFirst[model.FieldMap](results)
}

// Delete removes a field map and reports whether it existed
func (r *FieldMapRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !isRecordOf(id, database.TableFieldMap) {
		return false, nil
	}

	query := `DELETE field_map WHERE id = type::record($id) RETURN BEFORE`
	results, err := r.db.Query(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return false, err
	}

	deleted, err := decodeFirst[model.FieldMap](results)
	if err != nil {
		return false, err
	}
	return deleted != nil, nil
}
