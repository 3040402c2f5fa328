package repository

import (
	"context"

	"github.com/forgo/skirmish/api/internal/database"
	"github.com/forgo/skirmish/api/internal/model"
)

// PlayerRepository handles player data access
type PlayerRepository struct {
	db database.Database
}

// NewPlayerRepository creates a new player repository
func NewPlayerRepository(db database.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Create stores a new player and fills in its id and timestamps
func (r *PlayerRepository) Create(ctx context.Context, p *model.Player) error {
	query := `
		LET $now = time::now();
		CREATE player SET
			name = $name,
			apd = IF $apd IS NOT NULL THEN $apd ELSE NONE END,
			apdValidateDate = IF $apd_validate_date IS NOT NULL THEN <datetime>$apd_validate_date ELSE NONE END,
			team = IF $team IS NOT NULL THEN $team ELSE NONE END,
			createdAt = $now,
			updatedAt = $now,
			version = 0
		RETURN AFTER;
	`

	vars := map[string]interface{}{
		"name":              p.Name,
		"apd":               nilIfEmpty(p.APD),
		"apd_validate_date": dateParam(p.APDValidateDate),
		"team":              nilIfEmpty(p.Team),
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := decodeFirst[model.Player](results)
	if err != nil {
		return err
	}
	if created == nil {
		return database.ErrQuery
	}

	*p = *created
	return nil
}

// List returns every player, newest first
func (r *PlayerRepository) List(ctx context.Context) ([]*model.Player, error) {
	query := `SELECT * FROM player ORDER BY createdAt DESC`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return decodeRecords[model.Player](results, 0)
}

// GetByID retrieves a player by ID. It returns nil when none exists.
func (r *PlayerRepository) GetByID(ctx context.Context, id string) (*model.Player, error) {
	if !isRecordOf(id, database.TablePlayer) {
		return nil, nil
	}

	results, err := r.db.Query(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}

	return decodeFirst[model.Player](results)
}

// ListByAPD returns every player holding the given licence number
func (r *PlayerRepository) ListByAPD(ctx context.Context, apd string) ([]*model.Player, error) {
	query := `SELECT * FROM player WHERE apd = $apd`

	results, err := r.db.Query(ctx, query, map[string]interface{}{"apd": apd})
	if err != nil {
		return nil, err
	}

	return decodeRecords[model.Player](results, 0)
}

// Update applies changes and returns the stored document, or nil if the
// player does not exist
func (r *PlayerRepository) Update(ctx context.Context, id string, changes map[string]interface{}) (*model.Player, error) {
	if !isRecordOf(id, database.TablePlayer) {
		return nil, nil
	}

	vars := map[string]interface{}{"id": id}
	query := updateQuery(database.TablePlayer, changes, vars)

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return decodeFirst[model.Player](results)
}

// Delete removes a player and reports whether it existed
func (r *PlayerRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !isRecordOf(id, database.TablePlayer) {
		return false, nil
	}

	query := `DELETE player WHERE id = type::record($id) RETURN BEFORE`
	results, err := r.db.Query(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return false, err
	}

	deleted, err := decodeFirst[model.Player](results)
	if err != nil {
		return false, err
	}
	return deleted != nil, nil
}
