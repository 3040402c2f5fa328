package repository

import (
	"context"

	"github.com/forgo/skirmish/api/internal/database"
	"github.com/forgo/skirmish/api/internal/model"
)

// GameRepository handles game data access
type GameRepository struct {
	db database.Database
}

// NewGameRepository creates a new game repository
func NewGameRepository(db database.Database) *GameRepository {
	return &GameRepository{db: db}
}

// Create stores a new game and fills in its id and timestamps
func (r *GameRepository) Create(ctx context.Context, g *model.Game) error {
	query := `
		LET $now = time::now();
		CREATE game SET
			name = $name,
			date = IF $date IS NOT NULL THEN <datetime>$date ELSE NONE END,
			fieldMapId = IF $field_map_id IS NOT NULL THEN $field_map_id ELSE NONE END,
			status = $status,
			gameDevices = $game_devices,
			gameSettings = { groups: $groups },
			createdAt = $now,
			updatedAt = $now,
			version = 0
		RETURN AFTER;
	`

	vars := map[string]interface{}{
		"name":         g.Name,
		"date":         dateParam(g.Date),
		"field_map_id": nilIfEmpty(g.FieldMapID),
		"status":       string(g.Status),
		"game_devices": model.GameDeviceDocs(g.GameDevices),
		"groups":       model.GroupDocs(g.GameSettings.Groups),
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := decodeFirst[model.Game](results)
	if err != nil {
		return err
	}
	if created == nil {
		return database.ErrQuery
	}

	*g = *created
	return nil
}

// List returns every game, newest first
func (r *GameRepository) List(ctx context.Context) ([]*model.Game, error) {
	query := `SELECT * FROM game ORDER BY createdAt DESC`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	return decodeRecords[model.Game](results, 0)
}

// GetByID retrieves a game by ID. It returns nil when none exists.
func (r *GameRepository) GetByID(ctx context.Context, id string) (*model.Game, error) {
	if !isRecordOf(id, database.TableGame) {
		return nil, nil
	}

	results, err := r.db.Query(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}

	return decodeFirst[model.Game](results)
}

// Update applies changes and returns the stored document, or nil if the
// game does not exist
func (r *GameRepository) Update(ctx context.Context, id string, changes map[string]interface{}) (*model.Game, error) {
	if !isRecordOf(id, database.TableGame) {
		return nil, nil
	}

	vars := map[string]interface{}{"id": id}
	query := updateQuery(database.TableGame, changes, vars)

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return decodeFirst[model.Game](results)
}

// UpdateGroups replaces the game's groups and returns the stored document,
// or nil if the game does not exist
func (r *GameRepository) UpdateGroups(ctx context.Context, id string, groups []model.Group) (*model.Game, error) {
	return r.Update(ctx, id, map[string]interface{}{
		"gameSettings.groups": model.GroupDocs(groups),
	})
}

// Delete removes a game and reports whether it existed
func (r *GameRepository) Delete(ctx context.Context, id string) (bool, error) {
	if !isRecordOf(id, database.TableGame) {
		return false, nil
	}

	query := `DELETE game WHERE id = type::record($id) RETURN BEFORE`
	results, err := r.db.Query(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return false, err
	}

	deleted, err := decodeFirst[model.Game](results)
	if err != nil {
		return false, err
	}
	return deleted != nil, nil
}

// ListPlannedByDevice returns planned games whose device list includes
// deviceID, newest first
func (r *GameRepository) ListPlannedByDevice(ctx context.Context, deviceID string) ([]*model.Game, error) {
	query := `
		SELECT * FROM game
		WHERE status = $status AND gameDevices.deviceId CONTAINS $device_id
		ORDER BY createdAt DESC
	`
	vars := map[string]interface{}{
		"status":    string(model.GameStatusPlanned),
		"device_id": deviceID,
	}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return decodeRecords[model.Game](results, 0)
}
