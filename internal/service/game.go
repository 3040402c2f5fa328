package service

import (
	"context"
	"log/slog"

	"github.com/forgo/skirmish/api/internal/model"
)

// GameRepository defines the interface for game storage
type GameRepository interface {
	Create(ctx context.Context, g *model.Game) error
	List(ctx context.Context) ([]*model.Game, error)
	GetByID(ctx context.Context, id string) (*model.Game, error)
	Update(ctx context.Context, id string, changes map[string]interface{}) (*model.Game, error)
	UpdateGroups(ctx context.Context, id string, groups []model.Group) (*model.Game, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListPlannedByDevice(ctx context.Context, deviceID string) ([]*model.Game, error)
}

// GameService handles game business logic
type GameService struct {
	repo   GameRepository
	logger *slog.Logger
}

// GameServiceConfig holds configuration for the game service
type GameServiceConfig struct {
	Repo   GameRepository
	Logger *slog.Logger
}

// NewGameService creates a new game service
func NewGameService(cfg GameServiceConfig) *GameService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &GameService{
		repo:   cfg.Repo,
		logger: logger,
	}
}

// List returns every game, newest first
func (s *GameService) List(ctx context.Context) ([]*model.Game, error) {
	return s.repo.List(ctx)
}

// Create schedules a game with defaults applied
func (s *GameService) Create(ctx context.Context, req *model.CreateGameRequest) (*model.Game, error) {
	g := req.Game()
	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

// Get retrieves a game by ID
func (s *GameService) Get(ctx context.Context, id string) (*model.Game, error) {
	g, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// Update applies the supplied fields and returns the stored game
func (s *GameService) Update(ctx context.Context, id string, req *model.UpdateGameRequest) (*model.Game, error) {
	g, err := s.repo.Update(ctx, id, req.Changes())
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// Delete removes a game
func (s *GameService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrGameNotFound
	}
	return nil
}

// GetSettings returns the game's groups
func (s *GameService) GetSettings(ctx context.Context, id string) (*model.GameSettings, error) {
	g, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	settings := g.GameSettings
	if settings.Groups == nil {
		settings.Groups = []model.Group{}
	}
	return &settings, nil
}

// ReplaceSettings replaces the game's groups. Supplied ids are kept, missing
// ids are generated, and an empty list resets to the default groups.
func (s *GameService) ReplaceSettings(ctx context.Context, id string, req *model.UpdateGameSettingsRequest) (*model.GameSettings, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	groups := model.NormalizeGroups(req.Groups)
	g, err := s.repo.UpdateGroups(ctx, id, groups)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGameNotFound
	}

	s.logger.Info("game settings replaced", "game_id", id, "groups", len(groups))
	return &g.GameSettings, nil
}

// SearchByDevice returns the planned games a device is registered to,
// newest first
func (s *GameService) SearchByDevice(ctx context.Context, deviceID string) ([]model.DeviceAssignment, error) {
	games, err := s.repo.ListPlannedByDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	matches := model.MatchDeviceAssignments(games, deviceID)
	if len(matches) == 0 {
		return nil, ErrNoPlannedGamesForDevice
	}
	return matches, nil
}
