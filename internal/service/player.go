package service

import (
	"context"
	"errors"

	"github.com/forgo/skirmish/api/internal/database"
	"github.com/forgo/skirmish/api/internal/model"
)

// PlayerRepository defines the interface for player storage
type PlayerRepository interface {
	Create(ctx context.Context, p *model.Player) error
	List(ctx context.Context) ([]*model.Player, error)
	GetByID(ctx context.Context, id string) (*model.Player, error)
	ListByAPD(ctx context.Context, apd string) ([]*model.Player, error)
	Update(ctx context.Context, id string, changes map[string]interface{}) (*model.Player, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// PlayerService handles player business logic
type PlayerService struct {
	repo PlayerRepository
}

// NewPlayerService creates a new player service
func NewPlayerService(repo PlayerRepository) *PlayerService {
	return &PlayerService{repo: repo}
}

// List returns every player, newest first
func (s *PlayerService) List(ctx context.Context) ([]*model.Player, error) {
	return s.repo.List(ctx)
}

// Create registers a player. A present apd must not belong to anyone else.
// The store's unique index settles concurrent writers that both pass the
// lookup.
func (s *PlayerService) Create(ctx context.Context, req *model.CreatePlayerRequest) (*model.Player, error) {
	if req.APD != nil {
		if err := s.checkAPDAvailable(ctx, *req.APD, ""); err != nil {
			return nil, err
		}
	}

	p := req.Player()
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apdError(err)
	}
	return p, nil
}

// Get retrieves a player by ID
func (s *PlayerService) Get(ctx context.Context, id string) (*model.Player, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// Update applies the supplied fields and returns the stored player
func (s *PlayerService) Update(ctx context.Context, id string, req *model.UpdatePlayerRequest) (*model.Player, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	if req.APD != nil {
		if err := s.checkAPDAvailable(ctx, *req.APD, id); err != nil {
			return nil, err
		}
	}

	p, err := s.repo.Update(ctx, id, req.Changes())
	if err != nil {
		return nil, apdError(err)
	}
	if p == nil {
		return nil, ErrPlayerNotFound
	}
	return p, nil
}

// Delete removes a player
func (s *PlayerService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPlayerNotFound
	}
	return nil
}

// checkAPDAvailable fails with ErrAPDTaken when a player other than selfID
// already holds apd
func (s *PlayerService) checkAPDAvailable(ctx context.Context, apd, selfID string) error {
	holders, err := s.repo.ListByAPD(ctx, apd)
	if err != nil {
		return err
	}
	for _, h := range holders {
		if h.ID != selfID {
			return ErrAPDTaken
		}
	}
	return nil
}

// apdError reports a unique index conflict as ErrAPDTaken; apd is the only
// unique field on players
func apdError(err error) error {
	if errors.Is(err, database.ErrDuplicate) {
		return ErrAPDTaken
	}
	return err
}
