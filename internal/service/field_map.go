package service

import (
	"context"

	"github.com/forgo/skirmish/api/internal/model"
)

// FieldMapRepository defines the interface for field map storage
type FieldMapRepository interface {
	Create(ctx context.Context, fm *model.FieldMap) error
	List(ctx context.Context) ([]*model.FieldMap, error)
	GetByID(ctx context.Context, id string) (*model.FieldMap, error)
	Update(ctx context.Context, id string, changes map[string]interface{}) (*model.FieldMap, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// FieldMapService handles field map business logic
type FieldMapService struct {
	repo FieldMapRepository
}

// NewFieldMapService creates a new field map service
func NewFieldMapService(repo FieldMapRepository) *FieldMapService {
	return &FieldMapService{repo: repo}
}

// List returns every field map, newest first
func (s *FieldMapService) List(ctx context.Context) ([]*model.FieldMap, error) {
	return s.repo.List(ctx)
}

// Create stores a validated request with defaults applied
func (s *FieldMapService) Create(ctx context.Context, req *model.CreateFieldMapRequest) (*model.FieldMap, error) {
	fm := req.FieldMap()
	if err := s.repo.Create(ctx, fm); err != nil {
		return nil, err
	}
	return fm, nil
}

// Get retrieves a field map by ID
func (s *FieldMapService) Get(ctx context.Context, id string) (*model.FieldMap, error) {
	fm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if fm == nil {
		return nil, ErrFieldMapNotFound
	}
	return fm, nil
}

// Update applies the supplied fields and returns the stored field map
func (s *FieldMapService) Update(ctx context.Context, id string, req *model.UpdateFieldMapRequest) (*model.FieldMap, error) {
	fm, err := s.repo.Update(ctx, id, req.Changes())
	if err != nil {
		return nil, err
	}
	if fm == nil {
		return nil, ErrFieldMapNotFound
	}
	return fm, nil
}

// Delete removes a field map
func (s *FieldMapService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrFieldMapNotFound
	}
	return nil
}
