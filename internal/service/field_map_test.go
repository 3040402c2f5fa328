package service

import (
	"context"
	"testing"

	"github.com/forgo/skirmish/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockFieldMapRepo struct {
	createFunc func(ctx context.Context, fm *model.FieldMap) error
	updateFunc func(ctx context.Context, id string, changes map[string]interface{}) (*model.FieldMap, error)
	deleteFunc func(ctx context.Context, id string) (bool, error)
	getFunc    func(ctx context.Context, id string) (*model.FieldMap, error)
}

func (m *mockFieldMapRepo) Create(ctx context.Context, fm *model.FieldMap) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, fm)
	}
	fm.ID = "field_map:1"
	return nil
}

func (m *mockFieldMapRepo) List(ctx context.Context) ([]*model.FieldMap, error) {
	return []*model.FieldMap{}, nil
}

func (m *mockFieldMapRepo) GetByID(ctx context.Context, id string) (*model.FieldMap, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockFieldMapRepo) Update(ctx context.Context, id string, changes map[string]interface{}) (*model.FieldMap, error) {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, id, changes)
	}
	return nil, nil
}

func (m *mockFieldMapRepo) Delete(ctx context.Context, id string) (bool, error) {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return false, nil
}

func TestFieldMapService_Create_Defaults(t *testing.T) {
	t.Parallel()

	svc := NewFieldMapService(&mockFieldMapRepo{})

	req := &model.CreateFieldMapRequest{Name: "Arena"}
	require.Empty(t, req.Validate())
	fm, err := svc.Create(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "field_map:1", fm.ID)
	assert.True(t, fm.IsActive)
	assert.Equal(t, model.FieldMapTypeOther, fm.Type)
	assert.NotNil(t, fm.SocialLinks)
}

func TestFieldMapService_Update_PassesOnlySuppliedFields(t *testing.T) {
	t.Parallel()

	var got map[string]interface{}
	svc := NewFieldMapService(&mockFieldMapRepo{
		updateFunc: func(ctx context.Context, id string, changes map[string]interface{}) (*model.FieldMap, error) {
			got = changes
			return &model.FieldMap{ID: id, Name: "Arena", IsActive: false}, nil
		},
	})

	inactive := false
	fm, err := svc.Update(context.Background(), "field_map:1", &model.UpdateFieldMapRequest{IsActive: &inactive})

	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"isActive": false}, got)
	assert.Equal(t, "Arena", fm.Name)
}

func TestFieldMapService_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewFieldMapService(&mockFieldMapRepo{})
	ctx := context.Background()

	_, err := svc.Get(ctx, "field_map:nope")
	assert.ErrorIs(t, err, ErrFieldMapNotFound)

	_, err = svc.Update(ctx, "field_map:nope", &model.UpdateFieldMapRequest{})
	assert.ErrorIs(t, err, ErrFieldMapNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "field_map:nope"), ErrFieldMapNotFound)
}
