package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/forgo/skirmish/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedRecorder collects everything the seeder writes. Creates arrive from
// several goroutines.
type seedRecorder struct {
	mu        sync.Mutex
	next      atomic.Int64
	fieldMaps []*model.FieldMap
	players   []*model.Player
	games     []*model.Game
}

func (r *seedRecorder) id(table string) string {
	return fmt.Sprintf("%s:s%d", table, r.next.Add(1))
}

func newSeeder(rec *seedRecorder) *SeederService {
	return NewSeederService(SeederServiceConfig{
		FieldMaps: &mockFieldMapRepo{createFunc: func(ctx context.Context, fm *model.FieldMap) error {
			fm.ID = rec.id("field_map")
			rec.mu.Lock()
			defer rec.mu.Unlock()
			rec.fieldMaps = append(rec.fieldMaps, fm)
			return nil
		}},
		Players: &mockSeedPlayerRepo{rec: rec},
		Games: &mockGameRepo{createFunc: func(ctx context.Context, g *model.Game) error {
			g.ID = rec.id("game")
			rec.mu.Lock()
			defer rec.mu.Unlock()
			rec.games = append(rec.games, g)
			return nil
		}},
	})
}

type mockSeedPlayerRepo struct {
	memPlayerRepo
	rec *seedRecorder
}

func (m *mockSeedPlayerRepo) Create(ctx context.Context, p *model.Player) error {
	p.ID = m.rec.id("player")
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	m.rec.players = append(m.rec.players, p)
	return nil
}

func TestSeederService_Seed(t *testing.T) {
	t.Parallel()

	rec := &seedRecorder{}
	res, err := newSeeder(rec).Seed(context.Background(), SeedRequest{
		FieldMaps:      3,
		Players:        10,
		Games:          4,
		DevicesPerGame: 5,
		Prefix:         "demo_",
	})
	require.NoError(t, err)

	assert.Len(t, res.FieldMapIDs, 3)
	assert.Len(t, res.PlayerIDs, 10)
	assert.Len(t, res.GameIDs, 4)
	for _, id := range append(append(res.FieldMapIDs, res.PlayerIDs...), res.GameIDs...) {
		assert.NotEmpty(t, id)
	}

	apds := map[string]bool{}
	for _, p := range rec.players {
		assert.True(t, strings.HasPrefix(p.Name, "demo_"))
		require.NotNil(t, p.APD)
		assert.False(t, apds[*p.APD], "apd %s seeded twice", *p.APD)
		apds[*p.APD] = true
	}

	for _, g := range rec.games {
		assert.True(t, strings.HasPrefix(g.Name, "demo_"))
		assert.Len(t, g.GameDevices, 5)
		require.NotNil(t, g.FieldMapID)
		assert.Contains(t, res.FieldMapIDs, *g.FieldMapID)
		for _, grp := range g.GameSettings.Groups {
			assert.NotEmpty(t, grp.ID)
		}
		for _, d := range g.GameDevices {
			if d.AssignedPlayerID != nil {
				assert.Contains(t, res.PlayerIDs, *d.AssignedPlayerID)
			}
		}
	}
}

func TestSeederService_Seed_RejectsOutOfRange(t *testing.T) {
	t.Parallel()

	_, err := newSeeder(&seedRecorder{}).Seed(context.Background(), SeedRequest{Players: -1})
	assert.ErrorIs(t, err, ErrInvalidSeedRequest)

	_, err = newSeeder(&seedRecorder{}).Seed(context.Background(), SeedRequest{Games: maxSeedCount + 1})
	assert.ErrorIs(t, err, ErrInvalidSeedRequest)
}

func TestSeederService_Seed_StopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	svc := NewSeederService(SeederServiceConfig{
		FieldMaps: &mockFieldMapRepo{createFunc: func(ctx context.Context, fm *model.FieldMap) error { return boom }},
		Players:   newMemPlayerRepo(),
		Games:     &mockGameRepo{},
	})

	_, err := svc.Seed(context.Background(), SeedRequest{FieldMaps: 2, Games: 1})
	assert.ErrorIs(t, err, boom)
}

func TestSeederService_Cleanup(t *testing.T) {
	t.Parallel()

	var deleted []string
	players := newMemPlayerRepo()
	keep := &model.Player{Name: "Ana"}
	drop := &model.Player{Name: "seed_wolf-1234"}
	require.NoError(t, players.Create(context.Background(), keep))
	require.NoError(t, players.Create(context.Background(), drop))

	svc := NewSeederService(SeederServiceConfig{
		FieldMaps: &mockFieldMapRepo{},
		Players:   players,
		Games: &mockGameRepo{
			listFunc: func(ctx context.Context) ([]*model.Game, error) {
				return []*model.Game{{ID: "game:a", Name: "seed_game 1"}, {ID: "game:b", Name: "League final"}}, nil
			},
			deleteFunc: func(ctx context.Context, id string) (bool, error) {
				deleted = append(deleted, id)
				return true, nil
			},
		},
	})

	res, err := svc.Cleanup(context.Background(), "seed_")
	require.NoError(t, err)

	assert.Equal(t, 2, res.Deleted)
	assert.Equal(t, []string{"game:a"}, deleted)
	p, _ := players.GetByID(context.Background(), keep.ID)
	assert.NotNil(t, p)
	p, _ = players.GetByID(context.Background(), drop.ID)
	assert.Nil(t, p)
}

func TestSeederService_Cleanup_RequiresPrefix(t *testing.T) {
	t.Parallel()

	_, err := newSeeder(&seedRecorder{}).Cleanup(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidSeedRequest)
}
