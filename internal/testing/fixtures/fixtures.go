package fixtures

import (
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"github.com/forgo/skirmish/api/internal/database"
	"github.com/forgo/skirmish/api/internal/model"
	"github.com/forgo/skirmish/api/internal/repository"
)

// Factory creates test records through the real repositories
type Factory struct {
	fieldMaps *repository.FieldMapRepository
	players   *repository.PlayerRepository
	games     *repository.GameRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		fieldMaps: repository.NewFieldMapRepository(db),
		players:   repository.NewPlayerRepository(db),
		games:     repository.NewGameRepository(db),
	}
}

// randomID generates a short random suffix for unique names
func randomID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// ============================================================================
// Field Map Fixtures
// ============================================================================

// FieldMapOption customizes a field map before it is stored
type FieldMapOption func(*model.FieldMap)

// WithFieldMapName sets the field map name
func WithFieldMapName(name string) FieldMapOption {
	return func(fm *model.FieldMap) { fm.Name = name }
}

// WithFieldMapType sets the field map type
func WithFieldMapType(t model.FieldMapType) FieldMapOption {
	return func(fm *model.FieldMap) { fm.Type = t }
}

// Inactive marks the field map as inactive
func Inactive() FieldMapOption {
	return func(fm *model.FieldMap) { fm.IsActive = false }
}

// WithSocialLinks sets the field map social links
func WithSocialLinks(links ...model.SocialLink) FieldMapOption {
	return func(fm *model.FieldMap) { fm.SocialLinks = links }
}

// CreateFieldMap creates an active cqb field map
func (f *Factory) CreateFieldMap(t *testing.T, opts ...FieldMapOption) *model.FieldMap {
	t.Helper()

	fm := &model.FieldMap{
		Name:        "Field " + randomID(),
		IsActive:    true,
		Type:        model.FieldMapTypeCQB,
		SocialLinks: []model.SocialLink{},
	}
	for _, opt := range opts {
		opt(fm)
	}

	if err := f.fieldMaps.Create(t.Context(), fm); err != nil {
		t.Fatalf("fixtures: failed to create field map: %v", err)
	}
	return fm
}

// ============================================================================
// Player Fixtures
// ============================================================================

// PlayerOption customizes a player before it is stored
type PlayerOption func(*model.Player)

// WithPlayerName sets the player name
func WithPlayerName(name string) PlayerOption {
	return func(p *model.Player) { p.Name = name }
}

// WithAPD sets the licence number and its expiry date
func WithAPD(apd string, validUntil time.Time) PlayerOption {
	return func(p *model.Player) {
		p.APD = &apd
		p.APDValidateDate = &validUntil
	}
}

// WithTeam sets the player team
func WithTeam(team string) PlayerOption {
	return func(p *model.Player) { p.Team = &team }
}

// CreatePlayer creates a player without a licence
func (f *Factory) CreatePlayer(t *testing.T, opts ...PlayerOption) *model.Player {
	t.Helper()

	p := &model.Player{Name: "Player " + randomID()}
	for _, opt := range opts {
		opt(p)
	}

	if err := f.players.Create(t.Context(), p); err != nil {
		t.Fatalf("fixtures: failed to create player: %v", err)
	}
	return p
}

// ============================================================================
// Game Fixtures
// ============================================================================

// GameOption customizes a game before it is stored
type GameOption func(*model.Game)

// WithGameStatus sets the game status
func WithGameStatus(s model.GameStatus) GameOption {
	return func(g *model.Game) { g.Status = s }
}

// OnFieldMap links the game to a field map
func OnFieldMap(fm *model.FieldMap) GameOption {
	return func(g *model.Game) { g.FieldMapID = &fm.ID }
}

// WithDevice registers a device on the game. A nil player leaves the
// device unassigned.
func WithDevice(deviceID string, player *model.Player) GameOption {
	return func(g *model.Game) {
		d := model.GameDevice{DeviceID: deviceID}
		if player != nil {
			d.AssignedPlayerID = &player.ID
		}
		g.GameDevices = append(g.GameDevices, d)
	}
}

// WithGroups replaces the default groups
func WithGroups(groups ...model.Group) GameOption {
	return func(g *model.Game) { g.GameSettings.Groups = groups }
}

// CreateGame creates a planned game with the default groups
func (f *Factory) CreateGame(t *testing.T, opts ...GameOption) *model.Game {
	t.Helper()

	g := &model.Game{
		Name:         "Game " + randomID(),
		Status:       model.GameStatusPlanned,
		GameDevices:  []model.GameDevice{},
		GameSettings: model.GameSettings{Groups: model.DefaultGroups()},
	}
	for _, opt := range opts {
		opt(g)
	}

	if err := f.games.Create(t.Context(), g); err != nil {
		t.Fatalf("fixtures: failed to create game: %v", err)
	}
	return g
}
