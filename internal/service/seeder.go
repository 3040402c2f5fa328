package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	mrand "math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/anandvarma/namegen"
	"github.com/forgo/skirmish/api/internal/model"
	"golang.org/x/sync/errgroup"
)

// SeederService generates demo data for development databases
type SeederService struct {
	fieldMaps FieldMapRepository
	players   PlayerRepository
	games     GameRepository
	logger    *slog.Logger
	names     func() string
}

// SeederServiceConfig holds configuration for the seeder
type SeederServiceConfig struct {
	FieldMaps FieldMapRepository
	Players   PlayerRepository
	Games     GameRepository
	Logger    *slog.Logger
}

// NewSeederService creates a new seeder service
func NewSeederService(cfg SeederServiceConfig) *SeederService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SeederService{
		fieldMaps: cfg.FieldMaps,
		players:   cfg.Players,
		games:     cfg.Games,
		logger:    logger,
		names:     lockedNames(),
	}
}

// lockedNames serializes access to the generator, which seeding goroutines share
func lockedNames() func() string {
	var mu sync.Mutex
	gen := namegen.NewWithPostfixId([]namegen.DictType{namegen.Adjectives, namegen.Animals}, namegen.Numeric, 4)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return gen.Get()
	}
}

// SeedRequest configures a seeding run
type SeedRequest struct {
	FieldMaps      int
	Players        int
	Games          int
	DevicesPerGame int
	// Prefix is prepended to every seeded name so Cleanup can find them
	Prefix string
	// Concurrency bounds parallel inserts. Defaults to 8.
	Concurrency int
}

// SeedResult contains the ids created by a seeding run
type SeedResult struct {
	FieldMapIDs []string
	PlayerIDs   []string
	GameIDs     []string
	Duration    time.Duration
}

// CleanupResult contains the results of a cleanup operation
type CleanupResult struct {
	Deleted  int
	Duration time.Duration
}

const maxSeedCount = 1000

// ErrInvalidSeedRequest is returned for out-of-range seeding parameters
var ErrInvalidSeedRequest = errors.New("invalid seed request")

var (
	teams = []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot"}

	fieldLocations = []string{
		"Old quarry, north gate", "Forest lot 7", "Abandoned textile mill",
		"Riverside bunkers", "Hilltop farm", "Industrial park unit 12",
	}

	groupColors = []string{"red", "blue", "green", "yellow", "black", "white"}
)

// Seed inserts field maps and players in parallel, then games that
// reference them.
func (s *SeederService) Seed(ctx context.Context, req SeedRequest) (*SeedResult, error) {
	start := time.Now()

	for name, n := range map[string]int{
		"field maps":       req.FieldMaps,
		"players":          req.Players,
		"games":            req.Games,
		"devices per game": req.DevicesPerGame,
	} {
		if n < 0 || n > maxSeedCount {
			return nil, fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalidSeedRequest, name, maxSeedCount)
		}
	}
	if req.Prefix == "" {
		req.Prefix = "seed_"
	}
	if req.Concurrency <= 0 {
		req.Concurrency = 8
	}

	result := &SeedResult{
		FieldMapIDs: make([]string, req.FieldMaps),
		PlayerIDs:   make([]string, req.Players),
		GameIDs:     make([]string, req.Games),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(req.Concurrency)

	for i := range req.FieldMaps {
		g.Go(func() error {
			id, err := s.seedFieldMap(gCtx, req.Prefix)
			if err != nil {
				return fmt.Errorf("seed field map %d: %w", i, err)
			}
			result.FieldMapIDs[i] = id
			return nil
		})
	}
	for i := range req.Players {
		g.Go(func() error {
			id, err := s.seedPlayer(gCtx, req.Prefix, i)
			if err != nil {
				return fmt.Errorf("seed player %d: %w", i, err)
			}
			result.PlayerIDs[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	g, gCtx = errgroup.WithContext(ctx)
	g.SetLimit(req.Concurrency)

	for i := range req.Games {
		g.Go(func() error {
			id, err := s.seedGame(gCtx, req.Prefix, i, req.DevicesPerGame, result.FieldMapIDs, result.PlayerIDs)
			if err != nil {
				return fmt.Errorf("seed game %d: %w", i, err)
			}
			result.GameIDs[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	s.logger.Info("seeded demo data",
		slog.Int("field_maps", len(result.FieldMapIDs)),
		slog.Int("players", len(result.PlayerIDs)),
		slog.Int("games", len(result.GameIDs)),
		slog.Duration("duration", result.Duration),
	)
	return result, nil
}

func (s *SeederService) seedFieldMap(ctx context.Context, prefix string) (string, error) {
	types := []model.FieldMapType{model.FieldMapTypeCQB, model.FieldMapTypeMisto, model.FieldMapTypeMato, model.FieldMapTypeOther}
	location := fieldLocations[mrand.IntN(len(fieldLocations))]
	slug := s.names()

	req := model.CreateFieldMapRequest{
		Name:     prefix + slug,
		Type:     types[mrand.IntN(len(types))],
		Location: location,
		SocialLinks: []model.SocialLink{
			{Platform: "instagram", URL: "https://instagram.com/" + slug},
		},
	}
	if errs := req.Validate(); len(errs) > 0 {
		return "", model.NewValidationError(errs)
	}

	fm := req.FieldMap()
	if err := s.fieldMaps.Create(ctx, fm); err != nil {
		return "", err
	}
	return fm.ID, nil
}

func (s *SeederService) seedPlayer(ctx context.Context, prefix string, i int) (string, error) {
	apd := fmt.Sprintf("%sAPD%04d", strings.ToUpper(strings.Trim(prefix, "_")), i)
	team := teams[mrand.IntN(len(teams))]
	// roughly a quarter of licences are already expired
	validUntil := time.Now().AddDate(0, mrand.IntN(24)-6, 0).Format(time.DateOnly)

	req := model.CreatePlayerRequest{
		Name:            prefix + s.names(),
		APD:             &apd,
		APDValidateDate: &validUntil,
		Team:            &team,
	}
	if errs := req.Validate(); len(errs) > 0 {
		return "", model.NewValidationError(errs)
	}

	p := req.Player()
	if err := s.players.Create(ctx, p); err != nil {
		return "", err
	}
	return p.ID, nil
}

func (s *SeederService) seedGame(ctx context.Context, prefix string, i, devices int, fieldMapIDs, playerIDs []string) (string, error) {
	date := time.Now().AddDate(0, 0, mrand.IntN(60)-10).Format(time.DateOnly)

	req := model.CreateGameRequest{
		Name: fmt.Sprintf("%sgame %d", prefix, i+1),
		Date: &date,
		GameSettings: &model.GameSettings{Groups: []model.Group{
			{GroupName: "Group 1", GroupColor: groupColors[mrand.IntN(len(groupColors))]},
			{GroupName: "Group 2", GroupColor: groupColors[mrand.IntN(len(groupColors))]},
		}},
	}
	if len(fieldMapIDs) > 0 {
		id := fieldMapIDs[mrand.IntN(len(fieldMapIDs))]
		req.FieldMapID = &id
	}
	if mrand.IntN(4) == 0 {
		req.Status = model.GameStatusFinished
	}
	for d := range devices {
		device := model.GameDevice{DeviceID: fmt.Sprintf("device-%02d", d+1)}
		if len(playerIDs) > 0 && mrand.IntN(3) > 0 {
			id := playerIDs[mrand.IntN(len(playerIDs))]
			device.AssignedPlayerID = &id
		}
		req.GameDevices = append(req.GameDevices, device)
	}
	if errs := req.Validate(); len(errs) > 0 {
		return "", model.NewValidationError(errs)
	}

	game := req.Game()
	if err := s.games.Create(ctx, game); err != nil {
		return "", err
	}
	return game.ID, nil
}

// Cleanup deletes every record whose name starts with prefix. Games go
// first since they reference field maps and players.
func (s *SeederService) Cleanup(ctx context.Context, prefix string) (*CleanupResult, error) {
	start := time.Now()
	if prefix == "" {
		return nil, fmt.Errorf("%w: cleanup prefix must not be empty", ErrInvalidSeedRequest)
	}

	deleted := 0

	games, err := s.games.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	for _, g := range games {
		if strings.HasPrefix(g.Name, prefix) {
			if ok, err := s.games.Delete(ctx, g.ID); err != nil {
				return nil, err
			} else if ok {
				deleted++
			}
		}
	}

	players, err := s.players.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	for _, p := range players {
		if strings.HasPrefix(p.Name, prefix) {
			if ok, err := s.players.Delete(ctx, p.ID); err != nil {
				return nil, err
			} else if ok {
				deleted++
			}
		}
	}

	fieldMaps, err := s.fieldMaps.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list field maps: %w", err)
	}
	for _, fm := range fieldMaps {
		if strings.HasPrefix(fm.Name, prefix) {
			if ok, err := s.fieldMaps.Delete(ctx, fm.ID); err != nil {
				return nil, err
			} else if ok {
				deleted++
			}
		}
	}

	return &CleanupResult{Deleted: deleted, Duration: time.Since(start)}, nil
}
