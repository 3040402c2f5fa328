package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/forgo/skirmish/api/internal/config"
	"github.com/forgo/skirmish/api/internal/database"
	"github.com/forgo/skirmish/api/internal/repository"
	"github.com/forgo/skirmish/api/internal/service"
)

func main() {
	// Flags for customization
	fieldMaps := flag.Int("field-maps", 5, "Number of field maps to create")
	players := flag.Int("players", 40, "Number of players to create")
	games := flag.Int("games", 8, "Number of games to create")
	devices := flag.Int("devices", 10, "Devices registered on each game")
	prefix := flag.String("prefix", "seed_", "Name prefix marking seeded records")
	concurrency := flag.Int("concurrency", 8, "Parallel inserts")
	cleanup := flag.Bool("cleanup", false, "Delete records carrying the prefix instead of seeding")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.IsProduction() {
		fmt.Fprintln(os.Stderr, "Refusing to seed with SERVER_ENV=production")
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db := database.NewSurrealDB(database.Config{
		Host:           cfg.Database.Host,
		Port:           cfg.Database.Port,
		User:           cfg.Database.User,
		Password:       cfg.Database.Password,
		Namespace:      cfg.Database.Namespace,
		Database:       cfg.Database.Database,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err := db.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	if err := database.ApplySchema(ctx, db); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying schema: %v\n", err)
		os.Exit(1)
	}

	seeder := service.NewSeederService(service.SeederServiceConfig{
		FieldMaps: repository.NewFieldMapRepository(db),
		Players:   repository.NewPlayerRepository(db),
		Games:     repository.NewGameRepository(db),
		Logger:    logger,
	})

	var output any
	if *cleanup {
		res, err := seeder.Cleanup(ctx, *prefix)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error cleaning up: %v\n", err)
			os.Exit(1)
		}
		output = map[string]any{
			"deleted":     res.Deleted,
			"duration_ms": res.Duration.Milliseconds(),
		}
		if !*outputJSON {
			fmt.Printf("Deleted %d records with prefix %q in %s\n", res.Deleted, *prefix, res.Duration.Round(time.Millisecond))
			return
		}
	} else {
		res, err := seeder.Seed(ctx, service.SeedRequest{
			FieldMaps:      *fieldMaps,
			Players:        *players,
			Games:          *games,
			DevicesPerGame: *devices,
			Prefix:         *prefix,
			Concurrency:    *concurrency,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error seeding: %v\n", err)
			os.Exit(1)
		}
		output = map[string]any{
			"field_map_ids": res.FieldMapIDs,
			"player_ids":    res.PlayerIDs,
			"game_ids":      res.GameIDs,
			"duration_ms":   res.Duration.Milliseconds(),
		}
		if !*outputJSON {
			fmt.Println("Demo Data Seeded")
			fmt.Println("================")
			fmt.Printf("Field maps: %d\n", len(res.FieldMapIDs))
			fmt.Printf("Players:    %d\n", len(res.PlayerIDs))
			fmt.Printf("Games:      %d\n", len(res.GameIDs))
			fmt.Printf("Took:       %s\n", res.Duration.Round(time.Millisecond))
			fmt.Println()
			fmt.Println("Try a device lookup:")
			fmt.Println(`  curl -X POST -d '{"deviceId":"device-01"}' http://localhost:8080/games/search`)
			return
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(output)
}
