package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/sheet-engine/internal/config"
	"github.com/KirkDiggler/sheet-engine/internal/repositories/characters"
	"github.com/KirkDiggler/sheet-engine/internal/rulebook"
	"github.com/KirkDiggler/sheet-engine/internal/services/sheet"
)

func main() {
	var (
		ownerID     = flag.String("owner", "", "list characters for this owner")
		characterID = flag.String("character", "", "print the sheet for this character")
	)
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, cleanup := buildRepository(ctx, cfg)
	defer cleanup()

	svc := sheet.NewService(&sheet.ServiceConfig{
		Repository: repo,
		Catalog:    rulebook.SRD(),
	})

	switch {
	case *characterID != "":
		printSheet(ctx, svc, *characterID)
	case *ownerID != "":
		listCharacters(ctx, svc, *ownerID)
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func buildRepository(ctx context.Context, cfg *config.Config) (characters.Repository, func()) {
	opts := &redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	if cfg.Redis.URL != "" {
		parsed, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Printf("Failed to parse Redis URL: %v", err)
			log.Println("Falling back to in-memory repository")
			return characters.NewInMemory(), func() {}
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable at %s: %v", opts.Addr, err)
		log.Println("Falling back to in-memory repository")
		if closeErr := client.Close(); closeErr != nil {
			log.Printf("Failed to close Redis client: %v", closeErr)
		}
		return characters.NewInMemory(), func() {}
	}

	log.Printf("Connected to Redis at %s", opts.Addr)
	return characters.NewRedis(client), func() {
		if err := client.Close(); err != nil {
			log.Printf("Failed to close Redis client: %v", err)
		}
	}
}

func listCharacters(ctx context.Context, svc sheet.Service, ownerID string) {
	drafts, err := svc.ListCharacters(ctx, ownerID)
	if err != nil {
		log.Fatalf("Failed to list characters: %v", err)
	}
	if len(drafts) == 0 {
		fmt.Printf("No characters for owner %s\n", ownerID)
		return
	}
	for _, draft := range drafts {
		fmt.Printf("%s  %s (level %d %s %s)\n", draft.ID, draft.Name, draft.Level, draft.Race, draft.Class)
	}
}

func printSheet(ctx context.Context, svc sheet.Service, characterID string) {
	result, err := svc.GetSheet(ctx, characterID)
	if err != nil {
		log.Fatalf("Failed to load sheet: %v", err)
	}

	draft, derived := result.Draft, result.Derived
	fmt.Printf("%s, level %d %s %s\n", draft.Name, draft.Level, draft.Race, draft.Class)
	fmt.Printf("AC %d  HP %d/%d  Speed %d  Initiative %+d  Proficiency %+d\n",
		derived.AC, draft.HPCurrent, derived.MaxHP, derived.Speed,
		derived.InitiativeBonus, derived.ProficiencyBonus)

	var scores []string
	for _, ability := range rulebook.Abilities {
		scores = append(scores, fmt.Sprintf("%s %d (%+d)",
			strings.ToUpper(string(ability)), derived.Scores[ability], derived.Mods[ability]))
	}
	fmt.Println(strings.Join(scores, "  "))

	pp := draft.Purse
	fmt.Printf("Purse: %dpp %dgp %dep %dsp %dcp\n", pp.Platinum, pp.Gold, pp.Electrum, pp.Silver, pp.Copper)

	for level := 1; level <= 9; level++ {
		if info, ok := derived.SpellSlots[level]; ok && info.Max > 0 {
			fmt.Printf("Level %d slots: %d/%d\n", level, info.Free, info.Max)
		}
	}

	if len(draft.Backpack) > 0 {
		fmt.Println("Backpack:")
		for _, entry := range draft.Backpack {
			fmt.Printf("  %dx %s\n", entry.Quantity, entry.Name)
		}
	}
}
