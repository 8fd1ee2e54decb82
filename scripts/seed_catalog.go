package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"ammarstationary/internal/database"
	"ammarstationary/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// CatalogConfig mirrors configs/catalog.yaml. Cards reference categories by
// name; the seeder resolves them to IDs after the categories are created.
type CatalogConfig struct {
	Categories []models.CategoryInsert `yaml:"categories"`
	Cards      []seedCard              `yaml:"cards"`
	Services   []models.ServiceInsert  `yaml:"services"`
}

type seedCard struct {
	models.CardInsert `yaml:",inline"`
	Category          string `yaml:"category"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		catalogPath = flag.String("catalog", "configs/catalog.yaml", "path to catalog.yaml")
		dbPath      = flag.String("db", "./data/store.db", "path to sqlite db")
	)
	flag.Parse()

	data, err := os.ReadFile(*catalogPath)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	var cfg CatalogConfig
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}
	if len(cfg.Cards) == 0 && len(cfg.Categories) == 0 && len(cfg.Services) == 0 {
		return fmt.Errorf("nothing to seed in yaml")
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	categoryIDs := make(map[string]string)
	existing, err := db.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}
	for _, c := range existing {
		categoryIDs[c.Name] = c.ID
	}

	created := 0
	for i := range cfg.Categories {
		in := cfg.Categories[i]
		if _, ok := categoryIDs[in.Name]; ok {
			continue
		}
		category, err := db.CreateCategory(ctx, &in)
		if err != nil {
			return fmt.Errorf("create category %s: %w", in.Name, err)
		}
		categoryIDs[category.Name] = category.ID
		created++
	}

	for i := range cfg.Cards {
		card := cfg.Cards[i]
		if card.Category != "" {
			id, ok := categoryIDs[card.Category]
			if !ok {
				return fmt.Errorf("card %s references unknown category %q", card.Name, card.Category)
			}
			card.CategoryID = &id
		}
		if _, err = db.CreateCard(ctx, &card.CardInsert); err != nil {
			return fmt.Errorf("create card %s: %w", card.Name, err)
		}
		created++
	}

	for i := range cfg.Services {
		in := cfg.Services[i]
		if _, err = db.CreateService(ctx, &in); err != nil {
			return fmt.Errorf("create service %s: %w", in.Name, err)
		}
		created++
	}

	fmt.Printf("done: created=%d\n", created)
	return nil
}
