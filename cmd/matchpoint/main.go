// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	matchpoint "github.com/poiesic/matchpoint"
	"github.com/poiesic/matchpoint/ai"
	"github.com/poiesic/matchpoint/ai/openai"
	"github.com/poiesic/matchpoint/catalog"
	"github.com/poiesic/matchpoint/embedding"
	"github.com/poiesic/matchpoint/storage/badger"
)

func main() {
	app := &cli.App{
		Name:  "matchpoint",
		Usage: "Match business pain points to product features",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "Build the feature embedding cache from a catalog file",
				Action: buildCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to feature catalog JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB cache directory",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Rebuild even when cached vectors exist",
					},
				),
			},
			{
				Name:   "verify",
				Usage:  "Report stale and missing cache entries for a catalog",
				Action: verifyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to feature catalog JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB cache directory",
						Required: true,
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show embedding cache statistics",
				Action: statsCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB cache directory",
						Required: true,
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Export the embedding cache as inspectable JSON",
				Action: exportCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB cache directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
				},
			},
			{
				Name:   "match",
				Usage:  "Analyze a pain point and print recommended features",
				Action: matchCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to feature catalog JSON file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB cache directory",
					},
					&cli.StringFlag{
						Name:     "query",
						Aliases:  []string{"q"},
						Usage:    "Pain point description to analyze",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "max-results",
						Usage: "Maximum number of results",
						Value: 5,
					},
					&cli.BoolFlag{
						Name:  "basic",
						Usage: "Force basic text matching (no embedding provider)",
					},
				),
			},
			{
				Name:   "categories",
				Usage:  "List catalog categories with feature counts",
				Action: categoriesCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "catalog",
						Aliases:  []string{"c"},
						Usage:    "Path to feature catalog JSON file",
						Required: true,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func providerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "nomic-embed-text",
		},
		&cli.IntFlag{
			Name:  "dimension",
			Usage: "Embedding vector dimension",
			Value: 384,
		},
		&cli.DurationFlag{
			Name:  "provider-timeout",
			Usage: "Timeout for each embedding provider call",
			Value: 30 * time.Second,
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithDimension(c.Int("dimension")),
		ai.WithTimeout(c.Duration("provider-timeout")),
	)
}

func buildCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := catalog.Load(c.String("catalog"))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	aiConfig := aiConfigFromFlags(c)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewEmbeddingRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	manager, err := embedding.NewManager(repo, embedder,
		embedding.WithDimension(aiConfig.Dimension))
	if err != nil {
		return fmt.Errorf("failed to create embedding manager: %w", err)
	}
	defer manager.Release()

	if !c.Bool("force") {
		stats, err := manager.Stats(ctx)
		if err != nil {
			return fmt.Errorf("failed to read cache stats: %w", err)
		}
		if stats.CacheExists && stats.Count >= store.Len() {
			fmt.Printf("Cache already holds %d embeddings for %d features (use --force to rebuild)\n",
				stats.Count, store.Len())
			return nil
		}
	}

	start := time.Now()
	embeddings, err := manager.BuildAll(ctx, store.Features())
	if err != nil {
		return fmt.Errorf("failed to build embeddings: %w", err)
	}
	if err := manager.Persist(ctx, embeddings); err != nil {
		return fmt.Errorf("failed to persist embeddings: %w", err)
	}

	fmt.Printf("Built embeddings for %d of %d features in %s\n",
		len(embeddings), store.Len(), time.Since(start).Round(time.Millisecond))
	return nil
}

func verifyCommand(c *cli.Context) error {
	ctx := context.Background()

	store, err := catalog.Load(c.String("catalog"))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	manager, cleanup, err := openManager(c.String("db"))
	if err != nil {
		return err
	}
	defer cleanup()

	stale, missing, err := manager.Verify(ctx, store.Features())
	if err != nil {
		return fmt.Errorf("failed to verify cache: %w", err)
	}

	if len(stale) == 0 && len(missing) == 0 {
		fmt.Printf("Cache is current for all %d features\n", store.Len())
		return nil
	}
	for _, id := range stale {
		fmt.Printf("stale: %s\n", id)
	}
	for _, id := range missing {
		fmt.Printf("missing: %s\n", id)
	}
	fmt.Printf("%d stale, %d missing of %d features\n", len(stale), len(missing), store.Len())
	return nil
}

func statsCommand(c *cli.Context) error {
	ctx := context.Background()

	manager, cleanup, err := openManager(c.String("db"))
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := manager.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}

	fmt.Printf("Embeddings: %d\n", stats.Count)
	fmt.Printf("Dimension:  %d\n", stats.Dimension)
	fmt.Printf("Cache:      %v\n", stats.CacheExists)
	return nil
}

func exportCommand(c *cli.Context) error {
	ctx := context.Background()

	backend, err := badger.OpenBackend(c.String("db"), false)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewEmbeddingRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	out := os.Stdout
	if path := c.String("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := repo.ExportJSON(ctx, out); err != nil {
		return fmt.Errorf("failed to export cache: %w", err)
	}
	return nil
}

func matchCommand(c *cli.Context) error {
	ctx := context.Background()

	opts := []matchpoint.AdvisorOption{
		matchpoint.WithAIConfig(aiConfigFromFlags(c)),
	}
	if c.Bool("basic") {
		opts = append(opts, matchpoint.WithBasicMatching())
	}

	advisor, err := matchpoint.New(ctx, c.String("catalog"), c.String("db"), opts...)
	if err != nil {
		return fmt.Errorf("failed to initialize advisor: %w", err)
	}
	defer advisor.Close()

	analysis, err := advisor.AnalyzePainPoint(ctx, c.String("query"), c.Int("max-results"))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(analysis)
}

func categoriesCommand(c *cli.Context) error {
	store, err := catalog.Load(c.String("catalog"))
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	for _, summary := range store.Categories() {
		fmt.Printf("%s (%d)\n", summary.Name, summary.FeatureCount)
		for _, name := range summary.FeatureNames {
			fmt.Printf("  - %s\n", name)
		}
	}
	return nil
}

// openManager wires a read-only embedding manager over an on-disk cache for
// commands that never call the provider.
func openManager(dbPath string) (*embedding.Manager, func(), error) {
	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}

	repo, err := badger.NewEmbeddingRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create repository: %w", err)
	}

	manager, err := embedding.NewManager(repo, nil)
	if err != nil {
		repo.Close()
		backend.Close()
		return nil, nil, fmt.Errorf("failed to create embedding manager: %w", err)
	}

	cleanup := func() {
		manager.Release()
		repo.Close()
		backend.Close()
	}
	return manager, cleanup, nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
