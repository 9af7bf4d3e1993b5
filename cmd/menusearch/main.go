// Copyright 2025 Forkful Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
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

	"github.com/fatih/color"
	"github.com/forkful/menusearch"
	"github.com/forkful/menusearch/ai"
	"github.com/forkful/menusearch/core"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:   "menusearch",
		Usage:  "Hybrid search over restaurant menus",
		Before: setup,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file with connection settings",
				Value: ".env",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "search",
				Usage:     "Search the indexed menus",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: append(serviceFlags(),
					&cli.IntFlag{
						Name:    "top-k",
						Aliases: []string{"k"},
						Usage:   "Maximum number of results to return",
						Value:   10,
					},
					&cli.StringFlag{
						Name:  "session",
						Usage: "Session id for result caching",
					},
					&cli.BoolFlag{
						Name:  "llm-rank",
						Usage: "Rank results with the chat model instead of fused scores",
					},
				),
			},
			{
				Name:      "seed",
				Usage:     "Index menu items from a JSON file",
				ArgsUsage: "<items.json>",
				Action:    seedCommand,
				Flags: append(serviceFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of items to index per batch",
						Value: 100,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serviceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data-dir",
			Aliases: []string{"d"},
			Usage:   "Path to the service data directory",
			Value:   "./menusearch_data",
		},
		&cli.StringFlag{
			Name:    "postgres",
			Usage:   "Postgres DSN for the metadata store",
			EnvVars: []string{"MENUSEARCH_POSTGRES_DSN"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			EnvVars: []string{"MENUSEARCH_EMBEDDING_HOST"},
			Value:   "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			EnvVars: []string{"MENUSEARCH_EMBEDDING_MODEL"},
			Value:   "embeddinggemma",
		},
		&cli.StringFlag{
			Name:    "chat-host",
			Usage:   "Chat service host URL for parsing and ranking",
			EnvVars: []string{"MENUSEARCH_CHAT_HOST"},
			Value:   "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:    "chat-model",
			Usage:   "Chat model name for parsing and ranking",
			EnvVars: []string{"MENUSEARCH_CHAT_MODEL"},
			Value:   "qwen2.5:3b",
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token for the AI endpoints",
			EnvVars: []string{"MENUSEARCH_API_TOKEN"},
			Value:   "none",
		},
	}
}

func newService(c *cli.Context, extra ...menusearch.ServiceOption) (*menusearch.Service, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatHost(c.String("chat-host")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithToken(c.String("token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []menusearch.ServiceOption{menusearch.WithAIConfig(aiConfig)}
	if dsn := c.String("postgres"); dsn != "" {
		opts = append(opts, menusearch.WithPostgres(dsn))
	}
	opts = append(opts, extra...)

	return menusearch.NewService(c.String("data-dir"), opts...)
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a search query is required")
	}

	var extra []menusearch.ServiceOption
	if c.Bool("llm-rank") {
		extra = append(extra, menusearch.WithLLMRanking())
	}

	svc, err := newService(c, extra...)
	if err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Close()

	ctx := context.Background()
	var results []core.Result
	if sessionID := c.String("session"); sessionID != "" {
		results, err = svc.SearchWithSession(ctx, sessionID, query, c.Int("top-k"))
	} else {
		results, err = svc.Search(ctx, query, c.Int("top-k"))
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printResults(query, results)
	return nil
}

func seedCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("a path to a JSON items file is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read items file: %w", err)
	}
	var items []core.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to parse items file: %w", err)
	}

	svc, err := newService(c)
	if err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Close()

	ctx := context.Background()
	batchSize := c.Int("batch-size")
	if batchSize < 1 {
		batchSize = 1
	}

	indexed := 0
	for start := 0; start < len(items); start += batchSize {
		end := min(start+batchSize, len(items))
		if err := svc.IndexItems(ctx, items[start:end]...); err != nil {
			return fmt.Errorf("failed to index items %d-%d: %w", start, end-1, err)
		}
		indexed = end
		fmt.Fprintf(os.Stderr, "indexed %d/%d items\n", indexed, len(items))
	}

	color.Green("Indexed %d menu items from %s", indexed, path)
	return nil
}

func printResults(query string, results []core.Result) {
	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	bold.Printf("Found %d results for %q\n\n", len(results), query)
	for i, res := range results {
		name := res.Metadata.String("name")
		if name == "" {
			name = res.ID
		}
		bold.Printf("%d. %s", i+1, name)
		if price, ok := res.Metadata.Price(); ok {
			fmt.Printf("  $%.2f", price)
		}
		fmt.Println()

		if restaurant := res.Metadata.String("restaurant"); restaurant != "" {
			fmt.Printf("   %s\n", restaurant)
		}
		if description := res.Metadata.String("description"); description != "" {
			fmt.Printf("   %s\n", description)
		}
		dim.Printf("   relevance %.2f  score %.4f\n\n", res.Relevance, res.Score)
	}
}

func setup(c *cli.Context) error {
	if err := godotenv.Load(c.String("env-file")); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load env file: %w", err)
	}

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
