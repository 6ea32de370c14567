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
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	versefinder "github.com/poiesic/versefinder"
	"github.com/poiesic/versefinder/ai"
	"github.com/poiesic/versefinder/ingest"
	"github.com/poiesic/versefinder/server"
)

func main() {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	app := &cli.App{
		Name:   "versefinder",
		Usage:  "Semantic Bible verse recommendation service",
		Before: setupLogger,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the recommendation API",
				Action: serveCommand,
				Flags: append(storeFlags(), append(aiFlags(),
					&cli.StringFlag{
						Name:  "addr",
						Usage: "HTTP listen address",
						Value: ":8000",
					},
					&cli.StringFlag{
						Name:    "csv",
						Usage:   "Corpus CSV used for auto-building an empty store",
						EnvVars: []string{"BIBLE_CSV"},
					},
					&cli.BoolFlag{
						Name:    "auto-build",
						Usage:   "Build embeddings on startup when the store is empty (set AUTO_BUILD_EMBEDS=0 to disable)",
						EnvVars: []string{"AUTO_BUILD_EMBEDS"},
						Value:   true,
					},
				)...),
			},
			{
				Name:   "build",
				Usage:  "Build verse embeddings from a corpus CSV",
				Action: buildCommand,
				Flags: append(storeFlags(), append(aiFlags(),
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "Corpus CSV in book,chapter,verse,text format",
						EnvVars:  []string{"BIBLE_CSV"},
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of verses to embed in each batch",
						Value: 64,
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of concurrent embedding workers",
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed embedding calls",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Rebuild even when the stored corpus is up to date",
					},
				)...),
			},
			{
				Name:      "normalize",
				Usage:     "Normalize a raw Bible CSV dump into the standard format",
				Action:    normalizeCommand,
				ArgsUsage: "<input.csv> <output.csv>",
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func storeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "db",
			Aliases:  []string{"d"},
			Usage:    "Path to BadgerDB database directory",
			EnvVars:  []string{"VERSEFINDER_DB"},
			Required: true,
		},
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			EnvVars: []string{"EMBEDDING_HOST"},
			Value:   "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			EnvVars: []string{"EMBEDDING_MODEL"},
			Value:   "all-minilm",
		},
		&cli.StringFlag{
			Name:    "rerank-host",
			Usage:   "Rerank service host URL (defaults to embedding-host when a rerank model is set)",
			EnvVars: []string{"RERANK_HOST"},
		},
		&cli.StringFlag{
			Name:    "rerank-model",
			Usage:   "Rerank model name; empty disables reranking",
			EnvVars: []string{"RERANK_MODEL"},
		},
	}
}

func aiConfigFromFlags(c *cli.Context) (*ai.Config, error) {
	config := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithRerankHost(c.String("rerank-host")),
		ai.WithRerankModel(c.String("rerank-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}
	return config, nil
}

func serveCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	db, err := versefinder.NewDatabase(c.String("db"), versefinder.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	built, err := db.IsBuilt(ctx)
	if err != nil {
		return err
	}
	if !built {
		if !c.Bool("auto-build") {
			return fmt.Errorf("verse store is empty and auto-build is disabled; run the build command first")
		}
		csvPath := c.String("csv")
		if csvPath == "" {
			return fmt.Errorf("verse store is empty and no corpus CSV is configured (set --csv or BIBLE_CSV)")
		}

		slog.Info("verse store is empty, building embeddings", "csv", csvPath)
		pipeline, err := db.NewBuildPipeline(ingest.WithProgressWriter(os.Stderr))
		if err != nil {
			return err
		}
		if _, err := pipeline.Build(ctx, csvPath, false); err != nil {
			pipeline.Release()
			return fmt.Errorf("auto-build failed: %w", err)
		}
		pipeline.Release()
	}

	searcher, err := db.NewSearcher(ctx)
	if err != nil {
		return fmt.Errorf("failed to load search corpus: %w", err)
	}

	srv, err := server.NewServer(searcher, db.EmbeddingModel())
	if err != nil {
		return err
	}

	// Serve until interrupted, then drain in-flight requests.
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(c.String("addr"))
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func buildCommand(c *cli.Context) error {
	ctx := context.Background()

	aiConfig, err := aiConfigFromFlags(c)
	if err != nil {
		return err
	}

	db, err := versefinder.NewDatabase(c.String("db"), versefinder.WithAIConfig(aiConfig))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	opts := []ingest.Option{
		ingest.WithBatchSize(c.Int("batch-size")),
		ingest.WithRetry(c.Int("max-retries"), c.Duration("retry-delay")),
		ingest.WithProgressWriter(os.Stderr),
	}
	if c.Int("pool-size") > 0 {
		opts = append(opts, ingest.WithPoolSize(c.Int("pool-size")))
	}

	pipeline, err := db.NewBuildPipeline(opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	result, err := pipeline.Build(ctx, c.String("csv"), c.Bool("force"))
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	if result.Skipped {
		fmt.Fprintf(os.Stderr, "Corpus unchanged, skipped rebuild (%d verses)\n", result.Verses)
	} else {
		fmt.Fprintf(os.Stderr, "Built %d verses (dimension %d) in %s\n",
			result.Verses, result.Dimension, result.Duration.Round(time.Millisecond))
	}
	return nil
}

func normalizeCommand(c *cli.Context) error {
	if c.NArg() != 2 {
		return fmt.Errorf("expected <input.csv> <output.csv> arguments")
	}

	rows, err := ingest.NormalizeCSV(c.Args().Get(0), c.Args().Get(1))
	if err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Wrote %s (%d rows)\n", c.Args().Get(1), rows)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
