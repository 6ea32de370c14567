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

package versefinder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/versefinder/ai"
	"github.com/poiesic/versefinder/ai/openai"
	"github.com/poiesic/versefinder/corpus"
	"github.com/poiesic/versefinder/index"
	"github.com/poiesic/versefinder/ingest"
	"github.com/poiesic/versefinder/search"
	"github.com/poiesic/versefinder/storage"
	"github.com/poiesic/versefinder/storage/badger"
)

// Database bundles the verse store and AI provider behind one handle.
// It is the embedding-side entry point for both the build pipeline
// and the searcher.
type Database struct {
	backend   *badger.Backend
	verseRepo storage.VerseRepository
	provider  ai.AIProvider
	aiConfig  *ai.Config
	logger    *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
	inMemory bool
}

// WithAIConfig overrides the default AI service configuration.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		o.aiConfig = config
	}
}

// WithInMemoryStore opens the verse store in memory, without
// persistence. Useful for tests and throwaway corpora.
func WithInMemoryStore() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens the verse store at filePath and connects the AI
// provider.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{
		aiConfig: ai.DefaultConfig(), // Default if not provided
	}
	for _, opt := range opts {
		opt(options)
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create verse repository
	verseRepo, err := badger.NewVerseRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create AI provider with configured settings
	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		verseRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:   backend,
		verseRepo: verseRepo,
		provider:  provider,
		aiConfig:  options.aiConfig,
		logger:    slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	// Close AI provider first
	if err := db.provider.Close(); err != nil {
		db.logger.Error("error closing AI provider", "err", err)
	}

	// Close repositories
	if err := db.verseRepo.Close(); err != nil {
		db.logger.Error("error closing verse repository", "err", err)
		return err
	}

	// Close backend
	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) VerseRepository() storage.VerseRepository {
	return db.verseRepo
}

func (db *Database) Provider() ai.AIProvider {
	return db.provider
}

// EmbeddingModel returns the configured embedding model name.
func (db *Database) EmbeddingModel() string {
	return db.aiConfig.EmbeddingModel
}

// IsBuilt reports whether the store carries a committed embedding
// manifest.
func (db *Database) IsBuilt(ctx context.Context) (bool, error) {
	_, err := db.verseRepo.GetManifest(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NewBuildPipeline creates an embedding build pipeline over this
// database.
func (db *Database) NewBuildPipeline(opts ...ingest.Option) (*ingest.Pipeline, error) {
	return ingest.NewPipeline(db.verseRepo, db.provider, db.aiConfig.EmbeddingModel, opts...)
}

// NewSearcher loads the corpus into memory, builds the vector index,
// and returns a ready searcher.
func (db *Database) NewSearcher(ctx context.Context, opts ...search.Option) (*search.Searcher, error) {
	c, err := corpus.Load(ctx, db.verseRepo, db.logger)
	if err != nil {
		return nil, err
	}
	ix, err := index.New(c.Matrix)
	if err != nil {
		return nil, err
	}
	return search.NewSearcher(c, ix, db.provider, opts...)
}
