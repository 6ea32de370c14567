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

package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/poiesic/versefinder/search"
)

const apiTitle = "BibleVerse Finder — API"

// Server exposes the recommendation pipeline over HTTP.
type Server struct {
	echo         *echo.Echo
	searcher     *search.Searcher
	encoderModel string
	logger       *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewServer creates an HTTP server around the searcher. encoderModel
// names the embedding model and is reported in the API metadata.
func NewServer(searcher *search.Searcher, encoderModel string, opts ...Option) (*Server, error) {
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	s := &Server{
		searcher:     searcher,
		encoderModel: encoderModel,
		logger:       slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	s.logger = s.logger.With("component", "server")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Browser clients call from arbitrary origins. Credentials stay off
	// so the wildcard origin remains valid.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: false,
	}))
	e.Use(middleware.Recover())

	e.GET("/", s.handleRoot)
	e.GET("/health", s.handleHealth)
	e.POST("/recommend", s.handleRecommend)

	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 60 * time.Second
	e.Server.IdleTimeout = 120 * time.Second

	s.echo = e
	return s, nil
}

// Start listens on addr and serves until Shutdown is called or the
// listener fails.
func (s *Server) Start(addr string) error {
	s.logger.Info("starting HTTP server", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}
