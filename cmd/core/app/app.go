/*
 * Copyright 2026 Pulseboard Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package app wires the core service together and runs it.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pulseboard/pulseboard/pkg/config"
	"github.com/pulseboard/pulseboard/pkg/core"
	"github.com/pulseboard/pulseboard/pkg/core/api"
	"github.com/pulseboard/pulseboard/pkg/core/auth"
	"github.com/pulseboard/pulseboard/pkg/lifecycle"
	"github.com/pulseboard/pulseboard/pkg/logger"
	"github.com/pulseboard/pulseboard/pkg/models"
	"github.com/pulseboard/pulseboard/pkg/store"
	"github.com/pulseboard/pulseboard/pkg/version"
)

const defaultListenAddr = ":8090"

var (
	errMissingAPIKey    = errors.New("no heartbeat API key configured; set api_key or the API_KEY environment variable")
	errMissingAuth      = errors.New("no auth section configured")
	errMissingJWTSecret = errors.New("no JWT secret configured; set auth.jwt_secret or the JWT_SECRET environment variable")
	errUnknownStoreType = errors.New("unknown store type")
)

// Options controls how the core service is started.
type Options struct {
	ConfigPath string
}

// Run starts the core service and blocks until shutdown.
func Run(ctx context.Context, opts Options) error {
	if err := lifecycle.InitializeLogger(logger.DefaultConfig()); err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, opts.ConfigPath)
	if err != nil {
		return err
	}

	log, err := lifecycle.CreateComponentLogger("core", loggerConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	recordStore, err := newStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	defer func() {
		if err := recordStore.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close record store")
		}
	}()

	coreServer := core.NewServer(cfg, recordStore, log)
	authService := auth.NewAuth(cfg.Auth, log)

	apiServer := api.NewAPIServer(cfg.CORS,
		api.WithCoreService(coreServer),
		api.WithAuthService(authService),
		api.WithAPIKey(cfg.APIKey),
		api.WithLogger(log),
	)

	log.Info().
		Str("version", version.GetFullVersion()).
		Str("listen_addr", cfg.ListenAddr).
		Str("store_type", cfg.Store.Type).
		Msg("Starting core service")

	errCh := make(chan error, 1)

	go func() {
		errCh <- apiServer.Start(cfg.ListenAddr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("API server stopped: %w", err)
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func loadConfig(ctx context.Context, path string) (*models.CoreConfig, error) {
	var cfg models.CoreConfig

	loader := config.NewConfig(nil)
	if err := loader.LoadAndValidate(ctx, path, &cfg); err != nil {
		return nil, err
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}

	// Secrets may come from the environment instead of the config file.
	if key := os.Getenv("API_KEY"); key != "" {
		cfg.APIKey = key
	}

	if cfg.Auth != nil {
		if secret := os.Getenv("JWT_SECRET"); secret != "" {
			cfg.Auth.JWTSecret = secret
		}
	}

	if cfg.APIKey == "" {
		return nil, errMissingAPIKey
	}

	if cfg.Auth == nil {
		return nil, errMissingAuth
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, errMissingJWTSecret
	}

	return &cfg, nil
}

func loggerConfig(cfg *models.CoreConfig) *logger.Config {
	if cfg.Logging == nil {
		return logger.DefaultConfig()
	}

	return &logger.Config{
		Level:      cfg.Logging.Level,
		Debug:      cfg.Logging.Debug,
		Output:     cfg.Logging.Output,
		TimeFormat: cfg.Logging.TimeFormat,
	}
}

func newStore(ctx context.Context, cfg *models.CoreConfig, log logger.Logger) (store.Store, error) {
	switch cfg.Store.Type {
	case "", "memory":
		log.Warn().Msg("Using in-memory record store; records are lost on restart")
		return store.NewMemoryStore(), nil
	case "nats":
		return store.NewNatsStore(ctx, cfg.Store.NatsURL, cfg.Store.Bucket)
	case "postgres":
		return store.NewPostgresStore(ctx, cfg.Store.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownStoreType, cfg.Store.Type)
	}
}
