// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app is the composition root of the identity server. It builds the
// storage, service, guard, handler and server layers from a
// [config.StructuredConfig] and owns their lifecycle.
package app

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-identity/internal/adapter"
	"github.com/MKhiriev/go-identity/internal/auth"
	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/crypto"
	"github.com/MKhiriev/go-identity/internal/handler"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/server"
	"github.com/MKhiriev/go-identity/internal/service"
	"github.com/MKhiriev/go-identity/internal/store"
	"github.com/MKhiriev/go-identity/internal/token"
	"github.com/MKhiriev/go-identity/models"
)

type App struct {
	storages *store.Storages
	server   server.Server
	logger   *logger.Logger
}

// NewApp wires every layer. On error, resources opened so far are released.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger) (*App, error) {
	storages, err := store.NewStorages(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("error creating storages: %w", err)
	}

	a, err := newApp(storages, cfg, build, log)
	if err != nil {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing storages")
		}
		return nil, err
	}

	return a, nil
}

func newApp(storages *store.Storages, cfg *config.StructuredConfig, build models.AppBuildInfo, log *logger.Logger) (*App, error) {
	hasher, err := crypto.NewPasswordHasher(cfg.App.PasswordHashCost)
	if err != nil {
		return nil, fmt.Errorf("error creating password hasher: %w", err)
	}

	tokens, err := token.NewJWTProvider(cfg.App.TokenSignKey, cfg.App.TokenIssuer, cfg.App.TokenDuration)
	if err != nil {
		return nil, fmt.Errorf("error creating token provider: %w", err)
	}

	services, err := service.NewServices(storages, hasher, tokens, cfg.App, build, log)
	if err != nil {
		return nil, fmt.Errorf("error creating services: %w", err)
	}

	introspector, err := newIntrospector(cfg.Adapter, services, log)
	if err != nil {
		return nil, fmt.Errorf("error creating introspector: %w", err)
	}

	handlers, err := handler.NewHandlers(services, auth.NewGuard(introspector, log), cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("error creating handlers: %w", err)
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		return nil, fmt.Errorf("error creating server: %w", err)
	}

	return &App{storages: storages, server: srv, logger: log}, nil
}

// newIntrospector resolves tokens remotely when an introspection URL is
// configured and against the local identity service otherwise.
func newIntrospector(cfg config.Adapter, services *service.Services, log *logger.Logger) (auth.Introspector, error) {
	if cfg.IntrospectionURL != "" {
		return adapter.NewHTTPIntrospector(cfg, log)
	}
	return auth.NewLocalIntrospector(services.IdentityService), nil
}

// Run blocks until the servers receive a termination signal, then closes
// the storage.
func (a *App) Run() {
	a.server.RunServer()
	a.Close()
}

// Close releases the storage. It does not stop running servers.
func (a *App) Close() {
	if err := a.storages.Close(); err != nil {
		a.logger.Err(err).Msg("error closing storages")
	}
}
