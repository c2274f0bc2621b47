// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter holds clients for outbound integrations.
//
// [NewHTTPIntrospector] lets a service that does not own the user store
// resolve bearer tokens against a remote identity server. Non-2xx responses
// are mapped to sentinel errors by mapHTTPError.
package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-identity/internal/auth"
	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/utils"
	"github.com/MKhiriev/go-identity/models"
)

const introspectPath = "/api/auth/introspect"

type httpIntrospector struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPIntrospector returns an [auth.Introspector] that calls
// POST {cfg.IntrospectionURL}/api/auth/introspect.
//
// Returns [ErrInvalidAddress] if cfg.IntrospectionURL is empty or cannot be
// parsed as a URL.
func NewHTTPIntrospector(cfg config.Adapter, logger *logger.Logger) (auth.Introspector, error) {
	baseURL, err := normalizeBaseURL(cfg.IntrospectionURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	logger.Info().Str("url", baseURL).Msg("remote token introspection enabled")

	return &httpIntrospector{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Introspect implements [auth.Introspector].
func (h *httpIntrospector) Introspect(ctx context.Context, token string) (models.TokenPayload, error) {
	var payload models.TokenPayload

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.IntrospectionRequest{Token: token}).
		SetResult(&payload).
		Post(introspectPath)
	if err != nil {
		return models.TokenPayload{}, fmt.Errorf("introspection request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		logger.FromContext(ctx).Debug().Err(err).Int("status", resp.StatusCode()).Msg("remote introspection rejected token")
		return models.TokenPayload{}, err
	}

	if payload.Subject == "" || !payload.Role.IsValid() {
		return models.TokenPayload{}, ErrMalformedResponse
	}

	return payload, nil
}
