package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewAppInfoService
// ─────────────────────────────────────────────

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name        string
		cfgVersion  string
		build       models.AppBuildInfo
		wantVersion string
		wantErr     error
	}{
		{
			name:        "configured version",
			cfgVersion:  "1.0.0",
			wantVersion: "1.0.0",
		},
		{
			name:        "configured version wins over build",
			cfgVersion:  "1.0.0",
			build:       models.NewAppBuildInfo("0.9.0", "2026-01-01", "abc123"),
			wantVersion: "1.0.0",
		},
		{
			name:        "build version fallback",
			build:       models.NewAppBuildInfo("v1.2.3-beta+build.42", "", ""),
			wantVersion: "v1.2.3-beta+build.42",
		},
		{
			name:    "no version at all",
			wantErr: ErrVersionIsNotSpecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: tt.cfgVersion}, tt.build, logger.Nop())
			if tt.wantErr != nil {
				assert.Nil(t, svc)
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, svc.GetAppVersion(context.Background()))
		})
	}
}

// ─────────────────────────────────────────────
// GetAppInfo
// ─────────────────────────────────────────────

func TestGetAppInfo(t *testing.T) {
	build := models.NewAppBuildInfo("0.9.0", "2026-01-01", "abc123")
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, build, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, models.AppInfo{
		Version:     "1.0.0",
		BuildDate:   "2026-01-01",
		BuildCommit: "abc123",
	}, svc.GetAppInfo(ctx))
}
