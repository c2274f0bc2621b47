package service

import (
	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/crypto"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/internal/store"
	"github.com/MKhiriev/go-identity/internal/token"
	"github.com/MKhiriev/go-identity/models"
)

type Services struct {
	IdentityService UserIdentityService
	AppInfoService  AppInfoService
}

func NewServices(
	storages *store.Storages,
	hasher crypto.PasswordHasher,
	tokens token.Provider,
	cfg config.App,
	build models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg, build, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		IdentityService: NewUserIdentityService(storages.UserRepository, hasher, tokens, logger),
		AppInfoService:  appInfoService,
	}, nil
}
