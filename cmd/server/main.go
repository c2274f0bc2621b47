package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-identity/internal/app"
	"github.com/MKhiriev/go-identity/internal/config"
	"github.com/MKhiriev/go-identity/internal/logger"
	"github.com/MKhiriev/go-identity/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("identity-server", "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger("identity-server", cfg.App.LogLevel)
	log.Debug().
		Str("http_address", cfg.Server.HTTPAddress).
		Str("grpc_address", cfg.Server.GRPCAddress).
		Str("db_driver", cfg.Storage.DB.Driver).
		Str("introspection_url", cfg.Adapter.IntrospectionURL).
		Msg("received configs")

	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	application, err := app.NewApp(context.Background(), cfg, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating application")
	}

	application.Run()
}

func printBuildInfo() {
	fmt.Printf("Build version: %s\n", orNA(buildVersion))
	fmt.Printf("Build date: %s\n", orNA(buildDate))
	fmt.Printf("Build commit: %s\n", orNA(buildCommit))
}

func orNA(value string) string {
	if value == "" {
		return "N/A"
	}
	return value
}
