package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-cv-tailor/internal/adapter"
	"github.com/MKhiriev/go-cv-tailor/internal/client"
	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/service"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("cv-tailor-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	tailorAdapter, err := adapter.NewHTTPTailorAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create tailor adapter")
	}

	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	services := service.NewClientServices(localStorage, serverAdapter, tailorAdapter, *cfg, log)

	app, err := client.NewApp(services, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
