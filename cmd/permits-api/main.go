package main

import (
	"log"

	_ "permit-dashboard/docs"
	"permit-dashboard/internal/api"
	"permit-dashboard/internal/api/handler"
	"permit-dashboard/internal/config"
	"permit-dashboard/internal/permits"
	"permit-dashboard/internal/store"
	"permit-dashboard/pkg/router"
)

// @title Permit Dashboard API
// @version 1.0
// @description Aggregates housing-construction permit datasets into chart-ready series.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal(err)
	}

	if err := store.InitDB(cfg.DBPath); err != nil {
		log.Fatal(err)
	}

	handler.Configure(cfg.OutputDir, cfg.DataPath, permits.Options{
		JurisdictionLimit: cfg.JurisdictionLimit,
		TopAduLimit:       cfg.TopAduLimit,
	})

	r := router.New()
	api.RegisterRoutes(r)
	r.Start(cfg.ListenAddr)
}
