package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/pwslcc24-hash/Sleepr/internal"
	"github.com/pwslcc24-hash/Sleepr/internal/api"
	"github.com/pwslcc24-hash/Sleepr/internal/config"
	"github.com/pwslcc24-hash/Sleepr/internal/seed"
	"github.com/pwslcc24-hash/Sleepr/internal/store"
)

func main() {
	cfg := config.Load()

	var logger *internal.ZapLogger
	var err error
	if cfg.Env == "production" {
		logger, err = internal.NewProductionLogger()
	} else {
		logger, err = internal.NewDevelopmentLogger()
	}
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	var persister store.Persister
	switch cfg.PersistBackend {
	case "memory":
		persister = store.NewMemoryPersister()
	default:
		dir := filepath.Dir(cfg.DataFile)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			_ = os.MkdirAll(dir, 0755)
		}
		persister = store.NewFilePersister(cfg.DataFile)
	}

	st, err := store.Open(
		persister,
		seed.Snapshot(time.Now()),
		logger,
		store.WithSimulatedLatency(cfg.SimulatedLatency),
	)
	if err != nil {
		logger.Fatalf("failed to open store: %v", err)
	}

	app := &api.Application{Log: logger, Data: st}
	r := api.NewRouter(app)

	logger.Infof("Server running on %s", cfg.HTTPAddr)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		logger.Fatalf("failed to start server: %v", err)
	}
}
