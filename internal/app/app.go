package app

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/technical/config"
	"github.com/guttosm/technical/internal/api"
	"github.com/guttosm/technical/internal/dataset"
	"github.com/guttosm/technical/internal/logger"
	"github.com/guttosm/technical/internal/service"
	"github.com/guttosm/technical/internal/storage"
)

// storeOpener is an indirection used by BuildService; overridden in tests.
var storeOpener = func(cfg config.DatasetConfig) storage.DatasetStore {
	return storage.NewFileStore(cfg.Dir, cfg.Ext)
}

// BuildService wires the backing store, the dataset reader and the service
// layer from cfg. The store is returned as well so callers can probe it.
func BuildService(cfg config.Config) (service.TechnicalService, storage.DatasetStore) {
	store := storeOpener(cfg.Dataset)
	reader := dataset.NewReader(store)
	return service.NewTechnicalService(store, reader, cfg.Aggregator.Parallel), store
}

// InitializeApp sets up all application dependencies and returns
// a fully configured Gin router and a cleanup function for graceful shutdown.
//
// Responsibilities:
//   - Builds the file-backed store, reader and service from cfg.
//   - Creates the HTTP handler layer and the Gin router.
//   - Registers health and readiness probes.
//
// A missing data directory is not fatal: it is logged, /readyz reports 503
// and the listing fails until the directory appears.
func InitializeApp(cfg config.Config) (*gin.Engine, func(), error) {
	svc, store := BuildService(cfg)

	if err := store.Ping(); err != nil {
		logger.L().Warn().Err(err).Str("dir", cfg.Dataset.Dir).Msg("data directory not reachable")
	}

	handler := api.NewHandler(svc)
	router := api.NewRouter(handler, cfg.Server)

	api.NewHealthHandler(store.Ping).Register(router)

	// Nothing is held open between requests.
	cleanup := func() {}

	return router, cleanup, nil
}
