package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"kiosk-data/internal/config"
	"kiosk-data/internal/database"
	httpapi "kiosk-data/internal/http"
	"kiosk-data/internal/logger"
	"kiosk-data/internal/repository"
	"kiosk-data/internal/service"
	"kiosk-data/internal/store"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "kiosk-data")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Optional DB: when it is disabled or unreachable the service runs in
	// demo mode on in-memory repos, so the kiosk UI works without
	// infrastructure (reads serve the fixed catalog, writes simulate
	// success with demo- ids).
	var db *sql.DB
	if cfg.DBEnabled {
		if d, err := database.NewPostgresDB(&cfg.Database); err == nil {
			db = d
			log.Info("DB enabled for kiosk-data")
		} else {
			log.Warn("DB enabled but connection failed, falling back to demo mode", zap.Error(err))
		}
	}
	demoMode := db == nil
	if demoMode {
		log.Info("Running in demo mode: no registrations will be persisted")
	}

	var programsRepo repository.ProgramsRepository
	var visitorsRepo repository.VisitorsRepository
	var kv store.KV
	if demoMode {
		memPrograms := repository.NewMemoryProgramsRepository()
		programsRepo = memPrograms
		visitorsRepo = repository.NewMemoryVisitorsRepository(memPrograms)
	} else {
		programsRepo = repository.NewPostgresProgramsRepository(db)
		visitorsRepo = repository.NewPostgresVisitorsRepository(db)
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		kv = store.NewRedisKV(redisClient)
	}

	geoip := service.NewGeoIPClient(cfg.GeoIP.PrimaryURL, cfg.GeoIP.FallbackURL, log)
	collector := service.NewMetadataCollector(geoip, log)
	catalog := service.NewCatalogService(programsRepo, kv, cfg.CatalogCacheTTL, demoMode, log)
	registration := service.NewRegistrationService(visitorsRepo, log)

	router := httpapi.NewRouter(log)
	router.RegisterKioskRoutes(httpapi.NewKioskHandler(catalog, registration, collector, visitorsRepo, log))

	srv := service.NewServer(cfg.HTTP.Addr, router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
	case err := <-errCh:
		if err != nil {
			log.Error("HTTP server exited", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)
	if db != nil {
		_ = database.Close(db)
	}
}
