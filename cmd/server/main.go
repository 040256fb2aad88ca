// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/wcanalyzer/internal/api"
	"github.com/andresuchdata/wcanalyzer/internal/cache"
	"github.com/andresuchdata/wcanalyzer/internal/config"
	"github.com/andresuchdata/wcanalyzer/internal/domain"
	"github.com/andresuchdata/wcanalyzer/internal/engine"
	"github.com/andresuchdata/wcanalyzer/internal/repository"
	"github.com/andresuchdata/wcanalyzer/internal/repository/postgres"
	"github.com/andresuchdata/wcanalyzer/internal/service"
	"github.com/andresuchdata/wcanalyzer/internal/storage"
	"github.com/andresuchdata/wcanalyzer/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetFormat(cfg.Log.Format)
	logger.SetLevel(cfg.Log.Level)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	benchmarks := engine.DefaultBenchmarks()
	if cfg.Analysis.BenchmarksFile != "" {
		loaded, err := engine.LoadBenchmarks(cfg.Analysis.BenchmarksFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Analysis.BenchmarksFile).Msg("Failed to load benchmarks")
		}
		benchmarks = loaded
	}

	defaultIndustry, ok := domain.ParseIndustry(cfg.Analysis.DefaultIndustry)
	if !ok {
		log.Fatal().Str("industry", cfg.Analysis.DefaultIndustry).Msg("Unknown default industry")
	}

	snapshots, err := cache.NewSnapshotStore(cfg.Cache)
	if err != nil {
		log.Warn().Err(err).Msg("Snapshot store unavailable, keeping snapshots in memory")
		snapshots = cache.NewMemorySnapshotStore()
	}

	analysisCache, err := cache.NewAnalysisCache(cfg.Cache, benchmarks.Fingerprint())
	if err != nil {
		log.Warn().Err(err).Msg("Analysis cache unavailable, continuing without cache")
		analysisCache = cache.NewNoopAnalysisCache()
	}

	var repo repository.AnalysisRepository = repository.NewMemoryAnalysisRepository()
	if cfg.Database.Enabled {
		db, err := postgres.NewDB(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
		repo = postgres.NewAnalysisRepository(db)
	}

	objectStorage, err := storage.New(ctx, cfg.Storage, cfg.App.ReportDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize report storage")
	}

	analysisService := service.NewAnalysisService(benchmarks, repo, analysisCache, snapshots, service.Defaults{
		Industry:     defaultIndustry,
		WACC:         cfg.Analysis.DefaultWACC,
		EBITDAMargin: cfg.Analysis.DefaultEBITDAMargin,
	})
	if err := analysisService.InvalidateCache(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to clear cached analyses")
	}
	reportService := service.NewReportService(objectStorage, cfg.Storage.Prefix)

	router := api.NewRouter(&api.Services{
		AnalysisService: analysisService,
		ReportService:   reportService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info().
			Str("port", cfg.Server.Port).
			Bool("database", cfg.Database.Enabled).
			Bool("redis", cfg.Cache.Enabled).
			Bool("object_storage", cfg.Storage.Enabled).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
