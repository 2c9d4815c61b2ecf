package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finetune-sim/internal/adapters/primary/http/handlers"
	"finetune-sim/internal/adapters/primary/http/middleware"
	"finetune-sim/internal/adapters/secondary/artifacts"
	"finetune-sim/internal/adapters/secondary/memory"
	"finetune-sim/internal/adapters/secondary/postgres"
	"finetune-sim/internal/config"
	"finetune-sim/internal/core/ports/output"
	"finetune-sim/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	initLogger(cfg)

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters (Output Ports)
	projectRepo, closeStore := openStore(cfg)
	defer closeStore()

	renderer := artifacts.NewRenderer(cfg.Sim.ArtifactsDir)

	// Core Services (Application Layer)
	realClock := clock.RealClock{}
	sim := services.NewSimulator(realClock, cfg.Sim.Speed, cfg.Sim.DataGenSeed)

	projectSvc := services.NewProjectService(projectRepo, sim, cfg.Sim.ProjectSeed)
	setupSvc := services.NewSetupService(projectRepo, sim)
	envSvc := services.NewEnvironmentService(projectRepo, sim)
	dataSvc := services.NewDataService(projectRepo, sim)
	trainingSvc := services.NewTrainingService(projectRepo, sim)
	dashboardSvc := services.NewDashboardService(projectRepo, sim, renderer, cfg.Sim.CurveSeed)

	if cfg.Sim.SeedExamples {
		if err := projectSvc.SeedExamples(context.Background()); err != nil {
			log.Warnf("seed example projects failed: %v", err)
		}
	}

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(projectSvc, setupSvc, envSvc, dataSvc, trainingSvc, dashboardSvc)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(realClock), gin.Recovery())

	api := router.Group("/api/v1/finetune")
	h.RegisterRoutes(api)

	// Health check with store ping
	router.GET("/healthz", func(c *gin.Context) {
		if err := projectSvc.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "store": cfg.Store.Driver})
	})

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.WithFields(log.Fields{"addr": addr, "speed": cfg.Sim.Speed}).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	// Open event streams end when their request context is cancelled.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}

// openStore returns the configured project repository and its cleanup func.
func openStore(cfg *config.Config) (ports.ProjectRepository, func()) {
	if cfg.Store.Driver == config.StoreMemory {
		log.Info("using in-memory project store")
		return memory.NewProjectRepository(), func() {}
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("parse db config: %v", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.Database.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		log.Fatalf("create db pool: %v", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	if err := postgres.EnsureSchema(context.Background(), pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	log.Info("database connection established")

	return postgres.NewProjectRepository(pool), pool.Close
}

func initLogger(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Logger.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
