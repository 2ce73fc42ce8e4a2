package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"valuescore/internal/config"
	"valuescore/internal/handler"
	"valuescore/internal/logger"
	"valuescore/internal/model"
	"valuescore/internal/repository"
	"valuescore/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	zl.Info("high value scoring service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Load the model before accepting any traffic
	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	classifier, err := loadModel(loadCtx, cfg, zl)
	cancel()
	if err != nil {
		zl.Fatal("model load failed", zap.Error(err))
	}

	// Initialize services
	scoringService := service.NewScoringService(classifier)

	build := model.VersionResponse{Version: Version, BuildTime: BuildTime, GitCommit: GitCommit}
	router := handler.NewRouter(cfg, scoringService, build, zl)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zl.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
		return
	}
	zl.Info("server stopped")
}

// loadModel reads the artifact from the configured source
func loadModel(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*service.Classifier, error) {
	switch cfg.Model.Source {
	case config.ModelSourcePostgres:
		repo, err := repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			return nil, &service.ModelLoadError{Source: "postgres", Err: err}
		}
		// the artifact is read once; nothing else uses the database
		defer repo.Close()
		return service.LoadClassifier(ctx, repo.ArtifactSource(cfg.Model.Name), zl)
	default:
		return service.LoadClassifier(ctx, repository.NewFileArtifactStore(cfg.Model.Path), zl)
	}
}
