package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/parser"
	"github.com/plateful/backend/internal/repository"
	"github.com/plateful/backend/internal/server"
	"github.com/plateful/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	repo := repository.NewGormRecipeRepository(db)

	// Vocabulary reads go through Redis when an endpoint is configured.
	var vocabSource parser.NameSource = repo
	if cfg.Redis.Enabled() {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("redis unavailable, vocabulary cache disabled", zap.Error(err))
		} else {
			vocabSource = repository.NewCachedNameSource(repo, redisClient, logger)
		}
	}

	local := parser.NewHeuristicParser(parser.NewVocabularyProvider(vocabSource), logger)
	var remote parser.Parser
	if cfg.RemoteParser.Enabled {
		remote = parser.NewRemoteParser(cfg.RemoteParser, logger)
	}
	promptParser := parser.Select(cfg.RemoteParser, local, remote, logger)

	planner := service.NewPlannerService(repo, promptParser, logger)
	search := service.NewSearchService(repo)

	srv := server.NewServer(db, planner, search, cfg.Server.AllowedOrigins, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start(fmt.Sprintf("%d", cfg.Server.Port))
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	case sig := <-quit:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Fatal("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
