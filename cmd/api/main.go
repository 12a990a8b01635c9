package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"farmmall/internal/config"
	"farmmall/internal/infra/cache"
	"farmmall/internal/infra/db"
	"farmmall/internal/logger"
	"farmmall/internal/repository"
	"farmmall/internal/server"

	"go.uber.org/zap"
)

func main() {
	//設定
	cfg, err := config.Load()
	if err != nil {
		// 設定が読めないときは環境変数だけでロガーを作る
		logger.NewForEnvironment(os.Getenv("GO_ENV")).Error("config load failed", zap.Error(err))
		panic(err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: "stdout",
	})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	gormDB, err := db.Connect(cfg, logger.NewGormLogger(log, logger.GormLevelFor(cfg.GoEnv)))
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	//Redis（未設定ならブロックリストなし）
	var blocklist repository.TokenBlocklist = cache.NopTokenBlocklist{}
	redisClient, err := cache.NewRedisClient(ctx, cfg)
	switch {
	case err != nil:
		log.Warn("redis unavailable, logout revocation disabled", zap.Error(err))
	case redisClient != nil:
		defer func() { _ = redisClient.Close() }()
		blocklist = cache.NewRedisTokenBlocklist(redisClient)
	}

	e, err := server.NewApp(cfg, log, gormDB, blocklist)
	if err != nil {
		log.Fatal("app setup failed", zap.Error(err))
	}

	//Server起動
	if err := server.Start(ctx, e, cfg.Addr(), cfg.ShutdownTimeout, log); err != nil {
		log.Error("server error", zap.Error(err))
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
