package main

import (
	"context"
	"time"

	"word-impostor-be/internal/api/http"
	"word-impostor-be/internal/config"
	"word-impostor-be/internal/logger"
	"word-impostor-be/internal/service"
	"word-impostor-be/internal/state"
	"word-impostor-be/internal/store"

	"go.uber.org/zap"
)

func main() {
	cfg := config.InitConfig()

	logger.InitLogger(cfg.LogLevel)

	// The store backend is chosen once here; the room service only ever
	// sees the interface.
	var st store.Store

	switch cfg.Store {
	case "redis":
		rs := store.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rs.Ping(ctx); err != nil {
			cancel()
			zap.S().Fatalf("redis at %s is unreachable: %v", cfg.RedisAddr, err)
		}
		cancel()

		st = rs
	case "memory":
		st = store.NewMemoryStore()
	default:
		zap.S().Fatalf("unknown store backend %q", cfg.Store)
	}

	roomTTL := time.Duration(cfg.RoomTTLSeconds) * time.Second

	appState := state.NewAppState(
		cfg,
		service.NewRoomService(st, roomTTL),
	)

	http.RunServer(appState)
}
