package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/agendahub/agenda-api/internal/cache"
	"github.com/agendahub/agenda-api/internal/config"
	dbpkg "github.com/agendahub/agenda-api/internal/db"
	"github.com/agendahub/agenda-api/internal/logger"
	"github.com/agendahub/agenda-api/internal/routes"
	"github.com/agendahub/agenda-api/internal/warming"
)

func main() {

	cfg := config.Load()

	log := logger.New()
	defer log.Sync()

	db := dbpkg.NewDB(cfg, log)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		// cache é opcional: sem Redis a API calcula tudo on-demand
		log.Warn("redis indisponível, seguindo sem cache", zap.Error(err))
		redisClient = nil
	}

	slotCache := cache.New(redisClient, cfg.CacheTTL, log)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	computeSlots := routes.RegisterRoutes(r, db, cfg, slotCache, log)

	// warming roda em background até o processo morrer
	warmer := warming.New(db, computeSlots, log, cfg.WarmingInterval, cfg.WarmAheadDays)
	go warmer.Start(context.Background())

	log.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
