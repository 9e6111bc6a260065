package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ===============================
// Cache de slots (Redis)
// ===============================
//
// Cache é sempre opcional: qualquer erro aqui vira fallback para o
// cálculo direto, nunca derruba a requisição.

type Cache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
	errors atomic.Int64
}

func New(client *redis.Client, ttl time.Duration, log *zap.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func slotKey(providerID uint, date string) string {
	return fmt.Sprintf("agenda:slots:%d:%s", providerID, date)
}

func providerPattern(providerID uint) string {
	return fmt.Sprintf("agenda:slots:%d:*", providerID)
}

// GetSlots busca os slots do dia; ok=false em miss ou erro
func (c *Cache) GetSlots(ctx context.Context, providerID uint, date string, out any) bool {
	if c == nil || c.client == nil {
		return false
	}

	data, err := c.client.Get(ctx, slotKey(providerID, date)).Result()
	if err == redis.Nil {
		c.misses.Add(1)
		return false
	}
	if err != nil {
		c.errors.Add(1)
		c.log.Warn("cache get falhou", zap.Error(err))
		return false
	}

	if err := json.Unmarshal([]byte(data), out); err != nil {
		c.errors.Add(1)
		c.log.Warn("cache com payload inválido", zap.Error(err))
		return false
	}

	c.hits.Add(1)
	return true
}

func (c *Cache) SetSlots(ctx context.Context, providerID uint, date string, value any) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.errors.Add(1)
		return
	}

	if err := c.client.Set(ctx, slotKey(providerID, date), data, c.ttl).Err(); err != nil {
		c.errors.Add(1)
		c.log.Warn("cache set falhou", zap.Error(err))
	}
}

// InvalidateProvider apaga todos os slots cacheados do prestador.
// Qualquer mutação de agenda (regra, bloqueio, feriado, agendamento)
// passa por aqui.
func (c *Cache) InvalidateProvider(ctx context.Context, providerID uint) {
	if c == nil || c.client == nil {
		return
	}

	// SCAN incremental em vez de KEYS para não bloquear o Redis
	var keys []string
	iter := c.client.Scan(ctx, 0, providerPattern(providerID), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.errors.Add(1)
		c.log.Warn("cache invalidate falhou", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.errors.Add(1)
		c.log.Warn("cache delete falhou", zap.Error(err))
	}
}

type Stats struct {
	Hits   int64   `json:"hits"`
	Misses int64   `json:"misses"`
	Errors int64   `json:"errors"`
	Rate   float64 `json:"hit_rate"`
}

func (c *Cache) GetStats() Stats {
	if c == nil {
		return Stats{}
	}

	hits := c.hits.Load()
	misses := c.misses.Load()

	rate := 0.0
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}

	return Stats{
		Hits:   hits,
		Misses: misses,
		Errors: c.errors.Load(),
		Rate:   rate,
	}
}
