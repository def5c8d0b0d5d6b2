package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/relojeria-api/internal/application/analytics"
	"github.com/jhoicas/relojeria-api/internal/application/dto"
)

var _ analytics.DashboardCache = (*RedisDashboardCache)(nil)

// RedisDashboardCache caché del resumen del dashboard sobre Redis.
// Los valores se serializan a JSON con TTL corto.
type RedisDashboardCache struct {
	client *redis.Client
}

// NewRedisDashboardCache construye el cliente Redis.
func NewRedisDashboardCache(addr, password string, db int) *RedisDashboardCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisDashboardCache{client: client}
}

// Ping verifica conectividad, para decidir al arrancar si se usa Redis o Noop.
func (c *RedisDashboardCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (c *RedisDashboardCache) Close() error {
	return c.client.Close()
}

// Get devuelve el resumen cacheado si existe y aún no expiró.
func (c *RedisDashboardCache) Get(ctx context.Context, key string) (*dto.DashboardResponse, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var resp dto.DashboardResponse
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, false, err
	}
	return &resp, true, nil
}

// Set guarda el resumen con el TTL indicado.
func (c *RedisDashboardCache) Set(ctx context.Context, key string, value *dto.DashboardResponse, ttl time.Duration) error {
	if value == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
