package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ign-garage/booking-service/pkg/logger"
	"github.com/ign-garage/booking-service/pkg/metrics"
)

// Ключи кэша. Доступность хранится по одному ключу на горизонт запроса,
// конфигурация тарифов - единственным документом.
const (
	keyRateConfiguration = "rateconfig:current"
	keyAvailabilityFmt   = "availability:days:%d"

	classRateConfiguration = "rate_configuration"
	classAvailability      = "availability"
)

// Cache кэш чтения поверх Redis. Промах или ошибка Redis никогда не является
// ошибкой для вызывающего: источником истины остаётся база.
type Cache struct {
	client  *redis.Client
	ttl     time.Duration
	logs    *logger.Logger
	metrics *metrics.Metrics // может быть nil
}

// New создает кэш поверх готового Redis клиента
func New(client *redis.Client, ttl time.Duration, logs *logger.Logger, collector *metrics.Metrics) *Cache {
	return &Cache{client: client, ttl: ttl, logs: logs, metrics: collector}
}

// Connect открывает соединение с Redis и проверяет его ping'ом
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: ping redis at %s: %w", addr, err)
	}
	return client, nil
}

// GetRateConfiguration читает кэшированный документ тарифов.
// Возвращает (nil, false) при промахе или ошибке.
func (c *Cache) GetRateConfiguration(ctx context.Context, out interface{}) bool {
	return c.get(ctx, keyRateConfiguration, classRateConfiguration, out)
}

// SetRateConfiguration кэширует документ тарифов
func (c *Cache) SetRateConfiguration(ctx context.Context, document interface{}) {
	c.set(ctx, keyRateConfiguration, classRateConfiguration, document)
}

// InvalidateRateConfiguration сбрасывает кэш тарифов.
// Вызывается синхронно после каждого успешного сохранения конфигурации.
func (c *Cache) InvalidateRateConfiguration(ctx context.Context) {
	c.invalidate(ctx, keyRateConfiguration)
}

// GetAvailability читает кэшированный список доступности для горизонта в днях
func (c *Cache) GetAvailability(ctx context.Context, days int, out interface{}) bool {
	return c.get(ctx, fmt.Sprintf(keyAvailabilityFmt, days), classAvailability, out)
}

// SetAvailability кэширует список доступности для горизонта в днях
func (c *Cache) SetAvailability(ctx context.Context, days int, payload interface{}) {
	c.set(ctx, fmt.Sprintf(keyAvailabilityFmt, days), classAvailability, payload)
}

// InvalidateAvailability сбрасывает кэш доступности целиком.
// Вызывается синхронно после каждого успешного коммита бронирования и
// после изменений расписания.
func (c *Cache) InvalidateAvailability(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, "availability:days:*", 0).Iterator()
	for iter.Next(ctx) {
		c.invalidate(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logs.Warn("cache: scan availability keys: %v", err)
	}
}

func (c *Cache) get(ctx context.Context, key, class string, out interface{}) bool {
	val, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		c.observe(class, "miss")
		return false
	}
	if err != nil {
		c.observe(class, "error")
		c.logs.Warn("cache: get %s: %v", key, err)
		return false
	}

	if err := json.Unmarshal([]byte(val), out); err != nil {
		c.observe(class, "error")
		c.logs.Warn("cache: unmarshal %s: %v", key, err)
		return false
	}

	c.observe(class, "hit")
	return true
}

func (c *Cache) set(ctx context.Context, key, class string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		c.logs.Warn("cache: marshal %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.observe(class, "error")
		c.logs.Warn("cache: set %s: %v", key, err)
	}
}

func (c *Cache) invalidate(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logs.Warn("cache: del %s: %v", key, err)
	}
}

func (c *Cache) observe(class, result string) {
	if c.metrics != nil {
		c.metrics.IncCacheRequest(class, result)
	}
}
