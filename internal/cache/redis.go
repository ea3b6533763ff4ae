package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/voyago/tripengine/config"
	"github.com/voyago/tripengine/internal/domain"
)

// RedisCache holds catalog reads so browsing destinations does not hammer the
// catalog API. Entries expire on their own; nothing here is ever a source of
// truth.
type RedisCache struct {
	client     *redis.Client
	catalogTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, catalogTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		catalogTTL: catalogTTL,
	}
}

func (c *RedisCache) GetCities(ctx context.Context) ([]domain.City, error) {
	var cities []domain.City
	if err := c.get(ctx, citiesKey(), &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (c *RedisCache) SetCities(ctx context.Context, cities []domain.City) error {
	return c.set(ctx, citiesKey(), cities)
}

func (c *RedisCache) GetActivities(ctx context.Context, cityID string) ([]domain.Activity, error) {
	var activities []domain.Activity
	if err := c.get(ctx, activitiesKey(cityID), &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (c *RedisCache) SetActivities(ctx context.Context, cityID string, activities []domain.Activity) error {
	return c.set(ctx, activitiesKey(cityID), activities)
}

func (c *RedisCache) GetPackage(ctx context.Context, id string) (*domain.PackageTrip, error) {
	var pkg domain.PackageTrip
	if err := c.get(ctx, packageKey(id), &pkg); err != nil {
		return nil, err
	}
	if pkg.ID == "" {
		return nil, nil
	}
	return &pkg, nil
}

func (c *RedisCache) SetPackage(ctx context.Context, pkg *domain.PackageTrip) error {
	return c.set(ctx, packageKey(pkg.ID), pkg)
}

func (c *RedisCache) get(ctx context.Context, key string, out interface{}) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return err
	}
	return json.Unmarshal(data, out)
}

func (c *RedisCache) set(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, c.catalogTTL).Err()
}

func citiesKey() string {
	return "cache:catalog:cities"
}

func activitiesKey(cityID string) string {
	return "cache:catalog:activities:" + cityID
}

func packageKey(id string) string {
	return "cache:catalog:package:" + id
}
