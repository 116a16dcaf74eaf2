package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"riskcompass/internal/model"
)

// BenchmarkCache keeps industry benchmark aggregates in Redis
type BenchmarkCache interface {
	Get(ctx context.Context, industry string) (*model.Benchmark, error)
	Set(ctx context.Context, benchmark *model.Benchmark) error
	Invalidate(ctx context.Context, industry string) error
}

type benchmarkCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBenchmarkCache creates a new benchmark cache
func NewBenchmarkCache(client *redis.Client, ttl time.Duration) BenchmarkCache {
	return &benchmarkCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *benchmarkCache) key(industry string) string {
	return fmt.Sprintf("benchmark:%s", industry)
}

func (c *benchmarkCache) Get(ctx context.Context, industry string) (*model.Benchmark, error) {
	data, err := c.client.Get(ctx, c.key(industry)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var b model.Benchmark
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *benchmarkCache) Set(ctx context.Context, benchmark *model.Benchmark) error {
	data, err := json.Marshal(benchmark)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(benchmark.Industry), data, c.ttl).Err()
}

func (c *benchmarkCache) Invalidate(ctx context.Context, industry string) error {
	return c.client.Del(ctx, c.key(industry)).Err()
}
