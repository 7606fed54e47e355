package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nutricoach/internal/models"

	"github.com/redis/go-redis/v9"
)

// PlanCache keeps the latest diet plan per user.
type PlanCache interface {
	Get(ctx context.Context, userID uint) (*models.DietPlan, bool, error)
	Set(ctx context.Context, userID uint, plan *models.DietPlan, ttl time.Duration) error
	Invalidate(ctx context.Context, userID uint) error
}

type RedisClient struct {
	client *redis.Client
}

// NewRedisClient connects to redisURL and pings it.
func NewRedisClient(ctx context.Context, redisURL string) (*RedisClient, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}

func planKey(userID uint) string {
	return fmt.Sprintf("dietplan:latest:%d", userID)
}

func (r *RedisClient) Get(ctx context.Context, userID uint) (*models.DietPlan, bool, error) {
	data, err := r.client.Get(ctx, planKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get plan from Redis: %w", err)
	}

	var plan models.DietPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &plan, true, nil
}

func (r *RedisClient) Set(ctx context.Context, userID uint, plan *models.DietPlan, ttl time.Duration) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := r.client.Set(ctx, planKey(userID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store plan in Redis: %w", err)
	}
	return nil
}

func (r *RedisClient) Invalidate(ctx context.Context, userID uint) error {
	return r.client.Del(ctx, planKey(userID)).Err()
}

// Status reports pool statistics for the debug endpoint.
func (r *RedisClient) Status(ctx context.Context) (map[string]interface{}, error) {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	stats := r.client.PoolStats()
	return map[string]interface{}{
		"connected":    true,
		"hits":         stats.Hits,
		"misses":       stats.Misses,
		"active_conns": stats.TotalConns,
	}, nil
}

// NoopPlanCache is used when Redis is not configured; every lookup misses.
type NoopPlanCache struct{}

func (NoopPlanCache) Get(context.Context, uint) (*models.DietPlan, bool, error) {
	return nil, false, nil
}

func (NoopPlanCache) Set(context.Context, uint, *models.DietPlan, time.Duration) error {
	return nil
}

func (NoopPlanCache) Invalidate(context.Context, uint) error {
	return nil
}
