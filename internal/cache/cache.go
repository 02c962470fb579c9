// Package cache keeps resolved users keyed by identity-provider subject so
// that authenticated requests can skip the directory lookup.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"notekeeper/backend/internal/models"
)

// UserCache is consulted before, and filled after, a directory lookup.
// Failures are never fatal: a cache miss falls through to MongoDB.
type UserCache interface {
	Get(ctx context.Context, subject string) (*models.User, bool)
	Set(ctx context.Context, user *models.User)
	Invalidate(ctx context.Context, subject string)
}

// Nop is used when no Redis is configured.
type Nop struct{}

func (Nop) Get(context.Context, string) (*models.User, bool) { return nil, false }
func (Nop) Set(context.Context, *models.User)                {}
func (Nop) Invalidate(context.Context, string)               {}

type Redis struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedis parses url (redis://...) and pings the server.
func NewRedis(ctx context.Context, url string, ttl time.Duration, log *zap.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisWithClient(client, ttl, log), nil
}

func NewRedisWithClient(client *redis.Client, ttl time.Duration, log *zap.Logger) *Redis {
	return &Redis{client: client, ttl: ttl, log: log}
}

func key(subject string) string { return "user:sub:" + subject }

func (r *Redis) Get(ctx context.Context, subject string) (*models.User, bool) {
	raw, err := r.client.Get(ctx, key(subject)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("user cache get failed", zap.Error(err))
		}
		return nil, false
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		r.log.Warn("user cache entry corrupt", zap.String("subject", subject), zap.Error(err))
		return nil, false
	}
	return &u, true
}

func (r *Redis) Set(ctx context.Context, user *models.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, key(user.FirebaseUID), raw, r.ttl).Err(); err != nil {
		r.log.Warn("user cache set failed", zap.Error(err))
	}
}

func (r *Redis) Invalidate(ctx context.Context, subject string) {
	if err := r.client.Del(ctx, key(subject)).Err(); err != nil {
		r.log.Warn("user cache invalidate failed", zap.Error(err))
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}
