package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Mahwas/Cognito/internal/logger"
)

// DefaultRedisKey is used when RedisOptions.Key is empty.
const DefaultRedisKey = "cognito:state"

// RedisOptions configures the Redis state repository.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisStateRepo stores the persisted record under a single key.
type RedisStateRepo struct {
	log *logger.Logger
	rdb *goredis.Client
	key string
}

// NewRedisStateRepo connects to Redis and verifies the connection.
func NewRedisStateRepo(ctx context.Context, opts RedisOptions, log *logger.Logger) (*RedisStateRepo, error) {
	if log == nil {
		log = logger.Nop()
	}
	addr := strings.TrimSpace(opts.Addr)
	if addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	key := strings.TrimSpace(opts.Key)
	if key == "" {
		key = DefaultRedisKey
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStateRepo{
		log: log.With("repo", "redis-state", "key", key),
		rdb: rdb,
		key: key,
	}, nil
}

func (r *RedisStateRepo) Load(ctx context.Context) (*PersistedState, error) {
	raw, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}
	return decodeState(raw, r.log), nil
}

func (r *RedisStateRepo) Save(ctx context.Context, st PersistedState) error {
	data, err := encodeState(st)
	if err != nil {
		return err
	}
	if err := r.rdb.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

func (r *RedisStateRepo) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("clear state: %w", err)
	}
	return nil
}

// Close releases the Redis connection pool.
func (r *RedisStateRepo) Close() error {
	return r.rdb.Close()
}
