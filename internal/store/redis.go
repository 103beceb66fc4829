package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/passgate/internal/logger"
)

const redisScanCount = 100

// redisStore is the durable Redis backend. All keys live under namespace so
// that Clear never touches data owned by other applications sharing the
// server.
type redisStore struct {
	client    *redis.Client
	namespace string
	logger    *logger.Logger
}

// NewRedisStore wraps client. namespace is prepended to every key.
func NewRedisStore(client *redis.Client, namespace string, log *logger.Logger) KeyValueStore {
	return &redisStore{client: client, namespace: namespace, logger: log}
}

// NewConnectRedis creates a client for addr and pings it.
func NewConnectRedis(ctx context.Context, addr, password string, db int, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewConnectRedis").Msg("error connecting redis (ping)")
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Debug().Str("func", "NewConnectRedis").Msg("connected to redis successfully")
	return client, nil
}

func (r *redisStore) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.namespace+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		r.logger.Err(err).Str("func", "redisStore.Get").Msg("error reading key")
		return "", fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func (r *redisStore) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.namespace+key, value, 0).Err(); err != nil {
		r.logger.Err(err).Str("func", "redisStore.Set").Msg("error writing key")
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *redisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.namespace+key).Err(); err != nil {
		r.logger.Err(err).Str("func", "redisStore.Delete").Msg("error deleting key")
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *redisStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	full, err := r.scan(ctx, r.namespace+prefix)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(full))
	for _, k := range full {
		keys = append(keys, strings.TrimPrefix(k, r.namespace))
	}
	return keys, nil
}

func (r *redisStore) Clear(ctx context.Context) error {
	keys, err := r.scan(ctx, r.namespace)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	if err = r.client.Del(ctx, keys...).Err(); err != nil {
		r.logger.Err(err).Str("func", "redisStore.Clear").Msg("error deleting keys")
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}

// scan returns every full key beginning with prefix.
func (r *redisStore) scan(ctx context.Context, prefix string) ([]string, error) {
	match := escapeGlob(prefix) + "*"

	var (
		keys   []string
		cursor uint64
		seen   = make(map[string]struct{})
	)
	for {
		batch, next, err := r.client.Scan(ctx, cursor, match, redisScanCount).Result()
		if err != nil {
			r.logger.Err(err).Str("func", "redisStore.scan").Msg("error scanning keys")
			return nil, fmt.Errorf("redis scan: %w", err)
		}
		// SCAN may return a key more than once.
		for _, k := range batch {
			if _, dup := seen[k]; !dup {
				seen[k] = struct{}{}
				keys = append(keys, k)
			}
		}
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

// escapeGlob quotes the characters SCAN MATCH treats as pattern syntax.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
