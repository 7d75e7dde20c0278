package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"daycare-backend/internal/config"
)

// Key prefixes
const (
	RevokedTokenKeyFmt   = "auth:revoked:"
	FinanceSummaryPrefix = "finance:summary:"
)

// SummaryTTL bounds how stale a cached finance summary may be.
const SummaryTTL = 5 * time.Minute

// Store wraps the Redis client. A Store with a nil client is valid: reads
// miss and writes are dropped, so the API keeps working without Redis.
type Store struct {
	client *redis.Client
	logger *zap.Logger
}

func New(client *redis.Client, logger *zap.Logger) *Store {
	return &Store{client: client, logger: logger}
}

// Connect dials Redis and pings it. On failure it returns a disabled Store
// together with the error so the caller can log and carry on.
func Connect(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Store, error) {
	if !cfg.Redis.Enabled {
		return New(nil, logger), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return New(nil, logger), err
	}
	return New(client, logger), nil
}

func (s *Store) Enabled() bool { return s != nil && s.client != nil }

func (s *Store) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return redis.ErrClosed
	}
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Close()
}

// RevokeToken blacklists a token ID until the token would have expired anyway.
func (s *Store) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if !s.Enabled() || jti == "" || ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, RevokedTokenKeyFmt+jti, 1, ttl).Err()
}

func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if !s.Enabled() || jti == "" {
		return false, nil
	}
	n, err := s.client.Exists(ctx, RevokedTokenKeyFmt+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetJSON decodes the cached value at key into dest. It reports false on a
// miss, a disabled store or an undecodable entry.
func (s *Store) GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("cache entry undecodable", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Store) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// DeletePrefix removes every key starting with prefix.
func (s *Store) DeletePrefix(ctx context.Context, prefix string) {
	if !s.Enabled() {
		return
	}
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("cache scan failed", zap.String("prefix", prefix), zap.Error(err))
		return
	}
	if len(keys) > 0 {
		s.client.Del(ctx, keys...)
	}
}

// FinanceSummaryKey names the cache entry for a date range ("" = open).
func FinanceSummaryKey(start, end string) string {
	return FinanceSummaryPrefix + start + ":" + end
}

// InvalidateFinance drops all cached finance summaries. Called after any
// payment or expense write.
func (s *Store) InvalidateFinance(ctx context.Context) {
	s.DeletePrefix(ctx, FinanceSummaryPrefix)
}
