package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"share-ledger-api/config"
)

const keyPrefix = "revoked:"

// minTTL keeps a revocation entry alive even when the token is already past
// its natural expiry at logout time.
const minTTL = time.Minute

// Store records revoked token ids in redis. Entries expire together with the
// token they shadow; a token stays rejected for as long as it could still be
// presented.
type Store struct {
	rdb *redis.Client
	log *zap.Logger
}

func New(ctx context.Context, logger *zap.Logger, cfg config.Redis) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.Info("redis connected successfully")

	return &Store{rdb: rdb, log: logger}, nil
}

// Revoke is an idempotent insert keyed by the token's jti.
func (s *Store) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl < minTTL {
		ttl = minTTL
	}

	return s.rdb.Set(ctx, keyPrefix+tokenID, 1, ttl).Err()
}

func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, keyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (s *Store) Close() error { return s.rdb.Close() }
