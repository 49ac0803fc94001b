package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed [Store] shared by all service instances.
//
// Value keys carry a TTL equal to the token's remaining natural lifetime, so
// Redis itself enforces the invariant that a revocation never outlives the
// token. Per-owner membership sets back RevokeAllForOwner.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a [RedisStore] using the given client. prefix
// namespaces every key; an empty prefix defaults to "ga".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "ga"
	}
	return &RedisStore{
		redis:  client,
		prefix: prefix,
	}
}

func (s *RedisStore) revokedKey(fingerprint string) string {
	return s.prefix + ":rv:" + fingerprint
}

func (s *RedisStore) trackedKey(fingerprint string) string {
	return s.prefix + ":tr:" + fingerprint
}

func (s *RedisStore) ownerKey(ownerID string) string {
	return s.prefix + ":ow:" + ownerID
}

// Track registers an outstanding token under its owner's set.
//
//	Performance: 3 pipelined Redis commands.
func (s *RedisStore) Track(ctx context.Context, fingerprint, ownerID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if fingerprint == "" || ownerID == "" || ttl <= 0 {
		return nil
	}

	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.trackedKey(fingerprint), ownerID, ttl)
		pipe.SAdd(ctx, s.ownerKey(ownerID), fingerprint)
		pipe.Expire(ctx, s.ownerKey(ownerID), ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// IsRevoked checks for an unexpired revocation marker.
//
//	Performance: 1 Redis EXISTS.
func (s *RedisStore) IsRevoked(ctx context.Context, fingerprint string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.revokedKey(fingerprint)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return n > 0, nil
}

// Revoke writes the revocation marker with the token's remaining lifetime as
// TTL. SET overwrites, so repeated revocations are naturally idempotent.
func (s *RedisStore) Revoke(ctx context.Context, fingerprint, ownerID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if fingerprint == "" || ttl <= 0 {
		return nil
	}

	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.revokedKey(fingerprint), ownerID, ttl)
		if ownerID != "" {
			pipe.SRem(ctx, s.ownerKey(ownerID), fingerprint)
		}
		pipe.Del(ctx, s.trackedKey(fingerprint))
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// RevokeAllForOwner marks every tracked, unexpired token for ownerID as
// revoked, carrying over each token's remaining TTL, then drops the owner set.
func (s *RedisStore) RevokeAllForOwner(ctx context.Context, ownerID string) (int, error) {
	if ownerID == "" {
		return 0, nil
	}

	members, err := s.redis.SMembers(ctx, s.ownerKey(ownerID)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	revoked := 0
	for _, fingerprint := range members {
		ttl, err := s.redis.PTTL(ctx, s.trackedKey(fingerprint)).Result()
		if err != nil {
			return revoked, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if ttl <= 0 {
			// Tracked key already expired with the token; nothing to block.
			continue
		}
		if err := s.redis.Set(ctx, s.revokedKey(fingerprint), ownerID, ttl).Err(); err != nil {
			return revoked, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if err := s.redis.Del(ctx, s.trackedKey(fingerprint)).Err(); err != nil {
			return revoked, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		revoked++
	}

	if err := s.redis.Del(ctx, s.ownerKey(ownerID)).Err(); err != nil {
		return revoked, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return revoked, nil
}

// PurgeExpired sweeps owner sets for members whose tracked key has expired.
// Value keys need no sweep: Redis TTL eviction removes them.
func (s *RedisStore) PurgeExpired(ctx context.Context, _ time.Time) (int, error) {
	purged := 0

	iter := s.redis.Scan(ctx, 0, s.prefix+":ow:*", 64).Iterator()
	for iter.Next(ctx) {
		ownerKey := iter.Val()
		members, err := s.redis.SMembers(ctx, ownerKey).Result()
		if err != nil {
			return purged, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		for _, fingerprint := range members {
			n, err := s.redis.Exists(ctx, s.trackedKey(fingerprint)).Result()
			if err != nil {
				return purged, fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			if n == 0 {
				if err := s.redis.SRem(ctx, ownerKey, fingerprint).Err(); err != nil {
					return purged, fmt.Errorf("%w: %v", ErrUnavailable, err)
				}
				purged++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return purged, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return purged, nil
}
