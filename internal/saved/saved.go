// Package saved implements per-identity saved-job sets behind
// board.SavedStore: a Redis-backed set for deployments and an in-memory
// variant for tests.
package saved

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ─── Redis implementation ────────────────────────────────────────────────────

// RedisSet keeps each identity's saved job ids in a sorted set scored by
// insert time, so List returns them in the order they were saved.
type RedisSet struct {
	rdb *redis.Client
}

// NewRedisSet returns a RedisSet over rdb.
func NewRedisSet(rdb *redis.Client) *RedisSet {
	return &RedisSet{rdb: rdb}
}

func savedKey(email string) string {
	return fmt.Sprintf("saved:%s", email)
}

// Toggle adds jobID if absent, removes it if present, and reports the
// resulting membership.
func (s *RedisSet) Toggle(ctx context.Context, email, jobID string) (bool, error) {
	key := savedKey(email)

	_, err := s.rdb.ZScore(ctx, key, jobID).Result()
	switch {
	case err == nil:
		if err := s.rdb.ZRem(ctx, key, jobID).Err(); err != nil {
			return false, fmt.Errorf("saved zrem: %w", err)
		}
		return false, nil
	case errors.Is(err, redis.Nil):
		err := s.rdb.ZAddNX(ctx, key, redis.Z{
			Score:  float64(time.Now().UnixNano()),
			Member: jobID,
		}).Err()
		if err != nil {
			return false, fmt.Errorf("saved zadd: %w", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("saved zscore: %w", err)
	}
}

// Remove deletes jobID from the set. Removing an absent id is a no-op.
func (s *RedisSet) Remove(ctx context.Context, email, jobID string) error {
	if err := s.rdb.ZRem(ctx, savedKey(email), jobID).Err(); err != nil {
		return fmt.Errorf("saved zrem: %w", err)
	}
	return nil
}

// List returns the saved job ids in insertion order.
func (s *RedisSet) List(ctx context.Context, email string) ([]string, error) {
	ids, err := s.rdb.ZRange(ctx, savedKey(email), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("saved zrange: %w", err)
	}
	return ids, nil
}

// ─── In-memory implementation ────────────────────────────────────────────────

// MemorySet is an in-memory SavedStore with the same semantics as RedisSet.
type MemorySet struct {
	mu   sync.Mutex
	sets map[string][]string // email → job ids, insertion order
}

// NewMemorySet returns an empty MemorySet.
func NewMemorySet() *MemorySet {
	return &MemorySet{sets: make(map[string][]string)}
}

func (s *MemorySet) Toggle(_ context.Context, email, jobID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.sets[email]
	for i, id := range ids {
		if id == jobID {
			s.sets[email] = append(ids[:i:i], ids[i+1:]...)
			return false, nil
		}
	}
	s.sets[email] = append(ids, jobID)
	return true, nil
}

func (s *MemorySet) Remove(_ context.Context, email, jobID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := s.sets[email]
	for i, id := range ids {
		if id == jobID {
			s.sets[email] = append(ids[:i:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemorySet) List(_ context.Context, email string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sets[email]...), nil
}
