// Package system holds process-wide operational state.
package system

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"

	"stipend/pkg/errors"
)

const pauseKey = "stipend:disbursement:paused"

// PauseStore is the global disbursement admission gate. Only the
// administrative authority writes it; the disbursement engine reads it once
// per batch. Registry and period configuration ignore it entirely.
type PauseStore interface {
	Paused(ctx context.Context) (bool, error)
	SetPaused(ctx context.Context, paused bool) error
}

// RedisPauseStore keeps the flag in Redis so every replica observes the same
// state.
type RedisPauseStore struct {
	client *redis.Client
}

func NewRedisPauseStore(client *redis.Client) *RedisPauseStore {
	return &RedisPauseStore{client: client}
}

func (s *RedisPauseStore) Paused(ctx context.Context) (bool, error) {
	val, err := s.client.Get(ctx, pauseKey).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(err, "failed to read pause flag")
	}
	return val == "1", nil
}

func (s *RedisPauseStore) SetPaused(ctx context.Context, paused bool) error {
	val := "0"
	if paused {
		val = "1"
	}
	if err := s.client.Set(ctx, pauseKey, val, 0).Err(); err != nil {
		return errors.Wrap(err, "failed to write pause flag")
	}
	return nil
}

// MemoryPauseStore is a single-process implementation for tests and local
// runs without Redis.
type MemoryPauseStore struct {
	mu     sync.RWMutex
	paused bool
}

func NewMemoryPauseStore() *MemoryPauseStore {
	return &MemoryPauseStore{}
}

func (s *MemoryPauseStore) Paused(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused, nil
}

func (s *MemoryPauseStore) SetPaused(ctx context.Context, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paused = paused
	return nil
}
