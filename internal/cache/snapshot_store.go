package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/wcanalyzer/internal/config"
	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

const (
	snapshotKeyPrefix = keyPrefix + ":pro_v1"
	defaultSession    = "default"
)

// SnapshotStore keeps the last submitted profile and metrics per session
// under a single well-known key.
type SnapshotStore interface {
	Save(ctx context.Context, session string, snapshot domain.Snapshot) error
	Load(ctx context.Context, session string) (*domain.Snapshot, error)
	Reset(ctx context.Context, session string) error
}

type redisSnapshotStore struct {
	client *redis.Client
	ttl    time.Duration
}

type memorySnapshotStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewSnapshotStore returns a redis-backed store when caching is enabled and an
// in-process store otherwise. A TTL of 0 keeps snapshots until reset.
func NewSnapshotStore(cfg config.CacheConfig) (SnapshotStore, error) {
	if !cfg.Enabled {
		return NewMemorySnapshotStore(), nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisSnapshotStore{
		client: client,
		ttl:    time.Duration(cfg.SnapshotTTLSeconds) * time.Second,
	}, nil
}

func NewMemorySnapshotStore() SnapshotStore {
	return &memorySnapshotStore{items: make(map[string][]byte)}
}

func (s *redisSnapshotStore) Save(ctx context.Context, session string, snapshot domain.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := s.client.Set(ctx, SnapshotKey(session), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *redisSnapshotStore) Load(ctx context.Context, session string) (*domain.Snapshot, error) {
	payload, err := s.client.Get(ctx, SnapshotKey(session)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return decodeSnapshot(payload)
}

func (s *redisSnapshotStore) Reset(ctx context.Context, session string) error {
	if err := s.client.Del(ctx, SnapshotKey(session)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *memorySnapshotStore) Save(_ context.Context, session string, snapshot domain.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s.mu.Lock()
	s.items[SnapshotKey(session)] = payload
	s.mu.Unlock()
	return nil
}

func (s *memorySnapshotStore) Load(_ context.Context, session string) (*domain.Snapshot, error) {
	s.mu.RLock()
	payload, ok := s.items[SnapshotKey(session)]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return decodeSnapshot(payload)
}

func (s *memorySnapshotStore) Reset(_ context.Context, session string) error {
	s.mu.Lock()
	delete(s.items, SnapshotKey(session))
	s.mu.Unlock()
	return nil
}

// SnapshotKey returns the storage key for a session.
func SnapshotKey(session string) string {
	session = strings.TrimSpace(session)
	if session == "" {
		session = defaultSession
	}
	return fmt.Sprintf("%s:%s", snapshotKeyPrefix, session)
}

// A corrupt blob is treated as absent.
func decodeSnapshot(payload []byte) (*domain.Snapshot, error) {
	var snapshot domain.Snapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot: %v", domain.ErrSnapshotNotFound, err)
	}
	return &snapshot, nil
}
