package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andresuchdata/wcanalyzer/internal/config"
	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

const analysisKeyPrefix = keyPrefix + ":analysis"

// AnalysisCache memoizes recompute results by profile content.
type AnalysisCache interface {
	Get(ctx context.Context, profile domain.InputProfile) (*domain.Analysis, bool, error)
	Set(ctx context.Context, profile domain.InputProfile, analysis *domain.Analysis) error
	InvalidateAll(ctx context.Context) error
}

type redisAnalysisCache struct {
	client  *redis.Client
	ttl     time.Duration
	version string
}

type noopAnalysisCache struct{}

// NewAnalysisCache keys entries by version as well as profile; pass the
// benchmark table fingerprint so edited ranges never hit old entries.
func NewAnalysisCache(cfg config.CacheConfig, version string) (AnalysisCache, error) {
	if !cfg.Enabled {
		return &noopAnalysisCache{}, nil
	}

	client, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalysisCache{
		client:  client,
		ttl:     defaultCacheTTL,
		version: version,
	}, nil
}

func NewNoopAnalysisCache() AnalysisCache {
	return &noopAnalysisCache{}
}

func (c *redisAnalysisCache) Get(ctx context.Context, profile domain.InputProfile) (*domain.Analysis, bool, error) {
	key, err := AnalysisKey(profile, c.version)
	if err != nil {
		return nil, false, err
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var analysis domain.Analysis
	if err := json.Unmarshal(payload, &analysis); err != nil {
		return nil, false, fmt.Errorf("decode analysis cache: %w", err)
	}
	return &analysis, true, nil
}

func (c *redisAnalysisCache) Set(ctx context.Context, profile domain.InputProfile, analysis *domain.Analysis) error {
	key, err := AnalysisKey(profile, c.version)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("encode analysis cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAnalysisCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, analysisKeyPrefix)
}

func (n *noopAnalysisCache) Get(ctx context.Context, profile domain.InputProfile) (*domain.Analysis, bool, error) {
	return nil, false, nil
}

func (n *noopAnalysisCache) Set(ctx context.Context, profile domain.InputProfile, analysis *domain.Analysis) error {
	return nil
}

func (n *noopAnalysisCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// AnalysisKey hashes the full profile, so any edited field yields a new key.
func AnalysisKey(profile domain.InputProfile, version string) (string, error) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("encode analysis cache key: %w", err)
	}
	sum := sha1.Sum(raw)
	if version == "" {
		return fmt.Sprintf("%s:%s", analysisKeyPrefix, hex.EncodeToString(sum[:])), nil
	}
	return fmt.Sprintf("%s:%s:%s", analysisKeyPrefix, version, hex.EncodeToString(sum[:])), nil
}
