package cache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/wcanalyzer/internal/config"
	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

func TestSnapshotKey(t *testing.T) {
	assert.Equal(t, "wcanalyzer:pro_v1:default", SnapshotKey(""))
	assert.Equal(t, "wcanalyzer:pro_v1:acme", SnapshotKey(" acme "))
}

func TestMemorySnapshotStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySnapshotStore()

	_, err := store.Load(ctx, "acme")
	assert.True(t, errors.Is(err, domain.ErrSnapshotNotFound))

	snapshot := domain.Snapshot{
		Profile: domain.InputProfile{CompanyName: "Acme", Sales: 100, COGS: 50},
		Metrics: domain.ComputedMetrics{Sales: 100, COGS: 50, DSO: 12.5, CCC: 30},
		SavedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, "acme", snapshot))

	loaded, err := store.Load(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, snapshot.Profile, loaded.Profile)
	assert.Equal(t, snapshot.Metrics, loaded.Metrics)
	assert.True(t, snapshot.SavedAt.Equal(loaded.SavedAt))

	_, err = store.Load(ctx, "other")
	assert.True(t, errors.Is(err, domain.ErrSnapshotNotFound))

	require.NoError(t, store.Reset(ctx, "acme"))
	_, err = store.Load(ctx, "acme")
	assert.True(t, errors.Is(err, domain.ErrSnapshotNotFound))
}

func TestDecodeSnapshotCorrupt(t *testing.T) {
	_, err := decodeSnapshot([]byte("{not json"))
	assert.True(t, errors.Is(err, domain.ErrSnapshotNotFound))
}

func TestNewSnapshotStoreDisabled(t *testing.T) {
	store, err := NewSnapshotStore(config.CacheConfig{Enabled: false})
	require.NoError(t, err)
	assert.IsType(t, &memorySnapshotStore{}, store)
}

func TestAnalysisKey(t *testing.T) {
	a := domain.InputProfile{CompanyName: "Acme", Sales: 100}
	b := a
	b.Sales = 101

	keyA, err := AnalysisKey(a, "")
	require.NoError(t, err)
	keyA2, err := AnalysisKey(a, "")
	require.NoError(t, err)
	keyB, err := AnalysisKey(b, "")
	require.NoError(t, err)

	assert.Equal(t, keyA, keyA2)
	assert.NotEqual(t, keyA, keyB)
	assert.Contains(t, keyA, "wcanalyzer:analysis:")
}

func TestAnalysisKey_Version(t *testing.T) {
	p := domain.InputProfile{CompanyName: "Acme", Sales: 100}

	before, err := AnalysisKey(p, "aaaa")
	require.NoError(t, err)
	after, err := AnalysisKey(p, "bbbb")
	require.NoError(t, err)

	assert.NotEqual(t, before, after)
	assert.True(t, strings.HasPrefix(after, "wcanalyzer:analysis:bbbb:"))
}

func TestNoopAnalysisCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewAnalysisCache(config.CacheConfig{Enabled: false}, "v1")
	require.NoError(t, err)

	require.NoError(t, c.Set(ctx, domain.InputProfile{}, &domain.Analysis{}))
	got, ok, err := c.Get(ctx, domain.InputProfile{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.NoError(t, c.InvalidateAll(ctx))
}

func TestBuildRedisOptions(t *testing.T) {
	opts, err := buildRedisOptions(config.CacheConfig{RedisHost: "cache.internal", RedisPort: "6380", RedisDB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = buildRedisOptions(config.CacheConfig{})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:6379", opts.Addr)

	opts, err = buildRedisOptions(config.CacheConfig{RedisURL: "redis://:secret@redis.example:6390/3"})
	require.NoError(t, err)
	assert.Equal(t, "redis.example:6390", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)

	_, err = buildRedisOptions(config.CacheConfig{RedisURL: "http://nope"})
	assert.Error(t, err)
}
