package service

import (
	"context"
	"errors"
	"sync"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

type fakeAnalysisCache struct {
	mu     sync.Mutex
	items  map[string]*domain.Analysis
	gets   int
	sets   int
	resets int
	getErr error
}

func newFakeAnalysisCache() *fakeAnalysisCache {
	return &fakeAnalysisCache{items: make(map[string]*domain.Analysis)}
}

func (c *fakeAnalysisCache) Get(_ context.Context, p domain.InputProfile) (*domain.Analysis, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	a, ok := c.items[p.CompanyName]
	return a, ok, nil
}

func (c *fakeAnalysisCache) Set(_ context.Context, p domain.InputProfile, a *domain.Analysis) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.items[p.CompanyName] = a
	return nil
}

func (c *fakeAnalysisCache) InvalidateAll(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resets++
	c.items = make(map[string]*domain.Analysis)
	return nil
}

type failingRepo struct{}

var errDown = errors.New("database down")

func (failingRepo) Save(context.Context, *domain.Analysis) error { return errDown }
func (failingRepo) Get(context.Context, string) (*domain.Analysis, error) {
	return nil, errDown
}
func (failingRepo) List(context.Context, domain.HistoryFilter) ([]domain.AnalysisSummary, error) {
	return nil, errDown
}

type failingSnapshots struct{}

func (failingSnapshots) Save(context.Context, string, domain.Snapshot) error { return errDown }
func (failingSnapshots) Load(context.Context, string) (*domain.Snapshot, error) {
	return nil, domain.ErrSnapshotNotFound
}
func (failingSnapshots) Reset(context.Context, string) error { return nil }
