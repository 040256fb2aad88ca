package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

// AnalysisRepository stores the history of computed analyses.
type AnalysisRepository interface {
	Save(ctx context.Context, analysis *domain.Analysis) error
	Get(ctx context.Context, id string) (*domain.Analysis, error)
	List(ctx context.Context, filter domain.HistoryFilter) ([]domain.AnalysisSummary, error)
}

type memoryAnalysisRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Analysis
}

// NewMemoryAnalysisRepository returns a process-local history used when no
// database is configured.
func NewMemoryAnalysisRepository() AnalysisRepository {
	return &memoryAnalysisRepository{items: make(map[string]*domain.Analysis)}
}

func (r *memoryAnalysisRepository) Save(_ context.Context, analysis *domain.Analysis) error {
	cp := *analysis
	r.mu.Lock()
	r.items[analysis.ID] = &cp
	r.mu.Unlock()
	return nil
}

func (r *memoryAnalysisRepository) Get(_ context.Context, id string) (*domain.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return nil, domain.ErrAnalysisNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memoryAnalysisRepository) List(_ context.Context, filter domain.HistoryFilter) ([]domain.AnalysisSummary, error) {
	filter = filter.Normalize()

	r.mu.RLock()
	out := make([]domain.AnalysisSummary, 0, len(r.items))
	for _, a := range r.items {
		if filter.Session != "" && a.Session != filter.Session {
			continue
		}
		if filter.Industry != "" && !strings.EqualFold(string(a.Profile.Industry), filter.Industry) {
			continue
		}
		out = append(out, SummaryOf(a))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if filter.Offset >= len(out) {
		return []domain.AnalysisSummary{}, nil
	}
	out = out[filter.Offset:]
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// SummaryOf projects an analysis onto its history row.
func SummaryOf(a *domain.Analysis) domain.AnalysisSummary {
	return domain.AnalysisSummary{
		ID:          a.ID,
		Session:     a.Session,
		CompanyName: a.Profile.CompanyName,
		Industry:    string(a.Profile.Industry),
		CCC:         a.Metrics.CCC,
		NWC:         a.Metrics.NWC,
		TotalScore:  a.Scorecard.TotalScore,
		CreatedAt:   a.CreatedAt,
	}
}
