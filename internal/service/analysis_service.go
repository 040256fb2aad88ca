package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/andresuchdata/wcanalyzer/internal/cache"
	"github.com/andresuchdata/wcanalyzer/internal/domain"
	"github.com/andresuchdata/wcanalyzer/internal/engine"
	"github.com/andresuchdata/wcanalyzer/internal/repository"
)

// Defaults are applied to requests that leave a field blank.
type Defaults struct {
	Industry     domain.Industry
	WACC         float64
	EBITDAMargin float64
}

type AnalysisService struct {
	benchmarks *engine.BenchmarkTable
	repo       repository.AnalysisRepository
	cache      cache.AnalysisCache
	snapshots  cache.SnapshotStore
	defaults   Defaults
	now        func() time.Time
}

func NewAnalysisService(
	benchmarks *engine.BenchmarkTable,
	repo repository.AnalysisRepository,
	cacheImpl cache.AnalysisCache,
	snapshots cache.SnapshotStore,
	defaults Defaults,
) *AnalysisService {
	if benchmarks == nil {
		benchmarks = engine.DefaultBenchmarks()
	}
	if repo == nil {
		repo = repository.NewMemoryAnalysisRepository()
	}
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopAnalysisCache()
	}
	if snapshots == nil {
		snapshots = cache.NewMemorySnapshotStore()
	}
	if defaults.Industry == "" {
		defaults.Industry = domain.IndustryOilGas
	}
	return &AnalysisService{
		benchmarks: benchmarks,
		repo:       repo,
		cache:      cacheImpl,
		snapshots:  snapshots,
		defaults:   defaults,
		now:        time.Now,
	}
}

func (s *AnalysisService) Industries() []domain.IndustryBenchmark {
	return s.benchmarks.List()
}

func (s *AnalysisService) Demo() domain.InputProfile {
	return engine.DemoProfile()
}

// InvalidateCache drops every cached analysis. Called at startup so results
// computed against another benchmark table are never served.
func (s *AnalysisService) InvalidateCache(ctx context.Context) error {
	return s.cache.InvalidateAll(ctx)
}

// Compute runs the engine without persisting anything.
func (s *AnalysisService) Compute(ctx context.Context, profile domain.InputProfile) (*domain.Analysis, error) {
	p := engine.WithDefaults(profile, s.defaults.Industry)

	if cached, ok, err := s.cache.Get(ctx, p); err == nil && ok {
		return cached, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("analysis: cache get failed")
	}

	analysis, err := engine.Recompute(p, s.benchmarks)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, p, analysis); err != nil {
		log.Warn().Err(err).Msg("analysis: cache set failed")
	}
	return analysis, nil
}

// Analyze computes a profile, records it in the history and replaces the
// session's last snapshot.
func (s *AnalysisService) Analyze(ctx context.Context, session string, profile domain.InputProfile) (*domain.Analysis, error) {
	computed, err := s.Compute(ctx, profile)
	if err != nil {
		return nil, err
	}

	analysis := *computed
	analysis.ID = uuid.NewString()
	analysis.Session = session
	analysis.CreatedAt = s.now().UTC()

	if err := s.repo.Save(ctx, &analysis); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	snapshot := domain.Snapshot{
		Profile: analysis.Profile,
		Metrics: analysis.Metrics,
		SavedAt: analysis.CreatedAt,
	}
	if err := s.snapshots.Save(ctx, session, snapshot); err != nil {
		log.Warn().Err(err).Str("id", analysis.ID).Str("session", session).Msg("analysis: snapshot save failed")
	}

	log.Info().
		Str("id", analysis.ID).
		Str("session", session).
		Str("industry", string(analysis.Profile.Industry)).
		Float64("ccc", analysis.Metrics.CCC).
		Int("total_score", analysis.Scorecard.TotalScore).
		Msg("analysis recorded")

	return &analysis, nil
}

func (s *AnalysisService) Last(ctx context.Context, session string) (*domain.Snapshot, error) {
	return s.snapshots.Load(ctx, session)
}

func (s *AnalysisService) Reset(ctx context.Context, session string) error {
	return s.snapshots.Reset(ctx, session)
}

func (s *AnalysisService) History(ctx context.Context, filter domain.HistoryFilter) ([]domain.AnalysisSummary, error) {
	return s.repo.List(ctx, filter.Normalize())
}

func (s *AnalysisService) Get(ctx context.Context, id string) (*domain.Analysis, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrAnalysisNotFound
	}
	return s.repo.Get(ctx, id)
}

// MetricsSource names where follow-up calculations take their metrics from:
// explicit metrics win over the session's stored snapshot.
type MetricsSource struct {
	Metrics  *domain.ComputedMetrics `json:"metrics"`
	Session  string                  `json:"session"`
	Currency string                  `json:"currency"`
}

type resolved struct {
	metrics  domain.ComputedMetrics
	profile  *domain.InputProfile
	currency string
}

func (s *AnalysisService) resolve(ctx context.Context, src MetricsSource) (*resolved, error) {
	if src.Metrics != nil {
		return &resolved{metrics: *src.Metrics, currency: src.Currency}, nil
	}

	snapshot, err := s.snapshots.Load(ctx, src.Session)
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return nil, domain.ErrMetricsRequired
	}
	if err != nil {
		return nil, err
	}

	currency := src.Currency
	if currency == "" {
		currency = snapshot.Profile.Currency
	}
	return &resolved{metrics: snapshot.Metrics, profile: &snapshot.Profile, currency: currency}, nil
}

type SimulationRequest struct {
	MetricsSource
	DSO *float64 `json:"dso"`
	DIO *float64 `json:"dio"`
	DPO *float64 `json:"dpo"`
}

// Simulate compares current metrics with hypothetical days. Omitted days
// default to the current value.
func (s *AnalysisService) Simulate(ctx context.Context, req SimulationRequest) (*domain.SimulationSummary, engine.SimulationInput, error) {
	r, err := s.resolve(ctx, req.MetricsSource)
	if err != nil {
		return nil, engine.SimulationInput{}, err
	}

	verr := &domain.InputError{}
	pick := func(field string, v *float64, current float64) float64 {
		if v == nil {
			return current
		}
		if *v < 0 {
			verr.Add(field, "must be 0 or greater")
		}
		return *v
	}
	dso := pick("dso", req.DSO, r.metrics.DSO)
	dio := pick("dio", req.DIO, r.metrics.DIO)
	dpo := pick("dpo", req.DPO, r.metrics.DPO)
	if err := verr.OrNil(); err != nil {
		return nil, engine.SimulationInput{}, err
	}

	in := engine.SimulationInputFrom(r.metrics, dso, dio, dpo)
	summary := engine.SimulateSummary(in, r.currency)
	return &summary, in, nil
}

type GrowthRequest struct {
	MetricsSource
	PlannedGrowth *float64 `json:"planned_growth"`
}

func (s *AnalysisService) Growth(ctx context.Context, req GrowthRequest) (*domain.GrowthReport, error) {
	r, err := s.resolve(ctx, req.MetricsSource)
	if err != nil {
		return nil, err
	}

	planned := 0.0
	switch {
	case req.PlannedGrowth != nil:
		planned = *req.PlannedGrowth
	case r.profile != nil:
		planned = r.profile.PlannedGrowth
	}
	if planned <= -100 {
		verr := &domain.InputError{}
		verr.Add("planned_growth", "must be greater than -100")
		return nil, verr
	}

	report := engine.Growth(r.metrics, planned, r.currency)
	return &report, nil
}

type ValuationRequest struct {
	MetricsSource
	WACC         *float64 `json:"wacc"`
	EBITDAMargin *float64 `json:"ebitda_margin"`
}

// Valuation returns nil when the cost of capital is not positive. Defaults
// only apply to explicit metrics that carry no profile.
func (s *AnalysisService) Valuation(ctx context.Context, req ValuationRequest) (*domain.ValuationImpact, error) {
	r, err := s.resolve(ctx, req.MetricsSource)
	if err != nil {
		return nil, err
	}

	// A stored profile is taken as analyzed, so a zero WACC stays not applicable.
	wacc, margin := s.defaults.WACC, s.defaults.EBITDAMargin
	if r.profile != nil {
		wacc, margin = r.profile.WACC, r.profile.EBITDAMargin
	}
	if req.WACC != nil {
		wacc = *req.WACC
	}
	if req.EBITDAMargin != nil {
		margin = *req.EBITDAMargin
	}

	return engine.Valuation(r.metrics, wacc, margin), nil
}
