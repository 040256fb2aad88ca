package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
	"github.com/andresuchdata/wcanalyzer/internal/engine"
)

type engineAnalyzer struct {
	mu       sync.Mutex
	sessions []string
	active   int32
	peak     int32
	delay    time.Duration
}

func (a *engineAnalyzer) Analyze(_ context.Context, session string, p domain.InputProfile) (*domain.Analysis, error) {
	cur := atomic.AddInt32(&a.active, 1)
	defer atomic.AddInt32(&a.active, -1)
	for {
		peak := atomic.LoadInt32(&a.peak)
		if cur <= peak || atomic.CompareAndSwapInt32(&a.peak, peak, cur) {
			break
		}
	}
	time.Sleep(a.delay)

	a.mu.Lock()
	a.sessions = append(a.sessions, session)
	a.mu.Unlock()

	return engine.Recompute(engine.WithDefaults(p, domain.IndustryOilGas), engine.DefaultBenchmarks())
}

func TestRunner_Run(t *testing.T) {
	analyzer := &engineAnalyzer{delay: 5 * time.Millisecond}
	runner := NewRunner(analyzer, Config{Workers: 2, Session: "batch"})

	var jobs []Job
	for i := 0; i < 6; i++ {
		p := engine.DemoProfile()
		p.CompanyName = fmt.Sprintf("Co %d", i)
		if i == 3 {
			p.Sales = 0
		}
		jobs = append(jobs, Job{Source: fmt.Sprintf("job-%d", i), Profile: p})
	}

	results, err := runner.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, results, 6)

	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("job-%d", i), r.Source)
		if i == 3 {
			assert.Nil(t, r.Analysis)
			assert.Contains(t, r.Error, "sales")
			continue
		}
		require.NotNil(t, r.Analysis)
		assert.Equal(t, fmt.Sprintf("Co %d", i), r.Analysis.Profile.CompanyName)
		assert.Empty(t, r.Error)
	}

	assert.LessOrEqual(t, atomic.LoadInt32(&analyzer.peak), int32(2))
	for _, s := range analyzer.sessions {
		assert.Equal(t, "batch", s)
	}
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := NewRunner(&engineAnalyzer{}, Config{Workers: 1})
	_, err := runner.Run(ctx, []Job{{Source: "a", Profile: engine.DemoProfile()}})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunner_RunFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.json"),
		[]byte(`{"company_name":"Solo","sales":1000,"cogs":500,"receivables":100}`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "many.csv"),
		[]byte("company_name,sales,cogs,receivables\nA,1000,500,10\nB,2000,800,20\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o600))

	files := []string{
		filepath.Join(dir, "bad.json"),
		filepath.Join(dir, "many.csv"),
		filepath.Join(dir, "one.json"),
	}
	results, err := NewRunner(&engineAnalyzer{}, Config{}).RunFiles(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "bad.json", results[0].Source)
	assert.NotEmpty(t, results[0].Error)
	assert.Equal(t, "many.csv#1", results[1].Source)
	assert.Equal(t, "many.csv#2", results[2].Source)
	assert.Equal(t, "one.json", results[3].Source)
	require.NotNil(t, results[3].Analysis)
	assert.Equal(t, "Solo", results[3].Analysis.Profile.CompanyName)
}
