package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

func TestBuildHistoryQuery(t *testing.T) {
	query, args := buildHistoryQuery(domain.HistoryFilter{})
	assert.Equal(t,
		"SELECT id, session, company_name, industry, ccc, nwc, total_score, created_at FROM analyses ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		query)
	assert.Equal(t, []any{domain.DefaultHistoryLimit, 0}, args)

	query, args = buildHistoryQuery(domain.HistoryFilter{Session: "acme", Industry: "Retail", Limit: 5, Offset: 10})
	assert.Contains(t, query, "WHERE session = ? AND industry = ?")
	assert.Equal(t, []any{"acme", "retail", 5, 10}, args)

	rebound := sqlx.Rebind(sqlx.DOLLAR, query)
	assert.Contains(t, rebound, "session = $1 AND industry = $2")
	assert.Contains(t, rebound, "LIMIT $3 OFFSET $4")
}

func TestStatements(t *testing.T) {
	stmts := Statements()
	require.Len(t, stmts, 4)
	assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS analyses")
	for _, s := range stmts {
		assert.NotContains(t, s, ";")
	}
}

// Runs against a real database when WCANALYZER_TEST_DATABASE_URL is set.
func TestAnalysisRepository_Integration(t *testing.T) {
	url := os.Getenv("WCANALYZER_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("WCANALYZER_TEST_DATABASE_URL not set")
	}

	sqlDB, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := WrapSQL(sqlDB, "pgx", 2)
	ctx := context.Background()
	require.NoError(t, db.Migrate(ctx))

	repo := NewAnalysisRepository(db)
	session := "it-" + uuid.NewString()
	a := &domain.Analysis{
		ID:        uuid.NewString(),
		Session:   session,
		Profile:   domain.InputProfile{CompanyName: "Acme", Industry: domain.IndustryRetail, Currency: "USD"},
		Metrics:   domain.ComputedMetrics{Sales: 100, COGS: 50, CCC: 12.5, NWC: 42},
		Scorecard: domain.ScorecardReport{ScoreCard: domain.ScoreCard{TotalScore: 81}},
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Save(ctx, a))

	got, err := repo.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Profile.CompanyName)
	assert.Equal(t, 81, got.Scorecard.TotalScore)

	list, err := repo.List(ctx, domain.HistoryFilter{Session: session})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, 12.5, list[0].CCC)

	_, err = repo.Get(ctx, uuid.NewString())
	assert.True(t, errors.Is(err, domain.ErrAnalysisNotFound))
}
