package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

type AnalysisRepository struct {
	db *DB
}

func NewAnalysisRepository(db *DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

type analysisRow struct {
	ID          string    `db:"id"`
	Session     string    `db:"session"`
	CompanyName string    `db:"company_name"`
	Industry    string    `db:"industry"`
	Currency    string    `db:"currency"`
	Periodicity string    `db:"periodicity"`
	Mode        string    `db:"mode"`
	Sales       float64   `db:"sales"`
	COGS        float64   `db:"cogs"`
	DSO         float64   `db:"dso"`
	DIO         float64   `db:"dio"`
	DPO         float64   `db:"dpo"`
	CCC         float64   `db:"ccc"`
	NWC         float64   `db:"nwc"`
	TotalScore  int       `db:"total_score"`
	Payload     string    `db:"payload"`
	CreatedAt   time.Time `db:"created_at"`
}

const insertAnalysisQuery = `
	INSERT INTO analyses (
		id, session, company_name, industry, currency, periodicity, mode,
		sales, cogs, dso, dio, dpo, ccc, nwc, total_score, payload, created_at
	) VALUES (
		:id, :session, :company_name, :industry, :currency, :periodicity, :mode,
		:sales, :cogs, :dso, :dio, :dpo, :ccc, :nwc, :total_score, :payload, :created_at
	)
`

func (r *AnalysisRepository) Save(ctx context.Context, a *domain.Analysis) error {
	payload, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode analysis: %w", err)
	}

	row := analysisRow{
		ID:          a.ID,
		Session:     a.Session,
		CompanyName: a.Profile.CompanyName,
		Industry:    string(a.Profile.Industry),
		Currency:    a.Profile.Currency,
		Periodicity: string(a.Profile.Periodicity),
		Mode:        string(a.Profile.Mode),
		Sales:       a.Metrics.Sales,
		COGS:        a.Metrics.COGS,
		DSO:         a.Metrics.DSO,
		DIO:         a.Metrics.DIO,
		DPO:         a.Metrics.DPO,
		CCC:         a.Metrics.CCC,
		NWC:         a.Metrics.NWC,
		TotalScore:  a.Scorecard.TotalScore,
		Payload:     string(payload),
		CreatedAt:   a.CreatedAt,
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, insertAnalysisQuery, row); err != nil {
			return fmt.Errorf("failed to insert analysis: %w", err)
		}
		return nil
	})
}

func (r *AnalysisRepository) Get(ctx context.Context, id string) (*domain.Analysis, error) {
	var payload []byte
	query := r.db.Rebind(`SELECT payload FROM analyses WHERE id = ?`)
	if err := r.db.GetContext(ctx, &payload, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	var a domain.Analysis
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, fmt.Errorf("failed to decode analysis %s: %w", id, err)
	}
	return &a, nil
}

func (r *AnalysisRepository) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.AnalysisSummary, error) {
	query, args := buildHistoryQuery(filter)

	summaries := []domain.AnalysisSummary{}
	if err := r.db.SelectContext(ctx, &summaries, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return summaries, nil
}

// buildHistoryQuery returns a query with '?' placeholders; callers rebind it
// for the active driver.
func buildHistoryQuery(filter domain.HistoryFilter) (string, []any) {
	filter = filter.Normalize()

	var (
		conditions []string
		args       []any
	)
	if filter.Session != "" {
		conditions = append(conditions, "session = ?")
		args = append(args, filter.Session)
	}
	if filter.Industry != "" {
		conditions = append(conditions, "industry = ?")
		args = append(args, strings.ToLower(filter.Industry))
	}

	var b strings.Builder
	b.WriteString(`SELECT id, session, company_name, industry, ccc, nwc, total_score, created_at FROM analyses`)
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?")
	args = append(args, filter.Limit, filter.Offset)

	return b.String(), args
}
