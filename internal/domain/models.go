// internal/domain/models.go
package domain

import "time"

// InputProfile holds the raw period figures submitted for one analysis.
// Monetary amounts are per reporting period; percentages are expressed 0-100.
type InputProfile struct {
	CompanyName string      `json:"company_name" yaml:"company_name"`
	Currency    string      `json:"currency" yaml:"currency"`
	Industry    Industry    `json:"industry" yaml:"industry"`
	Periodicity Periodicity `json:"periodicity" yaml:"periodicity"`
	Mode        InputMode   `json:"mode" yaml:"mode"`

	Sales float64 `json:"sales" yaml:"sales"`
	COGS  float64 `json:"cogs" yaml:"cogs"`

	// Advanced mode balances
	Receivables float64 `json:"receivables" yaml:"receivables"`
	Inventory   float64 `json:"inventory" yaml:"inventory"`
	Payables    float64 `json:"payables" yaml:"payables"`

	// Basic mode days
	BasicDSO float64 `json:"basic_dso" yaml:"basic_dso"`
	BasicDIO float64 `json:"basic_dio" yaml:"basic_dio"`
	BasicDPO float64 `json:"basic_dpo" yaml:"basic_dpo"`

	Cash             float64 `json:"cash" yaml:"cash"`
	OtherLiabilities float64 `json:"other_liabilities" yaml:"other_liabilities"`

	PlannedGrowth float64 `json:"planned_growth" yaml:"planned_growth"`
	WACC          float64 `json:"wacc" yaml:"wacc"`
	EBITDAMargin  float64 `json:"ebitda_margin" yaml:"ebitda_margin"`
}

// Ratios are the balance-to-base ratios used for growth projection.
type Ratios struct {
	RatioCxcVentas float64 `json:"ratio_cxc_ventas"`
	RatioInvCogs   float64 `json:"ratio_inv_cogs"`
	RatioCxpCogs   float64 `json:"ratio_cxp_cogs"`
	RatioNwcVentas float64 `json:"ratio_nwc_ventas"`
}

// ComputedMetrics is the canonical derived record for one profile.
// CCC = DSO + DIO - DPO and NWC = CXC + Inv - CXP hold by construction.
type ComputedMetrics struct {
	Sales     float64 `json:"sales"`
	COGS      float64 `json:"cogs"`
	DSO       float64 `json:"dso"`
	DIO       float64 `json:"dio"`
	DPO       float64 `json:"dpo"`
	CCC       float64 `json:"ccc"`
	NWC       float64 `json:"nwc"`
	CXC       float64 `json:"cxc"`
	Inv       float64 `json:"inv"`
	CXP       float64 `json:"cxp"`
	Cash      float64 `json:"cash"`
	OtherLiab float64 `json:"other_liab"`
	Ratios    Ratios  `json:"ratios"`
}

// LiquidityRatios are nil when not applicable.
type LiquidityRatios struct {
	CurrentRatio *float64 `json:"current_ratio"`
	QuickRatio   *float64 `json:"quick_ratio"`
}

// Range is a benchmark {min, optimal, max} triple in days.
// Optimal is display-only.
type Range struct {
	Min     float64 `json:"min" yaml:"min"`
	Optimal float64 `json:"optimal" yaml:"optimal"`
	Max     float64 `json:"max" yaml:"max"`
}

// IndustryBenchmark holds the reference ranges for one industry.
type IndustryBenchmark struct {
	Key  Industry `json:"key" yaml:"key"`
	Name string   `json:"name" yaml:"name"`
	DSO  Range    `json:"dso" yaml:"dso"`
	DIO  Range    `json:"dio" yaml:"dio"`
	DPO  Range    `json:"dpo" yaml:"dpo"`
	CCC  Range    `json:"ccc" yaml:"ccc"`
}

// MetricComparison is the result of comparing one metric to its range.
type MetricComparison struct {
	Metric  string  `json:"metric"`
	Value   float64 `json:"value"`
	Range   Range   `json:"range"`
	Status  string  `json:"status"`
	Type    Verdict `json:"type"`
	Score   float64 `json:"score"`
	Inverse bool    `json:"inverse"`
}

// BenchmarkReport compares a metrics set with one industry.
type BenchmarkReport struct {
	Industry    Industry           `json:"industry"`
	Name        string             `json:"name"`
	Comparisons []MetricComparison `json:"comparisons"`
	Narrative   string             `json:"narrative"`
}

// ScoreCard holds the composite health score, each value in [0,100].
type ScoreCard struct {
	CCCScore        int `json:"ccc_score"`
	EfficiencyScore int `json:"efficiency_score"`
	LiquidityScore  int `json:"liquidity_score"`
	TotalScore      int `json:"total_score"`
}

// ScoreTier is the label attached to a score.
type ScoreTier struct {
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
}

// ScorecardReport bundles a scorecard with its tiers and narrative.
type ScorecardReport struct {
	ScoreCard
	CCCTier        ScoreTier `json:"ccc_tier"`
	EfficiencyTier ScoreTier `json:"efficiency_tier"`
	LiquidityTier  ScoreTier `json:"liquidity_tier"`
	TotalTier      ScoreTier `json:"total_tier"`
	Narrative      string    `json:"narrative"`
}

// SimulationResult compares actual and hypothetical cycle days.
type SimulationResult struct {
	CCCActual float64 `json:"ccc_actual"`
	CCCNew    float64 `json:"ccc_new"`
	NWCActual float64 `json:"nwc_actual"`
	NWCNew    float64 `json:"nwc_new"`
	CashFreed float64 `json:"cash_freed"`
}

// SimulationSummary adds presentation-ready context to a simulation.
type SimulationSummary struct {
	SimulationResult
	DSO           float64  `json:"dso"`
	DIO           float64  `json:"dio"`
	DPO           float64  `json:"dpo"`
	CCCDelta      float64  `json:"ccc_delta"`
	CashFreedDays *float64 `json:"cash_freed_days"`
	Narrative     string   `json:"narrative"`
}

// ValuationImpact is the value of a 5-day improvement in each component.
type ValuationImpact struct {
	ValueFromDSO float64 `json:"value_from_dso"`
	ValueFromDIO float64 `json:"value_from_dio"`
	ValueFromDPO float64 `json:"value_from_dpo"`
	TotalImpact  float64 `json:"total_impact"`
}

// GrowthProjection is the working capital required at a growth rate.
type GrowthProjection struct {
	GrowthRate  float64 `json:"growth_rate"`
	SalesFuture float64 `json:"sales_future"`
	COGSFuture  float64 `json:"cogs_future"`
	CXCFuture   float64 `json:"cxc_future"`
	InvFuture   float64 `json:"inv_future"`
	CXPFuture   float64 `json:"cxp_future"`
	NWCFuture   float64 `json:"nwc_future"`
	ExtraNWC    float64 `json:"extra_nwc"`
}

// GrowthReport bundles the projection with the sustainable growth rate.
type GrowthReport struct {
	Projection    GrowthProjection `json:"projection"`
	PlannedGrowth float64          `json:"planned_growth"`
	SGR           *float64         `json:"sgr"`
	Narrative     string           `json:"narrative"`
}

// Classification is a renderer-agnostic tier with an optional gauge position.
type Classification struct {
	Label    string  `json:"label"`
	Type     Verdict `json:"type"`
	Position int     `json:"position,omitempty"`
}

// Lever is the recommended focus area.
type Lever struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// Insights is the narrated dashboard.
type Insights struct {
	CCC           Classification `json:"ccc"`
	NWCSales      Classification `json:"nwc_sales"`
	Liquidity     Classification `json:"liquidity"`
	LiquidityText string         `json:"liquidity_text"`
	MainLever     Lever          `json:"main_lever"`
	Summary       string         `json:"summary"`
}

// Analysis is the full output of one recompute.
type Analysis struct {
	ID        string           `json:"id,omitempty"`
	Session   string           `json:"session,omitempty"`
	Profile   InputProfile     `json:"profile"`
	Metrics   ComputedMetrics  `json:"metrics"`
	Liquidity LiquidityRatios  `json:"liquidity"`
	Benchmark BenchmarkReport  `json:"benchmark"`
	Scorecard ScorecardReport  `json:"scorecard"`
	Growth    GrowthReport     `json:"growth"`
	Valuation *ValuationImpact `json:"valuation"`
	Insights  Insights         `json:"insights"`
	CreatedAt time.Time        `json:"created_at"`
}

// Snapshot is what gets persisted under the well-known session key:
// the last submitted profile and its metrics.
type Snapshot struct {
	Profile InputProfile    `json:"profile"`
	Metrics ComputedMetrics `json:"metrics"`
	SavedAt time.Time       `json:"saved_at"`
}

// AnalysisSummary is a lightweight row for history listings.
type AnalysisSummary struct {
	ID          string    `json:"id" db:"id"`
	Session     string    `json:"session" db:"session"`
	CompanyName string    `json:"company_name" db:"company_name"`
	Industry    string    `json:"industry" db:"industry"`
	CCC         float64   `json:"ccc" db:"ccc"`
	NWC         float64   `json:"nwc" db:"nwc"`
	TotalScore  int       `json:"total_score" db:"total_score"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// HistoryFilter narrows a history listing.
type HistoryFilter struct {
	Session  string
	Industry string
	Limit    int
	Offset   int
}

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 200
)

// Normalize clamps paging values.
func (f HistoryFilter) Normalize() HistoryFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultHistoryLimit
	}
	if f.Limit > MaxHistoryLimit {
		f.Limit = MaxHistoryLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}

// BatchResult is the outcome of analyzing one profile in a batch run.
type BatchResult struct {
	Source   string    `json:"source"`
	Analysis *Analysis `json:"analysis,omitempty"`
	Error    string    `json:"error,omitempty"`
}
