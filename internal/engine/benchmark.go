package engine

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

// Comparison statuses, ordered from best to worst.
const (
	StatusExcellent        = "Excellent"
	StatusGood             = "Good"
	StatusModerate         = "Moderate"
	StatusNeedsImprovement = "Needs improvement"
)

var defaultBenchmarks = []domain.IndustryBenchmark{
	{
		Key:  domain.IndustryOilGas,
		Name: "Oil & Gas Services",
		DSO:  domain.Range{Min: 55, Optimal: 85, Max: 70},
		DIO:  domain.Range{Min: 40, Optimal: 55, Max: 75},
		DPO:  domain.Range{Min: 40, Optimal: 55, Max: 70},
		CCC:  domain.Range{Min: 30, Optimal: 70, Max: 110},
	},
	{
		Key:  domain.IndustryManufacturing,
		Name: "Manufacturing",
		DSO:  domain.Range{Min: 40, Optimal: 50, Max: 65},
		DIO:  domain.Range{Min: 50, Optimal: 70, Max: 90},
		DPO:  domain.Range{Min: 35, Optimal: 45, Max: 55},
		CCC:  domain.Range{Min: 50, Optimal: 75, Max: 100},
	},
	{
		Key:  domain.IndustryDistribution,
		Name: "Distribution",
		DSO:  domain.Range{Min: 30, Optimal: 40, Max: 50},
		DIO:  domain.Range{Min: 30, Optimal: 42, Max: 55},
		DPO:  domain.Range{Min: 30, Optimal: 40, Max: 50},
		CCC:  domain.Range{Min: 25, Optimal: 40, Max: 60},
	},
	{
		Key:  domain.IndustryRetail,
		Name: "Retail",
		DSO:  domain.Range{Min: 0, Optimal: 10, Max: 20},
		DIO:  domain.Range{Min: 40, Optimal: 60, Max: 80},
		DPO:  domain.Range{Min: 25, Optimal: 35, Max: 45},
		CCC:  domain.Range{Min: 10, Optimal: 30, Max: 60},
	},
	{
		Key:  domain.IndustryTech,
		Name: "Technology",
		DSO:  domain.Range{Min: 45, Optimal: 60, Max: 75},
		DIO:  domain.Range{Min: 0, Optimal: 5, Max: 20},
		DPO:  domain.Range{Min: 30, Optimal: 45, Max: 60},
		CCC:  domain.Range{Min: -10, Optimal: 15, Max: 40},
	},
}

// BenchmarkTable is an immutable industry lookup.
type BenchmarkTable struct {
	entries map[domain.Industry]domain.IndustryBenchmark
}

// DefaultBenchmarks returns the built-in reference table.
func DefaultBenchmarks() *BenchmarkTable {
	t := &BenchmarkTable{entries: make(map[domain.Industry]domain.IndustryBenchmark, len(defaultBenchmarks))}
	for _, b := range defaultBenchmarks {
		t.entries[b.Key] = b
	}
	return t
}

// Lookup returns the benchmark for an industry key.
func (t *BenchmarkTable) Lookup(industry domain.Industry) (domain.IndustryBenchmark, error) {
	key, ok := domain.ParseIndustry(string(industry))
	if !ok {
		return domain.IndustryBenchmark{}, fmt.Errorf("%w: %q", domain.ErrUnknownIndustry, industry)
	}
	b, ok := t.entries[key]
	if !ok {
		return domain.IndustryBenchmark{}, fmt.Errorf("%w: %q", domain.ErrUnknownIndustry, industry)
	}
	return b, nil
}

// Fingerprint identifies the table contents. Any edited range changes it.
func (t *BenchmarkTable) Fingerprint() string {
	h := sha1.New()
	for _, b := range t.List() {
		fmt.Fprintf(h, "%s|%s|%v|%v|%v|%v;", b.Key, b.Name, b.DSO, b.DIO, b.DPO, b.CCC)
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}

// List returns every benchmark in display order.
func (t *BenchmarkTable) List() []domain.IndustryBenchmark {
	out := make([]domain.IndustryBenchmark, 0, len(t.entries))
	for _, key := range domain.Industries {
		if b, ok := t.entries[key]; ok {
			out = append(out, b)
		}
	}
	return out
}

type benchmarkFile struct {
	Industries []benchmarkOverride `yaml:"industries"`
}

type benchmarkOverride struct {
	Key  string        `yaml:"key"`
	Name string        `yaml:"name"`
	DSO  *domain.Range `yaml:"dso"`
	DIO  *domain.Range `yaml:"dio"`
	DPO  *domain.Range `yaml:"dpo"`
	CCC  *domain.Range `yaml:"ccc"`
}

// LoadBenchmarks returns the built-in table with the overrides from a YAML
// file applied. An empty path yields the defaults. Only existing industry
// keys may be overridden.
func LoadBenchmarks(path string) (*BenchmarkTable, error) {
	t := DefaultBenchmarks()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read benchmarks file: %w", err)
	}
	if err := t.applyOverrides(data); err != nil {
		return nil, fmt.Errorf("failed to apply benchmarks file %s: %w", path, err)
	}
	return t, nil
}

func (t *BenchmarkTable) applyOverrides(data []byte) error {
	var file benchmarkFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse yaml: %w", err)
	}

	for _, o := range file.Industries {
		key, ok := domain.ParseIndustry(o.Key)
		if !ok {
			return fmt.Errorf("%w: %q", domain.ErrUnknownIndustry, o.Key)
		}
		b := t.entries[key]
		if strings.TrimSpace(o.Name) != "" {
			b.Name = o.Name
		}
		for _, r := range []struct {
			name string
			src  *domain.Range
			dst  *domain.Range
		}{
			{"dso", o.DSO, &b.DSO},
			{"dio", o.DIO, &b.DIO},
			{"dpo", o.DPO, &b.DPO},
			{"ccc", o.CCC, &b.CCC},
		} {
			if r.src == nil {
				continue
			}
			if r.src.Min > r.src.Max {
				return fmt.Errorf("%s %s: min %g exceeds max %g", key, r.name, r.src.Min, r.src.Max)
			}
			*r.dst = *r.src
		}
		t.entries[key] = b
	}
	return nil
}

// Compare positions a lower-is-better value within a benchmark range.
//
// Zones, with mid = (min+max)/2:
//
//	v <= min        Excellent          100
//	min < v <= mid  Good               100 -> 70
//	mid < v <= max  Moderate            70 -> 30
//	v > max         Needs improvement   30 -> 10 (floor)
func Compare(value float64, r domain.Range) domain.MetricComparison {
	mid := (r.Min + r.Max) / 2
	width := r.Max - r.Min

	c := domain.MetricComparison{Value: value, Range: r}
	switch {
	case value <= r.Min:
		c.Status, c.Type, c.Score = StatusExcellent, domain.VerdictGood, 100
	case value <= mid:
		c.Status, c.Type = StatusGood, domain.VerdictGood
		c.Score = math.Max(70, 100-(value-r.Min)/(mid-r.Min)*30)
	case value <= r.Max:
		c.Status, c.Type = StatusModerate, domain.VerdictWarn
		c.Score = math.Max(30, 70-(value-mid)/(r.Max-mid)*40)
	default:
		c.Status, c.Type = StatusNeedsImprovement, domain.VerdictBad
		c.Score = 10
		if width > 0 {
			c.Score = math.Max(10, 30-(value-r.Max)/width*20)
		}
	}
	return c
}

// CompareInverse positions a higher-is-better value by reflecting it around
// the range before comparing.
func CompareInverse(value float64, r domain.Range) domain.MetricComparison {
	c := Compare(r.Min+r.Max-value, r)
	c.Value = value
	c.Inverse = true
	return c
}

// Benchmark compares DSO, DIO, DPO and CCC with the industry ranges.
func Benchmark(m domain.ComputedMetrics, bench domain.IndustryBenchmark) domain.BenchmarkReport {
	dso := Compare(m.DSO, bench.DSO)
	dso.Metric = "DSO"
	dio := Compare(m.DIO, bench.DIO)
	dio.Metric = "DIO"
	dpo := CompareInverse(m.DPO, bench.DPO)
	dpo.Metric = "DPO"
	ccc := Compare(m.CCC, bench.CCC)
	ccc.Metric = "CCC"

	comparisons := []domain.MetricComparison{dso, dio, dpo, ccc}
	return domain.BenchmarkReport{
		Industry:    bench.Key,
		Name:        bench.Name,
		Comparisons: comparisons,
		Narrative:   Narrator{}.BenchmarkNarrative(comparisons, bench),
	}
}
