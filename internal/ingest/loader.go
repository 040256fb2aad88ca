// Package ingest loads input profiles from JSON, YAML and CSV files.
package ingest

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
)

var ErrUnsupportedFormat = errors.New("unsupported profile format")

// Supported reports whether a file extension can be loaded.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".csv":
		return true
	}
	return false
}

// LoadFile reads every profile in a file. JSON and YAML files may hold a
// single profile or a list; CSV files hold one profile per row.
func LoadFile(path string) ([]domain.InputProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var profiles []domain.InputProfile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		profiles, err = DecodeJSON(data)
	case ".yaml", ".yml":
		profiles, err = DecodeYAML(data)
	case ".csv":
		profiles, err = DecodeCSV(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return profiles, nil
}

// DiscoverFiles returns the loadable files directly under dir, sorted by name.
func DiscoverFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func DecodeJSON(data []byte) ([]domain.InputProfile, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var profiles []domain.InputProfile
		if err := json.Unmarshal(trimmed, &profiles); err != nil {
			return nil, err
		}
		return profiles, nil
	}

	var p domain.InputProfile
	if err := json.Unmarshal(trimmed, &p); err != nil {
		return nil, err
	}
	return []domain.InputProfile{p}, nil
}

func DecodeYAML(data []byte) ([]domain.InputProfile, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, errors.New("empty document")
	}

	doc := root.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var profiles []domain.InputProfile
		if err := doc.Decode(&profiles); err != nil {
			return nil, err
		}
		return profiles, nil
	}

	var p domain.InputProfile
	if err := doc.Decode(&p); err != nil {
		return nil, err
	}
	return []domain.InputProfile{p}, nil
}

// DecodeCSV reads profiles from a CSV document whose header uses the JSON
// field names. Unknown columns are ignored; empty cells are zero.
func DecodeCSV(r io.Reader) ([]domain.InputProfile, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Create a map of column indices
	colMap := make(map[string]int)
	for i, col := range header {
		colMap[strings.ToLower(strings.TrimSpace(col))] = i
	}

	var profiles []domain.InputProfile
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		line++

		p, err := profileFromRecord(record, colMap)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func profileFromRecord(record []string, colMap map[string]int) (domain.InputProfile, error) {
	get := func(col string) string {
		if i, ok := colMap[col]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
		return ""
	}

	p := domain.InputProfile{
		CompanyName: get("company_name"),
		Currency:    get("currency"),
		Industry:    domain.Industry(get("industry")),
		Periodicity: domain.Periodicity(get("periodicity")),
		Mode:        domain.InputMode(get("mode")),
	}

	numbers := []struct {
		col string
		dst *float64
	}{
		{"sales", &p.Sales},
		{"cogs", &p.COGS},
		{"receivables", &p.Receivables},
		{"inventory", &p.Inventory},
		{"payables", &p.Payables},
		{"basic_dso", &p.BasicDSO},
		{"basic_dio", &p.BasicDIO},
		{"basic_dpo", &p.BasicDPO},
		{"cash", &p.Cash},
		{"other_liabilities", &p.OtherLiabilities},
		{"planned_growth", &p.PlannedGrowth},
		{"wacc", &p.WACC},
		{"ebitda_margin", &p.EBITDAMargin},
	}
	for _, n := range numbers {
		raw := strings.ReplaceAll(get(n.col), ",", "")
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return p, fmt.Errorf("column %s: invalid number %q", n.col, raw)
		}
		*n.dst = v
	}
	return p, nil
}
