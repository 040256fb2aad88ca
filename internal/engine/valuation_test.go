package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValuation_Demo(t *testing.T) {
	v := Valuation(demoMetrics(t), 10, 18)
	require.NotNil(t, v)

	dso := 2_500_000.0 / 365 * 5 * 0.18 / 0.10
	dio := 1_500_000.0 / 365 * 5 * 0.18 / 0.10
	assert.InDelta(t, dso, v.ValueFromDSO, 1e-6)
	assert.InDelta(t, dio, v.ValueFromDIO, 1e-6)
	assert.InDelta(t, dio, v.ValueFromDPO, 1e-6)
	assert.InDelta(t, v.ValueFromDSO+v.ValueFromDIO+v.ValueFromDPO, v.TotalImpact, 1e-9)
}

func TestValuation_NotApplicable(t *testing.T) {
	m := demoMetrics(t)
	assert.Nil(t, Valuation(m, 0, 18))
	assert.Nil(t, Valuation(m, -5, 18))
}

func TestValuation_ZeroMargin(t *testing.T) {
	v := Valuation(demoMetrics(t), 10, 0)
	require.NotNil(t, v)
	assert.Zero(t, v.TotalImpact)
}
