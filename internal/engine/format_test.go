package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "USD 510,000", FormatMoney(510_000, "USD"))
	assert.Equal(t, "-EUR 1,234.5", FormatMoney(-1234.5, "EUR"))
	assert.Equal(t, "USD 1,234.57", FormatMoney(1234.567, ""))
	assert.Equal(t, "USD 0", FormatMoney(0, "USD"))
	assert.Equal(t, "—", FormatMoney(math.NaN(), "USD"))
}

func TestFormatDaysAndPercent(t *testing.T) {
	assert.Equal(t, "70.1", FormatDays(70.08))
	assert.Equal(t, "-3.0", FormatDays(-3))
	assert.Equal(t, "—", FormatDays(math.Inf(1)))
	assert.Equal(t, "20.4%", FormatPercent(20.4))
}

func TestFormatRatio(t *testing.T) {
	v := 1.2345
	assert.Equal(t, "1.23", FormatRatio(&v))
	assert.Equal(t, "—", FormatRatio(nil))
}
