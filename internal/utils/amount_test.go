package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundAmount(t *testing.T) {
	assert.Equal(t, "12.35", RoundAmount(decimal.RequireFromString("12.345")).String())
	assert.Equal(t, "33.33", RoundAmount(decimal.NewFromInt(100).Div(decimal.NewFromInt(3))).String())
	assert.True(t, RoundAmount(decimal.Zero).IsZero())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "300.00", FormatAmount(decimal.NewFromInt(300)))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "1999.99", FormatAmount(decimal.RequireFromString("1999.99")))
}
