package utils

import "github.com/shopspring/decimal"

// AmountPrecision is the number of fractional digits stored for transaction amounts.
const AmountPrecision = 2

// RoundAmount rounds half away from zero to the stored precision.
// Example: 12.345 returns 12.35, 33.333333 returns 33.33
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(AmountPrecision)
}

// FormatAmount renders an amount with exactly two fractional digits, e.g. "300.00".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(AmountPrecision)
}
