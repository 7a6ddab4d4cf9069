// Package sqlquery renders domain filters and orderings into SQL fragments shared by the
// Postgres and SQLite repositories.
package sqlquery

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/transaction_service/internal/apperrors"
	"github.com/SscSPs/transaction_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TableName is the fact table holding transaction records.
const TableName = "fact_transactions"

// Dialect captures how a database spells placeholders and stores dates and amounts.
type Dialect struct {
	Name         string
	AmountColumn string
	LowerFunc    string // Unicode-aware lower-casing function
	Placeholder  func(n int) string
	DateArg      func(time.Time) any
	AmountArg    func(decimal.Decimal) any
}

// Postgres uses $n placeholders, DATE and NUMERIC(12,2).
var Postgres = Dialect{
	Name:         "postgres",
	AmountColumn: "amount",
	LowerFunc:    "LOWER",
	Placeholder:  func(n int) string { return fmt.Sprintf("$%d", n) },
	DateArg:      func(t time.Time) any { return domain.DateOf(t) },
	AmountArg:    func(d decimal.Decimal) any { return d },
}

// SQLite uses ? placeholders, ISO-8601 TEXT dates and INTEGER cents.
var SQLite = Dialect{
	Name:         "sqlite",
	AmountColumn: "amount_cents",
	LowerFunc:    UnicodeLowerFunc,
	Placeholder:  func(int) string { return "?" },
	DateArg:      func(t time.Time) any { return FormatDate(t) },
	AmountArg:    func(d decimal.Decimal) any { return ToCents(d) },
}

// UnicodeLowerFunc names the scalar function registered by the SQLite repository.
// SQLite's built-in LOWER folds ASCII only.
const UnicodeLowerFunc = "unicode_lower"

// DateLayout is the calendar date format used for TEXT date columns and query strings.
const DateLayout = "2006-01-02"

// FormatDate renders the calendar date of t.
func FormatDate(t time.Time) string {
	return domain.DateOf(t).Format(DateLayout)
}

// ToCents converts an amount to integer cents, rounding half away from zero.
func ToCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// FromCents converts integer cents back to a 2-digit amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Where renders filter as a WHERE clause (always present, "WHERE 1=1" for an empty filter)
// and returns its positional arguments. startArg is the number of the first placeholder.
func (d Dialect) Where(filter domain.TransactionFilter, startArg int) (string, []any) {
	var b strings.Builder
	b.WriteString(" WHERE 1=1")
	args := []any{}
	argNum := startArg

	add := func(format string, arg any) {
		b.WriteString(fmt.Sprintf(format, d.Placeholder(argNum)))
		args = append(args, arg)
		argNum++
	}

	if filter.ID != nil {
		add(" AND id = %s", *filter.ID)
	}
	if filter.Suspicious != nil {
		add(" AND is_suspicious = %s", *filter.Suspicious)
	}
	if filter.Category != nil {
		add(" AND category = %s", *filter.Category)
	}
	if filter.DateFrom != nil {
		add(" AND transaction_date >= %s", d.DateArg(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		add(" AND transaction_date <= %s", d.DateArg(*filter.DateTo))
	}
	if filter.MinAmount != nil {
		add(" AND "+d.AmountColumn+" >= %s", d.AmountArg(*filter.MinAmount))
	}
	if filter.DescriptionContains != nil {
		lower := d.LowerFunc
		add(" AND "+lower+"(description) LIKE "+lower+`(%s) ESCAPE '\'`, "%"+EscapeLike(*filter.DescriptionContains)+"%")
	}
	return b.String(), args
}

// OrderBy renders order as an ORDER BY clause. The id is always appended as the final
// tie-breaker so equal rows come back in insertion order.
func (d Dialect) OrderBy(order domain.OrderSpec) (string, error) {
	terms := make([]string, 0, len(order)+1)
	hasID := false
	for _, term := range order {
		column, err := d.orderColumn(term.Field)
		if err != nil {
			return "", err
		}
		if term.Field == domain.OrderByID {
			hasID = true
		}
		direction := "ASC"
		if term.Descending {
			direction = "DESC"
		}
		terms = append(terms, column+" "+direction)
	}
	if !hasID {
		terms = append(terms, "id ASC")
	}
	return " ORDER BY " + strings.Join(terms, ", "), nil
}

func (d Dialect) orderColumn(field domain.OrderField) (string, error) {
	switch field {
	case domain.OrderByDate:
		return "transaction_date", nil
	case domain.OrderByAmount:
		return d.AmountColumn, nil
	case domain.OrderByID:
		return "id", nil
	case domain.OrderByCreatedAt:
		return "created_at", nil
	}
	return "", apperrors.Validationf("unsupported order field %q", field)
}

// GroupColumn maps a group key to its column.
func GroupColumn(key domain.GroupKey) (string, error) {
	if key == domain.GroupByCategory {
		return "category", nil
	}
	return "", apperrors.Validationf("unsupported group key %q", key)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE metacharacters so term matches literally under ESCAPE '\'.
func EscapeLike(term string) string {
	return likeEscaper.Replace(term)
}
