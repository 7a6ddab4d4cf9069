// Package sqlite stores transactions in a single SQLite file through modernc.org/sqlite.
// Amounts are kept as integer cents so that SUM is exact.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/transaction_service/internal/apperrors"
	"github.com/SscSPs/transaction_service/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_service/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_service/internal/models"
	"github.com/SscSPs/transaction_service/internal/repositories/database/sqlquery"
	"github.com/SscSPs/transaction_service/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, transaction_date, amount_cents, description, category, is_suspicious, created_at`

// TransactionRepository implements the storage port over database/sql.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository wraps an open database whose schema has been migrated.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

// NewRepositoryProvider wires the SQLite-backed repositories. Closing the provider closes db.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: NewTransactionRepository(db),
		Closer:          db,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (models.Transaction, error) {
	var (
		m         models.Transaction
		date      string
		cents     int64
		createdAt string
	)
	if err := row.Scan(&m.ID, &date, &cents, &m.Description, &m.Category, &m.IsSuspicious, &createdAt); err != nil {
		return m, err
	}

	parsedDate, err := time.Parse(sqlquery.DateLayout, date)
	if err != nil {
		return m, fmt.Errorf("parse transaction_date %q: %w", date, err)
	}
	parsedCreatedAt, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return m, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}

	m.TransactionDate = parsedDate
	m.Amount = sqlquery.FromCents(cents)
	m.CreatedAt = parsedCreatedAt
	return m, nil
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ` + sqlquery.TableName + ` WHERE id = ?`

	modelTxn, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find transaction %d", id), err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

func (r *TransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, order domain.OrderSpec) ([]domain.Transaction, error) {
	where, args := sqlquery.SQLite.Where(filter, 1)
	orderBy, err := sqlquery.SQLite.OrderBy(order)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+transactionColumns+` FROM `+sqlquery.TableName+where+orderBy, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query transactions", err)
	}
	defer rows.Close()

	var modelTxns []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to scan transaction", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate transactions", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

func (r *TransactionRepository) CountTransactions(ctx context.Context, filter domain.TransactionFilter) (int64, error) {
	where, args := sqlquery.SQLite.Where(filter, 1)
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+sqlquery.TableName+where, args...).Scan(&count); err != nil {
		return 0, apperrors.NewStorageError("failed to count transactions", err)
	}
	return count, nil
}

func (r *TransactionRepository) sumAndCount(ctx context.Context, filter domain.TransactionFilter) (int64, int64, error) {
	where, args := sqlquery.SQLite.Where(filter, 1)
	var sum, count int64
	query := `SELECT COALESCE(SUM(amount_cents), 0), COUNT(*) FROM ` + sqlquery.TableName + where
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&sum, &count); err != nil {
		return 0, 0, apperrors.NewStorageError("failed to aggregate amounts", err)
	}
	return sum, count, nil
}

func (r *TransactionRepository) SumAmount(ctx context.Context, filter domain.TransactionFilter) (decimal.Decimal, error) {
	sum, _, err := r.sumAndCount(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}
	return sqlquery.FromCents(sum), nil
}

func (r *TransactionRepository) AverageAmount(ctx context.Context, filter domain.TransactionFilter) (decimal.Decimal, error) {
	sum, count, err := r.sumAndCount(ctx, filter)
	if err != nil || count == 0 {
		return decimal.Zero, err
	}
	return sqlquery.FromCents(sum).Div(decimal.NewFromInt(count)), nil
}

func (r *TransactionRepository) CountGrouped(ctx context.Context, key domain.GroupKey) ([]domain.CategoryCount, error) {
	column, err := sqlquery.GroupColumn(key)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %[1]s, COUNT(*) AS n FROM %[2]s GROUP BY %[1]s ORDER BY n DESC, %[1]s ASC`,
		column, sqlquery.TableName)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to count transactions by group", err)
	}
	defer rows.Close()

	counts := []domain.CategoryCount{}
	for rows.Next() {
		var c domain.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, apperrors.NewStorageError("failed to scan grouped count", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate grouped counts", err)
	}
	return counts, nil
}

func (r *TransactionRepository) SumGrouped(ctx context.Context, key domain.GroupKey) ([]domain.CategoryTotal, error) {
	column, err := sqlquery.GroupColumn(key)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %[1]s, COALESCE(SUM(amount_cents), 0) AS total FROM %[2]s GROUP BY %[1]s ORDER BY total DESC, %[1]s ASC`,
		column, sqlquery.TableName)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to sum transactions by group", err)
	}
	defer rows.Close()

	totals := []domain.CategoryTotal{}
	for rows.Next() {
		var (
			t     domain.CategoryTotal
			cents int64
		)
		if err := rows.Scan(&t.Category, &cents); err != nil {
			return nil, apperrors.NewStorageError("failed to scan grouped total", err)
		}
		t.Total = sqlquery.FromCents(cents)
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStorageError("failed to iterate grouped totals", err)
	}
	return totals, nil
}

func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	m := mapping.ToModelTransaction(txn)
	query := `INSERT INTO ` + sqlquery.TableName + ` (transaction_date, amount_cents, description, category, is_suspicious, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		sqlquery.FormatDate(m.TransactionDate),
		sqlquery.ToCents(m.Amount),
		m.Description,
		m.Category,
		m.IsSuspicious,
		m.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, apperrors.NewStorageError("failed to insert transaction", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.NewStorageError("failed to read inserted id", err)
	}
	return id, nil
}

// UpdateTransaction replaces the mutable columns inside one database transaction so the
// created_at read and the write see the same row.
func (r *TransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	m := mapping.ToModelTransaction(txn)

	var createdAt string
	err = tx.QueryRowContext(ctx, `SELECT created_at FROM `+sqlquery.TableName+` WHERE id = ?`, m.ID).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transaction %d: %w", m.ID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to read transaction %d", m.ID), err)
	}
	if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, apperrors.NewStorageError("failed to parse created_at", err)
	}

	query := `UPDATE ` + sqlquery.TableName + `
		SET transaction_date = ?, amount_cents = ?, description = ?, category = ?, is_suspicious = ?
		WHERE id = ?`
	_, err = tx.ExecContext(ctx, query,
		sqlquery.FormatDate(m.TransactionDate),
		sqlquery.ToCents(m.Amount),
		m.Description,
		m.Category,
		m.IsSuspicious,
		m.ID,
	)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to update transaction %d", m.ID), err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.NewStorageError("failed to commit transaction", err)
	}

	m.Amount = sqlquery.FromCents(sqlquery.ToCents(m.Amount))
	updated := mapping.ToDomainTransaction(m)
	return &updated, nil
}

func (r *TransactionRepository) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+sqlquery.TableName+` WHERE id = ?`, id)
	if err != nil {
		return false, apperrors.NewStorageError(fmt.Sprintf("failed to delete transaction %d", id), err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.NewStorageError("failed to read affected rows", err)
	}
	return affected > 0, nil
}
