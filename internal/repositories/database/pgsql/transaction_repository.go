package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/transaction_service/internal/apperrors"
	"github.com/SscSPs/transaction_service/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_service/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_service/internal/models"
	"github.com/SscSPs/transaction_service/internal/repositories/database/sqlquery"
	"github.com/SscSPs/transaction_service/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `id, transaction_date, amount, description, category, is_suspicious, created_at`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.ID,
		&m.TransactionDate,
		&m.Amount,
		&m.Description,
		&m.Category,
		&m.IsSuspicious,
		&m.CreatedAt,
	)
	return m, err
}

// FindTransactionByID retrieves a single transaction.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ` + sqlquery.TableName + ` WHERE id = $1;`

	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to find transaction %d", id), err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// ListTransactions retrieves the transactions matching filter in the requested order.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter, order domain.OrderSpec) ([]domain.Transaction, error) {
	where, args := sqlquery.Postgres.Where(filter, 1)
	orderBy, err := sqlquery.Postgres.OrderBy(order)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM ` + sqlquery.TableName + where + orderBy
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to query transactions", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		return nil, apperrors.NewStorageError("failed to scan transactions", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// CountTransactions counts the transactions matching filter.
func (r *PgxTransactionRepository) CountTransactions(ctx context.Context, filter domain.TransactionFilter) (int64, error) {
	where, args := sqlquery.Postgres.Where(filter, 1)
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+sqlquery.TableName+where, args...).Scan(&count); err != nil {
		return 0, apperrors.NewStorageError("failed to count transactions", err)
	}
	return count, nil
}

// SumAmount sums the amounts matching filter; zero when nothing matches.
func (r *PgxTransactionRepository) SumAmount(ctx context.Context, filter domain.TransactionFilter) (decimal.Decimal, error) {
	return r.scalarAmount(ctx, "SUM", filter)
}

// AverageAmount averages the amounts matching filter; zero when nothing matches.
func (r *PgxTransactionRepository) AverageAmount(ctx context.Context, filter domain.TransactionFilter) (decimal.Decimal, error) {
	return r.scalarAmount(ctx, "AVG", filter)
}

func (r *PgxTransactionRepository) scalarAmount(ctx context.Context, fn string, filter domain.TransactionFilter) (decimal.Decimal, error) {
	where, args := sqlquery.Postgres.Where(filter, 1)
	query := `SELECT COALESCE(` + fn + `(amount), 0) FROM ` + sqlquery.TableName + where

	var result decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&result); err != nil {
		return decimal.Zero, apperrors.NewStorageError(fmt.Sprintf("failed to compute %s of amounts", fn), err)
	}
	return result, nil
}

// CountGrouped counts transactions per group, largest first.
func (r *PgxTransactionRepository) CountGrouped(ctx context.Context, key domain.GroupKey) ([]domain.CategoryCount, error) {
	column, err := sqlquery.GroupColumn(key)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %[1]s, COUNT(*) FROM %[2]s GROUP BY %[1]s ORDER BY COUNT(*) DESC, %[1]s ASC`,
		column, sqlquery.TableName)

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to count transactions by group", err)
	}
	defer rows.Close()

	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategoryCount, error) {
		var c domain.CategoryCount
		err := row.Scan(&c.Category, &c.Count)
		return c, err
	})
	if err != nil {
		return nil, apperrors.NewStorageError("failed to scan grouped counts", err)
	}
	return counts, nil
}

// SumGrouped sums amounts per group, largest first.
func (r *PgxTransactionRepository) SumGrouped(ctx context.Context, key domain.GroupKey) ([]domain.CategoryTotal, error) {
	column, err := sqlquery.GroupColumn(key)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %[1]s, COALESCE(SUM(amount), 0) AS total FROM %[2]s GROUP BY %[1]s ORDER BY total DESC, %[1]s ASC`,
		column, sqlquery.TableName)

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to sum transactions by group", err)
	}
	defer rows.Close()

	totals, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CategoryTotal, error) {
		var t domain.CategoryTotal
		err := row.Scan(&t.Category, &t.Total)
		return t, err
	})
	if err != nil {
		return nil, apperrors.NewStorageError("failed to scan grouped totals", err)
	}
	return totals, nil
}

// SaveTransaction inserts a new transaction and returns its generated id.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) (int64, error) {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO ` + sqlquery.TableName + ` (transaction_date, amount, description, category, is_suspicious, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id;
	`
	var id int64
	err := r.Pool.QueryRow(ctx, query,
		modelTxn.TransactionDate,
		modelTxn.Amount,
		modelTxn.Description,
		modelTxn.Category,
		modelTxn.IsSuspicious,
		modelTxn.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, apperrors.NewStorageError("failed to insert transaction", err)
	}
	return id, nil
}

// UpdateTransaction locks the row, keeps its created_at and replaces every other field.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	modelTxn := mapping.ToModelTransaction(txn)

	err = tx.QueryRow(ctx, `SELECT created_at FROM `+sqlquery.TableName+` WHERE id = $1 FOR UPDATE;`, modelTxn.ID).
		Scan(&modelTxn.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %d: %w", modelTxn.ID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to lock transaction %d", modelTxn.ID), err)
	}

	query := `
		UPDATE ` + sqlquery.TableName + `
		SET transaction_date = $2, amount = $3, description = $4, category = $5, is_suspicious = $6
		WHERE id = $1;
	`
	_, err = tx.Exec(ctx, query,
		modelTxn.ID,
		modelTxn.TransactionDate,
		modelTxn.Amount,
		modelTxn.Description,
		modelTxn.Category,
		modelTxn.IsSuspicious,
	)
	if err != nil {
		return nil, apperrors.NewStorageError(fmt.Sprintf("failed to update transaction %d", modelTxn.ID), err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	updated := mapping.ToDomainTransaction(modelTxn)
	return &updated, nil
}

// DeleteTransaction removes a transaction and reports whether a row was affected.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, id int64) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM `+sqlquery.TableName+` WHERE id = $1;`, id)
	if err != nil {
		return false, apperrors.NewStorageError(fmt.Sprintf("failed to delete transaction %d", id), err)
	}
	return tag.RowsAffected() > 0, nil
}
