package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManager defines methods for database transaction management
type TxManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// TransactionRepositoryWithTx is implemented by stores that expose explicit database
// transactions (Postgres).
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TxManager
}
