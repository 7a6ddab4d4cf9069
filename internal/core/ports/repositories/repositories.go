package repositories

import "io"

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade

	// Closer releases the underlying store; nil when there is nothing to release.
	Closer io.Closer
}
