package services

import (
	"github.com/SscSPs/transaction_service/internal/core/ports"
	portsrepo "github.com/SscSPs/transaction_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/transaction_service/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher ports.EventPublisher, clock Clock) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Query: NewTransactionQueryService(repos.TransactionRepo, WithQueryClock(clock)),
		Stats: NewTransactionStatsService(repos.TransactionRepo),
		Writer: NewTransactionWriteService(repos.TransactionRepo,
			WithWriterClock(clock),
			WithEventPublisher(publisher),
		),
	}
}
