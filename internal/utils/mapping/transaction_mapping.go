package mapping

import (
	"github.com/SscSPs/transaction_service/internal/core/domain"
	"github.com/SscSPs/transaction_service/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		ID:              d.ID,
		TransactionDate: domain.DateOf(d.TransactionDate),
		Amount:          d.Amount,
		Description:     d.Description,
		Category:        d.Category,
		IsSuspicious:    d.Suspicious,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:              m.ID,
		TransactionDate: domain.DateOf(m.TransactionDate),
		Amount:          m.Amount,
		Description:     m.Description,
		Category:        m.Category,
		Suspicious:      m.IsSuspicious,
		CreatedAt:       m.CreatedAt.UTC(),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
