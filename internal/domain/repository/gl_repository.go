package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// GLTransactionRepository define el puerto de persistencia para asientos contables.
// El asiento y sus líneas se crean juntos y quedan inmutables (posted).
type GLTransactionRepository interface {
	Create(tx *entity.GLTransaction, items []*entity.GLTransactionItem) error
	GetByID(id string) (*entity.GLTransaction, []*entity.GLTransactionItem, error)
	GetByReference(referenceNumber string) (*entity.GLTransaction, []*entity.GLTransactionItem, error)
}
