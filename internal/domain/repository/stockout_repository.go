package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// StockOutTransactionRepository define el puerto de persistencia para retiros de inventario.
// Las filas son append-only: no hay Update ni Delete.
type StockOutTransactionRepository interface {
	Create(tx *entity.StockOutTransaction) error
	GetByID(id string) (*entity.StockOutTransaction, error)
	GetByReference(referenceNumber string) (*entity.StockOutTransaction, error)
	ListByBranch(branchID string, limit, offset int) ([]*entity.StockOutTransaction, error)
}
