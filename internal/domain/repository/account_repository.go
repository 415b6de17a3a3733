package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// AccountRepository define el puerto de lectura del plan de cuentas.
// Las búsquedas por nombre son case-insensitive; ausencia devuelve nil sin error.
type AccountRepository interface {
	FindByName(name string) (*entity.Account, error)
	FindByNameAndType(name, accountType string) (*entity.Account, error)
}
