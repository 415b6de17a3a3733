package entity

import "time"

// Tipos de cuenta del plan contable.
const (
	AccountTypeAsset     = "asset"
	AccountTypeLiability = "liability"
	AccountTypeEquity    = "equity"
	AccountTypeIncome    = "income"
	AccountTypeExpense   = "expense"
)

// Account es una entrada del plan de cuentas (datos de referencia externos).
// Se resuelve por nombre (case-insensitive), opcionalmente calificada por sucursal.
type Account struct {
	ID        string
	Name      string
	Type      string // asset | liability | equity | income | expense
	Active    bool
	CreatedAt time.Time
}
