package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Inventory representa el stock actual de un producto en una sucursal
// (fila mutable; clave lógica producto+sucursal).
type Inventory struct {
	ID               string
	ProductID        string
	BranchID         string
	QuantityOnHand   decimal.Decimal
	QuantityReserved decimal.Decimal
	UpdatedAt        time.Time
}

// QuantityAvailable devuelve la cantidad disponible (on hand - reservada), nunca negativa.
func (i *Inventory) QuantityAvailable() decimal.Decimal {
	avail := i.QuantityOnHand.Sub(i.QuantityReserved)
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}
