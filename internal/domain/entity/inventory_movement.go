package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario. Los de retiro se derivan de la razón;
// los de entrada alimentan el cálculo de costo promedio ponderado.
const (
	MovementPurchaseIn         = "purchase_in"
	MovementTransferIn         = "transfer_in"
	MovementStockOutExpired    = "stock_out_expired"
	MovementStockOutDamaged    = "stock_out_damaged"
	MovementStockOutReturned   = "stock_out_returned_to_supplier"
	MovementStockOutTransfer   = "stock_out_transferred"
	MovementStockOutAdjustment = "stock_out_adjustment"
	MovementStockOutLost       = "stock_out_lost"
)

// InventoryMovement es el registro de auditoría inmutable de cada cambio físico
// de cantidad: uno por decremento en origen, uno más por incremento en destino
// cuando hay traslado. Cantidad negativa = salida, positiva = entrada.
type InventoryMovement struct {
	ID              string
	InventoryID     string
	ProductID       string
	BranchID        string
	MovementType    string
	Quantity        decimal.Decimal // negativo para salidas, positivo para entradas
	UnitCost        decimal.Decimal
	ReferenceNumber string // coincide con la transacción dueña
	ReferenceID     string // id de la StockOutTransaction
	MovementDate    time.Time
	Notes           string
	CreatedAt       time.Time
	CreatedBy       string
}
