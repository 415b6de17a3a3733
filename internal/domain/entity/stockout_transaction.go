package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Razones de retiro de inventario (stock-out).
const (
	ReasonExpired              = "expired"
	ReasonDamaged              = "damaged"
	ReasonReturnedToSupplier   = "returned_to_supplier"
	ReasonTransferred          = "transferred"
	ReasonAdjustmentCorrection = "adjustment_correction"
	ReasonLostMissing          = "lost_missing"
)

// Subtipos para ReasonAdjustmentCorrection.
const (
	AdjustmentClericalError = "clerical_error"
	AdjustmentMissingStock  = "missing_stock"
)

// Categorías de impacto financiero.
const (
	ImpactLoss    = "loss"    // reduce la utilidad reportada
	ImpactNeutral = "neutral" // el inventario se traslada o devuelve sin pérdida
)

// Estado del retiro. En este diseño no hay flujo de aprobación pendiente:
// el mismo actor que solicita aprueba.
const StockOutStatusApproved = "approved"

// StockOutTransaction representa un retiro de inventario por razón distinta a venta.
// Inmutable después de creado (semántica de libro append-only).
type StockOutTransaction struct {
	ID                  string
	InventoryID         string
	ProductID           string
	BranchID            string
	Reason              string
	AdjustmentType      string // solo para adjustment_correction: clerical_error | missing_stock
	Quantity            decimal.Decimal
	UnitCost            decimal.Decimal
	FinancialImpact     string          // loss | neutral
	TotalLossAmount     decimal.Decimal // quantity * unit_cost si impacto loss, 0 si neutral
	ReferenceNumber     string          // SO-YYYYMMDD-HHMMSS-RRR, único
	DestinationBranchID string          // obligatorio si y solo si reason = transferred
	SupplierReturnRef   string          // referencia de devolución a proveedor (opcional)
	Notes               string
	Status              string // approved
	CreatedBy           string
	ApprovedBy          string
	CreatedAt           time.Time
}
