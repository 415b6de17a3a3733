package stockout

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// MovementTypeForReason deriva de forma determinista el tipo de movimiento de
// auditoría a partir de la razón del retiro (siempre el lado de salida/origen).
func MovementTypeForReason(reason string) string {
	switch reason {
	case entity.ReasonExpired:
		return entity.MovementStockOutExpired
	case entity.ReasonDamaged:
		return entity.MovementStockOutDamaged
	case entity.ReasonReturnedToSupplier:
		return entity.MovementStockOutReturned
	case entity.ReasonTransferred:
		return entity.MovementStockOutTransfer
	case entity.ReasonAdjustmentCorrection:
		return entity.MovementStockOutAdjustment
	case entity.ReasonLostMissing:
		return entity.MovementStockOutLost
	}
	return entity.MovementStockOutAdjustment
}

// ReasonLabel devuelve una etiqueta legible para memos contables y notas.
func ReasonLabel(reason string) string {
	switch reason {
	case entity.ReasonExpired:
		return "Expired Goods"
	case entity.ReasonDamaged:
		return "Damaged Goods"
	case entity.ReasonReturnedToSupplier:
		return "Returned to Supplier"
	case entity.ReasonTransferred:
		return "Inter-Branch Transfer"
	case entity.ReasonAdjustmentCorrection:
		return "Adjustment / Correction"
	case entity.ReasonLostMissing:
		return "Lost / Missing"
	}
	return reason
}
