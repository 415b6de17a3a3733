package stockout

import (
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// ValidReason indica si la razón de retiro pertenece a la taxonomía conocida.
func ValidReason(reason string) bool {
	switch reason {
	case entity.ReasonExpired, entity.ReasonDamaged, entity.ReasonReturnedToSupplier,
		entity.ReasonTransferred, entity.ReasonAdjustmentCorrection, entity.ReasonLostMissing:
		return true
	}
	return false
}

// ClassifyImpact mapea razón (+ subtipo opcional de ajuste) a categoría de impacto financiero.
// Función pura; toda decisión contable posterior depende de esta clasificación,
// por eso está centralizada aquí y no se duplica en otros componentes.
//
// Regla: transferred y returned_to_supplier -> neutral.
// adjustment_correction -> neutral si subtipo clerical_error, loss en caso contrario.
// El resto de razones -> loss.
func ClassifyImpact(reason, adjustmentType string) (string, error) {
	switch reason {
	case entity.ReasonTransferred, entity.ReasonReturnedToSupplier:
		return entity.ImpactNeutral, nil
	case entity.ReasonAdjustmentCorrection:
		if adjustmentType == entity.AdjustmentClericalError {
			return entity.ImpactNeutral, nil
		}
		return entity.ImpactLoss, nil
	case entity.ReasonExpired, entity.ReasonDamaged, entity.ReasonLostMissing:
		return entity.ImpactLoss, nil
	}
	return "", domain.ErrInvalidInput
}
