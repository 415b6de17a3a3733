package accounting

import (
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// AccountKey identifica una cuenta del plan contable por semántica estable en
// lugar de texto libre. La resolución usa el nombre canónico como búsqueda
// (case-insensitive) contra el plan de cuentas.
type AccountKey string

const (
	KeyInventoryAsset         AccountKey = "INVENTORY_ASSET"
	KeyLossExpired            AccountKey = "LOSS_EXPENSE_EXPIRED"
	KeyLossDamaged            AccountKey = "LOSS_EXPENSE_DAMAGED"
	KeyLossShrinkage          AccountKey = "LOSS_EXPENSE_SHRINKAGE"
	KeySupplierReturnsPayable AccountKey = "SUPPLIER_RETURNS_PAYABLE"
)

// CanonicalName devuelve el nombre canónico de la cuenta en el plan.
func (k AccountKey) CanonicalName() string {
	switch k {
	case KeyInventoryAsset:
		return "Inventory"
	case KeyLossExpired:
		return "Inventory Loss - Expired Goods"
	case KeyLossDamaged:
		return "Inventory Loss - Damaged Goods"
	case KeyLossShrinkage:
		return "Inventory Shrinkage / Theft Loss"
	case KeySupplierReturnsPayable:
		return "Accounts Payable - Supplier Returns"
	}
	return string(k)
}

// AccountType devuelve el tipo contable esperado para la clave.
func (k AccountKey) AccountType() string {
	switch k {
	case KeyInventoryAsset:
		return entity.AccountTypeAsset
	case KeySupplierReturnsPayable:
		return entity.AccountTypeLiability
	}
	return entity.AccountTypeExpense
}

// BranchQualifiedInventoryName devuelve el nombre de la cuenta de inventario
// calificada por sucursal ("Inventory - {sucursal}"); la resolución cae a la
// cuenta genérica "Inventory" cuando no existe la calificada.
func BranchQualifiedInventoryName(branchName string) string {
	return fmt.Sprintf("%s - %s", KeyInventoryAsset.CanonicalName(), branchName)
}

// LossKeyForReason mapea razones con impacto de pérdida a su cuenta de gasto.
// transferred y returned_to_supplier NO pasan por aquí: se contabilizan contra
// cuentas de inventario / por pagar (reglas del asiento).
func LossKeyForReason(reason string) AccountKey {
	switch reason {
	case entity.ReasonExpired:
		return KeyLossExpired
	case entity.ReasonDamaged:
		return KeyLossDamaged
	}
	// lost_missing y ajustes con pérdida van a merma/robo
	return KeyLossShrinkage
}
