package accounting

import (
	"github.com/jhoicas/stock-ledger-api/internal/domain/accounting"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// AccountResolver busca cuentas del plan contable por clave semántica.
// Ausencia devuelve (nil, nil): decidir si es hard-stop es responsabilidad del
// JournalBuilder, que es quien sabe qué cuentas son obligatorias.
type AccountResolver struct {
	accountRepo repository.AccountRepository
}

// NewAccountResolver construye el resolver sobre el repositorio del plan de cuentas.
func NewAccountResolver(accountRepo repository.AccountRepository) *AccountResolver {
	return &AccountResolver{accountRepo: accountRepo}
}

// ResolveAccount busca por nombre (case-insensitive), opcionalmente filtrando por tipo.
func (r *AccountResolver) ResolveAccount(name, accountType string) (*entity.Account, error) {
	if accountType != "" {
		return r.accountRepo.FindByNameAndType(name, accountType)
	}
	return r.accountRepo.FindByName(name)
}

// ResolveInventoryAccount busca la cuenta de inventario calificada por sucursal
// ("Inventory - {sucursal}") y cae a la genérica "Inventory" si no existe.
func (r *AccountResolver) ResolveInventoryAccount(branchName string) (*entity.Account, error) {
	if branchName != "" {
		acc, err := r.accountRepo.FindByNameAndType(
			accounting.BranchQualifiedInventoryName(branchName), entity.AccountTypeAsset)
		if err != nil {
			return nil, err
		}
		if acc != nil {
			return acc, nil
		}
	}
	return r.accountRepo.FindByNameAndType(
		accounting.KeyInventoryAsset.CanonicalName(), entity.AccountTypeAsset)
}

// ResolveLossAccount busca la cuenta de gasto para una razón con impacto de pérdida.
func (r *AccountResolver) ResolveLossAccount(reason string) (*entity.Account, error) {
	key := accounting.LossKeyForReason(reason)
	return r.accountRepo.FindByNameAndType(key.CanonicalName(), key.AccountType())
}

// ResolveSupplierReturnsAccount busca la cuenta por pagar de devoluciones a proveedor.
func (r *AccountResolver) ResolveSupplierReturnsAccount() (*entity.Account, error) {
	return r.accountRepo.FindByNameAndType(
		accounting.KeySupplierReturnsPayable.CanonicalName(),
		accounting.KeySupplierReturnsPayable.AccountType())
}
