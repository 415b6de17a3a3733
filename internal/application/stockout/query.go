package stockout

import (
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// QueryUseCase lecturas de conciliación: retiros y movimientos por referencia.
type QueryUseCase struct {
	soRepo  repository.StockOutTransactionRepository
	movRepo repository.InventoryMovementRepository
	glRepo  repository.GLTransactionRepository
}

// NewQueryUseCase construye las consultas de solo lectura.
func NewQueryUseCase(
	soRepo repository.StockOutTransactionRepository,
	movRepo repository.InventoryMovementRepository,
	glRepo repository.GLTransactionRepository,
) *QueryUseCase {
	return &QueryUseCase{soRepo: soRepo, movRepo: movRepo, glRepo: glRepo}
}

// GetByID devuelve un retiro por id.
func (uc *QueryUseCase) GetByID(id string) (*entity.StockOutTransaction, error) {
	so, err := uc.soRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if so == nil {
		return nil, domain.ErrNotFound
	}
	return so, nil
}

// ListByBranch lista retiros de una sucursal, paginados.
func (uc *QueryUseCase) ListByBranch(branchID string, limit, offset int) ([]*entity.StockOutTransaction, error) {
	if branchID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.soRepo.ListByBranch(branchID, limit, offset)
}

// MovementsByReference devuelve todos los movimientos de una referencia
// (para traslados: el decremento origen + el incremento destino suman cero).
func (uc *QueryUseCase) MovementsByReference(referenceNumber string) ([]*entity.InventoryMovement, error) {
	if referenceNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movRepo.ListByReference(referenceNumber)
}

// LedgerByReference devuelve el asiento ligado a una referencia de retiro, si existe.
func (uc *QueryUseCase) LedgerByReference(referenceNumber string) (*entity.GLTransaction, []*entity.GLTransactionItem, error) {
	if referenceNumber == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	return uc.glRepo.GetByReference(referenceNumber)
}
