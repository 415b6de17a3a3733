package repository

import (
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryRepository define el puerto para consultar/actualizar filas de inventario.
// Usado dentro de transacciones para garantizar consistencia.
type InventoryRepository interface {
	GetByID(id string) (*entity.Inventory, error)
	GetByProductAndBranch(productID, branchID string) (*entity.Inventory, error)
	// GetByIDForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.Inventory, error)
	// GetByProductAndBranchForUpdate bloquea la fila destino de un traslado.
	GetByProductAndBranchForUpdate(productID, branchID string) (*entity.Inventory, error)
	Create(inv *entity.Inventory) error
	UpdateQuantityOnHand(id string, quantity decimal.Decimal) error
}
