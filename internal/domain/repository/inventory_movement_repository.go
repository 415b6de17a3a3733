package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	ListByReference(referenceNumber string) ([]*entity.InventoryMovement, error)
	// ListRecentInbound devuelve las últimas entradas (purchase_in, transfer_in)
	// de un producto en una sucursal, para ponderar el costo unitario.
	ListRecentInbound(productID, branchID string, limit int) ([]*entity.InventoryMovement, error)
}
