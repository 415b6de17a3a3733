package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = "id, product_id, branch_id, quantity_on_hand, quantity_reserved, updated_at"

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanInventory(row pgx.Row) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := row.Scan(&inv.ID, &inv.ProductID, &inv.BranchID,
		&inv.QuantityOnHand, &inv.QuantityReserved, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

// GetByID obtiene la fila de inventario por id.
func (r *InventoryRepo) GetByID(id string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1`
	inv, err := scanInventory(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return inv, nil
}

// GetByIDForUpdate obtiene la fila y la bloquea (SELECT FOR UPDATE).
func (r *InventoryRepo) GetByIDForUpdate(id string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE id = $1 FOR UPDATE`
	inv, err := scanInventory(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get inventory for update: %w", err)
	}
	return inv, nil
}

// GetByProductAndBranch obtiene la fila por producto y sucursal.
func (r *InventoryRepo) GetByProductAndBranch(productID, branchID string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1 AND branch_id = $2`
	inv, err := scanInventory(r.q.QueryRow(context.Background(), query, productID, branchID))
	if err != nil {
		return nil, fmt.Errorf("get inventory by product/branch: %w", err)
	}
	return inv, nil
}

// GetByProductAndBranchForUpdate bloquea la fila destino de un traslado.
func (r *InventoryRepo) GetByProductAndBranchForUpdate(productID, branchID string) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory WHERE product_id = $1 AND branch_id = $2 FOR UPDATE`
	inv, err := scanInventory(r.q.QueryRow(context.Background(), query, productID, branchID))
	if err != nil {
		return nil, fmt.Errorf("get inventory by product/branch for update: %w", err)
	}
	return inv, nil
}

// Create inserta una fila nueva de inventario (destino de traslado sin stock previo).
func (r *InventoryRepo) Create(inv *entity.Inventory) error {
	query := `
		INSERT INTO inventory (id, product_id, branch_id, quantity_on_hand, quantity_reserved, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.ProductID, inv.BranchID, inv.QuantityOnHand, inv.QuantityReserved)
	if err != nil {
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// UpdateQuantityOnHand fija la cantidad on-hand de la fila.
func (r *InventoryRepo) UpdateQuantityOnHand(id string, quantity decimal.Decimal) error {
	query := `UPDATE inventory SET quantity_on_hand = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, quantity)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update inventory quantity: fila %s no existe", id)
	}
	return nil
}
