package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

const movementColumns = `id, inventory_id, product_id, branch_id, movement_type, quantity,
		unit_cost, reference_number, reference_id, movement_date, notes, created_at, created_by`

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario (fila de auditoría, append-only).
func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.InventoryID, movement.ProductID, movement.BranchID,
		movement.MovementType, movement.Quantity, movement.UnitCost,
		movement.ReferenceNumber, movement.ReferenceID, movement.MovementDate,
		nullable(movement.Notes), movement.CreatedAt, nullable(movement.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

func scanMovements(rows pgx.Rows) ([]*entity.InventoryMovement, error) {
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var notes, createdBy *string
		if err := rows.Scan(&m.ID, &m.InventoryID, &m.ProductID, &m.BranchID,
			&m.MovementType, &m.Quantity, &m.UnitCost, &m.ReferenceNumber,
			&m.ReferenceID, &m.MovementDate, &notes, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Notes = deref(notes)
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByReference devuelve todos los movimientos ligados a una referencia.
func (r *InventoryMovementRepo) ListByReference(referenceNumber string) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE reference_number = $1 ORDER BY movement_date, quantity`
	rows, err := r.q.Query(context.Background(), query, referenceNumber)
	if err != nil {
		return nil, fmt.Errorf("list movements by reference: %w", err)
	}
	return scanMovements(rows)
}

// ListRecentInbound devuelve las últimas entradas (compras y traslados
// recibidos) de un producto en una sucursal, para ponderar el costo.
func (r *InventoryMovementRepo) ListRecentInbound(productID, branchID string, limit int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements
		WHERE product_id = $1 AND branch_id = $2
		  AND movement_type IN ($3, $4) AND quantity > 0
		ORDER BY movement_date DESC LIMIT $5`
	rows, err := r.q.Query(context.Background(), query, productID, branchID,
		entity.MovementPurchaseIn, entity.MovementTransferIn, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent inbound: %w", err)
	}
	return scanMovements(rows)
}
