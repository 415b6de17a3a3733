package postgres

import (
	"context"
	"fmt"
	"sync/atomic"

	appstockout "github.com/jhoicas/stock-ledger-api/internal/application/stockout"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
	"github.com/shopspring/decimal"
)

var _ appstockout.InventoryDecrementer = (*InventoryDecrementer)(nil)

// InventoryDecrementer decrementa quantity_on_hand con la función almacenada
// decrement_inventory si está desplegada; ante SQLSTATE 42883 (undefined
// function) cae a leer-calcular-escribir. Dentro de la transacción del motor
// la ruta manual queda además cubierta por el SELECT FOR UPDATE, que evita la
// carrera lectura-modificación-escritura entre retiros concurrentes.
type InventoryDecrementer struct {
	q   Querier
	log *logger.Logger
	// procMissing recuerda que la función no existe para no reintentarla en cada llamada.
	procMissing *atomic.Bool
}

// NewInventoryDecrementer construye el decrementer. Pasar pool o tx (Querier).
func NewInventoryDecrementer(q Querier, log *logger.Logger, procMissing *atomic.Bool) *InventoryDecrementer {
	return &InventoryDecrementer{q: q, log: log, procMissing: procMissing}
}

// DetectDecrementCapability consulta pg_proc al arranque para saber si la
// función atómica existe, sin provocar un error que aborte transacciones.
// Devuelve el flag compartido que consumen los decrementers.
func DetectDecrementCapability(ctx context.Context, q Querier, log *logger.Logger) *atomic.Bool {
	missing := &atomic.Bool{}
	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_proc WHERE proname = 'decrement_inventory')`).Scan(&exists)
	if err != nil || !exists {
		missing.Store(true)
		log.Warn().Msg("decrement_inventory no está desplegada; los decrementos usarán la ruta manual")
	}
	return missing
}

// Decrement resta quantity a la fila y devuelve la fila actualizada.
func (d *InventoryDecrementer) Decrement(inventoryID string, quantity decimal.Decimal) (*entity.Inventory, error) {
	if !d.procMissing.Load() {
		inv, err := d.decrementViaProc(inventoryID, quantity)
		if err == nil {
			return inv, nil
		}
		if !isUndefinedFunction(err) {
			return nil, err
		}
		d.procMissing.Store(true)
		d.log.Warn().Msg("decrement_inventory no está desplegada; usando decremento manual (no atómico fuera de tx)")
	}
	return d.decrementManual(inventoryID, quantity)
}

// decrementViaProc invoca la capacidad atómica del servidor.
func (d *InventoryDecrementer) decrementViaProc(inventoryID string, quantity decimal.Decimal) (*entity.Inventory, error) {
	query := `SELECT ` + inventoryColumns + ` FROM decrement_inventory($1, $2)`
	inv, err := scanInventory(d.q.QueryRow(context.Background(), query, inventoryID, quantity))
	if err != nil {
		return nil, fmt.Errorf("decrement via proc: %w", err)
	}
	if inv == nil {
		return nil, fmt.Errorf("decrement via proc: fila %s no existe", inventoryID)
	}
	return inv, nil
}

// decrementManual: leer (FOR UPDATE) -> calcular con piso en cero -> escribir.
func (d *InventoryDecrementer) decrementManual(inventoryID string, quantity decimal.Decimal) (*entity.Inventory, error) {
	repo := NewInventoryRepository(d.q)
	inv, err := repo.GetByIDForUpdate(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, fmt.Errorf("decrement manual: fila %s no existe", inventoryID)
	}
	newQty := inv.QuantityOnHand.Sub(quantity)
	if newQty.IsNegative() {
		newQty = decimal.Zero
	}
	if err := repo.UpdateQuantityOnHand(inventoryID, newQty); err != nil {
		return nil, err
	}
	inv.QuantityOnHand = newQty
	return inv, nil
}
