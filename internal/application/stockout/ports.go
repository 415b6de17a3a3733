package stockout

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// InventoryDecrementer decrementa la cantidad on-hand de una fila de inventario.
// La implementación preferida invoca la capacidad atómica del servidor
// (función almacenada); si no existe, cae a leer-calcular-escribir. Ambas rutas
// viven detrás de esta interfaz para poder simularlas en tests.
type InventoryDecrementer interface {
	Decrement(inventoryID string, quantity decimal.Decimal) (*entity.Inventory, error)
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios y el decrementer atados a esa tx. Los efectos de inventario del
// retiro (fila del retiro, decremento, movimientos, espejo del traslado) se
// confirman o revierten como unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		soRepo repository.StockOutTransactionRepository,
		invRepo repository.InventoryRepository,
		movRepo repository.InventoryMovementRepository,
		decrementer InventoryDecrementer,
	) error) error
}

// ActorResolver resuelve el id del usuario actor para created_by/approved_by.
// Sustituye al singleton ambiental del diseño original: el motor solo depende
// de esta interfaz, nunca de estado global.
type ActorResolver interface {
	// Resolve devuelve el id del actor o domain.ErrNotAuthenticated.
	Resolve(ctx context.Context, explicitID string) (string, error)
}
