package stockout

import (
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	domaininv "github.com/jhoicas/stock-ledger-api/internal/domain/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// recentInboundLimit: cuántas entradas recientes se ponderan para el costo.
const recentInboundLimit = 20

// CostResolver determina el costo unitario del producto en la sucursal:
// promedio ponderado de entradas recientes; si no hay historial, el costo
// registrado del producto; si tampoco, cero con warning (caso degenerado
// conocido, no bloquea el retiro).
type CostResolver struct {
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewCostResolver construye el resolver. Solo lectura, sin efectos.
func NewCostResolver(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository, log *logger.Logger) *CostResolver {
	return &CostResolver{movRepo: movRepo, productRepo: productRepo, log: log}
}

// Resolve devuelve el costo unitario (>= 0) para el producto en la sucursal.
func (r *CostResolver) Resolve(productID, branchID string) (decimal.Decimal, error) {
	movements, err := r.movRepo.ListRecentInbound(productID, branchID, recentInboundLimit)
	if err != nil {
		return decimal.Zero, err
	}
	entries := make([]domaininv.CostEntry, 0, len(movements))
	for _, m := range movements {
		if !isInbound(m) {
			continue
		}
		entries = append(entries, domaininv.CostEntry{Quantity: m.Quantity, UnitCost: m.UnitCost})
	}
	cost := domaininv.WeightedAverageCost(entries)
	if cost.GreaterThan(decimal.Zero) {
		return cost, nil
	}

	// Respaldo: costo registrado del producto
	product, err := r.productRepo.GetByID(productID)
	if err != nil {
		return decimal.Zero, err
	}
	if product != nil && product.Cost.GreaterThan(decimal.Zero) {
		return product.Cost, nil
	}

	r.log.Warn().
		Str("product_id", productID).
		Str("branch_id", branchID).
		Msg("costo unitario cero: sin historial de entradas ni costo registrado; el monto de pérdida será 0")
	return decimal.Zero, nil
}

// solo compras y traslados recibidos ponderan costo
func isInbound(m *entity.InventoryMovement) bool {
	return m.MovementType == entity.MovementPurchaseIn || m.MovementType == entity.MovementTransferIn
}
