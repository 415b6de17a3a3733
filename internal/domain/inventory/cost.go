package inventory

import "github.com/shopspring/decimal"

// CostEntry es una entrada histórica (compra o traslado recibido) con la que se
// pondera el costo unitario.
type CostEntry struct {
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// WeightedAverageCost implementa la lógica de costo promedio ponderado (servicio de dominio).
// Costo = sum(Cantidad_i * Costo_i) / sum(Cantidad_i)
// Devuelve cero si no hay cantidades positivas que ponderar.
func WeightedAverageCost(entries []CostEntry) decimal.Decimal {
	totalQty := decimal.Zero
	totalCost := decimal.Zero
	for _, e := range entries {
		if e.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}
		totalQty = totalQty.Add(e.Quantity)
		totalCost = totalCost.Add(e.Quantity.Mul(e.UnitCost))
	}
	if totalQty.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return totalCost.Div(totalQty)
}
