package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario.
// Cost es el costo registrado (respaldo cuando no hay historial de entradas para promediar).
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo registrado (inicia en 0)
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
