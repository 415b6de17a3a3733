package entity

import "time"

// Branch representa una sucursal donde se almacena y retira inventario (multi-sucursal).
type Branch struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
