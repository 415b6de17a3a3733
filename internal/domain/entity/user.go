package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
)

// User representa un usuario del sistema (actor de los retiros y asientos).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, bodeguero
	Status       string // active, inactive, suspended
	BranchID     string // sucursal por defecto (opcional)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
