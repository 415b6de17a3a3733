package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrNotAuthenticated   = errors.New("no se pudo resolver el usuario actor")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	// ErrAccountNotFound: falta una cuenta contable requerida para el asiento.
	// Puede surgir después de haber confirmado inventario (éxito parcial).
	ErrAccountNotFound = errors.New("cuenta contable no encontrada")
)
