package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
	Create(product *entity.Product) error
}
