package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// BranchRepository define el puerto de persistencia para Branch (DIP).
type BranchRepository interface {
	GetByID(id string) (*entity.Branch, error)
	Create(branch *entity.Branch) error
	List(limit, offset int) ([]*entity.Branch, error)
}
