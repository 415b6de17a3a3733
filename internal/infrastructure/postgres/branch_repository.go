package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.BranchRepository = (*BranchRepo)(nil)

// BranchRepo implementación del puerto BranchRepository sobre PostgreSQL.
type BranchRepo struct {
	q Querier
}

// NewBranchRepository construye el adaptador de persistencia para sucursales.
func NewBranchRepository(q Querier) *BranchRepo {
	return &BranchRepo{q: q}
}

// GetByID obtiene una sucursal por ID.
func (r *BranchRepo) GetByID(id string) (*entity.Branch, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM branches WHERE id = $1`
	var b entity.Branch
	var address *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &address, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}
	b.Address = deref(address)
	return &b, nil
}

// Create persiste una sucursal nueva.
func (r *BranchRepo) Create(branch *entity.Branch) error {
	if branch.ID == "" {
		branch.ID = uuid.New().String()
	}
	query := `
		INSERT INTO branches (id, name, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		branch.ID, branch.Name, nullable(branch.Address), branch.CreatedAt, branch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert branch: %w", err)
	}
	return nil
}

// List lista sucursales ordenadas por nombre.
func (r *BranchRepo) List(limit, offset int) ([]*entity.Branch, error) {
	query := `SELECT id, name, address, created_at, updated_at FROM branches
		ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Branch
	for rows.Next() {
		var b entity.Branch
		var address *string
		if err := rows.Scan(&b.ID, &b.Name, &address, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan branch: %w", err)
		}
		b.Address = deref(address)
		list = append(list, &b)
	}
	return list, rows.Err()
}
