package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, sku, name, description, price, cost, unit_measure, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	var description, unitMeasure *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.SKU, &p.Name, &description, &p.Price, &p.Cost, &unitMeasure,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.Description = deref(description)
	p.UnitMeasure = deref(unitMeasure)
	return &p, nil
}

// Create persiste un producto nuevo. SKU duplicado -> domain.ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (id, sku, name, description, price, cost, unit_measure, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKU, product.Name, nullable(product.Description),
		product.Price, product.Cost, nullable(product.UnitMeasure),
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create product %s: %w", product.SKU, domain.ErrDuplicate)
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}
