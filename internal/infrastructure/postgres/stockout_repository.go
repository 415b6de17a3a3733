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

var _ repository.StockOutTransactionRepository = (*StockOutTransactionRepo)(nil)

const stockOutColumns = `id, inventory_id, product_id, branch_id, reason, adjustment_type,
		quantity, unit_cost, financial_impact, total_loss_amount, reference_number,
		destination_branch_id, supplier_return_ref, notes, status, created_by, approved_by, created_at`

// StockOutTransactionRepo implementación sobre PostgreSQL (usable con pool o tx).
type StockOutTransactionRepo struct {
	q Querier
}

// NewStockOutTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockOutTransactionRepository(q Querier) *StockOutTransactionRepo {
	return &StockOutTransactionRepo{q: q}
}

// Create persiste un retiro. La constraint única de reference_number convierte
// colisiones en domain.ErrDuplicate para que el caller reintente con otra referencia.
func (r *StockOutTransactionRepo) Create(tx *entity.StockOutTransaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_out_transactions (` + stockOutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.InventoryID, tx.ProductID, tx.BranchID, tx.Reason, nullable(tx.AdjustmentType),
		tx.Quantity, tx.UnitCost, tx.FinancialImpact, tx.TotalLossAmount, tx.ReferenceNumber,
		nullable(tx.DestinationBranchID), nullable(tx.SupplierReturnRef), nullable(tx.Notes),
		tx.Status, tx.CreatedBy, tx.ApprovedBy, tx.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create stock out %s: %w", tx.ReferenceNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("create stock out: %w", err)
	}
	return nil
}

func scanStockOut(row pgx.Row) (*entity.StockOutTransaction, error) {
	var t entity.StockOutTransaction
	var adjType, destBranch, supplierRef, notes *string
	err := row.Scan(&t.ID, &t.InventoryID, &t.ProductID, &t.BranchID, &t.Reason, &adjType,
		&t.Quantity, &t.UnitCost, &t.FinancialImpact, &t.TotalLossAmount, &t.ReferenceNumber,
		&destBranch, &supplierRef, &notes, &t.Status, &t.CreatedBy, &t.ApprovedBy, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	t.AdjustmentType = deref(adjType)
	t.DestinationBranchID = deref(destBranch)
	t.SupplierReturnRef = deref(supplierRef)
	t.Notes = deref(notes)
	return &t, nil
}

// GetByID obtiene un retiro por id.
func (r *StockOutTransactionRepo) GetByID(id string) (*entity.StockOutTransaction, error) {
	query := `SELECT ` + stockOutColumns + ` FROM stock_out_transactions WHERE id = $1`
	t, err := scanStockOut(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		return nil, fmt.Errorf("get stock out: %w", err)
	}
	return t, nil
}

// GetByReference obtiene un retiro por número de referencia.
func (r *StockOutTransactionRepo) GetByReference(referenceNumber string) (*entity.StockOutTransaction, error) {
	query := `SELECT ` + stockOutColumns + ` FROM stock_out_transactions WHERE reference_number = $1`
	t, err := scanStockOut(r.q.QueryRow(context.Background(), query, referenceNumber))
	if err != nil {
		return nil, fmt.Errorf("get stock out by reference: %w", err)
	}
	return t, nil
}

// ListByBranch lista retiros de una sucursal, más recientes primero.
func (r *StockOutTransactionRepo) ListByBranch(branchID string, limit, offset int) ([]*entity.StockOutTransaction, error) {
	query := `SELECT ` + stockOutColumns + ` FROM stock_out_transactions
		WHERE branch_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock outs: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockOutTransaction
	for rows.Next() {
		t, err := scanStockOut(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock out: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
