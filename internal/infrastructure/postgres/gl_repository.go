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

var _ repository.GLTransactionRepository = (*GLTransactionRepo)(nil)

const glColumns = `id, transaction_number, date, description, type, reference_number,
		total_amount, posted_by, status, created_at`

// GLTransactionRepo persistencia de asientos contables sobre PostgreSQL.
type GLTransactionRepo struct {
	q Querier
}

// NewGLTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGLTransactionRepository(q Querier) *GLTransactionRepo {
	return &GLTransactionRepo{q: q}
}

// Create inserta el asiento y sus líneas juntos. La constraint única de
// transaction_number se traduce a domain.ErrDuplicate (el caller reintenta
// con otro número).
func (r *GLTransactionRepo) Create(tx *entity.GLTransaction, items []*entity.GLTransactionItem) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO gl_transactions (` + glColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.TransactionNumber, tx.Date, tx.Description, tx.Type,
		tx.ReferenceNumber, tx.TotalAmount, tx.PostedBy, tx.Status, tx.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create gl transaction %s: %w", tx.TransactionNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("create gl transaction: %w", err)
	}
	itemQuery := `
		INSERT INTO gl_transaction_items (id, gl_transaction_id, account_id, debit_amount, credit_amount, memo)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range items {
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, tx.ID, item.AccountID, item.DebitAmount, item.CreditAmount, item.Memo)
		if err != nil {
			return fmt.Errorf("create gl item: %w", err)
		}
	}
	return nil
}

func (r *GLTransactionRepo) getBy(where string, arg any) (*entity.GLTransaction, []*entity.GLTransactionItem, error) {
	query := `SELECT ` + glColumns + ` FROM gl_transactions WHERE ` + where
	var t entity.GLTransaction
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&t.ID, &t.TransactionNumber, &t.Date, &t.Description, &t.Type,
		&t.ReferenceNumber, &t.TotalAmount, &t.PostedBy, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get gl transaction: %w", err)
	}

	itemQuery := `
		SELECT id, gl_transaction_id, account_id, debit_amount, credit_amount, memo
		FROM gl_transaction_items WHERE gl_transaction_id = $1`
	rows, err := r.q.Query(context.Background(), itemQuery, t.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("get gl items: %w", err)
	}
	defer rows.Close()
	var items []*entity.GLTransactionItem
	for rows.Next() {
		var it entity.GLTransactionItem
		if err := rows.Scan(&it.ID, &it.GLTransactionID, &it.AccountID,
			&it.DebitAmount, &it.CreditAmount, &it.Memo); err != nil {
			return nil, nil, fmt.Errorf("scan gl item: %w", err)
		}
		items = append(items, &it)
	}
	return &t, items, rows.Err()
}

// GetByID obtiene un asiento con sus líneas.
func (r *GLTransactionRepo) GetByID(id string) (*entity.GLTransaction, []*entity.GLTransactionItem, error) {
	return r.getBy("id = $1", id)
}

// GetByReference obtiene el asiento ligado a una referencia de retiro.
func (r *GLTransactionRepo) GetByReference(referenceNumber string) (*entity.GLTransaction, []*entity.GLTransactionItem, error) {
	return r.getBy("reference_number = $1", referenceNumber)
}
