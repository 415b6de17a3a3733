package postgres

import (
	"context"
	"fmt"
	"sync/atomic"

	appacc "github.com/jhoicas/stock-ledger-api/internal/application/accounting"
	appstockout "github.com/jhoicas/stock-ledger-api/internal/application/stockout"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// Ensure TxRunner implements stockout.TxRunner and accounting.LedgerTxRunner.
var _ appstockout.TxRunner = (*TxRunner)(nil)
var _ appacc.LedgerTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool        *pgxpool.Pool
	log         *logger.Logger
	procMissing *atomic.Bool
}

// NewTxRunner construye el runner con el pool y el flag de capacidad de decremento.
func NewTxRunner(pool *pgxpool.Pool, log *logger.Logger, procMissing *atomic.Bool) *TxRunner {
	return &TxRunner{pool: pool, log: log, procMissing: procMissing}
}

// Run inicia una transacción, ejecuta fn con repos y decrementer atados a la tx
// y hace Commit o Rollback. Los efectos de inventario del retiro van juntos aquí.
func (r *TxRunner) Run(ctx context.Context, fn func(
	soRepo repository.StockOutTransactionRepository,
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
	decrementer appstockout.InventoryDecrementer,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	soRepo := NewStockOutTransactionRepository(tx)
	invRepo := NewInventoryRepository(tx)
	movRepo := NewInventoryMovementRepository(tx)
	decrementer := NewInventoryDecrementer(tx, r.log, r.procMissing)

	if err := fn(soRepo, invRepo, movRepo, decrementer); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunLedger inicia la transacción del asiento contable (posterior al commit de
// inventario; un fallo aquí es el estado parcial documentado).
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	glRepo repository.GLTransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	glRepo := NewGLTransactionRepository(tx)

	if err := fn(glRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit ledger transaction: %w", err)
	}
	return nil
}
