package accounting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	domacc "github.com/jhoicas/stock-ledger-api/internal/domain/accounting"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/internal/domain/stockout"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// numberAttempts: reintentos de inserción ante colisión del número de asiento.
const numberAttempts = 3

// LedgerTxRunner ejecuta la escritura del asiento en su propia transacción,
// posterior al commit de inventario. Un fallo aquí deja el estado parcial
// documentado: stock retirado, contabilidad sin postear.
type LedgerTxRunner interface {
	RunLedger(ctx context.Context, fn func(
		glRepo repository.GLTransactionRepository,
	) error) error
}

// ReferenceMinter produce el número del asiento (GL-YYYYMMDD-RRRR).
type ReferenceMinter interface {
	GLTransactionNumber() string
}

// PostingInput describe el asiento a postear para un retiro ya confirmado.
type PostingInput struct {
	Journal         JournalInput
	ReferenceNumber string // referencia del retiro (SO-...)
	PostedBy        string
	Date            time.Time
}

// JournalPoster construye y persiste el asiento balanceado (partida doble) del
// retiro. El asiento nace posted e inmutable.
type JournalPoster struct {
	builder *JournalBuilder
	runner  LedgerTxRunner
	refs    ReferenceMinter
	log     *logger.Logger
}

// NewJournalPoster construye el poster.
func NewJournalPoster(builder *JournalBuilder, runner LedgerTxRunner, refs ReferenceMinter, log *logger.Logger) *JournalPoster {
	return &JournalPoster{builder: builder, runner: runner, refs: refs, log: log}
}

// Post arma las líneas, valida el balance y persiste GLTransaction + items.
// Devuelve el id del asiento, o "" sin error cuando no corresponde asiento
// (no-op deliberado). Una cuenta ausente propaga domain.ErrAccountNotFound.
func (p *JournalPoster) Post(ctx context.Context, in PostingInput) (string, error) {
	lines, err := p.builder.Build(in.Journal)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", nil
	}
	if !domacc.Balanced(lines) {
		// no debería ocurrir: el builder siempre emite pares débito/crédito iguales
		return "", fmt.Errorf("asiento desbalanceado para referencia %s", in.ReferenceNumber)
	}

	glID := uuid.New().String()
	total := domacc.Total(lines)
	label := stockout.ReasonLabel(in.Journal.Reason)

	// Cada intento corre en su propia transacción: una violación de unicidad
	// aborta la tx en curso, así que el reintento con otro número va por fuera.
	var lastErr error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		tx := &entity.GLTransaction{
			ID:                glID,
			TransactionNumber: p.refs.GLTransactionNumber(),
			Date:              in.Date,
			Description:       fmt.Sprintf("Stock out - %s - %s", label, in.Journal.ProductName),
			Type:              entity.GLTypeAdjustment,
			ReferenceNumber:   in.ReferenceNumber,
			TotalAmount:       total,
			PostedBy:          in.PostedBy,
			Status:            entity.GLStatusPosted,
			CreatedAt:         in.Date,
		}
		items := make([]*entity.GLTransactionItem, 0, len(lines))
		for _, l := range lines {
			items = append(items, &entity.GLTransactionItem{
				ID:              uuid.New().String(),
				GLTransactionID: glID,
				AccountID:       l.AccountID,
				DebitAmount:     l.Debit,
				CreditAmount:    l.Credit,
				Memo:            l.Memo,
			})
		}
		lastErr = p.runner.RunLedger(ctx, func(glRepo repository.GLTransactionRepository) error {
			return glRepo.Create(tx, items)
		})
		if lastErr == nil {
			break
		}
		if !errors.Is(lastErr, domain.ErrDuplicate) {
			return "", lastErr
		}
		// número en colisión: acuñar otro y reintentar
	}
	if lastErr != nil {
		return "", lastErr
	}

	p.log.Info().
		Str("gl_transaction_id", glID).
		Str("reference_number", in.ReferenceNumber).
		Str("total", total.String()).
		Msg("asiento contable posteado")
	return glID, nil
}
