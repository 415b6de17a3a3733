package stockout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appacc "github.com/jhoicas/stock-ledger-api/internal/application/accounting"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/internal/domain/stockout"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
	"github.com/shopspring/decimal"
)

// referenceAttempts: reintentos de la transacción ante colisión de referencia.
const referenceAttempts = 3

// ProcessStockOutInput entrada para procesar un retiro de inventario.
type ProcessStockOutInput struct {
	InventoryID         string
	ProductID           string
	BranchID            string
	Reason              string
	AdjustmentType      string // subtipo de adjustment_correction (opcional)
	Quantity            decimal.Decimal
	Notes               string
	DestinationBranchID string // obligatorio si y solo si reason = transferred
	SupplierReturnRef   string // opcional, devoluciones a proveedor
	ActorID             string // opcional; si falta se resuelve vía ActorResolver
}

// ProcessStockOutResult resumen del retiro procesado.
type ProcessStockOutResult struct {
	StockOutTransactionID string
	ReferenceNumber       string
	InventoryMovementID   string
	DestinationMovementID string // solo traslados
	GLTransactionID       string // vacío si no corresponde asiento o si falló el posteo
	FinancialImpact       string
	LossAmount            decimal.Decimal
	UnitCost              decimal.Decimal
}

// LedgerPostingError señala éxito parcial: el inventario quedó confirmado pero
// el asiento contable no se pudo postear (p. ej. cuenta ausente). El caller
// debe advertir "stock retirado, contabilidad sin postear" y remediar manualmente.
type LedgerPostingError struct {
	Result *ProcessStockOutResult
	Err    error
}

func (e *LedgerPostingError) Error() string {
	return fmt.Sprintf("retiro %s confirmado pero el asiento no se posteó: %v", e.Result.ReferenceNumber, e.Err)
}

func (e *LedgerPostingError) Unwrap() error { return e.Err }

// ProcessStockOutUseCase es el orquestador del motor de retiros: valida,
// resuelve costo, clasifica impacto, acuña referencia, confirma los efectos de
// inventario en una transacción y postea el asiento contable cuando corresponde.
type ProcessStockOutUseCase struct {
	txRunner    TxRunner
	actors      ActorResolver
	costs       *CostResolver
	poster      *appacc.JournalPoster
	refs        *stockout.ReferenceGenerator
	invRepo     repository.InventoryRepository
	productRepo repository.ProductRepository
	branchRepo  repository.BranchRepository
	log         *logger.Logger
}

// NewProcessStockOutUseCase construye el orquestador.
func NewProcessStockOutUseCase(
	txRunner TxRunner,
	actors ActorResolver,
	costs *CostResolver,
	poster *appacc.JournalPoster,
	refs *stockout.ReferenceGenerator,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	log *logger.Logger,
) *ProcessStockOutUseCase {
	return &ProcessStockOutUseCase{
		txRunner:    txRunner,
		actors:      actors,
		costs:       costs,
		poster:      poster,
		refs:        refs,
		invRepo:     invRepo,
		productRepo: productRepo,
		branchRepo:  branchRepo,
		log:         log,
	}
}

// Process ejecuta el retiro completo. Los errores de validación, stock
// insuficiente y autenticación se rechazan antes de cualquier escritura; un
// fallo del asiento después del commit de inventario se reporta como
// *LedgerPostingError junto con el resultado parcial.
func (uc *ProcessStockOutUseCase) Process(ctx context.Context, input ProcessStockOutInput) (*ProcessStockOutResult, error) {
	actorID, err := uc.actors.Resolve(ctx, input.ActorID)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}

	if err := validateInput(input); err != nil {
		return nil, err
	}

	// Pre-flight: la fila de inventario existe, corresponde al producto/sucursal
	// y tiene disponible suficiente. Nada se ha escrito todavía.
	inv, err := uc.invRepo.GetByID(input.InventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.ProductID != input.ProductID || inv.BranchID != input.BranchID {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity.GreaterThan(inv.QuantityAvailable()) {
		return nil, domain.ErrInsufficientStock
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	branch, err := uc.branchRepo.GetByID(input.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrNotFound
	}
	var destBranch *entity.Branch
	if input.Reason == entity.ReasonTransferred {
		destBranch, err = uc.branchRepo.GetByID(input.DestinationBranchID)
		if err != nil {
			return nil, err
		}
		if destBranch == nil {
			return nil, domain.ErrNotFound
		}
	}

	// 1. costo unitario y monto candidato
	unitCost, err := uc.costs.Resolve(input.ProductID, input.BranchID)
	if err != nil {
		return nil, err
	}
	amount := input.Quantity.Mul(unitCost)

	// 2. categoría de impacto financiero
	impact, err := stockout.ClassifyImpact(input.Reason, input.AdjustmentType)
	if err != nil {
		return nil, err
	}
	lossAmount := decimal.Zero
	if impact == entity.ImpactLoss {
		lossAmount = amount
	}

	now := time.Now()
	soID := uuid.New().String()
	movementType := stockout.MovementTypeForReason(input.Reason)

	result := &ProcessStockOutResult{
		StockOutTransactionID: soID,
		FinancialImpact:       impact,
		LossAmount:            lossAmount,
		UnitCost:              unitCost,
	}

	// 3-6 (+ espejo del traslado): una sola transacción de BD. La fila origen
	// queda bloqueada por el decrementer, así que dos retiros concurrentes
	// sobre el mismo inventario se serializan en la base.
	var txErr error
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		reference := uc.refs.StockOutReference()
		result.ReferenceNumber = reference

		txErr = uc.txRunner.Run(ctx, func(
			soRepo repository.StockOutTransactionRepository,
			invRepo repository.InventoryRepository,
			movRepo repository.InventoryMovementRepository,
			decrementer InventoryDecrementer,
		) error {
			so := &entity.StockOutTransaction{
				ID:                  soID,
				InventoryID:         input.InventoryID,
				ProductID:           input.ProductID,
				BranchID:            input.BranchID,
				Reason:              input.Reason,
				AdjustmentType:      input.AdjustmentType,
				Quantity:            input.Quantity,
				UnitCost:            unitCost,
				FinancialImpact:     impact,
				TotalLossAmount:     lossAmount,
				ReferenceNumber:     reference,
				DestinationBranchID: input.DestinationBranchID,
				SupplierReturnRef:   input.SupplierReturnRef,
				Notes:               input.Notes,
				Status:              entity.StockOutStatusApproved,
				CreatedBy:           actorID,
				ApprovedBy:          actorID, // auto-aprobado: sin flujo de aprobación pendiente
				CreatedAt:           now,
			}
			if err := soRepo.Create(so); err != nil {
				return err
			}

			if _, err := decrementer.Decrement(input.InventoryID, input.Quantity); err != nil {
				return err
			}

			srcMov := &entity.InventoryMovement{
				ID:              uuid.New().String(),
				InventoryID:     input.InventoryID,
				ProductID:       input.ProductID,
				BranchID:        input.BranchID,
				MovementType:    movementType,
				Quantity:        input.Quantity.Neg(),
				UnitCost:        unitCost,
				ReferenceNumber: reference,
				ReferenceID:     soID,
				MovementDate:    now,
				Notes:           input.Notes,
				CreatedAt:       now,
				CreatedBy:       actorID,
			}
			if err := movRepo.Create(srcMov); err != nil {
				return err
			}
			result.InventoryMovementID = srcMov.ID

			if input.Reason == entity.ReasonTransferred {
				destMovID, err := uc.mirrorTransfer(invRepo, movRepo, input, unitCost, reference, soID, actorID, now)
				if err != nil {
					return err
				}
				result.DestinationMovementID = destMovID
			}
			return nil
		})
		if txErr == nil || !errors.Is(txErr, domain.ErrDuplicate) {
			break
		}
		// referencia en colisión: acuñar otra y reintentar la transacción completa
	}
	if txErr != nil {
		return nil, txErr
	}

	// 7. asiento contable, en su propia transacción. Monto cero se permite pero
	// no se postea (se registra la advertencia; regla heredada del negocio).
	if appacc.RequiresEntry(input.Reason, impact, destBranch != nil) {
		if amount.IsZero() {
			uc.log.Warn().
				Str("reference_number", result.ReferenceNumber).
				Str("reason", input.Reason).
				Msg("asiento omitido: monto cero (sin costo unitario)")
			return result, nil
		}
		destName := ""
		if destBranch != nil {
			destName = destBranch.Name
		}
		glID, err := uc.poster.Post(ctx, appacc.PostingInput{
			Journal: appacc.JournalInput{
				Reason:                input.Reason,
				FinancialImpact:       impact,
				Amount:                amount,
				BranchName:            branch.Name,
				DestinationBranchName: destName,
				ProductName:           product.Name,
			},
			ReferenceNumber: result.ReferenceNumber,
			PostedBy:        actorID,
			Date:            now,
		})
		if err != nil {
			uc.log.Error().Err(err).
				Str("reference_number", result.ReferenceNumber).
				Msg("stock retirado pero el asiento contable no se posteó")
			return result, &LedgerPostingError{Result: result, Err: err}
		}
		result.GLTransactionID = glID
	}

	uc.log.Info().
		Str("reference_number", result.ReferenceNumber).
		Str("reason", input.Reason).
		Str("impact", impact).
		Str("loss_amount", lossAmount.String()).
		Msg("retiro de inventario procesado")
	return result, nil
}

// validateInput rechaza requests malformados antes de cualquier escritura.
func validateInput(in ProcessStockOutInput) error {
	if in.InventoryID == "" || in.ProductID == "" || in.BranchID == "" {
		return domain.ErrInvalidInput
	}
	if !stockout.ValidReason(in.Reason) {
		return domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if in.Reason == entity.ReasonTransferred {
		if in.DestinationBranchID == "" || in.DestinationBranchID == in.BranchID {
			return domain.ErrInvalidInput
		}
	} else if in.DestinationBranchID != "" {
		// destino solo tiene sentido en traslados
		return domain.ErrInvalidInput
	}
	if in.Reason == entity.ReasonAdjustmentCorrection && in.AdjustmentType != "" &&
		in.AdjustmentType != entity.AdjustmentClericalError && in.AdjustmentType != entity.AdjustmentMissingStock {
		return domain.ErrInvalidInput
	}
	return nil
}

// mirrorTransfer incrementa (o crea) el inventario del destino y registra el
// movimiento transfer_in, dentro de la misma transacción del retiro.
func (uc *ProcessStockOutUseCase) mirrorTransfer(
	invRepo repository.InventoryRepository,
	movRepo repository.InventoryMovementRepository,
	input ProcessStockOutInput,
	unitCost decimal.Decimal,
	reference, soID, actorID string,
	now time.Time,
) (string, error) {
	dest, err := invRepo.GetByProductAndBranchForUpdate(input.ProductID, input.DestinationBranchID)
	if err != nil {
		return "", err
	}
	if dest == nil {
		dest = &entity.Inventory{
			ID:             uuid.New().String(),
			ProductID:      input.ProductID,
			BranchID:       input.DestinationBranchID,
			QuantityOnHand: input.Quantity,
			UpdatedAt:      now,
		}
		if err := invRepo.Create(dest); err != nil {
			return "", err
		}
	} else {
		newQty := dest.QuantityOnHand.Add(input.Quantity)
		if newQty.IsNegative() {
			newQty = decimal.Zero // piso defensivo; no debería ocurrir con cantidades validadas
		}
		if err := invRepo.UpdateQuantityOnHand(dest.ID, newQty); err != nil {
			return "", err
		}
	}

	destMov := &entity.InventoryMovement{
		ID:              uuid.New().String(),
		InventoryID:     dest.ID,
		ProductID:       input.ProductID,
		BranchID:        input.DestinationBranchID,
		MovementType:    entity.MovementTransferIn,
		Quantity:        input.Quantity,
		UnitCost:        unitCost,
		ReferenceNumber: reference,
		ReferenceID:     soID,
		MovementDate:    now,
		Notes:           input.Notes,
		CreatedAt:       now,
		CreatedBy:       actorID,
	}
	if err := movRepo.Create(destMov); err != nil {
		return "", err
	}
	return destMov.ID, nil
}
