package accounting

import (
	"fmt"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/accounting"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/stockout"
	"github.com/shopspring/decimal"
)

// JournalInput describe el asiento a construir para un retiro de inventario.
type JournalInput struct {
	Reason                string
	FinancialImpact       string // loss | neutral
	Amount                decimal.Decimal
	BranchName            string // sucursal origen (califica la cuenta de inventario)
	DestinationBranchName string // solo traslados
	ProductName           string // para memos auditables
}

// JournalBuilder arma el par (o más) de líneas débito/crédito balanceadas para
// la categoría de impacto, o un no-op deliberado cuando no corresponde asiento.
type JournalBuilder struct {
	resolver *AccountResolver
}

// NewJournalBuilder construye el builder con su resolver de cuentas.
func NewJournalBuilder(resolver *AccountResolver) *JournalBuilder {
	return &JournalBuilder{resolver: resolver}
}

// RequiresEntry indica si la combinación razón/impacto exige asiento contable:
// pérdidas, devoluciones a proveedor y traslados con destino.
func RequiresEntry(reason, impact string, hasDestination bool) bool {
	if impact == entity.ImpactLoss {
		return true
	}
	if reason == entity.ReasonReturnedToSupplier {
		return true
	}
	return reason == entity.ReasonTransferred && hasDestination
}

// Build devuelve las líneas balanceadas del asiento (monto = cantidad * costo).
// Una cuenta requerida ausente es hard-stop: nunca se postea un asiento
// incompleto o desbalanceado. Devuelve (nil, nil) cuando no corresponde asiento.
//
// Reglas:
//   - pérdida: débito cuenta de gasto de la razón, crédito inventario de la sucursal.
//   - devolución a proveedor: débito "Accounts Payable - Supplier Returns",
//     crédito inventario de la sucursal.
//   - traslado con destino: débito inventario destino, crédito inventario origen.
func (b *JournalBuilder) Build(in JournalInput) ([]accounting.JournalLine, error) {
	hasDest := in.DestinationBranchName != ""
	if !RequiresEntry(in.Reason, in.FinancialImpact, hasDest) {
		return nil, nil
	}

	label := stockout.ReasonLabel(in.Reason)
	memo := fmt.Sprintf("%s - %s", in.ProductName, label)

	switch {
	case in.Reason == entity.ReasonTransferred:
		destAcc, err := b.resolver.ResolveInventoryAccount(in.DestinationBranchName)
		if err != nil {
			return nil, err
		}
		if destAcc == nil {
			return nil, fmt.Errorf("inventario destino %q: %w", in.DestinationBranchName, domain.ErrAccountNotFound)
		}
		srcAcc, err := b.resolver.ResolveInventoryAccount(in.BranchName)
		if err != nil {
			return nil, err
		}
		if srcAcc == nil {
			return nil, fmt.Errorf("inventario origen %q: %w", in.BranchName, domain.ErrAccountNotFound)
		}
		return []accounting.JournalLine{
			{AccountID: destAcc.ID, Debit: in.Amount, Memo: memo},
			{AccountID: srcAcc.ID, Credit: in.Amount, Memo: memo},
		}, nil

	case in.Reason == entity.ReasonReturnedToSupplier:
		payable, err := b.resolver.ResolveSupplierReturnsAccount()
		if err != nil {
			return nil, err
		}
		if payable == nil {
			return nil, fmt.Errorf("por pagar devoluciones a proveedor: %w", domain.ErrAccountNotFound)
		}
		invAcc, err := b.resolver.ResolveInventoryAccount(in.BranchName)
		if err != nil {
			return nil, err
		}
		if invAcc == nil {
			return nil, fmt.Errorf("inventario %q: %w", in.BranchName, domain.ErrAccountNotFound)
		}
		return []accounting.JournalLine{
			{AccountID: payable.ID, Debit: in.Amount, Memo: memo},
			{AccountID: invAcc.ID, Credit: in.Amount, Memo: memo},
		}, nil

	default: // cualquier razón clasificada como pérdida
		lossAcc, err := b.resolver.ResolveLossAccount(in.Reason)
		if err != nil {
			return nil, err
		}
		if lossAcc == nil {
			return nil, fmt.Errorf("gasto de pérdida para %q: %w", in.Reason, domain.ErrAccountNotFound)
		}
		invAcc, err := b.resolver.ResolveInventoryAccount(in.BranchName)
		if err != nil {
			return nil, err
		}
		if invAcc == nil {
			return nil, fmt.Errorf("inventario %q: %w", in.BranchName, domain.ErrAccountNotFound)
		}
		return []accounting.JournalLine{
			{AccountID: lossAcc.ID, Debit: in.Amount, Memo: memo},
			{AccountID: invAcc.ID, Credit: in.Amount, Memo: memo},
		}, nil
	}
}
