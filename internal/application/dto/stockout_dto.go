package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProcessStockOutRequest body para POST /api/stock-outs.
type ProcessStockOutRequest struct {
	InventoryID         string          `json:"inventory_id"`
	ProductID           string          `json:"product_id"`
	BranchID            string          `json:"branch_id"`
	StockOutReason      string          `json:"stock_out_reason"`
	Quantity            decimal.Decimal `json:"quantity"`
	Notes               string          `json:"notes,omitempty"`
	DestinationBranchID string          `json:"destination_branch_id,omitempty"`
	SupplierReturnRef   string          `json:"supplier_return_reference,omitempty"`
	AdjustmentType      string          `json:"adjustment_type,omitempty"`
	ActorID             string          `json:"actor_id,omitempty"`
}

// ProcessStockOutResponse resumen del retiro para el caller.
// GLPostingError viene poblado en el caso de éxito parcial documentado
// (stock retirado, contabilidad sin postear).
type ProcessStockOutResponse struct {
	StockOutTransactionID string          `json:"stock_out_transaction_id"`
	ReferenceNumber       string          `json:"reference_number"`
	InventoryMovementID   string          `json:"inventory_movement_id"`
	DestinationMovementID string          `json:"destination_movement_id,omitempty"`
	GLTransactionID       string          `json:"gl_transaction_id,omitempty"`
	FinancialImpact       string          `json:"financial_impact"`
	LossAmount            decimal.Decimal `json:"loss_amount"`
	UnitCost              decimal.Decimal `json:"unit_cost"`
	GLPostingError        string          `json:"gl_posting_error,omitempty"`
}

// StockOutTransactionDTO representación de lectura de un retiro.
type StockOutTransactionDTO struct {
	ID                  string          `json:"id"`
	InventoryID         string          `json:"inventory_id"`
	ProductID           string          `json:"product_id"`
	BranchID            string          `json:"branch_id"`
	Reason              string          `json:"reason"`
	AdjustmentType      string          `json:"adjustment_type,omitempty"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitCost            decimal.Decimal `json:"unit_cost"`
	FinancialImpact     string          `json:"financial_impact"`
	TotalLossAmount     decimal.Decimal `json:"total_loss_amount"`
	ReferenceNumber     string          `json:"reference_number"`
	DestinationBranchID string          `json:"destination_branch_id,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	Status              string          `json:"status"`
	CreatedBy           string          `json:"created_by"`
	CreatedAt           time.Time       `json:"created_at"`
}

// GLTransactionDTO representación de lectura de un asiento contable con sus líneas.
type GLTransactionDTO struct {
	ID                string          `json:"id"`
	TransactionNumber string          `json:"transaction_number"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	Type              string          `json:"type"`
	ReferenceNumber   string          `json:"reference_number"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	PostedBy          string          `json:"posted_by"`
	Status            string          `json:"status"`
	Items             []GLItemDTO     `json:"items"`
}

// GLItemDTO línea débito/crédito de un asiento.
type GLItemDTO struct {
	AccountID    string          `json:"account_id"`
	DebitAmount  decimal.Decimal `json:"debit_amount"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
	Memo         string          `json:"memo,omitempty"`
}

// InventoryMovementDTO representación de lectura de un movimiento.
type InventoryMovementDTO struct {
	ID              string          `json:"id"`
	InventoryID     string          `json:"inventory_id"`
	ProductID       string          `json:"product_id"`
	BranchID        string          `json:"branch_id"`
	MovementType    string          `json:"movement_type"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	ReferenceNumber string          `json:"reference_number"`
	ReferenceID     string          `json:"reference_id"`
	MovementDate    time.Time       `json:"movement_date"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       string          `json:"created_by"`
}
