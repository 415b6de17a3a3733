package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipo y estado fijos del asiento generado por el motor de retiros.
const (
	GLTypeAdjustment = "adjustment"
	GLStatusPosted   = "posted"
)

// GLTransaction es el asiento contable de partida doble creado cuando la
// categoría de impacto lo exige. Se crea una vez, queda posted e inmutable.
type GLTransaction struct {
	ID                string
	TransactionNumber string // GL-YYYYMMDD-RRRR, único
	Date              time.Time
	Description       string
	Type              string // adjustment
	ReferenceNumber   string // vincula con la StockOutTransaction
	TotalAmount       decimal.Decimal
	PostedBy          string
	Status            string // posted
	CreatedAt         time.Time
}

// GLTransactionItem es una línea débito/crédito del asiento.
// Exactamente uno de DebitAmount/CreditAmount es distinto de cero.
type GLTransactionItem struct {
	ID              string
	GLTransactionID string
	AccountID       string
	DebitAmount     decimal.Decimal
	CreditAmount    decimal.Decimal
	Memo            string
}
