package accounting

import "github.com/shopspring/decimal"

// JournalLine es una línea débito/crédito candidata a asiento.
// Exactamente uno de Debit/Credit debe ser distinto de cero.
type JournalLine struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Memo      string
}

// Balanced verifica la partida doble: sum(débitos) == sum(créditos) y cada
// línea con exactamente un lado distinto de cero.
func Balanced(lines []JournalLine) bool {
	if len(lines) == 0 {
		return false
	}
	debits := decimal.Zero
	credits := decimal.Zero
	for _, l := range lines {
		if l.Debit.IsZero() == l.Credit.IsZero() {
			return false
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return false
		}
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits.Equal(credits)
}

// Total devuelve el total del asiento (suma de débitos).
func Total(lines []JournalLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Debit)
	}
	return total
}
