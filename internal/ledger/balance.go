package ledger

import (
	"github.com/shopspring/decimal"

	"mally-backend/internal/models"
)

// ClosingBalance computes the signed closing balance of a ledger: the signed
// opening balance plus every entry referencing the ledger. Positive means net
// debit (asset/expense-natured), negative net credit. Pure function; entry
// ordering is irrelevant.
func ClosingBalance(l models.Ledger, entries []models.VoucherEntry) decimal.Decimal {
	balance := l.OpeningBalance
	if l.OpeningBalanceType == models.BalanceTypeCr {
		balance = balance.Neg()
	}
	for _, e := range entries {
		if e.Type == models.BalanceTypeDr {
			balance = balance.Add(e.Amount)
		} else {
			balance = balance.Sub(e.Amount)
		}
	}
	return balance
}
