package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"mally-backend/internal/ledger"
	"mally-backend/internal/models"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestClosingBalance(t *testing.T) {
	cases := []struct {
		name    string
		opening string
		opType  models.BalanceType
		entries []models.VoucherEntry
		want    string
	}{
		{
			name:    "no entries keeps the opening balance",
			opening: "250.00",
			opType:  models.BalanceTypeDr,
			want:    "250.00",
		},
		{
			name:    "credit opening is negative",
			opening: "250.00",
			opType:  models.BalanceTypeCr,
			want:    "-250.00",
		},
		{
			name:    "debit entry raises a debit balance",
			opening: "1000",
			opType:  models.BalanceTypeDr,
			entries: []models.VoucherEntry{
				{Amount: d("500"), Type: models.BalanceTypeDr},
			},
			want: "1500",
		},
		{
			name:    "credits pull the balance down past zero",
			opening: "100",
			opType:  models.BalanceTypeDr,
			entries: []models.VoucherEntry{
				{Amount: d("60"), Type: models.BalanceTypeCr},
				{Amount: d("60"), Type: models.BalanceTypeCr},
			},
			want: "-20",
		},
		{
			name:    "mixed entries net out",
			opening: "0",
			opType:  models.BalanceTypeDr,
			entries: []models.VoucherEntry{
				{Amount: d("300"), Type: models.BalanceTypeDr},
				{Amount: d("120.50"), Type: models.BalanceTypeCr},
				{Amount: d("19.50"), Type: models.BalanceTypeCr},
			},
			want: "160",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := models.Ledger{
				OpeningBalance:     d(tc.opening),
				OpeningBalanceType: tc.opType,
			}
			got := ledger.ClosingBalance(l, tc.entries)
			if !got.Equal(d(tc.want)) {
				t.Fatalf("ClosingBalance = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestClosingBalanceOrderIndependent(t *testing.T) {
	l := models.Ledger{OpeningBalance: d("10"), OpeningBalanceType: models.BalanceTypeDr}
	entries := []models.VoucherEntry{
		{Amount: d("40"), Type: models.BalanceTypeDr},
		{Amount: d("15"), Type: models.BalanceTypeCr},
		{Amount: d("5"), Type: models.BalanceTypeDr},
	}
	reversed := []models.VoucherEntry{entries[2], entries[1], entries[0]}

	a := ledger.ClosingBalance(l, entries)
	b := ledger.ClosingBalance(l, reversed)
	if !a.Equal(b) {
		t.Fatalf("balance depends on entry order: %s vs %s", a, b)
	}
	if !a.Equal(d("40")) {
		t.Fatalf("balance = %s, want 40", a)
	}
}
