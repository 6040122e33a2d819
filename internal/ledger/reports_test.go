package ledger_test

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"

	"mally-backend/internal/ledger"
	"mally-backend/internal/models"
)

func TestTrialBalanceBalances(t *testing.T) {
	b := seedBooks(t)
	ctx := context.Background()

	// Sales receipt and a rent payment on top of the opening balances
	for _, v := range []ledger.VoucherDraft{
		{
			CompanyID: 1, Type: models.VoucherTypeReceipt,
			Entries: []ledger.DraftEntry{
				{LedgerID: b.cash, Amount: d("500"), Type: models.BalanceTypeDr},
				{LedgerID: b.sales, Amount: d("500"), Type: models.BalanceTypeCr},
			},
		},
		{
			CompanyID: 1, Type: models.VoucherTypePayment,
			Entries: []ledger.DraftEntry{
				{LedgerID: b.rent, Amount: d("200"), Type: models.BalanceTypeDr},
				{LedgerID: b.cash, Amount: d("200"), Type: models.BalanceTypeCr},
			},
		},
	} {
		if _, err := b.svc.CommitVoucher(ctx, v); err != nil {
			t.Fatalf("CommitVoucher: %v", err)
		}
	}

	tb, err := b.svc.TrialBalance(ctx, 1)
	if err != nil {
		t.Fatalf("TrialBalance: %v", err)
	}

	if !tb.TotalDr.Equal(tb.TotalCr) {
		t.Fatalf("trial balance out of balance: Dr %s, Cr %s", tb.TotalDr, tb.TotalCr)
	}
	if !tb.TotalDr.Equal(d("1500")) {
		t.Errorf("TotalDr = %s, want 1500", tb.TotalDr)
	}

	// Cash 1300 Dr, Rent 200 Dr, Capital 1000 Cr, Sales 500 Cr
	byName := make(map[string]ledger.TrialBalanceRow, len(tb.Rows))
	for _, row := range tb.Rows {
		byName[row.LedgerName] = row
	}
	if row := byName["Cash"]; !row.Debit.Equal(d("1300")) || !row.Credit.IsZero() {
		t.Errorf("Cash row = Dr %s / Cr %s", row.Debit, row.Credit)
	}
	if row := byName["Capital"]; !row.Credit.Equal(d("1000")) || !row.Debit.IsZero() {
		t.Errorf("Capital row = Dr %s / Cr %s", row.Debit, row.Credit)
	}
	if row := byName["Sales"]; !row.Credit.Equal(d("500")) {
		t.Errorf("Sales row credit = %s, want 500", row.Credit)
	}
	if row := byName["Rent"]; !row.Debit.Equal(d("200")) {
		t.Errorf("Rent row debit = %s, want 200", row.Debit)
	}

	if !sort.SliceIsSorted(tb.Rows, func(i, j int) bool { return tb.Rows[i].LedgerName < tb.Rows[j].LedgerName }) {
		t.Error("rows are not sorted by ledger name")
	}
}

func TestTrialBalanceSuppressesZeroBalances(t *testing.T) {
	b := seedBooks(t)

	tb, err := b.svc.TrialBalance(context.Background(), 1)
	if err != nil {
		t.Fatalf("TrialBalance: %v", err)
	}
	// Sales and Rent open at zero with no activity
	for _, row := range tb.Rows {
		if row.LedgerName == "Sales" || row.LedgerName == "Rent" {
			t.Errorf("zero-balance ledger %q rendered", row.LedgerName)
		}
	}
	if len(tb.Rows) != 2 {
		t.Errorf("rows = %d, want 2 (Cash and Capital)", len(tb.Rows))
	}
}

func TestTrialBalanceIdempotent(t *testing.T) {
	b := seedBooks(t)
	ctx := context.Background()

	first, err := b.svc.TrialBalance(ctx, 1)
	if err != nil {
		t.Fatalf("TrialBalance: %v", err)
	}
	second, err := b.svc.TrialBalance(ctx, 1)
	if err != nil {
		t.Fatalf("TrialBalance: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("rerunning the report over unchanged books changed the result")
	}
}

func TestTrialBalanceOrphanLedger(t *testing.T) {
	cases := []struct {
		name    string
		opening string
	}{
		{"with balance", "10"},
		// a zero balance must not let the orphan slip past suppression
		{"zero balance", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := seedBooks(t)
			b.store.AddLedger(models.Ledger{
				CompanyID: 1, GroupID: 999, Name: "Orphan",
				OpeningBalance: d(tc.opening), OpeningBalanceType: models.BalanceTypeDr,
			})

			_, err := b.svc.TrialBalance(context.Background(), 1)
			var integrity *ledger.IntegrityError
			if !errors.As(err, &integrity) {
				t.Fatalf("want IntegrityError, got %v", err)
			}
			if integrity.Kind != "orphan_ledger" {
				t.Errorf("Kind = %q, want orphan_ledger", integrity.Kind)
			}
		})
	}
}

func TestTrialBalanceRequiresCompany(t *testing.T) {
	b := seedBooks(t)
	if _, err := b.svc.TrialBalance(context.Background(), 0); !errors.Is(err, ledger.ErrNoCompany) {
		t.Fatalf("err = %v, want ErrNoCompany", err)
	}
}

func TestBalanceSheetWithProfit(t *testing.T) {
	b := seedBooks(t)
	ctx := context.Background()

	// 500 of sales into cash: assets go up, income becomes retained profit
	if _, err := b.svc.CommitVoucher(ctx, ledger.VoucherDraft{
		CompanyID: 1, Type: models.VoucherTypeReceipt,
		Entries: []ledger.DraftEntry{
			{LedgerID: b.cash, Amount: d("500"), Type: models.BalanceTypeDr},
			{LedgerID: b.sales, Amount: d("500"), Type: models.BalanceTypeCr},
		},
	}); err != nil {
		t.Fatalf("CommitVoucher: %v", err)
	}

	bs, err := b.svc.BalanceSheet(ctx, 1)
	if err != nil {
		t.Fatalf("BalanceSheet: %v", err)
	}

	if !bs.NetProfit.Equal(d("500")) {
		t.Errorf("NetProfit = %s, want 500", bs.NetProfit)
	}
	if !bs.TotalAssets.Equal(d("1500")) {
		t.Errorf("TotalAssets = %s, want 1500", bs.TotalAssets)
	}
	if !bs.TotalAssets.Equal(bs.TotalLiabilities) {
		t.Fatalf("sheet out of balance: assets %s, liabilities %s", bs.TotalAssets, bs.TotalLiabilities)
	}

	last := bs.Liabilities[len(bs.Liabilities)-1]
	if last.Name != "Profit & Loss A/c" {
		t.Fatalf("last liability line = %q, want the P&L line", last.Name)
	}
	if !last.Amount.Equal(d("500")) {
		t.Errorf("P&L line = %s, want 500", last.Amount)
	}
}

func TestBalanceSheetWithLoss(t *testing.T) {
	b := seedBooks(t)
	ctx := context.Background()

	// 200 of rent paid from cash: pure expense, so the period is a loss
	if _, err := b.svc.CommitVoucher(ctx, ledger.VoucherDraft{
		CompanyID: 1, Type: models.VoucherTypePayment,
		Entries: []ledger.DraftEntry{
			{LedgerID: b.rent, Amount: d("200"), Type: models.BalanceTypeDr},
			{LedgerID: b.cash, Amount: d("200"), Type: models.BalanceTypeCr},
		},
	}); err != nil {
		t.Fatalf("CommitVoucher: %v", err)
	}

	bs, err := b.svc.BalanceSheet(ctx, 1)
	if err != nil {
		t.Fatalf("BalanceSheet: %v", err)
	}

	if !bs.NetProfit.Equal(d("-200")) {
		t.Errorf("NetProfit = %s, want -200", bs.NetProfit)
	}

	// the loss stays on the Liabilities side as a negative line,
	// shrinking the total so both sides still agree
	last := bs.Liabilities[len(bs.Liabilities)-1]
	if last.Name != "Profit & Loss A/c" {
		t.Fatalf("last liability line = %q, want the P&L line", last.Name)
	}
	if !last.Amount.Equal(d("-200")) {
		t.Errorf("P&L line = %s, want -200", last.Amount)
	}
	if !bs.TotalAssets.Equal(d("800")) {
		t.Errorf("TotalAssets = %s, want 800", bs.TotalAssets)
	}
	if !bs.TotalAssets.Equal(bs.TotalLiabilities) {
		t.Fatalf("sheet out of balance: assets %s, liabilities %s", bs.TotalAssets, bs.TotalLiabilities)
	}
}

func TestBalanceSheetRollsUpSubGroups(t *testing.T) {
	b := seedBooks(t)
	ctx := context.Background()

	// Bank Accounts -> Current Account -> HDFC; only the root may appear
	bank := b.store.AddGroup(models.Group{CompanyID: 1, Name: "Bank Accounts", PrimaryGroup: models.PrimaryGroupAssets})
	current := b.store.AddGroup(models.Group{CompanyID: 1, Name: "Current Account", PrimaryGroup: models.PrimaryGroupAssets, ParentID: &bank})
	b.store.AddLedger(models.Ledger{
		CompanyID: 1, GroupID: current, Name: "HDFC",
		OpeningBalance: d("2000"), OpeningBalanceType: models.BalanceTypeDr,
	})
	// balance the new asset so the sheet still closes
	b.store.AddLedger(models.Ledger{
		CompanyID: 1, GroupID: b.capitalAcc, Name: "Loan",
		OpeningBalance: d("2000"), OpeningBalanceType: models.BalanceTypeCr,
	})

	bs, err := b.svc.BalanceSheet(ctx, 1)
	if err != nil {
		t.Fatalf("BalanceSheet: %v", err)
	}

	var bankLine *ledger.ReportLine
	for i := range bs.Assets {
		if bs.Assets[i].Name == "Current Account" {
			t.Error("sub-group rendered as its own line")
		}
		if bs.Assets[i].Name == "Bank Accounts" {
			bankLine = &bs.Assets[i]
		}
	}
	if bankLine == nil {
		t.Fatal("Bank Accounts line missing")
	}
	if !bankLine.Amount.Equal(d("2000")) {
		t.Errorf("Bank Accounts = %s, want 2000", bankLine.Amount)
	}
	if !bs.TotalAssets.Equal(bs.TotalLiabilities) {
		t.Fatalf("sheet out of balance: assets %s, liabilities %s", bs.TotalAssets, bs.TotalLiabilities)
	}
}

func TestProfitLoss(t *testing.T) {
	b := seedBooks(t)
	ctx := context.Background()

	for _, v := range []ledger.VoucherDraft{
		{
			CompanyID: 1, Type: models.VoucherTypeReceipt,
			Entries: []ledger.DraftEntry{
				{LedgerID: b.cash, Amount: d("900"), Type: models.BalanceTypeDr},
				{LedgerID: b.sales, Amount: d("900"), Type: models.BalanceTypeCr},
			},
		},
		{
			CompanyID: 1, Type: models.VoucherTypePayment,
			Entries: []ledger.DraftEntry{
				{LedgerID: b.rent, Amount: d("400"), Type: models.BalanceTypeDr},
				{LedgerID: b.cash, Amount: d("400"), Type: models.BalanceTypeCr},
			},
		},
	} {
		if _, err := b.svc.CommitVoucher(ctx, v); err != nil {
			t.Fatalf("CommitVoucher: %v", err)
		}
	}

	pl, err := b.svc.ProfitLoss(ctx, 1)
	if err != nil {
		t.Fatalf("ProfitLoss: %v", err)
	}
	if !pl.TotalIncome.Equal(d("900")) {
		t.Errorf("TotalIncome = %s, want 900", pl.TotalIncome)
	}
	if !pl.TotalExpenses.Equal(d("400")) {
		t.Errorf("TotalExpenses = %s, want 400", pl.TotalExpenses)
	}
	if !pl.NetProfit.Equal(d("500")) {
		t.Errorf("NetProfit = %s, want 500", pl.NetProfit)
	}
	if len(pl.Income) != 1 || pl.Income[0].Name != "Sales Accounts" {
		t.Errorf("income lines = %+v", pl.Income)
	}
	if len(pl.Expenses) != 1 || pl.Expenses[0].Name != "Direct Expenses" {
		t.Errorf("expense lines = %+v", pl.Expenses)
	}
}

func TestGroupBalancesScopedToCompany(t *testing.T) {
	b := seedBooks(t)
	ctx := context.Background()

	otherGroup := b.store.AddGroup(models.Group{CompanyID: 2, Name: "Other Assets", PrimaryGroup: models.PrimaryGroupAssets})
	b.store.AddLedger(models.Ledger{
		CompanyID: 2, GroupID: otherGroup, Name: "Other Cash",
		OpeningBalance: d("99"), OpeningBalanceType: models.BalanceTypeDr,
	})

	totals, err := b.svc.GroupBalances(ctx, 1)
	if err != nil {
		t.Fatalf("GroupBalances: %v", err)
	}
	if _, ok := totals[otherGroup]; ok {
		t.Error("another company's group leaked into the rollup")
	}
	if !totals[b.currentAssets].Equal(d("1000")) {
		t.Errorf("Current Assets = %s, want 1000", totals[b.currentAssets])
	}
}
