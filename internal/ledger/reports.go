package ledger

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"mally-backend/internal/models"
)

type TrialBalanceRow struct {
	LedgerID   uint            `json:"ledger_id"`
	LedgerName string          `json:"ledger_name"`
	GroupName  string          `json:"group_name"`
	Debit      decimal.Decimal `json:"debit"`
	Credit     decimal.Decimal `json:"credit"`
}

type TrialBalance struct {
	Rows    []TrialBalanceRow `json:"rows"`
	TotalDr decimal.Decimal   `json:"total_dr"`
	TotalCr decimal.Decimal   `json:"total_cr"`
}

// ReportLine is one labeled amount on a statement, one per root group.
type ReportLine struct {
	GroupID uint            `json:"group_id"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
}

type BalanceSheet struct {
	Assets           []ReportLine    `json:"assets"`
	Liabilities      []ReportLine    `json:"liabilities"`
	TotalAssets      decimal.Decimal `json:"total_assets"`
	TotalLiabilities decimal.Decimal `json:"total_liabilities"`
	NetProfit        decimal.Decimal `json:"net_profit"`
}

type ProfitLoss struct {
	Income        []ReportLine    `json:"income"`
	Expenses      []ReportLine    `json:"expenses"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"` // negative = loss
}

// TrialBalance lists every ledger with a nonzero closing balance, split into
// Debit and Credit columns. TotalDr == TotalCr whenever the underlying
// vouchers satisfy the double-entry law.
func (s *Service) TrialBalance(ctx context.Context, companyID uint) (TrialBalance, error) {
	books, err := s.loadBooks(ctx, companyID)
	if err != nil {
		return TrialBalance{}, err
	}

	groupNames := make(map[uint]string, len(books.groups))
	for _, g := range books.groups {
		groupNames[g.ID] = g.Name
	}

	tb := TrialBalance{
		Rows:    make([]TrialBalanceRow, 0, len(books.ledgers)),
		TotalDr: decimal.Zero,
		TotalCr: decimal.Zero,
	}
	for _, l := range books.ledgers {
		// integrity before suppression: an orphan ledger aborts even at zero balance
		groupName, ok := groupNames[l.GroupID]
		if !ok {
			return TrialBalance{}, &IntegrityError{
				Kind:     "orphan_ledger",
				LedgerID: l.ID,
				GroupID:  l.GroupID,
				Msg:      "ledger " + l.Name + " references a missing group",
			}
		}
		bal := books.ledgerBalances[l.ID]
		if bal.IsZero() {
			continue
		}
		row := TrialBalanceRow{
			LedgerID:   l.ID,
			LedgerName: l.Name,
			GroupName:  groupName,
			Debit:      decimal.Zero,
			Credit:     decimal.Zero,
		}
		if bal.IsPositive() {
			row.Debit = bal
			tb.TotalDr = tb.TotalDr.Add(bal)
		} else {
			row.Credit = bal.Abs()
			tb.TotalCr = tb.TotalCr.Add(bal.Abs())
		}
		tb.Rows = append(tb.Rows, row)
	}

	sort.Slice(tb.Rows, func(i, j int) bool { return tb.Rows[i].LedgerName < tb.Rows[j].LedgerName })
	return tb, nil
}

// BalanceSheet partitions root groups into Assets and Liabilities. Net profit
// (income minus expenses) is injected as a synthetic "Profit & Loss A/c" line
// on the Liabilities side, carrying its sign: a loss shows there as a negative
// amount and reduces the Liabilities total, keeping both sides equal.
func (s *Service) BalanceSheet(ctx context.Context, companyID uint) (BalanceSheet, error) {
	books, err := s.loadBooks(ctx, companyID)
	if err != nil {
		return BalanceSheet{}, err
	}
	totals, err := AggregateGroups(books.groups, books.ledgers, books.ledgerBalances)
	if err != nil {
		return BalanceSheet{}, err
	}

	bs := BalanceSheet{
		Assets:           []ReportLine{},
		Liabilities:      []ReportLine{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
	}
	totalIncome := decimal.Zero
	totalExpense := decimal.Zero

	for _, g := range books.groups {
		if g.ParentID != nil {
			continue // sub-groups are rolled into their root's single line
		}
		bal := totals[g.ID]
		if bal.IsZero() {
			continue
		}
		switch g.PrimaryGroup {
		case models.PrimaryGroupAssets:
			bs.Assets = append(bs.Assets, ReportLine{GroupID: g.ID, Name: g.Name, Amount: bal.Abs()})
			bs.TotalAssets = bs.TotalAssets.Add(bal.Abs())
		case models.PrimaryGroupLiabilities:
			bs.Liabilities = append(bs.Liabilities, ReportLine{GroupID: g.ID, Name: g.Name, Amount: bal.Abs()})
			bs.TotalLiabilities = bs.TotalLiabilities.Add(bal.Abs())
		case models.PrimaryGroupIncome:
			totalIncome = totalIncome.Add(bal.Abs())
		case models.PrimaryGroupExpenses:
			totalExpense = totalExpense.Add(bal.Abs())
		}
	}

	sortLines(bs.Assets)
	sortLines(bs.Liabilities)

	bs.NetProfit = totalIncome.Sub(totalExpense)
	if !bs.NetProfit.IsZero() {
		bs.Liabilities = append(bs.Liabilities, ReportLine{Name: "Profit & Loss A/c", Amount: bs.NetProfit})
		bs.TotalLiabilities = bs.TotalLiabilities.Add(bs.NetProfit)
	}
	return bs, nil
}

// ProfitLoss partitions root Income and Expense groups into two columns.
func (s *Service) ProfitLoss(ctx context.Context, companyID uint) (ProfitLoss, error) {
	books, err := s.loadBooks(ctx, companyID)
	if err != nil {
		return ProfitLoss{}, err
	}
	totals, err := AggregateGroups(books.groups, books.ledgers, books.ledgerBalances)
	if err != nil {
		return ProfitLoss{}, err
	}

	pl := ProfitLoss{
		Income:        []ReportLine{},
		Expenses:      []ReportLine{},
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, g := range books.groups {
		if g.ParentID != nil {
			continue
		}
		bal := totals[g.ID]
		if bal.IsZero() {
			continue
		}
		switch g.PrimaryGroup {
		case models.PrimaryGroupIncome:
			pl.Income = append(pl.Income, ReportLine{GroupID: g.ID, Name: g.Name, Amount: bal.Abs()})
			pl.TotalIncome = pl.TotalIncome.Add(bal.Abs())
		case models.PrimaryGroupExpenses:
			pl.Expenses = append(pl.Expenses, ReportLine{GroupID: g.ID, Name: g.Name, Amount: bal.Abs()})
			pl.TotalExpenses = pl.TotalExpenses.Add(bal.Abs())
		}
	}

	pl.NetProfit = pl.TotalIncome.Sub(pl.TotalExpenses)
	sortLines(pl.Income)
	sortLines(pl.Expenses)
	return pl, nil
}

func sortLines(lines []ReportLine) {
	sort.Slice(lines, func(i, j int) bool { return lines[i].Name < lines[j].Name })
}
