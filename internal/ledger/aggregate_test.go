package ledger_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"mally-backend/internal/ledger"
	"mally-backend/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestAggregateGroupsDeepHierarchy(t *testing.T) {
	// Bank Accounts -> Current Account -> (ledger HDFC 2000)
	groups := []models.Group{
		{ID: 1, CompanyID: 1, Name: "Bank Accounts", PrimaryGroup: models.PrimaryGroupAssets},
		{ID: 2, CompanyID: 1, Name: "Current Account", PrimaryGroup: models.PrimaryGroupAssets, ParentID: uintPtr(1)},
	}
	ledgers := []models.Ledger{
		{ID: 10, CompanyID: 1, GroupID: 2, Name: "HDFC"},
	}
	balances := map[uint]decimal.Decimal{10: d("2000")}

	totals, err := ledger.AggregateGroups(groups, ledgers, balances)
	if err != nil {
		t.Fatalf("AggregateGroups: %v", err)
	}
	if !totals[2].Equal(d("2000")) {
		t.Errorf("child total = %s, want 2000", totals[2])
	}
	if !totals[1].Equal(d("2000")) {
		t.Errorf("parent total = %s, want 2000", totals[1])
	}
}

func TestAggregateGroupsMultiLevelSums(t *testing.T) {
	// root(ledger 100) -> mid(ledger 50) -> leaf(ledger -30)
	groups := []models.Group{
		{ID: 1, CompanyID: 1, Name: "Root"},
		{ID: 2, CompanyID: 1, Name: "Mid", ParentID: uintPtr(1)},
		{ID: 3, CompanyID: 1, Name: "Leaf", ParentID: uintPtr(2)},
	}
	ledgers := []models.Ledger{
		{ID: 10, GroupID: 1},
		{ID: 11, GroupID: 2},
		{ID: 12, GroupID: 3},
	}
	balances := map[uint]decimal.Decimal{
		10: d("100"),
		11: d("50"),
		12: d("-30"),
	}

	totals, err := ledger.AggregateGroups(groups, ledgers, balances)
	if err != nil {
		t.Fatalf("AggregateGroups: %v", err)
	}
	if !totals[3].Equal(d("-30")) {
		t.Errorf("leaf = %s, want -30", totals[3])
	}
	if !totals[2].Equal(d("20")) {
		t.Errorf("mid = %s, want 20", totals[2])
	}
	if !totals[1].Equal(d("120")) {
		t.Errorf("root = %s, want 120", totals[1])
	}
}

func TestAggregateGroupsOrphanLedger(t *testing.T) {
	groups := []models.Group{
		{ID: 1, CompanyID: 1, Name: "Assets"},
	}
	ledgers := []models.Ledger{
		{ID: 10, GroupID: 99, Name: "Lost"},
	}

	_, err := ledger.AggregateGroups(groups, ledgers, map[uint]decimal.Decimal{10: d("5")})
	var integrity *ledger.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("want IntegrityError, got %v", err)
	}
	if integrity.Kind != "orphan_ledger" {
		t.Errorf("Kind = %q, want orphan_ledger", integrity.Kind)
	}
	if integrity.LedgerID != 10 {
		t.Errorf("LedgerID = %d, want 10", integrity.LedgerID)
	}
}

func TestAggregateGroupsCycle(t *testing.T) {
	groups := []models.Group{
		{ID: 1, CompanyID: 1, Name: "A", ParentID: uintPtr(2)},
		{ID: 2, CompanyID: 1, Name: "B", ParentID: uintPtr(1)},
	}

	_, err := ledger.AggregateGroups(groups, nil, map[uint]decimal.Decimal{})
	var integrity *ledger.IntegrityError
	if !errors.As(err, &integrity) {
		t.Fatalf("want IntegrityError, got %v", err)
	}
	if integrity.Kind != "group_cycle" {
		t.Errorf("Kind = %q, want group_cycle", integrity.Kind)
	}
}

func TestAggregateGroupsConservation(t *testing.T) {
	// sum of root totals must equal the sum of all ledger balances
	groups := []models.Group{
		{ID: 1, CompanyID: 1, Name: "Assets"},
		{ID: 2, CompanyID: 1, Name: "Liabilities"},
		{ID: 3, CompanyID: 1, Name: "Current Assets", ParentID: uintPtr(1)},
		{ID: 4, CompanyID: 1, Name: "Cash-in-Hand", ParentID: uintPtr(3)},
	}
	ledgers := []models.Ledger{
		{ID: 10, GroupID: 4},
		{ID: 11, GroupID: 3},
		{ID: 12, GroupID: 2},
	}
	balances := map[uint]decimal.Decimal{
		10: d("700"),
		11: d("300"),
		12: d("-1000"),
	}

	totals, err := ledger.AggregateGroups(groups, ledgers, balances)
	if err != nil {
		t.Fatalf("AggregateGroups: %v", err)
	}

	rootSum := totals[1].Add(totals[2])
	ledgerSum := d("700").Add(d("300")).Add(d("-1000"))
	if !rootSum.Equal(ledgerSum) {
		t.Fatalf("root sum %s != ledger sum %s", rootSum, ledgerSum)
	}
}
