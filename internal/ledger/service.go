package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"mally-backend/internal/models"
)

// Service is the bookkeeping core: balance calculation, group rollups, report
// generation and the voucher commit protocol, all against a Store.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// LedgerBalance returns the signed closing balance of a single ledger.
func (s *Service) LedgerBalance(ctx context.Context, ledgerID uint) (decimal.Decimal, error) {
	l, err := s.store.GetLedger(ctx, ledgerID)
	if err != nil {
		return decimal.Zero, wrapStore("GetLedger", err)
	}
	entries, err := s.store.ListEntriesForLedger(ctx, l.ID)
	if err != nil {
		return decimal.Zero, wrapStore("ListEntriesForLedger", err)
	}
	return ClosingBalance(l, entries), nil
}

// GroupBalances returns the rolled-up signed balance per group id for a company.
func (s *Service) GroupBalances(ctx context.Context, companyID uint) (map[uint]decimal.Decimal, error) {
	books, err := s.loadBooks(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return AggregateGroups(books.groups, books.ledgers, books.ledgerBalances)
}

// companyBooks is everything the report generators need for one company.
type companyBooks struct {
	groups         []models.Group
	ledgers        []models.Ledger
	ledgerBalances map[uint]decimal.Decimal
}

// loadBooks fetches groups and ledgers in parallel, then per-ledger entries
// sequentially. The reads span multiple store round trips and are not a
// snapshot: a voucher committed concurrently can land in some ledgers and not
// others within the same report. Accepted read-skew for interactive reports.
func (s *Service) loadBooks(ctx context.Context, companyID uint) (companyBooks, error) {
	if companyID == 0 {
		return companyBooks{}, ErrNoCompany
	}

	var (
		groups  []models.Group
		ledgers []models.Ledger
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		groups, err = s.store.ListGroups(egCtx, companyID)
		return wrapStore("ListGroups", err)
	})
	eg.Go(func() error {
		var err error
		ledgers, err = s.store.ListLedgers(egCtx, companyID)
		return wrapStore("ListLedgers", err)
	})
	if err := eg.Wait(); err != nil {
		return companyBooks{}, err
	}

	balances := make(map[uint]decimal.Decimal, len(ledgers))
	for _, l := range ledgers {
		entries, err := s.store.ListEntriesForLedger(ctx, l.ID)
		if err != nil {
			return companyBooks{}, wrapStore("ListEntriesForLedger", err)
		}
		balances[l.ID] = ClosingBalance(l, entries)
	}

	return companyBooks{groups: groups, ledgers: ledgers, ledgerBalances: balances}, nil
}
