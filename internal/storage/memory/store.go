package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"mally-backend/internal/ledger"
	"mally-backend/internal/models"
)

// Store is an in-memory ledger.Store used by the core tests. Thread-safe.
// The Fail* hooks inject one-shot write failures to exercise the commit
// protocol's compensation path.
type Store struct {
	mu sync.Mutex

	nextID    uint
	groups    map[uint]models.Group
	ledgers   map[uint]models.Ledger
	vouchers  map[uint]models.Voucher
	entries   map[uint]models.VoucherEntry
	inventory map[uint]models.InventoryEntry

	FailEntriesInsert   bool
	FailInventoryInsert bool
	FailDelete          bool
}

func New() *Store {
	return &Store{
		nextID:    1,
		groups:    make(map[uint]models.Group),
		ledgers:   make(map[uint]models.Ledger),
		vouchers:  make(map[uint]models.Voucher),
		entries:   make(map[uint]models.VoucherEntry),
		inventory: make(map[uint]models.InventoryEntry),
	}
}

var _ ledger.Store = (*Store)(nil)

var errInjected = errors.New("injected store failure")

func (s *Store) allocID() uint {
	id := s.nextID
	s.nextID++
	return id
}

// AddGroup seeds a group directly, returning its id.
func (s *Store) AddGroup(g models.Group) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g.ID == 0 {
		g.ID = s.allocID()
	}
	s.groups[g.ID] = g
	return g.ID
}

// AddLedger seeds a ledger directly, returning its id.
func (s *Store) AddLedger(l models.Ledger) uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.ID == 0 {
		l.ID = s.allocID()
	}
	s.ledgers[l.ID] = l
	return l.ID
}

func (s *Store) ListGroups(ctx context.Context, companyID uint) ([]models.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Group
	for _, g := range s.groups {
		if g.CompanyID == companyID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListLedgers(ctx context.Context, companyID uint) ([]models.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Ledger
	for _, l := range s.ledgers {
		if l.CompanyID == companyID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetLedger(ctx context.Context, id uint) (models.Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.ledgers[id]
	if !ok {
		return models.Ledger{}, ledger.ErrNotFound
	}
	return l, nil
}

func (s *Store) ListEntriesForLedger(ctx context.Context, ledgerID uint) ([]models.VoucherEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.VoucherEntry
	for _, e := range s.entries {
		if e.LedgerID == ledgerID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListVouchers(ctx context.Context, companyID uint, limit int) ([]models.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Voucher
	for _, v := range s.vouchers {
		if v.CompanyID == companyID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) GetVoucher(ctx context.Context, id uint) (models.Voucher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vouchers[id]
	if !ok {
		return models.Voucher{}, ledger.ErrNotFound
	}
	return v, nil
}

func (s *Store) ListEntriesForVoucher(ctx context.Context, voucherID uint) ([]models.VoucherEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.VoucherEntry
	for _, e := range s.entries {
		if e.VoucherID == voucherID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListInventoryForVoucher(ctx context.Context, voucherID uint) ([]models.InventoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.InventoryEntry
	for _, row := range s.inventory {
		if row.VoucherID == voucherID {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) FindVoucherByKey(ctx context.Context, companyID uint, key string) (models.Voucher, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range s.vouchers {
		if v.CompanyID == companyID && v.IdempotencyKey == key {
			return v, true, nil
		}
	}
	return models.Voucher{}, false, nil
}

func (s *Store) InsertVoucherHeader(ctx context.Context, v *models.Voucher) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = s.allocID()
	s.vouchers[v.ID] = *v
	return nil
}

func (s *Store) InsertVoucherEntries(ctx context.Context, rows []models.VoucherEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailEntriesInsert {
		s.FailEntriesInsert = false
		return errInjected
	}
	for _, row := range rows {
		row.ID = s.allocID()
		s.entries[row.ID] = row
	}
	return nil
}

func (s *Store) InsertInventoryEntries(ctx context.Context, rows []models.InventoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailInventoryInsert {
		s.FailInventoryInsert = false
		return errInjected
	}
	for _, row := range rows {
		row.ID = s.allocID()
		s.inventory[row.ID] = row
	}
	return nil
}

func (s *Store) DeleteVoucher(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDelete {
		s.FailDelete = false
		return errInjected
	}
	delete(s.vouchers, id)
	for eid, e := range s.entries {
		if e.VoucherID == id {
			delete(s.entries, eid)
		}
	}
	for iid, row := range s.inventory {
		if row.VoucherID == id {
			delete(s.inventory, iid)
		}
	}
	return nil
}
