package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"mally-backend/internal/logger"
	"mally-backend/internal/models"
)

// ErrVoucherNotFound is returned when a voucher id does not exist.
var ErrVoucherNotFound = errors.New("voucher not found")

// DraftEntry is one Dr/Cr leg of a voucher draft. The sign of Amount is
// ignored; direction is carried by Type alone.
type DraftEntry struct {
	LedgerID uint
	Amount   decimal.Decimal
	Type     models.BalanceType
}

// DraftInventory is one goods line of a Sales/Purchase draft.
type DraftInventory struct {
	StockItemID uint
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
	TaxRate     decimal.Decimal
}

// VoucherDraft is the typed input of the commit protocol, validated at the
// boundary before anything is written.
type VoucherDraft struct {
	CompanyID uint
	Type      models.VoucherType
	Date      time.Time
	Narration string

	PartyName    string
	PartyGSTIN   string
	PartyAddress string

	// optional; a retried commit with the same key replays the already
	// committed voucher instead of writing a duplicate
	IdempotencyKey string

	Entries   []DraftEntry
	Inventory []DraftInventory
}

// VoucherDetail is a voucher header with its entries and inventory lines.
type VoucherDetail struct {
	Voucher   models.Voucher
	Entries   []models.VoucherEntry
	Inventory []models.InventoryEntry
}

// CommitVoucher validates a draft and persists it as one logical unit:
// header first, then entries, then inventory rows. A failed entry or
// inventory write compensates by deleting the header; the original failure is
// propagated either way.
func (s *Service) CommitVoucher(ctx context.Context, draft VoucherDraft) (models.Voucher, error) {
	if err := s.validateDraft(ctx, &draft); err != nil {
		return models.Voucher{}, err
	}

	if draft.IdempotencyKey != "" {
		existing, ok, err := s.store.FindVoucherByKey(ctx, draft.CompanyID, draft.IdempotencyKey)
		if err != nil {
			return models.Voucher{}, wrapStore("FindVoucherByKey", err)
		}
		if ok {
			return existing, nil
		}
	}

	voucher := models.Voucher{
		CompanyID:      draft.CompanyID,
		Type:           draft.Type,
		Date:           draft.Date,
		VoucherNumber:  newVoucherNumber(draft.Type),
		Narration:      draft.Narration,
		IdempotencyKey: draft.IdempotencyKey,
		PartyName:      draft.PartyName,
		PartyGSTIN:     draft.PartyGSTIN,
		PartyAddress:   draft.PartyAddress,
	}
	if err := s.store.InsertVoucherHeader(ctx, &voucher); err != nil {
		return models.Voucher{}, wrapStore("InsertVoucherHeader", err)
	}

	entryRows := make([]models.VoucherEntry, 0, len(draft.Entries))
	for _, e := range draft.Entries {
		entryRows = append(entryRows, models.VoucherEntry{
			VoucherID: voucher.ID,
			LedgerID:  e.LedgerID,
			Amount:    e.Amount.Abs(),
			Type:      e.Type,
		})
	}
	if err := s.store.InsertVoucherEntries(ctx, entryRows); err != nil {
		return models.Voucher{}, s.compensate(ctx, voucher.ID, wrapStore("InsertVoucherEntries", err))
	}

	if len(draft.Inventory) > 0 {
		invRows := make([]models.InventoryEntry, 0, len(draft.Inventory))
		for _, inv := range draft.Inventory {
			invRows = append(invRows, models.InventoryEntry{
				VoucherID:   voucher.ID,
				StockItemID: inv.StockItemID,
				Quantity:    inv.Quantity,
				Rate:        inv.Rate,
				Amount:      inv.Amount,
				TaxRate:     inv.TaxRate,
			})
		}
		if err := s.store.InsertInventoryEntries(ctx, invRows); err != nil {
			return models.Voucher{}, s.compensate(ctx, voucher.ID, wrapStore("InsertInventoryEntries", err))
		}
	}

	return voucher, nil
}

// validateDraft enforces the commit preconditions before anything is written:
// a company is selected, the entry set is non-empty, every amount is strictly
// positive, every ledger belongs to the company, and Dr and Cr totals match.
func (s *Service) validateDraft(ctx context.Context, draft *VoucherDraft) error {
	if draft.CompanyID == 0 {
		return ErrNoCompany
	}
	if len(draft.Entries) == 0 {
		return ErrEmptyEntries
	}
	if draft.Date.IsZero() {
		draft.Date = time.Now()
	}

	ledgers, err := s.store.ListLedgers(ctx, draft.CompanyID)
	if err != nil {
		return wrapStore("ListLedgers", err)
	}
	known := make(map[uint]bool, len(ledgers))
	for _, l := range ledgers {
		known[l.ID] = true
	}

	totalDr := decimal.Zero
	totalCr := decimal.Zero
	for i, e := range draft.Entries {
		if e.Amount.IsZero() {
			return fmt.Errorf("entry %d: %w", i, ErrNonPositiveAmount)
		}
		if !known[e.LedgerID] {
			return fmt.Errorf("entry %d (ledger %d): %w", i, e.LedgerID, ErrLedgerNotInCompany)
		}
		amt := e.Amount.Abs()
		if e.Type == models.BalanceTypeDr {
			totalDr = totalDr.Add(amt)
		} else {
			totalCr = totalCr.Add(amt)
		}
	}
	if !totalDr.Equal(totalCr) {
		return fmt.Errorf("Dr %s vs Cr %s: %w", totalDr, totalCr, ErrUnbalanced)
	}
	return nil
}

// compensate deletes the orphan header after a failed entries/inventory write.
// The delete is best-effort: if it fails too, the books hold a detectable
// orphan header and both failures are reported together for manual cleanup.
func (s *Service) compensate(ctx context.Context, voucherID uint, cause error) error {
	if delErr := s.store.DeleteVoucher(ctx, voucherID); delErr != nil {
		lg := logger.WithComponent("ledger")
		lg.Error().
			Uint("voucher_id", voucherID).
			AnErr("cause", cause).
			AnErr("compensation", delErr).
			Msg("compensating delete failed, orphan voucher header left behind")
		return fmt.Errorf("%w (compensating delete of voucher %d also failed: %v, manual cleanup required)", cause, voucherID, delErr)
	}
	return cause
}

// GetVoucher returns a voucher with its entries and inventory lines.
func (s *Service) GetVoucher(ctx context.Context, id uint) (VoucherDetail, error) {
	v, err := s.store.GetVoucher(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return VoucherDetail{}, ErrVoucherNotFound
		}
		return VoucherDetail{}, wrapStore("GetVoucher", err)
	}
	entries, err := s.store.ListEntriesForVoucher(ctx, id)
	if err != nil {
		return VoucherDetail{}, wrapStore("ListEntriesForVoucher", err)
	}
	inventory, err := s.store.ListInventoryForVoucher(ctx, id)
	if err != nil {
		return VoucherDetail{}, wrapStore("ListInventoryForVoucher", err)
	}
	return VoucherDetail{Voucher: v, Entries: entries, Inventory: inventory}, nil
}

// DeleteVoucher removes a voucher together with its entries and inventory
// rows. Corrections are modeled as delete-and-recreate; there is no in-place
// update of financial records.
func (s *Service) DeleteVoucher(ctx context.Context, id uint) error {
	if _, err := s.store.GetVoucher(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrVoucherNotFound
		}
		return wrapStore("GetVoucher", err)
	}
	if err := s.store.DeleteVoucher(ctx, id); err != nil {
		return wrapStore("DeleteVoucher", err)
	}
	return nil
}

// DayBookRow is one voucher in the day book with its total (the sum of its
// debit legs; Dr equals Cr for every committed voucher).
type DayBookRow struct {
	Voucher models.Voucher
	Total   decimal.Decimal
}

// DayBook lists the most recent vouchers of a company with per-voucher totals.
func (s *Service) DayBook(ctx context.Context, companyID uint, limit int) ([]DayBookRow, error) {
	if companyID == 0 {
		return nil, ErrNoCompany
	}
	vouchers, err := s.store.ListVouchers(ctx, companyID, limit)
	if err != nil {
		return nil, wrapStore("ListVouchers", err)
	}
	rows := make([]DayBookRow, 0, len(vouchers))
	for _, v := range vouchers {
		entries, err := s.store.ListEntriesForVoucher(ctx, v.ID)
		if err != nil {
			return nil, wrapStore("ListEntriesForVoucher", err)
		}
		total := decimal.Zero
		for _, e := range entries {
			if e.Type == models.BalanceTypeDr {
				total = total.Add(e.Amount)
			}
		}
		rows = append(rows, DayBookRow{Voucher: v, Total: total})
	}
	return rows, nil
}

// newVoucherNumber builds a type-prefixed, time-derived display token like
// "SAL-431523-9f3a". The uuid tail guards against two commits landing in the
// same millisecond; global uniqueness is not required.
func newVoucherNumber(t models.VoucherType) string {
	prefix := strings.ToUpper(string(t))
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s-%06d-%s", prefix, time.Now().UnixMilli()%1_000_000, uuid.NewString()[:4])
}
