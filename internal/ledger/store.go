package ledger

import (
	"context"

	"mally-backend/internal/models"
)

// Store is the narrow contract the bookkeeping core needs from the record
// store. Implementations: storage/gormstore (Postgres) and storage/memory
// (tests). No ordering guarantees are assumed across separate calls; reads
// spanning multiple calls are not a snapshot.
type Store interface {
	ListGroups(ctx context.Context, companyID uint) ([]models.Group, error)
	ListLedgers(ctx context.Context, companyID uint) ([]models.Ledger, error)
	GetLedger(ctx context.Context, id uint) (models.Ledger, error)
	ListEntriesForLedger(ctx context.Context, ledgerID uint) ([]models.VoucherEntry, error)

	ListVouchers(ctx context.Context, companyID uint, limit int) ([]models.Voucher, error)
	GetVoucher(ctx context.Context, id uint) (models.Voucher, error)
	ListEntriesForVoucher(ctx context.Context, voucherID uint) ([]models.VoucherEntry, error)
	ListInventoryForVoucher(ctx context.Context, voucherID uint) ([]models.InventoryEntry, error)
	FindVoucherByKey(ctx context.Context, companyID uint, key string) (models.Voucher, bool, error)

	InsertVoucherHeader(ctx context.Context, v *models.Voucher) error
	InsertVoucherEntries(ctx context.Context, rows []models.VoucherEntry) error
	InsertInventoryEntries(ctx context.Context, rows []models.InventoryEntry) error
	// DeleteVoucher removes the header and cascades to its entries and
	// inventory rows.
	DeleteVoucher(ctx context.Context, id uint) error
}
