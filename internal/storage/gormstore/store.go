package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mally-backend/internal/ledger"
	"mally-backend/internal/models"
)

// Store is the Postgres-backed ledger.Store.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Compile-time check.
var _ ledger.Store = (*Store)(nil)

func (s *Store) ListGroups(ctx context.Context, companyID uint) ([]models.Group, error) {
	var groups []models.Group
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name asc").
		Find(&groups).Error
	return groups, err
}

func (s *Store) ListLedgers(ctx context.Context, companyID uint) ([]models.Ledger, error) {
	var ledgers []models.Ledger
	err := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name asc").
		Find(&ledgers).Error
	return ledgers, err
}

func (s *Store) GetLedger(ctx context.Context, id uint) (models.Ledger, error) {
	var l models.Ledger
	err := s.db.WithContext(ctx).First(&l, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Ledger{}, ledger.ErrNotFound
	}
	return l, err
}

func (s *Store) ListEntriesForLedger(ctx context.Context, ledgerID uint) ([]models.VoucherEntry, error) {
	var entries []models.VoucherEntry
	err := s.db.WithContext(ctx).
		Where("ledger_id = ?", ledgerID).
		Find(&entries).Error
	return entries, err
}

func (s *Store) ListVouchers(ctx context.Context, companyID uint, limit int) ([]models.Voucher, error) {
	var vouchers []models.Voucher
	q := s.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("date desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&vouchers).Error
	return vouchers, err
}

func (s *Store) GetVoucher(ctx context.Context, id uint) (models.Voucher, error) {
	var v models.Voucher
	err := s.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Voucher{}, ledger.ErrNotFound
	}
	return v, err
}

func (s *Store) ListEntriesForVoucher(ctx context.Context, voucherID uint) ([]models.VoucherEntry, error) {
	var entries []models.VoucherEntry
	err := s.db.WithContext(ctx).
		Where("voucher_id = ?", voucherID).
		Order("type desc"). // Dr first, then Cr
		Find(&entries).Error
	return entries, err
}

func (s *Store) ListInventoryForVoucher(ctx context.Context, voucherID uint) ([]models.InventoryEntry, error) {
	var rows []models.InventoryEntry
	err := s.db.WithContext(ctx).
		Preload("StockItem").
		Where("voucher_id = ?", voucherID).
		Find(&rows).Error
	return rows, err
}

func (s *Store) FindVoucherByKey(ctx context.Context, companyID uint, key string) (models.Voucher, bool, error) {
	var v models.Voucher
	err := s.db.WithContext(ctx).
		Where("company_id = ? AND idempotency_key = ?", companyID, key).
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Voucher{}, false, nil
	}
	if err != nil {
		return models.Voucher{}, false, err
	}
	return v, true, nil
}

func (s *Store) InsertVoucherHeader(ctx context.Context, v *models.Voucher) error {
	return s.db.WithContext(ctx).Create(v).Error
}

func (s *Store) InsertVoucherEntries(ctx context.Context, rows []models.VoucherEntry) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

func (s *Store) InsertInventoryEntries(ctx context.Context, rows []models.InventoryEntry) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&rows).Error
}

// DeleteVoucher removes the header and cascades to entries and inventory rows
// in a single database transaction.
func (s *Store) DeleteVoucher(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.VoucherEntry{}, "voucher_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.InventoryEntry{}, "voucher_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Voucher{}, "id = ?", id).Error
	})
}
