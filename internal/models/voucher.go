package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type VoucherType string

const (
	VoucherTypeSales    VoucherType = "Sales"
	VoucherTypePurchase VoucherType = "Purchase"
	VoucherTypePayment  VoucherType = "Payment"
	VoucherTypeReceipt  VoucherType = "Receipt"
	VoucherTypeJournal  VoucherType = "Journal"
	VoucherTypeContra   VoucherType = "Contra"
)

// Voucher is a transaction header. It is created atomically with its entries
// and only ever removed as a whole; corrections are delete-and-recreate.
type Voucher struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID uint `gorm:"index;not null;uniqueIndex:idx_vouchers_company_number"`
	Company   Company

	Type          VoucherType `gorm:"size:20;not null"`
	Date          time.Time   `gorm:"index;not null"`
	VoucherNumber string      `gorm:"size:30;not null;uniqueIndex:idx_vouchers_company_number"`
	Narration     string      `gorm:"size:255"`

	// retry recovery: a commit retried with the same key replays the
	// original voucher instead of writing a duplicate
	IdempotencyKey string `gorm:"size:40;index"`

	// party details for invoice-style vouchers (Sales / Purchase)
	PartyName    string `gorm:"size:150"`
	PartyGSTIN   string `gorm:"size:20"`
	PartyAddress string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VoucherEntry is one Dr/Cr leg of a voucher. Amount is always a positive
// magnitude; the direction is carried by Type alone.
type VoucherEntry struct {
	ID        uint `gorm:"primaryKey"`
	VoucherID uint `gorm:"index;not null"`
	LedgerID  uint `gorm:"index;not null"`
	Ledger    Ledger

	Amount decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	Type   BalanceType     `gorm:"size:2;not null"`

	CreatedAt time.Time
}

// InventoryEntry is one goods line of a Sales/Purchase voucher. Informational
// for invoice printing; the matching value/tax postings live in VoucherEntry.
type InventoryEntry struct {
	ID          uint `gorm:"primaryKey"`
	VoucherID   uint `gorm:"index;not null"`
	StockItemID uint `gorm:"index;not null"`
	StockItem   StockItem

	Quantity decimal.Decimal `gorm:"type:numeric(16,3);not null"`
	Rate     decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	Amount   decimal.Decimal `gorm:"type:numeric(16,2);not null"` // quantity × rate
	TaxRate  decimal.Decimal `gorm:"type:numeric(5,2);not null"`  // GST % snapshot at entry time

	CreatedAt time.Time
}
