package models

import "time"

// Company is the tenant root. Every Group, Ledger and Voucher is scoped to
// exactly one company; the bookkeeping core never mutates it.
type Company struct {
	ID      uint `gorm:"primaryKey"`
	OwnerID uint `gorm:"index;not null"`
	Owner   User

	Name               string    `gorm:"size:150;not null"`
	CurrencySymbol     string    `gorm:"size:10;not null;default:'₹'"`
	FinancialYearStart time.Time `gorm:"not null"`
	BooksBeginningFrom time.Time `gorm:"not null"`

	// GST registration (optional)
	GSTIN     string `gorm:"size:20"`
	StateName string `gorm:"size:50"`
	StateCode string `gorm:"size:5"`

	Address   string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
