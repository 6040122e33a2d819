package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type BalanceType string

const (
	BalanceTypeDr BalanceType = "Dr"
	BalanceTypeCr BalanceType = "Cr"
)

// Ledger is a leaf account. Its closing balance is fully determined by the
// opening balance/type plus every VoucherEntry referencing it.
type Ledger struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID uint `gorm:"index;not null"`
	Company   Company
	GroupID   uint `gorm:"index;not null"`
	Group     Group

	Name               string          `gorm:"size:150;not null"`
	OpeningBalance     decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"` // magnitude, never negative
	OpeningBalanceType BalanceType     `gorm:"size:2;not null;default:'Dr'"`

	// statutory fields (optional)
	MailingName      string `gorm:"size:150"`
	GSTIN            string `gorm:"size:20"`
	StateName        string `gorm:"size:50"`
	RegistrationType string `gorm:"size:30"` // Regular / Composition / Unregistered / Consumer

	CreatedAt time.Time
	UpdatedAt time.Time
}
