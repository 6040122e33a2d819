package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Unit struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID uint `gorm:"index;not null"`
	Company   Company
	Name      string `gorm:"size:50;not null"` // Numbers, Kilograms, ...
	Symbol    string `gorm:"size:10;not null"` // Nos, Kg, ...
	CreatedAt time.Time
	UpdatedAt time.Time
}

type StockItem struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID uint `gorm:"index;not null"`
	Company   Company
	UnitID    uint `gorm:"index;not null"`
	Unit      Unit

	Name    string          `gorm:"size:150;not null"`
	HSNCode string          `gorm:"size:10"`
	TaxRate decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"` // GST %

	CreatedAt time.Time
	UpdatedAt time.Time
}
