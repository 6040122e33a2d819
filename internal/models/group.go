package models

import "time"

type PrimaryGroup string

const (
	PrimaryGroupAssets      PrimaryGroup = "Assets"
	PrimaryGroupLiabilities PrimaryGroup = "Liabilities"
	PrimaryGroupIncome      PrimaryGroup = "Income"
	PrimaryGroupExpenses    PrimaryGroup = "Expenses"
)

// Group is a node in the chart-of-accounts tree. ParentID == nil marks a root
// group; the parent/child relation must stay a forest within one company.
type Group struct {
	ID        uint `gorm:"primaryKey"`
	CompanyID uint `gorm:"index;not null"`
	Company   Company

	Name         string       `gorm:"size:100;not null"`
	PrimaryGroup PrimaryGroup `gorm:"size:20;not null"` // Assets / Liabilities / Income / Expenses
	ParentID     *uint        `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
