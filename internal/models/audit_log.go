package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CompanyID *uint  `gorm:"index" json:"company_id"`
	UserID    uint   `json:"user_id"`
	UserName  string `gorm:"size:100" json:"user_name"` // denormalized

	// e.g. "voucher", "ledger", "stock_item"
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   uint   `gorm:"index" json:"entity_id"`

	Action      AuditAction `gorm:"size:20" json:"action"`
	Description string      `gorm:"size:255" json:"description"`

	// snapshot of the record before/after the action (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}
