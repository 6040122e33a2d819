package audit

import (
	"encoding/json"
	"fmt"

	"mally-backend/internal/database"
	"mally-backend/internal/models"
)

type LogOptions struct {
	CompanyID   *uint
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// jsonb columns want the literal "null" rather than an empty string
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		CompanyID:   opts.CompanyID,
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("could not write audit log: %w", err)
	}

	return nil
}
