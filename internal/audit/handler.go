package audit

import (
	"mally-backend/internal/company"
	"mally-backend/internal/database"
	"mally-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?company_id=1[&entity_type=voucher][&limit=50]
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := company.AuthorizeFromQuery(c)
		if err != nil {
			return err
		}

		limit := c.QueryInt("limit", 50)
		if limit < 1 || limit > 500 {
			limit = 50
		}

		dbq := database.DB.Model(&models.AuditLog{}).
			Where("company_id = ?", co.ID).
			Order("created_at desc").
			Limit(limit)

		if et := c.Query("entity_type"); et != "" {
			dbq = dbq.Where("entity_type = ?", et)
		}

		var logs []models.AuditLog
		if err := dbq.Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list audit logs")
		}

		return c.JSON(logs)
	}
}
