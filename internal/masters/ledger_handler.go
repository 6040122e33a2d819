package masters

import (
	"strings"

	"mally-backend/internal/audit"
	"mally-backend/internal/auth"
	"mally-backend/internal/company"
	"mally-backend/internal/database"
	"mally-backend/internal/ledger"
	"mally-backend/internal/logger"
	"mally-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateLedgerRequest struct {
	CompanyID          uint            `json:"company_id"`
	GroupID            uint            `json:"group_id"`
	Name               string          `json:"name"`
	OpeningBalance     decimal.Decimal `json:"opening_balance"`
	OpeningBalanceType string          `json:"opening_balance_type"` // "Dr" / "Cr"
	MailingName        string          `json:"mailing_name"`
	GSTIN              string          `json:"gstin"`
	StateName          string          `json:"state_name"`
	RegistrationType   string          `json:"registration_type"`
}

type LedgerResponse struct {
	ID                 uint            `json:"id"`
	GroupID            uint            `json:"group_id"`
	Name               string          `json:"name"`
	OpeningBalance     decimal.Decimal `json:"opening_balance"`
	OpeningBalanceType string          `json:"opening_balance_type"`
	GSTIN              string          `json:"gstin,omitempty"`
}

// POST /api/ledgers
func CreateLedgerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLedgerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		co, err := company.Authorize(c, body.CompanyID)
		if err != nil {
			return err
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}
		if body.OpeningBalance.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "opening_balance must be a non-negative magnitude")
		}

		obType := models.BalanceType(body.OpeningBalanceType)
		if obType == "" {
			obType = models.BalanceTypeDr
		}
		if obType != models.BalanceTypeDr && obType != models.BalanceTypeCr {
			return fiber.NewError(fiber.StatusBadRequest, "opening_balance_type must be 'Dr' or 'Cr'")
		}

		var group models.Group
		if err := database.DB.
			First(&group, "id = ? AND company_id = ?", body.GroupID, co.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Group not found in this company")
		}

		l := models.Ledger{
			CompanyID:          co.ID,
			GroupID:            group.ID,
			Name:               body.Name,
			OpeningBalance:     body.OpeningBalance,
			OpeningBalanceType: obType,
			MailingName:        body.MailingName,
			GSTIN:              strings.ToUpper(strings.TrimSpace(body.GSTIN)),
			StateName:          body.StateName,
			RegistrationType:   body.RegistrationType,
		}
		if err := database.DB.Create(&l).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create ledger")
		}

		if userID, err := auth.UserID(c); err == nil {
			companyID := co.ID
			if logErr := audit.WriteLog(audit.LogOptions{
				CompanyID:   &companyID,
				UserID:      userID,
				EntityType:  "ledger",
				EntityID:    l.ID,
				Action:      models.AuditActionCreate,
				Description: "Ledger created: " + l.Name,
				After: fiber.Map{
					"id": l.ID, "group_id": l.GroupID, "name": l.Name,
					"opening_balance": l.OpeningBalance, "opening_balance_type": l.OpeningBalanceType,
				},
			}); logErr != nil {
				// audit failures are logged, never fatal to the request
				logger.Error(logErr, "could not write audit log")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(LedgerResponse{
			ID:                 l.ID,
			GroupID:            l.GroupID,
			Name:               l.Name,
			OpeningBalance:     l.OpeningBalance,
			OpeningBalanceType: string(l.OpeningBalanceType),
			GSTIN:              l.GSTIN,
		})
	}
}

// GET /api/ledgers?company_id=1
func ListLedgersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := company.AuthorizeFromQuery(c)
		if err != nil {
			return err
		}

		var ledgers []models.Ledger
		if err := database.DB.
			Where("company_id = ?", co.ID).
			Order("name asc").
			Find(&ledgers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list ledgers")
		}

		resp := make([]LedgerResponse, 0, len(ledgers))
		for _, l := range ledgers {
			resp = append(resp, LedgerResponse{
				ID:                 l.ID,
				GroupID:            l.GroupID,
				Name:               l.Name,
				OpeningBalance:     l.OpeningBalance,
				OpeningBalanceType: string(l.OpeningBalanceType),
				GSTIN:              l.GSTIN,
			})
		}
		return c.JSON(resp)
	}
}

// GET /api/ledgers/:id/balance
func LedgerBalanceHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id is invalid")
		}

		var l models.Ledger
		if err := database.DB.First(&l, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ledger not found")
		}
		if _, err := company.Authorize(c, l.CompanyID); err != nil {
			return err
		}

		bal, err := svc.LedgerBalance(c.Context(), l.ID)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute balance")
		}

		balanceType := models.BalanceTypeDr
		if bal.IsNegative() {
			balanceType = models.BalanceTypeCr
		}
		return c.JSON(fiber.Map{
			"ledger_id":    l.ID,
			"name":         l.Name,
			"balance":      bal,
			"balance_abs":  bal.Abs(),
			"balance_type": balanceType,
		})
	}
}
