package company

import (
	"fmt"
	"strings"
	"time"

	"mally-backend/internal/auth"
	"mally-backend/internal/database"
	"mally-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateCompanyRequest struct {
	Name               string `json:"name"`
	CurrencySymbol     string `json:"currency_symbol"`
	FinancialYearStart string `json:"financial_year_start"` // "2025-04-01"
	GSTIN              string `json:"gstin"`
	StateName          string `json:"state_name"`
	StateCode          string `json:"state_code"`
	Address            string `json:"address"`
}

type CompanyResponse struct {
	ID                 uint   `json:"id"`
	Name               string `json:"name"`
	CurrencySymbol     string `json:"currency_symbol"`
	FinancialYearStart string `json:"financial_year_start"`
	GSTIN              string `json:"gstin"`
	StateName          string `json:"state_name"`
	StateCode          string `json:"state_code"`
	Address            string `json:"address"`
}

func toResponse(co models.Company) CompanyResponse {
	return CompanyResponse{
		ID:                 co.ID,
		Name:               co.Name,
		CurrencySymbol:     co.CurrencySymbol,
		FinancialYearStart: co.FinancialYearStart.Format("2006-01-02"),
		GSTIN:              co.GSTIN,
		StateName:          co.StateName,
		StateCode:          co.StateCode,
		Address:            co.Address,
	}
}

// Authorize loads a company and checks it belongs to the authenticated user.
// Every company-scoped endpoint resolves access through this instead of any
// ambient "current company" state.
func Authorize(c *fiber.Ctx, companyID uint) (models.Company, error) {
	userID, err := auth.UserID(c)
	if err != nil {
		return models.Company{}, err
	}

	var co models.Company
	if err := database.DB.First(&co, "id = ?", companyID).Error; err != nil {
		return models.Company{}, fiber.NewError(fiber.StatusNotFound, "Company not found")
	}
	if co.OwnerID != userID {
		return models.Company{}, fiber.NewError(fiber.StatusForbidden, "Company belongs to another user")
	}
	return co, nil
}

// AuthorizeFromQuery resolves ?company_id= and checks ownership.
func AuthorizeFromQuery(c *fiber.Ctx) (models.Company, error) {
	idStr := c.Query("company_id")
	if idStr == "" {
		return models.Company{}, fiber.NewError(fiber.StatusBadRequest, "company_id is required")
	}
	var id uint
	if _, err := fmt.Sscan(idStr, &id); err != nil || id == 0 {
		return models.Company{}, fiber.NewError(fiber.StatusBadRequest, "company_id is invalid")
	}
	return Authorize(c, id)
}

// POST /api/companies
func CreateCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var body CreateCompanyRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name is required")
		}

		fyStart, err := time.Parse("2006-01-02", body.FinancialYearStart)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "financial_year_start must be 'YYYY-MM-DD'")
		}

		currency := body.CurrencySymbol
		if currency == "" {
			currency = "₹"
		}

		co := models.Company{
			OwnerID:            userID,
			Name:               body.Name,
			CurrencySymbol:     currency,
			FinancialYearStart: fyStart,
			BooksBeginningFrom: fyStart,
			GSTIN:              strings.ToUpper(strings.TrimSpace(body.GSTIN)),
			StateName:          body.StateName,
			StateCode:          body.StateCode,
			Address:            body.Address,
		}

		if err := database.DB.Create(&co).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create company")
		}

		// Default chart of accounts. The company exists either way; a seeding
		// failure is reported so the caller can retry via support tooling.
		if err := SeedDefaults(database.DB, co.ID); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Company created but default accounts failed")
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(co))
	}
}

// GET /api/companies
func ListCompaniesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := auth.UserID(c)
		if err != nil {
			return err
		}

		var companies []models.Company
		if err := database.DB.
			Where("owner_id = ?", userID).
			Order("created_at desc").
			Find(&companies).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list companies")
		}

		resp := make([]CompanyResponse, 0, len(companies))
		for _, co := range companies {
			resp = append(resp, toResponse(co))
		}
		return c.JSON(resp)
	}
}

// GET /api/companies/:id
func GetCompanyHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id is invalid")
		}
		co, err := Authorize(c, uint(id))
		if err != nil {
			return err
		}
		return c.JSON(toResponse(co))
	}
}
