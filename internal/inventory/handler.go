package inventory

import (
	"strings"

	"mally-backend/internal/company"
	"mally-backend/internal/database"
	"mally-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CreateUnitRequest struct {
	CompanyID uint   `json:"company_id"`
	Name      string `json:"name"`
	Symbol    string `json:"symbol"`
}

type UnitResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type CreateStockItemRequest struct {
	CompanyID uint            `json:"company_id"`
	UnitID    uint            `json:"unit_id"`
	Name      string          `json:"name"`
	HSNCode   string          `json:"hsn_code"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
}

type StockItemResponse struct {
	ID      uint            `json:"id"`
	UnitID  uint            `json:"unit_id"`
	Unit    string          `json:"unit"`
	Name    string          `json:"name"`
	HSNCode string          `json:"hsn_code"`
	TaxRate decimal.Decimal `json:"tax_rate"`
}

// POST /api/units
func CreateUnitHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateUnitRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		co, err := company.Authorize(c, body.CompanyID)
		if err != nil {
			return err
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Symbol = strings.TrimSpace(body.Symbol)
		if body.Name == "" || body.Symbol == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and symbol are required")
		}

		u := models.Unit{CompanyID: co.ID, Name: body.Name, Symbol: body.Symbol}
		if err := database.DB.Create(&u).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create unit")
		}

		return c.Status(fiber.StatusCreated).JSON(UnitResponse{ID: u.ID, Name: u.Name, Symbol: u.Symbol})
	}
}

// GET /api/units?company_id=1
func ListUnitsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := company.AuthorizeFromQuery(c)
		if err != nil {
			return err
		}

		var units []models.Unit
		if err := database.DB.
			Where("company_id = ?", co.ID).
			Order("name asc").
			Find(&units).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list units")
		}

		resp := make([]UnitResponse, 0, len(units))
		for _, u := range units {
			resp = append(resp, UnitResponse{ID: u.ID, Name: u.Name, Symbol: u.Symbol})
		}
		return c.JSON(resp)
	}
}

// POST /api/stock-items
func CreateStockItemHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockItemRequest
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
		if body.TaxRate.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "tax_rate must not be negative")
		}

		var unit models.Unit
		if err := database.DB.
			First(&unit, "id = ? AND company_id = ?", body.UnitID, co.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Unit not found in this company")
		}

		item := models.StockItem{
			CompanyID: co.ID,
			UnitID:    unit.ID,
			Name:      body.Name,
			HSNCode:   strings.TrimSpace(body.HSNCode),
			TaxRate:   body.TaxRate,
		}
		if err := database.DB.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create stock item")
		}

		return c.Status(fiber.StatusCreated).JSON(StockItemResponse{
			ID:      item.ID,
			UnitID:  item.UnitID,
			Unit:    unit.Symbol,
			Name:    item.Name,
			HSNCode: item.HSNCode,
			TaxRate: item.TaxRate,
		})
	}
}

// GET /api/stock-items?company_id=1
func ListStockItemsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := company.AuthorizeFromQuery(c)
		if err != nil {
			return err
		}

		var items []models.StockItem
		if err := database.DB.
			Preload("Unit").
			Where("company_id = ?", co.ID).
			Order("name asc").
			Find(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list stock items")
		}

		resp := make([]StockItemResponse, 0, len(items))
		for _, item := range items {
			resp = append(resp, StockItemResponse{
				ID:      item.ID,
				UnitID:  item.UnitID,
				Unit:    item.Unit.Symbol,
				Name:    item.Name,
				HSNCode: item.HSNCode,
				TaxRate: item.TaxRate,
			})
		}
		return c.JSON(resp)
	}
}
