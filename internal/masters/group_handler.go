package masters

import (
	"strings"

	"mally-backend/internal/company"
	"mally-backend/internal/database"
	"mally-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type GroupResponse struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	PrimaryGroup models.PrimaryGroup `json:"primary_group"`
	ParentID     *uint               `json:"parent_id"`
}

type CreateGroupRequest struct {
	CompanyID    uint                `json:"company_id"`
	Name         string              `json:"name"`
	PrimaryGroup models.PrimaryGroup `json:"primary_group"`
	ParentID     *uint               `json:"parent_id"`
}

// GET /api/groups?company_id=1
func ListGroupsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := company.AuthorizeFromQuery(c)
		if err != nil {
			return err
		}

		var groups []models.Group
		if err := database.DB.
			Where("company_id = ?", co.ID).
			Order("name asc").
			Find(&groups).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list groups")
		}

		resp := make([]GroupResponse, 0, len(groups))
		for _, g := range groups {
			resp = append(resp, GroupResponse{
				ID:           g.ID,
				Name:         g.Name,
				PrimaryGroup: g.PrimaryGroup,
				ParentID:     g.ParentID,
			})
		}
		return c.JSON(resp)
	}
}

// POST /api/groups
func CreateGroupHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateGroupRequest
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

		switch body.PrimaryGroup {
		case models.PrimaryGroupAssets, models.PrimaryGroupLiabilities,
			models.PrimaryGroupIncome, models.PrimaryGroupExpenses:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "primary_group must be Assets, Liabilities, Income or Expenses")
		}

		// a parent must exist in the same company; primary classification
		// follows the parent to keep the tree consistent
		if body.ParentID != nil {
			var parent models.Group
			if err := database.DB.
				First(&parent, "id = ? AND company_id = ?", *body.ParentID, co.ID).Error; err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Parent group not found in this company")
			}
			body.PrimaryGroup = parent.PrimaryGroup
		}

		g := models.Group{
			CompanyID:    co.ID,
			Name:         body.Name,
			PrimaryGroup: body.PrimaryGroup,
			ParentID:     body.ParentID,
		}
		if err := database.DB.Create(&g).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create group")
		}

		return c.Status(fiber.StatusCreated).JSON(GroupResponse{
			ID:           g.ID,
			Name:         g.Name,
			PrimaryGroup: g.PrimaryGroup,
			ParentID:     g.ParentID,
		})
	}
}
