package vouchers

import (
	"errors"
	"time"

	"mally-backend/internal/audit"
	"mally-backend/internal/auth"
	"mally-backend/internal/company"
	"mally-backend/internal/database"
	"mally-backend/internal/ledger"
	"mally-backend/internal/logger"
	"mally-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EntryRequest struct {
	LedgerID uint            `json:"ledger_id"`
	Amount   decimal.Decimal `json:"amount"`
	Type     string          `json:"type"` // "Dr" / "Cr"
}

type InventoryRequest struct {
	StockItemID uint            `json:"item_id"`
	Quantity    decimal.Decimal `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

type CreateVoucherRequest struct {
	CompanyID      uint               `json:"company_id"`
	Type           string             `json:"type"`
	Date           string             `json:"date"` // "2025-12-09"
	Narration      string             `json:"narration"`
	PartyName      string             `json:"party_name"`
	PartyGSTIN     string             `json:"party_gstin"`
	PartyAddress   string             `json:"party_address"`
	IdempotencyKey string             `json:"idempotency_key"`
	Entries        []EntryRequest     `json:"entries"`
	Inventory      []InventoryRequest `json:"inventory"`
}

type VoucherResponse struct {
	ID            uint   `json:"id"`
	VoucherNumber string `json:"voucher_number"`
	Type          string `json:"type"`
	Date          string `json:"date"`
	Narration     string `json:"narration"`
}

type EntryResponse struct {
	LedgerID   uint            `json:"ledger_id"`
	LedgerName string          `json:"ledger_name"`
	Amount     decimal.Decimal `json:"amount"`
	Type       string          `json:"type"`
}

type InventoryResponse struct {
	StockItemID uint            `json:"item_id"`
	ItemName    string          `json:"item_name"`
	HSNCode     string          `json:"hsn_code"`
	Quantity    decimal.Decimal `json:"qty"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
}

type VoucherDetailResponse struct {
	VoucherResponse
	PartyName string              `json:"party_name,omitempty"`
	Entries   []EntryResponse     `json:"entries"`
	Inventory []InventoryResponse `json:"inventory"`
}

type DayBookRow struct {
	ID            uint            `json:"id"`
	VoucherNumber string          `json:"voucher_number"`
	Type          string          `json:"type"`
	Date          string          `json:"date"`
	Narration     string          `json:"narration"`
	Total         decimal.Decimal `json:"total"`
}

// mapCoreError translates core error classes to HTTP statuses: validation
// failures are the caller's to fix, integrity violations point at bad data,
// everything else is the store misbehaving.
func mapCoreError(err error) error {
	if ledger.IsValidation(err) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if errors.Is(err, ledger.ErrVoucherNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Voucher not found")
	}
	var integrity *ledger.IntegrityError
	if errors.As(err, &integrity) {
		return fiber.NewError(fiber.StatusConflict, integrity.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

// POST /api/vouchers
func CreateVoucherHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateVoucherRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		co, err := company.Authorize(c, body.CompanyID)
		if err != nil {
			return err
		}

		var date time.Time
		if body.Date != "" {
			date, err = time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Date must be 'YYYY-MM-DD'")
			}
		}

		key := body.IdempotencyKey
		if key == "" {
			key = uuid.NewString()
		}

		draft := ledger.VoucherDraft{
			CompanyID:      co.ID,
			Type:           models.VoucherType(body.Type),
			Date:           date,
			Narration:      body.Narration,
			PartyName:      body.PartyName,
			PartyGSTIN:     body.PartyGSTIN,
			PartyAddress:   body.PartyAddress,
			IdempotencyKey: key,
		}
		for _, e := range body.Entries {
			draft.Entries = append(draft.Entries, ledger.DraftEntry{
				LedgerID: e.LedgerID,
				Amount:   e.Amount,
				Type:     models.BalanceType(e.Type),
			})
		}
		for _, inv := range body.Inventory {
			draft.Inventory = append(draft.Inventory, ledger.DraftInventory{
				StockItemID: inv.StockItemID,
				Quantity:    inv.Quantity,
				Rate:        inv.Rate,
				Amount:      inv.Amount,
				TaxRate:     inv.TaxRate,
			})
		}

		v, err := svc.CommitVoucher(c.Context(), draft)
		if err != nil {
			return mapCoreError(err)
		}

		if userID, err := auth.UserID(c); err == nil {
			companyID := co.ID
			if logErr := audit.WriteLog(audit.LogOptions{
				CompanyID:   &companyID,
				UserID:      userID,
				EntityType:  "voucher",
				EntityID:    v.ID,
				Action:      models.AuditActionCreate,
				Description: "Voucher committed: " + v.VoucherNumber,
				After:       fiber.Map{"id": v.ID, "number": v.VoucherNumber, "type": v.Type},
			}); logErr != nil {
				logger.Error(logErr, "could not write audit log")
			}
		}

		return c.Status(fiber.StatusCreated).JSON(VoucherResponse{
			ID:            v.ID,
			VoucherNumber: v.VoucherNumber,
			Type:          string(v.Type),
			Date:          v.Date.Format("2006-01-02"),
			Narration:     v.Narration,
		})
	}
}

// GET /api/vouchers?company_id=1[&limit=50]  (day book)
func ListVouchersHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := company.AuthorizeFromQuery(c)
		if err != nil {
			return err
		}

		limit := c.QueryInt("limit", 50)
		if limit < 1 || limit > 500 {
			limit = 50
		}

		rows, err := svc.DayBook(c.Context(), co.ID, limit)
		if err != nil {
			return mapCoreError(err)
		}

		resp := make([]DayBookRow, 0, len(rows))
		for _, r := range rows {
			resp = append(resp, DayBookRow{
				ID:            r.Voucher.ID,
				VoucherNumber: r.Voucher.VoucherNumber,
				Type:          string(r.Voucher.Type),
				Date:          r.Voucher.Date.Format("2006-01-02"),
				Narration:     r.Voucher.Narration,
				Total:         r.Total,
			})
		}
		return c.JSON(resp)
	}
}

// loadDetail fetches a voucher, checks company ownership and resolves names.
func loadDetail(c *fiber.Ctx, svc *ledger.Service, id uint) (models.Company, ledger.VoucherDetail, VoucherDetailResponse, error) {
	detail, err := svc.GetVoucher(c.Context(), id)
	if err != nil {
		return models.Company{}, ledger.VoucherDetail{}, VoucherDetailResponse{}, mapCoreError(err)
	}

	co, err := company.Authorize(c, detail.Voucher.CompanyID)
	if err != nil {
		return models.Company{}, ledger.VoucherDetail{}, VoucherDetailResponse{}, err
	}

	resp := VoucherDetailResponse{
		VoucherResponse: VoucherResponse{
			ID:            detail.Voucher.ID,
			VoucherNumber: detail.Voucher.VoucherNumber,
			Type:          string(detail.Voucher.Type),
			Date:          detail.Voucher.Date.Format("2006-01-02"),
			Narration:     detail.Voucher.Narration,
		},
		PartyName: detail.Voucher.PartyName,
		Entries:   make([]EntryResponse, 0, len(detail.Entries)),
		Inventory: make([]InventoryResponse, 0, len(detail.Inventory)),
	}

	ledgerIDs := make([]uint, 0, len(detail.Entries))
	for _, e := range detail.Entries {
		ledgerIDs = append(ledgerIDs, e.LedgerID)
	}
	names := make(map[uint]string, len(ledgerIDs))
	if len(ledgerIDs) > 0 {
		var rows []models.Ledger
		if err := database.DB.Where("id IN ?", ledgerIDs).Find(&rows).Error; err != nil {
			return models.Company{}, ledger.VoucherDetail{}, VoucherDetailResponse{}, fiber.NewError(fiber.StatusInternalServerError, "Could not load ledger names")
		}
		for _, l := range rows {
			names[l.ID] = l.Name
		}
	}

	for _, e := range detail.Entries {
		resp.Entries = append(resp.Entries, EntryResponse{
			LedgerID:   e.LedgerID,
			LedgerName: names[e.LedgerID],
			Amount:     e.Amount,
			Type:       string(e.Type),
		})
	}
	for _, inv := range detail.Inventory {
		resp.Inventory = append(resp.Inventory, InventoryResponse{
			StockItemID: inv.StockItemID,
			ItemName:    inv.StockItem.Name,
			HSNCode:     inv.StockItem.HSNCode,
			Quantity:    inv.Quantity,
			Rate:        inv.Rate,
			Amount:      inv.Amount,
			TaxRate:     inv.TaxRate,
		})
	}

	return co, detail, resp, nil
}

// GET /api/vouchers/:id
func GetVoucherHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id is invalid")
		}

		_, _, resp, err := loadDetail(c, svc, uint(id))
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

// GET /api/vouchers/:id/invoice  (printable PDF, Sales/Purchase)
func InvoicePDFHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id is invalid")
		}

		co, detail, resp, err := loadDetail(c, svc, uint(id))
		if err != nil {
			return err
		}

		pdf, err := renderInvoicePDF(co, detail.Voucher, resp.Entries, resp.Inventory)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not render invoice")
		}

		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", "inline; filename=\""+detail.Voucher.VoucherNumber+".pdf\"")
		return c.Send(pdf)
	}
}

// DELETE /api/vouchers/:id
func DeleteVoucherHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id is invalid")
		}

		// detail is captured before the delete for the audit trail
		co, detail, resp, err := loadDetail(c, svc, uint(id))
		if err != nil {
			return err
		}

		if err := svc.DeleteVoucher(c.Context(), uint(id)); err != nil {
			return mapCoreError(err)
		}

		if userID, err := auth.UserID(c); err == nil {
			companyID := co.ID
			if logErr := audit.WriteLog(audit.LogOptions{
				CompanyID:   &companyID,
				UserID:      userID,
				EntityType:  "voucher",
				EntityID:    detail.Voucher.ID,
				Action:      models.AuditActionDelete,
				Description: "Voucher deleted: " + detail.Voucher.VoucherNumber,
				Before:      resp,
			}); logErr != nil {
				logger.Error(logErr, "could not write audit log")
			}
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
