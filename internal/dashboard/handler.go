package dashboard

import (
	"time"

	"mally-backend/internal/company"
	"mally-backend/internal/database"
	"mally-backend/internal/ledger"
	"mally-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type RecentVoucher struct {
	ID            uint   `json:"id"`
	VoucherNumber string `json:"voucher_number"`
	Type          string `json:"type"`
	Date          string `json:"date"`
}

type StatsResponse struct {
	RecentVouchers []RecentVoucher `json:"recent_vouchers"`
	CashBalance    decimal.Decimal `json:"cash_balance"`
	BankBalance    decimal.Decimal `json:"bank_balance"`
	SalesThisMonth decimal.Decimal `json:"sales_this_month"`
}

// GET /api/dashboard/stats?company_id=1
func StatsHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := company.AuthorizeFromQuery(c)
		if err != nil {
			return err
		}

		// 1) recent vouchers
		var recent []models.Voucher
		if err := database.DB.
			Where("company_id = ?", co.ID).
			Order("created_at desc").
			Limit(5).
			Find(&recent).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load recent vouchers")
		}

		resp := StatsResponse{
			RecentVouchers: make([]RecentVoucher, 0, len(recent)),
			CashBalance:    decimal.Zero,
			BankBalance:    decimal.Zero,
			SalesThisMonth: decimal.Zero,
		}
		for _, v := range recent {
			resp.RecentVouchers = append(resp.RecentVouchers, RecentVoucher{
				ID:            v.ID,
				VoucherNumber: v.VoucherNumber,
				Type:          string(v.Type),
				Date:          v.Date.Format("2006-01-02"),
			})
		}

		// 2) cash balance: every ledger whose name contains "Cash"
		var cashLedgers []models.Ledger
		if err := database.DB.
			Where("company_id = ? AND name ILIKE ?", co.ID, "%Cash%").
			Find(&cashLedgers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load cash ledgers")
		}
		for _, l := range cashLedgers {
			bal, err := svc.LedgerBalance(c.Context(), l.ID)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not compute cash balance")
			}
			resp.CashBalance = resp.CashBalance.Add(bal)
		}

		// 3) bank balance: rolled-up "Bank Accounts" group
		var bankGroup models.Group
		if err := database.DB.
			First(&bankGroup, "company_id = ? AND name = ?", co.ID, "Bank Accounts").Error; err == nil {
			balances, err := svc.GroupBalances(c.Context(), co.ID)
			if err == nil {
				resp.BankBalance = balances[bankGroup.ID]
			}
		}

		// 4) sales this month: Cr legs of Sales vouchers since the 1st
		loc := time.Now().Location()
		now := time.Now()
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)

		var salesTotal decimal.NullDecimal
		if err := database.DB.
			Model(&models.VoucherEntry{}).
			Select("COALESCE(SUM(voucher_entries.amount), 0)").
			Joins("JOIN vouchers ON vouchers.id = voucher_entries.voucher_id").
			Where("vouchers.company_id = ? AND vouchers.type = ? AND vouchers.date >= ? AND voucher_entries.type = ?",
				co.ID, models.VoucherTypeSales, startOfMonth, models.BalanceTypeCr).
			Scan(&salesTotal).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not compute monthly sales")
		}
		if salesTotal.Valid {
			resp.SalesThisMonth = salesTotal.Decimal
		}

		return c.JSON(resp)
	}
}
