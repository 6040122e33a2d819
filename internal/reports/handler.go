package reports

import (
	"errors"

	"mally-backend/internal/company"
	"mally-backend/internal/ledger"

	"github.com/gofiber/fiber/v2"
)

// mapCoreError: integrity violations surface as 409 so a wrong total is never
// silently rendered; everything else from the store is a 500.
func mapCoreError(err error) error {
	if ledger.IsValidation(err) {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	var integrity *ledger.IntegrityError
	if errors.As(err, &integrity) {
		return fiber.NewError(fiber.StatusConflict, integrity.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}

// GET /api/reports/trial-balance?company_id=1
func TrialBalanceHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := company.AuthorizeFromQuery(c)
		if err != nil {
			return err
		}

		tb, err := svc.TrialBalance(c.Context(), co.ID)
		if err != nil {
			return mapCoreError(err)
		}
		return c.JSON(tb)
	}
}

// GET /api/reports/balance-sheet?company_id=1
func BalanceSheetHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := company.AuthorizeFromQuery(c)
		if err != nil {
			return err
		}

		bs, err := svc.BalanceSheet(c.Context(), co.ID)
		if err != nil {
			return mapCoreError(err)
		}
		return c.JSON(bs)
	}
}

// GET /api/reports/profit-loss?company_id=1
func ProfitLossHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := company.AuthorizeFromQuery(c)
		if err != nil {
			return err
		}

		pl, err := svc.ProfitLoss(c.Context(), co.ID)
		if err != nil {
			return mapCoreError(err)
		}
		return c.JSON(pl)
	}
}

// GET /api/reports/group-balances?company_id=1
// Raw rolled-up balance per group id, deeper levels included; the statement
// endpoints above render only root groups.
func GroupBalancesHandler(svc *ledger.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		co, err := company.AuthorizeFromQuery(c)
		if err != nil {
			return err
		}

		balances, err := svc.GroupBalances(c.Context(), co.ID)
		if err != nil {
			return mapCoreError(err)
		}
		return c.JSON(balances)
	}
}
