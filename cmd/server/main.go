package main

import (
	"strings"

	"mally-backend/internal/audit"
	"mally-backend/internal/auth"
	"mally-backend/internal/company"
	"mally-backend/internal/config"
	"mally-backend/internal/dashboard"
	"mally-backend/internal/database"
	"mally-backend/internal/inventory"
	"mally-backend/internal/ledger"
	"mally-backend/internal/logger"
	"mally-backend/internal/masters"
	"mally-backend/internal/reports"
	"mally-backend/internal/storage/gormstore"
	"mally-backend/internal/vouchers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Fatal(err, "invalid log configuration")
	}
	database.Init(cfg)

	svc := ledger.NewService(gormstore.New(database.DB))

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			logger.Error(err, "unexpected error")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	// CORS origins arrive as a comma separated string
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Companies
	protected.Post("/companies", company.CreateCompanyHandler())
	protected.Get("/companies", company.ListCompaniesHandler())
	protected.Get("/companies/:id", company.GetCompanyHandler())

	// Account masters
	protected.Get("/groups", masters.ListGroupsHandler())
	protected.Post("/groups", masters.CreateGroupHandler())
	protected.Get("/ledgers", masters.ListLedgersHandler())
	protected.Post("/ledgers", masters.CreateLedgerHandler())
	protected.Get("/ledgers/:id/balance", masters.LedgerBalanceHandler(svc))

	// Stock masters
	protected.Post("/units", inventory.CreateUnitHandler())
	protected.Get("/units", inventory.ListUnitsHandler())
	protected.Post("/stock-items", inventory.CreateStockItemHandler())
	protected.Get("/stock-items", inventory.ListStockItemsHandler())

	// Vouchers
	protected.Post("/vouchers", vouchers.CreateVoucherHandler(svc))
	protected.Get("/vouchers", vouchers.ListVouchersHandler(svc))
	protected.Get("/vouchers/:id", vouchers.GetVoucherHandler(svc))
	protected.Get("/vouchers/:id/invoice", vouchers.InvoicePDFHandler(svc))
	protected.Delete("/vouchers/:id", vouchers.DeleteVoucherHandler(svc))

	// Reports
	protected.Get("/reports/trial-balance", reports.TrialBalanceHandler(svc))
	protected.Get("/reports/balance-sheet", reports.BalanceSheetHandler(svc))
	protected.Get("/reports/profit-loss", reports.ProfitLossHandler(svc))
	protected.Get("/reports/group-balances", reports.GroupBalancesHandler(svc))

	// Dashboard
	protected.Get("/dashboard/stats", dashboard.StatsHandler(svc))

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	logger.Info("Server listening on port " + cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.Fatal(err, "server stopped")
	}
}
