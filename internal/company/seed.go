package company

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mally-backend/internal/models"
)

// seedGroup is one node of the default chart of accounts.
type seedGroup struct {
	name     string
	primary  models.PrimaryGroup
	children []seedGroup
}

// Tally-style defaults: root groups per primary classification with the usual
// sub-groups underneath.
var defaultGroups = []seedGroup{
	{name: "Current Assets", primary: models.PrimaryGroupAssets, children: []seedGroup{
		{name: "Cash-in-Hand", primary: models.PrimaryGroupAssets},
		{name: "Bank Accounts", primary: models.PrimaryGroupAssets},
		{name: "Sundry Debtors", primary: models.PrimaryGroupAssets},
		{name: "Stock-in-Hand", primary: models.PrimaryGroupAssets},
	}},
	{name: "Fixed Assets", primary: models.PrimaryGroupAssets},
	{name: "Capital Account", primary: models.PrimaryGroupLiabilities},
	{name: "Loans (Liability)", primary: models.PrimaryGroupLiabilities},
	{name: "Current Liabilities", primary: models.PrimaryGroupLiabilities, children: []seedGroup{
		{name: "Sundry Creditors", primary: models.PrimaryGroupLiabilities},
		{name: "Duties & Taxes", primary: models.PrimaryGroupLiabilities},
	}},
	{name: "Sales Accounts", primary: models.PrimaryGroupIncome},
	{name: "Indirect Incomes", primary: models.PrimaryGroupIncome},
	{name: "Purchase Accounts", primary: models.PrimaryGroupExpenses},
	{name: "Direct Expenses", primary: models.PrimaryGroupExpenses},
	{name: "Indirect Expenses", primary: models.PrimaryGroupExpenses},
}

// SeedDefaults creates the default group tree and starter ledgers for a newly
// created company, in one transaction.
func SeedDefaults(db *gorm.DB, companyID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		byName := make(map[string]uint)

		var create func(parentID *uint, nodes []seedGroup) error
		create = func(parentID *uint, nodes []seedGroup) error {
			for _, n := range nodes {
				g := models.Group{
					CompanyID:    companyID,
					Name:         n.name,
					PrimaryGroup: n.primary,
					ParentID:     parentID,
				}
				if err := tx.Create(&g).Error; err != nil {
					return err
				}
				byName[n.name] = g.ID
				if len(n.children) > 0 {
					pid := g.ID
					if err := create(&pid, n.children); err != nil {
						return err
					}
				}
			}
			return nil
		}
		if err := create(nil, defaultGroups); err != nil {
			return err
		}

		// Starter ledgers every company gets out of the box.
		starters := []models.Ledger{
			{CompanyID: companyID, GroupID: byName["Cash-in-Hand"], Name: "Cash"},
			{CompanyID: companyID, GroupID: byName["Sales Accounts"], Name: "Sales"},
			{CompanyID: companyID, GroupID: byName["Purchase Accounts"], Name: "Purchases"},
		}
		for i := range starters {
			starters[i].OpeningBalance = decimal.Zero
			starters[i].OpeningBalanceType = models.BalanceTypeDr
			if err := tx.Create(&starters[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
