package database

import (
	"mally-backend/internal/config"
	"mally-backend/internal/logger"
	"mally-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		logger.Fatal(err, "could not connect to database")
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Group{},
		&models.Ledger{},
		&models.Unit{},
		&models.StockItem{},
		&models.Voucher{},
		&models.VoucherEntry{},
		&models.InventoryEntry{},
		&models.AuditLog{},
	)
	if err != nil {
		logger.Fatal(err, "AutoMigrate failed")
	}

	logger.Info("database connected, migration complete")
}
