package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/minhphamdev/banle-api/internal/config"
	"github.com/minhphamdev/banle-api/internal/domain/entity"
	"github.com/minhphamdev/banle-api/pkg/utils"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&entity.User{},
		&entity.ShopProfile{},

		// Catalog
		&entity.Product{},
		&entity.Promotion{},
		&entity.Voucher{},

		// Customers and debt ledger
		&entity.Customer{},
		&entity.DebtEntry{},
		&entity.Redemption{},

		// Settlement
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.PromotionSnapshot{},

		// System
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Seed ensures the default admin account and the shop profile row exist
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		hash, err := utils.HashPassword("admin123")
		if err != nil {
			return err
		}
		admin := &entity.User{
			Username:     "admin",
			PasswordHash: hash,
			FullName:     "Administrator",
			Role:         "admin",
			Active:       true,
		}
		if err := db.Create(admin).Error; err != nil {
			return err
		}
		log.Println("Seeded default admin account")
	}

	if err := db.Model(&entity.ShopProfile{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		profile := &entity.ShopProfile{Name: "My Shop"}
		if err := db.Create(profile).Error; err != nil {
			return err
		}
		log.Println("Seeded shop profile")
	}
	return nil
}
