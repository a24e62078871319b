package database

import (
	"fmt"
	"log"

	"github.com/hkpos/hkpos-api/internal/config"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog entities
		&entity.TaxProfile{},
		&entity.Product{},

		// Transaction entities
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Payment{},
		&entity.Refund{},
		&entity.ReceiptCounter{},

		// System entities
		&entity.StoreSettings{},
		&entity.ActionPIN{},
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (settings, PINs,
// tax profiles, sample products, receipt counter)
func SeedDefaultData(db *gorm.DB, counterStart int64) error {
	log.Println("Seeding default data...")

	// Single settings row
	var settings entity.StoreSettings
	if err := db.First(&settings, 1).Error; err != nil {
		settings = entity.StoreSettings{ID: 1, BusinessName: "HK POS", RoundCash: false}
		if err := db.Create(&settings).Error; err != nil {
			log.Printf("Warning: failed to create store settings: %v", err)
		}
	}

	// Receipt counter, created once and only ever advanced afterwards
	var counter entity.ReceiptCounter
	if err := db.First(&counter, 1).Error; err != nil {
		counter = entity.ReceiptCounter{ID: 1, Next: counterStart}
		if err := db.Create(&counter).Error; err != nil {
			log.Printf("Warning: failed to create receipt counter: %v", err)
		}
	}

	// Default PINs for gated register actions
	defaultPIN := viper.GetString("DEFAULT_PIN")
	if defaultPIN == "" {
		defaultPIN = "1234"
	}
	for _, action := range []string{"discount", "refund"} {
		var existing entity.ActionPIN
		if err := db.Where("action = ?", action).First(&existing).Error; err != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(defaultPIN), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash default PIN: %v", err)
				continue
			}
			if err := db.Create(&entity.ActionPIN{Action: action, PINHash: string(hash)}).Error; err != nil {
				log.Printf("Warning: failed to create %s PIN: %v", action, err)
			}
		}
	}

	// Default tax profiles
	profiles := []entity.TaxProfile{
		{Name: "GST 5%", Rates: entity.RateMap{"GST": 0.05}},
		{Name: "GST+PST 12%", Rates: entity.RateMap{"GST": 0.05, "PST": 0.07}},
	}
	profileIDs := make(map[string]*entity.TaxProfile, len(profiles))
	for i := range profiles {
		var existing entity.TaxProfile
		if err := db.Where("name = ?", profiles[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&profiles[i]).Error; err != nil {
				log.Printf("Warning: failed to create tax profile %s: %v", profiles[i].Name, err)
				continue
			}
			profileIDs[profiles[i].Name] = &profiles[i]
		} else {
			profileIDs[profiles[i].Name] = &existing
		}
	}

	// Sample products, skipped when the catalog already has rows
	var productCount int64
	db.Model(&entity.Product{}).Count(&productCount)
	if productCount == 0 {
		type sample struct {
			sku     string
			name    string
			price   float64
			profile string
			stock   int64
			quick   bool
		}
		samples := []sample{
			{"SRV-PHOTO", "Passport Photo", 14.99, "GST 5%", 0, true},
			{"SRV-REPAIR", "Phone Repair (Basic)", 49.99, "GST+PST 12%", 0, true},
			{"ACC-USB-C", "USB-C Cable", 9.99, "GST+PST 12%", 40, true},
		}
		for _, s := range samples {
			sku := s.sku
			p := entity.Product{
				SKU:      &sku,
				Name:     s.name,
				QuickKey: s.quick,
				Active:   true,
			}
			p.SetPriceFromFloat(s.price)
			p.StockQty = decimal.NewFromInt(s.stock)
			if profile, ok := profileIDs[s.profile]; ok && profile != nil {
				id := profile.ID
				p.TaxProfileID = &id
			}
			if err := db.Create(&p).Error; err != nil {
				log.Printf("Warning: failed to create sample product %s: %v", s.name, err)
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
