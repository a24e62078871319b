package service_test

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/infrastructure/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database, migrated and seeded the same
// way the server does it at startup.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A pooled second connection to :memory: would see its own empty
	// database, so pin the pool to one connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedDefaultData(db, 1000))
	return db
}

func createProfile(t *testing.T, db *gorm.DB, name string, rates entity.RateMap) *entity.TaxProfile {
	t.Helper()
	profile := &entity.TaxProfile{Name: name, Rates: rates}
	require.NoError(t, db.WithContext(context.Background()).Create(profile).Error)
	return profile
}

func createProduct(t *testing.T, db *gorm.DB, name string, price float64, stock int64, profileID *uuid.UUID) *entity.Product {
	t.Helper()
	product := &entity.Product{
		Name:         name,
		StockQty:     decimal.NewFromInt(stock),
		TaxProfileID: profileID,
		Active:       true,
	}
	product.SetPriceFromFloat(price)
	require.NoError(t, db.WithContext(context.Background()).Create(product).Error)
	return product
}

func stockOf(t *testing.T, db *gorm.DB, id uuid.UUID) decimal.Decimal {
	t.Helper()
	var product entity.Product
	require.NoError(t, db.First(&product, "id = ?", id).Error)
	return product.StockQty
}

func counterNext(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var counter entity.ReceiptCounter
	require.NoError(t, db.First(&counter, 1).Error)
	return counter.Next
}
