package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/hkpos/hkpos-api/internal/application/service"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/infrastructure/database"
	infraRepo "github.com/hkpos/hkpos-api/internal/infrastructure/repository"
	"github.com/hkpos/hkpos-api/internal/presentation/http/dto/response"
	"github.com/hkpos/hkpos-api/internal/presentation/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type noopNotifier struct{}

func (noopNotifier) SaleCommitted(*entity.Sale) {}

func newSaleHandler(t *testing.T) *handler.SaleHandler {
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

	saleRepo := infraRepo.NewSaleRepository(db)
	productRepo := infraRepo.NewProductRepository(db)
	settingsRepo := infraRepo.NewSettingsRepository(db)
	taxProfileRepo := infraRepo.NewTaxProfileRepository(db)
	pinRepo := infraRepo.NewPINRepository(db)

	calculator := service.NewTaxCalculator(taxProfileRepo)
	saleService := service.NewSaleService(saleRepo, productRepo, settingsRepo, calculator, noopNotifier{})
	authService := service.NewAuthService(pinRepo)

	return handler.NewSaleHandler(saleService, authService)
}

func TestSummaryResponseShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newSaleHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/sales/summary?date=2026-01-02", nil)

	h.Summary(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data response.DailySummaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))

	// Every tender method is listed with its label even on an empty day.
	require.Len(t, envelope.Data.Tenders, 3)
	assert.Equal(t, "cash", envelope.Data.Tenders[0].Method)
	assert.Equal(t, "Cash", envelope.Data.Tenders[0].Label)
	assert.Equal(t, "card_external", envelope.Data.Tenders[1].Method)
	assert.Equal(t, "Card", envelope.Data.Tenders[1].Label)
	assert.Equal(t, "etransfer", envelope.Data.Tenders[2].Method)
	assert.Equal(t, "E-Transfer", envelope.Data.Tenders[2].Label)
	for _, tender := range envelope.Data.Tenders {
		assert.Zero(t, tender.Total)
	}
	assert.Equal(t, "2026-01-02", envelope.Data.Date)
	assert.Zero(t, envelope.Data.SaleCount)
}
