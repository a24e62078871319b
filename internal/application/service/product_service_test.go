package service_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/hkpos/hkpos-api/internal/application/service"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/domain/repository"
	infraRepo "github.com/hkpos/hkpos-api/internal/infrastructure/repository"
	"github.com/hkpos/hkpos-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(db *gorm.DB) *service.ProductService {
	return service.NewProductService(
		infraRepo.NewProductRepository(db),
		infraRepo.NewTaxProfileRepository(db),
	)
}

func TestProductCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	sku := "WID-1"
	created, err := svc.CreateProduct(ctx, &service.ProductInput{
		SKU:      &sku,
		Name:     "Widget",
		Price:    4.99,
		StockQty: decimal.NewFromInt(5),
		Active:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(499), created.Price)

	t.Run("duplicate SKU is rejected", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, &service.ProductInput{SKU: &sku, Name: "Other", Active: true})
		require.Error(t, err)
	})

	t.Run("search finds by name", func(t *testing.T) {
		products, total, err := svc.ListProducts(ctx, &repository.ProductFilterParams{
			Pagination: pagination.DefaultPagination(),
			Search:     "widg",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, products, 1)
		assert.Equal(t, "Widget", products[0].Name)
	})

	t.Run("manual stock adjustment floors at zero", func(t *testing.T) {
		product, err := svc.AdjustStock(ctx, created.ID, decimal.NewFromInt(-8))
		require.NoError(t, err)
		assert.True(t, product.StockQty.IsZero())
	})
}

func TestProductCSVRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)
	ctx := context.Background()

	profile := createProfile(t, db, "Import GST", entity.RateMap{"GST": 0.05})

	csvIn := strings.Join([]string{
		"sku,name,price,cost,stock_qty,quick_key,tax_profile,active",
		"CBL-1,Cable,9.99,4.50,40,true,Import GST,true",
		"ADP-1,Adapter,19.99,8.00,12,false,,true",
	}, "\n")

	result, err := svc.ImportCSV(ctx, strings.NewReader(csvIn))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Zero(t, result.Updated)
	assert.Empty(t, result.Errors)

	cable, err := infraRepo.NewProductRepository(db).GetBySKU(ctx, "CBL-1")
	require.NoError(t, err)
	require.NotNil(t, cable)
	assert.Equal(t, int64(999), cable.Price)
	require.NotNil(t, cable.TaxProfileID)
	assert.Equal(t, profile.ID, *cable.TaxProfileID)

	t.Run("re-import by SKU updates instead of duplicating", func(t *testing.T) {
		updated := strings.Join([]string{
			"sku,name,price,cost,stock_qty,quick_key,tax_profile,active",
			"CBL-1,Cable Pro,12.99,5.00,35,true,Import GST,true",
		}, "\n")

		result, err := svc.ImportCSV(ctx, strings.NewReader(updated))
		require.NoError(t, err)
		assert.Zero(t, result.Created)
		assert.Equal(t, 1, result.Updated)

		cable, err := infraRepo.NewProductRepository(db).GetBySKU(ctx, "CBL-1")
		require.NoError(t, err)
		assert.Equal(t, "Cable Pro", cable.Name)
		assert.Equal(t, int64(1299), cable.Price)
	})

	t.Run("bad rows are reported, not fatal", func(t *testing.T) {
		bad := strings.Join([]string{
			"sku,name,price,cost,stock_qty,quick_key,tax_profile,active",
			",Broken,not-a-price,0,0,false,,true",
			"OK-1,Fine,1.00,0,0,false,,true",
		}, "\n")

		result, err := svc.ImportCSV(ctx, strings.NewReader(bad))
		require.NoError(t, err)
		assert.Equal(t, 1, result.Created)
		assert.Len(t, result.Errors, 1)
	})

	t.Run("export contains imported rows", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, svc.ExportCSV(ctx, &buf))
		out := buf.String()
		assert.Contains(t, out, "CBL-1,Cable Pro,12.99")
		assert.Contains(t, out, "Import GST")
	})
}

func TestSeededCatalog(t *testing.T) {
	db := newTestDB(t)

	// The first-run catalog keeps its SKUs so a CSV export/import cycle on a
	// fresh install stays keyed.
	var products []entity.Product
	require.NoError(t, db.Order("sku").Find(&products).Error)
	require.Len(t, products, 3)

	skus := make([]string, len(products))
	for i, p := range products {
		require.NotNil(t, p.SKU)
		skus[i] = *p.SKU
	}
	assert.Equal(t, []string{"ACC-USB-C", "SRV-PHOTO", "SRV-REPAIR"}, skus)
}
