package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	domainRepo "github.com/hkpos/hkpos-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("TaxProfile").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Preload("TaxProfile").
		Where("id IN ?", ids).
		Find(&products).Error
	return products, err
}

func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		// LOWER/LIKE instead of ILIKE so the query runs on both Postgres and SQLite
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(sku) LIKE LOWER(?)",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.QuickOnly {
		query = query.Where("quick_key = ?", true)
	}

	if params.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("TaxProfile").
		Order("name ASC").
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) ListQuickKeys(ctx context.Context, limit int) ([]entity.Product, error) {
	var products []entity.Product
	query := r.db.WithContext(ctx).
		Where("quick_key = ? AND active = ?", true, true).
		Preload("TaxProfile").
		Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&products).Error
	return products, err
}

func (r *productRepository) All(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Preload("TaxProfile").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

// AdjustStock adds delta to the stock level, flooring the result at zero.
func (r *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("stock_qty", gorm.Expr("CASE WHEN stock_qty + ? > 0 THEN stock_qty + ? ELSE 0 END", delta, delta)).Error
}
