package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for catalog data access
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	ListQuickKeys(ctx context.Context, limit int) ([]entity.Product, error)
	All(ctx context.Context) ([]entity.Product, error)
	// AdjustStock adds delta to the product's stock level, flooring at zero.
	// Manual corrections only; checkout and refund adjust stock inside their
	// own transactions.
	AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
}

// ProductFilterParams contains filtering parameters for catalog queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	QuickOnly  bool
	ActiveOnly bool
}
