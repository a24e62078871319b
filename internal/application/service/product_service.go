package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/domain/repository"
	"github.com/hkpos/hkpos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo    repository.ProductRepository
	taxProfileRepo repository.TaxProfileRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	taxProfileRepo repository.TaxProfileRepository,
) *ProductService {
	return &ProductService{
		productRepo:    productRepo,
		taxProfileRepo: taxProfileRepo,
	}
}

// ProductInput represents the create/update product input
type ProductInput struct {
	SKU          *string
	Name         string
	Price        float64
	Cost         float64
	StockQty     decimal.Decimal
	QuickKey     bool
	TaxProfileID *uuid.UUID
	Active       bool
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}
	if input.SKU != nil && *input.SKU != "" {
		existing, err := s.productRepo.GetBySKU(ctx, *input.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Product SKU already exists")
		}
	}
	if err := s.validateTaxProfile(ctx, input.TaxProfileID); err != nil {
		return nil, err
	}

	product := &entity.Product{
		SKU:          normalizeSKU(input.SKU),
		Name:         input.Name,
		StockQty:     input.StockQty,
		QuickKey:     input.QuickKey,
		TaxProfileID: input.TaxProfileID,
		Active:       input.Active,
	}
	product.SetPriceFromFloat(input.Price)
	product.SetCostFromFloat(input.Cost)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *ProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if input.SKU != nil && *input.SKU != "" {
		existing, err := s.productRepo.GetBySKU(ctx, *input.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperror.NewConflictError("Product SKU already exists")
		}
	}
	if err := s.validateTaxProfile(ctx, input.TaxProfileID); err != nil {
		return nil, err
	}

	product.SKU = normalizeSKU(input.SKU)
	product.Name = input.Name
	product.StockQty = input.StockQty
	product.QuickKey = input.QuickKey
	product.TaxProfileID = input.TaxProfileID
	product.Active = input.Active
	product.SetPriceFromFloat(input.Price)
	product.SetCostFromFloat(input.Cost)

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, id)
}

// DeleteProduct soft deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params)
}

// ListQuickKeys lists active quick-key products for the register grid
func (s *ProductService) ListQuickKeys(ctx context.Context, limit int) ([]entity.Product, error) {
	return s.productRepo.ListQuickKeys(ctx, limit)
}

// AdjustStock applies a manual stock correction
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	if err := s.productRepo.AdjustStock(ctx, id, delta); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, id)
}

var csvHeader = []string{"sku", "name", "price", "cost", "stock_qty", "quick_key", "tax_profile", "active"}

// ExportCSV writes the full catalog as CSV. Tax profiles are referenced by
// name so the file round-trips between stores.
func (s *ProductService) ExportCSV(ctx context.Context, w io.Writer) error {
	products, err := s.productRepo.All(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range products {
		sku := ""
		if p.SKU != nil {
			sku = *p.SKU
		}
		profileName := ""
		if p.TaxProfile != nil {
			profileName = p.TaxProfile.Name
		}
		record := []string{
			sku,
			p.Name,
			fmt.Sprintf("%.2f", float64(p.Price)/100),
			fmt.Sprintf("%.2f", float64(p.Cost)/100),
			p.StockQty.String(),
			strconv.FormatBool(p.QuickKey),
			profileName,
			strconv.FormatBool(p.Active),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ImportResult reports the outcome of a CSV import.
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors,omitempty"`
}

// ImportCSV reads catalog rows keyed by SKU: rows matching an existing SKU
// update that product, the rest create new ones. Rows without a SKU always
// create. Bad rows are reported and skipped, never abort the import.
func (s *ProductService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, apperror.NewBadRequestError("CSV file is empty or unreadable")
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["name"]; !ok {
		return nil, apperror.NewBadRequestError("CSV file must have a name column")
	}

	profiles, err := s.taxProfileRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	profileByName := make(map[string]uuid.UUID, len(profiles))
	for _, p := range profiles {
		profileByName[p.Name] = p.ID
	}

	result := &ImportResult{}
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
			continue
		}

		field := func(name string) string {
			if i, ok := col[name]; ok && i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		name := field("name")
		if name == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: missing name", line))
			continue
		}
		price, err := strconv.ParseFloat(field("price"), 64)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("line %d: bad price %q", line, field("price")))
			continue
		}
		cost, _ := strconv.ParseFloat(field("cost"), 64)
		stock, err := decimal.NewFromString(field("stock_qty"))
		if err != nil {
			stock = decimal.Zero
		}
		quickKey, _ := strconv.ParseBool(field("quick_key"))
		active := true
		if v := field("active"); v != "" {
			active, _ = strconv.ParseBool(v)
		}

		var profileID *uuid.UUID
		if profileName := field("tax_profile"); profileName != "" {
			if id, ok := profileByName[profileName]; ok {
				profileID = &id
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: unknown tax profile %q", line, profileName))
			}
		}

		sku := field("sku")
		var existing *entity.Product
		if sku != "" {
			existing, err = s.productRepo.GetBySKU(ctx, sku)
			if err != nil {
				return result, err
			}
		}

		if existing != nil {
			existing.Name = name
			existing.StockQty = stock
			existing.QuickKey = quickKey
			existing.TaxProfileID = profileID
			existing.Active = active
			existing.SetPriceFromFloat(price)
			existing.SetCostFromFloat(cost)
			if err := s.productRepo.Update(ctx, existing); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
				continue
			}
			result.Updated++
		} else {
			product := &entity.Product{
				Name:         name,
				StockQty:     stock,
				QuickKey:     quickKey,
				TaxProfileID: profileID,
				Active:       active,
			}
			if sku != "" {
				product.SKU = &sku
			}
			product.SetPriceFromFloat(price)
			product.SetCostFromFloat(cost)
			if err := s.productRepo.Create(ctx, product); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("line %d: %v", line, err))
				continue
			}
			result.Created++
		}
	}

	return result, nil
}

func (s *ProductService) validateTaxProfile(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	profile, err := s.taxProfileRepo.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if profile == nil {
		return apperror.NewNotFoundError("Tax profile")
	}
	return nil
}

func normalizeSKU(sku *string) *string {
	if sku == nil || *sku == "" {
		return nil
	}
	return sku
}
