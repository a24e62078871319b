package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hkpos/hkpos-api/internal/application/service"
	"github.com/hkpos/hkpos-api/internal/domain/repository"
	"github.com/hkpos/hkpos-api/internal/presentation/http/dto/request"
	"github.com/hkpos/hkpos-api/internal/presentation/http/dto/response"
	"github.com/hkpos/hkpos-api/pkg/pagination"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products with search and pagination
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:     filter.Search,
		QuickOnly:  filter.QuickOnly,
		ActiveOnly: filter.ActiveOnly,
	}

	products, total, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(products,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// QuickKeys handles listing the register's quick-key grid
func (h *ProductHandler) QuickKeys(c *gin.Context) {
	products, err := h.productService.ListQuickKeys(c.Request.Context(), 0)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Quick keys retrieved successfully", products)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), toProductInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, toProductInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product deleted successfully", nil)
}

// AdjustStock handles a manual stock correction
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), id, req.Delta)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock adjusted successfully", product)
}

// ExportCSV streams the catalog as a CSV download
func (h *ProductHandler) ExportCSV(c *gin.Context) {
	filename := fmt.Sprintf("products-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)

	if err := h.productService.ExportCSV(c.Request.Context(), c.Writer); err != nil {
		response.Error(c, err)
		return
	}
}

// ImportCSV imports catalog rows from an uploaded CSV file
func (h *ProductHandler) ImportCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, "CSV file is required (multipart field 'file')")
		return
	}
	defer file.Close()

	result, err := h.productService.ImportCSV(c.Request.Context(), file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Import completed", result)
}

func toProductInput(req *request.ProductRequest) *service.ProductInput {
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &service.ProductInput{
		SKU:          req.SKU,
		Name:         req.Name,
		Price:        req.Price,
		Cost:         req.Cost,
		StockQty:     req.StockQty,
		QuickKey:     req.QuickKey,
		TaxProfileID: req.TaxProfileID,
		Active:       active,
	}
}
