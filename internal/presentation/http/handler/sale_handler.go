package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hkpos/hkpos-api/internal/application/service"
	"github.com/hkpos/hkpos-api/internal/domain/entity"
	"github.com/hkpos/hkpos-api/internal/domain/enum"
	"github.com/hkpos/hkpos-api/internal/presentation/http/dto/request"
	"github.com/hkpos/hkpos-api/internal/presentation/http/dto/response"
)

// SaleHandler handles checkout, refund and summary HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
	authService *service.AuthService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService, authService *service.AuthService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		authService: authService,
	}
}

// Checkout handles POST /sales
func (h *SaleHandler) Checkout(c *gin.Context) {
	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	input := &service.CheckoutInput{
		Lines:    make([]service.SaleLineInput, len(req.Items)),
		Payments: make([]service.PaymentInput, len(req.Payments)),
	}
	for i, item := range req.Items {
		var rates entity.RateMap
		if item.Rates != nil {
			rates = entity.RateMap(item.Rates)
		}
		input.Lines[i] = service.SaleLineInput{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Rates:     rates,
		}
	}
	for i, p := range req.Payments {
		input.Payments[i] = service.PaymentInput{
			Method: p.Method,
			Amount: p.Amount,
		}
	}

	sale, err := h.saleService.Checkout(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", sale)
}

// Get handles GET /sales/:receipt_no
func (h *SaleHandler) Get(c *gin.Context) {
	receiptNo, err := strconv.ParseInt(c.Param("receipt_no"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid receipt number")
		return
	}

	sale, err := h.saleService.GetByReceiptNo(c.Request.Context(), receiptNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Refund handles POST /sales/:receipt_no/refund. The refund action is PIN
// gated; the engine itself does not know about PINs.
func (h *SaleHandler) Refund(c *gin.Context) {
	receiptNo, err := strconv.ParseInt(c.Param("receipt_no"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid receipt number")
		return
	}

	var req request.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.CheckPIN(c.Request.Context(), "refund", req.PIN); err != nil {
		response.Error(c, err)
		return
	}

	sale, err := h.saleService.Refund(c.Request.Context(), receiptNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale refunded successfully", sale)
}

// Summary handles GET /sales/summary?date=YYYY-MM-DD
func (h *SaleHandler) Summary(c *gin.Context) {
	var filter request.SummaryFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "date query parameter is required (YYYY-MM-DD)")
		return
	}

	result, err := h.saleService.DailySummary(c.Request.Context(), filter.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary := &response.DailySummaryResponse{
		Date:       filter.Date,
		SaleCount:  result.Count,
		SubTotal:   float64(result.SubTotal) / 100,
		TaxTotal:   float64(result.TaxTotal) / 100,
		GrandTotal: float64(result.GrandTotal) / 100,
		Tenders:    make([]response.TenderTotal, 0, len(enum.AllPaymentMethods)),
	}
	for _, method := range enum.AllPaymentMethods {
		summary.Tenders = append(summary.Tenders, response.TenderTotal{
			Method: string(method),
			Label:  method.Label(),
			Total:  float64(result.Tenders[method]) / 100,
		})
	}

	response.OK(c, "Daily summary retrieved successfully", summary)
}
