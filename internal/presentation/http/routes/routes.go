package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hkpos/hkpos-api/internal/config"
	domainRepo "github.com/hkpos/hkpos-api/internal/domain/repository"
	"github.com/hkpos/hkpos-api/internal/presentation/http/handler"
	"github.com/hkpos/hkpos-api/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Sale       *handler.SaleHandler
	Product    *handler.ProductHandler
	TaxProfile *handler.TaxProfileHandler
	Settings   *handler.SettingsHandler
	Auth       *handler.AuthHandler
	Printer    *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Per-client rate limiter
		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		v1.Use(rateLimiter.Middleware())

		registerSaleRoutes(v1, h, deps)
		registerProductRoutes(v1, h)
		registerTaxProfileRoutes(v1, h)
		registerSettingsRoutes(v1, h)
		registerAuthRoutes(v1, h)
		registerPrinterRoutes(v1, h)
	}

	return router
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := v1.Group("/sales")
	{
		// Checkout uses idempotency middleware so a retried request cannot
		// ring the same sale twice
		sales.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Sale.Checkout)
		sales.GET("/summary", h.Sale.Summary)
		sales.GET("/:receipt_no", h.Sale.Get)
		sales.POST("/:receipt_no/refund", h.Sale.Refund)
	}
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/quick-keys", h.Product.QuickKeys)
		products.GET("/export", h.Product.ExportCSV)
		products.POST("/import", h.Product.ImportCSV)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
		products.POST("/:id/stock", h.Product.AdjustStock)
	}
}

func registerTaxProfileRoutes(v1 *gin.RouterGroup, h *Handlers) {
	profiles := v1.Group("/tax-profiles")
	{
		profiles.GET("", h.TaxProfile.List)
		profiles.POST("", h.TaxProfile.Create)
		profiles.GET("/:id", h.TaxProfile.Get)
		profiles.PUT("/:id", h.TaxProfile.Update)
		profiles.DELETE("/:id", h.TaxProfile.Delete)
	}
}

func registerSettingsRoutes(v1 *gin.RouterGroup, h *Handlers) {
	v1.GET("/settings", h.Settings.Get)
	v1.PUT("/settings", h.Settings.Update)
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/pin/check", h.Auth.CheckPIN)
		auth.POST("/pin", h.Auth.SetPIN)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
		printerGroup.POST("/drawer", h.Printer.OpenDrawer)
		printerGroup.POST("/receipt", h.Printer.PrintReceipt)
	}
}
