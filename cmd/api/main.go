package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/hkpos/hkpos-api/internal/application/service"
	"github.com/hkpos/hkpos-api/internal/config"
	"github.com/hkpos/hkpos-api/internal/infrastructure/database"
	"github.com/hkpos/hkpos-api/internal/infrastructure/repository"
	"github.com/hkpos/hkpos-api/internal/presentation/http/handler"
	"github.com/hkpos/hkpos-api/internal/presentation/http/routes"
	"github.com/hkpos/hkpos-api/pkg/printer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg.Receipt.CounterStart); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	taxProfileRepo := repository.NewTaxProfileRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	pinRepo := repository.NewPINRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		thermalPrinter = printer.NewNullPrinter()
	}

	// Initialize services
	calculator := service.NewTaxCalculator(taxProfileRepo)
	printerService := service.NewPrinterService(thermalPrinter, saleRepo, settingsRepo, cfg.Printer.Type, cfg.Receipt.Width)
	saleService := service.NewSaleService(saleRepo, productRepo, settingsRepo, calculator, printerService)
	productService := service.NewProductService(productRepo, taxProfileRepo)
	taxProfileService := service.NewTaxProfileService(taxProfileRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	authService := service.NewAuthService(pinRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Sale:       handler.NewSaleHandler(saleService, authService),
		Product:    handler.NewProductHandler(productService),
		TaxProfile: handler.NewTaxProfileHandler(taxProfileService),
		Settings:   handler.NewSettingsHandler(settingsService),
		Auth:       handler.NewAuthHandler(authService),
		Printer:    handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
