package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-billing/internal/config"
	"go-inventory-billing/internal/handler"
	"go-inventory-billing/internal/middleware"
	"go-inventory-billing/internal/repository"
	"go-inventory-billing/internal/service"
	"go-inventory-billing/internal/ws"
	"go-inventory-billing/pkg/database"
	"go-inventory-billing/pkg/jwt"
	applogger "go-inventory-billing/pkg/logger"
	"go-inventory-billing/pkg/validator"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load config
	cfg := config.Load()
	log := applogger.New(cfg.Log.Level, cfg.Log.Format)
	validator.SetPhoneRegion(cfg.PhoneRegion)

	// 2. Setup storage
	store, err := openStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open store")
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	tokens := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpirationHours)*time.Hour)
	reorderer := service.NewReorderer(cfg.Reorder, log)
	ledger := service.NewStockLedger(reorderer)

	stockService := service.NewStockService(store, ledger, reorderer.Threshold(), wsHub, log)
	supplierService := service.NewSupplierService(store, log)
	purchaseService := service.NewPurchaseService(store, ledger, wsHub, log)
	saleService := service.NewSaleService(store, ledger, wsHub, log)
	reportService := service.NewReportService(store, reorderer.Threshold())
	authService := service.NewAuthService(store.Users(), tokens, log)
	maintenanceService := service.NewMaintenanceService(store, wsHub, log)

	handlers := handler.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Stock:       handler.NewStockHandler(stockService, cfg.PageSize),
		Supplier:    handler.NewSupplierHandler(supplierService, cfg.PageSize),
		Purchase:    handler.NewPurchaseHandler(purchaseService, supplierService, cfg.PageSize),
		Sale:        handler.NewSaleHandler(saleService, reportService, cfg.PageSize),
		Dashboard:   handler.NewDashboardHandler(reportService),
		Maintenance: handler.NewMaintenanceHandler(maintenanceService),
	}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		UnescapePath: true, // product names in /sales/products/:name may contain spaces
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))

	// 6. Routes
	api := app.Group("/api/v1")
	handler.Register(api, handlers, middleware.RequireAuth(store.Users(), tokens))

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 7. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Panic("Listen failed")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	wsHub.Stop()
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}

// openStore connects to the configured database and migrates it.
func openStore(cfg *config.Config, log *logrus.Logger) (repository.Store, error) {
	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	// Auto Migrate (use a dedicated migration tool in production)
	if err := repository.AutoMigrate(db); err != nil {
		return nil, err
	}
	return repository.NewStore(db), nil
}
