package handler

import "github.com/gofiber/fiber/v2"

// Handlers bundles every handler mounted under /api/v1.
type Handlers struct {
	Auth        *AuthHandler
	Stock       *StockHandler
	Supplier    *SupplierHandler
	Purchase    *PurchaseHandler
	Sale        *SaleHandler
	Dashboard   *DashboardHandler
	Maintenance *MaintenanceHandler
}

// Register mounts the API on api. requireAuth guards everything except signup and login.
func Register(api fiber.Router, h Handlers, requireAuth fiber.Handler) {
	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/login", h.Auth.Login)
	auth.Post("/logout", requireAuth, h.Auth.Logout)
	auth.Get("/me", requireAuth, h.Auth.Me)
	auth.Post("/change-password", requireAuth, h.Auth.ChangePassword)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	protected.Get("/dashboard", h.Dashboard.GetHome)
	protected.Get("/dashboard/stats", h.Dashboard.GetDashboardStats)

	protected.Get("/stocks", h.Stock.GetStocks)
	protected.Post("/stocks", h.Stock.CreateStock)
	protected.Get("/stocks/reorder", h.Stock.GetReorderList)
	protected.Get("/stocks/:id", h.Stock.GetStock)
	protected.Put("/stocks/:id", h.Stock.UpdateStock)
	protected.Delete("/stocks/:id", h.Stock.DeleteStock)
	protected.Get("/stocks/:id/variants", h.Stock.GetVariants)

	protected.Get("/suppliers", h.Supplier.GetSuppliers)
	protected.Post("/suppliers", h.Supplier.CreateSupplier)
	protected.Get("/suppliers/profile/:name", h.Supplier.GetProfile)
	protected.Get("/suppliers/:id", h.Supplier.GetSupplier)
	protected.Put("/suppliers/:id", h.Supplier.UpdateSupplier)
	protected.Delete("/suppliers/:id", h.Supplier.DeleteSupplier)
	protected.Post("/suppliers/:id/purchases", h.Purchase.CreatePurchase)

	protected.Get("/purchases", h.Purchase.GetPurchases)
	protected.Post("/purchases/select-supplier", h.Purchase.SelectSupplier)
	protected.Get("/purchases/:billno", h.Purchase.GetPurchase)
	protected.Put("/purchases/:billno/details", h.Purchase.UpdateDetails)
	protected.Delete("/purchases/:billno", h.Purchase.DeletePurchase)

	protected.Get("/sales", h.Sale.GetSales)
	protected.Post("/sales", h.Sale.CreateSale)
	protected.Get("/sales/products/:name", h.Sale.GetProductSales)
	protected.Get("/sales/:billno", h.Sale.GetSale)
	protected.Put("/sales/:billno/details", h.Sale.UpdateDetails)
	protected.Delete("/sales/:billno", h.Sale.DeleteSale)

	protected.Get("/reports/stock.xlsx", h.Dashboard.ExportStock)
	protected.Get("/reports/sales.xlsx", h.Dashboard.ExportSales)
	protected.Get("/reports/purchases.xlsx", h.Dashboard.ExportPurchases)

	protected.Post("/maintenance/clear-data", h.Maintenance.ClearData)
	protected.All("/maintenance/clear-data", h.Maintenance.MethodNotAllowed)
}
