package router

import (
	"time"

	"tablepos/internal/config"
	"tablepos/internal/handler"
	"tablepos/internal/infra"
	"tablepos/internal/middleware"
	"tablepos/internal/repository"
	"tablepos/internal/service"
	"tablepos/internal/state"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
)

// Deps are the long-lived objects built in main.
type Deps struct {
	State    *state.Store
	Bundles  repository.BundleStore
	Breaker  *infra.CircuitBreaker
	Clock    service.Clock
	Location *time.Location
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← state.Store ← BundleStore
func New(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.IsProduction(), cfg.AllowedOrigins()...))
	r.Use(middleware.ErrorHandler())

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(cfg, d.Clock)
	catalogSvc := service.NewCatalogService(d.State)
	cartSvc := service.NewCartService(d.State)
	orderSvc := service.NewOrderService(d.State, d.Clock)
	settlementSvc := service.NewSettlementService(d.State, d.Clock, d.Location)
	settingsSvc := service.NewSettingsService(d.State)
	inspectorSvc := service.NewInspectorService(d.Bundles, d.State, cfg.StorageDriver)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	cartH := handler.NewCartHandler(cartSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	settlementH := handler.NewSettlementHandler(settlementSvc)
	settingsH := handler.NewSettingsHandler(settingsSvc, inspectorSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(d.Bundles, d.Breaker.State, cfg.StorageDriver))

	r.POST("/v1/auth/login", authH.Login)

	// Register routes: the terminal itself needs no login
	v1 := r.Group("/v1")
	{
		v1.GET("/settings", settingsH.Get)

		v1.GET("/menu", catalogH.ListMenu)
		v1.GET("/menu/categories", catalogH.Categories)
		v1.GET("/discounts", catalogH.ListDiscounts)

		v1.GET("/cart", cartH.Get)
		v1.POST("/cart/items", cartH.AddItem)
		v1.PUT("/cart/items/:item_id", cartH.SetQuantity)
		v1.DELETE("/cart", cartH.Clear)

		v1.POST("/checkout/quote", ordersH.Quote)
		v1.POST("/checkout", ordersH.Checkout)

		v1.GET("/orders", ordersH.List)
		v1.GET("/orders/dashboard", ordersH.Dashboard)
		v1.GET("/orders/:id", ordersH.Get)
		v1.POST("/orders/:id/settle", ordersH.Settle)
		v1.POST("/orders/:id/void", ordersH.Void)

		v1.POST("/close", settlementH.Close)
		v1.GET("/summaries", settlementH.List)
		v1.GET("/summaries/:id", settlementH.Get)
		v1.GET("/summaries/:id/pdf", settlementH.PDF)
	}

	// Back office
	admin := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret), middleware.RequireAdmin())
	{
		admin.GET("/auth/session", authH.Session)
		admin.PUT("/settings", settingsH.Update)
		admin.GET("/inspector", settingsH.Inspect)

		admin.POST("/menu", catalogH.CreateMenuItem)
		admin.PUT("/menu/:id", catalogH.UpdateMenuItem)
		admin.DELETE("/menu/:id", catalogH.DeleteMenuItem)
		admin.PATCH("/menu/:id/availability", catalogH.SetAvailability)

		admin.POST("/discounts", catalogH.CreateDiscount)
		admin.PUT("/discounts/:id", catalogH.UpdateDiscount)
		admin.DELETE("/discounts/:id", catalogH.DeleteDiscount)
	}

	// Swagger UI, only enabled outside production
	if !cfg.IsProduction() {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
