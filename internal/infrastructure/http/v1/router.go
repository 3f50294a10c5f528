// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"tarifario/internal/core/numerator"
	"tarifario/internal/domain/auth"
	"tarifario/internal/domain/catalogs/article"
	"tarifario/internal/domain/catalogs/branch"
	"tarifario/internal/domain/catalogs/company"
	"tarifario/internal/domain/catalogs/customer"
	"tarifario/internal/domain/catalogs/vendor"
	"tarifario/internal/domain/documents/order"
	"tarifario/internal/domain/pricing"
	"tarifario/internal/infrastructure/http/v1/handlers"
	"tarifario/internal/infrastructure/http/v1/middleware"
	"tarifario/internal/infrastructure/storage/postgres"
	"tarifario/internal/infrastructure/storage/postgres/catalog_repo"
	"tarifario/internal/infrastructure/storage/postgres/document_repo"
	"tarifario/internal/infrastructure/storage/postgres/pricing_repo"
	"tarifario/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	// Pool is the database connection pool (health checks)
	Pool *postgres.Pool

	// TxManager runs queries and transactions
	TxManager *postgres.TxManager

	// Logger for request logging
	Logger *logger.Logger

	// JWTValidator for token validation
	JWTValidator middleware.JWTValidator

	// AuthService for authentication endpoints
	AuthService *auth.Service

	// Numerator for catalog code generation
	Numerator numerator.Generator

	// AuditService records pricing mutations (may be nil)
	AuditService *postgres.AuditService
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// API v1
	v1 := router.Group("/api/v1")
	{
		registerAuthRoutes(v1, cfg)

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTValidator))
		protected.Use(middleware.UserContext())

		registerCatalogRoutes(protected, cfg)
		registerPricingRoutes(protected, cfg)
		registerDocumentRoutes(protected, cfg)
	}

	return router
}

// registerAuthRoutes registers authentication endpoints.
func registerAuthRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	baseHandler := handlers.NewBaseHandler()
	authHandler := handlers.NewAuthHandler(baseHandler, cfg.AuthService)

	publicAuth := rg.Group("/auth")

	protectedAuth := rg.Group("/auth")
	protectedAuth.Use(middleware.Auth(cfg.JWTValidator))

	authHandler.RegisterRoutes(publicAuth, protectedAuth)
}

// registerCatalogRoutes registers catalog CRUD endpoints.
func registerCatalogRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	catalogs := rg.Group("/catalog")
	baseHandler := handlers.NewBaseHandler()

	// --- COMPANIES ---
	{
		repo := catalog_repo.NewCompanyRepo(cfg.TxManager)
		service := company.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewCompanyHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/companies"), handler, "catalog:company")
	}

	// --- BRANCHES ---
	{
		repo := catalog_repo.NewBranchRepo(cfg.TxManager)
		service := branch.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewBranchHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/branches"), handler, "catalog:branch")
	}

	// --- ARTICLES ---
	{
		repo := catalog_repo.NewArticleRepo(cfg.TxManager)
		service := article.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewArticleHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/articles"), handler, "catalog:article")
	}

	// --- ARTICLE GROUPS ---
	{
		repo := catalog_repo.NewArticleGroupRepo(cfg.TxManager)
		service := article.NewGroupService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewGroupHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/article-groups"), handler, "catalog:article_group")
	}

	// --- ARTICLE LINES ---
	{
		repo := catalog_repo.NewArticleLineRepo(cfg.TxManager)
		service := article.NewLineService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewLineHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/article-lines"), handler, "catalog:article_line")
	}

	// --- CUSTOMERS ---
	{
		repo := catalog_repo.NewCustomerRepo(cfg.TxManager)
		service := customer.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewCustomerHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/customers"), handler, "catalog:customer")
	}

	// --- VENDORS ---
	{
		repo := catalog_repo.NewVendorRepo(cfg.TxManager)
		service := vendor.NewService(repo, cfg.TxManager, cfg.Numerator)
		handler := handlers.NewVendorHandler(baseHandler, service)
		RegisterCatalogRoutes(catalogs.Group("/vendors"), handler, "catalog:vendor")
	}
}

// registerPricingRoutes registers price list CRUD plus the calculation
// and supplier discount endpoints.
func registerPricingRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	listRepo := pricing_repo.NewPriceListRepo(cfg.TxManager)
	itemPriceRepo := pricing_repo.NewItemPriceRepo(cfg.TxManager)
	ruleRepo := pricing_repo.NewPriceRuleRepo(cfg.TxManager)
	comboRepo := pricing_repo.NewCombinationRepo(cfg.TxManager)
	discountRepo := pricing_repo.NewSupplierDiscountRepo(cfg.TxManager)
	articleRepo := catalog_repo.NewArticleRepo(cfg.TxManager)
	branchRepo := catalog_repo.NewBranchRepo(cfg.TxManager)

	engine := pricing.NewEngine(listRepo, itemPriceRepo, ruleRepo, comboRepo, articleRepo)

	listService := pricing.NewListService(listRepo, branchRepo, cfg.TxManager, cfg.Numerator)
	ruleService := pricing.NewRuleService(ruleRepo, cfg.TxManager, cfg.Numerator)
	comboService := pricing.NewCombinationService(comboRepo, cfg.TxManager, cfg.Numerator)
	itemPriceService := pricing.NewItemPriceService(itemPriceRepo, cfg.TxManager)

	var auditor pricing.Auditor
	if cfg.AuditService != nil {
		auditor = cfg.AuditService
	}
	registrar := pricing.NewRegistrar(itemPriceRepo, discountRepo, cfg.TxManager, auditor)

	// Catalog-style CRUD
	catalogs := rg.Group("/catalog")
	{
		listHandler := handlers.NewPriceListHandler(baseHandler, listService)
		RegisterCatalogRoutes(catalogs.Group("/price-lists"), listHandler, "catalog:price_list")

		ruleHandler := handlers.NewPriceRuleHandler(baseHandler, ruleService)
		RegisterCatalogRoutes(catalogs.Group("/price-rules"), ruleHandler, "catalog:price_rule")

		comboHandler := handlers.NewCombinationHandler(baseHandler, comboService)
		RegisterCatalogRoutes(catalogs.Group("/combinations"), comboHandler, "catalog:product_combination")
	}

	// Engine surface
	pricingHandler := handlers.NewPricingHandler(baseHandler, engine, listService, itemPriceService, registrar)
	pricingGroup := rg.Group("/pricing")
	{
		pricingGroup.POST("/calculate", middleware.RequirePermission("pricing:calculate"), pricingHandler.Calculate)
		pricingGroup.GET("/active-list", middleware.RequirePermission("pricing:read"), pricingHandler.ActiveList)

		pricingGroup.POST("/supplier-discounts", middleware.RequirePermission("pricing:authorize"), pricingHandler.RegisterSupplierDiscount)

		pricingGroup.POST("/item-prices", middleware.RequirePermission("pricing:write"), pricingHandler.CreateItemPrice)
		pricingGroup.GET("/item-prices/:id", middleware.RequirePermission("pricing:read"), pricingHandler.GetItemPrice)
		pricingGroup.PUT("/item-prices/:id", middleware.RequirePermission("pricing:write"), pricingHandler.UpdateItemPrice)
		pricingGroup.GET("/item-prices/:id/supplier-discounts", middleware.RequirePermission("pricing:read"), pricingHandler.ListSupplierDiscounts)
		pricingGroup.GET("/price-lists/:id/item-prices", middleware.RequirePermission("pricing:read"), pricingHandler.ListItemPrices)
	}
}

// registerDocumentRoutes registers business document endpoints.
func registerDocumentRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	baseHandler := handlers.NewBaseHandler()

	listRepo := pricing_repo.NewPriceListRepo(cfg.TxManager)
	itemPriceRepo := pricing_repo.NewItemPriceRepo(cfg.TxManager)
	ruleRepo := pricing_repo.NewPriceRuleRepo(cfg.TxManager)
	comboRepo := pricing_repo.NewCombinationRepo(cfg.TxManager)
	articleRepo := catalog_repo.NewArticleRepo(cfg.TxManager)
	customerRepo := catalog_repo.NewCustomerRepo(cfg.TxManager)

	engine := pricing.NewEngine(listRepo, itemPriceRepo, ruleRepo, comboRepo, articleRepo)

	orderRepo := document_repo.NewOrderRepo(cfg.TxManager)
	orderService := order.NewService(orderRepo, customerRepo, engine, cfg.TxManager, cfg.Numerator)
	orderHandler := handlers.NewOrderHandler(baseHandler, orderService)

	documents := rg.Group("/document")
	RegisterDocumentRoutes(documents.Group("/customer-orders"), orderHandler, "document:customer_order")
}
