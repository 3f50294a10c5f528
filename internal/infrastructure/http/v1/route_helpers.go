// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"
	"tarifario/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
	GetTree(c *gin.Context)
}

// DocumentRouteHandler defines the interface for document handlers.
// Documents are immutable after creation except for lifecycle state
// and the deletion mark.
type DocumentRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	ChangeState(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// This eliminates the need to manually wire up routes for each catalog.
//
// Usage:
//
//	repo := catalog_repo.NewCompanyRepo(cfg.TxManager)
//	service := company.NewService(repo, cfg.TxManager, cfg.Numerator)
//	handler := handlers.NewCompanyHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/companies"), handler, "catalog:company")
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, permission string) {
	group.GET("", middleware.RequirePermission(permission+":read"), handler.List)
	group.POST("", middleware.RequirePermission(permission+":create"), handler.Create)
	group.GET("/:id", middleware.RequirePermission(permission+":read"), handler.Get)
	group.PUT("/:id", middleware.RequirePermission(permission+":update"), handler.Update)
	group.DELETE("/:id", middleware.RequirePermission(permission+":delete"), handler.Delete)
	group.POST("/:id/deletion-mark", middleware.RequirePermission(permission+":delete"), handler.SetDeletionMark)
	group.GET("/tree", middleware.RequirePermission(permission+":read"), handler.GetTree)
}

// RegisterDocumentRoutes registers standard document routes.
//
// Usage:
//
//	repo := document_repo.NewOrderRepo(cfg.TxManager)
//	service := order.NewService(repo, customerRepo, engine, cfg.TxManager, cfg.Numerator)
//	handler := handlers.NewOrderHandler(baseHandler, service)
//	RegisterDocumentRoutes(documents.Group("/customer-orders"), handler, "document:customer_order")
func RegisterDocumentRoutes(group *gin.RouterGroup, handler DocumentRouteHandler, permission string) {
	group.GET("", middleware.RequirePermission(permission+":read"), handler.List)
	group.POST("", middleware.RequirePermission(permission+":create"), handler.Create)
	group.GET("/:id", middleware.RequirePermission(permission+":read"), handler.Get)
	group.POST("/:id/state", middleware.RequirePermission(permission+":update"), handler.ChangeState)
	group.POST("/:id/deletion-mark", middleware.RequirePermission(permission+":delete"), handler.SetDeletionMark)
}
