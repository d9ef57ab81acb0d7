package handler

import (
	"bookmart-be/internal/analytics"
	"bookmart-be/internal/cache"
	"bookmart-be/internal/catalog"
	"bookmart-be/internal/logger"
	"bookmart-be/internal/middleware"
	"bookmart-be/internal/user"

	"github.com/gin-gonic/gin"
)

// NewRouter wires every route with its middleware chain. Reads are open,
// writes require a bearer token, and reports get their own rate tier.
func NewRouter(
	userSvc user.Service,
	catalogSvc catalog.Service,
	analyticsSvc analytics.Service,
	reportCache *cache.ReportCache,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.LoggingMiddleware())

	userHandler := NewUserHandler(userSvc)
	catalogHandler := NewCatalogHandler(catalogSvc)
	reportHandler := NewReportHandler(analyticsSvc, reportCache)

	api := r.Group("/api")

	api.POST("/register", middleware.RateLimit("strict"), userHandler.Register)
	api.POST("/login", middleware.RateLimit("strict"), userHandler.Login)

	api.GET("/authors", middleware.RateLimit("general"), catalogHandler.ListAuthors)
	api.GET("/authors/:id", middleware.RateLimit("general"), catalogHandler.GetAuthor)
	api.POST("/authors", middleware.AuthRequired(), middleware.RateLimit("general"), catalogHandler.CreateAuthor)

	api.GET("/books", middleware.RateLimit("general"), catalogHandler.ListBooks)
	api.GET("/books/:id", middleware.RateLimit("general"), catalogHandler.GetBook)
	api.POST("/books", middleware.AuthRequired(), middleware.RateLimit("general"), catalogHandler.CreateBook)
	api.PUT("/books/:id", middleware.AuthRequired(), middleware.RateLimit("general"), catalogHandler.UpdateBook)
	api.DELETE("/books/:id", middleware.AuthRequired(), middleware.RateLimit("general"), catalogHandler.DeleteBook)

	report := api.Group("/report")
	report.Use(middleware.AuthOptional(), middleware.RateLimit("report"))
	report.GET("/user-order-summary", reportHandler.UserOrderSummary)
	report.GET("/order-product-stats", reportHandler.OrderProductStats)
	report.GET("/order-analysis", reportHandler.OrderAnalysis)

	return r
}
