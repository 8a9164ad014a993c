package router

import (
	"github.com/gin-gonic/gin"

	"invex/internal/handler"
	"invex/internal/middleware"
	"invex/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	extractionH *handler.ExtractionHandler,
	productH *handler.ProductHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/token", authH.Token)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Extraction routes
	protected.POST("/extractions", extractionH.Submit)

	invoices := protected.Group("/invoices")
	invoices.GET("", extractionH.List)
	invoices.GET("/export", extractionH.ExportCSV)
	invoices.GET("/:id", extractionH.GetByID)
	invoices.GET("/:id/events", extractionH.ListEvents)
	invoices.DELETE("/:id", extractionH.Delete)

	// Product catalog routes
	products := protected.Group("/products")
	products.POST("/match", productH.Match)
	products.POST("/feedback", productH.Feedback)

	return r
}
