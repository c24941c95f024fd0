package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/billing-console/config"
	"github.com/yourusername/billing-console/handlers"
	"github.com/yourusername/billing-console/middleware"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "billing-console-api",
		})
	})

	authHandler := handlers.NewAuthHandler(db, cfg, logger)
	customerHandler := handlers.NewCustomerHandler(db, logger)
	invoiceHandler := handlers.NewInvoiceHandler(db, logger)
	dashboardHandler := handlers.NewDashboardHandler(db, logger)

	// API routes. Reads are public; every mutating endpoint and the
	// dashboard require a bearer token.
	api := router.Group("/api/v1")
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		api.GET("/customers", customerHandler.ListCustomers)
		api.GET("/customers/:id", customerHandler.GetCustomer)
		api.GET("/customers/:id/invoices", customerHandler.ListCustomerInvoices)

		api.GET("/invoices", invoiceHandler.ListInvoices)
		api.GET("/invoices/:id", invoiceHandler.GetInvoice)
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.JwtAuthMiddleware(cfg))
	{
		protected.POST("/customers", customerHandler.CreateCustomer)
		protected.PUT("/customers/:id", customerHandler.UpdateCustomer)
		protected.DELETE("/customers/:id", customerHandler.DeleteCustomer)

		protected.POST("/invoices", invoiceHandler.CreateInvoice)
		protected.PUT("/invoices/:id", invoiceHandler.UpdateInvoice)
		protected.DELETE("/invoices/:id", invoiceHandler.DeleteInvoice)

		protected.GET("/dashboard/stats", dashboardHandler.GetStats)
	}

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting billing console API", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
