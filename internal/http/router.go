// Package http wires the JSON API: catalog CRUD, the loan ledger
// transactions endpoints, dashboard stats, discounts, feedback and the
// fee estimator.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/unilib/backend/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Security headers on all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Auth endpoints
	if cfg.AuthService != nil && cfg.SessionManager != nil {
		authController := auth.NewController(cfg.AuthService, cfg.SessionManager)
		authController.RegisterRoutes(router)
	}

	// Create controllers with appropriate repositories
	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Books)
	loansController := NewLoansController(cfg.Loans)
	usersController := NewUsersController(cfg.Users)
	statsController := NewStatsController(cfg.Stats)
	discountsController := NewDiscountsController(cfg.Discounts)
	feedbackController := NewFeedbackController(cfg.Feedback, cfg.TaskClient)
	feesController := NewFeesController(cfg.Discounts, cfg.FeesConfig)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Public endpoints: catalog browsing, discounts, feedback, fees
	router.GET("/api/books", booksController.GetBooks)
	router.GET("/api/discounts", discountsController.GetDiscounts)
	router.POST("/api/feedbacks", feedbackController.CreateFeedback)
	router.GET("/api/fees/estimate", feesController.Estimate)

	// Authenticated endpoints
	api := router.Group("/api")
	if cfg.SessionManager != nil {
		api.Use(auth.RequireAuth(cfg.SessionManager))
	}

	api.GET("/stats", statsController.GetStats)
	api.GET("/students", usersController.GetStudents)

	// Loan ledger
	api.GET("/transactions", loansController.ListLoans)
	api.POST("/transactions/issue", loansController.IssueLoan)
	api.POST("/transactions/:id/return", loansController.ReturnLoan)

	// Catalog and discount management is librarian-only
	admin := api.Group("")
	if cfg.SessionManager != nil {
		admin.Use(auth.RequireAdmin())
	}

	admin.POST("/books", booksController.CreateBook)
	admin.PUT("/books/:id", booksController.UpdateBook)
	admin.DELETE("/books/:id", booksController.DeleteBook)

	admin.POST("/discounts", discountsController.CreateDiscount)

	return router
}
