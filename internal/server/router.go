// Package server assembles the HTTP router.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"altrion/internal/config"
	"altrion/internal/handlers"
	"altrion/internal/middleware"
	"altrion/internal/oauth"
	"altrion/internal/services"
)

// Dependencies are the services the router serves.
type Dependencies struct {
	Users       services.UserServicer
	Holdings    services.HoldingServicer
	Collateral  services.CollateralServicer
	Loans       services.LoanServicer
	Connections services.ConnectionServicer
	Audit       services.AuditServicer
	OAuth       oauth.Registry
}

// NewRouter builds the Gin engine with every route of the API.
func NewRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Audit)
	oauthHandler := handlers.NewOAuthHandler(deps.OAuth, deps.Users, deps.Audit, cfg.FrontendURL, cfg.Env == "production")
	portfolioHandler := handlers.NewPortfolioHandler(deps.Holdings, deps.Audit)
	collateralHandler := handlers.NewCollateralHandler(deps.Collateral)
	loanHandler := handlers.NewLoanHandler(deps.Loans, deps.Audit)
	connectionHandler := handlers.NewConnectionHandler(deps.Connections)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS(cfg.FrontendURL))
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	requireAuth := middleware.AuthMiddleware()

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/me", requireAuth, authHandler.Me)
	auth.POST("/logout", requireAuth, authHandler.Logout)
	auth.GET("/oauth/failure", oauthHandler.Failure)
	auth.GET("/:provider", oauthHandler.Begin)
	auth.GET("/:provider/callback", oauthHandler.Callback)

	v1.GET("/platforms", portfolioHandler.ListPlatforms)

	// Sync pipeline
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKey))
	pipeline.POST("/holdings", portfolioHandler.SyncHoldings)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(requireAuth)

	protected.GET("/portfolio", portfolioHandler.GetPortfolio)
	protected.GET("/holdings", portfolioHandler.GetHoldings)

	pledges := protected.Group("/collateral")
	pledges.GET("", collateralHandler.GetSelection)
	pledges.GET("/review", collateralHandler.Review)
	pledges.POST("/select-all", collateralHandler.SelectAll)
	pledges.POST("/deselect-all", collateralHandler.DeselectAll)
	pledges.POST("/:holdingId", collateralHandler.Select)
	pledges.DELETE("/:holdingId", collateralHandler.Deselect)
	pledges.PUT("/:holdingId/amount", collateralHandler.SetAmount)
	pledges.PUT("/:holdingId/percentage", collateralHandler.SetPercentage)

	loans := protected.Group("/loans")
	loans.POST("", loanHandler.Submit)
	loans.GET("", loanHandler.List)
	loans.GET("/calculator", loanHandler.Calculator)
	loans.GET("/:id", loanHandler.Get)
	loans.PATCH("/:id/status", loanHandler.UpdateStatus)
	loans.DELETE("/:id", loanHandler.Cancel)
	loans.GET("/:id/schedule", loanHandler.Schedule)

	connections := protected.Group("/connections")
	connections.POST("", connectionHandler.Start)
	connections.GET("", connectionHandler.GetSession)
	connections.GET("/linked", connectionHandler.Linked)
	connections.POST("/:index/connect", connectionHandler.Initiate)
	connections.POST("/:index/retry", connectionHandler.Retry)

	return router
}
