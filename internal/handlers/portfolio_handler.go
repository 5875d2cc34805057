package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"altrion/internal/connect"
	"altrion/internal/pagination"
	"altrion/internal/services"
)

// PortfolioHandler serves holdings and the aggregated portfolio.
type PortfolioHandler struct {
	holdingService services.HoldingServicer
	auditService   services.AuditServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(holdingService services.HoldingServicer, auditService services.AuditServicer) *PortfolioHandler {
	return &PortfolioHandler{holdingService: holdingService, auditService: auditService}
}

// SyncHoldingsRequest is one platform snapshot pushed by the sync pipeline.
type SyncHoldingsRequest struct {
	UserID   string                  `json:"user_id" binding:"required,uuid"`
	Platform string                  `json:"platform" binding:"required,platform_id"`
	Holdings []services.HoldingInput `json:"holdings" binding:"omitempty,dive"`
}

// GetPortfolio returns holdings aggregated by symbol.
// @Summary     Get portfolio
// @Description Holdings aggregated by symbol across platforms, with totals and price divergence warnings
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Asset type filter" Enums(all, crypto, stock, stablecoin)
// @Success     200 {object} services.PortfolioView "Aggregated portfolio"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetType, err := parseAssetType(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.holdingService.GetPortfolio(userID, assetType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetHoldings lists raw per-platform holdings.
// @Summary     List holdings
// @Description Paginated per-platform holdings
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       type      query string false "Asset type filter" Enums(all, crypto, stock, stablecoin)
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Holding] "Paginated holdings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings [get]
func (h *PortfolioHandler) GetHoldings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetType, err := parseAssetType(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.holdingService.GetHoldings(userID, assetType, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPlatforms returns the catalog of linkable platforms.
// @Summary     List platforms
// @Tags        connections
// @Produce     json
// @Success     200 {array} connect.Platform "Platform catalog"
// @Router      /platforms [get]
func (h *PortfolioHandler) ListPlatforms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"platforms": connect.Platforms})
}

// SyncHoldings replaces a user's holdings on one platform.
// @Summary     Sync platform holdings
// @Description Replace the user's holdings on one platform with a fresh snapshot. Called by the sync pipeline.
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body SyncHoldingsRequest true "Platform snapshot"
// @Success     200 {object} map[string]interface{} "Stored holdings"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "User not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /pipeline/holdings [post]
func (h *PortfolioHandler) SyncHoldings(c *gin.Context) {
	var req SyncHoldingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	holdings, err := h.holdingService.ReplacePlatformHoldings(req.UserID, req.Platform, req.Holdings)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(req.UserID, services.ActionSyncHoldings, "platform", req.Platform, c.ClientIP(),
		map[string]any{"holdings": len(holdings)})

	c.JSON(http.StatusOK, gin.H{"platform": req.Platform, "holdings": holdings})
}
