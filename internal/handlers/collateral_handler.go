package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"altrion/internal/services"
)

// CollateralHandler handles the collateral picker.
type CollateralHandler struct {
	collateralService services.CollateralServicer
}

// NewCollateralHandler creates a new CollateralHandler.
func NewCollateralHandler(collateralService services.CollateralServicer) *CollateralHandler {
	return &CollateralHandler{collateralService: collateralService}
}

// SetAmountRequest sets the pledged quantity of a holding.
type SetAmountRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

// SetPercentageRequest pledges a share of a holding.
type SetPercentageRequest struct {
	Percentage *float64 `json:"percentage" binding:"required"`
}

// GetSelection returns the current selection and eligibility.
// @Summary     Get collateral selection
// @Description Every holding with its pledged quantity, plus live eligibility
// @Tags        collateral
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.CollateralView "Selection"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /collateral [get]
func (h *CollateralHandler) GetSelection(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := h.collateralService.GetSelection(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Select pledges a holding in full.
// @Summary     Select collateral
// @Tags        collateral
// @Produce     json
// @Security    BearerAuth
// @Param       holdingId path string true "Holding ID"
// @Success     200 {object} services.CollateralView "Updated selection"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /collateral/{holdingId} [post]
func (h *CollateralHandler) Select(c *gin.Context) {
	h.mutate(c, func(userID string) (*services.CollateralView, error) {
		return h.collateralService.Select(userID, c.Param("holdingId"))
	})
}

// Deselect removes a holding from the selection.
// @Summary     Deselect collateral
// @Tags        collateral
// @Produce     json
// @Security    BearerAuth
// @Param       holdingId path string true "Holding ID"
// @Success     200 {object} services.CollateralView "Updated selection"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /collateral/{holdingId} [delete]
func (h *CollateralHandler) Deselect(c *gin.Context) {
	h.mutate(c, func(userID string) (*services.CollateralView, error) {
		return h.collateralService.Deselect(userID, c.Param("holdingId"))
	})
}

// SetAmount sets the pledged quantity, clamped to the holding amount.
// @Summary     Set pledged amount
// @Tags        collateral
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       holdingId path string           true "Holding ID"
// @Param       request   body SetAmountRequest true "Quantity"
// @Success     200 {object} services.CollateralView "Updated selection"
// @Failure     400 {object} ErrorResponse "Invalid input or asset not selected"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /collateral/{holdingId}/amount [put]
func (h *CollateralHandler) SetAmount(c *gin.Context) {
	var req SetAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	h.mutate(c, func(userID string) (*services.CollateralView, error) {
		return h.collateralService.SetAmount(userID, c.Param("holdingId"), *req.Amount)
	})
}

// SetPercentage pledges a percentage of the holding.
// @Summary     Set pledged percentage
// @Tags        collateral
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       holdingId path string               true "Holding ID"
// @Param       request   body SetPercentageRequest true "Percentage of the holding"
// @Success     200 {object} services.CollateralView "Updated selection"
// @Failure     400 {object} ErrorResponse "Invalid input or asset not selected"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Holding not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /collateral/{holdingId}/percentage [put]
func (h *CollateralHandler) SetPercentage(c *gin.Context) {
	var req SetPercentageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}
	h.mutate(c, func(userID string) (*services.CollateralView, error) {
		return h.collateralService.SetPercentage(userID, c.Param("holdingId"), *req.Percentage)
	})
}

// SelectAll toggles every holding of the filtered set.
// @Summary     Select all collateral
// @Description Select every holding of the type filter; when all are already selected, deselect them
// @Tags        collateral
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Asset type filter" Enums(all, crypto, stock, stablecoin)
// @Success     200 {object} services.CollateralView "Updated selection"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /collateral/select-all [post]
func (h *CollateralHandler) SelectAll(c *gin.Context) {
	assetType, err := parseAssetType(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.mutate(c, func(userID string) (*services.CollateralView, error) {
		return h.collateralService.SelectAll(userID, assetType)
	})
}

// DeselectAll clears every holding of the filtered set.
// @Summary     Deselect all collateral
// @Tags        collateral
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Asset type filter" Enums(all, crypto, stock, stablecoin)
// @Success     200 {object} services.CollateralView "Updated selection"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /collateral/deselect-all [post]
func (h *CollateralHandler) DeselectAll(c *gin.Context) {
	assetType, err := parseAssetType(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	h.mutate(c, func(userID string) (*services.CollateralView, error) {
		return h.collateralService.DeselectAll(userID, assetType)
	})
}

// Review previews the loan snapshot of the current selection.
// @Summary     Review collateral
// @Tags        collateral
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} collateral.Snapshot "Loan snapshot preview"
// @Failure     400 {object} ErrorResponse "Empty selection"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /collateral/review [get]
func (h *CollateralHandler) Review(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.collateralService.Review(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *CollateralHandler) mutate(c *gin.Context, fn func(userID string) (*services.CollateralView, error)) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	view, err := fn(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
