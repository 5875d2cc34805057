package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "altrion/internal/errors"
	"altrion/internal/loan"
	"altrion/internal/pagination"
	"altrion/internal/services"
)

// LoanHandler handles loan application endpoints
type LoanHandler struct {
	loanService  services.LoanServicer
	auditService services.AuditServicer
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService services.LoanServicer, auditService services.AuditServicer) *LoanHandler {
	return &LoanHandler{loanService: loanService, auditService: auditService}
}

// SubmitLoanRequest represents a loan submission. Both fields are optional.
type SubmitLoanRequest struct {
	LoanAmount *float64 `json:"loan_amount" binding:"omitempty,gt=0"`
	TermMonths int      `json:"term_months" binding:"omitempty,min=1,max=360"`
}

// UpdateLoanStatusRequest moves an application to another status.
type UpdateLoanStatusRequest struct {
	Status loan.Status `json:"status" binding:"required,loan_status"`
}

// ListLoansRequest holds the list filters.
type ListLoansRequest struct {
	pagination.PageRequest
	Status string `form:"status"`
}

// CalculatorRequest holds the amortization calculator inputs.
type CalculatorRequest struct {
	Principal *float64 `form:"principal" binding:"required"`
	Rate      *float64 `form:"rate" binding:"required"`
	Term      int      `form:"term" binding:"required,min=1,max=360"`
}

// Submit freezes the current collateral selection into a loan application
// @Summary     Submit loan application
// @Description Snapshot the current collateral selection into an immutable application. The selection is cleared afterwards.
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body SubmitLoanRequest false "Optional amount and term"
// @Success     201 {object} models.LoanApplication "Submitted application"
// @Failure     400 {object} ErrorResponse "Empty selection or invalid amount"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans [post]
func (h *LoanHandler) Submit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SubmitLoanRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, bindError(err))
			return
		}
	}

	app, err := h.loanService.SubmitApplication(userID, services.SubmitLoanInput{
		LoanAmount: req.LoanAmount,
		TermMonths: req.TermMonths,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionSubmitLoan, "loan_application", app.ID, c.ClientIP(),
		map[string]any{"loan_amount": app.LoanAmount, "term_months": app.TermMonths, "assets": len(app.SelectedAssets)})

	c.JSON(http.StatusCreated, app)
}

// List returns the user's applications, newest first
// @Summary     List loan applications
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       status    query string false "Status filter" Enums(pending, approved, rejected, active, completed)
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.LoanApplication] "Paginated applications"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /loans [get]
func (h *LoanHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ListLoansRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	result, err := h.loanService.GetApplications(userID, loan.Status(req.Status), req.PageRequest)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Get returns one application
// @Summary     Get loan application
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Application ID" example(ALT-7K2M9QXA)
// @Success     200 {object} models.LoanApplication "Application"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /loans/{id} [get]
func (h *LoanHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	app, err := h.loanService.GetApplicationByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, app)
}

// UpdateStatus changes an application's status
// @Summary     Update loan status
// @Tags        loans
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                  true "Application ID"
// @Param       request body UpdateLoanStatusRequest true "New status"
// @Success     200 {object} models.LoanApplication "Updated application"
// @Failure     400 {object} ErrorResponse "Invalid status"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Transition not allowed"
// @Router      /loans/{id}/status [patch]
func (h *LoanHandler) UpdateStatus(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateLoanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidLoanStatus, err.Error()))
		return
	}

	app, err := h.loanService.UpdateApplicationStatus(userID, c.Param("id"), req.Status)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionUpdateLoanStatus, "loan_application", app.ID, c.ClientIP(),
		map[string]any{"status": string(app.Status)})

	c.JSON(http.StatusOK, app)
}

// Cancel withdraws a pending application
// @Summary     Cancel loan application
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Application ID"
// @Success     200 {object} MessageResponse "Cancelled"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Failure     409 {object} ErrorResponse "Application is no longer pending"
// @Router      /loans/{id} [delete]
func (h *LoanHandler) Cancel(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	id := c.Param("id")
	if err := h.loanService.CancelApplication(userID, id); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, services.ActionCancelLoan, "loan_application", id, c.ClientIP(), nil)
	c.JSON(http.StatusOK, MessageResponse{Message: "Loan application cancelled"})
}

// Schedule returns the amortization schedule of an application
// @Summary     Loan schedule
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Application ID"
// @Success     200 {object} loan.Amortization "Schedule"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /loans/{id}/schedule [get]
func (h *LoanHandler) Schedule(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	schedule, err := h.loanService.GetSchedule(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// Calculator builds a schedule for arbitrary terms
// @Summary     Amortization calculator
// @Tags        loans
// @Produce     json
// @Security    BearerAuth
// @Param       principal query number  true "Principal"
// @Param       rate      query number  true "Annual rate in percent"
// @Param       term      query integer true "Term in months"
// @Success     200 {object} loan.Amortization "Schedule"
// @Failure     400 {object} ErrorResponse "Invalid parameters"
// @Router      /loans/calculator [get]
func (h *LoanHandler) Calculator(c *gin.Context) {
	var req CalculatorRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidScheduleInput, err.Error()))
		return
	}

	schedule, err := loan.Schedule(*req.Principal, *req.Rate, req.Term)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidScheduleInput, err.Error()))
		return
	}

	c.JSON(http.StatusOK, schedule)
}
