package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"altrion/internal/connect"
	"altrion/internal/services"
)

// ConnectionHandler drives the platform linking flow.
type ConnectionHandler struct {
	connectionService services.ConnectionServicer
}

// NewConnectionHandler creates a new ConnectionHandler.
func NewConnectionHandler(connectionService services.ConnectionServicer) *ConnectionHandler {
	return &ConnectionHandler{connectionService: connectionService}
}

// StartConnectionRequest opens a connection session.
type StartConnectionRequest struct {
	PlatformIDs []string `json:"platform_ids" binding:"required,min=1,dive,required"`
	// AutoStart initiates every platform at once. Defaults to true.
	AutoStart *bool `json:"auto_start"`
}

// Start opens a new connection session
// @Summary     Start connection session
// @Description Open a session for the chosen platforms. With auto_start every attempt begins immediately.
// @Tags        connections
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body StartConnectionRequest true "Platforms to link"
// @Success     202 {object} connect.State "Session state"
// @Failure     400 {object} ErrorResponse "Unknown platform"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     409 {object} ErrorResponse "A session is still running"
// @Router      /connections [post]
func (h *ConnectionHandler) Start(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req StartConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	autoStart := true
	if req.AutoStart != nil {
		autoStart = *req.AutoStart
	}

	state, err := h.connectionService.StartSession(userID, req.PlatformIDs, autoStart)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, state)
}

// GetSession returns the current session state
// @Summary     Get connection session
// @Tags        connections
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} connect.State "Session state"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No session"
// @Router      /connections [get]
func (h *ConnectionHandler) GetSession(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	state, err := h.connectionService.GetSession(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, state)
}

// Initiate starts a pending attempt
// @Summary     Connect platform
// @Tags        connections
// @Produce     json
// @Security    BearerAuth
// @Param       index path int true "Attempt index"
// @Success     202 {object} connect.State "Session state"
// @Failure     400 {object} ErrorResponse "Invalid index"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No session"
// @Failure     409 {object} ErrorResponse "Attempt already initiated"
// @Router      /connections/{index}/connect [post]
func (h *ConnectionHandler) Initiate(c *gin.Context) {
	h.step(c, h.connectionService.Initiate)
}

// Retry restarts a failed attempt
// @Summary     Retry platform
// @Tags        connections
// @Produce     json
// @Security    BearerAuth
// @Param       index path int true "Attempt index"
// @Success     202 {object} connect.State "Session state"
// @Failure     400 {object} ErrorResponse "Invalid index"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "No session"
// @Failure     409 {object} ErrorResponse "Attempt has not failed"
// @Router      /connections/{index}/retry [post]
func (h *ConnectionHandler) Retry(c *gin.Context) {
	h.step(c, h.connectionService.Retry)
}

// Linked lists the platforms the user has linked before
// @Summary     Linked platforms
// @Tags        connections
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.PlatformConnection "Persisted connection outcomes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /connections/linked [get]
func (h *ConnectionHandler) Linked(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	linked, err := h.connectionService.GetLinkedPlatforms(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"connections": linked})
}

func (h *ConnectionHandler) step(c *gin.Context, fn func(userID string, index int) (*connect.State, error)) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	index, err := parseIndex(c, "index")
	if err != nil {
		respondWithError(c, err)
		return
	}

	state, err := fn(userID, index)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, state)
}
