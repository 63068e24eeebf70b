package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/claim-ledger/internal/api/shared/dto"
	"github.com/feral-file/claim-ledger/internal/api/shared/executor"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetLeaderboard retrieves a page of the leaderboard
	// GET /api/v1/leaderboard?period=<YYYY-MM-DD|current>&limit=<limit>&offset=<offset>
	// Without period the all-time claim board is returned
	GetLeaderboard(c *gin.Context)

	// GetUser retrieves a user aggregate
	// GET /api/v1/users/:address
	GetUser(c *gin.Context)

	// GetUserTransfers retrieves the most recent transfers touching a user
	// GET /api/v1/users/:address/transfers?limit=<limit>
	GetUserTransfers(c *gin.Context)

	// GetUserClaims retrieves the most recent treasury claims of a user
	// GET /api/v1/users/:address/claims?limit=<limit>
	GetUserClaims(c *gin.Context)

	// SubmitScore records a game score (requires authentication)
	// POST /api/v1/scores
	SubmitScore(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

// GetLeaderboard retrieves a page of the all-time or weekly leaderboard
func (h *handler) GetLeaderboard(c *gin.Context) {
	params, err := ParseLeaderboardQuery(c)
	if err != nil {
		respondError(c, err, "Invalid query parameters")
		return
	}

	response, err := h.executor.GetLeaderboard(c.Request.Context(), params.Period, params.PageLimit(), params.Offset)
	if err != nil {
		respondError(c, err, "Failed to get leaderboard")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetUser retrieves a user aggregate by address
func (h *handler) GetUser(c *gin.Context) {
	address := c.Param("address")
	if address == "" {
		respondBadRequest(c, "Address is required")
		return
	}

	user, err := h.executor.GetUser(c.Request.Context(), address)
	if err != nil {
		respondError(c, err, "Failed to get user")
		return
	}

	if user == nil {
		respondNotFound(c, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUserTransfers retrieves the transfer history of a user
func (h *handler) GetUserTransfers(c *gin.Context) {
	address := c.Param("address")
	params, err := ParseHistoryQuery(c)
	if err != nil {
		respondError(c, err, "Invalid query parameters")
		return
	}

	response, err := h.executor.GetTransferHistory(c.Request.Context(), address, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to get transfers")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetUserClaims retrieves the claim history of a user
func (h *handler) GetUserClaims(c *gin.Context) {
	address := c.Param("address")
	params, err := ParseHistoryQuery(c)
	if err != nil {
		respondError(c, err, "Invalid query parameters")
		return
	}

	response, err := h.executor.GetClaimHistory(c.Request.Context(), address, params.Limit)
	if err != nil {
		respondError(c, err, "Failed to get claims")
		return
	}

	c.JSON(http.StatusOK, response)
}

// SubmitScore records a game score for the current period
func (h *handler) SubmitScore(c *gin.Context) {
	var req dto.SubmitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondError(c, err, "Invalid request body")
		return
	}

	response, err := h.executor.SubmitScore(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to submit score")
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	if err := h.executor.Ping(c.Request.Context()); err != nil {
		respondError(c, err, "Service unavailable")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "claim-ledger-api",
	})
}
