package rest

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/claim-ledger/internal/api/shared/errors"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, errors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, errors.NewNotFoundError(message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, errors.NewValidationError(message))
}

// respondError responds with the executor's APIError, or an internal error for anything else
func respondError(c *gin.Context, err error, message string) {
	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) {
		c.JSON(apiErr.StatusCode(), apiErr)
		return
	}
	c.JSON(http.StatusInternalServerError, errors.NewInternalError(message, err.Error()))
}
