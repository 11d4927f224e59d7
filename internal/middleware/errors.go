package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/technical/internal/domain/dto"
)

// ErrorHandler renders errors attached with c.Error when the handler chain
// finished without writing a response. An attached dto.ErrorResponse is sent
// as-is; any other error becomes a generic 500 body.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	last := c.Errors.Last().Err
	if resp, ok := last.(dto.ErrorResponse); ok {
		c.JSON(http.StatusInternalServerError, resp)
		return
	}
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", last))
}

// AbortWithError records err on the context, aborts the chain and writes a
// standardized JSON error body with the given status.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
