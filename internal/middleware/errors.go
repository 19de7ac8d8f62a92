package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hmartins/capitolpulse/internal/domain/dto"
)

// ErrorHandler converts errors attached to the gin context into the standard
// JSON error envelope. Handlers call c.Error(err) and return; this runs
// after them and writes the response once.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 {
		return
	}
	if c.Writer.Written() {
		return
	}

	last := c.Errors.Last()
	status := c.Writer.Status()
	if status < http.StatusBadRequest {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse("Request failed", last.Err))
}

// AbortWithError writes the standard error envelope with the given status
// and stops the handler chain.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
