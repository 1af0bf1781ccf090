package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Lawrencium-103/finstrat/internal/domain/dto"
	"github.com/Lawrencium-103/finstrat/internal/logger"
)

// ErrorHandler catches errors attached to the context via c.Error that no
// handler translated into a response, and answers 500 with the standard
// error envelope.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}
