package middleware

import (
	"errors"
	"net/http"

	"go-jobtracker-backend/internal/delivery/http/response"
	"go-jobtracker-backend/pkg/apperror"
	"go-jobtracker-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors appended to the context into the standard
// error envelope, mapping the sync engine's failure taxonomy onto HTTP codes.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		appErr := apperror.FromDomain(err)

		var known *apperror.AppError
		if appErr.Code == http.StatusInternalServerError && !errors.As(err, &known) {
			// Never expose internal error details to clients; log server-side
			// and send a generic message.
			logger.Log.Error("Internal server error", "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			return
		}

		response.Error(c, appErr.Code, appErr.Message, nil)
	}
}
