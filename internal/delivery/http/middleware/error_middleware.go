package middleware

import (
	"errors"
	"net/http"

	"recruitflow-backend/internal/delivery/http/response"
	"recruitflow-backend/pkg/apperror"
	"recruitflow-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				response.Error(c, appErr.Code, appErr.Message, string(appErr.Kind))
				return
			}

			// Never expose internal error details to clients. Log the
			// actual error server-side and send a generic message.
			logger.Log.Error("unhandled error", "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
