package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "altrion/internal/errors"
	"altrion/internal/logger"
)

// ErrorHandler renders the last error attached with c.Error as the standard
// {"error":{"code","message"}} body. Causes of AppErrors and anything that
// is not an AppError are logged, never sent to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		log := logger.Get().With(
			"request_id", c.GetString(RequestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		var appErr *apperrors.AppError
		if !errors.As(err, &appErr) {
			log.Errorw("unexpected error", "error", err.Error())
			appErr = apperrors.ErrInternalServer
		} else if appErr.Internal != nil {
			log.Errorw("request failed", "code", appErr.Code, "cause", appErr.Internal.Error())
		}

		c.JSON(appErr.StatusCode, errorBody(appErr))
	}
}

// abortWithError stops the chain with the standard error body.
func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, errorBody(appErr))
}

func errorBody(appErr *apperrors.AppError) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	}
}
