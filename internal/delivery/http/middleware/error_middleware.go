package middleware

import (
	"errors"
	"net/http"

	"candidatehub-backend/internal/delivery/http/response"
	"candidatehub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler renders the last error attached with c.Error as the response
// envelope. Domain failures carry their wrapped cause in the message.
func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.Internal(err)
		}

		fields := []zap.Field{
			zap.String("request_id", c.GetString("RequestID")),
			zap.String("path", c.FullPath()),
			zap.Int("status", appErr.Code),
			zap.Error(err),
		}
		switch appErr.Kind {
		case apperror.KindValidation, apperror.KindNotFound:
			log.Debug("request rejected", fields...)
		case apperror.KindUnexpected:
			log.Error("unexpected error", fields...)
		default:
			log.Warn("request failed", fields...)
		}

		switch appErr.Kind {
		case apperror.KindValidation:
			response.Error(c, appErr.Code, appErr.Message, appErr.Fields)
		case apperror.KindNotFound:
			response.Error(c, http.StatusNotFound, appErr.Message, nil)
		default:
			response.Error(c, appErr.Code, appErr.Error(), nil)
		}
	}
}
