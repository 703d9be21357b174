package response

import (
	"candidatehub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response standardizes the API JSON response
type Response struct {
	Status    string                `json:"status"`
	Message   string                `json:"message"`
	Data      interface{}           `json:"data,omitempty"`
	Errors    []apperror.FieldError `json:"errors,omitempty"`
	RequestID string                `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Status:    StatusSuccess,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response. fields may be nil.
func Error(c *gin.Context, code int, message string, fields []apperror.FieldError) {
	c.JSON(code, Response{
		Status:    StatusError,
		Message:   message,
		Errors:    fields,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
