package respond

import (
	"github.com/gin-gonic/gin"

	"docintake-backend/internal/shared/telemetry"
)

// ErrorResponse is the envelope returned for every failed request.
// Internal detail stays in the logs; the body carries only a stable string.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Error sends the standardized error envelope and logs the occurrence.
func Error(c *gin.Context, status int, message string, cause error) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if cause != nil {
		fields["err"] = cause.Error()
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorResponse{Success: false, Error: message})
}
