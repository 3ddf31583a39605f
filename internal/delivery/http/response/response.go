package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response. Success carries a message,
// failures carry an error string; the two are never set together.
type Response struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		RequestID: requestID(c),
	})
}

// Error sends an error response with a user-facing reason
func Error(c *gin.Context, code int, reason string) {
	c.JSON(code, Response{
		Success:   false,
		Error:     reason,
		RequestID: requestID(c),
	})
}

func requestID(c *gin.Context) string {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion
	return idStr
}
