package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON envelope.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Deltas    interface{} `json:"deltas,omitempty"`
	Error     interface{} `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success sends a success response.
func Success(c *gin.Context, code int, message string, data interface{}) {
	SuccessWithDeltas(c, code, message, data, nil)
}

// SuccessWithDeltas sends a success response carrying the grid instructions
// the sync engine emitted for this operation.
func SuccessWithDeltas(c *gin.Context, code int, message string, data interface{}, deltas interface{}) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)

	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Deltas:    deltas,
		RequestID: idStr,
	})
}

// Error sends an error response.
func Error(c *gin.Context, code int, message string, err interface{}) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)

	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     err,
		RequestID: idStr,
	})
}
