package util

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the payload of successful JSON replies.
type Response map[string]interface{}

// JSON writes a success body with the given status.
func JSON(c *gin.Context, status int, data Response) {
	c.JSON(status, data)
}

// Error writes the uniform error envelope {error: "HTTP <code>", detail}.
func Error(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{
		"error":  fmt.Sprintf("HTTP %d", status),
		"detail": detail,
	})
}

// AbortError writes the error envelope and stops the handler chain.
func AbortError(c *gin.Context, status int, detail string) {
	Error(c, status, detail)
	c.Abort()
}

// InternalError hides internals behind a generic 500 message.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}
