package responses

import "github.com/gin-gonic/gin"

// ErrorResponse is the body every failed request returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes the failure status and the standard {"error": ...} body.
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// AbortError is Error plus aborting the handler chain, for middleware.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
