package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse writes the marketplace reply envelope: the HTTP status echoed
// in the body as "status", a human-readable "message", and the payload under
// "data". Handlers never write raw bodies, so API consumers can rely on the
// envelope shape.
func JSONResponse(c *gin.Context, status int, data any, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JSONError writes the failure variant of the envelope, carrying the error
// text under "error" instead of a "data" payload.
func JSONError(c *gin.Context, status int, err error, message string) {
	c.JSON(status, gin.H{
		"status":  status,
		"message": message,
		"error":   err.Error(),
	})
}
