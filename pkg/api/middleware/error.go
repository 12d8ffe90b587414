package middleware

import (
	"log"
	"net/http"

	"mapphone-go/pkg/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler turns a panicking handler into a 500 with the usual error body
func ErrorHandler() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
		c.Abort()
	})
}
