package middleware

import (
	"log"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs every incoming request's method and path.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		log.Printf("Incoming %s : %s", c.Request.Method, c.Request.URL.Path)
		c.Next()
	}
}
