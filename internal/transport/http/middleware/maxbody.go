package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "go-gin-addressbook/internal/transport/http/response"
)

const DefaultMaxBody = 16 << 20

// MaxBodyBytes caps the request body. Binding fails once the limit is
// crossed, which the action layer reports as 413.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Error(http.StatusRequestEntityTooLarge, ""))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
