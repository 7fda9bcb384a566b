package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin lets authenticated admin sessions through and redirects
// everyone else to redirectTo. It must run after Session.
func RequireAdmin(redirectTo string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.Redirect(http.StatusFound, redirectTo)
			c.Abort()
			return
		}
		c.Next()
	}
}
