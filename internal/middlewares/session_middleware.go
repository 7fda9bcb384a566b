package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"portfolio/internal/models"
	"portfolio/internal/services"
)

const (
	sessionContextKey = "session"
	adminContextKey   = "isAdmin"
)

type SessionOptions struct {
	CookieName string
	Secure     bool
}

// Session attaches the caller's server-side session to the request context,
// starting a fresh anonymous one when the cookie is missing or no longer
// valid. It also resolves the admin flag once per request.
func Session(sessions *services.SessionService, opts SessionOptions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		token, _ := c.Cookie(opts.CookieName)
		sess, err := sessions.Resume(ctx, token)
		if err != nil {
			logger.Error("failed to load session", zap.Error(err))
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}

		if sess == nil {
			var newToken string
			sess, newToken, err = sessions.Start(ctx)
			if err != nil {
				logger.Error("failed to start session", zap.Error(err))
				c.AbortWithStatus(http.StatusServiceUnavailable)
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(opts.CookieName, newToken, int(sessions.TTL().Seconds()), "/", "", opts.Secure, true)
		}

		isAdmin, err := sessions.IsAuthenticated(ctx, sess)
		if err != nil {
			logger.Error("failed to read session state", zap.Error(err))
			c.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}

		c.Set(sessionContextKey, sess)
		c.Set(adminContextKey, isAdmin)
		c.Next()
	}
}

// CurrentSession returns the session set by Session, or nil outside it.
func CurrentSession(c *gin.Context) *models.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*models.Session)
	return sess
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(adminContextKey)
}

// MarkAdmin updates the request's view after a login or logout so the page
// rendered in the same request reflects it.
func MarkAdmin(c *gin.Context, isAdmin bool) {
	c.Set(adminContextKey, isAdmin)
}
