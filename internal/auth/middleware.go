package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const contextKeyUsername = "username"

// UsernameFromContext returns the authenticated username set by CurrentUser or
// RequireSession. Empty if the request is anonymous.
func UsernameFromContext(c *gin.Context) string {
	return c.GetString(contextKeyUsername)
}

// SetUsername marks the request as authenticated for the rest of the chain,
// e.g. right after a successful login.
func SetUsername(c *gin.Context, username string) {
	c.Set(contextKeyUsername, username)
}

// CurrentUser attaches the session's username to the context when the request
// carries a valid session cookie. Anonymous requests pass through unchanged.
func CurrentUser(sessions *Store, cookie CookieConfig, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		if username, ok := resolve(c, sessions, cookie, log); ok {
			c.Set(contextKeyUsername, username)
		}
		c.Next()
	}
}

// RequireSession guards protected routes. Anonymous requests are redirected
// to loginURL instead of being rejected with an error status.
func RequireSession(sessions *Store, cookie CookieConfig, loginURL string, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		if UsernameFromContext(c) != "" {
			c.Next()
			return
		}
		username, ok := resolve(c, sessions, cookie, log)
		if !ok {
			c.Redirect(http.StatusFound, loginURL)
			c.Abort()
			return
		}
		c.Set(contextKeyUsername, username)
		c.Next()
	}
}

func resolve(c *gin.Context, sessions *Store, cookie CookieConfig, log *zap.Logger) (string, bool) {
	token := SessionToken(c, cookie)
	if token == "" {
		return "", false
	}
	sess, ok, err := sessions.Resolve(c.Request.Context(), token)
	if err != nil {
		log.Error("resolve session", zap.Error(err))
		return "", false
	}
	if !ok {
		return "", false
	}
	return sess.Username, true
}
