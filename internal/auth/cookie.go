package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieConfig describes the session cookie sent to the browser.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// SetSessionCookie writes token as the session cookie (Path=/, SameSite=Lax, HttpOnly).
func SetSessionCookie(c *gin.Context, cfg CookieConfig, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Name, token, int(cfg.MaxAge.Seconds()), "/", "", cfg.Secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Name, "", -1, "/", "", cfg.Secure, true)
}

// SessionToken returns the session token carried by the request, or "".
func SessionToken(c *gin.Context, cfg CookieConfig) string {
	token, err := c.Cookie(cfg.Name)
	if err != nil {
		return ""
	}
	return token
}
