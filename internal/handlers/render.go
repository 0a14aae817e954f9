package handlers

import (
	"net/http"

	"Bookshop/internal/auth"
	"Bookshop/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pages renders HTML templates with the fields every page needs.
type Pages struct {
	basePath string
	log      *zap.Logger
}

// NewPages returns a Pages renderer that prefixes links with basePath.
func NewPages(basePath string, log *zap.Logger) Pages {
	if log == nil {
		log = zap.NewNop()
	}
	return Pages{basePath: basePath, log: log}
}

// URL prefixes path with the configured base path.
func (p Pages) URL(path string) string {
	return p.basePath + path
}

func (p Pages) render(c *gin.Context, status int, name, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title + " - Bertie's Books"
	data["Base"] = p.basePath
	data["User"] = auth.UsernameFromContext(c)
	c.HTML(status, name, data)
}

func (p Pages) errorPage(c *gin.Context, status int, title, message string) {
	p.render(c, status, "error.tmpl", title, gin.H{"Message": message})
}

// serverError logs err with the request id and renders the generic 500 page.
func (p Pages) serverError(c *gin.Context, msg string, err error) {
	_ = c.Error(err)
	logger.WithContext(c.Request.Context(), p.log).Error(msg, zap.Error(err))
	p.errorPage(c, http.StatusInternalServerError, "Server Error", "Something went wrong. Please try again later.")
}
