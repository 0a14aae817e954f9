package handlers

import (
	"context"
	"net/http"
	"time"

	"Bookshop/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PingFunc checks a backing service.
type PingFunc func(ctx context.Context) error

type feature struct {
	Name string
	Path string
}

var accountFeatures = []feature{
	{Name: "User Registration", Path: "/users/register"},
	{Name: "User Login", Path: "/users/login"},
	{Name: "View Users", Path: "/users/list"},
	{Name: "Audit Log", Path: "/users/audit"},
	{Name: "Logout", Path: "/users/logout"},
}

// PageHandler serves the index, health and error pages.
type PageHandler struct {
	pages     Pages
	version   string
	dbPing    PingFunc
	redisPing PingFunc
}

// NewPageHandler returns a new PageHandler. A nil ping marks that backend as not monitored.
func NewPageHandler(pages Pages, version string, dbPing, redisPing PingFunc) *PageHandler {
	return &PageHandler{pages: pages, version: version, dbPing: dbPing, redisPing: redisPing}
}

// Index renders the home page.
func (h *PageHandler) Index(c *gin.Context) {
	h.pages.render(c, http.StatusOK, "index.tmpl", "Welcome", gin.H{"Features": accountFeatures})
}

// Health godoc
// @Summary      Health check
// @Description  Pings Postgres and Redis.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *PageHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := gin.H{
		"status":   "OK",
		"time":     time.Now().UTC().Format(time.RFC3339),
		"version":  h.version,
		"database": "Connected",
		"sessions": "Connected",
	}
	if h.dbPing != nil {
		if err := h.dbPing(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "DEGRADED"
			body["database"] = "Disconnected"
		}
	}
	if h.redisPing != nil {
		if err := h.redisPing(ctx); err != nil {
			status = http.StatusServiceUnavailable
			body["status"] = "DEGRADED"
			body["sessions"] = "Disconnected"
		}
	}
	c.JSON(status, body)
}

// NotFound renders the 404 page for unmatched routes.
func (h *PageHandler) NotFound(c *gin.Context) {
	h.pages.errorPage(c, http.StatusNotFound, "Page Not Found", "The page you are looking for does not exist.")
}

// Recovery renders the generic error page for a recovered panic. Nothing
// about the panic is shown to the client.
func (h *PageHandler) Recovery(c *gin.Context, recovered any) {
	logger.WithContext(c.Request.Context(), h.pages.log).Error("panic recovered",
		zap.Any("panic", recovered),
		zap.String("path", c.Request.URL.Path),
	)
	h.pages.errorPage(c, http.StatusInternalServerError, "Server Error", "Something went wrong.")
	c.Abort()
}
