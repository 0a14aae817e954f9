package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"Bookshop/internal/auth"
	"Bookshop/internal/config"
	"Bookshop/internal/handlers"
	"Bookshop/internal/metrics"
	"Bookshop/internal/middleware"
	"Bookshop/internal/repo"
	"Bookshop/internal/service"
	"Bookshop/internal/view"
	"Bookshop/internal/weather"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Database is the Postgres handle the routes need: queries plus a health ping.
type Database interface {
	repo.DB
	Ping(ctx context.Context) error
}

// Deps are the shared handles injected into the router.
type Deps struct {
	DB       Database
	Redis    *redis.Client
	Log      *zap.Logger
	Registry *prometheus.Registry
}

func newRouter(cfg config.Config, d Deps) (*gin.Engine, error) {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := Setup(r, cfg, d); err != nil {
		return nil, err
	}
	return r, nil
}

// Setup registers middleware and all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, d Deps) error {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	if d.Registry == nil {
		d.Registry = prometheus.NewRegistry()
	}

	if err := r.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return fmt.Errorf("HTTP_TRUSTED_PROXIES: %w", err)
	}

	tmpl, err := view.Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	httpMetrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{Registerer: d.Registry})
	if err != nil {
		return err
	}
	authMetrics, err := metrics.NewAuth(d.Registry)
	if err != nil {
		return err
	}

	sessions := auth.NewStore(d.Redis, cfg.Session.TTL.Duration())
	cookie := auth.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.Secure,
		MaxAge: cfg.Session.TTL.Duration(),
	}

	userRepo := repo.NewPGUserRepo(d.DB)
	auditRepo := repo.NewPGAuditRepo(d.DB)
	bookRepo := repo.NewPGBookRepo(d.DB)

	auditSvc := service.NewAuditService(auditRepo, cfg.Auth.AuditTimeout.Duration(), log, authMetrics)
	userSvc, err := service.NewUserService(userRepo, auth.NewHasher(cfg.Auth.BcryptCost), sessions, auditSvc, log, authMetrics)
	if err != nil {
		return err
	}
	bookSvc := service.NewBookService(bookRepo)
	weatherSvc := service.NewWeatherService(
		weather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.Timeout.Duration()),
		cfg.Weather.DefaultCity,
	)

	pages := handlers.NewPages(cfg.App.BasePath, log)
	pageHandler := handlers.NewPageHandler(pages, cfg.App.Version, d.DB.Ping, func(ctx context.Context) error {
		return d.Redis.Ping(ctx).Err()
	})

	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		httpMetrics.Handler(),
		gin.CustomRecovery(pageHandler.Recovery),
		auth.CurrentUser(sessions, cookie, log),
	)

	r.StaticFS("/static", view.Static())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, cfg.App.URL("/swagger/index.html")) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL(cfg.App.URL("/swagger-doc.json")),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	h := handlers.Handlers{
		Pages:   pageHandler,
		Auth:    handlers.NewAuthHandler(userSvc, auditSvc, sessions, cookie, pages),
		Books:   handlers.NewBookHandler(bookSvc, pages),
		API:     handlers.NewAPIHandler(bookSvc, log),
		Weather: handlers.NewWeatherHandler(weatherSvc, pages),
	}
	requireSession := auth.RequireSession(sessions, cookie, cfg.App.URL("/users/login"), log)
	apiCORS := cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	})
	handlers.RegisterRoutes(r, h, requireSession, apiCORS)

	return nil
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}
