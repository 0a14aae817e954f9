package handlers

import "github.com/gin-gonic/gin"

// Handlers groups the handlers mounted by RegisterRoutes.
type Handlers struct {
	Pages   *PageHandler
	Auth    *AuthHandler
	Books   *BookHandler
	API     *APIHandler
	Weather *WeatherHandler
}

// RegisterRoutes mounts the site pages and the JSON API on r.
// requireSession guards the member pages; apiMiddleware runs on /api only.
func RegisterRoutes(r *gin.Engine, h Handlers, requireSession gin.HandlerFunc, apiMiddleware ...gin.HandlerFunc) {
	r.GET("/", h.Pages.Index)
	r.GET("/health", h.Pages.Health)
	r.NoRoute(h.Pages.NotFound)

	users := r.Group("/users")
	users.GET("/register", h.Auth.RegisterForm)
	users.POST("/registered", h.Auth.Register)
	users.GET("/login", h.Auth.LoginForm)
	users.POST("/loggedin", h.Auth.Login)
	users.GET("/logout", h.Auth.Logout)

	members := users.Group("", requireSession)
	members.GET("/list", h.Auth.ListUsers)
	members.GET("/audit", h.Auth.Audit)

	books := r.Group("/books")
	books.GET("/list", h.Books.List)
	books.GET("/bargainbooks", h.Books.Bargains)
	books.GET("/search", h.Books.SearchForm)
	books.POST("/search", h.Books.Search)
	books.GET("/search-result", h.Books.Search)
	books.GET("/addbook", h.Books.AddForm)
	books.POST("/bookadded", h.Books.Add)

	api := r.Group("/api", apiMiddleware...)
	api.GET("/books", h.API.ListBooks)
	api.GET("/books/:id", h.API.GetBook)

	r.GET("/weather", h.Weather.Form)
	r.POST("/weather", h.Weather.Lookup)
}
