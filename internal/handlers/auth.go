package handlers

import (
	"errors"
	"net/http"

	"Bookshop/internal/auth"
	"Bookshop/internal/dto"
	"Bookshop/internal/logger"
	"Bookshop/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	loginFailedMessage   = "Invalid username or password."
	usernameTakenMessage = "Username already exists. Please choose a different username."
)

// AuthHandler handles registration, login, logout and the protected user pages.
type AuthHandler struct {
	users    *service.UserService
	audit    *service.AuditService
	sessions *auth.Store
	cookie   auth.CookieConfig
	pages    Pages
}

// NewAuthHandler returns a new AuthHandler.
func NewAuthHandler(users *service.UserService, audit *service.AuditService, sessions *auth.Store, cookie auth.CookieConfig, pages Pages) *AuthHandler {
	return &AuthHandler{users: users, audit: audit, sessions: sessions, cookie: cookie, pages: pages}
}

// RegisterForm renders the empty registration form.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	h.pages.render(c, http.StatusOK, "register.tmpl", "Register", gin.H{"Form": dto.RegisterForm{}})
}

// Register creates an account from the posted form and shows the confirmation page.
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		h.pages.errorPage(c, http.StatusBadRequest, "Bad Request", "The registration form could not be read.")
		return
	}

	u, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
	})
	form.Password = ""

	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		h.pages.render(c, http.StatusBadRequest, "register.tmpl", "Register", gin.H{"Form": form, "Errors": ve.Messages})
	case errors.Is(err, service.ErrUsernameTaken):
		h.pages.render(c, http.StatusConflict, "register.tmpl", "Register", gin.H{"Form": form, "Errors": []string{usernameTakenMessage}})
	case err != nil:
		h.pages.serverError(c, "register user", err)
	default:
		h.pages.render(c, http.StatusOK, "registered.tmpl", "Registration Successful", gin.H{"Registered": u})
	}
}

// LoginForm renders the login form.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	h.pages.render(c, http.StatusOK, "login.tmpl", "Login", gin.H{"Username": ""})
}

// Login verifies the posted credentials and starts a new session on success.
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		// A malformed body is still an attempt and gets audited as blank input.
		form = dto.LoginForm{}
	}

	u, token, err := h.users.Login(c.Request.Context(), form.Username, form.Password, c.ClientIP())
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		h.pages.render(c, http.StatusUnauthorized, "login.tmpl", "Login", gin.H{
			"Username": form.Username,
			"Errors":   []string{loginFailedMessage},
		})
		return
	case err != nil:
		h.pages.serverError(c, "login", err)
		return
	}

	if prev := auth.SessionToken(c, h.cookie); prev != "" && prev != token {
		if err := h.sessions.Destroy(c.Request.Context(), prev); err != nil {
			logger.WithContext(c.Request.Context(), h.pages.log).Warn("destroy previous session", zap.Error(err))
		}
	}
	auth.SetSessionCookie(c, h.cookie, token)
	auth.SetUsername(c, u.Username)
	h.pages.render(c, http.StatusOK, "loggedin.tmpl", "Login Successful", nil)
}

// ListUsers shows every registered user without password hashes.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.pages.serverError(c, "list users", err)
		return
	}
	h.pages.render(c, http.StatusOK, "users.tmpl", "Users", gin.H{"Users": users})
}

// Audit shows the login audit log, most recent attempt first.
func (h *AuthHandler) Audit(c *gin.Context) {
	entries, err := h.audit.List(c.Request.Context())
	if err != nil {
		h.pages.serverError(c, "list audit log", err)
		return
	}
	h.pages.render(c, http.StatusOK, "audit.tmpl", "Audit Log", gin.H{"Entries": entries})
}

// Logout destroys the session if there is one and returns to the home page.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token := auth.SessionToken(c, h.cookie); token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			logger.WithContext(c.Request.Context(), h.pages.log).Warn("destroy session", zap.Error(err))
		}
	}
	auth.ClearSessionCookie(c, h.cookie)
	c.Redirect(http.StatusFound, h.pages.URL("/"))
}
