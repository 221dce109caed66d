package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/simpleblog/backend/internal/model"
	"github.com/simpleblog/backend/internal/service"
	"github.com/simpleblog/backend/internal/template"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	svc *service.AuthService
	log logrus.FieldLogger
}

func NewAuthHandler(svc *service.AuthService, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", template.NewPage("Admin", "/admin"))
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body model.AuthRequest true "Username and password"
// @Success 303
// @Failure 401 {object} model.MessageResponse
// @Router /admin [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.AuthRequest
	if err := c.ShouldBind(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	h.setSessionCookie(c, token)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", template.NewPage("Register", "/register"))
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param request body model.AuthRequest true "Username and password"
// @Success 201 {object} model.RegisterResponse
// @Failure 400 {object} model.MessageResponse
// @Failure 403 {object} model.MessageResponse
// @Failure 409 {object} model.MessageResponse
// @Failure 500 {object} model.MessageResponse
// @Router /register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.AuthRequest
	if err := c.ShouldBind(&req); err != nil {
		writeMessage(c, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.RegisterResponse{
		Message: "User Created",
		User:    *user,
	})
}

// Logout godoc
// @Summary Logout
// @Tags auth
// @Success 302
// @Router /logout [get]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, token, cfg.MaxAge, cfg.Path, cfg.Domain, cfg.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	cfg := h.svc.CookieConfig()
	c.SetSameSite(cfg.SameSite)
	c.SetCookie(cfg.Name, "", -1, cfg.Path, cfg.Domain, cfg.Secure, true)
}

func (h *AuthHandler) writeAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(c, http.StatusUnauthorized, "Invalid Credentials")
	case errors.Is(err, service.ErrUnauthorized):
		writeMessage(c, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrDuplicateUser):
		writeMessage(c, http.StatusConflict, "User already exists")
	case errors.Is(err, service.ErrInvalidInput):
		writeMessage(c, http.StatusBadRequest, "invalid input")
	case errors.Is(err, service.ErrForbidden):
		writeMessage(c, http.StatusForbidden, "signup disabled")
	default:
		requestLog(c, h.log).WithError(err).Error("auth request failed")
		writeMessage(c, http.StatusInternalServerError, "internal server error")
	}
}
