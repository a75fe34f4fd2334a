package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ApexArbiter/SmitFinalHachkthon/internal/auth"
	"github.com/ApexArbiter/SmitFinalHachkthon/internal/store"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/middleware"
	"github.com/ApexArbiter/SmitFinalHachkthon/pkg/models"
)

// AuthHandler handles account and session requests.
type AuthHandler struct {
	Auth *auth.Service
	Log  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *auth.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Auth: svc, Log: log}
}

// Register godoc
// @Summary      Register an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.RegisterRequest  true  "Register request"
// @Success      201      {object}  models.User
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.Auth.Register(c.Request.Context(), req)
	if errors.Is(err, auth.ErrEmailTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, auth.ErrPasswordTooLong) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.Log.Error("Error registering user", zap.Error(err), zap.String("correlation_id", middleware.GetCorrelationID(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, u)
}

// Login godoc
// @Summary      Start a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.LoginRequest  true  "Login request"
// @Success      200      {object}  models.LoginResponse
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.Log.Error("Error logging in", zap.Error(err), zap.String("correlation_id", middleware.GetCorrelationID(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary      End the current session
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, _ := middleware.GetSession(c)
	if err := h.Auth.Logout(c.Request.Context(), sess); err != nil {
		h.Log.Error("Error logging out", zap.Error(err), zap.String("correlation_id", middleware.GetCorrelationID(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary      Current account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	sess, _ := middleware.GetSession(c)
	u, err := h.Auth.CurrentUser(c.Request.Context(), sess)
	if errors.Is(err, store.ErrNotFound) {
		// The session outlived its account.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
		return
	}
	if err != nil {
		h.Log.Error("Error loading account", zap.Error(err), zap.String("correlation_id", middleware.GetCorrelationID(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load account"})
		return
	}
	c.JSON(http.StatusOK, u)
}
