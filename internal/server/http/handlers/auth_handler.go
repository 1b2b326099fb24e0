package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/salonbook/internal/server/http/dto"
	"github.com/polkiloo/salonbook/internal/server/http/middleware"
)

// AuthHandler processes registration, login, logout and session verification.
type AuthHandler struct {
	facade AuthFacade
	logger *slog.Logger
}

// NewAuthHandler creates AuthHandler instance.
func NewAuthHandler(facade AuthFacade, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{facade: facade, logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, invalidBody)
		return
	}

	user, token, err := h.facade.Register(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		respondError(c, h.logger, err, errorMessages{conflict: "Email already registered", internal: "Registration failed"})
		return
	}

	c.JSON(http.StatusCreated, dto.AuthResponse{Success: true, User: dto.NewUserResponse(user), SessionID: token})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, invalidBody)
		return
	}

	user, token, err := h.facade.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err, errorMessages{internal: "Login failed"})
		return
	}

	c.JSON(http.StatusOK, dto.AuthResponse{Success: true, User: dto.NewUserResponse(user), SessionID: token})
}

// Logout handles POST /api/auth/logout. It always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	_ = c.ShouldBindJSON(&req)

	token := req.SessionID
	if token == "" {
		token = middleware.ExtractToken(c)
	}

	if err := h.facade.Logout(c.Request.Context(), token); err != nil {
		h.logger.Warn("logout failed", slog.String("error", err.Error()))
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "Logged out successfully"})
}

// Verify handles GET /api/auth/verify.
func (h *AuthHandler) Verify(c *gin.Context) {
	user, err := h.facade.Verify(c.Request.Context(), middleware.ExtractToken(c))
	if err != nil {
		respondError(c, h.logger, err, errorMessages{
			unauthorized: "Invalid or expired session",
			notFound:     "User not found",
			internal:     "Verification failed",
		})
		return
	}

	c.JSON(http.StatusOK, dto.UserEnvelope{Success: true, User: dto.NewUserResponse(user)})
}
