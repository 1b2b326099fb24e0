package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/salonbook/internal/server/http/dto"
)

// ProfileHandler serves the authenticated user's profile.
type ProfileHandler struct {
	facade ProfileFacade
	logger *slog.Logger
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(facade ProfileFacade, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{facade: facade, logger: logger}
}

// Get handles GET /api/users/profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	user, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err, errorMessages{notFound: "User not found", internal: "Failed to retrieve profile"})
		return
	}
	c.JSON(http.StatusOK, dto.UserEnvelope{Success: true, User: dto.NewUserResponse(user)})
}

// Update handles PATCH /api/users/profile.
func (h *ProfileHandler) Update(c *gin.Context) {
	var req dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, invalidBody)
		return
	}

	user, err := h.facade.UpdateProfile(c.Request.Context(), CurrentUserID(c), req.ToModel())
	if err != nil {
		respondError(c, h.logger, err, errorMessages{
			notFound: "User not found",
			conflict: "Email already in use",
			internal: "Failed to update profile",
		})
		return
	}
	c.JSON(http.StatusOK, dto.UserEnvelope{Success: true, User: dto.NewUserResponse(user)})
}

// Points handles GET /api/users/points.
func (h *ProfileHandler) Points(c *gin.Context) {
	points, err := h.facade.Points(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err, errorMessages{notFound: "User not found", internal: "Failed to retrieve points"})
		return
	}
	c.JSON(http.StatusOK, dto.PointsResponse{Success: true, Points: points})
}
