package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/salonbook/internal/server/http/dto"
)

const appointmentNotFound = "Appointment not found"

// AppointmentHandler handles booking endpoints.
type AppointmentHandler struct {
	facade AppointmentFacade
	logger *slog.Logger
}

// NewAppointmentHandler constructs AppointmentHandler.
func NewAppointmentHandler(facade AppointmentFacade, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{facade: facade, logger: logger}
}

// Create handles POST /api/appointments.
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, invalidBody)
		return
	}

	appointment, points, err := h.facade.CreateAppointment(c.Request.Context(), CurrentUserID(c), req.ToModel())
	if err != nil {
		respondError(c, h.logger, err, errorMessages{notFound: "User not found", internal: "Failed to create appointment"})
		return
	}

	c.JSON(http.StatusCreated, dto.CreatedAppointmentResponse{
		Success:      true,
		Appointment:  dto.NewAppointmentResponse(appointment),
		PointsEarned: points,
	})
}

// List handles GET /api/appointments.
func (h *AppointmentHandler) List(c *gin.Context) {
	appointments, err := h.facade.Appointments(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		respondError(c, h.logger, err, errorMessages{internal: "Failed to retrieve appointments"})
		return
	}

	resp := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		resp = append(resp, dto.NewAppointmentResponse(&appointments[i]))
	}
	c.JSON(http.StatusOK, dto.AppointmentListResponse{Success: true, Appointments: resp})
}

// Get handles GET /api/appointments/:id.
func (h *AppointmentHandler) Get(c *gin.Context) {
	appointment, err := h.facade.Appointment(c.Request.Context(), CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, errorMessages{notFound: appointmentNotFound, internal: "Failed to retrieve appointment"})
		return
	}
	c.JSON(http.StatusOK, dto.AppointmentEnvelope{Success: true, Appointment: dto.NewAppointmentResponse(appointment)})
}

// UpdateStatus handles PATCH /api/appointments/:id/status.
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, invalidBody)
		return
	}

	appointment, err := h.facade.UpdateAppointmentStatus(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err, errorMessages{notFound: appointmentNotFound, internal: "Failed to update appointment"})
		return
	}
	c.JSON(http.StatusOK, dto.AppointmentEnvelope{Success: true, Appointment: dto.NewAppointmentResponse(appointment)})
}

// AddImage handles POST /api/appointments/:id/images.
func (h *AppointmentHandler) AddImage(c *gin.Context) {
	var req dto.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, invalidBody)
		return
	}

	appointment, err := h.facade.AddAppointmentImage(c.Request.Context(), CurrentUserID(c), c.Param("id"), req.ImageURL)
	if err != nil {
		respondError(c, h.logger, err, errorMessages{notFound: appointmentNotFound, internal: "Failed to add image"})
		return
	}
	c.JSON(http.StatusOK, dto.AppointmentEnvelope{Success: true, Appointment: dto.NewAppointmentResponse(appointment)})
}
