package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/polkiloo/salonbook/internal/domain/model"
)

// Amount accepts a JSON number or a numeric string.
type Amount float64

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*a = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", s)
		}
		*a = Amount(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// ServiceLineRequest is one cart entry of a booking.
type ServiceLineRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Duration string `json:"duration"`
	Price    Amount `json:"price"`
	Quantity int    `json:"quantity"`
}

// CreateAppointmentRequest is the booking payload.
type CreateAppointmentRequest struct {
	Date            string               `json:"date"`
	Time            string               `json:"time"`
	Services        []ServiceLineRequest `json:"services"`
	Total           Amount               `json:"total"`
	PaymentMethod   string               `json:"paymentMethod"`
	SpecialRequests string               `json:"specialRequests"`
}

// ToModel converts the request to a booking draft.
func (r CreateAppointmentRequest) ToModel() model.AppointmentDraft {
	lines := make([]model.ServiceLine, 0, len(r.Services))
	for _, s := range r.Services {
		lines = append(lines, model.ServiceLine{
			ID:       s.ID,
			Name:     s.Name,
			Category: s.Category,
			Duration: s.Duration,
			Price:    float64(s.Price),
			Quantity: s.Quantity,
		})
	}
	return model.AppointmentDraft{
		Date:            r.Date,
		Time:            r.Time,
		Services:        lines,
		Total:           float64(r.Total),
		PaymentMethod:   r.PaymentMethod,
		SpecialRequests: r.SpecialRequests,
	}
}

// UpdateStatusRequest changes an appointment status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// AddImageRequest attaches an image URL.
type AddImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

// AppointmentResponse is the public view of an appointment.
type AppointmentResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Date            string              `json:"date"`
	Time            string              `json:"time"`
	Services        []model.ServiceLine `json:"services"`
	Total           float64             `json:"total"`
	PaymentMethod   string              `json:"paymentMethod"`
	SpecialRequests string              `json:"specialRequests"`
	Status          string              `json:"status"`
	Images          []string            `json:"images"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// NewAppointmentResponse converts a domain appointment.
func NewAppointmentResponse(a *model.Appointment) AppointmentResponse {
	services := a.Services
	if services == nil {
		services = []model.ServiceLine{}
	}
	images := a.Images
	if images == nil {
		images = []string{}
	}
	return AppointmentResponse{
		ID:              a.ID,
		UserID:          a.UserID,
		Date:            a.Date,
		Time:            a.Time,
		Services:        services,
		Total:           a.Total,
		PaymentMethod:   string(a.PaymentMethod),
		SpecialRequests: a.SpecialRequests,
		Status:          string(a.Status),
		Images:          images,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// AppointmentEnvelope wraps a single appointment.
type AppointmentEnvelope struct {
	Success     bool                `json:"success"`
	Appointment AppointmentResponse `json:"appointment"`
}

// CreatedAppointmentResponse adds the points credited by a booking.
type CreatedAppointmentResponse struct {
	Success      bool                `json:"success"`
	Appointment  AppointmentResponse `json:"appointment"`
	PointsEarned int                 `json:"pointsEarned"`
}

// AppointmentListResponse wraps a user's appointments.
type AppointmentListResponse struct {
	Success      bool                  `json:"success"`
	Appointments []AppointmentResponse `json:"appointments"`
}
