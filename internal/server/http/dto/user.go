package dto

import (
	"time"

	"github.com/polkiloo/salonbook/internal/domain/model"
)

// UserResponse is the public view of a user. It never carries the password hash.
type UserResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Points       int       `json:"points"`
	Appointments []string  `json:"appointments"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u *model.User) UserResponse {
	ids := u.AppointmentIDs
	if ids == nil {
		ids = []string{}
	}
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		Points:       u.Points,
		Appointments: ids,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// UserEnvelope wraps a single user.
type UserEnvelope struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
}

// ProfileUpdateRequest carries optional profile fields. Absent fields stay unchanged.
type ProfileUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// ToModel converts the request to a domain update.
func (r ProfileUpdateRequest) ToModel() model.ProfileUpdate {
	return model.ProfileUpdate{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// PointsResponse reports the loyalty balance.
type PointsResponse struct {
	Success bool `json:"success"`
	Points  int  `json:"points"`
}
