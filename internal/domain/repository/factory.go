package repository

import "context"

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Sessions() SessionRepository
	Appointments() AppointmentRepository
	HealthCheck(ctx context.Context) error
	Close()
}
