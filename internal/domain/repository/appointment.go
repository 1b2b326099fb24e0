package repository

import (
	"context"
	"time"

	"github.com/polkiloo/salonbook/internal/domain/model"
)

// AppointmentRepository is the global appointment ledger.
type AppointmentRepository interface {
	// Create inserts appointment, appends it to the owner's list and credits
	// points to the owner as a single atomic step.
	Create(ctx context.Context, appointment *model.Appointment, points int) (*model.Appointment, error)
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	// ListByUser returns appointments newest first.
	ListByUser(ctx context.Context, userID string) ([]model.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus, at time.Time) (*model.Appointment, error)
	AddImage(ctx context.Context, id, url string, at time.Time) (*model.Appointment, error)
}
