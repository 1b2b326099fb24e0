package usecase

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
	"github.com/polkiloo/salonbook/internal/domain/repository"
)

const totalTolerance = 0.005

// BookingUseCase maintains the appointment ledger and the points it earns.
type BookingUseCase struct {
	appointments repository.AppointmentRepository
	logger       *slog.Logger
	now          Clock
}

// NewBookingUseCase constructs BookingUseCase.
func NewBookingUseCase(appointments repository.AppointmentRepository, logger *slog.Logger, now Clock) *BookingUseCase {
	if now == nil {
		now = SystemClock
	}
	return &BookingUseCase{appointments: appointments, logger: logger, now: now}
}

// Create validates and records a reservation for userID, crediting
// floor(total*10) points to the owner in the same step.
func (u *BookingUseCase) Create(ctx context.Context, userID string, in model.AppointmentDraft) (*model.Appointment, int, error) {
	date := strings.TrimSpace(in.Date)
	slot := Sanitize(in.Time)
	method := model.PaymentMethod(strings.TrimSpace(in.PaymentMethod))

	if date == "" || slot == "" || in.Total == 0 || method == "" {
		return nil, 0, domainErrors.NewValidationError("", "Missing required fields")
	}

	now := u.now()
	if _, err := ParseAppointmentDate(date, now); err != nil {
		return nil, 0, err
	}
	if len(in.Services) == 0 {
		return nil, 0, domainErrors.NewValidationError("services", "At least one service is required")
	}
	if !method.Valid() {
		return nil, 0, domainErrors.NewValidationError("paymentMethod", "Invalid payment method")
	}
	if in.Total < 0 || in.Total > MaxTotal || math.IsNaN(in.Total) || math.IsInf(in.Total, 0) {
		return nil, 0, domainErrors.NewValidationError("total", "Invalid total")
	}

	lines, err := sanitizeServiceLines(in.Services)
	if err != nil {
		return nil, 0, err
	}

	appointment := &model.Appointment{
		ID:              uuid.NewString(),
		UserID:          userID,
		Date:            Sanitize(date),
		Time:            slot,
		Services:        lines,
		Total:           in.Total,
		PaymentMethod:   method,
		SpecialRequests: Sanitize(in.SpecialRequests),
		Status:          model.AppointmentStatusUpcoming,
		Images:          []string{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if sum := appointment.LinesTotal(); math.Abs(sum-in.Total) > totalTolerance {
		u.logger.WarnContext(ctx, "declared total differs from service lines",
			slog.String("user_id", userID),
			slog.Float64("declared", in.Total),
			slog.Float64("computed", sum),
		)
	}

	points := PointsFor(in.Total)
	created, err := u.appointments.Create(ctx, appointment, points)
	if err != nil {
		return nil, 0, err
	}

	return created, points, nil
}

// List returns the user's appointments, newest first.
func (u *BookingUseCase) List(ctx context.Context, userID string) ([]model.Appointment, error) {
	return u.appointments.ListByUser(ctx, userID)
}

// Get returns appointment id if it belongs to userID.
func (u *BookingUseCase) Get(ctx context.Context, userID, id string) (*model.Appointment, error) {
	appointment, err := u.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.UserID != userID {
		return nil, domainErrors.ErrForbidden
	}
	return appointment, nil
}

// UpdateStatus moves an owned appointment to status. Any transition between
// known statuses is allowed.
func (u *BookingUseCase) UpdateStatus(ctx context.Context, userID, id, status string) (*model.Appointment, error) {
	current, err := u.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	next := model.AppointmentStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return nil, domainErrors.NewValidationError("status", "Invalid status")
	}

	return u.appointments.UpdateStatus(ctx, id, next, nextStamp(u.now(), current.UpdatedAt))
}

// AddImage attaches an image URL to an owned appointment.
func (u *BookingUseCase) AddImage(ctx context.Context, userID, id, imageURL string) (*model.Appointment, error) {
	current, err := u.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	imageURL = Sanitize(imageURL)
	if imageURL == "" {
		return nil, domainErrors.NewValidationError("imageUrl", "Image URL is required")
	}

	return u.appointments.AddImage(ctx, id, imageURL, nextStamp(u.now(), current.UpdatedAt))
}

func sanitizeServiceLines(in []model.ServiceLine) ([]model.ServiceLine, error) {
	lines := make([]model.ServiceLine, 0, len(in))
	for _, line := range in {
		clean := model.ServiceLine{
			ID:       Sanitize(line.ID),
			Name:     Sanitize(line.Name),
			Category: Sanitize(line.Category),
			Duration: Sanitize(line.Duration),
			Price:    line.Price,
			Quantity: line.Quantity,
		}
		if clean.Name == "" && clean.ID == "" {
			return nil, domainErrors.NewValidationError("services", "Each service needs a name")
		}
		if clean.Price < 0 || math.IsNaN(clean.Price) || math.IsInf(clean.Price, 0) {
			return nil, domainErrors.NewValidationError("services", "Invalid service price")
		}
		if clean.Quantity < 0 {
			return nil, domainErrors.NewValidationError("services", "Invalid service quantity")
		}
		if clean.Quantity == 0 {
			clean.Quantity = 1
		}
		lines = append(lines, clean)
	}
	return lines, nil
}

// nextStamp keeps updatedAt strictly increasing even on coarse clocks.
func nextStamp(now, previous time.Time) time.Time {
	if now.After(previous) {
		return now
	}
	return previous.Add(time.Microsecond)
}
