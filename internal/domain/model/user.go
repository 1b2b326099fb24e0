package model

import (
	"math"
	"slices"
	"time"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
)

// ErrPointsLimit is returned when a credit would overflow a points balance.
var ErrPointsLimit = domainErrors.NewValidationError("total", "Points balance limit reached")

// CreditPoints returns balance increased by points. Negative credits and
// results past the int range are rejected with ErrPointsLimit.
func CreditPoints(balance, points int) (int, error) {
	if points < 0 || balance > math.MaxInt-points {
		return balance, ErrPointsLimit
	}
	return balance + points, nil
}

// User represents a registered salon customer.
type User struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	PasswordHash   string
	Points         int
	AppointmentIDs []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Clone returns a copy that shares no mutable state with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.AppointmentIDs = slices.Clone(u.AppointmentIDs)
	return &c
}

// ProfileUpdate carries optional profile changes; nil fields are left untouched.
type ProfileUpdate struct {
	Name  *string
	Email *string
	Phone *string
}
