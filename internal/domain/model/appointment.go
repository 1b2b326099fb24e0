package model

import (
	"slices"
	"time"
)

// AppointmentStatus describes the appointment lifecycle.
type AppointmentStatus string

const (
	AppointmentStatusUpcoming  AppointmentStatus = "upcoming"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusUpcoming, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod is the way the customer intends to pay at the salon.
type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "credit-card"
	PaymentMethodPayPal       PaymentMethod = "paypal"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank-transfer"
)

// Valid reports whether m is an accepted payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodCash, PaymentMethodBankTransfer:
		return true
	}
	return false
}

// ServiceLine is a sanitized copy of a cart entry stored with the appointment.
type ServiceLine struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Duration string  `json:"duration,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Appointment is a ledger entry owned by exactly one user.
type Appointment struct {
	ID              string
	UserID          string
	Date            string
	Time            string
	Services        []ServiceLine
	Total           float64
	PaymentMethod   PaymentMethod
	SpecialRequests string
	Status          AppointmentStatus
	Images          []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Clone returns a deep copy of the appointment.
func (a *Appointment) Clone() *Appointment {
	if a == nil {
		return nil
	}
	c := *a
	c.Services = slices.Clone(a.Services)
	c.Images = slices.Clone(a.Images)
	return &c
}

// LinesTotal sums price*quantity over the service lines.
func (a *Appointment) LinesTotal() float64 {
	var sum float64
	for _, line := range a.Services {
		sum += line.Price * float64(line.Quantity)
	}
	return sum
}

// AppointmentDraft is a reservation request before validation.
type AppointmentDraft struct {
	Date            string
	Time            string
	Services        []ServiceLine
	Total           float64
	PaymentMethod   string
	SpecialRequests string
}
