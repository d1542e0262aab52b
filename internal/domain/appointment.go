package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusScheduled      AppointmentStatus = "scheduled"
	AppointmentStatusPendingDeposit AppointmentStatus = "pending_deposit"
	AppointmentStatusConfirmed      AppointmentStatus = "confirmed"
	AppointmentStatusAttended       AppointmentStatus = "attended"
	AppointmentStatusNoShow         AppointmentStatus = "no_show"
	AppointmentStatusCancelled      AppointmentStatus = "cancelled"
	AppointmentStatusClosed         AppointmentStatus = "closed"
)

// PaymentMethod defines how funds moved: physical cash or bank transfer.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

// Appointment is a read-only snapshot of a booked service, owned by the
// scheduling system. The engine never mutates it.
type Appointment struct {
	ID             string            `json:"id"`
	ProfessionalID string            `json:"professional_id"`
	ClientID       string            `json:"client_id"`
	ServiceID      string            `json:"service_id"`
	Date           time.Time         `json:"date"`
	Status         AppointmentStatus `json:"status"`
	BasePrice      decimal.Decimal   `json:"base_price"`
	FinalPrice     decimal.Decimal   `json:"final_price"`
	Payments       []Payment         `json:"payments"`
}

// EarnsRevenue reports whether the appointment counts toward performance
// figures. A closed appointment was rendered and fully settled, so it earns
// revenue the same as an attended one.
func (a Appointment) EarnsRevenue() bool {
	return a.Status == AppointmentStatusAttended || a.Status == AppointmentStatusClosed
}

// Payment is a recorded cash movement nested under an appointment. Its
// payment date, not the appointment date, decides which day it settles on:
// deposits are collected early and balances late.
type Payment struct {
	ID                      string          `json:"id"`
	Amount                  decimal.Decimal `json:"amount"`
	Method                  PaymentMethod   `json:"method"`
	ReceivingProfessionalID string          `json:"receiving_professional_id"`
	PaymentDate             *time.Time      `json:"payment_date,omitempty"`
	CreatedAt               time.Time       `json:"created_at"`
	Notes                   string          `json:"notes,omitempty"`
}

// CollectedOn resolves the authoritative collection date: the explicit
// payment date when present, otherwise the creation timestamp. A payment
// with neither is unbucketable and must fail the run.
func (p Payment) CollectedOn() (time.Time, bool) {
	if p.PaymentDate != nil && !p.PaymentDate.IsZero() {
		return *p.PaymentDate, true
	}
	if !p.CreatedAt.IsZero() {
		return p.CreatedAt, true
	}
	return time.Time{}, false
}

// Professional is the commission configuration snapshot for one practitioner.
type Professional struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Specialty      string          `json:"specialty"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
}
