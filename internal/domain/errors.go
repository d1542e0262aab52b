package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Lookup failures and invalid transitions surfaced by the settlement store.
var (
	ErrSettlementNotFound   = errors.New("settlement not found")
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrSettlementNotPending = errors.New("settlement is not pending")
	ErrInvalidRate          = errors.New("commission rate must be between 0 and 100")
)

// DataIntegrityError means the input snapshot contradicts itself: a final
// price above the base price, or a payment with no resolvable date. The run
// fails loudly and the prior settlement for the key is left intact.
type DataIntegrityError struct {
	ProfessionalID string
	AppointmentID  string
	PaymentID      string
	Reason         string
}

func (e *DataIntegrityError) Error() string {
	msg := fmt.Sprintf("data integrity: %s (professional %s", e.Reason, e.ProfessionalID)
	if e.AppointmentID != "" {
		msg += ", appointment " + e.AppointmentID
	}
	if e.PaymentID != "" {
		msg += ", payment " + e.PaymentID
	}
	return msg + ")"
}

// IncompletePeriodError rejects a monthly fold when any calendar day lacks a
// persisted daily settlement. A missing day usually means the daily job did
// not run, not that there was no activity.
type IncompletePeriodError struct {
	ProfessionalID string
	Month          int
	Year           int
	MissingDates   []string
}

func (e *IncompletePeriodError) Error() string {
	return fmt.Sprintf("incomplete period: professional %s has no daily settlement for %s in %04d-%02d",
		e.ProfessionalID, strings.Join(e.MissingDates, ", "), e.Year, e.Month)
}

// ConcurrentRecomputeError rejects the later of two overlapping runs for the
// same settlement key. The caller retries; nothing is silently merged.
type ConcurrentRecomputeError struct {
	Key string
}

func (e *ConcurrentRecomputeError) Error() string {
	return fmt.Sprintf("concurrent recompute in flight for settlement %s", e.Key)
}
