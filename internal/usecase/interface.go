package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clinic-settlements/internal/domain"
)

// The usecase layer depends on these interfaces, not on a concrete store.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go -package=mock_usecase

// AppointmentRepository reads appointment snapshots (with embedded payments)
// owned by the scheduling system. A zero from/to means unbounded on that
// side: collection bucketing needs the full payment stream, since a payment
// recorded today may belong to an appointment from any other day.
type AppointmentRepository interface {
	ListByProfessional(ctx context.Context, professionalID string, from, to time.Time) ([]domain.Appointment, error)
}

// ProfessionalRepository reads commission configuration.
type ProfessionalRepository interface {
	Get(ctx context.Context, id string) (*domain.Professional, error)
}

// SettlementRepository persists settlement records keyed by
// (professionalId, type, periodKey). Upsert replaces by key and must never
// leave a partial write; MarkPaid is the only permitted mutation after
// creation.
type SettlementRepository interface {
	Upsert(ctx context.Context, settlement *domain.Settlement) error
	Get(ctx context.Context, professionalID string, settlementType domain.SettlementType, periodKey string) (*domain.Settlement, error)
	ListDaily(ctx context.Context, professionalID string, month, year int) ([]domain.Settlement, error)
	MarkPaid(ctx context.Context, settlementID uuid.UUID) error
}
