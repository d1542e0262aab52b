package gateway

import (
	"context"
	"time"

	"gorm.io/gorm"

	"clinic-settlements/internal/domain"
)

// GormAppointmentRepository reads appointment snapshots (with embedded
// payments) from the scheduling system's tables. Read-only: the engine never
// writes appointments.
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewGormAppointmentRepository creates a new repository instance.
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// ListByProfessional returns the professional's appointments with payments
// embedded. Zero from/to bounds mean unbounded on that side.
func (r *GormAppointmentRepository) ListByProfessional(ctx context.Context, professionalID string, from, to time.Time) ([]domain.Appointment, error) {
	query := r.db.WithContext(ctx).
		Preload("Payments").
		Where("professional_id = ?", professionalID)
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}

	var models []appointmentModel
	if err := query.Order("date").Find(&models).Error; err != nil {
		return nil, err
	}

	appointments := make([]domain.Appointment, 0, len(models))
	for i := range models {
		appointments = append(appointments, models[i].ToDomain())
	}
	return appointments, nil
}
