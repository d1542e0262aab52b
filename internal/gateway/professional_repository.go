package gateway

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"clinic-settlements/internal/domain"
)

// GormProfessionalRepository reads commission configuration from the CRM's
// professional table. Read-only.
type GormProfessionalRepository struct {
	db *gorm.DB
}

// NewGormProfessionalRepository creates a new repository instance.
func NewGormProfessionalRepository(db *gorm.DB) *GormProfessionalRepository {
	return &GormProfessionalRepository{db: db}
}

// Get fetches a professional by id.
func (r *GormProfessionalRepository) Get(ctx context.Context, id string) (*domain.Professional, error) {
	var model professionalModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProfessionalNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}
