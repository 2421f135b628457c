package persistence

import (
	"context"

	"github.com/printdesk/backend/internal/domain/identity"
	"github.com/printdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCompanyRepository persists the singleton company profile using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// Get returns the profile, or shared.ErrNotFound before it is created.
// Should more than one row exist, the oldest one wins.
func (r *GormCompanyRepository) Get(ctx context.Context) (*identity.CompanyProfile, error) {
	var model models.CompanyProfileModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&model).Error; err != nil {
		return nil, notFound(err)
	}
	return model.ToDomain(), nil
}

// Save creates or updates the profile
func (r *GormCompanyRepository) Save(ctx context.Context, profile *identity.CompanyProfile) error {
	model := models.CompanyProfileModelFromDomain(profile)
	return translateError(r.db.WithContext(ctx).Save(model).Error)
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ identity.CompanyRepository = (*GormCompanyRepository)(nil)
