package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/models"
	"gorm.io/gorm"
)

// ErrStrainExists is returned when a strain with the same name (any case) exists
var ErrStrainExists = errors.New("strain already exists")

type StrainRepo interface {
	Create(ctx context.Context, strain *models.Strain) error
	GetByName(ctx context.Context, name string) (*models.Strain, error)
	List(ctx context.Context) ([]models.Strain, error)
}

type strainRepo struct {
	db *gorm.DB
}

func NewStrainRepo(db *gorm.DB) StrainRepo {
	return &strainRepo{db: db}
}

func (r *strainRepo) Create(ctx context.Context, strain *models.Strain) error {
	if _, err := r.GetByName(ctx, strain.Name); err == nil {
		return fmt.Errorf("%w: %s", ErrStrainExists, strain.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if strain.Aliases == nil {
		strain.Aliases = []string{}
	}
	return r.db.WithContext(ctx).Create(strain).Error
}

func (r *strainRepo) GetByName(ctx context.Context, name string) (*models.Strain, error) {
	var strain models.Strain
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&strain).Error
	if err != nil {
		return nil, err
	}
	return &strain, nil
}

func (r *strainRepo) List(ctx context.Context) ([]models.Strain, error) {
	var strains []models.Strain
	err := r.db.WithContext(ctx).Order("name ASC").Find(&strains).Error
	return strains, err
}
