package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/metrics"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/models"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/repositories"
)

const maxStrainNameLength = 100

type StrainService struct {
	repo    repositories.StrainRepo // nil when no database is configured
	catalog *catalog.Service
}

func NewStrainService(repo repositories.StrainRepo, cat *catalog.Service, collector *metrics.Collector) *StrainService {
	if collector != nil {
		cat.OnRefresh(collector.SetKnownStrains)
	}
	return &StrainService{
		repo:    repo,
		catalog: cat,
	}
}

// ListStrains returns the merged catalog the parser is using
func (s *StrainService) ListStrains(ctx context.Context) models.StrainListResponse {
	strains := s.catalog.Strains(ctx)
	return models.StrainListResponse{
		Strains:  strains,
		Total:    len(strains),
		LoadedAt: s.catalog.LoadedAt(),
	}
}

// CreateStrain stores a strain and refreshes the catalog so the next parse sees it
func (s *StrainService) CreateStrain(ctx context.Context, req *models.CreateStrainRequest) (*models.Strain, error) {
	req.Normalize()
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidStrain)
	}
	if len(req.Name) > maxStrainNameLength {
		return nil, fmt.Errorf("%w: name longer than %d characters", ErrInvalidStrain, maxStrainNameLength)
	}
	if s.repo == nil {
		return nil, ErrStoreNotConfigured
	}

	strain := &models.Strain{Name: req.Name, Aliases: req.Aliases}
	if err := s.repo.Create(ctx, strain); err != nil {
		return nil, err
	}

	if _, err := s.Refresh(ctx); err != nil {
		log.Warn().Err(err).Str("strain", strain.Name).Msg("strain saved but catalog refresh failed")
	}
	return strain, nil
}

// Refresh reloads every strain source. The known-strains gauge is updated
// by the catalog hook registered in NewStrainService.
func (s *StrainService) Refresh(ctx context.Context) (int, error) {
	return s.catalog.Refresh(ctx)
}
