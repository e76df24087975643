package repositories

import (
	"context"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/saleparser"
)

// StrainSource exposes a StrainRepo to the strain catalog
type StrainSource struct {
	name string
	repo StrainRepo
}

func NewStrainSource(name string, repo StrainRepo) *StrainSource {
	return &StrainSource{name: name, repo: repo}
}

func (s *StrainSource) Name() string { return s.name }

func (s *StrainSource) LoadStrains(ctx context.Context) ([]saleparser.KnownStrain, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	known := make([]saleparser.KnownStrain, 0, len(rows))
	for _, row := range rows {
		known = append(known, row.Known())
	}
	return known, nil
}
