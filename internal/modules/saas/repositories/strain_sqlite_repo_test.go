package repositories

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/models"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/shared/database"
	"gorm.io/gorm"
)

func newSQLiteRepo(t *testing.T) StrainRepo {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "strains.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStrainSQLiteRepo(db)
}

func TestStrainSQLiteRepoCreateAndList(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &models.Strain{Name: "Runtz", Aliases: []string{"runts", "rntz"}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, &models.Strain{Name: "Gelato"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	strains, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(strains) != 2 || strains[0].Name != "Gelato" || strains[1].Name != "Runtz" {
		t.Fatalf("expected name order, got %+v", strains)
	}
	if !reflect.DeepEqual([]string(strains[1].Aliases), []string{"runts", "rntz"}) {
		t.Fatalf("unexpected aliases %v", strains[1].Aliases)
	}
	if len(strains[0].Aliases) != 0 {
		t.Fatalf("expected no aliases, got %v", strains[0].Aliases)
	}
}

func TestStrainSQLiteRepoRejectsDuplicateNames(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, &models.Strain{Name: "Runtz"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, &models.Strain{Name: "RUNTZ"})
	if !errors.Is(err, ErrStrainExists) {
		t.Fatalf("expected ErrStrainExists, got %v", err)
	}

	if _, err := repo.GetByName(ctx, "zkittlez"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestStrainSourceLoadsFromRepo(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()
	if err := repo.Create(ctx, &models.Strain{Name: "Runtz", Aliases: []string{"runts"}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	src := NewStrainSource("sqlite", repo)
	known, err := src.LoadStrains(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if src.Name() != "sqlite" || len(known) != 1 || known[0].Name != "Runtz" || known[0].Aliases[0] != "runts" {
		t.Fatalf("unexpected known strains %+v", known)
	}
}
