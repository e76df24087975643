package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// strainSQLiteRepo stores aliases comma-joined in a TEXT column
type strainSQLiteRepo struct {
	db *sql.DB
}

func NewStrainSQLiteRepo(db *sql.DB) StrainRepo {
	return &strainSQLiteRepo{db: db}
}

func (r *strainSQLiteRepo) Create(ctx context.Context, strain *models.Strain) error {
	if _, err := r.GetByName(ctx, strain.Name); err == nil {
		return fmt.Errorf("%w: %s", ErrStrainExists, strain.Name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if strain.ID == uuid.Nil {
		strain.ID = uuid.New()
	}
	now := time.Now().UTC()
	strain.CreatedAt, strain.UpdatedAt = now, now
	if strain.Aliases == nil {
		strain.Aliases = []string{}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO strains (id, name, aliases, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		strain.ID.String(), strain.Name, strings.Join(strain.Aliases, ","), strain.CreatedAt, strain.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert strain: %w", err)
	}
	return nil
}

// GetByName returns gorm.ErrRecordNotFound when missing so callers can
// treat both stores alike.
func (r *strainSQLiteRepo) GetByName(ctx context.Context, name string) (*models.Strain, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, aliases, created_at, updated_at FROM strains WHERE name = ? COLLATE NOCASE`, name)
	strain, err := scanStrain(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, gorm.ErrRecordNotFound
	}
	return strain, err
}

func (r *strainSQLiteRepo) List(ctx context.Context) ([]models.Strain, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, aliases, created_at, updated_at FROM strains ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list strains: %w", err)
	}
	defer rows.Close()

	var strains []models.Strain
	for rows.Next() {
		strain, err := scanStrain(rows)
		if err != nil {
			return nil, err
		}
		strains = append(strains, *strain)
	}
	return strains, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStrain(row rowScanner) (*models.Strain, error) {
	var (
		strain  models.Strain
		id      string
		aliases string
	)
	if err := row.Scan(&id, &strain.Name, &aliases, &strain.CreatedAt, &strain.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid strain id %q: %w", id, err)
	}
	strain.ID = parsed
	strain.Aliases = []string{}
	if aliases != "" {
		strain.Aliases = strings.Split(aliases, ",")
	}
	return &strain, nil
}
