package audit

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Store persists parse logs
type Store interface {
	Record(ctx context.Context, entry *ParseLog) error
	List(ctx context.Context, filter ParseLogFilter) (*ParseLogResponse, error)
	Prune(ctx context.Context, before time.Time) (int64, error)
}

// GormStore keeps parse logs in postgres through gorm
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new gorm-backed store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Record(ctx context.Context, entry *ParseLog) error {
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create parse log: %w", err)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context, filter ParseLogFilter) (*ParseLogResponse, error) {
	filter.normalize()
	query := s.db.WithContext(ctx).Model(&ParseLog{})

	if filter.NeedsReview != nil {
		query = query.Where("flagged = ?", *filter.NeedsReview)
	}
	if filter.Since != nil {
		query = query.Where("created_at >= ?", *filter.Since)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count parse logs: %w", err)
	}

	var logs []ParseLog
	if err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset(filter.offset()).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get parse logs: %w", err)
	}

	return newResponse(logs, total, filter), nil
}

// Prune deletes logs created before the cutoff
func (s *GormStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("created_at < ?", before).Delete(&ParseLog{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune parse logs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
