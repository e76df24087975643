package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SQLiteStore keeps parse logs in a sqlite database opened with
// database.OpenSQLite. Review fields are stored comma-joined.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

func (s *SQLiteStore) Record(ctx context.Context, entry *ParseLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO parse_logs
			(id, raw_input, customer, strain, quantity, sale_price, profit, is_tick, flagged, needs_review, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID.String(), entry.RawInput, entry.Customer, entry.Strain,
		entry.Quantity, entry.SalePrice, entry.Profit, entry.IsTick, entry.Flagged,
		strings.Join(entry.NeedsReview, ","), string(entry.Result), entry.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to create parse log: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, filter ParseLogFilter) (*ParseLogResponse, error) {
	filter.normalize()

	var (
		where []string
		args  []interface{}
	)
	if filter.NeedsReview != nil {
		where = append(where, "flagged = ?")
		args = append(args, *filter.NeedsReview)
	}
	if filter.Since != nil {
		where = append(where, "created_at >= ?")
		args = append(args, filter.Since.UTC())
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM parse_logs"+clause, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count parse logs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, raw_input, customer, strain, quantity, sale_price, profit, is_tick, flagged, needs_review, result, created_at
		FROM parse_logs`+clause+`
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`,
		append(args, filter.PageSize, filter.offset())...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get parse logs: %w", err)
	}
	defer rows.Close()

	var logs []ParseLog
	for rows.Next() {
		var (
			l      ParseLog
			id     string
			review string
			result sql.NullString
		)
		if err := rows.Scan(&id, &l.RawInput, &l.Customer, &l.Strain, &l.Quantity, &l.SalePrice,
			&l.Profit, &l.IsTick, &l.Flagged, &review, &result, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan parse log: %w", err)
		}
		if l.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid parse log id %q: %w", id, err)
		}
		l.NeedsReview = splitFields(review)
		if result.Valid {
			l.Result = []byte(result.String)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parse logs: %w", err)
	}

	return newResponse(logs, total, filter), nil
}

func (s *SQLiteStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM parse_logs WHERE created_at < ?", before.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to prune parse logs: %w", err)
	}
	return res.RowsAffected()
}

func splitFields(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}
