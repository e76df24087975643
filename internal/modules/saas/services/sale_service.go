package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/audit"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/catalog"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/metrics"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/saleparser"
	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/modules/saas/models"
)

// SaleService parses sale descriptions against the current strain catalog,
// flags low-confidence fields and records each parse.
type SaleService struct {
	catalog   *catalog.Service
	store     audit.Store        // nil disables parse logs
	metrics   *metrics.Collector // nil disables metrics
	threshold float64
	now       func() time.Time
	logger    zerolog.Logger
}

func NewSaleService(cat *catalog.Service, store audit.Store, collector *metrics.Collector, reviewThreshold float64) *SaleService {
	return &SaleService{
		catalog:   cat,
		store:     store,
		metrics:   collector,
		threshold: reviewThreshold,
		now:       time.Now,
		logger:    log.With().Str("component", "sale_service").Logger(),
	}
}

func (s *SaleService) parser(ctx context.Context) *saleparser.Parser {
	return saleparser.New(
		saleparser.WithMatcher(s.catalog.Matcher(ctx)),
		saleparser.WithClock(s.now),
		saleparser.WithLogger(s.logger),
	)
}

// Parse parses one description. Parsing itself never fails; a failing
// parse log write is logged and does not affect the result.
func (s *SaleService) Parse(ctx context.Context, text string) models.ParseResult {
	return s.parseWith(ctx, s.parser(ctx), text)
}

// ParseBatch parses req.Lines, or req.Text split into lines when no lines
// are given. Blank lines are skipped.
func (s *SaleService) ParseBatch(ctx context.Context, req models.ParseBatchRequest) (*models.ParseBatchResponse, error) {
	lines := req.Lines
	if len(lines) == 0 {
		lines = strings.Split(req.Text, "\n")
	}

	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			texts = append(texts, line)
		}
	}
	if len(texts) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(texts) > models.MaxBatchLines {
		return nil, fmt.Errorf("%w: %d lines, max %d", ErrBatchTooLarge, len(texts), models.MaxBatchLines)
	}

	p := s.parser(ctx)
	resp := &models.ParseBatchResponse{Results: make([]models.ParseResult, 0, len(texts))}
	for _, text := range texts {
		result := s.parseWith(ctx, p, text)
		if len(result.NeedsReview) > 0 {
			resp.Flagged++
		}
		resp.Results = append(resp.Results, result)
	}
	resp.Count = len(resp.Results)

	if s.metrics != nil {
		s.metrics.ObserveBatch(resp.Count)
	}
	return resp, nil
}

func (s *SaleService) parseWith(ctx context.Context, p *saleparser.Parser, text string) models.ParseResult {
	sale := p.Parse(text)
	result := models.ParseResult{
		ParseID:     uuid.New(),
		Sale:        sale,
		NeedsReview: sale.NeedsReview(s.threshold),
	}

	if s.metrics != nil {
		s.metrics.ObserveSale(sale, result.NeedsReview)
	}
	if s.store != nil {
		s.record(ctx, result)
	}

	s.logger.Debug().
		Str("parse_id", result.ParseID.String()).
		Strs("needs_review", result.NeedsReview).
		Bool("failed", sale.Failed()).
		Msg("parsed sale")
	return result
}

func (s *SaleService) record(ctx context.Context, result models.ParseResult) {
	entry, err := audit.NewParseLog(result.ParseID, result.Sale, result.NeedsReview)
	if err == nil {
		err = s.store.Record(ctx, entry)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("parse_id", result.ParseID.String()).Msg("failed to record parse log")
	}
}

// ListParseLogs pages through recorded parses
func (s *SaleService) ListParseLogs(ctx context.Context, filter audit.ParseLogFilter) (*audit.ParseLogResponse, error) {
	if s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	return s.store.List(ctx, filter)
}

// PruneParseLogs deletes parse logs older than retention
func (s *SaleService) PruneParseLogs(ctx context.Context, retention time.Duration) (int64, error) {
	if s.store == nil {
		return 0, ErrStoreNotConfigured
	}
	n, err := s.store.Prune(ctx, s.now().Add(-retention))
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("deleted", n).Dur("retention", retention).Msg("pruned parse logs")
	return n, nil
}
