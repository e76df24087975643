package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/sales-tracker-be/internal/core/saleparser"
)

const snapshotKey = "strains"

// snapshot is what the cache holds: the merged list and its compiled matcher
type snapshot struct {
	strains []saleparser.KnownStrain
	matcher *saleparser.StrainMatcher
	loaded  time.Time
}

// Service merges strain sources into one matcher and caches it for ttl.
type Service struct {
	sources []Source
	cache   *cache.Cache
	ttl     time.Duration
	logger  zerolog.Logger

	mu        sync.Mutex // serializes reloads
	last      *snapshot  // survives cache expiry when every source fails
	onRefresh func(count int)
}

// NewService creates the catalog. Sources are merged in order.
func NewService(ttl time.Duration, sources ...Source) *Service {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Service{
		sources: sources,
		cache:   cache.New(ttl, 2*ttl),
		ttl:     ttl,
		logger:  log.With().Str("component", "catalog").Logger(),
	}
}

// OnRefresh registers fn to receive the merged strain count after every
// successful reload, including reloads triggered by a cache miss.
func (s *Service) OnRefresh(fn func(count int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = fn
}

// Matcher returns the cached matcher, loading sources on a miss.
func (s *Service) Matcher(ctx context.Context) *saleparser.StrainMatcher {
	return s.current(ctx).matcher
}

// Strains returns the merged strain list.
func (s *Service) Strains(ctx context.Context) []saleparser.KnownStrain {
	strains := s.current(ctx).strains
	out := make([]saleparser.KnownStrain, len(strains))
	copy(out, strains)
	return out
}

// Names returns the canonical names in merge order.
func (s *Service) Names(ctx context.Context) []string {
	return s.current(ctx).matcher.Names()
}

// LoadedAt reports when the current snapshot was built; zero before the first load.
func (s *Service) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return time.Time{}
	}
	return s.last.loaded
}

func (s *Service) current(ctx context.Context) *snapshot {
	if v, ok := s.cache.Get(snapshotKey); ok {
		return v.(*snapshot)
	}
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("strain catalog refresh failed")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last != nil {
		return s.last
	}
	// nothing has ever loaded
	defaults := saleparser.DefaultStrains()
	return &snapshot{strains: defaults, matcher: saleparser.NewStrainMatcher(defaults)}
}

// Refresh reloads every source and replaces the cached matcher. A failing
// source is logged and skipped; Refresh fails only when all sources fail,
// in which case the previous matcher stays in use.
func (s *Service) Refresh(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists := make([][]saleparser.KnownStrain, 0, len(s.sources))
	var errs []error
	for _, src := range s.sources {
		strains, err := src.LoadStrains(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Str("source", src.Name()).Msg("skipping strain source")
			errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		s.logger.Debug().Str("source", src.Name()).Int("count", len(strains)).Msg("loaded strains")
		lists = append(lists, strains)
	}
	if len(s.sources) > 0 && len(errs) == len(s.sources) {
		if s.last != nil {
			s.cache.Set(snapshotKey, s.last, cache.DefaultExpiration)
		}
		return 0, fmt.Errorf("all strain sources failed: %w", errors.Join(errs...))
	}

	merged := merge(lists...)
	snap := &snapshot{
		strains: merged,
		matcher: saleparser.NewStrainMatcher(merged),
		loaded:  time.Now(),
	}
	s.last = snap
	s.cache.Set(snapshotKey, snap, cache.DefaultExpiration)
	if s.onRefresh != nil {
		s.onRefresh(len(merged))
	}

	s.logger.Info().Int("strains", len(merged)).Int("failed_sources", len(errs)).Msg("strain catalog refreshed")
	return len(merged), nil
}
