package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

const refreshJob = "strain_refresh"

// Scheduler runs named cron jobs. Specs carry a seconds field.
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]cron.EntryID
	jobsMux sync.RWMutex
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithSeconds()),
		jobs: make(map[string]cron.EntryID),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Int("jobs", len(s.Jobs())).Msg("⏰ scheduler started")
}

// Stop stops scheduling and waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("⏰ scheduler stopped")
}

// Schedule adds or replaces the job registered under name
func (s *Scheduler) Schedule(name, spec string, job func()) error {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	entryID, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", name, err)
	}
	if old, exists := s.jobs[name]; exists {
		s.cron.Remove(old)
	}
	s.jobs[name] = entryID
	log.Info().Str("job", name).Str("schedule", spec).Msg("scheduled job")
	return nil
}

func (s *Scheduler) Unschedule(name string) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
	}
}

// Jobs returns the scheduled job names, sorted
func (s *Scheduler) Jobs() []string {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Refresher reloads a strain catalog and reports how many strains it holds
type Refresher interface {
	Refresh(ctx context.Context) (int, error)
}

// ScheduleRefresh runs r.Refresh on spec. Each run gets timeout.
func ScheduleRefresh(s *Scheduler, r Refresher, spec string, timeout time.Duration) error {
	return s.Schedule(refreshJob, spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if _, err := r.Refresh(ctx); err != nil {
			log.Error().Err(err).Msg("scheduled strain refresh failed")
		}
	})
}
