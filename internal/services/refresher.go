package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RefresherService re-warms the standings and scoreboard cache on a schedule
// so the first request after an idle stretch does not pay the provider
// round-trip. It never runs on a request path.
type RefresherService struct {
	league    *LeagueService
	logger    *logrus.Logger
	cron      *cron.Cron
	interval  time.Duration
	mu        sync.Mutex
	isRunning bool
}

func NewRefresherService(league *LeagueService, logger *logrus.Logger, interval time.Duration) *RefresherService {
	return &RefresherService{
		league:   league,
		logger:   logger,
		cron:     cron.New(),
		interval: interval,
	}
}

// Start begins the scheduled refresh.
func (s *RefresherService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("refresher is already running")
	}

	schedule := fmt.Sprintf("@every %s", s.interval.String())
	_, err := s.cron.AddFunc(schedule, s.refresh)
	if err != nil {
		return fmt.Errorf("failed to schedule refresher: %w", err)
	}

	s.cron.Start()
	s.isRunning = true

	// Warm the cache once at startup
	go s.refresh()

	s.logger.Info("Cache refresher started")
	return nil
}

// Stop halts the scheduled refresh.
func (s *RefresherService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.cron.Stop()
	s.isRunning = false
	s.logger.Info("Cache refresher stopped")
}

func (s *RefresherService) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	if _, err := s.league.Standings(ctx, -1); err != nil {
		s.logger.WithError(err).Warn("Standings refresh failed")
	}
	if _, err := s.league.Scoreboard(ctx, 0); err != nil {
		s.logger.WithError(err).Warn("Scoreboard refresh failed")
	}
	s.logger.WithField("duration", time.Since(start)).Debug("Cache refresh completed")
}
