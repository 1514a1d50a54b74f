// Package scheduler runs periodic background jobs on cron schedules.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/unilib/backend/internal/config"
	"github.com/unilib/backend/internal/tasks"
)

// OverdueScheduler periodically enqueues an overdue-loan scan.
type OverdueScheduler struct {
	taskClient *tasks.Client
	cfg        config.Overdue

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewOverdueScheduler creates a scheduler for the overdue reminder job.
func NewOverdueScheduler(taskClient *tasks.Client, cfg config.Overdue) *OverdueScheduler {
	return &OverdueScheduler{
		taskClient: taskClient,
		cfg:        cfg,
		cron:       cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler if overdue scanning is enabled.
func (s *OverdueScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("Overdue reminder scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, s.enqueueScan)
	if err != nil {
		return fmt.Errorf("failed to schedule overdue scan '%s': %w", s.cfg.Schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Overdue reminder scheduler: started with schedule '%s'. Next run: %v",
		s.cfg.Schedule, s.cron.Entry(entryID).Next)
	return nil
}

// Stop halts the scheduler. Running jobs are not interrupted.
func (s *OverdueScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.cron.Stop()
	s.isRunning = false
	log.Printf("Overdue reminder scheduler: stopped")
}

func (s *OverdueScheduler) enqueueScan() {
	if _, err := s.taskClient.Add(tasks.OverdueScanTask{}).Save(); err != nil {
		log.Printf("Failed to enqueue overdue scan: %v", err)
		return
	}
	log.Printf("Enqueued overdue loan scan")
}
