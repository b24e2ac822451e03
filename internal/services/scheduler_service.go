package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// SchedulerService wraps cron-based background jobs. The only job today is
// the nightly reconciliation pass at local midnight, so a view opened first
// thing in the morning is already correct even before its inline reconcile.
type SchedulerService struct {
	cron *cron.Cron
}

// NewSchedulerService creates a scheduler anchored to the reference timezone.
func NewSchedulerService(loc *time.Location) *SchedulerService {
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc)),
	}
}

// ScheduleMidnight registers a job to run every day at 00:00 local time.
func (s *SchedulerService) ScheduleMidnight(name string, job func() error) (cron.EntryID, error) {
	return s.cron.AddFunc("0 0 * * *", func() {
		if err := job(); err != nil {
			log.Printf("scheduled job %s failed: %v", name, err)
		}
	})
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
