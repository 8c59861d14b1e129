// filepath: internal/housekeeping/service.go
package housekeeping

import (
	"time"

	"filekit/internal/logging"
)

const (
	// MinCheckInterval is the minimum time between checks to prevent busy-looping.
	MinCheckInterval = 1 * time.Minute
)

// Service provides the background worker that clears orphaned staged files.
type Service struct {
	staging  StagingTX
	interval time.Duration
	maxAge   time.Duration
	now      func() time.Time

	timer  *time.Timer
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewService creates a new housekeeping service instance.
func NewService(staging StagingTX, interval, maxAge time.Duration) *Service {
	return &Service{
		staging:  staging,
		interval: interval,
		maxAge:   maxAge,
		now:      time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start kicks off the background housekeeping service.
func (s *Service) Start() {
	logging.Log.Infof("Starting background housekeeping service (every %v, staged files older than %v).", s.nextRun(), s.maxAge)
	s.timer = time.NewTimer(0) // Fire immediately on start

	go func() {
		defer close(s.doneCh)
		for {
			select {
			case <-s.timer.C:
				s.runChecks()
				s.timer.Reset(s.nextRun())
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background housekeeping service and waits for a
// running check to finish.
func (s *Service) Stop() {
	logging.Log.Info("Stopping background housekeeping service.")
	close(s.stopCh)
	<-s.doneCh
}

// nextRun returns the configured interval, bounded below by MinCheckInterval.
func (s *Service) nextRun() time.Duration {
	if s.interval < MinCheckInterval {
		return MinCheckInterval
	}
	return s.interval
}

// RunNow cleans the staging area once, outside the timer schedule.
func (s *Service) RunNow() (*Report, error) {
	return RunStagingCleanup(s.staging, s.maxAge, s.now())
}

// runChecks cleans the staging area once.
func (s *Service) runChecks() {
	logging.Log.Debug("Housekeeping service: Checking staging area...")
	report, err := s.RunNow()
	if err != nil {
		logging.Log.Errorf("Housekeeping run failed: %v", err)
		return
	}
	if report.FilesDeleted > 0 {
		logging.Log.Info(report.Message)
	} else {
		logging.Log.Debug(report.Message)
	}
}
