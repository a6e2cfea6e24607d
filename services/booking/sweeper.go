package booking

import (
	"fmt"
	"time"

	"github.com/robfig/cron"

	"pitch-booking/logger"
)

// StatusSweeper runs the booking status sweep once per minute. A single
// instance is started from main; the sweep itself is idempotent.
type StatusSweeper struct {
	svc  *Service
	cron *cron.Cron
}

// NewStatusSweeper creates a sweeper bound to the booking service
func NewStatusSweeper(svc *Service) *StatusSweeper {
	return &StatusSweeper{
		svc:  svc,
		cron: cron.New(),
	}
}

// Start schedules the sweep and runs it once immediately so statuses are
// correct right after boot.
func (sw *StatusSweeper) Start() error {
	if err := sw.cron.AddFunc("@every 1m", sw.run); err != nil {
		return err
	}
	sw.cron.Start()
	sw.run()
	return nil
}

// Stop halts the schedule; an in-flight sweep finishes on its own.
func (sw *StatusSweeper) Stop() {
	sw.cron.Stop()
}

func (sw *StatusSweeper) run() {
	updated, err := sw.svc.Sweep(time.Now())
	if err != nil {
		logger.Error("Booking status sweep failed", err)
		return
	}
	if updated > 0 {
		logger.Info(fmt.Sprintf("Booking status sweep moved %d booking(s)", updated))
	}
}
