package tracking

import (
	"time"

	"github.com/go-co-op/gocron"
)

// flushScheduler runs the periodic flush with a start/stop lifecycle.
// The queue only depends on this small surface so tests can drive flushes
// with a fake instead of waiting on wall-clock time.
type flushScheduler interface {
	Start()
	Stop()
}

// autoSync schedules the flush task on a gocron scheduler
type autoSync struct {
	scheduler *gocron.Scheduler
}

func newAutoSync(interval time.Duration, task func()) *autoSync {
	s := gocron.NewScheduler(time.UTC)
	s.Every(interval).Do(task)
	return &autoSync{scheduler: s}
}

// Start begins the periodic flush in a non-blocking manner
func (a *autoSync) Start() {
	a.scheduler.StartAsync()
}

// Stop terminates the periodic flush
func (a *autoSync) Stop() {
	a.scheduler.Stop()
}
