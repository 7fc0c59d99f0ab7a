package services

import (
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Janitor periodically purges participant and prize records that no promo
// references any more.
type Janitor struct {
	store     *Store
	scheduler gocron.Scheduler
}

// NewJanitor schedules the orphan sweep every interval. The scheduler does
// not run until Start is called.
func NewJanitor(store *Store, interval time.Duration) (*Janitor, error) {
	if interval <= 0 {
		return nil, errors.New("janitor interval must be positive")
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	j := &Janitor{store: store, scheduler: scheduler}
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(j.Sweep),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return j, nil
}

// Sweep runs one purge pass. The store logs what it removed.
func (j *Janitor) Sweep() {
	j.store.PurgeOrphans()
}

// Start begins running the scheduled sweep.
func (j *Janitor) Start() {
	j.scheduler.Start()
}

// Shutdown stops the scheduler and waits for a running sweep to finish.
func (j *Janitor) Shutdown() error {
	return j.scheduler.Shutdown()
}
