package worker

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ErrIdle returned by a round that found nothing to do
var ErrIdle = errors.New("idle")

// Worker background job, Run blocks until ctx is done
type Worker interface {
	Run(ctx context.Context) error
}

// OnWork one round of work
type OnWork func(ctx context.Context) error

// BaseJob cron driven job. Every tick repeats OnWork until it reports ErrIdle or fails,
// a tick that fires while the previous one is still running is skipped.
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning atomic.Bool
	OnWork    OnWork

	name string
	ctx  context.Context
}

// NewBaseJob schedule onWork @every interval. Intervals below a second run once a second.
func NewBaseJob(name string, interval time.Duration, onWork OnWork) *BaseJob {
	job := &BaseJob{
		Cron:   cron.New(),
		OnWork: onWork,
		name:   name,
		ctx:    context.Background(),
	}

	spec := fmt.Sprintf("@every %s", interval)
	if _, err := job.Cron.AddFunc(spec, job.Run); err != nil {
		panic(err)
	}

	return job
}

// Serve start the cron and block until ctx is done
func (job *BaseJob) Serve(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", job.name)
	job.ctx = logger.WithContext(ctx, log)

	job.Cron.Start()
	<-ctx.Done()
	<-job.Cron.Stop().Done()
	return nil
}

// Run one tick
func (job *BaseJob) Run() {
	if !job.IsRunning.CompareAndSwap(false, true) {
		return
	}
	defer job.IsRunning.Store(false)

	ctx := job.ctx
	for ctx.Err() == nil {
		err := job.OnWork(ctx)
		if err == nil {
			continue
		}

		if !errors.Is(err, ErrIdle) {
			logger.FromContext(ctx).WithError(err).Errorln("round failed")
		}

		return
	}
}
