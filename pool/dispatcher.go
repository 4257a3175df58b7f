package pool

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Dispatcher runs video tasks on a fixed number of workers.
type Dispatcher struct {
	workers  int
	log      *logrus.Logger
	observer Observers
}

// NewDispatcher returns a dispatcher with the given worker count.
func NewDispatcher(workers int, log *logrus.Logger, observers ...Observer) (*Dispatcher, error) {
	if workers <= 0 {
		return nil, fmt.Errorf("worker count must be greater than zero (got %d)", workers)
	}
	if log == nil {
		log = logrus.New()
	}
	return &Dispatcher{workers: workers, log: log, observer: observers}, nil
}

// Workers is the configured parallelism.
func (d *Dispatcher) Workers() int {
	return d.workers
}

// Submit runs every task and blocks until all of them reached a terminal state. At
// most Workers tasks run at the same time. A failing task does not affect the others.
// When ctx is cancelled the running tasks see the cancellation and the ones not yet
// started are reported as cancelled. No goroutine outlives the call.
//
// Results are returned in task order.
func (d *Dispatcher) Submit(ctx context.Context, tasks []VideoTask, run TaskFunc) []Result {
	results := make([]Result, len(tasks))
	for i, t := range tasks {
		results[i] = Result{Task: t, Worker: -1, Status: StatusCancelled}
	}
	if len(tasks) == 0 {
		return results
	}

	workers := min(d.workers, len(tasks))
	jobs := make(chan int)

	var g errgroup.Group
	g.Go(func() error {
		defer close(jobs)
		for i := range tasks {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				results[i] = d.execute(ctx, w, tasks[i], run)
			}
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		for i := range results {
			if results[i].Worker < 0 {
				results[i].Err = err
			}
		}
	}
	return results
}

func (d *Dispatcher) execute(ctx context.Context, worker int, task VideoTask, run TaskFunc) (res Result) {
	res = Result{Task: task, Worker: worker, Started: time.Now()}
	d.observer.TaskStarted(worker, task)

	defer func() {
		if r := recover(); r != nil {
			d.log.WithFields(logrus.Fields{
				"video":  task.DisplayName,
				"worker": worker,
			}).Debugf("panic stack: %s", debug.Stack())
			res.Err = fmt.Errorf("panic while processing %s: %v", task.DisplayName, r)
		}

		res.Finished = time.Now()
		switch {
		case res.Err == nil:
			res.Status = StatusCompleted
		case errors.Is(res.Err, context.Canceled) && ctx.Err() != nil:
			res.Status = StatusCancelled
		default:
			res.Status = StatusFailed
		}
		d.observer.TaskFinished(res)
	}()

	progress := func(frames int) {
		d.observer.TaskProgress(worker, task, frames)
	}
	res.Frames, res.Err = run(ctx, task, progress)
	return res
}
