// Package eventloop provides the single cooperative thread every notification
// component runs on.
package eventloop

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Loop is a FIFO task queue drained by one goroutine at a time.
//
// Tasks may be posted from any goroutine. Idle tasks run only when the task
// queue is empty, i.e. after every event of the current batch was handled.
type Loop struct {
	mu       sync.Mutex
	tasks    []func()
	idle     []func()
	wake     chan struct{}
	draining bool
	logger   zerolog.Logger
}

// New creates an empty loop.
func New(logger zerolog.Logger) *Loop {
	return &Loop{
		wake:   make(chan struct{}, 1),
		logger: logger.With().Str("component", "eventloop").Logger(),
	}
}

// Post queues a task.
func (loop *Loop) Post(task func()) {
	if task == nil {
		return
	}
	loop.mu.Lock()
	loop.tasks = append(loop.tasks, task)
	loop.mu.Unlock()
	loop.notify()
}

// Idle queues a task that runs once the task queue has been drained.
func (loop *Loop) Idle(task func()) {
	if task == nil {
		return
	}
	loop.mu.Lock()
	loop.idle = append(loop.idle, task)
	loop.mu.Unlock()
	loop.notify()
}

// Pending reports the number of queued tasks, idle tasks included.
func (loop *Loop) Pending() int {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	return len(loop.tasks) + len(loop.idle)
}

// Run drains the loop whenever work arrives until ctx is cancelled.
func (loop *Loop) Run(ctx context.Context) error {
	for {
		loop.Drain()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-loop.wake:
		}
	}
}

// Drain runs queued tasks until both queues are empty. Nested calls from
// inside a task return immediately.
func (loop *Loop) Drain() {
	loop.mu.Lock()
	if loop.draining {
		loop.mu.Unlock()
		return
	}
	loop.draining = true
	loop.mu.Unlock()

	defer func() {
		loop.mu.Lock()
		loop.draining = false
		loop.mu.Unlock()
	}()

	for {
		task, ok := loop.next()
		if !ok {
			return
		}
		loop.run(task)
	}
}

func (loop *Loop) next() (func(), bool) {
	loop.mu.Lock()
	defer loop.mu.Unlock()

	if len(loop.tasks) > 0 {
		task := loop.tasks[0]
		loop.tasks[0] = nil
		loop.tasks = loop.tasks[1:]
		return task, true
	}
	if len(loop.idle) > 0 {
		task := loop.idle[0]
		loop.idle[0] = nil
		loop.idle = loop.idle[1:]
		return task, true
	}
	return nil, false
}

func (loop *Loop) run(task func()) {
	defer func() {
		if recovered := recover(); recovered != nil {
			loop.logger.Error().Err(fmt.Errorf("%v", recovered)).Msg("task panicked")
		}
	}()
	task()
}

func (loop *Loop) notify() {
	select {
	case loop.wake <- struct{}{}:
	default:
	}
}
