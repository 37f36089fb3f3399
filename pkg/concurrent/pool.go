package concurrent

import (
	"fmt"
	"time"
)

// ErrScheduleTimeout returned by Pool to indicate that there were no free
// goroutines during some period of time.
var ErrScheduleTimeout = fmt.Errorf("schedule error: timed out")

// Pool reuses a bounded set of goroutines for short-lived tasks, so a burst of
// websocket events does not spawn a goroutine (and its stack) per connection.
// ref: https://sergey.kamardin.org/articles/million-websocket-and-go/
type Pool struct {
	sem  chan struct{}
	work chan func()
}

// NewPool creates a goroutine pool with up to size workers and a task queue of
// queue entries. workers are started lazily by Schedule, or eagerly via Spawn.
func NewPool(size, queue int) *Pool {
	return &Pool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
	}
}

// Spawn starts n idle workers up front.
func (p *Pool) Spawn(n int) {
	for i := 0; i < n; i++ {
		p.sem <- struct{}{}
		go p.worker(func() {})
	}
}

// Schedule runs task on a pool worker, blocking while all workers are busy and
// the queue is full.
func (p *Pool) Schedule(task func()) {
	p.schedule(task, nil)
}

// ScheduleTimeout runs task on a pool worker. it returns ErrScheduleTimeout
// when no worker became free within timeout.
func (p *Pool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *Pool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

// Close stops all idle workers. pending queued tasks still run.
func (p *Pool) Close() {
	close(p.work)
}

func (p *Pool) worker(task func()) {
	defer func() { <-p.sem }()

	task()

	for task := range p.work {
		task()
	}
}
