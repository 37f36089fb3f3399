package concurrent

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolSquaresAllJobs(t *testing.T) {
	pool := NewWorkerPool[int, int](4, 64)
	for i := 1; i <= 50; i++ {
		pool.AddJob(i)
	}
	pool.Close()
	pool.Start(func(job int) int { return job * job })
	pool.Wait()

	sum, n := 0, 0
	for res := range pool.CollectResults() {
		sum += res
		n++
	}
	assert.Equal(t, 50, n)
	assert.Equal(t, 42925, sum)
}

func TestWorkerPoolNoJobs(t *testing.T) {
	pool := NewWorkerPool[int, int](2, 8)
	pool.Close()
	pool.Start(func(job int) int { return job })
	pool.Wait()

	n := 0
	for range pool.CollectResults() {
		n++
	}
	assert.Equal(t, 0, n)
}

func TestPoolScheduleRunsTasks(t *testing.T) {
	p := NewPool(4, 4)

	var done sync.WaitGroup
	var count int64
	done.Add(10)
	for i := 0; i < 10; i++ {
		p.Schedule(func() {
			atomic.AddInt64(&count, 1)
			done.Done()
		})
	}
	done.Wait()

	assert.Equal(t, int64(10), atomic.LoadInt64(&count))
}

func TestPoolScheduleTimeoutWhenSaturated(t *testing.T) {
	p := NewPool(1, 0)

	started := make(chan struct{})
	release := make(chan struct{})
	p.Schedule(func() {
		close(started)
		<-release
	})
	<-started

	// the only worker is blocked and the queue holds nothing
	err := p.ScheduleTimeout(20*time.Millisecond, func() {})
	assert.ErrorIs(t, err, ErrScheduleTimeout)

	close(release)
}

func TestPoolSpawnedWorkersPickUpTasks(t *testing.T) {
	p := NewPool(2, 0)
	p.Spawn(2)

	ran := make(chan struct{})
	err := p.ScheduleTimeout(time.Second, func() { close(ran) })
	require.NoError(t, err)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("spawned worker never picked up the task")
	}
}
