package schedule

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Scheduler runs callbacks after a delay, handing back a cancellable
// task handle for each. It is strictly in-process: pending tasks die
// with the process, so at-least-once delivery is explicitly not
// guaranteed by anything built on top of it.
type Scheduler struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
	closed bool
}

// NewScheduler creates an empty scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		timers: make(map[string]*time.Timer),
	}
}

// Schedule runs fn after the given delay and returns the task id.
// A non-positive delay runs fn on its own goroutine immediately.
// Returns "" if the scheduler has been stopped.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ""
	}

	id := uuid.New().String()
	s.timers[id] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		fn()
	})
	return id
}

// Cancel aborts a pending task. Returns false if the task already fired,
// was cancelled, or never existed.
func (s *Scheduler) Cancel(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	return timer.Stop()
}

// Pending returns the number of tasks that have not yet fired
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending task and rejects new ones
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}
