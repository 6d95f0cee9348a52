package executor

import (
	"sync"

	"go.uber.org/atomic"
)

// Sleepers parks idle workers and wakes them one at a time when work
// arrives. There is no fairness guarantee between parked workers, and
// callers must tolerate spurious wakeups by re-examining their queues.
type Sleepers struct {
	mu      sync.Mutex
	cond    *sync.Cond
	count   int
	pending bool

	parked atomic.Int32
}

// NewSleepers creates a coordinator with no parked workers.
func NewSleepers() *Sleepers {
	s := &Sleepers{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Wait parks the calling worker until another goroutine calls NotifyOne.
// A notify that arrived since the last Wait is consumed instead of parking,
// which closes the window between a worker finding its queues empty and
// actually parking.
func (s *Sleepers) Wait() {
	s.mu.Lock()
	if s.pending {
		s.pending = false
		s.mu.Unlock()
		return
	}
	s.count++
	s.parked.Store(int32(s.count))
	s.cond.Wait()
	s.mu.Unlock()
}

// NotifyOne wakes one parked worker. With nobody parked it leaves a single
// pending wake behind, consumed by the next Wait.
func (s *Sleepers) NotifyOne() {
	s.mu.Lock()
	if s.count > 0 {
		s.count--
		s.parked.Store(int32(s.count))
		s.cond.Signal()
	} else {
		s.pending = true
	}
	s.mu.Unlock()
}

// Parked returns the number of currently parked workers.
func (s *Sleepers) Parked() int {
	return int(s.parked.Load())
}
