package executor

import (
	"sync"

	"go.uber.org/atomic"
)

// WorkerDepth pairs a worker id with its published run-queue depth.
type WorkerDepth struct {
	Worker int
	Depth  int
}

// Stats is the load balancer's shared snapshot: the last depth each worker
// published and the mean across workers. Writers are workers publishing
// their own depth; readers are workers picking a steal victim. Both sides
// use non-blocking attempts, so neither ever holds the lock long; only the
// Mean accessor takes a blocking read lock.
type Stats struct {
	mu        sync.RWMutex
	perWorker map[int]int
	mean      int

	updates atomic.Int64
}

func newStats(workers int) *Stats {
	return &Stats{perWorker: make(map[int]int, workers)}
}

// TryPublish records the depth for one worker and recomputes the mean.
// It returns false without side effects if the write lock is held.
func (s *Stats) TryPublish(worker, depth int) bool {
	if !s.mu.TryLock() {
		return false
	}
	s.perWorker[worker] = depth

	total := 0
	for _, d := range s.perWorker {
		total += d
	}
	s.mean = total / len(s.perWorker)
	s.mu.Unlock()

	s.updates.Inc()
	return true
}

// TrySnapshot copies out the per-worker depths and the mean. It returns
// ok=false if the lock is write-held.
func (s *Stats) TrySnapshot() (depths []WorkerDepth, mean int, ok bool) {
	if !s.mu.TryRLock() {
		return nil, 0, false
	}
	depths = make([]WorkerDepth, 0, len(s.perWorker))
	for worker, depth := range s.perWorker {
		depths = append(depths, WorkerDepth{Worker: worker, Depth: depth})
	}
	mean = s.mean
	s.mu.RUnlock()
	return depths, mean, true
}

// Mean returns the last computed mean depth, blocking briefly if a publish
// is in flight.
func (s *Stats) Mean() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mean
}

// Updates returns how many publishes have completed.
func (s *Stats) Updates() int64 {
	return s.updates.Load()
}
