package executor

import (
	"sync"

	"github.com/gammazero/deque"

	"github.com/go-foundations/actorpool/proc"
)

// Injector is the shared entry point for tasks scheduled from outside the
// worker set: an unbounded multi-producer multi-consumer FIFO.
type Injector struct {
	mu sync.Mutex
	q  deque.Deque[*proc.Proc]
}

// NewInjector creates an empty injector.
func NewInjector() *Injector {
	return &Injector{}
}

// Push appends a task. Safe to call from any goroutine.
func (in *Injector) Push(task *proc.Proc) {
	in.mu.Lock()
	in.q.PushBack(task)
	in.mu.Unlock()
}

// Len returns the current number of queued tasks.
func (in *Injector) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.q.Len()
}

// StealBatchAndPop moves roughly half of the injector's tasks into local
// and returns the oldest to run immediately. A held lock reports StealRetry
// rather than blocking.
func (in *Injector) StealBatchAndPop(local *Queue) (*proc.Proc, Steal) {
	if !in.mu.TryLock() {
		return nil, StealRetry
	}

	size := in.q.Len()
	if size == 0 {
		in.mu.Unlock()
		return nil, StealEmpty
	}

	count := (size + 1) / 2
	if count > maxStealBatch {
		count = maxStealBatch
	}

	batch := make([]*proc.Proc, 0, count)
	for i := 0; i < count; i++ {
		batch = append(batch, in.q.PopFront())
	}
	in.mu.Unlock()

	for _, task := range batch[1:] {
		local.Push(task)
	}
	return batch[0], StealSuccess
}
