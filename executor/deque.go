package executor

import (
	"sync"

	"github.com/go-foundations/actorpool/proc"
)

// Steal reports the outcome of a steal attempt.
type Steal int

const (
	// StealSuccess means a task was obtained.
	StealSuccess Steal = iota
	// StealEmpty means the source held no tasks.
	StealEmpty
	// StealRetry means a contention window made the attempt inconclusive;
	// the operation may be retried.
	StealRetry
)

// String returns the name of the steal outcome.
func (s Steal) String() string {
	switch s {
	case StealSuccess:
		return "success"
	case StealEmpty:
		return "empty"
	case StealRetry:
		return "retry"
	default:
		return "unknown"
	}
}

// maxStealBatch caps how many tasks a single batch steal may transfer.
const maxStealBatch = 32

// Queue is a worker's local run-queue: a growable ring buffer with
// double-ended semantics. The owning worker pushes and pops at the bottom
// (LIFO); thieves consume from the top (FIFO) through a Stealer.
//
// Exactly one goroutine may call Push and Pop; any number may steal.
type Queue struct {
	mu     sync.Mutex
	buffer []*proc.Proc
	top    int // steal end, increases monotonically
	bottom int // owner end, increases monotonically
}

// NewQueue creates an empty run-queue.
func NewQueue() *Queue {
	return &Queue{buffer: make([]*proc.Proc, 64)}
}

// Push adds a task to the owner end of the queue.
func (q *Queue) Push(task *proc.Proc) {
	q.mu.Lock()
	if q.bottom-q.top >= len(q.buffer) {
		q.grow()
	}
	q.buffer[q.bottom%len(q.buffer)] = task
	q.bottom++
	q.mu.Unlock()
}

// Pop removes and returns the most recently pushed task, or nil if the
// queue is empty.
func (q *Queue) Pop() *proc.Proc {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.bottom == q.top {
		return nil
	}
	q.bottom--
	task := q.buffer[q.bottom%len(q.buffer)]
	q.buffer[q.bottom%len(q.buffer)] = nil
	return task
}

// Len returns the current number of queued tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.bottom - q.top
}

// grow doubles the buffer. Caller holds the lock.
func (q *Queue) grow() {
	newBuffer := make([]*proc.Proc, len(q.buffer)*2)
	for i := q.top; i < q.bottom; i++ {
		newBuffer[i%len(newBuffer)] = q.buffer[i%len(q.buffer)]
	}
	q.buffer = newBuffer
}

// Stealer returns a shareable consumer handle for the queue.
func (q *Queue) Stealer() Stealer {
	return Stealer{q: q}
}

// Stealer is the consume side of a Queue. Copies share the same queue and
// may be used from any goroutine.
type Stealer struct {
	q *Queue
}

// Steal removes and returns the oldest task in the queue.
func (s Stealer) Steal() (*proc.Proc, Steal) {
	batch, status := s.take(1)
	if status != StealSuccess {
		return nil, status
	}
	return batch[0], StealSuccess
}

// StealBatchAndPop moves roughly half of the victim's tasks into dst and
// returns one of them to run immediately.
func (s Stealer) StealBatchAndPop(dst *Queue) (*proc.Proc, Steal) {
	return s.stealBatch(dst, 0)
}

// StealBatchAndPopWithAmount moves up to amount tasks into dst and returns
// one of them to run immediately. amount <= 0 behaves like StealBatchAndPop.
func (s Stealer) StealBatchAndPopWithAmount(dst *Queue, amount int) (*proc.Proc, Steal) {
	return s.stealBatch(dst, amount)
}

func (s Stealer) stealBatch(dst *Queue, amount int) (*proc.Proc, Steal) {
	batch, status := s.take(amount)
	if status != StealSuccess {
		return nil, status
	}
	// The batch is already out of the victim; moving the surplus into dst
	// only touches the thief's own queue, so no two queue locks are ever
	// held together.
	for _, task := range batch[1:] {
		dst.Push(task)
	}
	return batch[0], StealSuccess
}

// take removes up to amount tasks from the steal end. amount <= 0 means
// half of the queue. A held lock reports StealRetry rather than blocking.
func (s Stealer) take(amount int) ([]*proc.Proc, Steal) {
	q := s.q
	if !q.mu.TryLock() {
		return nil, StealRetry
	}

	size := q.bottom - q.top
	if size == 0 {
		q.mu.Unlock()
		return nil, StealEmpty
	}

	count := amount
	if count <= 0 {
		count = (size + 1) / 2
	}
	if count > size {
		count = size
	}
	if count > maxStealBatch {
		count = maxStealBatch
	}

	batch := make([]*proc.Proc, 0, count)
	for i := 0; i < count; i++ {
		batch = append(batch, q.buffer[q.top%len(q.buffer)])
		q.buffer[q.top%len(q.buffer)] = nil
		q.top++
	}
	q.mu.Unlock()
	return batch, StealSuccess
}
