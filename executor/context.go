package executor

import (
	"sync"

	"github.com/petermattis/goid"

	"github.com/go-foundations/actorpool/proc"
)

// Goroutine-keyed slots standing in for thread-local storage. The queue
// slot is occupied exactly by worker goroutines; the stack slot only while
// a task's Run is on that worker's stack.
var (
	stackSlots sync.Map // goroutine id -> *proc.Stack
	queueSlots sync.Map // goroutine id -> *Queue
)

// Current returns a copy of the metadata of the task the calling goroutine
// is running. Calling it from outside a task body is a programmer error and
// panics.
func Current() proc.Stack {
	if stack, ok := currentStack(); ok {
		return *stack
	}
	panic("executor: Current called outside the context of a task")
}

func currentStack() (*proc.Stack, bool) {
	value, ok := stackSlots.Load(goid.Get())
	if !ok {
		return nil, false
	}
	return value.(*proc.Stack), true
}

// setStack installs the task metadata for the duration of f. The slot is
// cleared on every exit path, including panics.
func setStack(stack *proc.Stack, f func()) {
	id := goid.Get()
	stackSlots.Store(id, stack)
	defer stackSlots.Delete(id)
	f()
}

// registerWorkerQueue marks the calling goroutine as a worker owning q.
// Never cleared: workers live as long as the process.
func registerWorkerQueue(q *Queue) {
	queueSlots.Store(goid.Get(), q)
}

func currentQueue() (*Queue, bool) {
	value, ok := queueSlots.Load(goid.Get())
	if !ok {
		return nil, false
	}
	return value.(*Queue), true
}
