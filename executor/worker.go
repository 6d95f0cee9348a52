package executor

import (
	"runtime"
	"sort"

	"go.uber.org/zap"

	"github.com/go-foundations/actorpool/proc"
)

// mainLoop is the body of one worker. It owns the queue as producer for the
// lifetime of the process and is pinned to an OS thread.
func (p *Pool) mainLoop(id int, local *Queue) {
	runtime.LockOSThread()
	registerWorkerQueue(local)
	p.logger.Debug("worker started", zap.Int("worker", id))

	for {
		p.publishDepth(id, local)

		if task := p.fetch(id, local); task != nil {
			p.runTask(task)
		} else {
			p.counters.parks.Inc()
			p.sleepers.Wait()
		}
	}
}

// publishDepth records the local queue depth in the shared stats table,
// retrying until the write lock is free. Skipping on contention would bias
// the mean low.
func (p *Pool) publishDepth(id int, local *Queue) {
	for !p.stats.TryPublish(id, local.Len()) {
		runtime.Gosched()
	}
}

// fetch obtains the next task for this worker: local pop first, then a
// batch from the injector, then a batch stolen from the deepest peer. A
// contended stats lock or steal makes the attempt inconclusive; the
// sequence is retried up to the configured budget before giving up, at
// which point the caller parks.
func (p *Pool) fetch(id int, local *Queue) *proc.Proc {
	if task := local.Pop(); task != nil {
		return task
	}

	for attempt := 0; attempt < p.config.StealRetryBudget; attempt++ {
		depths, mean, ok := p.stats.TrySnapshot()
		if !ok {
			runtime.Gosched()
			continue
		}

		// Externally injected work takes precedence over peers so it
		// cannot starve behind long-standing local queues.
		task, status := p.injector.StealBatchAndPop(local)
		if status == StealSuccess {
			p.counters.injectorPulls.Inc()
			return task
		}
		retry := status == StealRetry

		// Deepest victims first: stealing from the most overloaded queue
		// amortizes the cross-thread traffic, and taking the mean amount
		// levels the queues in one hop instead of repeated halvings.
		sort.Slice(depths, func(i, j int) bool {
			return depths[i].Depth > depths[j].Depth
		})
		for _, victim := range depths {
			if victim.Worker == id {
				continue
			}
			var stolen *proc.Proc
			if mean > 0 {
				stolen, status = p.stealers[victim.Worker].StealBatchAndPopWithAmount(local, mean)
			} else {
				stolen, status = p.stealers[victim.Worker].StealBatchAndPop(local)
			}
			switch status {
			case StealSuccess:
				p.counters.batchSteals.Inc()
				return stolen
			case StealRetry:
				retry = true
			}
		}

		if !retry {
			return nil
		}
	}

	// Retry budget exhausted; treat as empty and let the worker park. A
	// later notify re-runs the whole sequence.
	return nil
}

// runTask executes one quantum with the task's metadata installed in the
// goroutine-local slot. A panicking task is contained here: the slot is
// cleared, the panic is logged, and the worker keeps going.
func (p *Pool) runTask(task *proc.Proc) {
	defer func() {
		if r := recover(); r != nil {
			p.counters.taskPanics.Inc()
			p.logger.Error("task panicked", zap.Any("panic", r))
		}
	}()

	setStack(task.Stack(), task.Run)
	p.counters.tasksExecuted.Inc()
}
