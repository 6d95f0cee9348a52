package executor

import "go.uber.org/atomic"

// Metrics is a point-in-time snapshot of the executor's counters.
type Metrics struct {
	TasksExecuted int64 // Quanta that ran to completion
	TaskPanics    int64 // Quanta that ended in a panic
	BatchSteals   int64 // Successful batch steals from peer queues
	InjectorPulls int64 // Successful batch pulls from the injector
	Parks         int64 // Times a worker parked with nothing to run
}

// counters holds the live executor counters.
type counters struct {
	tasksExecuted atomic.Int64
	taskPanics    atomic.Int64
	batchSteals   atomic.Int64
	injectorPulls atomic.Int64
	parks         atomic.Int64
}

func (c *counters) snapshot() Metrics {
	return Metrics{
		TasksExecuted: c.tasksExecuted.Load(),
		TaskPanics:    c.taskPanics.Load(),
		BatchSteals:   c.batchSteals.Load(),
		InjectorPulls: c.injectorPulls.Load(),
		Parks:         c.parks.Load(),
	}
}
