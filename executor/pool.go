// Package executor multiplexes lightweight tasks onto a fixed pool of
// workers, one per OS thread.
//
// Each worker owns a local run-queue and executes tasks from it; when the
// queue runs dry the worker pulls a batch from the shared injector or
// steals from the most loaded peer, guided by a periodically published
// load snapshot. Idle workers park instead of spinning.
//
// The pool is process-wide state: it comes up lazily on first use (or via
// Init) and is never torn down.
package executor

import (
	"errors"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/go-foundations/actorpool/proc"
)

// Config holds configuration for the executor pool.
type Config struct {
	NumWorkers       int         // Number of workers; defaults to the logical core count
	StealRetryBudget int         // Inconclusive fetch attempts before a worker parks
	Logger           *zap.Logger // Defaults to a no-op logger
}

// DefaultConfig returns the configuration used when Init is never called.
func DefaultConfig() Config {
	return Config{
		NumWorkers:       runtime.NumCPU(),
		StealRetryBudget: 64,
	}
}

// Pool ties together the shared injector, the per-worker queues and their
// stealers, the load-stats table, and the parking coordinator.
type Pool struct {
	config   Config
	logger   *zap.Logger
	injector *Injector
	stealers []Stealer
	sleepers *Sleepers
	stats    *Stats
	counters counters
}

var (
	poolOnce    sync.Once
	poolMu      sync.Mutex
	poolInst    *Pool
	poolPending *Config
)

// Init configures the pool before its first use. It fails if the pool is
// already running; calling it is optional.
func Init(config Config) error {
	poolMu.Lock()
	defer poolMu.Unlock()
	if poolInst != nil {
		return errors.New("executor: pool already running")
	}
	poolPending = &config
	return nil
}

// Get returns the process-wide pool handle, starting it on first use.
func Get() *Pool {
	return get()
}

// Injector returns the shared task injector.
func (p *Pool) Injector() *Injector {
	return p.injector
}

// Stealer returns the consumer handle of the given worker's run-queue.
func (p *Pool) Stealer(id int) Stealer {
	return p.stealers[id]
}

// Sleepers returns the parking coordinator.
func (p *Pool) Sleepers() *Sleepers {
	return p.sleepers
}

// Stats returns the load balancer's shared snapshot table.
func (p *Pool) Stats() *Stats {
	return p.stats
}

// get returns the process-wide pool, starting it on first use.
func get() *Pool {
	poolOnce.Do(func() {
		poolMu.Lock()
		config := DefaultConfig()
		if poolPending != nil {
			config = *poolPending
		}
		poolInst = newPool(config)
		poolMu.Unlock()
	})
	return poolInst
}

func newPool(config Config) *Pool {
	if config.NumWorkers <= 0 {
		config.NumWorkers = runtime.NumCPU()
	}
	if config.StealRetryBudget <= 0 {
		config.StealRetryBudget = DefaultConfig().StealRetryBudget
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	p := &Pool{
		config:   config,
		logger:   config.Logger,
		injector: NewInjector(),
		stealers: make([]Stealer, config.NumWorkers),
		sleepers: NewSleepers(),
		stats:    newStats(config.NumWorkers),
	}

	p.logger.Info("starting executor pool", zap.Int("workers", config.NumWorkers))

	queues := make([]*Queue, config.NumWorkers)
	for i := range queues {
		queues[i] = NewQueue()
		p.stealers[i] = queues[i].Stealer()
		p.stats.TryPublish(i, 0)
	}
	for i, queue := range queues {
		go p.mainLoop(i, queue)
	}
	return p
}

// Schedule places a task into the executor: onto the caller's local queue
// when called from a worker, onto the shared injector otherwise. One parked
// worker is notified either way. Safe to call from any goroutine.
func Schedule(task *proc.Proc) {
	get().schedule(task)
}

func (p *Pool) schedule(task *proc.Proc) {
	if local, ok := currentQueue(); ok {
		local.Push(task)
	} else {
		p.injector.Push(task)
	}
	p.sleepers.NotifyOne()
}

// Spawn builds a task whose scheduler hook is this executor and schedules
// it immediately.
func Spawn(fn func(), stack *proc.Stack) *proc.Proc {
	task := proc.New(fn, stack, Schedule)
	task.Schedule()
	return task
}

// GetMetrics returns a snapshot of the executor counters.
func GetMetrics() Metrics {
	return get().counters.snapshot()
}
