package executor

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// LoadBalancerTestSuite holds test utilities and state
type LoadBalancerTestSuite struct {
	suite.Suite
}

// TestLoadBalancerTestSuite runs all tests in the suite
func TestLoadBalancerTestSuite(t *testing.T) {
	suite.Run(t, new(LoadBalancerTestSuite))
}

func (ts *LoadBalancerTestSuite) TestMeanRecomputedOnEveryPublish() {
	stats := newStats(2)

	ts.True(stats.TryPublish(0, 10))
	ts.Equal(10, stats.Mean())

	ts.True(stats.TryPublish(1, 0))
	ts.Equal(5, stats.Mean())

	ts.True(stats.TryPublish(1, 4))
	ts.Equal(7, stats.Mean())
}

func (ts *LoadBalancerTestSuite) TestSnapshotCopiesDepths() {
	stats := newStats(3)
	ts.True(stats.TryPublish(0, 3))
	ts.True(stats.TryPublish(1, 6))
	ts.True(stats.TryPublish(2, 0))

	depths, mean, ok := stats.TrySnapshot()
	ts.True(ok)
	ts.Equal(3, mean)
	ts.Len(depths, 3)

	byWorker := make(map[int]int, len(depths))
	for _, d := range depths {
		byWorker[d.Worker] = d.Depth
	}
	ts.Equal(map[int]int{0: 3, 1: 6, 2: 0}, byWorker)
}

func (ts *LoadBalancerTestSuite) TestPublishFailsWhileWriteHeld() {
	stats := newStats(1)

	stats.mu.Lock()
	ts.False(stats.TryPublish(0, 1))
	_, _, ok := stats.TrySnapshot()
	ts.False(ok)
	stats.mu.Unlock()

	ts.True(stats.TryPublish(0, 1))
}

func (ts *LoadBalancerTestSuite) TestSnapshotAllowedWhileReadHeld() {
	stats := newStats(1)
	ts.True(stats.TryPublish(0, 2))

	stats.mu.RLock()
	depths, mean, ok := stats.TrySnapshot()
	stats.mu.RUnlock()

	ts.True(ok)
	ts.Equal(2, mean)
	ts.Len(depths, 1)
}

func (ts *LoadBalancerTestSuite) TestUpdateCounter() {
	stats := newStats(1)
	before := stats.Updates()
	ts.True(stats.TryPublish(0, 1))
	ts.True(stats.TryPublish(0, 2))
	ts.Equal(before+2, stats.Updates())
}
