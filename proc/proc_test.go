package proc

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

// ProcTestSuite holds test utilities and state
type ProcTestSuite struct {
	suite.Suite
}

// TestProcTestSuite runs all tests in the suite
func TestProcTestSuite(t *testing.T) {
	suite.Run(t, new(ProcTestSuite))
}

func (ts *ProcTestSuite) TestRunInvokesCallbacksAroundBody() {
	var order []string
	stack := &Stack{
		ID:     7,
		Before: func() { order = append(order, "before") },
		After:  func() { order = append(order, "after") },
	}

	task := New(func() { order = append(order, "body") }, stack, func(*Proc) {})
	task.Run()

	ts.Equal([]string{"before", "body", "after"}, order)
	ts.Equal(uint64(7), task.Stack().ID)
}

func (ts *ProcTestSuite) TestNilStackReplaced() {
	task := New(func() {}, nil, func(*Proc) {})
	ts.NotNil(task.Stack())
}

func (ts *ProcTestSuite) TestScheduleHandsItselfToHook() {
	var scheduled *Proc
	task := New(func() {}, &Stack{}, func(p *Proc) { scheduled = p })

	task.Schedule()
	ts.Same(task, scheduled)
}

func (ts *ProcTestSuite) TestRescheduleFromBody() {
	quanta := 0
	var task *Proc
	runs := make([]*Proc, 0, 3)

	task = New(func() {
		quanta++
		if quanta < 3 {
			task.Schedule()
		}
	}, &Stack{}, func(p *Proc) { runs = append(runs, p) })

	task.Run()
	for len(runs) > 0 {
		next := runs[0]
		runs = runs[1:]
		next.Run()
	}

	ts.Equal(3, quanta)
}
