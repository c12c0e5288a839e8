package main

import (
	"container/heap"
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"
)

// TickPeriod is the length of one sixteenth note at bpm.
func TickPeriod(bpm float64) time.Duration {
	return time.Duration(float64(time.Minute) / bpm / 4)
}

// Task is a one-shot callback queued on a StepClock.
type Task struct {
	at        time.Time
	seq       uint64
	f         func()
	cancelled atomic.Bool
	index     int
}

func (t *Task) Cancel() {
	t.cancelled.Store(true)
}

func (t *Task) Cancelled() bool {
	return t.cancelled.Load()
}

type taskQueue []*Task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x any) {
	t := x.(*Task)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}

// StepClock fires OnTick on a fixed grid and runs deferred tasks, all on
// one goroutine. A tick that comes due late runs once and the grid skips
// ahead; missed steps are never replayed.
//
// After is not safe for use from other goroutines; call it from a tick or
// a task.
type StepClock struct {
	OnTick func(now time.Time)

	period time.Duration
	now    func() time.Time
	log    *Logger

	started bool
	next    time.Time
	current time.Time
	tasks   taskQueue
	seq     uint64
	ticks   int
}

func NewStepClock(period time.Duration, log *Logger) *StepClock {
	if log == nil {
		log = discardLogger()
	}
	return &StepClock{
		period: period,
		now:    time.Now,
		log:    log,
	}
}

func (c *StepClock) Period() time.Duration {
	return c.period
}

func (c *StepClock) Ticks() int {
	return c.ticks
}

func (c *StepClock) Pending() int {
	n := 0
	for _, t := range c.tasks {
		if !t.Cancelled() {
			n++
		}
	}
	return n
}

// After queues f to run d after the current clock instant.
func (c *StepClock) After(d time.Duration, f func()) *Task {
	c.seq++
	t := &Task{
		at:  c.current.Add(d),
		seq: c.seq,
		f:   f,
	}
	heap.Push(&c.tasks, t)
	return t
}

// Advance runs every task due at now, in due order, then at most one tick.
func (c *StepClock) Advance(now time.Time) {
	if !c.started {
		c.started = true
		c.next = now
	}
	c.current = now

	for len(c.tasks) > 0 && !c.tasks[0].at.After(now) {
		t := heap.Pop(&c.tasks).(*Task)
		if t.Cancelled() {
			continue
		}
		c.safely("task", t.f)
	}

	if now.Before(c.next) {
		return
	}

	c.ticks++
	if c.OnTick != nil {
		c.safely("tick", func() { c.OnTick(now) })
	}

	c.next = c.next.Add(c.period)
	if !now.Before(c.next) {
		missed := now.Sub(c.next)/c.period + 1
		c.next = c.next.Add(missed * c.period)
		c.log.Debugf("clock fell behind, skipped %d steps", missed)
	}
}

func (c *StepClock) safely(what string, f func()) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Errorf("%s panicked: %v\n%s", what, r, debug.Stack())
		}
	}()
	f()
}

func (c *StepClock) deadline() time.Time {
	d := c.next
	if len(c.tasks) > 0 && c.tasks[0].at.Before(d) {
		d = c.tasks[0].at
	}
	return d
}

func (c *StepClock) cancelPending() {
	for _, t := range c.tasks {
		t.Cancel()
	}
	c.tasks = nil
}

// Run drives the clock from the wall clock until ctx is done. Pending
// tasks are dropped on return.
func (c *StepClock) Run(ctx context.Context) error {
	if c.period <= 0 {
		return fmt.Errorf("invalid clock period %v", c.period)
	}
	defer c.cancelPending()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}

		c.Advance(c.now())
		timer.Reset(c.deadline().Sub(c.now()))
	}
}
