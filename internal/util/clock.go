package util

import (
	"sync"
	"time"
)

// Clock abstracts wall-clock access so time-dependent logic (streak day
// boundaries, scheduled writes) can be driven from tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// StubClock is a settable Clock for tests.
type StubClock struct {
	now  time.Time
	lock sync.Mutex
}

func NewStubClock(start time.Time) *StubClock {
	return &StubClock{now: start}
}

func (c *StubClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *StubClock) SetNow(now time.Time) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = now
}

func (c *StubClock) Advance(d time.Duration) time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
	return c.now
}
