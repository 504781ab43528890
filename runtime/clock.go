package runtime

import "time"

// Clock supplies the single wall-clock snapshot each invocation consults.
type Clock interface {
	Unix() int64
}

// SystemClock reads the host clock.
type SystemClock struct{}

func (SystemClock) Unix() int64 { return time.Now().Unix() }

// ManualClock is a settable clock for tests and replays.
type ManualClock struct {
	now int64
}

func NewManualClock(now int64) *ManualClock { return &ManualClock{now: now} }

func (c *ManualClock) Unix() int64 { return c.now }

func (c *ManualClock) Set(now int64) { c.now = now }

func (c *ManualClock) Advance(seconds int64) { c.now += seconds }
