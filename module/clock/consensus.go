package clock

import (
	"time"

	"go.uber.org/atomic"

	"github.com/ledgerd/recordcache/module"
)

// Consensus tracks the consensus time of the round currently being handled. It is
// advanced by the handle thread and read by any goroutine.
type Consensus struct {
	nanos *atomic.Int64
}

var _ module.ConsensusClock = (*Consensus)(nil)

// NewConsensus returns a clock set to start.
func NewConsensus(start time.Time) *Consensus {
	return &Consensus{nanos: atomic.NewInt64(start.UnixNano())}
}

// CurrentConsensusTime returns the latest consensus time.
func (c *Consensus) CurrentConsensusTime() time.Time {
	return time.Unix(0, c.nanos.Load()).UTC()
}

// Set moves the clock to t. Consensus time never moves backwards; earlier values are
// ignored and false is returned.
func (c *Consensus) Set(t time.Time) bool {
	next := t.UnixNano()
	for {
		current := c.nanos.Load()
		if next < current {
			return false
		}
		if c.nanos.CompareAndSwap(current, next) {
			return true
		}
	}
}

// Advance moves the clock forward by d.
func (c *Consensus) Advance(d time.Duration) time.Time {
	return time.Unix(0, c.nanos.Add(int64(d))).UTC()
}
