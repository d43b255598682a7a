//go:build !tinygo

package digiscope

import (
	"time"

	"github.com/benbjohnson/clock"
)

// wallClock adapts a clock.Clock to the Clock interface. Readings count
// microseconds since the adapter was created.
type wallClock struct {
	c     clock.Clock
	epoch time.Time
}

// NewClock returns a Clock backed by c. A nil c uses the system clock.
func NewClock(c clock.Clock) Clock {
	if c == nil {
		c = clock.New()
	}
	return &wallClock{c: c, epoch: c.Now()}
}

func (w *wallClock) Micros() uint32 {
	return uint32(w.c.Since(w.epoch) / time.Microsecond)
}

func defaultClock() Clock {
	return NewClock(nil)
}
