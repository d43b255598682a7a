//go:build tinygo

package digiscope

import "time"

// monotonicClock counts microseconds since boot of the scope. TinyGo's time
// package reads the hardware tick counter directly, no allocation.
type monotonicClock struct {
	epoch time.Time
}

func (m monotonicClock) Micros() uint32 {
	return uint32(time.Since(m.epoch) / time.Microsecond)
}

func defaultClock() Clock {
	return monotonicClock{epoch: time.Now()}
}
