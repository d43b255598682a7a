package digiscope

import (
	"errors"
	"fmt"
)

// MaxCapacity is the largest number of samples a scope can hold.
const MaxCapacity = 1<<16 - 1

var (
	ErrPkg             = errors.New("digiscope")
	ErrInvalidCapacity = fmt.Errorf("%w: capacity must be between 1 and %d", ErrPkg, MaxCapacity)
	ErrInvalidPin      = fmt.Errorf("%w: input pin not configured", ErrPkg)
	ErrInvalidTrigger  = fmt.Errorf("%w: unknown trigger mode", ErrPkg)
)

// Sample is the storage type of one timestamp. Narrower types save memory
// but wrap sooner: a uint8 sample covers 255us after the first edge, a
// uint32 sample about 71 minutes. Overflow is not detected.
type Sample interface {
	~uint8 | ~uint16 | ~uint32
}

// Callback is invoked from the edge handler. On a microcontroller that is
// interrupt context: it must not block and should return quickly, since the
// next edge is not captured until it does. It must not call Start, Stop or
// Close.
type Callback func()

// Options selects the optional behaviour of the edge handler.
type Options struct {
	// EnableBeginCallback invokes the begin callback when sample 0 is recorded.
	EnableBeginCallback bool
	// EnableCompleteCallback invokes the complete callback when the last
	// sample is recorded.
	EnableCompleteCallback bool
	// AutoStopOnFull disables the scope as soon as the buffer is full.
	AutoStopOnFull bool
}

// DefaultOptions enables both callbacks and stops automatically when full.
func DefaultOptions() Options {
	return Options{
		EnableBeginCallback:    true,
		EnableCompleteCallback: true,
		AutoStopOnFull:         true,
	}
}

type HardwareConfig struct {
	// Capacity is the number of edges to record.
	// Range: 1 to MaxCapacity.
	Capacity int
	// Options controls callbacks and auto-stop.
	// Defaults to DefaultOptions() if not provided.
	Options *Options
	// Pin is the input pin to capture from.
	Pin Pin
	// Pull is applied to Pin when the scope is created.
	// Defaults to PullNoChange.
	Pull Pull
	// Clock provides the timestamps.
	// Defaults to a monotonic clock started at construction.
	Clock Clock
}

// Scope records the timestamps of level changes on a single input pin.
//
// Capture uses a hard-stop buffer: once Capacity edges are recorded further
// edges are dropped and Completed reports true. Only one scope may be armed
// at a time; arming a second one while the first is still armed takes over
// the edge handler and leaves the first without samples.
//
// TimeOf, EventOf and StateOf read the buffer without synchronisation and
// are only valid after Stop, or after Completed when AutoStopOnFull is set.
type Scope[D Sample] struct {
	pin      Pin
	clock    Clock
	opts     Options
	capacity int32
	trigger  Trigger
	initial  Level
	watching bool

	// Shared with the edge handler. Foreground code touches these only
	// inside a critical section, or while the handler is detached.
	idx        int32
	start      uint32
	enabled    bool
	onBegin    Callback
	onComplete Callback
	samples    []D
}

// NewWithHardware creates a scope on the provided hardware interfaces.
// The scope is idle until Start is called.
func NewWithHardware[D Sample](c HardwareConfig) (*Scope[D], error) {
	if c.Capacity < 1 || c.Capacity > MaxCapacity {
		return nil, ErrInvalidCapacity
	}
	if c.Pin == nil {
		return nil, ErrInvalidPin
	}
	opts := DefaultOptions()
	if c.Options != nil {
		opts = *c.Options
	}
	if c.Clock == nil {
		c.Clock = defaultClock()
	}

	if err := c.Pin.In(c.Pull); err != nil {
		return nil, fmt.Errorf("failed to configure input pin: %w", err)
	}

	s := &Scope[D]{
		pin:      c.Pin,
		clock:    c.Clock,
		opts:     opts,
		capacity: int32(c.Capacity),
		samples:  make([]D, c.Capacity),
	}

	globalLogger.Info("Digital scope initialized.")
	return s, nil
}

func (s *Scope[D]) String() string {
	return fmt.Sprintf("DigitalScope(Capacity=%d, Trigger=%s, Events=%d, Enabled=%v)",
		s.capacity,
		s.trigger,
		s.NumEvents(),
		s.Enabled(),
	)
}

// SetBeginCallback sets the function invoked when sample 0 is recorded.
// Pass nil to clear it. The call is ignored while the scope is armed; the
// return value reports whether fn was installed.
func (s *Scope[D]) SetBeginCallback(fn Callback) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if s.enabled {
		return false
	}
	s.onBegin = fn
	return true
}

// SetCompleteCallback sets the function invoked when the last sample is
// recorded. It never fires for a scope stopped early. Pass nil to clear it.
// The call is ignored while the scope is armed.
func (s *Scope[D]) SetCompleteCallback(fn Callback) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if s.enabled {
		return false
	}
	s.onComplete = fn
	return true
}

// Start arms the scope. Previously recorded samples are discarded.
//
// With AnyChange the next edge becomes sample 0. With Rising (Falling)
// recording begins at the next rising (falling) edge; if the pin is
// currently high (low) the edge in between is discarded.
// Calling Start on an armed scope does nothing.
func (s *Scope[D]) Start(t Trigger) error {
	if t > Falling {
		return ErrInvalidTrigger
	}

	state := disableInterrupts()
	armed := s.enabled
	restoreInterrupts(state)
	if armed {
		globalLogger.Debug("Scope already armed, ignoring start.")
		return nil
	}

	// The handler is attached before the level is latched and ignores edges
	// until the scope is bound below. An edge that lands after the last
	// Stop but whose handler only runs once the scope is bound is recorded
	// against a level read after it, inverting every polarity. That window
	// is not guarded.
	if !s.watching {
		if err := s.pin.Watch(BothEdges, dispatchEdge); err != nil {
			return fmt.Errorf("failed to watch pin: %w", err)
		}
		s.watching = true
	}

	state = disableInterrupts()
	s.idx, s.initial = arm(t, s.pin.Read())
	s.start = 0
	s.trigger = t
	s.enabled = true
	active = s
	restoreInterrupts(state)

	globalLogger.Debug("Scope armed, trigger " + t.String())
	return nil
}

// Stop disarms the scope and detaches the edge handler. No sample is
// recorded after Stop returns; recorded samples stay readable until the
// next Start.
func (s *Scope[D]) Stop() error {
	s.unbind()
	if !s.watching {
		return nil
	}
	return s.detach()
}

// Close stops the scope and unconditionally detaches the edge handler.
func (s *Scope[D]) Close() error {
	s.unbind()
	err := s.detach()
	globalLogger.Info("Digital scope closed.")
	return err
}

func (s *Scope[D]) unbind() {
	state := disableInterrupts()
	s.enabled = false
	if active == edgeSink(s) {
		active = nil
	}
	restoreInterrupts(state)
}

func (s *Scope[D]) detach() error {
	s.watching = false
	if err := s.pin.Unwatch(); err != nil {
		return fmt.Errorf("failed to unwatch pin: %w", err)
	}
	return nil
}

// Enabled reports whether the scope is currently recording.
func (s *Scope[D]) Enabled() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return s.enabled
}

// Capacity returns the number of samples the scope can hold.
func (s *Scope[D]) Capacity() int {
	return int(s.capacity)
}

// NumEvents returns the number of samples recorded since the last Start.
// It is safe to call while the scope is armed, including from a callback.
func (s *Scope[D]) NumEvents() int {
	state := disableInterrupts()
	idx := s.idx
	restoreInterrupts(state)

	if idx < 0 {
		return 0
	}
	return int(idx)
}

// Completed reports whether the buffer is full.
func (s *Scope[D]) Completed() bool {
	return s.NumEvents() == int(s.capacity)
}

// TimeOf returns the time of sample idx in microseconds, relative to
// sample 0. idx must be in [0, NumEvents()).
func (s *Scope[D]) TimeOf(idx int) uint32 {
	return uint32(s.samples[idx])
}

// EventOf returns the edge that produced sample idx, RisingEdge or FallingEdge.
func (s *Scope[D]) EventOf(idx int) Edge {
	return eventAt(idx, s.initial)
}

// StateOf returns the pin level right after sample idx.
func (s *Scope[D]) StateOf(idx int) Level {
	return stateAt(idx, s.initial)
}

// TimeOfStart returns the clock reading in microseconds at which sample 0
// was recorded, or 0 if no sample was recorded yet.
func (s *Scope[D]) TimeOfStart() uint32 {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return s.start
}

// InitialState returns the logical initial state latched by Start: the
// level the pin holds right after sample 0. StateOf(0) always equals it.
func (s *Scope[D]) InitialState() Level {
	return s.initial
}

// onEdge records one edge. It runs with interrupts disabled and returns the
// callbacks the caller must invoke once they are enabled again.
func (s *Scope[D]) onEdge() (begin, complete Callback) {
	now := s.clock.Micros()

	if !s.enabled {
		return nil, nil
	}
	if s.idx < 0 {
		s.idx++
		return nil, nil
	}
	if s.idx >= s.capacity {
		return nil, nil
	}

	if s.idx == 0 {
		s.start = now
		if s.opts.EnableBeginCallback {
			begin = s.onBegin
		}
	}

	// The slot is written before the index moves past it.
	s.samples[s.idx] = D(now - s.start)
	s.idx++

	if s.idx == s.capacity {
		if s.opts.AutoStopOnFull {
			s.enabled = false
		}
		if s.opts.EnableCompleteCallback {
			complete = s.onComplete
		}
	}
	return begin, complete
}
