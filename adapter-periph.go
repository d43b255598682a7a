//go:build !tinygo

package digiscope

import (
	"fmt"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// watchPoll bounds how long the watcher goroutine blocks in WaitForEdge, so
// Unwatch is honoured even on a quiet line.
const watchPoll = 100 * time.Millisecond

// realPin wraps a gpio.PinIO to satisfy the Pin interface.
type realPin struct {
	gpio.PinIO
	pull      gpio.Pull
	stopWatch chan struct{}
	done      sync.WaitGroup
}

func toPeriphPull(pull Pull) gpio.Pull {
	switch pull {
	case PullFloat:
		return gpio.Float
	case PullDown:
		return gpio.PullDown
	case PullUp:
		return gpio.PullUp
	default:
		return gpio.PullNoChange
	}
}

func (p *realPin) In(pull Pull) error {
	p.pull = toPeriphPull(pull)
	return p.PinIO.In(p.pull, gpio.NoEdge)
}

func (p *realPin) Read() Level {
	if p.PinIO.Read() == gpio.High {
		return High
	}
	return Low
}

func (p *realPin) Watch(edge Edge, handler func()) error {
	var pEdge gpio.Edge
	switch edge {
	case RisingEdge:
		pEdge = gpio.RisingEdge
	case FallingEdge:
		pEdge = gpio.FallingEdge
	case BothEdges:
		pEdge = gpio.BothEdges
	default:
		pEdge = gpio.NoEdge
	}

	if err := p.PinIO.In(p.pull, pEdge); err != nil {
		return err
	}

	stop := make(chan struct{})
	p.stopWatch = stop
	p.done.Add(1)

	go func() {
		defer p.done.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if p.PinIO.WaitForEdge(watchPoll) {
				select {
				case <-stop:
					return
				default:
					handler()
				}
			}
		}
	}()
	return nil
}

// Unwatch stops the watcher goroutine and waits for an in-flight handler
// call to return.
func (p *realPin) Unwatch() error {
	if p.stopWatch != nil {
		close(p.stopWatch)
		p.stopWatch = nil
		p.done.Wait()
	}
	// Disable edge detection
	return p.PinIO.In(p.pull, gpio.NoEdge)
}

// Config holds the configuration for the Linux/periph.io scope.
type Config struct {
	// Pin is the periph.io name of the input pin (e.g., "GPIO17").
	Pin string
	// Capacity is the number of edges to record.
	// Defaults to 256 if not provided.
	Capacity int
	// Pull is the pull resistor of the input pin.
	// Defaults to PullNoChange.
	Pull Pull
	// Options controls callbacks and auto-stop.
	// Defaults to DefaultOptions() if not provided.
	Options *Options
}

// New creates a scope on a Linux host using periph.io.
// It initializes the host drivers, looks up the pin by name and configures
// it as an input. Edges are timestamped from the system clock.
func New[D Sample](c Config) (*Scope[D], error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io host: %w", err)
	}

	if c.Capacity == 0 {
		c.Capacity = 256
	}
	if c.Pin == "" {
		return nil, ErrInvalidPin
	}
	realIn := gpioreg.ByName(c.Pin)
	if realIn == nil {
		return nil, fmt.Errorf("%w: failed to open pin %s", ErrInvalidPin, c.Pin)
	}

	return NewWithHardware[D](HardwareConfig{
		Capacity: c.Capacity,
		Options:  c.Options,
		Pin:      &realPin{PinIO: realIn},
		Pull:     c.Pull,
		Clock:    NewClock(nil),
	})
}
