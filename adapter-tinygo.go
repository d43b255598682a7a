//go:build tinygo

package digiscope

import (
	"machine"
)

// tinygoPin wraps a machine.Pin to satisfy the Pin interface.
type tinygoPin struct {
	pin machine.Pin
}

func (p *tinygoPin) In(pull Pull) error {
	var mPull machine.PinMode
	switch pull {
	case PullUp:
		mPull = machine.PinInputPullup
	case PullDown:
		mPull = machine.PinInputPulldown
	default:
		mPull = machine.PinInput
	}
	p.pin.Configure(machine.PinConfig{Mode: mPull})
	return nil
}

func (p *tinygoPin) Read() Level {
	return Level(p.pin.Get())
}

func (p *tinygoPin) Watch(edge Edge, handler func()) error {
	var mEdge machine.PinChange
	switch edge {
	case RisingEdge:
		mEdge = machine.PinRising
	case FallingEdge:
		mEdge = machine.PinFalling
	case BothEdges:
		mEdge = machine.PinToggle
	default:
		return nil
	}

	return p.pin.SetInterrupt(mEdge, func(machine.Pin) {
		handler()
	})
}

func (p *tinygoPin) Unwatch() error {
	// A nil callback disables the pin interrupt.
	return p.pin.SetInterrupt(machine.PinToggle, nil)
}

// NewTinyGo creates a scope on a TinyGo target. capacity and opts follow
// HardwareConfig; the pin must support pin-change interrupts.
func NewTinyGo[D Sample](capacity int, pin machine.Pin, pull Pull, opts *Options) (*Scope[D], error) {
	if pin == machine.NoPin {
		return nil, ErrInvalidPin
	}

	return NewWithHardware[D](HardwareConfig{
		Capacity: capacity,
		Options:  opts,
		Pin:      &tinygoPin{pin: pin},
		Pull:     pull,
	})
}
