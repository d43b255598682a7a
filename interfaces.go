package digiscope

// Level represents the logical level of a pin (Low or High).
type Level bool

const (
	Low  Level = false
	High Level = true
)

func (l Level) String() string {
	if l {
		return "HIGH"
	}
	return "LOW"
}

// Pull represents the internal pull-up/down resistor state.
type Pull uint8

const (
	PullNoChange Pull = iota
	PullFloat
	PullDown
	PullUp
)

// Edge represents the signal edge to trigger an interrupt.
// RisingEdge and FallingEdge double as the reconstructed event of a sample.
type Edge uint8

const (
	NoEdge Edge = iota
	RisingEdge
	FallingEdge
	BothEdges
)

func (e Edge) String() string {
	switch e {
	case RisingEdge:
		return "RISING"
	case FallingEdge:
		return "FALLING"
	case BothEdges:
		return "CHANGE"
	default:
		return "NONE"
	}
}

// Pin represents a generic GPIO input pin.
type Pin interface {
	// In sets the pin as input with the given pull mode.
	In(pull Pull) error
	// Read returns the current level of the pin.
	Read() Level
	// Watch configures an interrupt/callback on the specified edge.
	// The handler is a plain function: it carries no receiver, so the
	// binding never needs to know which scope it serves.
	Watch(edge Edge, handler func()) error
	// Unwatch removes the interrupt/callback.
	Unwatch() error
}

// Clock is a monotonic microsecond counter. It is allowed to wrap.
type Clock interface {
	Micros() uint32
}
