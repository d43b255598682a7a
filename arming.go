package digiscope

// Trigger selects which edge starts recording.
type Trigger uint8

const (
	// AnyChange records from the first edge of either polarity.
	AnyChange Trigger = iota
	// Rising records from the first rising edge.
	Rising
	// Falling records from the first falling edge.
	Falling
)

func (t Trigger) String() string {
	switch t {
	case AnyChange:
		return "CHANGE"
	case Rising:
		return "RISING"
	case Falling:
		return "FALLING"
	default:
		return "unknown"
	}
}

// arm computes the starting write index and the initial state, given the
// level read at arm time. The initial state is the level the pin holds once
// sample 0 is recorded: HIGH for Rising, LOW for Falling, and the inverse of
// the sampled level for AnyChange.
// A negative index is the number of edges to discard; the handler counts it
// up to zero before recording.
func arm(t Trigger, level Level) (idx int32, initial Level) {
	switch t {
	case Rising:
		if level == High {
			// The next edge falls; skip it.
			return -1, High
		}
		return 0, High
	case Falling:
		if level == Low {
			return -1, Low
		}
		return 0, Low
	default:
		return 0, !level
	}
}
