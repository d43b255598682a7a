package digiscope

// eventAt reconstructs the edge that produced sample idx.
// The handler only fires on a change, so the pin alternates on every
// recorded sample: sample 0 enters the initial state and each following
// sample flips it again. Polarity is never stored per sample.
func eventAt(idx int, initial Level) Edge {
	if (idx%2 == 0) != (initial == High) {
		return FallingEdge
	}
	return RisingEdge
}

// stateAt returns the level the pin holds after sample idx.
func stateAt(idx int, initial Level) Level {
	return eventAt(idx, initial) == RisingEdge
}
