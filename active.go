package digiscope

// edgeSink is the part of a Scope the edge handler needs. It is not
// generic, so scopes of every sample width fit in the same slot.
type edgeSink interface {
	onEdge() (begin, complete Callback)
}

// active is the scope currently bound to the edge handler. Pin bindings
// accept a plain function, so the handler finds its scope here.
// It is written by Start and Stop inside a critical section.
var active edgeSink

// dispatchEdge is installed as the pin handler for every scope.
func dispatchEdge() {
	var begin, complete Callback

	state := disableInterrupts()
	if active != nil {
		begin, complete = active.onEdge()
	}
	restoreInterrupts(state)

	if begin != nil {
		begin()
	}
	if complete != nil {
		complete()
	}
}
