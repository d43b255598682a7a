//go:build !tinygo

package digiscope

import "sync"

// On hosted Go the edge handler runs on a watcher goroutine, so the
// "interrupt disabled" window is a mutex shared by handler and foreground.
// It does not nest.
var critMu sync.Mutex

type interruptState struct{}

func disableInterrupts() interruptState {
	critMu.Lock()
	return interruptState{}
}

func restoreInterrupts(interruptState) {
	critMu.Unlock()
}
