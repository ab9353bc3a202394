//go:build !tinygo

package core

// State stands in for the interrupt mask state on regular Go builds.
type State uintptr

// disableInterrupts is a no-op on regular Go; host tests have no
// interrupt model, so the window the critical section closes on bare
// metal cannot open here.
func disableInterrupts() State {
	return 0
}

// restoreInterrupts restores a state saved by disableInterrupts.
func restoreInterrupts(state State) {
}
