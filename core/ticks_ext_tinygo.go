//go:build tick64 && tinygo

package core

// Ticks is the width of the extended tick count: 64 bits with the tick64
// build tag.
type Ticks = uint64

// TickBits is the width of Ticks in bits.
const TickBits = 64

// Wrap count. Cortex-M0/M3/M4 have no 64-bit atomic load, so a torn read
// is possible when the wrap interrupt lands between the two word accesses.
// A short critical section around each access rules that out; the window
// is a handful of cycles, far below the one-period interrupt latency
// budget.
var overflowCount uint64

func incrementOverflow() {
	state := disableInterrupts()
	overflowCount++
	restoreInterrupts(state)
}

func snapshotOverflow() Ticks {
	state := disableInterrupts()
	v := overflowCount
	restoreInterrupts(state)
	return v
}

func storeOverflow(n Ticks) {
	state := disableInterrupts()
	overflowCount = n
	restoreInterrupts(state)
}
