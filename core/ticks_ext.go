//go:build tick64 && !tinygo

package core

import "sync/atomic"

// Ticks is the width of the extended tick count: 64 bits with the tick64
// build tag.
type Ticks = uint64

// TickBits is the width of Ticks in bits.
const TickBits = 64

// Wrap count. Host Go has native 64-bit atomics, so no critical section
// is needed here; see ticks_ext_tinygo.go for the bare-metal fallback.
var overflowCount uint64

func incrementOverflow() {
	atomic.AddUint64(&overflowCount, 1)
}

func snapshotOverflow() Ticks {
	return atomic.LoadUint64(&overflowCount)
}

func storeOverflow(n Ticks) {
	atomic.StoreUint64(&overflowCount, n)
}
