//go:build !tick64

package core

import "sync/atomic"

// Ticks is the width of the extended tick count: 32 bits in standard
// builds, 64 bits with the tick64 build tag.
type Ticks = uint32

// TickBits is the width of Ticks in bits.
const TickBits = 32

// Wrap count. Written only by OnWrap from the wrap interrupt, read from
// any context; a native 32-bit atomic covers both sides on every
// supported target.
var overflowCount uint32

func incrementOverflow() {
	atomic.AddUint32(&overflowCount, 1)
}

func snapshotOverflow() Ticks {
	return atomic.LoadUint32(&overflowCount)
}

func storeOverflow(n Ticks) {
	atomic.StoreUint32(&overflowCount, n)
}
