// Package core extends a short, wrapping hardware counter into a wide
// monotonic tick count.
//
// The hardware counter (SysTick on Cortex-M, or anything with the same
// shape) counts down from a fixed reload value to zero, reloads, and raises
// an interrupt on every reload. The interrupt dispatch layer must call
// OnWrap exactly once per wrap; Now combines the accumulated wrap count
// with the live counter position into a single elapsed-tick value that is
// safe to read from any context, including interrupt context, without
// locks.
//
// Operating constraints, not checked at runtime: the wrap interrupt must
// not be starved for longer than one full counter period (masking it that
// long silently undercounts), and the tick count wraps once its full width
// is exhausted. Builds needing more headroom than 32 bits use the tick64
// build tag.
package core

import "time"

// Counter reads the live remaining-count value of the wrapping hardware
// counter. Remaining returns counts left until the next wrap; the value
// must never exceed the reload value passed to Start.
type Counter interface {
	Remaining() uint32
}

// Timebase converts snapshots of the wrap count and the hardware counter
// into elapsed ticks. Create it with Start after the hardware counter is
// already counting and its wrap interrupt is armed; there is no way to
// observe "not started yet" from here, so sequencing is the caller's
// contract.
//
// All methods are non-blocking and bounded: Now performs at most two
// counter reads and two wrap-count reads.
type Timebase struct {
	counter Counter
	reload  uint32
	period  Ticks // reload + 1
	hz      uint32
}

// Start wraps an already-running hardware counter. reload is the value the
// counter reloads to after reaching zero, hz the counting frequency. The
// wrap count restarts from zero.
//
// The wrap count is process-wide state (one hardware counter, one wrap
// interrupt), so only one Timebase should be live at a time.
func Start(counter Counter, reload uint32, hz uint32) *Timebase {
	if counter == nil {
		panic("core: nil counter")
	}
	if hz == 0 {
		panic("core: zero frequency")
	}
	storeOverflow(0)
	return &Timebase{
		counter: counter,
		reload:  reload,
		period:  Ticks(reload) + 1,
		hz:      hz,
	}
}

// OnWrap records one hardware-counter wrap. The interrupt dispatch layer
// must call it exactly once per wrap interrupt and from nowhere else; it
// is the sole writer of the wrap count.
func OnWrap() {
	incrementOverflow()
}

// OverflowCount returns the number of wraps recorded since Start.
func OverflowCount() Ticks {
	return snapshotOverflow()
}

// SetOverflow overwrites the wrap count (for testing/hardware integration).
func SetOverflow(n Ticks) {
	storeOverflow(n)
}

// Now returns elapsed ticks since Start.
//
// The wrap interrupt may fire at any point during this call, so the wrap
// count is read twice around the counter read. If both reads agree no wrap
// landed in the window and the pair is consistent. If they disagree,
// exactly one wrap landed (the window is far shorter than a counter
// period), so the counter is re-read and paired with the second wrap
// count; the stale first pair is never used. No further retry: two wraps
// inside the window would mean the interrupt was starved past the
// documented latency budget.
//
// Results are monotonically non-decreasing until the tick width is
// exhausted, at which point the value wraps to zero like any fixed-width
// counter.
func (tb *Timebase) Now() Ticks {
	o1 := snapshotOverflow()
	c := tb.elapsed()
	o2 := snapshotOverflow()
	if o1 == o2 {
		return o1*tb.period + c
	}
	c = tb.elapsed()
	return o2*tb.period + c
}

// elapsed maps the down-counter onto ticks elapsed within the current
// period. A reading equal to the reload value is the first tick of a
// period (elapsed 0); a reading of zero is the last (elapsed reload). The
// wrap interrupt fires on the zero-to-reload transition, so this mapping
// and the wrap count agree at the boundary.
func (tb *Timebase) elapsed() Ticks {
	return Ticks(tb.reload - tb.counter.Remaining())
}

// NowDuration returns elapsed time since Start.
func (tb *Timebase) NowDuration() time.Duration {
	return tb.TicksToDuration(tb.Now())
}

// TicksToDuration converts a tick count to a duration. Whole seconds and
// the sub-second remainder are scaled separately so the intermediate never
// overflows 64 bits at any supported frequency; error is below one
// nanosecond per conversion.
func (tb *Timebase) TicksToDuration(t Ticks) time.Duration {
	hz := uint64(tb.hz)
	secs := uint64(t) / hz
	rem := uint64(t) % hz
	return time.Duration(secs)*time.Second + time.Duration(rem*uint64(time.Second)/hz)
}

// DurationToTicks converts a duration to ticks, truncating toward zero.
func (tb *Timebase) DurationToTicks(d time.Duration) Ticks {
	if d <= 0 {
		return 0
	}
	hz := uint64(tb.hz)
	ns := uint64(d)
	secs := ns / uint64(time.Second)
	rem := ns % uint64(time.Second)
	return Ticks(secs*hz) + Ticks(rem*hz/uint64(time.Second))
}

// TicksToMicros converts a tick count to microseconds.
func (tb *Timebase) TicksToMicros(t Ticks) uint64 {
	hz := uint64(tb.hz)
	secs := uint64(t) / hz
	rem := uint64(t) % hz
	return secs*1000000 + rem*1000000/hz
}

// TicksFromMicros converts microseconds to ticks.
func (tb *Timebase) TicksFromMicros(us uint64) Ticks {
	hz := uint64(tb.hz)
	secs := us / 1000000
	rem := us % 1000000
	return Ticks(secs*hz) + Ticks(rem*hz/1000000)
}

// BusyWait spins until at least d has elapsed. The comparison is done in
// modular tick arithmetic, so it stays correct across a width wrap of the
// tick count.
func (tb *Timebase) BusyWait(d time.Duration) {
	n := tb.DurationToTicks(d)
	start := tb.Now()
	for tb.Now()-start < n {
	}
}

// Hz returns the counting frequency fixed at Start.
func (tb *Timebase) Hz() uint32 {
	return tb.hz
}

// Reload returns the hardware reload value fixed at Start.
func (tb *Timebase) Reload() uint32 {
	return tb.reload
}

// Period returns the length of one hardware period in ticks (reload + 1).
func (tb *Timebase) Period() Ticks {
	return tb.period
}
