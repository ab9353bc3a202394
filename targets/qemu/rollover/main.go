//go:build tinygo

// Rollover check: reads the timebase in a tight loop and verifies the
// extension across the 24-bit hardware wrap.
//
// In the standard 32-bit build the count must pass 2^24 without a
// regression (proving the wrap extension works) and may only roll over
// near 2^32. In a tick64 build no rollover is ever expected; the loop
// just reports progress forever.
package main

import "tickbase/systick"

const coreHz = 12000000

func main() {
	tb := systick.Configure(systick.Config{
		Source: systick.ClockCore,
		Hz:     coreHz,
	})

	hwPeriod := uint64(tb.Period())
	prev := tb.Now()
	cnt := 0

	for {
		t := tb.Now()
		if t < prev {
			if uint64(prev) > hwPeriod {
				// Rollover of the wide count itself, past the hardware
				// period: the extension did its job.
				println("PASS: rollover at", uint64(prev))
			} else {
				// Wrapped within the first hardware period: the wrap
				// interrupt never extended the count.
				println("FAIL: early rollover at", uint64(prev))
			}
			for {
			}
		}
		prev = t

		cnt++
		if cnt == 1000000 {
			cnt = 0
			println("ticks:", uint64(t))
		}
	}
}
