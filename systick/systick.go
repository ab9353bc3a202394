//go:build tinygo

// Package systick drives the Cortex-M SysTick peripheral as the hardware
// counter behind a core.Timebase.
//
// SysTick is a 24-bit down-counter clocked from either the processor clock
// or a vendor reference clock. Configure programs it for free-running
// operation over its full range, arms the wrap exception, and hands the
// running counter to the core. The linker must route the SysTick exception
// to the handler exported here.
package systick

import (
	"runtime/volatile"
	"unsafe"

	"tickbase/core"
)

// SysTick register block, common to all Cortex-M parts.
const baseAddr = 0xE000E010

// CSR bits.
const (
	csrEnable    = 0x1 << 0  // counter enable
	csrTickInt   = 0x1 << 1  // wrap exception enable
	csrClkSource = 0x1 << 2  // 1 = processor clock, 0 = reference clock
	csrCountFlag = 0x1 << 16 // set when the counter wrapped since last read
)

// DefaultReload is the full 24-bit range of the counter. The reload value
// is also the highest value the counter holds, so one period is
// DefaultReload+1 ticks.
const DefaultReload = 0x00FFFFFF

type registers struct {
	CSR   volatile.Register32
	RVR   volatile.Register32
	CVR   volatile.Register32
	CALIB volatile.Register32
}

var syst = (*registers)(unsafe.Pointer(uintptr(baseAddr)))

// ClockSource selects what feeds the counter.
type ClockSource uint8

const (
	// ClockReference is the vendor-defined external reference clock.
	ClockReference ClockSource = iota
	// ClockCore is the processor clock.
	ClockCore
)

// Config describes the one-time SysTick setup.
type Config struct {
	Source ClockSource
	Reload uint32 // reload value; 0 selects DefaultReload
	Hz     uint32 // counting frequency of the selected source
}

// counter adapts the live CVR register to the core's Counter interface.
type counter struct{}

func (counter) Remaining() uint32 {
	return syst.CVR.Get() & DefaultReload
}

// Configure programs SysTick for free-running operation, arms the wrap
// exception, and returns the running timebase. Call it once, before any
// other code depends on the timebase; cfg.Hz must match the real speed of
// the selected clock or every conversion will be off by the same factor.
func Configure(cfg Config) *core.Timebase {
	reload := cfg.Reload
	if reload == 0 {
		reload = DefaultReload
	}

	// Stop the counter while reprogramming it.
	syst.CSR.ClearBits(csrEnable | csrTickInt)
	if cfg.Source == ClockCore {
		syst.CSR.SetBits(csrClkSource)
	} else {
		syst.CSR.ClearBits(csrClkSource)
	}
	syst.RVR.Set(reload & DefaultReload)
	// Any write to CVR zeroes it and clears COUNTFLAG, so the first
	// period starts at its full length.
	syst.CVR.Set(0)
	syst.CSR.SetBits(csrEnable | csrTickInt)

	return core.Start(counter{}, reload, cfg.Hz)
}

// Calibration returns the vendor TENMS calibration value (counts per 10ms
// at the reference clock rate) and whether it is exact. Zero means the
// part does not provide one.
func Calibration() (tenms uint32, exact bool) {
	v := syst.CALIB.Get()
	return v & DefaultReload, v&(1<<30) == 0
}

// The wrap exception entry point. Each invocation is one counter wrap;
// the body must stay a single increment so the exception can never outrun
// itself.
//
//export SysTick_Handler
func handleWrap() {
	core.OnWrap()
}
