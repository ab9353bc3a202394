//go:build tick64

package core

import "testing"

// In extended mode the tick count keeps counting past 2^32 where the
// standard width would have wrapped.
func TestTickWidthExtended(t *testing.T) {
	const reload = 0xFFFFFF // period 0x1000000

	ctr := &fakeCounter{}
	tb := Start(ctr, reload, 12000000)

	// The position where the 32-bit container would sit at its maximum.
	SetOverflow(255)
	ctr.remaining = 0
	if got := tb.Now(); got != 0xFFFFFFFF {
		t.Fatalf("Now() = %#x, want 0xFFFFFFFF", got)
	}

	// One more wrap: no rollover, the count crosses 2^32.
	OnWrap()
	ctr.remaining = reload
	if got := tb.Now(); got != 0x100000000 {
		t.Fatalf("Now() past 2^32 = %#x, want 0x100000000", got)
	}

	// Deep into the 64-bit range the combine still holds.
	SetOverflow(1 << 30)
	ctr.remaining = reload - 7
	want := Ticks(1<<30)*0x1000000 + 7
	if got := tb.Now(); got != want {
		t.Fatalf("Now() deep range = %#x, want %#x", got, want)
	}
}
