//go:build tinygo

// Periodic uptime demo: prints the extended tick count twice a second and
// emits a report frame for tickmon on the other end of the serial link.
//
// Runs on any Cortex-M target; adjust coreHz to the actual core clock.
package main

import (
	"time"

	"machine"

	"tickbase/protocol"
	"tickbase/systick"
)

const coreHz = 12000000

func main() {
	tb := systick.Configure(systick.Config{
		Source: systick.ClockCore,
		Hz:     coreHz,
	})

	var seq uint8
	var frame [protocol.ReportLength]byte
	for {
		t := tb.Now()
		println("uptime us:", tb.TicksToMicros(t))

		protocol.EncodeReport(frame[:], seq, uint64(t))
		for _, b := range frame {
			machine.Serial.WriteByte(b)
		}
		seq++

		tb.BusyWait(500 * time.Millisecond)
	}
}
