// Package monitor checks a device tick-report stream for consistency.
//
// It decodes report frames, enforces tick monotonicity across reports,
// and, given the device tick rate, estimates the actual rate against the
// host clock so gross frequency misconfiguration shows up as drift.
package monitor

import (
	"fmt"
	"time"

	"tickbase/protocol"
)

// Stats summarizes a monitored stream.
type Stats struct {
	Reports   uint64
	CRCErrors uint64
	SeqGaps   uint64
	Skipped   uint64
	LastTicks uint64
}

// Monitor consumes raw serial bytes and validates the report stream.
type Monitor struct {
	dec protocol.Decoder
	hz  uint32

	reports  uint64
	last     uint64
	haveLast bool

	firstTicks uint64
	firstHost  time.Time
	lastHost   time.Time

	now func() time.Time // swapped out in tests
}

// New returns a monitor. hz is the device tick rate used for duration
// conversion and drift estimation; 0 disables both.
func New(hz uint32) *Monitor {
	return &Monitor{hz: hz, now: time.Now}
}

// Feed decodes raw bytes and returns the completed reports. A tick count
// lower than its predecessor is a protocol violation on the device side
// and comes back as an error; decoding state stays usable afterwards.
func (m *Monitor) Feed(data []byte) ([]protocol.Report, error) {
	reports := m.dec.Feed(data)

	for _, r := range reports {
		host := m.now()
		if !m.haveLast {
			m.firstTicks = r.Ticks
			m.firstHost = host
		} else if r.Ticks < m.last {
			return reports, fmt.Errorf(
				"tick count went backwards: %d -> %d (seq %d)",
				m.last, r.Ticks, r.Sequence)
		}
		m.last = r.Ticks
		m.haveLast = true
		m.lastHost = host
		m.reports++
	}
	return reports, nil
}

// Uptime converts a device tick count to a duration. Zero without a
// configured tick rate.
func (m *Monitor) Uptime(ticks uint64) time.Duration {
	if m.hz == 0 {
		return 0
	}
	hz := uint64(m.hz)
	secs := ticks / hz
	rem := ticks % hz
	return time.Duration(secs)*time.Second + time.Duration(rem*uint64(time.Second)/hz)
}

// Rate estimates the device tick rate from the first and last report
// against the host clock. ok is false until the stream spans enough host
// time for the estimate to mean anything.
func (m *Monitor) Rate() (hz float64, ok bool) {
	span := m.lastHost.Sub(m.firstHost)
	if m.reports < 2 || span < 100*time.Millisecond {
		return 0, false
	}
	return float64(m.last-m.firstTicks) / span.Seconds(), true
}

// Stats returns the running stream counters.
func (m *Monitor) Stats() Stats {
	return Stats{
		Reports:   m.reports,
		CRCErrors: m.dec.CRCErrors,
		SeqGaps:   m.dec.SeqGaps,
		Skipped:   m.dec.Skipped,
		LastTicks: m.last,
	}
}
