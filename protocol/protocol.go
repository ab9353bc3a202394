// Package protocol frames tick reports for the device-to-host telemetry
// stream.
//
// A report is a fixed 12-byte frame: a sync byte, a rolling sequence
// number, the 64-bit tick count in little-endian order (32-bit builds
// zero-extend), and a CRC16 over the sequence and payload. The fixed size
// keeps the device-side encoder allocation-free and lets the host resync
// on any byte boundary after line noise.
package protocol

import "encoding/binary"

const (
	// SyncByte opens every frame.
	SyncByte = 0x7E

	// ReportLength is the total frame size on the wire.
	ReportLength = 12

	posSeq   = 1
	posTicks = 2
	posCRC   = 10
	crcSpan  = 9 // sequence byte + tick payload
)

// Report is one decoded tick report.
type Report struct {
	Sequence uint8
	Ticks    uint64
}

// EncodeReport fills buf with a framed report. buf must be at least
// ReportLength bytes; the number of bytes written is returned. Safe to
// call from a device main loop: no allocation, no global state.
func EncodeReport(buf []byte, seq uint8, ticks uint64) int {
	_ = buf[ReportLength-1]
	buf[0] = SyncByte
	buf[posSeq] = seq
	binary.LittleEndian.PutUint64(buf[posTicks:posCRC], ticks)
	crc := CRC16(buf[posSeq : posSeq+crcSpan])
	buf[posCRC] = byte(crc >> 8)
	buf[posCRC+1] = byte(crc & 0xFF)
	return ReportLength
}
