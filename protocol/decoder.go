package protocol

import "encoding/binary"

// Decoder reassembles reports from an arbitrary byte stream. Feed it raw
// serial reads in any chunking; it skips garbage until a sync byte,
// drops frames with a bad CRC and resyncs at the next sync byte, and
// counts sequence gaps between consecutive good frames.
type Decoder struct {
	buf []byte

	lastSeq uint8
	haveSeq bool

	// CRCErrors counts frames discarded for a checksum mismatch.
	CRCErrors uint64
	// SeqGaps counts missing reports inferred from sequence jumps.
	SeqGaps uint64
	// Skipped counts garbage bytes discarded while hunting for sync.
	Skipped uint64
}

// Feed appends data to the decoder and returns all reports completed by
// it, in stream order.
func (d *Decoder) Feed(data []byte) []Report {
	d.buf = append(d.buf, data...)

	var reports []Report
	for {
		// Hunt for the next sync byte.
		start := 0
		for start < len(d.buf) && d.buf[start] != SyncByte {
			start++
		}
		d.Skipped += uint64(start)
		d.buf = d.buf[start:]

		if len(d.buf) < ReportLength {
			break
		}

		frame := d.buf[:ReportLength]
		crc := uint16(frame[posCRC])<<8 | uint16(frame[posCRC+1])
		if CRC16(frame[posSeq:posSeq+crcSpan]) != crc {
			// Corrupt frame, or a sync byte inside another frame's
			// payload. Drop one byte and rescan.
			d.CRCErrors++
			d.buf = d.buf[1:]
			continue
		}

		r := Report{
			Sequence: frame[posSeq],
			Ticks:    binary.LittleEndian.Uint64(frame[posTicks:posCRC]),
		}
		if d.haveSeq {
			d.SeqGaps += uint64(r.Sequence - d.lastSeq - 1)
		}
		d.lastSeq = r.Sequence
		d.haveSeq = true
		d.buf = d.buf[ReportLength:]
		reports = append(reports, r)
	}

	// Keep leftovers small: everything before the last possible frame
	// start is already consumed above.
	if len(d.buf) == 0 {
		d.buf = nil
	}
	return reports
}
