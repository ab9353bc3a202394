package protocol

import "testing"

func TestEncodeReportLayout(t *testing.T) {
	var buf [ReportLength]byte
	n := EncodeReport(buf[:], 7, 0x0123456789ABCDEF)

	if n != ReportLength {
		t.Fatalf("EncodeReport returned %d, want %d", n, ReportLength)
	}
	if buf[0] != SyncByte {
		t.Errorf("frame[0] = %#x, want sync byte %#x", buf[0], SyncByte)
	}
	if buf[1] != 7 {
		t.Errorf("frame[1] = %d, want sequence 7", buf[1])
	}
	// Little-endian tick payload.
	want := []byte{0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01}
	for i, b := range want {
		if buf[2+i] != b {
			t.Errorf("frame[%d] = %#x, want %#x", 2+i, buf[2+i], b)
		}
	}
	crc := CRC16(buf[1:10])
	if buf[10] != byte(crc>>8) || buf[11] != byte(crc&0xFF) {
		t.Errorf("frame CRC = %02x%02x, want %04x", buf[10], buf[11], crc)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		seq   uint8
		ticks uint64
	}{
		{0, 0},
		{1, 1},
		{42, 0xFFFFFF},
		{255, 0xFFFFFFFF},
		{13, 0x0123456789ABCDEF},
	}

	for _, tc := range tests {
		var buf [ReportLength]byte
		EncodeReport(buf[:], tc.seq, tc.ticks)

		var d Decoder
		reports := d.Feed(buf[:])
		if len(reports) != 1 {
			t.Fatalf("seq=%d: got %d reports, want 1", tc.seq, len(reports))
		}
		if reports[0].Sequence != tc.seq || reports[0].Ticks != tc.ticks {
			t.Errorf("decoded {%d, %#x}, want {%d, %#x}",
				reports[0].Sequence, reports[0].Ticks, tc.seq, tc.ticks)
		}
	}
}

func TestDecodeSplitAcrossReads(t *testing.T) {
	var buf [ReportLength]byte
	EncodeReport(buf[:], 3, 123456)

	var d Decoder
	// Feed the frame one byte at a time, as a slow serial read would.
	var got []Report
	for _, b := range buf {
		got = append(got, d.Feed([]byte{b})...)
	}
	if len(got) != 1 || got[0].Ticks != 123456 {
		t.Fatalf("byte-at-a-time decode got %v, want one report of 123456", got)
	}
}

func TestDecodeSkipsGarbage(t *testing.T) {
	var frame [ReportLength]byte
	EncodeReport(frame[:], 1, 999)

	stream := append([]byte{0x00, 0xFF, 0x13, 0x37}, frame[:]...)

	var d Decoder
	reports := d.Feed(stream)
	if len(reports) != 1 || reports[0].Ticks != 999 {
		t.Fatalf("got %v, want one report of 999", reports)
	}
	if d.Skipped != 4 {
		t.Errorf("Skipped = %d, want 4", d.Skipped)
	}
}

func TestDecodeBadCRCResyncs(t *testing.T) {
	var good [ReportLength]byte
	EncodeReport(good[:], 2, 777)

	var bad [ReportLength]byte
	EncodeReport(bad[:], 1, 555)
	bad[5] ^= 0xA5 // corrupt the payload

	stream := append(bad[:], good[:]...)

	var d Decoder
	reports := d.Feed(stream)
	if len(reports) != 1 || reports[0].Ticks != 777 {
		t.Fatalf("got %v, want only the good report of 777", reports)
	}
	if d.CRCErrors == 0 {
		t.Error("CRCErrors = 0, want at least 1")
	}
}

func TestDecodeSequenceGaps(t *testing.T) {
	var d Decoder
	var buf [ReportLength]byte

	for _, seq := range []uint8{10, 11, 14, 15} {
		EncodeReport(buf[:], seq, uint64(seq))
		d.Feed(buf[:])
	}
	if d.SeqGaps != 2 {
		t.Errorf("SeqGaps = %d, want 2 (12 and 13 missing)", d.SeqGaps)
	}
}

func TestDecodeSequenceWrap(t *testing.T) {
	var d Decoder
	var buf [ReportLength]byte

	for _, seq := range []uint8{254, 255, 0, 1} {
		EncodeReport(buf[:], seq, 1)
		d.Feed(buf[:])
	}
	if d.SeqGaps != 0 {
		t.Errorf("SeqGaps = %d across 255->0 wrap, want 0", d.SeqGaps)
	}
}

func TestCRC16KnownValues(t *testing.T) {
	// Same input must always give the same checksum, and a one-bit
	// change must move it.
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	if CRC16(data) != CRC16(data) {
		t.Error("CRC16 not deterministic")
	}
	data2 := []byte{0x01, 0x02, 0x03, 0x04, 0x04}
	if CRC16(data) == CRC16(data2) {
		t.Error("CRC16 collision on one-bit change")
	}
	if got := CRC16(nil); got != 0xFFFF {
		t.Errorf("CRC16(nil) = %#x, want 0xFFFF (initial value)", got)
	}
}
