package serial

import (
	"bytes"
	"io"
)

// MockPort is a Port fed from a canned byte stream, for tests.
type MockPort struct {
	In     bytes.Buffer // bytes the "device" sends
	Out    bytes.Buffer // bytes written toward the device
	Closed bool

	// ChunkSize caps each Read so tests can exercise partial reads;
	// 0 means no cap.
	ChunkSize int
}

func (m *MockPort) Read(b []byte) (int, error) {
	if m.Closed {
		return 0, io.ErrClosedPipe
	}
	if m.ChunkSize > 0 && len(b) > m.ChunkSize {
		b = b[:m.ChunkSize]
	}
	return m.In.Read(b)
}

func (m *MockPort) Write(b []byte) (int, error) {
	if m.Closed {
		return 0, io.ErrClosedPipe
	}
	return m.Out.Write(b)
}

func (m *MockPort) Close() error {
	m.Closed = true
	return nil
}
