// Package serial abstracts the host end of the device serial link so the
// monitor can run against a real port or a scripted one in tests.
package serial

import "io"

// Port is a byte stream to the device.
type Port interface {
	io.ReadWriteCloser
}

// Config holds serial port configuration.
type Config struct {
	// Device path, e.g. "/dev/ttyACM0" or "COM3".
	Device string

	// Baud rate. USB CDC devices ignore it but the field must still be
	// set for real UARTs.
	Baud int

	// ReadTimeout in milliseconds; 0 blocks.
	ReadTimeout int
}

// DefaultConfig returns the configuration for a typical CDC device link.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
