// tickmon watches the tick-report stream of a device running the
// timebase firmware, verifies that the reported tick count never goes
// backwards, and estimates the device tick rate against the host clock.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"tickbase/host/monitor"
	"tickbase/host/serial"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud    = flag.Int("baud", 115200, "Baud rate (ignored for USB CDC)")
	hz      = flag.Uint("hz", 0, "Device tick rate for duration/drift output (0 = ticks only)")
	count   = flag.Uint64("count", 0, "Stop after this many reports (0 = run until EOF)")
	verbose = flag.Bool("verbose", false, "Print every report")
)

func main() {
	flag.Parse()

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer port.Close()

	fmt.Printf("Monitoring %s...\n", *device)

	if err := run(port, monitor.New(uint32(*hz))); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(port serial.Port, m *monitor.Monitor) error {
	buf := make([]byte, 256)
	seen := uint64(0)

	for {
		n, err := port.Read(buf)
		if n > 0 {
			reports, ferr := m.Feed(buf[:n])
			if *verbose {
				for _, r := range reports {
					if *hz != 0 {
						fmt.Printf("seq=%3d ticks=%d uptime=%v\n",
							r.Sequence, r.Ticks, m.Uptime(r.Ticks))
					} else {
						fmt.Printf("seq=%3d ticks=%d\n", r.Sequence, r.Ticks)
					}
				}
			}
			if ferr != nil {
				return ferr
			}
			seen += uint64(len(reports))
			if *count > 0 && seen >= *count {
				break
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
	}

	printSummary(m)
	return nil
}

func printSummary(m *monitor.Monitor) {
	stats := m.Stats()
	fmt.Printf("reports: %d  crc errors: %d  seq gaps: %d  skipped bytes: %d\n",
		stats.Reports, stats.CRCErrors, stats.SeqGaps, stats.Skipped)
	fmt.Printf("last tick count: %d\n", stats.LastTicks)
	if rate, ok := m.Rate(); ok {
		fmt.Printf("estimated tick rate: %.1f Hz\n", rate)
	}
}
