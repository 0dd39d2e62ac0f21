//go:build linux

package measure

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Now reads CLOCK_MONOTONIC. CLOCK_MONOTONIC_RAW would avoid NTP slew but
// is not available on every target this code has to run on.
func Now() Time {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		fmt.Fprintf(os.Stderr, "DM: clock_gettime(): %v\n", err)
	}
	return Time{Sec: int64(ts.Sec), Nsec: int64(ts.Nsec)}
}
