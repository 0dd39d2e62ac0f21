// Package backtrace captures return addresses from the current call stack
// and renders them as human-readable lines.
//
// Capture relies on the host unwinder and must not be invoked from a signal
// handler. Addresses can be fed to `go tool addr2line` against the binary to
// recover source lines when the symbol table has been stripped from the
// output below.
package backtrace

import (
	"fmt"
	"math/bits"
	"os"
	"runtime"

	"github.com/wbrk/dmkit/log"
)

// Print captures at most this many frames.
const maxFrames = 64

// Hex digits in a code address: 8 on 32-bit targets, 16 on 64-bit.
const wordWidth = bits.UintSize / 4

// Executable path used as the image name, resolved once.
var imageName = func() string {
	path, err := os.Executable()
	if err != nil {
		return ""
	}
	return path
}()

// Print logs the current call stack at the given level, most recent call
// first, preceded by a header with the frame count. The capturing frame
// itself appears as frame #00.
func Print(level log.Level) {
	var buf [maxFrames]uintptr
	n := Capture(buf[:])
	log.Logf(level, "Stack trace: %d frames (most recent call first)", n)

	for i, s := range Symbols(buf[:n]) {
		log.Logf(level, "\t#%02d %s", i, s)
	}
}

// Capture fills buf with return addresses of the calling goroutine's stack,
// most recent call first, and returns the number of addresses stored. The
// walk stops at the goroutine entry point or when buf is full.
func Capture(buf []uintptr) int {
	if len(buf) == 0 {
		return 0
	}
	// Skip runtime.Callers and Capture itself.
	return runtime.Callers(2, buf)
}

// Symbols resolves code addresses to formatted strings. A frame whose
// symbol is known renders as "image(symbol+0xoffset) [0xaddr]" with a
// signed offset from the symbol's entry point, an unresolved frame as
// "[0xaddr]". All strings share one packed backing allocation whose size is
// computed up front.
func Symbols(addrs []uintptr) []string {
	type symInfo struct {
		image  string
		symbol string
		offset int64
	}

	infos := make([]symInfo, len(addrs))
	total := 0
	for i, pc := range addrs {
		in := &infos[i]
		if fn := runtime.FuncForPC(pc); fn != nil && imageName != "" {
			in.image = imageName
			in.symbol = fn.Name()
			in.offset = int64(pc) - int64(fn.Entry())
		}

		// Pre-size the packed region: "image(symbol+0xoff) [0xaddr]" needs
		// len(image) + len(symbol)+3+W+3 + W+5 bytes, a bare address 5+W.
		if in.image != "" {
			n := len(in.image) + wordWidth + 5
			if in.symbol != "" {
				n += len(in.symbol) + 3 + wordWidth + 3
			} else {
				n++
			}
			total += n
		} else {
			total += 5 + wordWidth
		}
	}

	region := make([]byte, 0, total)
	bounds := make([][2]int, len(addrs))
	for i, pc := range addrs {
		in := infos[i]
		from := len(region)

		switch {
		case in.image != "" && in.symbol != "":
			sign := byte('+')
			off := in.offset
			if off < 0 {
				sign = '-'
				off = -off
			}
			region = fmt.Appendf(region, "%s(%s%c%#x) [%#x]", in.image, in.symbol, sign, off, pc)
		case in.image != "":
			region = fmt.Appendf(region, "%s [%#x]", in.image, pc)
		default:
			region = fmt.Appendf(region, "[%#x]", pc)
		}

		bounds[i] = [2]int{from, len(region)}
	}

	// One string backs every frame; the results are views into it.
	packed := string(region)
	result := make([]string, len(addrs))
	for i, b := range bounds {
		result[i] = packed[b[0]:b[1]]
	}
	return result
}
