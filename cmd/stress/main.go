// Stress exercises the locked timer API and the logger from competing
// goroutines: one arms the timer in a loop, one polls expiry, one
// invalidates, while all of them log.
package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/wbrk/dmkit/log"
	"github.com/wbrk/dmkit/timer"
)

const duration = 2 * time.Second

func main() {
	log.SetIdent("stress")
	log.SetLevel(log.LevelInfo | log.LevelWarn | log.LevelError)
	if err := log.SetSink(log.SinkFile, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "failed to configure logger: %v\n", err)
		os.Exit(1)
	}

	tm := timer.New()
	tm.SetLocked(1000)

	stop := make(chan struct{})
	var wg sync.WaitGroup

	// Arming goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		n := 0
		for {
			select {
			case <-stop:
				log.Infof("armed %d times", n)
				return
			default:
				tm.SetLocked(1000)
				n++
			}
		}
	}()

	// Polling goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		results := [3]int{} // counts for -1, 0, 1
		for {
			select {
			case <-stop:
				log.Infof("polled: invalid=%d pending=%d expired=%d",
					results[0], results[1], results[2])
				return
			default:
				v := tm.ExpiredLocked()
				if v < -1 || v > 1 {
					log.Errorf("ExpiredLocked returned %d", v)
					continue
				}
				results[v+1]++
			}
		}
	}()

	// Invalidating goroutine
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				tm.InvalidateLocked()
			}
		}
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()

	log.Infof("stress finished")
}
