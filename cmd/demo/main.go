package main

import (
	"fmt"
	"os"
	"time"

	"github.com/wbrk/dmkit/backtrace"
	"github.com/wbrk/dmkit/log"
	"github.com/wbrk/dmkit/measure"
	"github.com/wbrk/dmkit/timer"
)

const configFile = "demo_config.toml"

// Example TOML content
var tomlContent = `
# Example demo_config.toml
[log]
  ident = "demo"
  level = "debug|info|warn|error"
  sink = "file"
  file = "stdout"
`

func main() {
	fmt.Println("--- dmkit demo ---")

	// --- Setup Config ---
	if err := os.WriteFile(configFile, []byte(tomlContent), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
	}
	defer os.Remove(configFile)

	cfg, err := log.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v. Using defaults.\n", err)
		cfg = log.DefaultConfig()
	}

	if err := log.ApplyConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logger: %v\n", err)
		os.Exit(1)
	}

	log.Infof("logger configured: level=%s sink=%s", log.GetLevel(), cfg.Sink)

	// --- Nested measurements ---
	measure.Start()

	measure.Start()
	time.Sleep(30 * time.Millisecond)
	measure.Print("inner work")

	time.Sleep(20 * time.Millisecond)
	measure.Print("outer work")

	// --- Deadline timer ---
	tm := timer.New()
	tm.Set(100)
	for tm.Expired() == 0 {
		log.Debugf("timer pending: remaining=%dms elapsed=%dms",
			tm.Remaining(), tm.Elapsed())
		time.Sleep(25 * time.Millisecond)
	}
	log.Infof("timer expired after %dms", tm.Elapsed())
	tm.Invalidate()

	// --- Structure dump ---
	log.Dump(log.LevelDebug, "config", cfg)

	// --- Stack trace ---
	backtrace.Print(log.LevelInfo)

	fmt.Println("--- demo finished ---")
}
