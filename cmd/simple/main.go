package main

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/kelpline/backlog"
)

const configFile = "simple_config.toml"

// Example TOML content
var tomlContent = `
# Example simple_config.toml
[backlog]
  directory = "./simple_logs"
  name_prefix = "simple"
  include_machine_name = false
  rollover_minutes = 0
  rollover_size_mb = 0
  flush_interval_s = 1
`

func main() {
	fmt.Println("--- Simple Backlog Example ---")

	// --- Setup Config ---
	err := os.WriteFile(configFile, []byte(tomlContent), 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write dummy config: %v\n", err)
	} else {
		fmt.Printf("Created dummy config file: %s\n", configFile)
	}

	cfg, err := backlog.NewConfigFromFile(configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v. Using defaults.\n", err)
		cfg = backlog.DefaultConfig()
		cfg.Directory = "./simple_logs"
		cfg.FlushIntervalS = 1
	}

	// --- Initialize Logger ---
	logger := backlog.NewLogger()
	if err := logger.ApplyConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger started. Writing to: %s\n", logger.CurrentFileLocation())

	// --- Logging ---
	logger.WriteLine("application starting")
	logger.WriteLine("potential issue detected, threshold 0.95")
	logger.WriteError(errors.New("an error occurred"), "main.go", "main", 60)

	// Logging from goroutines
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			logger.WriteLine(fmt.Sprintf("goroutine %d started", id))
			time.Sleep(time.Duration(50+id*50) * time.Millisecond)
			logger.WriteLine(fmt.Sprintf("goroutine %d finished", id))
		}(i)
	}

	wg.Wait()
	fmt.Println("Goroutines finished.")

	// --- Shutdown Logger ---
	fmt.Println("Stopping logger (full drain)...")
	if err := logger.Stop(2 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Logger stop error: %v\n", err)
	} else {
		fmt.Println("Logger stopped, all entries written.")
	}

	fmt.Println("--- Example Finished ---")
	fmt.Printf("Check log files in '%s'.\n", logger.FolderLocation())
}
