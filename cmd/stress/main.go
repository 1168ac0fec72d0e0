package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/kelpline/backlog"
)

const (
	totalBursts    = 100
	linesPerBurst  = 500
	maxMessageSize = 2000
	numWorkers     = 50
)

var logger *backlog.Logger

func generateRandomMessage(size int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "
	var sb strings.Builder
	sb.Grow(size)
	for i := 0; i < size; i++ {
		sb.WriteByte(chars[rand.Intn(len(chars))])
	}
	return sb.String()
}

// logBurst simulates a burst of logging activity
func logBurst(burstID int) {
	for i := 0; i < linesPerBurst; i++ {
		msgSize := rand.Intn(maxMessageSize) + 10
		logger.WriteLine(fmt.Sprintf("wkr=%d bst=%d seq=%d %s",
			burstID%numWorkers, burstID, i, generateRandomMessage(msgSize)))
	}
}

// worker goroutine function
func worker(burstChan chan int, wg *sync.WaitGroup, completedBursts *atomic.Int64) {
	defer wg.Done()
	for burstID := range burstChan {
		logBurst(burstID)
		completed := completedBursts.Add(1)
		if completed%10 == 0 || completed == totalBursts {
			fmt.Printf("\rProgress: %d/%d bursts completed, queue depth %d",
				completed, totalBursts, logger.QueueDepth())
		}
	}
}

func main() {
	fmt.Println("--- Backlog Stress Test ---")

	logsDir := "./stress_logs"
	_ = os.RemoveAll(logsDir) // Clean previous run's logs before starting

	var err error
	logger, err = backlog.NewBuilder().
		Directory(logsDir).
		NamePrefix("stress").
		RolloverSizeMB(1). // Force frequent rollover
		FlushIntervalS(1).
		Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start logger: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Logger started. Logs will be written to: %s\n", logsDir)

	// Drain the error channel so background failures are visible
	go func() {
		for err := range logger.Errors() {
			fmt.Fprintf(os.Stderr, "\nwriter error: %v\n", err)
		}
	}()

	fmt.Printf("Starting stress test: %d workers, %d bursts, %d lines/burst.\n",
		numWorkers, totalBursts, linesPerBurst)
	fmt.Println("Watch queue depth growth and file rollover in the log directory.")
	fmt.Println("Press Ctrl+C to stop early.")

	// --- Setup Workers and Signal Handling ---
	burstChan := make(chan int, numWorkers)
	var wg sync.WaitGroup
	completedBursts := atomic.Int64{}
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	stopChan := make(chan struct{})

	go func() {
		<-sigChan
		fmt.Println("\n[Signal Received] Stopping burst generation...")
		close(stopChan)
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(burstChan, &wg, &completedBursts)
	}

	// --- Run Test ---
	startTime := time.Now()
	for i := 1; i <= totalBursts; i++ {
		select {
		case burstChan <- i:
		case <-stopChan:
			fmt.Println("[Signal Received] Halting burst submission.")
			goto endLoop
		}
	}
endLoop:
	close(burstChan)

	fmt.Println("\nWaiting for workers to finish...")
	wg.Wait()
	duration := time.Since(startTime)
	finalCompleted := completedBursts.Load()

	fmt.Printf("\n--- Test Finished ---")
	fmt.Printf("\nCompleted %d/%d bursts in %v\n", finalCompleted, totalBursts, duration.Round(time.Millisecond))
	if finalCompleted > 0 && duration.Seconds() > 0 {
		linesPerSec := float64(finalCompleted*linesPerBurst) / duration.Seconds()
		fmt.Printf("Approximate lines/sec: %.2f\n", linesPerSec)
	}

	// --- Shutdown Logger ---
	fmt.Println("Stopping logger (allowing up to 30s for the full drain)...")
	if err := logger.Stop(30 * time.Second); err != nil {
		fmt.Fprintf(os.Stderr, "Logger stop error: %v\n", err)
	} else {
		fmt.Println("Logger stopped, queue fully drained.")
	}

	fmt.Printf("Check log files in '%s'.\n", logsDir)
}
