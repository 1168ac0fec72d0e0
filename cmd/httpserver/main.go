package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelpline/backlog"
	"github.com/kelpline/backlog/compat"
	"github.com/valyala/fasthttp"
)

func main() {
	// Create and configure logger
	logger, err := backlog.NewBuilder().
		Directory("./http_logs").
		NamePrefix("fasthttp").
		RolloverSizeMB(10).
		FlushIntervalS(2).
		Build()
	if err != nil {
		panic(err)
	}
	if err := logger.Start(); err != nil {
		panic(err)
	}
	defer logger.Stop(5 * time.Second)

	// Create fasthttp adapter with custom severity detection
	adapter := compat.NewFastHTTPAdapter(
		logger,
		compat.WithTagger(customTagger),
	)

	// Configure fasthttp server
	server := &fasthttp.Server{
		Handler: requestHandler,
		Logger:  adapter,

		// Other server settings
		Name:              "backlog-demo",
		Concurrency:       fasthttp.DefaultConcurrency,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		TCPKeepalive:      true,
		ReduceMemoryUsage: true,
	}

	logger.WriteLine("http server starting on :8080")

	// Start server
	fmt.Println("Starting server on :8080")
	if err := server.ListenAndServe(":8080"); err != nil {
		logger.WriteError(err, "main.go", "main", 54)
		panic(err)
	}
}

func requestHandler(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain")
	fmt.Fprintf(ctx, "Hello, world! Path: %s\n", ctx.Path())
}

func customTagger(msg string) string {
	// Can inspect specific fasthttp message patterns
	if strings.Contains(msg, "connection cannot be served") {
		return "warn"
	}
	if strings.Contains(msg, "error when serving connection") {
		return "error"
	}

	// Use default detection
	return compat.DetectSeverityTag(msg)
}
