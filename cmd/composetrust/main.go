package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/composetrust/internal/cmd"
	"github.com/felixgeelhaar/composetrust/internal/exitcode"
	"github.com/felixgeelhaar/composetrust/internal/log"
)

func main() {
	configureLogging()

	stop := shieldInterrupts()
	defer stop()

	result := make(chan error, 1)
	go func() {
		result <- cmd.Execute()
	}()

	err := <-result
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	exitcode.ExitWithError(err)
}

// shieldInterrupts catches and discards SIGINT so Ctrl+C cannot kill the
// wrapper mid-staging while the foreground child still receives the
// signal with its default disposition. The signal must be caught, not
// ignored: an ignored disposition is inherited across exec and would
// leave every spawned docker-compose uninterruptible.
func shieldInterrupts() (stop func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-signals:
				// Discard; the worker runs on and the child handles it.
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
	}
}

func configureLogging() {
	config := log.DefaultConfig()
	if level, ok := os.LookupEnv("COMPOSETRUST_LOG_LEVEL"); ok {
		config.Level = log.ParseLevel(level)
	}
	if format, ok := os.LookupEnv("COMPOSETRUST_LOG_FORMAT"); ok {
		config.Format = log.ParseFormat(format)
	}

	logger := log.New(config).With("run_id", uuid.NewString())
	log.SetDefaultLogger(logger)
}
