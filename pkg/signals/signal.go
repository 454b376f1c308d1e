// Package signals installs the process signal handlers and exposes
// termination as a stop channel.
package signals

import (
	"os"
	"os/signal"
	"syscall"
)

var onlyOneSignalHandler = make(chan struct{})

// RegisterSignalHandlers returns a channel closed on SIGINT or SIGTERM.
// A second signal exits immediately. Must be called at most once.
func RegisterSignalHandlers() <-chan struct{} {
	close(onlyOneSignalHandler) // panics when called twice

	stopCh := make(chan struct{})
	c := make(chan os.Signal, 2)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		close(stopCh)
		<-c
		os.Exit(1)
	}()
	return stopCh
}
