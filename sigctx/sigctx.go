package sigctx

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// New returns a context that is canceled on SIGINT or SIGTERM.
func New() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
		signal.Stop(c)
	}()

	return ctx
}
