// Package signal provides signal handling functionality.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Interrupted is the cancellation cause set when a termination signal
// arrives.
type Interrupted struct {
	Signal os.Signal
}

func (i *Interrupted) Error() string {
	return "interrupted by " + i.Signal.String()
}

func (i *Interrupted) ExitCode() int {
	if sig, ok := i.Signal.(syscall.Signal); ok {
		return 128 + int(sig)
	}
	return 1
}

type Handler struct {
	sigChan     chan os.Signal
	cancelCause context.CancelCauseFunc
}

func NewHandler(cancelCause context.CancelCauseFunc) *Handler {
	return &Handler{
		sigChan:     make(chan os.Signal, 1),
		cancelCause: cancelCause,
	}
}

// Start cancels ctx on the first termination signal and then restores the
// default handling, so a second signal kills the process even when it is
// blocked on a read.
func (h *Handler) Start(ctx context.Context) {
	signal.Notify(h.sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	logrus.Debug("Signal notifications registered for SIGTERM, SIGINT, SIGHUP")

	go h.handleSignals(ctx)
}

func (h *Handler) Stop() {
	signal.Stop(h.sigChan)
}

func (h *Handler) handleSignals(ctx context.Context) {
	select {
	case sig := <-h.sigChan:
		logrus.WithField("signal", sig).Info("Received termination signal, shutting down")
		signal.Stop(h.sigChan)
		h.cancelCause(&Interrupted{Signal: sig})
	case <-ctx.Done():
		logrus.Debug("Signal handler context done, exiting")
	}
}
