package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fiffeek/displayflip/internal/app"
	"github.com/fiffeek/displayflip/internal/config"
	"github.com/fiffeek/displayflip/internal/display"
	"github.com/fiffeek/displayflip/internal/notifications"
	"github.com/fiffeek/displayflip/internal/prompt"
	"github.com/fiffeek/displayflip/internal/signal"
	"github.com/fiffeek/displayflip/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	dryRun         bool
	confirmTimeout time.Duration
)

func addChangeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Only test the target mode, never commit it",
	)
	cmd.Flags().DurationVar(
		&confirmTimeout,
		"confirm-timeout",
		0,
		"Ask to keep the new mode and revert when no answer comes in time, 0 disables (overrides confirm.timeout_seconds)",
	)
}

func newBackend() (display.Backend, error) {
	if displayDevicesOverride != "" {
		logrus.WithField("path", displayDevicesOverride).Debug("Using display devices from file")
		backend, err := display.LoadStaticBackend(displayDevicesOverride)
		if err != nil {
			return nil, fmt.Errorf("cant load display devices override: %w", err)
		}
		return backend, nil
	}

	backend, err := display.NewSystemBackend()
	if err != nil {
		return nil, fmt.Errorf("cant init display backend: %w", err)
	}
	return backend, nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("cant load configuration: %w", err)
	}
	return cfg, nil
}

func terminal(in io.Reader, out io.Writer) (*os.File, *os.File, bool) {
	inFile, inOk := in.(*os.File)
	outFile, outOk := out.(*os.File)
	if !inOk || !outOk {
		return nil, nil, false
	}
	return inFile, outFile, term.IsTerminal(int(inFile.Fd())) && term.IsTerminal(int(outFile.Fd()))
}

func newPrompter(cmd *cobra.Command) prompt.Prompter {
	in, out, ok := terminal(cmd.InOrStdin(), cmd.OutOrStdout())
	if ok {
		return prompt.New(in, out)
	}
	return prompt.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}

func newConfirmer(cmd *cobra.Command, cfg *config.Config) app.Confirmer {
	timeout := app.ConfirmTimeout(cmd.Flags().Changed("confirm-timeout"), confirmTimeout, cfg)
	if timeout <= 0 || dryRun {
		return nil
	}

	in, out, ok := terminal(cmd.InOrStdin(), cmd.OutOrStdout())
	if !ok {
		logrus.WithField("timeout", timeout).Warn("No terminal attached, the new mode will be kept without confirmation")
		return nil
	}
	return tui.NewRevertConfirmer(in, out, timeout)
}

func newApplication(cmd *cobra.Command, cfg *config.Config) (*app.Application, error) {
	backend, err := newBackend()
	if err != nil {
		return nil, err
	}

	return app.NewApplication(
		backend,
		notifications.NewService(cfg),
		newConfirmer(cmd, cfg),
		cmd.OutOrStdout(),
		app.Options{DryRun: dryRun},
	), nil
}

// withSignals runs fn with a context cancelled by termination signals, the
// signal is reported as the error cause.
func withSignals(parent context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancelCause(parent)
	defer cancel(nil)

	handler := signal.NewHandler(cancel)
	handler.Start(ctx)
	defer handler.Stop()

	err := fn(ctx)
	var interrupted *signal.Interrupted
	if err != nil && errors.As(context.Cause(ctx), &interrupted) {
		return fmt.Errorf("%w: %w", interrupted, err)
	}
	return err
}
