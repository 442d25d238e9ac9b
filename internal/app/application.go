// Package app provides an application runner.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/fiffeek/displayflip/internal/display"
	"github.com/fiffeek/displayflip/internal/policy"
	"github.com/fiffeek/displayflip/internal/tui"
	"github.com/fiffeek/displayflip/internal/utils"
	"github.com/sirupsen/logrus"
)

type Notifier interface {
	NotifyOutcome(outcome *display.ChangeOutcome) error
	NotifyFailure(deviceName string, cause error) error
}

// Confirmer decides whether a committed change stays, false reverts it.
type Confirmer interface {
	Confirm(ctx context.Context, outcome *display.ChangeOutcome) (bool, error)
}

type Options struct {
	DryRun bool
}

type Application struct {
	enumerator *display.Enumerator
	changer    *display.Changer
	notifier   Notifier
	confirmer  Confirmer
	out        io.Writer
	opts       Options
}

// NewApplication wires the core around backend. confirmer may be nil, then
// committed changes are never reverted.
func NewApplication(backend display.Backend, notifier Notifier,
	confirmer Confirmer, out io.Writer, opts Options,
) *Application {
	return &Application{
		enumerator: display.NewEnumerator(backend),
		changer:    display.NewChanger(backend),
		notifier:   notifier,
		confirmer:  confirmer,
		out:        out,
		opts:       opts,
	}
}

func (a *Application) List(ctx context.Context) (display.Monitors, error) {
	monitors, err := a.enumerator.Enumerate(ctx)
	if err != nil {
		return nil, fmt.Errorf("cant enumerate monitors: %w", err)
	}
	a.printf("%s", tui.RenderMonitors(monitors))
	return monitors, nil
}

func (a *Application) Run(ctx context.Context, selector policy.Policy) (*display.ChangeOutcome, error) {
	a.printf("Scanning for monitors...\n\n")
	monitors, err := a.List(ctx)
	if err != nil {
		return nil, err
	}

	request, err := selector.Select(ctx, monitors)
	if err != nil {
		return nil, fmt.Errorf("cant select target mode: %w", err)
	}

	fields := utils.NewLogrusCustomFields(logrus.Fields{
		"device": request.DeviceName,
		"mode":   request.Mode().String(),
	})

	if a.opts.DryRun {
		baseline, err := a.changer.TestMode(ctx, *request)
		if err != nil {
			return nil, fmt.Errorf("dry run failed: %w", err)
		}
		logrus.WithFields(fields.WithLogID(utils.DryRunLogID)).WithField("baseline", baseline.String()).Info(
			"Mode passed the test phase, not committing")
		a.printf("[DRY RUN] %s supports %s (currently %s)\n", request.DeviceName, request.Mode(), baseline)
		return nil, nil
	}

	a.printf("\nAttempting to change resolution...\n")
	outcome, err := a.changer.ChangeMode(ctx, *request)
	if err != nil {
		a.notifyFailure(request.DeviceName, err)
		return nil, fmt.Errorf("cant change mode: %w", err)
	}
	a.printf("%s\n", outcome.Message)

	logID := utils.ModeAppliedLogID
	if outcome.Kind == display.AppliedPendingRestart {
		logID = utils.ModePendingRestartLogID
	}
	logrus.WithFields(fields.WithLogID(logID)).WithField("outcome", outcome.Kind.Value()).Info(outcome.Message)
	a.notifyOutcome(outcome)

	if err := a.confirm(ctx, outcome, fields); err != nil {
		return outcome, err
	}
	return outcome, nil
}

func (a *Application) confirm(ctx context.Context, outcome *display.ChangeOutcome, fields *utils.LogrusCustomFields) error {
	// a mode waiting for a restart is not visible yet, there is nothing to judge
	if a.confirmer == nil || outcome.Kind != display.Applied {
		return nil
	}

	keep, err := a.confirmer.Confirm(ctx, outcome)
	if err != nil {
		logrus.WithError(err).Warn("Confirmation failed, reverting")
	}
	if keep {
		logrus.WithFields(fields.WithLogID(utils.ModeKeptLogID)).Info("Keeping the new mode")
		return nil
	}

	// the confirmation context may be gone already, the revert has to run anyway
	revert := display.NewModeRequest(outcome.DeviceName, outcome.Baseline)
	reverted, revertErr := a.changer.ChangeMode(context.WithoutCancel(ctx), revert)
	if revertErr != nil {
		a.notifyFailure(outcome.DeviceName, revertErr)
		return fmt.Errorf("cant revert %s to %s: %w", outcome.DeviceName, outcome.Baseline, revertErr)
	}

	logrus.WithFields(fields.WithLogID(utils.ModeRevertedLogID)).WithField("baseline", outcome.Baseline.String()).Info(
		"Reverted to the previous mode")
	a.printf("Reverted %s to %s\n", reverted.DeviceName, reverted.Applied)
	return nil
}

func (a *Application) notifyOutcome(outcome *display.ChangeOutcome) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.NotifyOutcome(outcome); err != nil {
		logrus.WithFields(utils.NewLogrusEmptyFields().WithLogID(utils.NotificationFailedLogID)).WithError(err).Warn(
			"Cant send notification")
	}
}

func (a *Application) notifyFailure(deviceName string, cause error) {
	if a.notifier == nil {
		return
	}
	if err := a.notifier.NotifyFailure(deviceName, cause); err != nil {
		logrus.WithFields(utils.NewLogrusEmptyFields().WithLogID(utils.NotificationFailedLogID)).WithError(err).Warn(
			"Cant send notification")
	}
}

func (a *Application) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(a.out, format, args...); err != nil {
		logrus.WithError(err).Debug("cant write to output")
	}
}
