package display

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

type OutcomeKind int

const (
	Applied OutcomeKind = iota
	AppliedPendingRestart
)

func (k OutcomeKind) Value() string {
	switch k {
	case Applied:
		return "applied"
	case AppliedPendingRestart:
		return "applied_pending_restart"
	}
	return "unknown"
}

type ChangeOutcome struct {
	Kind       OutcomeKind
	Message    string
	DeviceName string
	// Baseline is the mode the device ran right before the change.
	Baseline Mode
	Applied  Mode
}

// Changer runs the test-then-commit protocol against a Backend. It never
// retries, every terminal state is returned to the caller once.
type Changer struct {
	backend Backend
}

func NewChanger(backend Backend) *Changer {
	return &Changer{backend: backend}
}

// TestMode validates the request against the OS without committing and
// returns the device's baseline mode.
func (c *Changer) TestMode(ctx context.Context, request ModeRequest) (*Mode, error) {
	baseline, _, err := c.test(ctx, request)
	if err != nil {
		return nil, err
	}
	mode := baseline.Mode()
	return &mode, nil
}

func (c *Changer) ChangeMode(ctx context.Context, request ModeRequest) (*ChangeOutcome, error) {
	baseline, overlaid, err := c.test(ctx, request)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("change interrupted before commit: %w", err)
	}

	fields := logrus.Fields{"device": request.DeviceName, "mode": request.Mode().String()}
	code, err := c.backend.ApplyMode(request.DeviceName, overlaid, ChangeUpdateRegistry)
	if err != nil {
		return nil, fmt.Errorf("cant commit mode for %s: %w", request.DeviceName, err)
	}
	logrus.WithFields(fields).WithField("code", code.String()).Debug("Commit phase finished")

	outcome := &ChangeOutcome{
		DeviceName: request.DeviceName,
		Baseline:   baseline.Mode(),
		Applied:    request.Mode(),
	}
	switch code {
	case DispChangeSuccessful:
		outcome.Kind = Applied
		outcome.Message = fmt.Sprintf("Successfully changed %s to %s", request.DeviceName, request.Mode())
		return outcome, nil
	case DispChangeRestart:
		outcome.Kind = AppliedPendingRestart
		outcome.Message = "Resolution changed. A restart may be required for full effect."
		return outcome, nil
	case DispChangeBadMode:
		return nil, &RejectedAtCommitError{DeviceName: request.DeviceName}
	default:
		return nil, &UnknownFailureError{DeviceName: request.DeviceName, RawCode: code}
	}
}

// test fetches a fresh baseline, overlays the request and submits it in test
// mode. It returns the baseline and the overlaid record.
func (c *Changer) test(ctx context.Context, request ModeRequest) (*DevMode, *DevMode, error) {
	fields := logrus.Fields{"device": request.DeviceName, "mode": request.Mode().String()}

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("change interrupted: %w", err)
	}
	baseline, err := c.backend.CurrentMode(request.DeviceName)
	if err != nil {
		return nil, nil, &DeviceQueryFailedError{DeviceName: request.DeviceName, Err: err}
	}
	logrus.WithFields(fields).WithField("baseline", baseline.Mode().String()).Debug("Baseline fetched")

	overlaid := baseline.Overlay(request.Mode())

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("change interrupted before test: %w", err)
	}
	code, err := c.backend.ApplyMode(request.DeviceName, overlaid, ChangeTest)
	if err != nil {
		return nil, nil, fmt.Errorf("cant test mode for %s: %w", request.DeviceName, err)
	}
	logrus.WithFields(fields).WithField("code", code.String()).Debug("Test phase finished")

	if code != DispChangeSuccessful {
		return nil, nil, &UnsupportedModeError{
			Width:      request.Width,
			Height:     request.Height,
			Frequency:  request.Frequency,
			DeviceName: request.DeviceName,
			RawCode:    code,
		}
	}

	return baseline, overlaid, nil
}
