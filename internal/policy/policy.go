// Package policy picks the monitor and target mode handed to the mode changer.
package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/fiffeek/displayflip/internal/display"
	"github.com/fiffeek/displayflip/internal/prompt"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoToggleCandidate   = errors.New("no monitor runs one of the toggle resolutions")
	ErrInvalidMonitorIndex = errors.New("invalid monitor number")
)

type Policy interface {
	Select(ctx context.Context, monitors display.Monitors) (*display.ModeRequest, error)
}

type Resolution struct {
	Width  int
	Height int
}

func (r Resolution) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}

// TogglePolicy flips the first monitor running Low to High and vice versa,
// keeping its refresh rate. Monitors at other resolutions are ignored.
type TogglePolicy struct {
	Low  Resolution
	High Resolution
}

func NewTogglePolicy(low, high Resolution) *TogglePolicy {
	return &TogglePolicy{Low: low, High: high}
}

func (p *TogglePolicy) Select(_ context.Context, monitors display.Monitors) (*display.ModeRequest, error) {
	for _, monitor := range monitors {
		var target Resolution
		switch {
		case monitor.HasResolution(p.Low.Width, p.Low.Height):
			target = p.High
		case monitor.HasResolution(p.High.Width, p.High.Height):
			target = p.Low
		default:
			continue
		}

		logrus.WithFields(logrus.Fields{
			"device": monitor.DeviceName,
			"from":   monitor.CurrentMode().String(),
			"to":     target.String(),
		}).Debug("Toggle candidate found")

		request := display.NewModeRequest(monitor.DeviceName, display.Mode{
			Width:     target.Width,
			Height:    target.Height,
			Frequency: monitor.CurrentFrequency,
		})
		return &request, nil
	}

	return nil, fmt.Errorf("%w (%s or %s)", ErrNoToggleCandidate, p.Low, p.High)
}

// ExplicitPolicy targets the monitor at a 1-based Index. A zero Frequency
// keeps the monitor's current refresh rate.
type ExplicitPolicy struct {
	Index int
	Mode  display.Mode
}

func NewExplicitPolicy(index int, mode display.Mode) *ExplicitPolicy {
	return &ExplicitPolicy{Index: index, Mode: mode}
}

func (p *ExplicitPolicy) Select(_ context.Context, monitors display.Monitors) (*display.ModeRequest, error) {
	if p.Index < 1 || p.Index > len(monitors) {
		return nil, fmt.Errorf("%w %d, expected 1-%d", ErrInvalidMonitorIndex, p.Index, len(monitors))
	}

	monitor := monitors[p.Index-1]
	mode := p.Mode
	if mode.Frequency == 0 {
		mode.Frequency = monitor.CurrentFrequency
	}

	request := display.NewModeRequest(monitor.DeviceName, mode)
	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("invalid target: %w", err)
	}
	return &request, nil
}

// InteractivePolicy asks the prompter for the monitor and the mode.
type InteractivePolicy struct {
	prompter prompt.Prompter
}

func NewInteractivePolicy(prompter prompt.Prompter) *InteractivePolicy {
	return &InteractivePolicy{prompter: prompter}
}

func (p *InteractivePolicy) Select(ctx context.Context, monitors display.Monitors) (*display.ModeRequest, error) {
	index, err := askMonitorIndex(ctx, p.prompter, monitors)
	if err != nil {
		return nil, err
	}

	mode, err := p.prompter.AskMode(ctx, monitors[index-1])
	if err != nil {
		return nil, fmt.Errorf("cant read target mode: %w", err)
	}

	return NewExplicitPolicy(index, mode).Select(ctx, monitors)
}

// PromptedMonitorPolicy applies a known mode to a monitor picked by the prompter.
type PromptedMonitorPolicy struct {
	prompter prompt.Prompter
	mode     display.Mode
}

func NewPromptedMonitorPolicy(prompter prompt.Prompter, mode display.Mode) *PromptedMonitorPolicy {
	return &PromptedMonitorPolicy{prompter: prompter, mode: mode}
}

func (p *PromptedMonitorPolicy) Select(ctx context.Context, monitors display.Monitors) (*display.ModeRequest, error) {
	index, err := askMonitorIndex(ctx, p.prompter, monitors)
	if err != nil {
		return nil, err
	}
	return NewExplicitPolicy(index, p.mode).Select(ctx, monitors)
}

func askMonitorIndex(ctx context.Context, prompter prompt.Prompter, monitors display.Monitors) (int, error) {
	index, err := prompter.AskMonitorIndex(ctx, monitors)
	if err != nil {
		return 0, fmt.Errorf("cant read monitor number: %w", err)
	}
	if index < 1 || index > len(monitors) {
		return 0, fmt.Errorf("%w %d, expected 1-%d", ErrInvalidMonitorIndex, index, len(monitors))
	}
	return index, nil
}

// FallbackPolicy tries each policy in order, moving on only when a toggle
// policy finds no candidate.
type FallbackPolicy struct {
	policies []Policy
}

func NewFallbackPolicy(policies ...Policy) *FallbackPolicy {
	return &FallbackPolicy{policies: policies}
}

func (p *FallbackPolicy) Select(ctx context.Context, monitors display.Monitors) (*display.ModeRequest, error) {
	var lastErr error
	for _, policy := range p.policies {
		request, err := policy.Select(ctx, monitors)
		if err == nil {
			return request, nil
		}
		if !errors.Is(err, ErrNoToggleCandidate) {
			return nil, err
		}
		logrus.WithError(err).Debug("Policy found nothing, trying the next one")
		lastErr = err
	}
	if lastErr == nil {
		return nil, errors.New("no selection policy configured")
	}
	return nil, lastErr
}
