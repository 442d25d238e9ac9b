package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fiffeek/displayflip/internal/display"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var errPromptFinished = errors.New("revert prompt finished")

// RunRevertPrompt drives the prompt until the user decides, the countdown
// expires or ctx is cancelled. Cancellation is reported as Revert.
func RunRevertPrompt(ctx context.Context, prompt *RevertPrompt, opts ...tea.ProgramOption) (Decision, error) {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	program := tea.NewProgram(prompt, opts...)
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("failed to run revert prompt: %w", err)
		}
		cancel(errPromptFinished)
		logrus.Debug("Revert prompt exited")
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		if errors.Is(context.Cause(ctx), errPromptFinished) {
			return nil
		}
		logrus.Debug("Context cancelled, stopping revert prompt")
		program.Kill()
		return nil
	})

	if err := eg.Wait(); err != nil {
		return Revert, err
	}

	if prompt.Decision() == Pending {
		return Revert, nil
	}
	return prompt.Decision(), nil
}

// RevertConfirmer asks on a terminal whether a committed change should
// stay. Anything but an explicit keep reverts.
type RevertConfirmer struct {
	in      io.Reader
	out     io.Writer
	timeout time.Duration
	opts    []RevertPromptOption
}

func NewRevertConfirmer(in io.Reader, out io.Writer, timeout time.Duration, opts ...RevertPromptOption) *RevertConfirmer {
	return &RevertConfirmer{
		in:      in,
		out:     out,
		timeout: timeout,
		opts:    opts,
	}
}

func (r *RevertConfirmer) Confirm(ctx context.Context, outcome *display.ChangeOutcome) (bool, error) {
	title := fmt.Sprintf("Keep %s on %s?", outcome.Applied.String(), outcome.DeviceName)
	prompt := NewRevertPrompt(title, r.timeout, r.opts...)

	decision, err := RunRevertPrompt(ctx, prompt, tea.WithInput(r.in), tea.WithOutput(r.out))
	if err != nil {
		return false, fmt.Errorf("cant confirm change on %s: %w", outcome.DeviceName, err)
	}

	logrus.WithField("decision", decision.Value()).Debug("Revert prompt decided")
	return decision == Keep, nil
}
