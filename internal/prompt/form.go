package prompt

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/fiffeek/displayflip/internal/display"
)

// FormPrompter renders huh forms, it needs a terminal on both ends.
type FormPrompter struct {
	in  io.Reader
	out io.Writer
}

func NewFormPrompter(in io.Reader, out io.Writer) *FormPrompter {
	return &FormPrompter{in: in, out: out}
}

func (f *FormPrompter) AskMonitorIndex(ctx context.Context, monitors display.Monitors) (int, error) {
	options := make([]huh.Option[int], 0, len(monitors))
	for i, monitor := range monitors {
		label := fmt.Sprintf("%d. %s (%s) %s", i+1, monitor.DeviceName, monitor.DeviceDescription,
			monitor.CurrentMode())
		if monitor.IsPrimary {
			label += " [primary]"
		}
		options = append(options, huh.NewOption(label, i+1))
	}

	index := 1
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Key("monitor").
				Title("Monitor to change").
				Options(options...).
				Value(&index),
		),
	).WithInput(f.in).WithOutput(f.out)

	if err := form.RunWithContext(ctx); err != nil {
		return 0, fmt.Errorf("monitor form failed: %w", err)
	}
	return index, nil
}

func (f *FormPrompter) AskMode(ctx context.Context, monitor *display.Monitor) (display.Mode, error) {
	width := strconv.Itoa(monitor.CurrentWidth)
	height := strconv.Itoa(monitor.CurrentHeight)
	frequency := strconv.Itoa(monitor.CurrentFrequency)

	validate := func(what string) func(string) error {
		return func(s string) error {
			_, err := parsePositive(s, what)
			return err
		}
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("width").
				Title("Width").
				Description("Pixels").
				Validate(validate("width")).
				Value(&width),
			huh.NewInput().
				Key("height").
				Title("Height").
				Description("Pixels").
				Validate(validate("height")).
				Value(&height),
			huh.NewInput().
				Key("frequency").
				Title("Refresh rate").
				Description("Hz, typically 60 or 144").
				Validate(validate("frequency")).
				Value(&frequency),
		),
	).WithInput(f.in).WithOutput(f.out).WithShowErrors(true)

	if err := form.RunWithContext(ctx); err != nil {
		return display.Mode{}, fmt.Errorf("mode form failed: %w", err)
	}

	mode := display.Mode{}
	var err error
	if mode.Width, err = parsePositive(width, "width"); err != nil {
		return display.Mode{}, err
	}
	if mode.Height, err = parsePositive(height, "height"); err != nil {
		return display.Mode{}, err
	}
	if mode.Frequency, err = parsePositive(frequency, "frequency"); err != nil {
		return display.Mode{}, err
	}
	return mode, nil
}
