package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fiffeek/displayflip/internal/display"
)

// LinePrompter reads one answer per line, it is used when stdin is piped.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

func (l *LinePrompter) AskMonitorIndex(ctx context.Context, monitors display.Monitors) (int, error) {
	return l.askPositive(ctx, fmt.Sprintf("Enter monitor number to change (1-%d): ", len(monitors)), "number")
}

func (l *LinePrompter) AskMode(ctx context.Context, _ *display.Monitor) (display.Mode, error) {
	width, err := l.askPositive(ctx, "Enter new width (pixels): ", "width")
	if err != nil {
		return display.Mode{}, err
	}
	height, err := l.askPositive(ctx, "Enter new height (pixels): ", "height")
	if err != nil {
		return display.Mode{}, err
	}
	frequency, err := l.askPositive(ctx, "Enter refresh rate (Hz, typically 60 or 144): ", "frequency")
	if err != nil {
		return display.Mode{}, err
	}
	return display.Mode{Width: width, Height: height, Frequency: frequency}, nil
}

func (l *LinePrompter) askPositive(ctx context.Context, question, what string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("prompt cancelled: %w", err)
	}
	if err := writef(l.out, "%s\n", question); err != nil {
		return 0, err
	}

	line, err := l.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(line) != "") {
		return 0, fmt.Errorf("cant read %s: %w", what, err)
	}
	return parsePositive(line, what)
}
