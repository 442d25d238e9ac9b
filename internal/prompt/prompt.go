// Package prompt asks the user which monitor to change and to which mode.
package prompt

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fiffeek/displayflip/internal/display"
	"golang.org/x/term"
)

type Prompter interface {
	// AskMonitorIndex returns a 1-based monitor number.
	AskMonitorIndex(ctx context.Context, monitors display.Monitors) (int, error)
	AskMode(ctx context.Context, monitor *display.Monitor) (display.Mode, error)
}

// New returns a form based prompter when both ends are terminals and a line
// based one otherwise.
func New(in *os.File, out *os.File) Prompter {
	if term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd())) {
		return NewFormPrompter(in, out)
	}
	return NewLinePrompter(in, out)
}

func parsePositive(raw, what string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s", what)
	}
	if value <= 0 {
		return 0, fmt.Errorf("invalid %s, must be positive", what)
	}
	return value, nil
}

func writef(w io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		return fmt.Errorf("cant write prompt: %w", err)
	}
	return nil
}
