//go:build !windows

package display

import (
	"fmt"
	"runtime"

	"github.com/fiffeek/displayflip/internal/errs"
)

func NewSystemBackend() (Backend, error) {
	return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedPlatform, runtime.GOOS)
}
