// Package errs provides common errors thrown in the app that are expected to be caught upstream
package errs

import "errors"

var ErrUnsupportedPlatform = errors.New("display mode changes are only supported on windows")
