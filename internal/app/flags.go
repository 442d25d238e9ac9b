package app

import (
	"time"

	"github.com/fiffeek/displayflip/internal/config"
	"github.com/sirupsen/logrus"
)

// ConfirmTimeout picks the keep-or-revert countdown, an explicitly passed
// flag wins over the configuration.
func ConfirmTimeout(flagChanged bool, flagValue time.Duration, cfg *config.Config) time.Duration {
	if flagChanged {
		return flagValue
	}
	timeout := cfg.Confirm.Timeout()
	if timeout > 0 {
		logrus.WithField("timeout", timeout).Debug("Using confirmation timeout from config")
	}
	return timeout
}
