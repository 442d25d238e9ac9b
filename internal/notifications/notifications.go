// Package notifications provides desktop notifications through dbus
package notifications

import (
	"fmt"

	"github.com/TheCreeper/go-notify"
	"github.com/fiffeek/displayflip/internal/config"
	"github.com/fiffeek/displayflip/internal/display"
	"github.com/sirupsen/logrus"
)

// Sender delivers a prepared notification, notify.Notification.Show in production.
type Sender func(ntf notify.Notification) error

type Service struct {
	config *config.Config
	hints  map[string]interface{}
	send   Sender
}

func NewService(cfg *config.Config) *Service {
	return NewServiceWithSender(cfg, func(ntf notify.Notification) error {
		_, err := ntf.Show()
		return err
	})
}

func NewServiceWithSender(cfg *config.Config, send Sender) *Service {
	return &Service{
		config: cfg,
		hints: map[string]interface{}{
			"synchronous":       "displayflip",
			"x-dunst-stack-tag": "displayflip",
		},
		send: send,
	}
}

func (s *Service) enabled() bool {
	if *s.config.Notifications.Disabled {
		logrus.Debug("notifications are not enabled, not sending")
		return false
	}
	return true
}

func (s *Service) NotifyOutcome(outcome *display.ChangeOutcome) error {
	if !s.enabled() {
		return nil
	}

	summary := "Display mode changed on " + outcome.DeviceName
	if outcome.Kind == display.AppliedPendingRestart {
		summary = "Display mode changed on " + outcome.DeviceName + ", restart required"
	}
	if err := s.show(summary, outcome.Message); err != nil {
		return fmt.Errorf("cant send notification for %s: %w", outcome.DeviceName, err)
	}
	return nil
}

func (s *Service) NotifyFailure(deviceName string, cause error) error {
	if !s.enabled() {
		return nil
	}

	if err := s.show("Display mode change failed on "+deviceName, cause.Error()); err != nil {
		return fmt.Errorf("cant send failure notification for %s: %w", deviceName, err)
	}
	return nil
}

func (s *Service) show(summary, body string) error {
	ntf := notify.NewNotification(summary, body)
	ntf.Timeout = *s.config.Notifications.TimeoutMs
	ntf.Hints = s.hints
	return s.send(ntf)
}
