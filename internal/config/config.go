// Package config handles loading and validation of TOML configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fiffeek/displayflip/internal/utils"
	"github.com/sirupsen/logrus"
)

const DefaultPath = "$HOME/.config/displayflip/config.toml"

type Config struct {
	configPath    string
	Toggle        *ToggleSection        `toml:"toggle"`
	Confirm       *ConfirmSection       `toml:"confirm"`
	Notifications *NotificationsSection `toml:"notifications"`
}

type ToggleSection struct {
	Low  *ResolutionSection `toml:"low"`
	High *ResolutionSection `toml:"high"`
}

type ResolutionSection struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type ConfirmSection struct {
	TimeoutSeconds *int `toml:"timeout_seconds"`
}

type NotificationsSection struct {
	Disabled  *bool  `toml:"disabled"`
	TimeoutMs *int32 `toml:"timeout_ms"`
}

// Load reads the configuration at configPath. A missing file is not an
// error, the defaults are used instead.
func Load(configPath string) (*Config, error) {
	configPath = os.ExpandEnv(configPath)

	var config Config
	config.configPath = configPath

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		logrus.WithField("config_path", configPath).Debug("Configuration file not found, using defaults")
	} else {
		if _, err := toml.DecodeFile(configPath, &config); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func Default() *Config {
	config := &Config{}
	// defaults always validate
	_ = config.Validate()
	return config
}

func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) Validate() error {
	if c.Toggle == nil {
		c.Toggle = &ToggleSection{}
	}
	if err := c.Toggle.Validate(); err != nil {
		return fmt.Errorf("toggle section validation failed: %w", err)
	}

	if c.Confirm == nil {
		c.Confirm = &ConfirmSection{}
	}
	if err := c.Confirm.Validate(); err != nil {
		return fmt.Errorf("confirm section validation failed: %w", err)
	}

	if c.Notifications == nil {
		c.Notifications = &NotificationsSection{}
	}
	if err := c.Notifications.Validate(); err != nil {
		return fmt.Errorf("notifications section validation failed: %w", err)
	}

	return nil
}

func (t *ToggleSection) Validate() error {
	if t.Low == nil {
		t.Low = &ResolutionSection{Width: 1920, Height: 1080}
	}
	if t.High == nil {
		t.High = &ResolutionSection{Width: 3840, Height: 2160}
	}

	if err := t.Low.Validate(); err != nil {
		return fmt.Errorf("low resolution is invalid: %w", err)
	}
	if err := t.High.Validate(); err != nil {
		return fmt.Errorf("high resolution is invalid: %w", err)
	}
	if *t.Low == *t.High {
		return errors.New("low and high resolutions cant be the same")
	}

	return nil
}

func (r *ResolutionSection) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("width and height need to be > 0, got %dx%d", r.Width, r.Height)
	}
	return nil
}

func (c *ConfirmSection) Validate() error {
	if c.TimeoutSeconds == nil {
		c.TimeoutSeconds = utils.IntPtr(0)
	}
	if *c.TimeoutSeconds < 0 {
		return errors.New("timeout_seconds cant be negative")
	}
	return nil
}

func (c *ConfirmSection) Timeout() time.Duration {
	return time.Duration(*c.TimeoutSeconds) * time.Second
}

func (n *NotificationsSection) Validate() error {
	if n.Disabled == nil {
		n.Disabled = utils.BoolPtr(true)
	}
	if n.TimeoutMs == nil {
		n.TimeoutMs = utils.JustPtr(int32(5000))
	}
	if *n.TimeoutMs < 0 {
		return errors.New("timeout_ms cant be negative")
	}
	return nil
}
