// Package testutils provides utils for testing
// should not be imported by any other app packages
package testutils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/fiffeek/displayflip/internal/config"
	"github.com/fiffeek/displayflip/internal/utils"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type TestConfig struct {
	cfg     *config.Config
	t       *testing.T
	cfgFile *string
}

func NewTestConfig(t *testing.T) *TestConfig {
	return &TestConfig{cfg: &config.Config{}, t: t}
}

func (t *TestConfig) WithToggle(low, high config.ResolutionSection) *TestConfig {
	t.cfg.Toggle = &config.ToggleSection{Low: &low, High: &high}
	return t
}

func (t *TestConfig) WithConfirmTimeout(seconds int) *TestConfig {
	t.cfg.Confirm = &config.ConfirmSection{TimeoutSeconds: utils.IntPtr(seconds)}
	return t
}

func (t *TestConfig) WithNotifications(disabled bool, timeoutMs int32) *TestConfig {
	t.cfg.Notifications = &config.NotificationsSection{
		Disabled:  utils.BoolPtr(disabled),
		TimeoutMs: utils.JustPtr(timeoutMs),
	}
	return t
}

func (t *TestConfig) WithConfigDir(dir string) *TestConfig {
	require.NoError(t.t, os.MkdirAll(dir, 0o750))
	cfgFile := filepath.Join(dir, "config.toml")
	t.cfgFile = &cfgFile
	return t
}

func (t *TestConfig) SaveToFile() *TestConfig {
	buf := new(bytes.Buffer)
	require.NoError(t.t, toml.NewEncoder(buf).Encode(t.cfg), "cant encode config")
	require.NotNil(t.t, t.cfgFile, "cfgFile cant be nil")
	require.NoError(t.t, os.WriteFile(*t.cfgFile, buf.Bytes(), 0o600), "cant write config")
	return t
}

func (t *TestConfig) createConfig() *config.Config {
	logrus.WithFields(logrus.Fields{"path": *t.cfgFile}).Debug("Creating config")
	cfg, err := config.Load(*t.cfgFile)
	require.NoError(t.t, err, "cant create config")

	return cfg
}

func (t *TestConfig) FillDefaults() *TestConfig {
	if t.cfgFile == nil {
		t = t.WithConfigDir(t.t.TempDir())
	}
	return t
}

// Path saves the config and returns where it was written.
func (t *TestConfig) Path() string {
	t.FillDefaults().SaveToFile()
	return *t.cfgFile
}

func (t *TestConfig) Get() *config.Config {
	return t.FillDefaults().SaveToFile().createConfig()
}
