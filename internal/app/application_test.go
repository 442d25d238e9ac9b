package app_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fiffeek/displayflip/internal/app"
	"github.com/fiffeek/displayflip/internal/config"
	"github.com/fiffeek/displayflip/internal/display"
	"github.com/fiffeek/displayflip/internal/policy"
	"github.com/fiffeek/displayflip/internal/testutils"
	"github.com/fiffeek/displayflip/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNotifier struct {
	outcomes []*display.ChangeOutcome
	failures []string
	err      error
}

func (f *fakeNotifier) NotifyOutcome(outcome *display.ChangeOutcome) error {
	f.outcomes = append(f.outcomes, outcome)
	return f.err
}

func (f *fakeNotifier) NotifyFailure(deviceName string, _ error) error {
	f.failures = append(f.failures, deviceName)
	return f.err
}

type fakeConfirmer struct {
	keep   bool
	err    error
	called int
}

func (f *fakeConfirmer) Confirm(_ context.Context, _ *display.ChangeOutcome) (bool, error) {
	f.called++
	return f.keep, f.err
}

func toggle() policy.Policy {
	return policy.NewTogglePolicy(
		policy.Resolution{Width: 1920, Height: 1080},
		policy.Resolution{Width: 3840, Height: 2160},
	)
}

func deviceMode(t *testing.T, backend *testutils.FakeBackend, name string) display.Mode {
	t.Helper()
	for _, device := range backend.Devices {
		if device.Name == name {
			return device.Mode.Mode()
		}
	}
	t.Fatalf("device %s not found", name)
	return display.Mode{}
}

func TestApplication_Run(t *testing.T) {
	tests := []struct {
		name              string
		backend           func() *testutils.FakeBackend
		policy            policy.Policy
		confirmer         *fakeConfirmer
		opts              app.Options
		expectErr         bool
		expectedErrAs     any
		expectedErrIs     error
		expectedFinalMode display.Mode
		finalDevice       string
		expectedCalls     []testutils.BackendCallType
		expectedLogIDs    []utils.LogID
		expectedOutput    []string
		expectedNotified  int
		expectedFailures  int
		expectedConfirms  int
	}{
		{
			name: "toggle 1080p to 4k",
			backend: func() *testutils.FakeBackend {
				return testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true))
			},
			policy:            toggle(),
			expectedFinalMode: display.Mode{Width: 3840, Height: 2160, Frequency: 60},
			expectedLogIDs:    []utils.LogID{utils.ModeAppliedLogID},
			expectedOutput: []string{
				"Scanning for monitors...",
				"Found 1 monitor(s):",
				"Attempting to change resolution...",
				"Successfully changed DISPLAY1 to 3840x2160@60Hz",
			},
			expectedNotified: 1,
		},
		{
			name: "dry run does not commit",
			backend: func() *testutils.FakeBackend {
				return testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 3840, 2160, 60, true))
			},
			policy:            toggle(),
			opts:              app.Options{DryRun: true},
			expectedFinalMode: display.Mode{Width: 3840, Height: 2160, Frequency: 60},
			expectedCalls: []testutils.BackendCallType{
				testutils.EnumDeviceCall, testutils.CurrentModeCall, testutils.EnumDeviceCall,
				testutils.CurrentModeCall, testutils.TestCall,
			},
			expectedLogIDs: []utils.LogID{utils.DryRunLogID},
			expectedOutput: []string{"[DRY RUN] DISPLAY1 supports 1920x1080@60Hz (currently 3840x2160@60Hz)"},
		},
		{
			name: "pending restart is reported and never confirmed",
			backend: func() *testutils.FakeBackend {
				backend := testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true))
				backend.CommitResult = display.DispChangeRestart
				return backend
			},
			policy:            toggle(),
			confirmer:         &fakeConfirmer{keep: false},
			expectedFinalMode: display.Mode{Width: 3840, Height: 2160, Frequency: 60},
			expectedLogIDs:    []utils.LogID{utils.ModePendingRestartLogID},
			expectedOutput:    []string{"Resolution changed. A restart may be required for full effect."},
			expectedNotified:  1,
		},
		{
			name: "kept after confirmation",
			backend: func() *testutils.FakeBackend {
				return testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true))
			},
			policy:            toggle(),
			confirmer:         &fakeConfirmer{keep: true},
			expectedFinalMode: display.Mode{Width: 3840, Height: 2160, Frequency: 60},
			expectedLogIDs:    []utils.LogID{utils.ModeAppliedLogID, utils.ModeKeptLogID},
			expectedNotified:  1,
			expectedConfirms:  1,
		},
		{
			name: "reverted after confirmation declined",
			backend: func() *testutils.FakeBackend {
				return testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true))
			},
			policy:            toggle(),
			confirmer:         &fakeConfirmer{keep: false},
			expectedFinalMode: display.Mode{Width: 1920, Height: 1080, Frequency: 60},
			expectedLogIDs:    []utils.LogID{utils.ModeAppliedLogID, utils.ModeRevertedLogID},
			expectedOutput:    []string{"Reverted DISPLAY1 to 1920x1080@60Hz"},
			expectedNotified:  1,
			expectedConfirms:  1,
		},
		{
			name: "confirmation failure reverts",
			backend: func() *testutils.FakeBackend {
				return testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true))
			},
			policy:            toggle(),
			confirmer:         &fakeConfirmer{err: errors.New("no tty")},
			expectedFinalMode: display.Mode{Width: 1920, Height: 1080, Frequency: 60},
			expectedLogIDs:    []utils.LogID{utils.ModeAppliedLogID, utils.ModeRevertedLogID},
			expectedNotified:  1,
			expectedConfirms:  1,
		},
		{
			name: "unsupported mode stops before commit",
			backend: func() *testutils.FakeBackend {
				backend := testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true))
				backend.TestResults[display.Mode{Width: 3840, Height: 2160, Frequency: 60}] = display.DispChangeBadMode
				return backend
			},
			policy:            toggle(),
			expectErr:         true,
			expectedErrAs:     new(*display.UnsupportedModeError),
			expectedFinalMode: display.Mode{Width: 1920, Height: 1080, Frequency: 60},
			expectedFailures:  1,
		},
		{
			name: "no toggle candidate",
			backend: func() *testutils.FakeBackend {
				return testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 2560, 1440, 144, true))
			},
			policy:            toggle(),
			expectErr:         true,
			expectedErrIs:     policy.ErrNoToggleCandidate,
			expectedFinalMode: display.Mode{Width: 2560, Height: 1440, Frequency: 144},
		},
		{
			name: "explicit mode on second monitor",
			backend: func() *testutils.FakeBackend {
				return testutils.NewFakeBackend(
					testutils.AttachedDevice("DISPLAY2", 2560, 1440, 144, false),
					testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true),
				)
			},
			policy:            policy.NewExplicitPolicy(1, display.Mode{Width: 1280, Height: 720, Frequency: 60}),
			finalDevice:       "DISPLAY2",
			expectedFinalMode: display.Mode{Width: 1280, Height: 720, Frequency: 60},
			expectedLogIDs:    []utils.LogID{utils.ModeAppliedLogID},
			expectedNotified:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := testutils.CaptureJSONLogs(t)
			backend := tt.backend()
			notifier := &fakeNotifier{}
			out := &bytes.Buffer{}

			var confirmer app.Confirmer
			if tt.confirmer != nil {
				confirmer = tt.confirmer
			}
			application := app.NewApplication(backend, notifier, confirmer, out, tt.opts)

			_, err := application.Run(t.Context(), tt.policy)
			if tt.expectErr {
				require.Error(t, err)
				if tt.expectedErrIs != nil {
					require.ErrorIs(t, err, tt.expectedErrIs)
				}
				if tt.expectedErrAs != nil {
					require.ErrorAs(t, err, tt.expectedErrAs)
				}
			} else {
				require.NoError(t, err)
			}

			finalDevice := tt.finalDevice
			if finalDevice == "" {
				finalDevice = "DISPLAY1"
			}
			assert.Equal(t, tt.expectedFinalMode, deviceMode(t, backend, finalDevice))

			if tt.expectedCalls != nil {
				assert.Equal(t, tt.expectedCalls, backend.CallTypes())
			}
			for _, expected := range tt.expectedOutput {
				assert.Contains(t, out.String(), expected)
			}
			testutils.AssertLogsPresent(t, logs.Bytes(), tt.expectedLogIDs)
			assert.Len(t, notifier.outcomes, tt.expectedNotified)
			assert.Len(t, notifier.failures, tt.expectedFailures)
			if tt.confirmer != nil {
				assert.Equal(t, tt.expectedConfirms, tt.confirmer.called)
			}
		})
	}
}

func TestApplication_Run_NotificationFailureIsNotFatal(t *testing.T) {
	logs := testutils.CaptureJSONLogs(t)
	backend := testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true))
	notifier := &fakeNotifier{err: errors.New("no session bus")}

	application := app.NewApplication(backend, notifier, nil, &bytes.Buffer{}, app.Options{})
	outcome, err := application.Run(t.Context(), toggle())

	require.NoError(t, err)
	assert.Equal(t, display.Applied, outcome.Kind)
	testutils.AssertLogsPresent(t, logs.Bytes(),
		[]utils.LogID{utils.ModeAppliedLogID, utils.NotificationFailedLogID})
}

func TestApplication_Run_NoMonitors(t *testing.T) {
	application := app.NewApplication(testutils.NewFakeBackend(), nil, nil, &bytes.Buffer{}, app.Options{})

	_, err := application.Run(t.Context(), toggle())

	require.ErrorIs(t, err, display.ErrNoMonitorsFound)
}

func TestApplication_List(t *testing.T) {
	backend := testutils.NewFakeBackend(
		testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true),
		testutils.AttachedDevice("DISPLAY2", 3840, 2160, 30, false),
	)
	out := &bytes.Buffer{}

	monitors, err := app.NewApplication(backend, nil, nil, out, app.Options{}).List(t.Context())

	require.NoError(t, err)
	assert.Len(t, monitors, 2)
	assert.Contains(t, out.String(), "Found 2 monitor(s):")
	assert.Contains(t, out.String(), "Current Resolution: 3840x2160@30Hz")
	assert.Equal(t, 2, len(backend.CallsOf(testutils.CurrentModeCall)))
}

func TestConfirmTimeout(t *testing.T) {
	cfg := testutils.NewTestConfig(t).WithConfirmTimeout(15).Get()

	assert.Equal(t, 15*time.Second, app.ConfirmTimeout(false, 0, cfg))
	assert.Equal(t, 5*time.Second, app.ConfirmTimeout(true, 5*time.Second, cfg))
	assert.Equal(t, time.Duration(0), app.ConfirmTimeout(true, 0, cfg))
	assert.Equal(t, time.Duration(0), app.ConfirmTimeout(false, 0, config.Default()))
}
