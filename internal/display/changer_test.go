package display_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fiffeek/displayflip/internal/display"
	"github.com/fiffeek/displayflip/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanger_ChangeMode(t *testing.T) {
	tests := []struct {
		name            string
		request         display.ModeRequest
		testResults     map[display.Mode]display.DispChange
		commitResult    display.DispChange
		expectedKind    display.OutcomeKind
		expectedMessage string
		expectedCalls   []testutils.BackendCallType
		checkErr        func(*testing.T, error)
	}{
		{
			name:            "test and commit succeed",
			request:         display.ModeRequest{DeviceName: "DISPLAY1", Width: 3840, Height: 2160, Frequency: 60},
			commitResult:    display.DispChangeSuccessful,
			expectedKind:    display.Applied,
			expectedMessage: "Successfully changed DISPLAY1 to 3840x2160@60Hz",
			expectedCalls: []testutils.BackendCallType{
				testutils.CurrentModeCall, testutils.TestCall, testutils.CommitCall,
			},
		},
		{
			name:            "commit asks for restart",
			request:         display.ModeRequest{DeviceName: "DISPLAY1", Width: 3840, Height: 2160, Frequency: 60},
			commitResult:    display.DispChangeRestart,
			expectedKind:    display.AppliedPendingRestart,
			expectedMessage: "Resolution changed. A restart may be required for full effect.",
			expectedCalls: []testutils.BackendCallType{
				testutils.CurrentModeCall, testutils.TestCall, testutils.CommitCall,
			},
		},
		{
			name:    "test phase rejects the mode",
			request: display.ModeRequest{DeviceName: "DISPLAY1", Width: 3840, Height: 2160, Frequency: 60},
			testResults: map[display.Mode]display.DispChange{
				{Width: 3840, Height: 2160, Frequency: 60}: display.DispChangeBadMode,
			},
			commitResult: display.DispChangeSuccessful,
			expectedCalls: []testutils.BackendCallType{
				testutils.CurrentModeCall, testutils.TestCall,
			},
			checkErr: func(t *testing.T, err error) {
				var target *display.UnsupportedModeError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, &display.UnsupportedModeError{
					Width:      3840,
					Height:     2160,
					Frequency:  60,
					DeviceName: "DISPLAY1",
					RawCode:    display.DispChangeBadMode,
				}, target)
			},
		},
		{
			name:    "any non successful test code stops before commit",
			request: display.ModeRequest{DeviceName: "DISPLAY1", Width: 1280, Height: 1024, Frequency: 75},
			testResults: map[display.Mode]display.DispChange{
				{Width: 1280, Height: 1024, Frequency: 75}: display.DispChangeRestart,
			},
			expectedCalls: []testutils.BackendCallType{
				testutils.CurrentModeCall, testutils.TestCall,
			},
			checkErr: func(t *testing.T, err error) {
				var target *display.UnsupportedModeError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, display.DispChangeRestart, target.RawCode)
			},
		},
		{
			name:         "commit phase disagrees with test phase",
			request:      display.ModeRequest{DeviceName: "DISPLAY1", Width: 3840, Height: 2160, Frequency: 60},
			commitResult: display.DispChangeBadMode,
			expectedCalls: []testutils.BackendCallType{
				testutils.CurrentModeCall, testutils.TestCall, testutils.CommitCall,
			},
			checkErr: func(t *testing.T, err error) {
				var rejected *display.RejectedAtCommitError
				require.ErrorAs(t, err, &rejected)
				assert.Equal(t, "DISPLAY1", rejected.DeviceName)
				var unsupported *display.UnsupportedModeError
				assert.False(t, errors.As(err, &unsupported), "commit rejection must not look like a test rejection")
			},
		},
		{
			name:         "unknown commit code keeps the raw value",
			request:      display.ModeRequest{DeviceName: "DISPLAY1", Width: 3840, Height: 2160, Frequency: 60},
			commitResult: display.DispChangeNotUpdated,
			expectedCalls: []testutils.BackendCallType{
				testutils.CurrentModeCall, testutils.TestCall, testutils.CommitCall,
			},
			checkErr: func(t *testing.T, err error) {
				var target *display.UnknownFailureError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "DISPLAY1", target.DeviceName)
				assert.Equal(t, display.DispChangeNotUpdated, target.RawCode)
			},
		},
		{
			name:         "device no longer resolves",
			request:      display.ModeRequest{DeviceName: "DISPLAY9", Width: 3840, Height: 2160, Frequency: 60},
			commitResult: display.DispChangeSuccessful,
			expectedCalls: []testutils.BackendCallType{
				testutils.CurrentModeCall,
			},
			checkErr: func(t *testing.T, err error) {
				var target *display.DeviceQueryFailedError
				require.ErrorAs(t, err, &target)
				assert.Equal(t, "DISPLAY9", target.DeviceName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true))
			if tt.testResults != nil {
				backend.TestResults = tt.testResults
			}
			backend.CommitResult = tt.commitResult
			changer := display.NewChanger(backend)

			outcome, err := changer.ChangeMode(context.Background(), tt.request)

			assert.Equal(t, tt.expectedCalls, backend.CallTypes())
			if tt.checkErr != nil {
				require.Error(t, err)
				assert.Nil(t, outcome)
				tt.checkErr(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedKind, outcome.Kind)
			assert.Equal(t, tt.expectedMessage, outcome.Message)
			assert.Equal(t, "DISPLAY1", outcome.DeviceName)
			assert.Equal(t, display.Mode{Width: 1920, Height: 1080, Frequency: 60}, outcome.Baseline)
			assert.Equal(t, tt.request.Mode(), outcome.Applied)
		})
	}
}

func TestChanger_OverlayOnlyTouchesModeFields(t *testing.T) {
	device := testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true)
	device.Mode.BitsPerPixel = 24
	device.Mode.PositionX = -1920
	device.Mode.PositionY = 120
	device.Mode.Orientation = 1
	device.Mode.DisplayFlags = 0x2
	baseline := *device.Mode

	backend := testutils.NewFakeBackend(device)
	changer := display.NewChanger(backend)

	_, err := changer.ChangeMode(context.Background(),
		display.ModeRequest{DeviceName: "DISPLAY1", Width: 3840, Height: 2160, Frequency: 120})
	require.NoError(t, err)

	submitted := append(backend.CallsOf(testutils.TestCall), backend.CallsOf(testutils.CommitCall)...)
	require.Len(t, submitted, 2)
	for _, call := range submitted {
		assert.Equal(t, 3840, call.Mode.Width)
		assert.Equal(t, 2160, call.Mode.Height)
		assert.Equal(t, 120, call.Mode.Frequency)

		assert.Equal(t, baseline.BitsPerPixel, call.Mode.BitsPerPixel)
		assert.Equal(t, baseline.PositionX, call.Mode.PositionX)
		assert.Equal(t, baseline.PositionY, call.Mode.PositionY)
		assert.Equal(t, baseline.Orientation, call.Mode.Orientation)
		assert.Equal(t, baseline.DisplayFlags, call.Mode.DisplayFlags)

		assert.Equal(t, display.ModeFields, call.Mode.Fields)
		changed := baseline.Fields ^ call.Mode.Fields
		assert.Zero(t, call.Mode.Fields&^display.ModeFields, "no field outside the mode fields may be marked, diff %x", changed)
	}
	assert.Equal(t, submitted[0].Mode, submitted[1].Mode, "commit must resubmit the tested record")
}

func TestChanger_RefetchesBaselineEveryTime(t *testing.T) {
	backend := testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true))
	changer := display.NewChanger(backend)

	first, err := changer.ChangeMode(context.Background(),
		display.ModeRequest{DeviceName: "DISPLAY1", Width: 1920, Height: 1080, Frequency: 60})
	require.NoError(t, err)
	second, err := changer.ChangeMode(context.Background(),
		display.ModeRequest{DeviceName: "DISPLAY1", Width: 3840, Height: 2160, Frequency: 60})
	require.NoError(t, err)

	assert.Equal(t, []testutils.BackendCallType{
		testutils.CurrentModeCall, testutils.TestCall, testutils.CommitCall,
		testutils.CurrentModeCall, testutils.TestCall, testutils.CommitCall,
	}, backend.CallTypes())
	assert.Equal(t, display.Applied, first.Kind)
	assert.Equal(t, display.Applied, second.Kind)
	assert.Equal(t, display.Mode{Width: 1920, Height: 1080, Frequency: 60}, second.Baseline)

	third, err := changer.ChangeMode(context.Background(),
		display.ModeRequest{DeviceName: "DISPLAY1", Width: 1920, Height: 1080, Frequency: 60})
	require.NoError(t, err)
	assert.Equal(t, display.Mode{Width: 3840, Height: 2160, Frequency: 60}, third.Baseline,
		"baseline should reflect the last committed mode")
}

func TestChanger_TestMode(t *testing.T) {
	backend := testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true))
	backend.TestResults[display.Mode{Width: 5120, Height: 2880, Frequency: 60}] = display.DispChangeBadMode
	changer := display.NewChanger(backend)

	baseline, err := changer.TestMode(context.Background(),
		display.ModeRequest{DeviceName: "DISPLAY1", Width: 3840, Height: 2160, Frequency: 60})
	require.NoError(t, err)
	assert.Equal(t, &display.Mode{Width: 1920, Height: 1080, Frequency: 60}, baseline)

	_, err = changer.TestMode(context.Background(),
		display.ModeRequest{DeviceName: "DISPLAY1", Width: 5120, Height: 2880, Frequency: 60})
	var unsupported *display.UnsupportedModeError
	require.ErrorAs(t, err, &unsupported)

	assert.Empty(t, backend.CallsOf(testutils.CommitCall), "test mode must never commit")
}

func TestChanger_BackendCallFailure(t *testing.T) {
	backend := testutils.NewFakeBackend(testutils.AttachedDevice("DISPLAY1", 1920, 1080, 60, true))
	backend.ApplyErr = errors.New("proc not found")
	changer := display.NewChanger(backend)

	_, err := changer.ChangeMode(context.Background(),
		display.ModeRequest{DeviceName: "DISPLAY1", Width: 3840, Height: 2160, Frequency: 60})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cant test mode for DISPLAY1")
	assert.Empty(t, backend.CallsOf(testutils.CommitCall))
}
