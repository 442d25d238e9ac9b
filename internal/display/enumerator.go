package display

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// MaxDeviceIndex bounds the device walk for backends that never report the
// end of the list.
const MaxDeviceIndex = 64

type Enumerator struct {
	backend Backend
}

func NewEnumerator(backend Backend) *Enumerator {
	return &Enumerator{backend: backend}
}

// Enumerate returns the attached devices whose current mode could be read, in
// device index order.
func (e *Enumerator) Enumerate(ctx context.Context) (Monitors, error) {
	var monitors Monitors
	var firstDeviceErr error

	for index := 0; index < MaxDeviceIndex; index++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("enumeration interrupted: %w", err)
		}

		fields := logrus.Fields{"index": index}
		device, err := e.backend.EnumDevice(index)
		if errors.Is(err, ErrNoMoreDevices) {
			logrus.WithFields(fields).Debug("End of display device list")
			break
		}
		if err != nil {
			if index == 0 {
				firstDeviceErr = err
			}
			logrus.WithFields(fields).WithError(err).Debug("Cant query display device, skipping")
			continue
		}

		fields["device"] = device.Name
		if !device.AttachedToDesktop() {
			logrus.WithFields(fields).Debug("Display device not attached to desktop, skipping")
			continue
		}

		mode, err := e.backend.CurrentMode(device.Name)
		if err != nil {
			logrus.WithFields(fields).WithError(err).Debug("Cant read current mode, skipping")
			continue
		}

		monitor := &Monitor{
			DeviceName:        device.Name,
			DeviceDescription: device.Description,
			CurrentWidth:      mode.Width,
			CurrentHeight:     mode.Height,
			CurrentFrequency:  mode.Frequency,
			IsPrimary:         device.Primary(),
		}
		logrus.WithFields(fields).WithField("mode", monitor.CurrentMode().String()).Debug("Found monitor")
		monitors = append(monitors, monitor)
	}

	if len(monitors) == 0 {
		if firstDeviceErr != nil {
			return nil, fmt.Errorf("%w: first device query failed: %w", ErrNoMonitorsFound, firstDeviceErr)
		}
		return nil, ErrNoMonitorsFound
	}

	return monitors, nil
}
