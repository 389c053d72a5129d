//go:build linux

package windc

import (
	"time"

	"github.com/lunarsen/windc/xlib"
)

// linuxContext is the X11 context plus the udev/evdev controller
// subsystem. The two share one event queue and one token counter.
type linuxContext struct {
	*x11Context
	dev *linuxdevContext
}

func newOSContext() (osContext, error) {
	return newLinuxContext("")
}

func newOSContextWithDisplayName(name string) (osContext, error) {
	return newLinuxContext(name)
}

func newOSContextFromXlibDisplay(d uintptr) (osContext, error) {
	x11, err := newX11ContextFromDisplay(xlib.Display(d))
	if err != nil {
		return nil, err
	}
	return wrapLinuxContext(x11), nil
}

func newLinuxContext(displayName string) (*linuxContext, error) {
	x11, err := newX11Context(displayName)
	if err != nil {
		return nil, err
	}
	return wrapLinuxContext(x11), nil
}

func wrapLinuxContext(x11 *x11Context) *linuxContext {
	c := &linuxContext{x11Context: x11}
	dev, err := newLinuxdevContext(&x11.queue, &x11.tokens)
	if err != nil {
		logger.Warn("controller subsystem unavailable", "err", err)
	} else {
		c.dev = dev
		x11.drainHook = dev.onDrained
	}
	return c
}

func (c *linuxContext) close() error {
	if c.dev != nil {
		c.dev.close()
		c.dev = nil
	}
	return c.x11Context.close()
}

// pollNextEvent pumps known devices before the hotplug monitor, so a
// disconnecting device's final events precede its Disconnected.
func (c *linuxContext) pollNextEvent() Event {
	if e := c.popEvent(); e != nil {
		return e
	}
	if c.dev != nil {
		c.dev.pump()
	}
	c.pumpX()
	return c.popEvent()
}

func (c *linuxContext) nextEvent(timeout Timeout) Event {
	var deadline time.Time
	if d, ok := timeout.Duration(); ok {
		deadline = time.Now().Add(d)
	}
	for {
		if e := c.pollNextEvent(); e != nil {
			return e
		}
		if !deadline.IsZero() && !time.Now().Before(deadline) {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
}

func (c *linuxContext) controllers() ([]DeviceID, error) {
	if c.dev == nil {
		return nil, nil
	}
	return c.dev.controllers()
}

func (c *linuxContext) hidInfo(id DeviceID) (*HidInfo, error) {
	if id.Backend == DeviceBackendUdev && c.dev != nil {
		return c.dev.hidInfo(id)
	}
	return c.x11Context.hidInfo(id)
}

func (c *linuxContext) controllerState(id DeviceID) (*ControllerState, error) {
	if c.dev == nil {
		return nil, errDeviceNotSupported("controller subsystem unavailable")
	}
	return c.dev.controllerState(id)
}

func (c *linuxContext) controllerButtonState(id DeviceID, b ControllerButton) (ButtonState, error) {
	if c.dev == nil {
		return ButtonUp, errDeviceNotSupported("controller subsystem unavailable")
	}
	return c.dev.controllerButtonState(id, b)
}

func (c *linuxContext) controllerAxisState(id DeviceID, a ControllerAxis) (float64, error) {
	if c.dev == nil {
		return 0, errDeviceNotSupported("controller subsystem unavailable")
	}
	return c.dev.controllerAxisState(id, a)
}

func (c *linuxContext) controllerSetVibration(id DeviceID, v *VibrationState) error {
	if c.dev == nil {
		return errDeviceNotSupported("controller subsystem unavailable")
	}
	return c.dev.controllerSetVibration(id, v)
}
