//go:build freebsd

package windc

import "github.com/lunarsen/windc/xlib"

// FreeBSD gets the X11 backend without the udev/evdev controller
// subsystem.

func newOSContext() (osContext, error) {
	return newX11Context("")
}

func newOSContextWithDisplayName(name string) (osContext, error) {
	return newX11Context(name)
}

func newOSContextFromXlibDisplay(d uintptr) (osContext, error) {
	return newX11ContextFromDisplay(xlib.Display(d))
}
