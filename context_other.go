//go:build !linux && !freebsd && !windows

package windc

func newOSContext() (osContext, error) {
	return nil, Unsupported("no display backend for this platform")
}

func newOSContextWithDisplayName(string) (osContext, error) {
	return nil, Unsupported("X11 display names are only meaningful on X11 platforms")
}

func newOSContextFromXlibDisplay(uintptr) (osContext, error) {
	return nil, Unsupported("Xlib displays are only meaningful on X11 platforms")
}
