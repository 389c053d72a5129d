//go:build windows

package windc

import (
	"fmt"
	"os"
	"syscall"
	"time"
	"unsafe"
)

// win32Active is the context the shared window procedure dispatches to.
// Win32 window classes are process-global, so one live Context per
// process is the supported shape on this platform.
var win32Active *win32Context

var wndProcCallback = syscall.NewCallback(win32WndProc)

type win32Context struct {
	instance  hinstance
	className *uint16

	queue  eventQueue
	tokens deviceTokens

	coreMouse    DeviceID
	coreKeyboard DeviceID

	windows map[hwnd]*win32Window
	// creating holds the window being built while CreateWindowExW is
	// still inside the window procedure, before it lands in windows.
	creating *win32Window

	wgl    wglCaps
	wglErr error
}

func newOSContext() (osContext, error) {
	return newWin32Context()
}

func newOSContextWithDisplayName(name string) (osContext, error) {
	return nil, Unsupported("X11 display names are only meaningful on X11 platforms")
}

func newOSContextFromXlibDisplay(uintptr) (osContext, error) {
	return nil, Unsupported("Xlib displays are only meaningful on X11 platforms")
}

func newWin32Context() (*win32Context, error) {
	if win32Active != nil {
		return nil, Failed("a Context is already open in this process")
	}

	c := &win32Context{
		instance: moduleHandle(),
		windows:  make(map[hwnd]*win32Window),
	}

	name := fmt.Sprintf("windc-%d", os.Getpid())
	var err error
	c.className, err = syscall.UTF16PtrFromString(name)
	if err != nil {
		return nil, InvalidArgument("bad class name")
	}

	wc := wndClassEx{
		cbSize:        uint32(unsafe.Sizeof(wndClassEx{})),
		style:         csOwnDC | csDblClks,
		lpfnWndProc:   wndProcCallback,
		hInstance:     c.instance,
		lpszClassName: c.className,
	}
	clearLastError()
	atom, _, _ := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc)))
	if atom == 0 {
		return nil, winFailed("RegisterClassExW")
	}

	win32Active = c

	c.coreMouse = DeviceID{Backend: DeviceBackendWin32, Token: c.tokens.nextToken(), Native: 0}
	c.coreKeyboard = DeviceID{Backend: DeviceBackendWin32, Token: c.tokens.nextToken(), Native: 1}
	c.queue.push(MouseConnectedEvent{Mouse: c.coreMouse})
	c.queue.push(KeyboardConnectedEvent{Keyboard: c.coreKeyboard})

	c.bootstrapWGL()
	return c, nil
}

func (c *win32Context) close() error {
	if len(c.windows) > 0 {
		return Failed("windows still open")
	}
	win32Active = nil
	return nil
}

// pumpMessages drains the thread message queue through the window
// procedure, which translates into the portable queue.
func (c *win32Context) pumpMessages() {
	var m winMsg
	for {
		r, _, _ := procPeekMessage.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
		if r == 0 {
			return
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
}

func (c *win32Context) pollNextEvent() Event {
	if e, ok := c.queue.pop(); ok {
		return e
	}
	c.pumpMessages()
	if e, ok := c.queue.pop(); ok {
		return e
	}
	return nil
}

func (c *win32Context) nextEvent(timeout Timeout) Event {
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

func (c *win32Context) messageInstant() EventInstant {
	t, _, _ := procGetMessageTime.Call()
	return instantFromMicros(InstantSourceWin32, int64(int32(t))*1000)
}

// win32WndProc is the class window procedure. It routes to the owning
// window's translator and falls back to DefWindowProcW.
func win32WndProc(h, message, wParam, lParam uintptr) uintptr {
	c := win32Active
	if c == nil {
		return defWindowProc(hwnd(h), uint32(message), wParam, lParam)
	}
	w, ok := c.windows[hwnd(h)]
	if !ok {
		if c.creating != nil {
			w = c.creating
			w.win = hwnd(h)
		} else {
			return defWindowProc(hwnd(h), uint32(message), wParam, lParam)
		}
	}
	return w.handleMessage(uint32(message), wParam, lParam)
}

func defWindowProc(h hwnd, message uint32, wParam, lParam uintptr) uintptr {
	r, _, _ := procDefWindowProc.Call(uintptr(h), uintptr(message), wParam, lParam)
	return r
}

func (c *win32Context) bestCursorSize(hint Extent2) (Extent2, error) {
	w, _, _ := procGetSystemMetrics.Call(smCxCursor)
	h, _, _ := procGetSystemMetrics.Call(smCyCursor)
	if w == 0 || h == 0 {
		return Extent2{}, Failed("GetSystemMetrics reported no cursor size")
	}
	return Extent2{uint32(w), uint32(h)}, nil
}

// The desktop window manager does not expose virtual desktop
// enumeration through plain Win32.

func (c *win32Context) desktops() ([]DesktopInfo, error) {
	return nil, Unsupported("virtual desktops are not exposed through Win32")
}

func (c *win32Context) currentDesktop() (int, error) {
	return 0, Unsupported("virtual desktops are not exposed through Win32")
}

func (c *win32Context) untrapMouse() error {
	clearLastError()
	if r, _, _ := procClipCursor.Call(0); r == 0 {
		return winFailed("ClipCursor")
	}
	for _, w := range c.windows {
		w.trapped = false
	}
	return nil
}

func (c *win32Context) controllers() ([]DeviceID, error) {
	return nil, nil
}

func (c *win32Context) hidInfo(id DeviceID) (*HidInfo, error) {
	switch id {
	case c.coreMouse:
		return &HidInfo{
			Name:  Known("Win32 system pointer"),
			Mouse: &MouseInfo{},
		}, nil
	case c.coreKeyboard:
		return &HidInfo{
			Name:     Known("Win32 system keyboard"),
			Keyboard: &KeyboardInfo{},
		}, nil
	}
	return nil, errDeviceDisconnected(nil)
}

func (c *win32Context) controllerState(id DeviceID) (*ControllerState, error) {
	return nil, errDeviceNotSupported("no controller backend on this platform")
}

func (c *win32Context) controllerButtonState(id DeviceID, b ControllerButton) (ButtonState, error) {
	return ButtonUp, errDeviceNotSupported("no controller backend on this platform")
}

func (c *win32Context) controllerAxisState(id DeviceID, a ControllerAxis) (float64, error) {
	return 0, errDeviceNotSupported("no controller backend on this platform")
}

func (c *win32Context) controllerSetVibration(id DeviceID, v *VibrationState) error {
	return errDeviceNotSupported("no controller backend on this platform")
}
