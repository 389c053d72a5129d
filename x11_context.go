//go:build linux || freebsd

package windc

import (
	"time"

	"github.com/lunarsen/windc/xlib"
)

// x11Context owns the display connection and everything hanging off
// it: the atom table, the probed extensions, the input method, the two
// context-wide cursors, the live window table, and the pending-event
// queue.
type x11Context struct {
	display     xlib.Display
	ownsDisplay bool
	screen      int32
	root        xlib.Window

	atoms *atomTable

	glx        *glxExt
	glxErr     error
	xrender    *xrenderExt
	xrenderErr error
	xi         *xiExt
	xiErr      error

	xim xlib.XIM

	invisibleCursor xlib.Cursor
	defaultCursor   xlib.Cursor

	windows map[xlib.Window]*x11Window
	queue   eventQueue
	tokens  deviceTokens

	// drainHook runs on every popped event, before it is handed to the
	// application. The Linux device layer uses it to finalize removal
	// of disconnected devices.
	drainHook func(Event)

	coreMouse    DeviceID
	coreKeyboard DeviceID

	// Auto-repeat scratch: the last raw key press seen, and which
	// keycodes are currently held down.
	lastRawKeyDevice int32
	lastRawKeyTime   xlib.Time
	lastRawKeyCode   uint32
	pressedKeys      map[Keycode]xlib.Time

	// Double-click scratch.
	lastClickButton MouseButton
	lastClickTime   xlib.Time
	lastClickPos    Vec2F

	lastMousePos Vec2F
}

func newX11Context(displayName string) (*x11Context, error) {
	if err := xlib.Load(); err != nil {
		return nil, Unsupported(err.Error())
	}
	var nameB *byte
	if displayName != "" {
		nameB = xlib.CString(displayName)
	}
	d := xlib.XOpenDisplay(nameB)
	if d == 0 {
		return nil, Failedf("XOpenDisplay(%q) failed", displayName)
	}
	return buildX11Context(d, true)
}

// newX11ContextFromDisplay takes ownership of an externally opened
// display. The caller must not close it.
func newX11ContextFromDisplay(d xlib.Display) (*x11Context, error) {
	if d == 0 {
		return nil, InvalidArgument("nil display")
	}
	if err := xlib.Load(); err != nil {
		return nil, Unsupported(err.Error())
	}
	return buildX11Context(d, true)
}

func buildX11Context(d xlib.Display, ownsDisplay bool) (*x11Context, error) {
	c := &x11Context{
		display:     d,
		ownsDisplay: ownsDisplay,
		screen:      xlib.XDefaultScreen(d),
		root:        xlib.XDefaultRootWindow(d),
		windows:     make(map[xlib.Window]*x11Window),
		pressedKeys: make(map[Keycode]xlib.Time),
	}
	atoms, err := preloadAtoms(d)
	if err != nil {
		xlib.XCloseDisplay(d)
		return nil, err
	}
	c.atoms = atoms

	c.glx, c.glxErr = probeGLX(c)
	c.xrender, c.xrenderErr = probeXRender(c)
	c.xi, c.xiErr = probeXI(c)
	if c.glxErr != nil {
		logger.Warn("GLX unavailable", "err", c.glxErr)
	}
	if c.xrenderErr != nil {
		logger.Warn("XRender unavailable", "err", c.xrenderErr)
	}
	if c.xiErr != nil {
		logger.Warn("XInput2 unavailable", "err", c.xiErr)
	}

	c.xim = xlib.XOpenIM(d, 0, 0, 0)
	if c.xim == 0 {
		logger.Warn("XOpenIM failed; text input events will not fire")
	}

	c.invisibleCursor = createInvisibleCursor(c)
	c.defaultCursor = xlib.XCreateFontCursor(d, xlib.XCLeftPtr)

	c.coreMouse = DeviceID{Backend: DeviceBackendX11, Token: c.tokens.nextToken(), Native: 2}
	c.coreKeyboard = DeviceID{Backend: DeviceBackendX11, Token: c.tokens.nextToken(), Native: 3}
	c.queue.push(MouseConnectedEvent{Mouse: c.coreMouse})
	c.queue.push(KeyboardConnectedEvent{Keyboard: c.coreKeyboard})
	return c, nil
}

// createInvisibleCursor builds a 1x1 fully transparent pixmap cursor.
func createInvisibleCursor(c *x11Context) xlib.Cursor {
	data := [8]byte{}
	pixmap := xlib.XCreateBitmapFromData(c.display, xlib.XID(c.root), &data[0], 8, 8)
	if pixmap == 0 {
		return 0
	}
	defer xlib.XFreePixmap(c.display, pixmap)
	var black xlib.Color
	return xlib.XCreatePixmapCursor(c.display, pixmap, pixmap, &black, &black, 0, 0)
}

// Destruction order matters: flush, free the context-wide cursors,
// close the input method, close the display.
func (c *x11Context) close() error {
	xlib.XSync(c.display, 0)
	if c.invisibleCursor != 0 {
		xlib.XFreeCursor(c.display, c.invisibleCursor)
	}
	if c.defaultCursor != 0 {
		xlib.XFreeCursor(c.display, c.defaultCursor)
	}
	if c.xim != 0 {
		xlib.XCloseIM(c.xim)
	}
	if c.ownsDisplay {
		xlib.XCloseDisplay(c.display)
	}
	c.display = 0
	return nil
}

func (c *x11Context) popEvent() Event {
	e, ok := c.queue.pop()
	if !ok {
		return nil
	}
	if c.drainHook != nil {
		c.drainHook(e)
	}
	return e
}

func (c *x11Context) pollNextEvent() Event {
	if e := c.popEvent(); e != nil {
		return e
	}
	c.pumpX()
	return c.popEvent()
}

func (c *x11Context) nextEvent(timeout Timeout) Event {
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

// pumpX drains the X connection, translating each native event.
func (c *x11Context) pumpX() {
	for xlib.XPending(c.display) > 0 {
		var ev xlib.XEvent
		xlib.XNextEvent(c.display, &ev)
		// Give the input method first pick, so dead keys and compose
		// sequences work.
		if xlib.XFilterEvent(&ev, 0) != 0 {
			continue
		}
		c.translateEvent(&ev)
	}
}

func (c *x11Context) untrapMouse() error {
	xlib.XUngrabPointer(c.display, xlib.CurrentTime)
	xlib.XFlush(c.display)
	return nil
}

// x_flush is a convenience used by window operations.
func (c *x11Context) flush() {
	xlib.XFlush(c.display)
}

func (c *x11Context) sync() {
	xlib.XSync(c.display, 0)
}

// Desktops enumeration via the EWMH root window properties.

func (c *x11Context) currentDesktop() (int, error) {
	a, err := c.atom("_NET_CURRENT_DESKTOP")
	if err != nil {
		return 0, err
	}
	pd, err := c.getPropCards(c.root, a, xlib.XACardinal, 0, 1)
	if err != nil {
		return 0, err
	}
	if len(pd.data) == 0 {
		return 0, Failed("_NET_CURRENT_DESKTOP is empty")
	}
	return int(pd.data[0]), nil
}

func (c *x11Context) desktops() ([]DesktopInfo, error) {
	numAtom, err := c.atom("_NET_NUMBER_OF_DESKTOPS")
	if err != nil {
		return nil, err
	}
	pd, err := c.getPropCards(c.root, numAtom, xlib.XACardinal, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(pd.data) == 0 {
		return nil, Failed("_NET_NUMBER_OF_DESKTOPS is empty")
	}
	n := int(pd.data[0])
	infos := make([]DesktopInfo, n)

	// Work areas: 4 cardinals per desktop.
	if waAtom, err := c.atom("_NET_WORKAREA"); err == nil {
		if wa, err := c.getPropCards(c.root, waAtom, xlib.XACardinal, 0, int64(4*n)); err == nil {
			for i := 0; i < n && (i+1)*4 <= len(wa.data); i++ {
				infos[i].WorkArea = Rect{
					X: int32(wa.data[i*4+0]),
					Y: int32(wa.data[i*4+1]),
					W: uint32(wa.data[i*4+2]),
					H: uint32(wa.data[i*4+3]),
				}
			}
		}
	}

	// Names: NUL-separated UTF-8 list, possibly shorter than n.
	utf8Atom, err := c.atom("UTF8_STRING")
	if err == nil {
		if namesAtom, err := c.atom("_NET_DESKTOP_NAMES"); err == nil {
			if nd, err := c.getPropBytes(c.root, namesAtom, utf8Atom, 0, 4096); err == nil {
				i := 0
				start := 0
				for pos, b := range nd.data {
					if b != 0 {
						continue
					}
					if i < n {
						infos[i].Name = string(nd.data[start:pos])
					}
					i++
					start = pos + 1
				}
			}
		}
	}
	return infos, nil
}

func (c *x11Context) bestCursorSize(hint Extent2) (Extent2, error) {
	var w, h uint32
	if xlib.XQueryBestCursor(c.display, xlib.XID(c.root), hint.W, hint.H, &w, &h) == 0 {
		return Extent2{}, Failed("XQueryBestCursor failed")
	}
	return Extent2{w, h}, nil
}

// Core pointer and keyboard are the only devices the plain X11 backend
// reports; the Linux platform context layers udev controllers on top.

func (c *x11Context) controllers() ([]DeviceID, error) {
	return nil, nil
}

func (c *x11Context) hidInfo(id DeviceID) (*HidInfo, error) {
	switch id {
	case c.coreMouse:
		return &HidInfo{
			Name:  Known("X11 core pointer"),
			Mouse: &MouseInfo{},
		}, nil
	case c.coreKeyboard:
		return &HidInfo{
			Name:     Known("X11 core keyboard"),
			Keyboard: &KeyboardInfo{},
		}, nil
	}
	return nil, errDeviceDisconnected(nil)
}

func (c *x11Context) controllerState(id DeviceID) (*ControllerState, error) {
	return nil, errDeviceNotSupported("no controller backend on this platform")
}

func (c *x11Context) controllerButtonState(id DeviceID, b ControllerButton) (ButtonState, error) {
	return ButtonUp, errDeviceNotSupported("no controller backend on this platform")
}

func (c *x11Context) controllerAxisState(id DeviceID, a ControllerAxis) (float64, error) {
	return 0, errDeviceNotSupported("no controller backend on this platform")
}

func (c *x11Context) controllerSetVibration(id DeviceID, v *VibrationState) error {
	return errDeviceNotSupported("no controller backend on this platform")
}
