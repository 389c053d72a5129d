package windc

// DesktopInfo describes one virtual desktop.
type DesktopInfo struct {
	Name     string
	WorkArea Rect
}

// Context is the process's connection to the display server plus the
// device tables hanging off it. It is not safe for concurrent use; run
// a single event loop per Context.
type Context struct {
	os osContext
}

// NewContext connects to the default display server.
func NewContext() (*Context, error) {
	os, err := newOSContext()
	if err != nil {
		return nil, err
	}
	return &Context{os: os}, nil
}

// NewContextFromX11DisplayName connects to a named X11 display, e.g.
// ":1". Returns Unsupported on non-X11 platforms.
func NewContextFromX11DisplayName(name string) (*Context, error) {
	os, err := newOSContextWithDisplayName(name)
	if err != nil {
		return nil, err
	}
	return &Context{os: os}, nil
}

// NewContextFromXlibDisplay adopts an already opened Xlib Display
// pointer. The Context takes ownership and closes it on Close; the
// caller must not use it afterwards. Returns Unsupported on non-X11
// platforms.
func NewContextFromXlibDisplay(d uintptr) (*Context, error) {
	os, err := newOSContextFromXlibDisplay(d)
	if err != nil {
		return nil, err
	}
	return &Context{os: os}, nil
}

// Close flushes and tears down the display connection. All Windows, GL
// contexts and Cursors from this Context must already be destroyed.
func (c *Context) Close() error { return c.os.close() }

// PollNextEvent pumps the platform and pops one portable event, or nil
// when the queue is empty after pumping.
func (c *Context) PollNextEvent() Event { return c.os.pollNextEvent() }

// NextEvent waits up to timeout for an event. Nil means the timeout
// elapsed.
func (c *Context) NextEvent(timeout Timeout) Event { return c.os.nextEvent(timeout) }

// CreateWindow creates a window; it starts hidden.
func (c *Context) CreateWindow(settings *WindowSettings) (*Window, error) {
	os, err := c.os.createWindow(settings)
	if err != nil {
		return nil, err
	}
	return &Window{os: os}, nil
}

// CreateWindowAndShow is CreateWindow followed by Show.
func (c *Context) CreateWindowAndShow(settings *WindowSettings) (*Window, error) {
	w, err := c.CreateWindow(settings)
	if err != nil {
		return nil, err
	}
	if err := w.Show(); err != nil {
		w.Destroy()
		return nil, err
	}
	return w, nil
}

// ChooseGLPixelFormat picks the best matching framebuffer configuration
// for the settings.
func (c *Context) ChooseGLPixelFormat(settings *GLPixelFormatSettings) (*GLPixelFormat, error) {
	os, err := c.os.chooseGLPixelFormat(settings)
	if err != nil {
		return nil, err
	}
	return &GLPixelFormat{os: os}, nil
}

// CreateGLContext creates an OpenGL context over a chosen pixel format.
func (c *Context) CreateGLContext(pf *GLPixelFormat, settings *GLContextSettings) (*GLContext, error) {
	os, err := c.os.createGLContext(pf.os, settings)
	if err != nil {
		return nil, err
	}
	return &GLContext{os: os}, nil
}

// CreateSystemCursor builds a standard cursor shape.
func (c *Context) CreateSystemCursor(shape SystemCursor) (*Cursor, error) {
	os, err := c.os.createSystemCursor(shape)
	if err != nil {
		return nil, err
	}
	return &Cursor{os: os}, nil
}

// CreateRGBACursor builds a cursor from RGBA pixels.
func (c *Context) CreateRGBACursor(frame *CursorFrame) (*Cursor, error) {
	os, err := c.os.createRGBACursor(frame)
	if err != nil {
		return nil, err
	}
	return &Cursor{os: os}, nil
}

// CreateAnimatedRGBACursor builds an animated cursor; each frame's
// DelayMS is honored.
func (c *Context) CreateAnimatedRGBACursor(frames []CursorFrame) (*Cursor, error) {
	os, err := c.os.createAnimatedCursor(frames)
	if err != nil {
		return nil, err
	}
	return &Cursor{os: os}, nil
}

// BestCursorSize asks the server which cursor size closest to hint it
// can display.
func (c *Context) BestCursorSize(hint Extent2) (Extent2, error) {
	return c.os.bestCursorSize(hint)
}

// Desktops enumerates the virtual desktops, when the WM reports them.
func (c *Context) Desktops() ([]DesktopInfo, error) { return c.os.desktops() }

// CurrentDesktop returns the active virtual desktop index.
func (c *Context) CurrentDesktop() (int, error) { return c.os.currentDesktop() }

// UntrapMouse releases a pointer grab taken by Window.TrapMouse.
func (c *Context) UntrapMouse() error { return c.os.untrapMouse() }

// Controllers lists the currently connected game controllers.
func (c *Context) Controllers() ([]DeviceID, error) { return c.os.controllers() }

// HidInfo returns the cached device record for id.
func (c *Context) HidInfo(id DeviceID) (*HidInfo, error) { return c.os.hidInfo(id) }

// ControllerState live-reads a full controller snapshot.
func (c *Context) ControllerState(id DeviceID) (*ControllerState, error) {
	return c.os.controllerState(id)
}

// ControllerButtonState live-reads one button.
func (c *Context) ControllerButtonState(id DeviceID, b ControllerButton) (ButtonState, error) {
	return c.os.controllerButtonState(id, b)
}

// ControllerAxisState live-reads one axis.
func (c *Context) ControllerAxisState(id DeviceID, a ControllerAxis) (float64, error) {
	return c.os.controllerAxisState(id, a)
}

// ControllerSetVibration uploads and plays (or stops) a rumble effect.
func (c *Context) ControllerSetVibration(id DeviceID, v *VibrationState) error {
	return c.os.controllerSetVibration(id, v)
}

// osContext is what each platform backend implements.
type osContext interface {
	close() error
	pollNextEvent() Event
	nextEvent(timeout Timeout) Event
	createWindow(settings *WindowSettings) (osWindow, error)
	chooseGLPixelFormat(settings *GLPixelFormatSettings) (osGLPixelFormat, error)
	createGLContext(pf osGLPixelFormat, settings *GLContextSettings) (osGLContext, error)
	createSystemCursor(shape SystemCursor) (osCursor, error)
	createRGBACursor(frame *CursorFrame) (osCursor, error)
	createAnimatedCursor(frames []CursorFrame) (osCursor, error)
	bestCursorSize(hint Extent2) (Extent2, error)
	desktops() ([]DesktopInfo, error)
	currentDesktop() (int, error)
	untrapMouse() error
	controllers() ([]DeviceID, error)
	hidInfo(id DeviceID) (*HidInfo, error)
	controllerState(id DeviceID) (*ControllerState, error)
	controllerButtonState(id DeviceID, b ControllerButton) (ButtonState, error)
	controllerAxisState(id DeviceID, a ControllerAxis) (float64, error)
	controllerSetVibration(id DeviceID, v *VibrationState) error
}

type osWindow interface {
	handle() WindowHandle
	destroy() error
	show() error
	hide() error
	raise() error
	lower() error
	setTitle(title string) error
	title() (string, error)
	setIcon(size Extent2, pixels []RGBA) error
	resetIcon() error
	setMaximized(max, horz, vert bool) error
	isMaximized() (bool, error)
	minimize() error
	unminimize() error
	isMinimized() (bool, error)
	isVisible() (bool, error)
	setFullscreen(fs bool) error
	isFullscreen() (bool, error)
	position() (Vec2, error)
	size() (Extent2, error)
	positionAndSize() (Rect, error)
	canvasSize() (Extent2, error)
	setPosition(p Vec2) error
	setSize(s Extent2) error
	setPositionAndSize(r Rect) error
	setMinSize(s Extent2) error
	setMaxSize(s Extent2) error
	setResizable(resizable bool) error
	isResizable() (bool, error)
	setOpacity(alpha float64) error
	setStyleHint(hint *WindowStyleHint) error
	demandAttention() error
	trapMouse() error
	setDesktop(i int) error
	setCursor(c osCursor) error
	cursor() (osCursor, error)
	setCursorVisible(visible bool) error
	makeGLCurrent(ctx osGLContext) error
	presentGL() error
	setGLSwapInterval(interval GLSwapInterval) error
}

type osGLPixelFormat interface {
	settings() *GLPixelFormatSettings
}

type osGLContext interface {
	procAddress(name string) uintptr
	destroy() error
}

type osCursor interface {
	destroy() error
}

// deviceTokens allocates process-visible device tokens. The counter
// wraps; uniqueness holds for any realistic connect/disconnect churn.
type deviceTokens struct {
	next uint32
}

func (g *deviceTokens) nextToken() DeviceToken {
	t := g.next
	g.next++
	return DeviceToken(t)
}
