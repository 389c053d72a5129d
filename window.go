package windc

// WindowModeKind selects the initial presentation of a window.
type WindowModeKind uint8

const (
	WindowModeFixedSize WindowModeKind = iota
	WindowModeMaximized
	WindowModeFullScreen
)

// WindowMode is the initial presentation plus the size it applies to.
type WindowMode struct {
	Kind WindowModeKind
	Size Extent2
}

// WindowModeOfSize builds a fixed-size mode.
func WindowModeOfSize(w, h uint32) WindowMode {
	return WindowMode{Kind: WindowModeFixedSize, Size: Extent2{w, h}}
}

// WindowSettings configures window creation.
type WindowSettings struct {
	Mode WindowMode
	// OpenGL, when non-nil, makes the window GL-capable using the given
	// pixel format's visual, depth and colormap.
	OpenGL    *GLPixelFormat
	Resizable bool
	// AllowHighDPI is backend-defined; size queries always report the
	// unit used at creation time.
	AllowHighDPI bool
	FullyOpaque  bool
	Title        string
}

// DefaultWindowSettings is a resizable 800x600 window.
func DefaultWindowSettings() WindowSettings {
	return WindowSettings{
		Mode:        WindowModeOfSize(800, 600),
		Resizable:   true,
		FullyOpaque: true,
	}
}

// TitleBarFeatures toggles the title bar's buttons.
type TitleBarFeatures struct {
	Minimize bool
	Maximize bool
	Close    bool
}

// WindowStyleHint requests decoration changes. A nil TitleBar removes
// the title bar; Borders false removes the frame.
type WindowStyleHint struct {
	TitleBar *TitleBarFeatures
	Borders  bool
}

// SystemCursor names a standard cursor shape.
type SystemCursor int

const (
	SystemCursorArrow SystemCursor = iota
	SystemCursorHand
	SystemCursorIbeam
	SystemCursorCrosshair
	SystemCursorWait
	SystemCursorQuestion
	SystemCursorMove
	SystemCursorResizeNS
	SystemCursorResizeWE
	SystemCursorResizeNWSE
	SystemCursorResizeNESW
	SystemCursorForbidden
)

// CursorFrame is one frame of a (possibly animated) RGBA cursor.
type CursorFrame struct {
	Size    Extent2
	Hotspot Vec2
	Pixels  []RGBA
	// DelayMS only matters when the frame is part of an animation.
	DelayMS uint32
}

// Cursor is a native cursor handle, possibly animated.
type Cursor struct {
	os osCursor
}

// Destroy frees the native cursor. Windows still referencing it fall
// back to the default cursor.
func (c *Cursor) Destroy() error { return c.os.destroy() }

// Window hosts pixels and receives events. Create one through a
// Context; it keeps the Context alive until destroyed.
type Window struct {
	os osWindow
}

// Handle returns the native window identifier.
func (w *Window) Handle() WindowHandle { return w.os.handle() }

// Destroy releases the native window and its input context.
func (w *Window) Destroy() error { return w.os.destroy() }

func (w *Window) Show() error  { return w.os.show() }
func (w *Window) Hide() error  { return w.os.hide() }
func (w *Window) Raise() error { return w.os.raise() }
func (w *Window) Lower() error { return w.os.lower() }

func (w *Window) SetTitle(title string) error { return w.os.setTitle(title) }
func (w *Window) Title() (string, error)      { return w.os.title() }

// SetIcon installs an RGBA icon; pixels are size.W*size.H, row-major.
func (w *Window) SetIcon(size Extent2, pixels []RGBA) error { return w.os.setIcon(size, pixels) }

// ResetIcon reverts to the window manager's default icon.
func (w *Window) ResetIcon() error { return w.os.resetIcon() }

func (w *Window) Maximize() error       { return w.os.setMaximized(true, true, true) }
func (w *Window) Unmaximize() error     { return w.os.setMaximized(false, true, true) }
func (w *Window) MaximizeWidth() error  { return w.os.setMaximized(true, true, false) }
func (w *Window) MaximizeHeight() error { return w.os.setMaximized(true, false, true) }
func (w *Window) UnmaximizeWidth() error  { return w.os.setMaximized(false, true, false) }
func (w *Window) UnmaximizeHeight() error { return w.os.setMaximized(false, false, true) }

func (w *Window) ToggleMaximize() error {
	max, err := w.os.isMaximized()
	if err != nil {
		return err
	}
	return w.os.setMaximized(!max, true, true)
}

func (w *Window) Minimize() error   { return w.os.minimize() }
func (w *Window) Unminimize() error { return w.os.unminimize() }

func (w *Window) EnterFullscreen() error { return w.os.setFullscreen(true) }
func (w *Window) LeaveFullscreen() error { return w.os.setFullscreen(false) }

func (w *Window) ToggleFullscreen() error {
	fs, err := w.os.isFullscreen()
	if err != nil {
		return err
	}
	return w.os.setFullscreen(!fs)
}

func (w *Window) IsMaximized() (bool, error)  { return w.os.isMaximized() }
func (w *Window) IsMinimized() (bool, error)  { return w.os.isMinimized() }
func (w *Window) IsVisible() (bool, error)    { return w.os.isVisible() }
func (w *Window) IsFullscreen() (bool, error) { return w.os.isFullscreen() }

func (w *Window) Position() (Vec2, error)    { return w.os.position() }
func (w *Window) Size() (Extent2, error)     { return w.os.size() }
func (w *Window) PositionAndSize() (Rect, error) { return w.os.positionAndSize() }

// CanvasSize is the drawable area, excluding decorations.
func (w *Window) CanvasSize() (Extent2, error) { return w.os.canvasSize() }

func (w *Window) SetPosition(p Vec2) error    { return w.os.setPosition(p) }
func (w *Window) SetSize(s Extent2) error     { return w.os.setSize(s) }
func (w *Window) SetPositionAndSize(r Rect) error { return w.os.setPositionAndSize(r) }

func (w *Window) SetMinSize(s Extent2) error { return w.os.setMinSize(s) }
func (w *Window) SetMaxSize(s Extent2) error { return w.os.setMaxSize(s) }

// SetResizable(false) pins the current size by making min == max in the
// WM size hints.
func (w *Window) SetResizable(resizable bool) error { return w.os.setResizable(resizable) }
func (w *Window) IsResizable() (bool, error)        { return w.os.isResizable() }

// SetOpacity sets whole-window opacity; alpha is clamped to [0, 1].
func (w *Window) SetOpacity(alpha float64) error { return w.os.setOpacity(clamp01(alpha)) }

// SetStyleHint changes decorations through the WM's hint protocol.
func (w *Window) SetStyleHint(hint *WindowStyleHint) error { return w.os.setStyleHint(hint) }

// DemandAttention asks the WM to signal urgency to the user.
func (w *Window) DemandAttention() error { return w.os.demandAttention() }

// TrapMouse confines the pointer to this window's bounds. Release it
// with Context.UntrapMouse.
func (w *Window) TrapMouse() error { return w.os.trapMouse() }

// SetDesktop moves the window to virtual desktop i.
func (w *Window) SetDesktop(i int) error { return w.os.setDesktop(i) }

// SetCursor assigns a user cursor; nil restores the default.
func (w *Window) SetCursor(c *Cursor) error {
	if c == nil {
		return w.os.setCursor(nil)
	}
	return w.os.setCursor(c.os)
}

// Cursor returns the window's cursor. X11 cannot read a cursor back, so
// backends may return a fresh default cursor and log a warning.
func (w *Window) Cursor() (*Cursor, error) {
	oc, err := w.os.cursor()
	if err != nil {
		return nil, err
	}
	return &Cursor{os: oc}, nil
}

// SetCursorVisible hides or shows the cursor while it is over this
// window.
func (w *Window) SetCursorVisible(visible bool) error { return w.os.setCursorVisible(visible) }

// MakeGLContextCurrent binds ctx to this window on the calling thread;
// nil unbinds.
func (w *Window) MakeGLContextCurrent(ctx *GLContext) error {
	if ctx == nil {
		return w.os.makeGLCurrent(nil)
	}
	return w.os.makeGLCurrent(ctx.os)
}

// PresentGL swaps buffers, honoring any FPS limit installed via
// SetGLSwapInterval.
func (w *Window) PresentGL() error { return w.os.presentGL() }

// SetGLSwapInterval configures presentation pacing for this window.
func (w *Window) SetGLSwapInterval(interval GLSwapInterval) error {
	return w.os.setGLSwapInterval(interval)
}
