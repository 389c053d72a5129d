//go:build windows

package windc

import (
	"math"
	"syscall"
	"unsafe"
)

// opacityAlphaByte maps [0, 1] onto the layered-window alpha byte,
// rounding to the nearest step.
func opacityAlphaByte(alpha float64) byte {
	return byte(math.Round(alpha * 255))
}

type win32Window struct {
	ctx *win32Context
	win hwnd
	dc  hdc

	glpf       *win32GLPixelFormat
	currentCtx *win32GLContext
	fpsLimit   float64
	lastSwap   int64

	userCursor    *win32Cursor
	cursorVisible bool

	mouseInside bool
	trapped     bool

	minSize Extent2
	maxSize Extent2

	// selfChange marks geometry changes made through the API so the
	// window procedure can report ByUser correctly.
	selfChange int
	knownGeom  Rect

	stateMax bool
	stateMin bool

	firstShow   bool
	initialMode WindowModeKind

	fullscreen bool
	savedStyle uintptr
	savedRect  winRect

	icons [2]hicon

	pendingSurrogate uint16
}

func (c *win32Context) createWindow(settings *WindowSettings) (osWindow, error) {
	var pf *win32GLPixelFormat
	if settings.OpenGL != nil {
		p, ok := settings.OpenGL.os.(*win32GLPixelFormat)
		if !ok || p.ctx != c {
			return nil, InvalidArgument("pixel format belongs to another context")
		}
		pf = p
	}

	w := &win32Window{
		ctx:           c,
		glpf:          pf,
		cursorVisible: true,
		firstShow:     true,
		initialMode:   settings.Mode.Kind,
	}

	style := uintptr(wsCaption | wsSysMenu | wsMinimizeBox | wsClipSiblings | wsClipChildren)
	if settings.Resizable {
		style |= wsThickFrame | wsMaximizeBox
	}
	var exStyle uintptr
	if !settings.FullyOpaque {
		exStyle |= wsExLayered
	}

	outer := winRect{
		right:  int32(settings.Mode.Size.W),
		bottom: int32(settings.Mode.Size.H),
	}
	procAdjustWindowRectEx.Call(uintptr(unsafe.Pointer(&outer)), style, 0, exStyle)

	title, err := syscall.UTF16PtrFromString(settings.Title)
	if err != nil {
		return nil, InvalidArgument("title contains a NUL byte")
	}

	c.creating = w
	clearLastError()
	h, _, _ := procCreateWindowEx.Call(
		exStyle,
		uintptr(unsafe.Pointer(c.className)),
		uintptr(unsafe.Pointer(title)),
		style,
		cwUseDefault, cwUseDefault,
		uintptr(outer.right-outer.left), uintptr(outer.bottom-outer.top),
		0, 0, uintptr(c.instance), 0)
	c.creating = nil
	if h == 0 {
		return nil, winFailed("CreateWindowExW")
	}
	w.win = hwnd(h)

	dc, _, _ := procGetDC.Call(h)
	if dc == 0 {
		procDestroyWindow.Call(h)
		return nil, Failed("GetDC failed")
	}
	w.dc = hdc(dc)

	if pf != nil {
		if err := pf.applyTo(w.dc); err != nil {
			procReleaseDC.Call(h, dc)
			procDestroyWindow.Call(h)
			return nil, err
		}
	}

	if !settings.FullyOpaque {
		procSetLayeredWindowAttributes.Call(h, 0, 255, lwaAlpha)
	}

	w.knownGeom, _ = w.positionAndSize()
	c.windows[w.win] = w
	return w, nil
}

func (w *win32Window) handle() WindowHandle { return WindowHandle(uintptr(w.win)) }

func (w *win32Window) destroy() error {
	w.resetIcon()
	if w.dc != 0 {
		procReleaseDC.Call(uintptr(w.win), uintptr(w.dc))
		w.dc = 0
	}
	clearLastError()
	r, _, _ := procDestroyWindow.Call(uintptr(w.win))
	delete(w.ctx.windows, w.win)
	if r == 0 {
		return winFailed("DestroyWindow")
	}
	return nil
}

// programmatic runs f with geometry events attributed to the API, not
// the user. SetWindowPos and ShowWindow deliver their WM_WINDOWPOSCHANGED
// synchronously, so the flag is back down before queued input runs.
func (w *win32Window) programmatic(f func()) {
	w.selfChange++
	f()
	w.selfChange--
}

func (w *win32Window) show() error {
	cmd := uintptr(swShow)
	if w.firstShow {
		w.firstShow = false
		switch w.initialMode {
		case WindowModeMaximized:
			cmd = swMaximize
		case WindowModeFullScreen:
			if err := w.setFullscreen(true); err != nil {
				return err
			}
		}
	}
	procShowWindow.Call(uintptr(w.win), cmd)
	procSetFocus.Call(uintptr(w.win))
	return nil
}

func (w *win32Window) hide() error {
	procShowWindow.Call(uintptr(w.win), swHide)
	return nil
}

func (w *win32Window) raise() error {
	clearLastError()
	if r, _, _ := procBringWindowToTop.Call(uintptr(w.win)); r == 0 {
		return winFailed("BringWindowToTop")
	}
	return nil
}

func (w *win32Window) lower() error {
	clearLastError()
	r, _, _ := procSetWindowPos.Call(uintptr(w.win), hwndBottom, 0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoActivate)
	if r == 0 {
		return winFailed("SetWindowPos")
	}
	return nil
}

func (w *win32Window) setTitle(title string) error {
	p, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return InvalidArgument("title contains a NUL byte")
	}
	clearLastError()
	if r, _, _ := procSetWindowText.Call(uintptr(w.win), uintptr(unsafe.Pointer(p))); r == 0 {
		return winFailed("SetWindowTextW")
	}
	return nil
}

func (w *win32Window) title() (string, error) {
	n, _, _ := procGetWindowTextLen.Call(uintptr(w.win))
	if n == 0 {
		return "", nil
	}
	buf := make([]uint16, n+1)
	got, _, _ := procGetWindowText.Call(uintptr(w.win), uintptr(unsafe.Pointer(&buf[0])), n+1)
	return syscall.UTF16ToString(buf[:got]), nil
}

func (w *win32Window) setIcon(size Extent2, pixels []RGBA) error {
	if int(size.W)*int(size.H) > len(pixels) {
		return InvalidArgument("icon pixel buffer shorter than size")
	}
	icon, err := win32IconFromRGBA(size, pixels)
	if err != nil {
		return err
	}
	w.resetIcon()
	w.icons[iconSmall] = icon
	w.icons[iconBig] = icon
	procSendMessage.Call(uintptr(w.win), wmSetIcon, iconSmall, uintptr(icon))
	procSendMessage.Call(uintptr(w.win), wmSetIcon, iconBig, uintptr(icon))
	return nil
}

func (w *win32Window) resetIcon() error {
	procSendMessage.Call(uintptr(w.win), wmSetIcon, iconSmall, 0)
	procSendMessage.Call(uintptr(w.win), wmSetIcon, iconBig, 0)
	if w.icons[iconSmall] != 0 {
		procDestroyIcon.Call(uintptr(w.icons[iconSmall]))
	}
	w.icons[iconSmall] = 0
	w.icons[iconBig] = 0
	return nil
}

func win32IconFromRGBA(size Extent2, pixels []RGBA) (hicon, error) {
	wd, ht := int(size.W), int(size.H)
	bgra := make([]byte, wd*ht*4)
	for i, p := range pixels[:wd*ht] {
		bgra[i*4+0] = p.B
		bgra[i*4+1] = p.G
		bgra[i*4+2] = p.R
		bgra[i*4+3] = p.A
	}
	mask := make([]byte, ((wd+15)/16*2)*ht)

	clearLastError()
	color, _, _ := procCreateBitmap.Call(uintptr(wd), uintptr(ht), 1, 32, uintptr(unsafe.Pointer(&bgra[0])))
	if color == 0 {
		return 0, winFailed("CreateBitmap")
	}
	defer procDeleteObject.Call(color)
	mono, _, _ := procCreateBitmap.Call(uintptr(wd), uintptr(ht), 1, 1, uintptr(unsafe.Pointer(&mask[0])))
	if mono == 0 {
		return 0, winFailed("CreateBitmap")
	}
	defer procDeleteObject.Call(mono)

	info := iconInfo{
		fIcon:    1,
		hbmMask:  hbitmap(mono),
		hbmColor: hbitmap(color),
	}
	icon, _, _ := procCreateIconIndirect.Call(uintptr(unsafe.Pointer(&info)))
	if icon == 0 {
		return 0, winFailed("CreateIconIndirect")
	}
	return hicon(icon), nil
}

func (w *win32Window) style() uintptr {
	s, _, _ := procGetWindowLongPtr.Call(uintptr(w.win), gwlStyle)
	return s
}

func (w *win32Window) setStyle(s uintptr) {
	clearLastError()
	procSetWindowLongPtr.Call(uintptr(w.win), gwlStyle, s)
	procSetWindowPos.Call(uintptr(w.win), 0, 0, 0, 0, 0,
		swpNoMove|swpNoSize|swpNoZOrder|swpNoActivate|swpFrameChanged)
}

func (w *win32Window) workArea() (winRect, error) {
	mon, _, _ := procMonitorFromWindow.Call(uintptr(w.win), monitorDefaultToNearest)
	if mon == 0 {
		return winRect{}, Failed("MonitorFromWindow failed")
	}
	mi := monitorInfo{cbSize: uint32(unsafe.Sizeof(monitorInfo{}))}
	if r, _, _ := procGetMonitorInfo.Call(mon, uintptr(unsafe.Pointer(&mi))); r == 0 {
		return winRect{}, Failed("GetMonitorInfoW failed")
	}
	return mi.rcWork, nil
}

func (w *win32Window) setMaximized(max, horz, vert bool) error {
	if horz && vert {
		cmd := uintptr(swRestore)
		if max {
			cmd = swMaximize
		}
		w.programmatic(func() {
			procShowWindow.Call(uintptr(w.win), cmd)
		})
		return nil
	}

	// Partial maximize has no native verb; size one dimension to the
	// monitor work area instead.
	work, err := w.workArea()
	if err != nil {
		return err
	}
	var outer winRect
	procGetWindowRect.Call(uintptr(w.win), uintptr(unsafe.Pointer(&outer)))
	if !max {
		return nil
	}
	if horz {
		outer.left, outer.right = work.left, work.right
	}
	if vert {
		outer.top, outer.bottom = work.top, work.bottom
	}
	w.programmatic(func() {
		procSetWindowPos.Call(uintptr(w.win), 0,
			uintptr(outer.left), uintptr(outer.top),
			uintptr(outer.right-outer.left), uintptr(outer.bottom-outer.top),
			swpNoZOrder|swpNoActivate)
	})
	return nil
}

func (w *win32Window) isMaximized() (bool, error) {
	r, _, _ := procIsZoomed.Call(uintptr(w.win))
	return r != 0, nil
}

func (w *win32Window) minimize() error {
	procShowWindow.Call(uintptr(w.win), swMinimize)
	return nil
}

func (w *win32Window) unminimize() error {
	procShowWindow.Call(uintptr(w.win), swRestore)
	return nil
}

func (w *win32Window) isMinimized() (bool, error) {
	r, _, _ := procIsIconic.Call(uintptr(w.win))
	return r != 0, nil
}

func (w *win32Window) isVisible() (bool, error) {
	r, _, _ := procIsWindowVisible.Call(uintptr(w.win))
	return r != 0, nil
}

func (w *win32Window) setFullscreen(fs bool) error {
	if fs == w.fullscreen {
		return nil
	}
	if fs {
		mon, _, _ := procMonitorFromWindow.Call(uintptr(w.win), monitorDefaultToNearest)
		if mon == 0 {
			return Failed("MonitorFromWindow failed")
		}
		mi := monitorInfo{cbSize: uint32(unsafe.Sizeof(monitorInfo{}))}
		if r, _, _ := procGetMonitorInfo.Call(mon, uintptr(unsafe.Pointer(&mi))); r == 0 {
			return Failed("GetMonitorInfoW failed")
		}
		w.savedStyle = w.style()
		procGetWindowRect.Call(uintptr(w.win), uintptr(unsafe.Pointer(&w.savedRect)))
		w.programmatic(func() {
			procSetWindowLongPtr.Call(uintptr(w.win), gwlStyle,
				wsPopup|wsClipSiblings|wsClipChildren)
			m := mi.rcMonitor
			procSetWindowPos.Call(uintptr(w.win), hwndTop,
				uintptr(m.left), uintptr(m.top),
				uintptr(m.right-m.left), uintptr(m.bottom-m.top),
				swpFrameChanged|swpShowWindow)
		})
		w.fullscreen = true
		return nil
	}
	w.programmatic(func() {
		procSetWindowLongPtr.Call(uintptr(w.win), gwlStyle, w.savedStyle)
		r := w.savedRect
		procSetWindowPos.Call(uintptr(w.win), 0,
			uintptr(r.left), uintptr(r.top),
			uintptr(r.right-r.left), uintptr(r.bottom-r.top),
			swpNoZOrder|swpFrameChanged)
	})
	w.fullscreen = false
	return nil
}

func (w *win32Window) isFullscreen() (bool, error) {
	return w.fullscreen, nil
}

// Sizes and positions are in client-area units, like every backend.

func (w *win32Window) positionAndSize() (Rect, error) {
	var client winRect
	if r, _, _ := procGetClientRect.Call(uintptr(w.win), uintptr(unsafe.Pointer(&client))); r == 0 {
		return Rect{}, Failed("GetClientRect failed")
	}
	origin := winPoint{}
	if r, _, _ := procClientToScreen.Call(uintptr(w.win), uintptr(unsafe.Pointer(&origin))); r == 0 {
		return Rect{}, Failed("ClientToScreen failed")
	}
	return Rect{
		X: origin.x, Y: origin.y,
		W: uint32(client.right), H: uint32(client.bottom),
	}, nil
}

func (w *win32Window) position() (Vec2, error) {
	r, err := w.positionAndSize()
	return r.Position(), err
}

func (w *win32Window) size() (Extent2, error) {
	r, err := w.positionAndSize()
	return r.Size(), err
}

func (w *win32Window) canvasSize() (Extent2, error) {
	return w.size()
}

// frameOffsets converts a client rect into the outer rect SetWindowPos
// wants.
func (w *win32Window) frameOffsets(client winRect) winRect {
	s := w.style()
	ex, _, _ := procGetWindowLongPtr.Call(uintptr(w.win), gwlExStyle)
	procAdjustWindowRectEx.Call(uintptr(unsafe.Pointer(&client)), s, 0, ex)
	return client
}

func (w *win32Window) setPosition(p Vec2) error {
	outer := w.frameOffsets(winRect{left: int32(p.X), top: int32(p.Y), right: int32(p.X), bottom: int32(p.Y)})
	clearLastError()
	var r uintptr
	w.programmatic(func() {
		r, _, _ = procSetWindowPos.Call(uintptr(w.win), 0,
			uintptr(outer.left), uintptr(outer.top), 0, 0,
			swpNoSize|swpNoZOrder|swpNoActivate)
	})
	if r == 0 {
		return winFailed("SetWindowPos")
	}
	return nil
}

func (w *win32Window) setSize(s Extent2) error {
	outer := w.frameOffsets(winRect{right: int32(s.W), bottom: int32(s.H)})
	clearLastError()
	var r uintptr
	w.programmatic(func() {
		r, _, _ = procSetWindowPos.Call(uintptr(w.win), 0, 0, 0,
			uintptr(outer.right-outer.left), uintptr(outer.bottom-outer.top),
			swpNoMove|swpNoZOrder|swpNoActivate)
	})
	if r == 0 {
		return winFailed("SetWindowPos")
	}
	return nil
}

func (w *win32Window) setPositionAndSize(rect Rect) error {
	outer := w.frameOffsets(winRect{
		left:   rect.X,
		top:    rect.Y,
		right:  rect.X + int32(rect.W),
		bottom: rect.Y + int32(rect.H),
	})
	clearLastError()
	var r uintptr
	w.programmatic(func() {
		r, _, _ = procSetWindowPos.Call(uintptr(w.win), 0,
			uintptr(outer.left), uintptr(outer.top),
			uintptr(outer.right-outer.left), uintptr(outer.bottom-outer.top),
			swpNoZOrder|swpNoActivate)
	})
	if r == 0 {
		return winFailed("SetWindowPos")
	}
	return nil
}

func (w *win32Window) setMinSize(s Extent2) error {
	w.minSize = s
	return nil
}

func (w *win32Window) setMaxSize(s Extent2) error {
	w.maxSize = s
	return nil
}

func (w *win32Window) setResizable(resizable bool) error {
	s := w.style()
	if resizable {
		s |= wsThickFrame | wsMaximizeBox
	} else {
		s &^= wsThickFrame | wsMaximizeBox
	}
	w.setStyle(s)
	return nil
}

func (w *win32Window) isResizable() (bool, error) {
	return w.style()&wsThickFrame != 0, nil
}

func (w *win32Window) setOpacity(alpha float64) error {
	if alpha < 0 || alpha > 1 {
		return InvalidArgument("opacity outside [0, 1]")
	}
	ex, _, _ := procGetWindowLongPtr.Call(uintptr(w.win), gwlExStyle)
	if ex&wsExLayered == 0 {
		procSetWindowLongPtr.Call(uintptr(w.win), gwlExStyle, ex|wsExLayered)
	}
	clearLastError()
	r, _, _ := procSetLayeredWindowAttributes.Call(uintptr(w.win), 0, uintptr(opacityAlphaByte(alpha)), lwaAlpha)
	if r == 0 {
		return winFailed("SetLayeredWindowAttributes")
	}
	return nil
}

func (w *win32Window) setStyleHint(hint *WindowStyleHint) error {
	s := w.style()
	if !hint.Borders {
		s &^= wsCaption | wsBorder | wsThickFrame | wsSysMenu | wsMinimizeBox | wsMaximizeBox
	} else if hint.TitleBar == nil {
		s &^= wsCaption | wsSysMenu | wsMinimizeBox | wsMaximizeBox
		s |= wsBorder | wsThickFrame
	} else {
		s |= wsCaption | wsBorder
		tb := hint.TitleBar
		if tb.Minimize {
			s |= wsMinimizeBox
		} else {
			s &^= wsMinimizeBox
		}
		if tb.Maximize {
			s |= wsMaximizeBox
		} else {
			s &^= wsMaximizeBox
		}
		if tb.Close {
			s |= wsSysMenu
		} else {
			s &^= wsSysMenu
		}
	}
	w.setStyle(s)
	return nil
}

func (w *win32Window) demandAttention() error {
	info := flashWInfo{
		cbSize:  uint32(unsafe.Sizeof(flashWInfo{})),
		hwnd:    w.win,
		dwFlags: flashwAll | flashwTimerNoFG,
	}
	procFlashWindowEx.Call(uintptr(unsafe.Pointer(&info)))
	return nil
}

func (w *win32Window) trapMouse() error {
	r, err := w.positionAndSize()
	if err != nil {
		return err
	}
	clip := winRect{
		left:   r.X,
		top:    r.Y,
		right:  r.X + int32(r.W),
		bottom: r.Y + int32(r.H),
	}
	clearLastError()
	if ok, _, _ := procClipCursor.Call(uintptr(unsafe.Pointer(&clip))); ok == 0 {
		return winFailed("ClipCursor")
	}
	w.trapped = true
	return nil
}

func (w *win32Window) setDesktop(i int) error {
	return Unsupported("virtual desktops are not exposed through Win32")
}

func (w *win32Window) setCursor(c osCursor) error {
	if c == nil {
		w.userCursor = nil
		w.refreshCursor()
		return nil
	}
	cur, ok := c.(*win32Cursor)
	if !ok {
		return InvalidArgument("cursor belongs to another backend")
	}
	w.userCursor = cur
	w.refreshCursor()
	return nil
}

func (w *win32Window) cursor() (osCursor, error) {
	if w.userCursor != nil {
		return w.userCursor, nil
	}
	logger.Warn("window has no explicit cursor; returning a default arrow")
	h, _, _ := procLoadCursor.Call(0, idcArrow)
	if h == 0 {
		return nil, winFailed("LoadCursorW")
	}
	return &win32Cursor{handle: hcursor(h), shared: true}, nil
}

func (w *win32Window) setCursorVisible(visible bool) error {
	w.cursorVisible = visible
	w.refreshCursor()
	return nil
}

// refreshCursor applies the effective cursor immediately when the mouse
// is inside; WM_SETCURSOR keeps it applied afterwards.
func (w *win32Window) refreshCursor() {
	if !w.mouseInside {
		return
	}
	procSetCursor.Call(uintptr(w.effectiveCursor()))
}

func (w *win32Window) effectiveCursor() hcursor {
	if !w.cursorVisible {
		return 0
	}
	if w.userCursor != nil {
		return w.userCursor.handle
	}
	h, _, _ := procLoadCursor.Call(0, idcArrow)
	return hcursor(h)
}
