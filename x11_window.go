//go:build linux || freebsd

package windc

import (
	"math"
	"os"

	"github.com/lunarsen/windc/glx"
	"github.com/lunarsen/windc/xlib"
)

// Motif WM hints, the de-facto protocol for decoration control.
const (
	motifHintsFunctions   = 1 << 0
	motifHintsDecorations = 1 << 1

	motifDecorAll      = 1 << 0
	motifDecorBorder   = 1 << 1
	motifDecorResizeH  = 1 << 2
	motifDecorTitle    = 1 << 3
	motifDecorMenu     = 1 << 4
	motifDecorMinimize = 1 << 5
	motifDecorMaximize = 1 << 6

	motifFuncAll      = 1 << 0
	motifFuncResize   = 1 << 1
	motifFuncMove     = 1 << 2
	motifFuncMinimize = 1 << 3
	motifFuncMaximize = 1 << 4
	motifFuncClose    = 1 << 5
)

type motifHints struct {
	flags       uint64
	functions   uint64
	decorations uint64
	inputMode   int64
	status      uint64
}

// _NET_WM_STATE client message actions.
const (
	netWMStateRemove = 0
	netWMStateAdd    = 1
	netWMStateToggle = 2
)

const x11ResClass = "windc"

// x11Window owns one X window, its colormap, an optional input context
// for text input, and per-window UI state.
type x11Window struct {
	ctx      *x11Context
	win      xlib.Window
	colormap xlib.Colormap
	xic      xlib.XIC

	glxWindow  glx.GLXWindow
	currentCtx *x11GLContext
	fpsLimit   float64
	lastSwap   int64 // monotonic nanoseconds of the last present

	userCursor    *x11Cursor
	cursorVisible bool
	mouseOutside  bool

	// Last geometry seen, for ConfigureNotify diffing.
	knownGeom Rect
	// Last _NET_WM_STATE set, for PropertyNotify diffing.
	knownState map[xlib.Atom]bool

	// Live XDND transfer, if any.
	dndSource  xlib.Window
	dndVersion int64
	dndFormat  xlib.Atom
}

func (c *x11Context) createWindow(settings *WindowSettings) (osWindow, error) {
	var (
		visual   uintptr
		depth    int32
		pf       *x11GLPixelFormat
	)
	if settings.OpenGL != nil {
		var ok bool
		pf, ok = settings.OpenGL.os.(*x11GLPixelFormat)
		if !ok || pf.ctx != c {
			return nil, InvalidArgument("pixel format belongs to another context")
		}
		visual = pf.visualInfo.Visual
		depth = pf.visualInfo.Depth
	} else {
		visual = xlib.XDefaultVisual(c.display, c.screen)
		depth = xlib.CopyFromParent
	}

	var colormap xlib.Colormap
	err := c.syncCatch(func() {
		colormap = xlib.XCreateColormap(c.display, c.root, visual, xlib.AllocNone)
	})
	if err != nil {
		return nil, Failedf("XCreateColormap: %v", err)
	}

	size := settings.Mode.Size
	if size.W == 0 || size.H == 0 {
		size = Extent2{800, 600}
	}

	attrs := xlib.SetWindowAttributes{
		Colormap:        colormap,
		BackgroundPixel: xlib.XWhitePixel(c.display, c.screen),
		EventMask: xlib.KeyPressMask | xlib.KeyReleaseMask |
			xlib.ButtonPressMask | xlib.ButtonReleaseMask |
			xlib.EnterWindowMask | xlib.LeaveWindowMask |
			xlib.PointerMotionMask |
			xlib.Button1MotionMask | xlib.Button2MotionMask |
			xlib.Button3MotionMask | xlib.Button4MotionMask |
			xlib.Button5MotionMask | xlib.ButtonMotionMask |
			xlib.KeymapStateMask | xlib.ExposureMask |
			xlib.VisibilityChangeMask | xlib.StructureNotifyMask |
			xlib.FocusChangeMask | xlib.PropertyChangeMask |
			xlib.ColormapChangeMask | xlib.OwnerGrabButtonMask,
	}
	valuemask := xlib.CWColormap | xlib.CWEventMask | xlib.CWBackPixel

	var win xlib.Window
	err = c.syncCatch(func() {
		win = xlib.XCreateWindow(c.display, c.root, 0, 0, size.W, size.H,
			0, depth, xlib.InputOutput, visual, valuemask, &attrs)
	})
	if err != nil || win == 0 {
		xlib.XFreeColormap(c.display, colormap)
		if err == nil {
			err = Failed("XCreateWindow returned 0")
		}
		return nil, err
	}

	w := &x11Window{
		ctx:           c,
		win:           win,
		colormap:      colormap,
		cursorVisible: true,
		knownGeom:     Rect{W: size.W, H: size.H},
		knownState:    make(map[xlib.Atom]bool),
	}

	// Announce the protocols we answer to, and our PID for
	// _NET_WM_PING.
	var protocols []xlib.Atom
	for _, name := range []string{"WM_DELETE_WINDOW", "WM_TAKE_FOCUS", "_NET_WM_PING"} {
		if a, err := c.atom(name); err == nil {
			protocols = append(protocols, a)
		}
	}
	if len(protocols) > 0 {
		c.syncCatch(func() {
			xlib.XSetWMProtocols(c.display, win, &protocols[0], int32(len(protocols)))
		})
	}
	if pidAtom, err := c.atom("_NET_WM_PID"); err == nil {
		c.setPropCards(win, pidAtom, xlib.XACardinal, propReplace, []uint64{uint64(os.Getpid())})
	}

	hints := xlib.SizeHints{Flags: xlib.PSize, Width: int32(size.W), Height: int32(size.H)}
	if !settings.Resizable {
		hints.Flags |= xlib.PMinSize | xlib.PMaxSize
		hints.MinWidth, hints.MaxWidth = int32(size.W), int32(size.W)
		hints.MinHeight, hints.MaxHeight = int32(size.H), int32(size.H)
	}
	xlib.XSetWMNormalHints(c.display, win, &hints)

	wmHints := xlib.WMHints{Flags: xlib.InputHint, Input: 1}
	xlib.XSetWMHints(c.display, win, &wmHints)

	name := xlib.CString(x11ResClass)
	class := xlib.ClassHint{ResName: name, ResClass: name}
	xlib.XSetClassHint(c.display, win, &class)

	if typAtom, err := c.atom("_NET_WM_WINDOW_TYPE"); err == nil {
		if normal, err := c.atom("_NET_WM_WINDOW_TYPE_NORMAL"); err == nil {
			c.setPropCards(win, typAtom, xlib.XAAtom, propReplace, []uint64{normal})
		}
	}

	if aware, err := c.atom("XdndAware"); err == nil {
		c.setPropCards(win, aware, xlib.XAAtom, propReplace, []uint64{xdndVersion})
	}

	if err := w.setInitialState(settings); err != nil {
		logger.Warn("could not apply initial window state", "err", err)
	}

	if settings.OpenGL != nil && pf.usesFBConfig {
		w.glxWindow = glx.CreateWindow(c.display, pf.fbConfig, uint64(win), nil)
	}

	if c.xim != 0 {
		w.xic = xlib.XCreateIC(c.xim,
			&xlib.XNInputStyle[0], xlib.XIMPreeditNothing|xlib.XIMStatusNothing,
			&xlib.XNClientWindow[0], win, 0)
	}

	if settings.Title != "" {
		w.setTitle(settings.Title)
	}

	c.windows[win] = w
	return w, nil
}

// setInitialState writes _NET_WM_STATE directly; the window is not
// mapped yet, so client messages would be ignored.
func (w *x11Window) setInitialState(settings *WindowSettings) error {
	var states []uint64
	add := func(name string) {
		if a, err := w.ctx.atom(name); err == nil {
			states = append(states, a)
		}
	}
	switch settings.Mode.Kind {
	case WindowModeMaximized:
		add("_NET_WM_STATE_MAXIMIZED_HORZ")
		add("_NET_WM_STATE_MAXIMIZED_VERT")
	case WindowModeFullScreen:
		add("_NET_WM_STATE_FULLSCREEN")
	}
	stateAtom, err := w.ctx.atom("_NET_WM_STATE")
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return w.ctx.deleteProp(w.win, stateAtom)
	}
	return w.ctx.setPropCards(w.win, stateAtom, xlib.XAAtom, propReplace, states)
}

func (w *x11Window) handle() WindowHandle { return WindowHandle(w.win) }

// destroy tears down the input context first, then the window, then
// the colormap.
func (w *x11Window) destroy() error {
	delete(w.ctx.windows, w.win)
	if w.xic != 0 {
		xlib.XDestroyIC(w.xic)
		w.xic = 0
	}
	if w.glxWindow != 0 {
		glx.DestroyWindow(w.ctx.display, w.glxWindow)
		w.glxWindow = 0
	}
	xlib.XDestroyWindow(w.ctx.display, w.win)
	xlib.XFreeColormap(w.ctx.display, w.colormap)
	w.win = 0
	return nil
}

func (w *x11Window) show() error {
	xlib.XMapRaised(w.ctx.display, w.win)
	// Sync, so a buffer swap right after showing is not lost.
	w.ctx.sync()
	return nil
}

func (w *x11Window) hide() error {
	xlib.XUnmapWindow(w.ctx.display, w.win)
	w.ctx.sync()
	return nil
}

func (w *x11Window) raise() error {
	xlib.XRaiseWindow(w.ctx.display, w.win)
	w.ctx.sync()
	return nil
}

func (w *x11Window) lower() error {
	xlib.XLowerWindow(w.ctx.display, w.win)
	w.ctx.sync()
	return nil
}

func (w *x11Window) setTitle(title string) error {
	c := w.ctx
	buf := append([]byte(title), 0)
	ptr := &buf[0]
	var prop xlib.TextProperty
	status := xlib.Xutf8TextListToTextProperty(c.display, &ptr, 1, xlib.XUTF8StringStyle, &prop)
	switch {
	case status == xlib.Success:
	case status == xlib.XNoMemory:
		return Failed("Xutf8TextListToTextProperty returned XNoMemory")
	case status == xlib.XLocaleNotSupported:
		return Failed("Xutf8TextListToTextProperty returned XLocaleNotSupported")
	default:
		return Failedf("Xutf8TextListToTextProperty returned %d", status)
	}
	defer xlib.XFree(prop.Value)
	xlib.XSetWMName(c.display, w.win, &prop)
	xlib.XSetWMIconName(c.display, w.win, &prop)
	if netWMName, err := c.atom("_NET_WM_NAME"); err == nil {
		xlib.XSetTextProperty(c.display, w.win, &prop, netWMName)
	}
	c.flush()
	return nil
}

func (w *x11Window) title() (string, error) {
	c := w.ctx
	nameAtom, err := c.atom("_NET_WM_NAME")
	if err != nil {
		return "", err
	}
	utf8Atom, err := c.atom("UTF8_STRING")
	if err != nil {
		return "", err
	}
	pd, err := c.getPropBytes(w.win, nameAtom, utf8Atom, 0, 1024)
	if err != nil {
		return "", err
	}
	return string(pd.data), nil
}

func (w *x11Window) setIcon(size Extent2, pixels []RGBA) error {
	if int(size.W)*int(size.H) > len(pixels) {
		return InvalidArgument("icon pixel buffer shorter than size")
	}
	iconAtom, err := w.ctx.atom("_NET_WM_ICON")
	if err != nil {
		return err
	}
	data := make([]uint64, 0, 2+int(size.W)*int(size.H))
	data = append(data, uint64(size.W), uint64(size.H))
	for _, p := range pixels[:size.W*size.H] {
		argb := uint32(p.A)<<24 | uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
		data = append(data, uint64(argb))
	}
	return w.ctx.setPropCards(w.win, iconAtom, xlib.XACardinal, propReplace, data)
}

func (w *x11Window) resetIcon() error {
	iconAtom, err := w.ctx.atom("_NET_WM_ICON")
	if err != nil {
		return err
	}
	return w.ctx.deleteProp(w.win, iconAtom)
}

// sendNetWMClientMessage sends the standardized root window client
// message used by every _NET_WM_STATE style protocol.
func (w *x11Window) sendRootClientMessage(messageType xlib.Atom, data [4]int64) error {
	var ev xlib.XEvent
	cm := ev.Client()
	cm.Type = xlib.ClientMessage
	cm.Window = w.win
	cm.MessageType = messageType
	cm.Format = 32
	copy(cm.Data[:4], data[:])
	var status xlib.Status
	err := w.ctx.syncCatch(func() {
		status = xlib.XSendEvent(w.ctx.display, w.ctx.root, 0,
			xlib.SubstructureNotifyMask|xlib.SubstructureRedirectMask, &ev)
	})
	if err != nil {
		return err
	}
	if status == 0 {
		return Failed("XSendEvent could not encode the client message")
	}
	return nil
}

func (w *x11Window) setNetWMState(action int64, prop1, prop2 xlib.Atom) error {
	stateAtom, err := w.ctx.atom("_NET_WM_STATE")
	if err != nil {
		return err
	}
	// data[3] = 1 flags the request as coming from a normal application.
	return w.sendRootClientMessage(stateAtom, [4]int64{action, int64(prop1), int64(prop2), 1})
}

func (w *x11Window) netWMState() (map[xlib.Atom]bool, error) {
	stateAtom, err := w.ctx.atom("_NET_WM_STATE")
	if err != nil {
		return nil, err
	}
	pd, err := w.ctx.getPropCards(w.win, stateAtom, xlib.XAAtom, 0, 64)
	if err != nil {
		return nil, err
	}
	set := make(map[xlib.Atom]bool, len(pd.data))
	for _, a := range pd.data {
		set[xlib.Atom(a)] = true
	}
	return set, nil
}

func (w *x11Window) hasNetWMState(name string) (bool, error) {
	a, err := w.ctx.atom(name)
	if err != nil {
		return false, err
	}
	set, err := w.netWMState()
	if err != nil {
		return false, err
	}
	return set[a], nil
}

func (w *x11Window) setMaximized(max, horz, vert bool) error {
	action := int64(netWMStateRemove)
	if max {
		action = netWMStateAdd
	}
	var a1, a2 xlib.Atom
	var err error
	if horz {
		a1, err = w.ctx.atom("_NET_WM_STATE_MAXIMIZED_HORZ")
		if err != nil {
			return err
		}
	}
	if vert {
		a2, err = w.ctx.atom("_NET_WM_STATE_MAXIMIZED_VERT")
		if err != nil {
			return err
		}
	}
	if a1 == 0 {
		a1, a2 = a2, 0
	}
	return w.setNetWMState(action, a1, a2)
}

func (w *x11Window) isMaximized() (bool, error) {
	horz, err := w.hasNetWMState("_NET_WM_STATE_MAXIMIZED_HORZ")
	if err != nil {
		return false, err
	}
	vert, err := w.hasNetWMState("_NET_WM_STATE_MAXIMIZED_VERT")
	if err != nil {
		return false, err
	}
	return horz && vert, nil
}

const (
	bypassCompositorNoPreference = 0
	bypassCompositorYes          = 1
)

// setBypassCompositor writes the _NET_WM_BYPASS_COMPOSITOR hint. It is
// advisory; compositors are free to ignore it.
func (w *x11Window) setBypassCompositor(v uint64) error {
	a, err := w.ctx.atom("_NET_WM_BYPASS_COMPOSITOR")
	if err != nil {
		return err
	}
	return w.ctx.setPropCards(w.win, a, xlib.XACardinal, propReplace, []uint64{v})
}

func (w *x11Window) setFullscreen(fs bool) error {
	a, err := w.ctx.atom("_NET_WM_STATE_FULLSCREEN")
	if err != nil {
		return err
	}
	action := int64(netWMStateRemove)
	bypass := uint64(bypassCompositorNoPreference)
	if fs {
		action = netWMStateAdd
		bypass = bypassCompositorYes
	}
	_ = w.setBypassCompositor(bypass)
	return w.setNetWMState(action, a, 0)
}

func (w *x11Window) isFullscreen() (bool, error) {
	return w.hasNetWMState("_NET_WM_STATE_FULLSCREEN")
}

func (w *x11Window) minimize() error {
	changeState, err := w.ctx.atom("WM_CHANGE_STATE")
	if err != nil {
		return err
	}
	return w.sendRootClientMessage(changeState, [4]int64{xlib.IconicState, 0, 0, 0})
}

func (w *x11Window) unminimize() error {
	xlib.XMapRaised(w.ctx.display, w.win)
	w.ctx.flush()
	return nil
}

// wmState reads the ICCCM WM_STATE property's state field.
func (w *x11Window) wmState() (uint64, error) {
	a, err := w.ctx.atom("WM_STATE")
	if err != nil {
		return 0, err
	}
	pd, err := w.ctx.getPropCards(w.win, a, a, 0, 2)
	if err != nil {
		return 0, err
	}
	if len(pd.data) == 0 {
		return xlib.WithdrawnState, nil
	}
	return pd.data[0], nil
}

func (w *x11Window) isMinimized() (bool, error) {
	s, err := w.wmState()
	if err != nil {
		return false, err
	}
	return s == xlib.IconicState, nil
}

func (w *x11Window) isVisible() (bool, error) {
	s, err := w.wmState()
	if err != nil {
		return false, err
	}
	return s != xlib.WithdrawnState, nil
}

// geometry returns the window's rect in root coordinates.
func (w *x11Window) geometry() (Rect, error) {
	c := w.ctx
	var (
		root          xlib.Window
		x, y          int32
		width, height uint32
		border, depth uint32
	)
	var status xlib.Status
	err := c.syncCatch(func() {
		status = xlib.XGetGeometry(c.display, xlib.XID(w.win), &root, &x, &y, &width, &height, &border, &depth)
	})
	if err != nil {
		return Rect{}, err
	}
	if status == 0 {
		return Rect{}, Failed("XGetGeometry failed")
	}
	var rx, ry int32
	var child xlib.Window
	xlib.XTranslateCoordinates(c.display, w.win, root, 0, 0, &rx, &ry, &child)
	return Rect{X: rx, Y: ry, W: width, H: height}, nil
}

func (w *x11Window) position() (Vec2, error) {
	r, err := w.geometry()
	return r.Position(), err
}

func (w *x11Window) size() (Extent2, error) {
	r, err := w.geometry()
	return r.Size(), err
}

func (w *x11Window) positionAndSize() (Rect, error) {
	return w.geometry()
}

func (w *x11Window) canvasSize() (Extent2, error) {
	return w.size()
}

func (w *x11Window) setPosition(p Vec2) error {
	return w.ctx.syncCatch(func() {
		xlib.XMoveWindow(w.ctx.display, w.win, p.X, p.Y)
	})
}

func (w *x11Window) setSize(s Extent2) error {
	return w.ctx.syncCatch(func() {
		xlib.XResizeWindow(w.ctx.display, w.win, s.W, s.H)
	})
}

func (w *x11Window) setPositionAndSize(r Rect) error {
	return w.ctx.syncCatch(func() {
		xlib.XMoveResizeWindow(w.ctx.display, w.win, r.X, r.Y, r.W, r.H)
	})
}

func (w *x11Window) normalHints() xlib.SizeHints {
	var hints xlib.SizeHints
	var supplied int64
	xlib.XGetWMNormalHints(w.ctx.display, w.win, &hints, &supplied)
	return hints
}

func (w *x11Window) setMinSize(s Extent2) error {
	hints := w.normalHints()
	hints.Flags |= xlib.PMinSize
	hints.MinWidth, hints.MinHeight = int32(s.W), int32(s.H)
	xlib.XSetWMNormalHints(w.ctx.display, w.win, &hints)
	w.ctx.flush()
	return nil
}

func (w *x11Window) setMaxSize(s Extent2) error {
	hints := w.normalHints()
	hints.Flags |= xlib.PMaxSize
	hints.MaxWidth, hints.MaxHeight = int32(s.W), int32(s.H)
	xlib.XSetWMNormalHints(w.ctx.display, w.win, &hints)
	w.ctx.flush()
	return nil
}

// allowedActions reads _NET_WM_ALLOWED_ACTIONS as a set of atoms.
func (w *x11Window) allowedActions() ([]uint64, error) {
	a, err := w.ctx.atom("_NET_WM_ALLOWED_ACTIONS")
	if err != nil {
		return nil, err
	}
	pd, err := w.ctx.getPropCards(w.win, a, xlib.AnyPropertyType, 0, 64)
	if err != nil {
		return nil, err
	}
	return pd.data, nil
}

// setAllowedAction adds or removes one action atom in
// _NET_WM_ALLOWED_ACTIONS, leaving the rest of the set alone.
func (w *x11Window) setAllowedAction(action xlib.Atom, allow bool) error {
	actions, err := w.allowedActions()
	if err != nil {
		return err
	}
	i := -1
	for j, a := range actions {
		if a == uint64(action) {
			i = j
			break
		}
	}
	if (i >= 0) == allow {
		return nil
	}
	prop, err := w.ctx.atom("_NET_WM_ALLOWED_ACTIONS")
	if err != nil {
		return err
	}
	if allow {
		return w.ctx.setPropCards(w.win, prop, xlib.XAAtom, propAppend, []uint64{uint64(action)})
	}
	actions[i] = actions[len(actions)-1]
	return w.ctx.setPropCards(w.win, prop, xlib.XAAtom, propReplace, actions[:len(actions)-1])
}

func (w *x11Window) setResizable(resizable bool) error {
	hints := w.normalHints()
	if resizable {
		hints.Flags &^= int64(xlib.PMinSize | xlib.PMaxSize)
	} else {
		size, err := w.size()
		if err != nil {
			return err
		}
		hints.Flags |= xlib.PMinSize | xlib.PMaxSize
		hints.MinWidth, hints.MaxWidth = int32(size.W), int32(size.W)
		hints.MinHeight, hints.MaxHeight = int32(size.H), int32(size.H)
	}
	xlib.XSetWMNormalHints(w.ctx.display, w.win, &hints)
	// The action set is WM-owned; updating it is best effort.
	if resize, err := w.ctx.atom("_NET_WM_ACTION_RESIZE"); err == nil {
		_ = w.setAllowedAction(resize, resizable)
	}
	w.ctx.flush()
	return nil
}

func (w *x11Window) isResizable() (bool, error) {
	if resize, err := w.ctx.atom("_NET_WM_ACTION_RESIZE"); err == nil {
		if actions, err := w.allowedActions(); err == nil && len(actions) > 0 {
			for _, a := range actions {
				if a == uint64(resize) {
					return true, nil
				}
			}
			return false, nil
		}
	}
	hints := w.normalHints()
	if hints.Flags&(xlib.PMinSize|xlib.PMaxSize) != xlib.PMinSize|xlib.PMaxSize {
		return true, nil
	}
	return hints.MinWidth != hints.MaxWidth || hints.MinHeight != hints.MaxHeight, nil
}

// opacityCardinal maps [0, 1] onto the full cardinal range, rounding
// to the nearest step.
func opacityCardinal(alpha float64) uint64 {
	return uint64(math.Round(alpha * 0xFFFFFFFF))
}

func (w *x11Window) setOpacity(alpha float64) error {
	a, err := w.ctx.atom("_NET_WM_WINDOW_OPACITY")
	if err != nil {
		return err
	}
	return w.ctx.setPropCards(w.win, a, xlib.XACardinal, propReplace, []uint64{opacityCardinal(alpha)})
}

func (w *x11Window) motifHints() (motifHints, error) {
	a, err := w.ctx.atom("_MOTIF_WM_HINTS")
	if err != nil {
		return motifHints{}, err
	}
	pd, err := w.ctx.getPropCards(w.win, a, a, 0, 5)
	if err != nil || len(pd.data) < 5 {
		// A window may simply not have the property yet.
		return motifHints{}, nil
	}
	return motifHints{
		flags:       pd.data[0],
		functions:   pd.data[1],
		decorations: pd.data[2],
		inputMode:   int64(pd.data[3]),
		status:      pd.data[4],
	}, nil
}

func (w *x11Window) setMotifHints(h motifHints) error {
	a, err := w.ctx.atom("_MOTIF_WM_HINTS")
	if err != nil {
		return err
	}
	data := []uint64{h.flags, h.functions, h.decorations, uint64(h.inputMode), h.status}
	return w.ctx.setPropCards(w.win, a, a, propReplace, data)
}

func (w *x11Window) setStyleHint(hint *WindowStyleHint) error {
	h, _ := w.motifHints()
	if hint.Borders {
		h.flags |= motifHintsDecorations
		h.decorations |= motifDecorBorder
	} else {
		h.flags |= motifHintsDecorations
		h.decorations &^= uint64(motifDecorAll)
		h.decorations &^= uint64(motifDecorBorder)
	}
	if tb := hint.TitleBar; tb != nil {
		h.flags |= motifHintsDecorations
		h.decorations |= motifDecorTitle | motifDecorMenu
		if tb.Minimize {
			h.decorations |= motifDecorMinimize
		} else {
			h.decorations &^= uint64(motifDecorMinimize)
		}
		if tb.Maximize {
			h.decorations |= motifDecorMaximize
		} else {
			h.decorations &^= uint64(motifDecorMaximize)
		}
		h.flags |= motifHintsFunctions
		if tb.Close {
			h.functions |= motifFuncClose
		} else {
			h.functions &^= uint64(motifFuncClose)
		}
	} else {
		h.flags |= motifHintsDecorations
		h.decorations &^= uint64(motifDecorTitle | motifDecorMenu)
	}
	return w.setMotifHints(h)
}

func (w *x11Window) demandAttention() error {
	a, err := w.ctx.atom("_NET_WM_STATE_DEMANDS_ATTENTION")
	if err != nil {
		return err
	}
	return w.setNetWMState(netWMStateAdd, a, 0)
}

func (w *x11Window) trapMouse() error {
	grabMask := xlib.ButtonPressMask | xlib.ButtonReleaseMask |
		xlib.PointerMotionMask | xlib.EnterWindowMask | xlib.LeaveWindowMask
	status := xlib.XGrabPointer(w.ctx.display, w.win, 1, uint32(grabMask),
		xlib.GrabModeAsync, xlib.GrabModeAsync, w.win, xlib.None, xlib.CurrentTime)
	if status != xlib.GrabSuccess {
		return Failedf("XGrabPointer returned %d", status)
	}
	w.ctx.flush()
	return nil
}

func (w *x11Window) setDesktop(i int) error {
	a, err := w.ctx.atom("_NET_WM_DESKTOP")
	if err != nil {
		return err
	}
	return w.sendRootClientMessage(a, [4]int64{int64(i), 1, 0, 0})
}

func (w *x11Window) setCursor(c osCursor) error {
	if c == nil {
		w.userCursor = nil
	} else {
		xc, ok := c.(*x11Cursor)
		if !ok {
			return InvalidArgument("cursor belongs to another backend")
		}
		w.userCursor = xc
	}
	w.refreshCursor()
	return nil
}

// cursor read-back is lossy on X11: the server has no query for a
// window's cursor, so hand out a fresh default cursor instead.
func (w *x11Window) cursor() (osCursor, error) {
	if w.userCursor != nil {
		return w.userCursor, nil
	}
	logger.Warn("X11 cannot read a window's cursor back; returning a default cursor")
	cur := xlib.XCreateFontCursor(w.ctx.display, xlib.XCLeftPtr)
	if cur == 0 {
		return nil, Failed("XCreateFontCursor failed")
	}
	return &x11Cursor{ctx: w.ctx, cursor: cur}, nil
}

func (w *x11Window) setCursorVisible(visible bool) error {
	w.cursorVisible = visible
	w.refreshCursor()
	return nil
}

// refreshCursor applies the rule: visible+user installs the user
// cursor, visible+none reverts to the parent's, hidden installs the
// context's invisible cursor.
func (w *x11Window) refreshCursor() {
	switch {
	case !w.cursorVisible:
		xlib.XDefineCursor(w.ctx.display, w.win, w.ctx.invisibleCursor)
	case w.userCursor != nil:
		xlib.XDefineCursor(w.ctx.display, w.win, w.userCursor.cursor)
	default:
		xlib.XUndefineCursor(w.ctx.display, w.win)
	}
	w.ctx.flush()
}
