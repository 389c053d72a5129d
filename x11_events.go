//go:build linux || freebsd

package windc

import (
	"strings"
	"unsafe"

	"github.com/lunarsen/windc/xlib"
)

// The XDND protocol version we advertise and accept.
const xdndVersion = 5

// Auto-repeat generates synthetic Release/Press pairs carrying the
// same server timestamp. Pairs within this window are treated as one.
const keyRepeatWindowMillis = 20

// Two presses of the same button within this window and radius make a
// double click.
const (
	doubleClickMillis = 400
	doubleClickRadius = 5.0
)

func (c *x11Context) translateEvent(ev *xlib.XEvent) {
	switch ev.Type() {
	case xlib.KeyPress:
		c.onKeyPress(ev.Key())
	case xlib.KeyRelease:
		c.onKeyRelease(ev.Key())
	case xlib.ButtonPress:
		c.onButtonPress(ev.Button())
	case xlib.ButtonRelease:
		c.onButtonRelease(ev.Button())
	case xlib.MotionNotify:
		c.onMotion(ev.Motion())
	case xlib.EnterNotify:
		c.onCrossing(ev.Crossing(), true)
	case xlib.LeaveNotify:
		c.onCrossing(ev.Crossing(), false)
	case xlib.FocusIn:
		c.onFocus(ev.Focus(), true)
	case xlib.FocusOut:
		c.onFocus(ev.Focus(), false)
	case xlib.Expose:
		c.onExpose(ev.Expose())
	case xlib.ConfigureNotify:
		c.onConfigure(ev.Configure())
	case xlib.MapNotify:
		m := ev.Map()
		if _, ok := c.windows[m.Window]; ok {
			c.queue.push(WindowShownEvent{Window: WindowHandle(m.Window)})
		}
	case xlib.UnmapNotify:
		u := ev.Unmap()
		if _, ok := c.windows[u.Window]; ok {
			c.queue.push(WindowHiddenEvent{Window: WindowHandle(u.Window)})
		}
	case xlib.PropertyNotify:
		c.onProperty(ev.Property())
	case xlib.ClientMessage:
		c.onClientMessage(ev.Client())
	case xlib.SelectionNotify:
		c.onSelectionNotify(ev.Selection())
	case xlib.GenericEvent:
		c.onGenericEvent(ev.Cookie())
	}
}

// keyPressIsRepeat reports whether a press of code is an auto-repeat,
// and records the press.
func (c *x11Context) keyPressIsRepeat(code Keycode, t xlib.Time) bool {
	_, held := c.pressedKeys[code]
	c.pressedKeys[code] = t
	return held
}

// keyReleaseIsSynthetic reports whether the release at t is the first
// half of an auto-repeat Release/Press pair. It peeks at the next
// queued event; real releases clear the held state.
func (c *x11Context) keyReleaseIsSynthetic(code Keycode, t xlib.Time) bool {
	if xlib.XPending(c.display) > 0 {
		var next xlib.XEvent
		xlib.XPeekEvent(c.display, &next)
		if next.Type() == xlib.KeyPress {
			nk := next.Key()
			if Keycode(nk.Keycode) == code && nk.Time-t < keyRepeatWindowMillis {
				return true
			}
		}
	}
	delete(c.pressedKeys, code)
	return false
}

// keyboardFor attributes a core key event to the XI device that raised
// the matching raw event, falling back to the core keyboard.
func (c *x11Context) keyboardFor(t xlib.Time, code uint32) DeviceID {
	if c.lastRawKeyTime == t && c.lastRawKeyCode == code {
		id := c.coreKeyboard
		id.Native = int64(c.lastRawKeyDevice)
		return id
	}
	return c.coreKeyboard
}

func (c *x11Context) onKeyPress(k *xlib.XKeyEvent) {
	w := c.windows[k.Window]
	instant := instantFromX11Millis(uint64(k.Time))
	repeat := c.keyPressIsRepeat(Keycode(k.Keycode), k.Time)

	var (
		sym  xlib.KeySym
		text string
	)
	if w != nil && w.xic != 0 {
		var status xlib.Status
		buf := make([]byte, 64)
		n := xlib.Xutf8LookupString(w.xic, k, &buf[0], int32(len(buf)), &sym, &status)
		if status == xlib.XBufferOverflow {
			buf = make([]byte, n)
			n = xlib.Xutf8LookupString(w.xic, k, &buf[0], int32(len(buf)), &sym, &status)
		}
		if status == xlib.XLookupChars || status == xlib.XLookupBoth {
			text = string(buf[:n])
		}
		if status == xlib.XLookupChars {
			sym = xlib.XLookupKeysym(k, 0)
		}
	} else {
		sym = xlib.XLookupKeysym(k, 0)
	}

	c.queue.push(KeyPressedEvent{
		Keyboard: c.keyboardFor(k.Time, k.Keycode),
		Window:   WindowHandle(k.Window),
		Instant:  instant,
		Key:      Keycode(k.Keycode),
		VKey:     Keysym(sym),
		IsRepeat: repeat,
	})
	if text != "" {
		c.queue.push(TextInputEvent{
			Window:  WindowHandle(k.Window),
			Instant: instant,
			Text:    text,
		})
	}
}

func (c *x11Context) onKeyRelease(k *xlib.XKeyEvent) {
	if c.keyReleaseIsSynthetic(Keycode(k.Keycode), k.Time) {
		return
	}
	c.queue.push(KeyReleasedEvent{
		Keyboard: c.keyboardFor(k.Time, k.Keycode),
		Window:   WindowHandle(k.Window),
		Instant:  instantFromX11Millis(uint64(k.Time)),
		Key:      Keycode(k.Keycode),
		VKey:     Keysym(xlib.XLookupKeysym(k, 0)),
	})
}

// mouseButtonOf maps a core button number to the portable taxonomy.
// Buttons 4 through 7 are scroll impulses, not buttons.
func mouseButtonOf(n uint32) MouseButton {
	switch n {
	case 1:
		return MouseButtonLeft
	case 2:
		return MouseButtonMiddle
	case 3:
		return MouseButtonRight
	case 8:
		return MouseButtonBack
	case 9:
		return MouseButtonForward
	default:
		return MouseButtonExtra(int(n) - 9)
	}
}

// scrollOf returns the scroll impulse for buttons 4 through 7, or
// false for everything else.
func scrollOf(n uint32) (Vec2, bool) {
	switch n {
	case 4:
		return Vec2{Y: 1}, true
	case 5:
		return Vec2{Y: -1}, true
	case 6:
		return Vec2{X: -1}, true
	case 7:
		return Vec2{X: 1}, true
	}
	return Vec2{}, false
}

func (c *x11Context) clickOf(b MouseButton, t xlib.Time, pos Vec2F) Click {
	defer func() {
		c.lastClickButton, c.lastClickTime, c.lastClickPos = b, t, pos
	}()
	if b != c.lastClickButton || c.lastClickTime == 0 || t-c.lastClickTime > doubleClickMillis {
		return ClickSingle
	}
	dx, dy := pos.X-c.lastClickPos.X, pos.Y-c.lastClickPos.Y
	if dx*dx+dy*dy > doubleClickRadius*doubleClickRadius {
		return ClickSingle
	}
	return ClickDouble
}

func (c *x11Context) onButtonPress(b *xlib.ButtonEvent) {
	instant := instantFromX11Millis(uint64(b.Time))
	if scroll, ok := scrollOf(b.ButtonNum); ok {
		c.queue.push(MouseScrollEvent{
			Mouse:   c.coreMouse,
			Window:  WindowHandle(b.Window),
			Instant: instant,
			Scroll:  scroll,
		})
		return
	}
	pos := Vec2F{X: float64(b.X), Y: float64(b.Y)}
	root := Vec2F{X: float64(b.XRoot), Y: float64(b.YRoot)}
	btn := mouseButtonOf(b.ButtonNum)
	c.queue.push(MouseButtonPressedEvent{
		Mouse:        c.coreMouse,
		Window:       WindowHandle(b.Window),
		Instant:      instant,
		Button:       btn,
		Click:        c.clickOf(btn, b.Time, pos),
		Position:     pos,
		RootPosition: root,
	})
}

func (c *x11Context) onButtonRelease(b *xlib.ButtonEvent) {
	if _, ok := scrollOf(b.ButtonNum); ok {
		// The press already delivered the impulse.
		return
	}
	c.queue.push(MouseButtonReleasedEvent{
		Mouse:        c.coreMouse,
		Window:       WindowHandle(b.Window),
		Instant:      instantFromX11Millis(uint64(b.Time)),
		Button:       mouseButtonOf(b.ButtonNum),
		Position:     Vec2F{X: float64(b.X), Y: float64(b.Y)},
		RootPosition: Vec2F{X: float64(b.XRoot), Y: float64(b.YRoot)},
	})
}

func (c *x11Context) onMotion(m *xlib.MotionEvent) {
	w := c.windows[m.Window]
	instant := instantFromX11Millis(uint64(m.Time))
	pos := Vec2F{X: float64(m.X), Y: float64(m.Y)}
	root := Vec2F{X: float64(m.XRoot), Y: float64(m.YRoot)}
	if w != nil && w.mouseOutside {
		// First motion after a leave: synthesize the enter the server
		// did not send.
		w.mouseOutside = false
		c.queue.push(MouseEnterEvent{
			Mouse:        c.coreMouse,
			Window:       WindowHandle(m.Window),
			Instant:      instant,
			Position:     pos,
			RootPosition: root,
		})
	}
	c.lastMousePos = pos
	c.queue.push(MouseMotionEvent{
		Mouse:        c.coreMouse,
		Window:       WindowHandle(m.Window),
		Instant:      instant,
		Position:     pos,
		RootPosition: root,
	})
}

func (c *x11Context) onCrossing(cr *xlib.CrossingEvent, enter bool) {
	w := c.windows[cr.Window]
	instant := instantFromX11Millis(uint64(cr.Time))
	pos := Vec2F{X: float64(cr.X), Y: float64(cr.Y)}
	root := Vec2F{X: float64(cr.XRoot), Y: float64(cr.YRoot)}
	grabbed := cr.Mode == xlib.NotifyGrab || cr.Mode == xlib.NotifyUngrab
	focused := cr.Focus != 0
	if enter {
		if w != nil {
			w.mouseOutside = false
		}
		c.queue.push(MouseFocusGainedEvent{Mouse: c.coreMouse, Window: WindowHandle(cr.Window)})
		c.queue.push(MouseEnterEvent{
			Mouse:        c.coreMouse,
			Window:       WindowHandle(cr.Window),
			Instant:      instant,
			Position:     pos,
			RootPosition: root,
			Grabbed:      grabbed,
			Focused:      focused,
		})
		return
	}
	if w != nil {
		w.mouseOutside = true
	}
	c.queue.push(MouseLeaveEvent{
		Mouse:        c.coreMouse,
		Window:       WindowHandle(cr.Window),
		Instant:      instant,
		Position:     pos,
		RootPosition: root,
		Grabbed:      grabbed,
		Focused:      focused,
	})
	c.queue.push(MouseFocusLostEvent{Mouse: c.coreMouse, Window: WindowHandle(cr.Window)})
}

func (c *x11Context) onFocus(f *xlib.FocusChangeEvent, in bool) {
	if in {
		c.queue.push(KeyboardFocusGainedEvent{Keyboard: c.coreKeyboard, Window: WindowHandle(f.Window)})
		return
	}
	c.queue.push(KeyboardFocusLostEvent{Keyboard: c.coreKeyboard, Window: WindowHandle(f.Window)})
}

func (c *x11Context) onExpose(e *xlib.ExposeEvent) {
	c.queue.push(WindowContentDamagedEvent{
		Window:       WindowHandle(e.Window),
		Zone:         Rect{X: e.X, Y: e.Y, W: uint32(e.Width), H: uint32(e.Height)},
		MoreToFollow: e.Count > 0,
	})
}

func (c *x11Context) onConfigure(cf *xlib.ConfigureEvent) {
	w := c.windows[cf.Window]
	if w == nil {
		return
	}
	pos := Vec2{X: cf.X, Y: cf.Y}
	if cf.SendEvent == 0 {
		// Real ConfigureNotify carries parent-relative coordinates.
		var child xlib.Window
		xlib.XTranslateCoordinates(c.display, cf.Window, c.root, 0, 0, &pos.X, &pos.Y, &child)
	}
	size := Extent2{W: uint32(cf.Width), H: uint32(cf.Height)}
	byUser := cf.SendEvent == 0
	if pos != w.knownGeom.Position() {
		c.queue.push(WindowMovedEvent{Window: WindowHandle(cf.Window), Position: pos, ByUser: byUser})
	}
	if size != w.knownGeom.Size() {
		c.queue.push(WindowResizedEvent{Window: WindowHandle(cf.Window), Size: size, ByUser: byUser})
	}
	w.knownGeom = Rect{X: pos.X, Y: pos.Y, W: size.W, H: size.H}
}

func (c *x11Context) onProperty(p *xlib.PropertyEvent) {
	w := c.windows[p.Window]
	if w == nil {
		return
	}
	stateAtom, err := c.atom("_NET_WM_STATE")
	if err != nil || p.Atom != stateAtom {
		return
	}
	newState, err := w.netWMState()
	if err != nil {
		return
	}
	c.diffWMState(w, newState)
	w.knownState = newState
}

// diffWMState turns a _NET_WM_STATE transition into minimize, maximize
// and restore events.
func (c *x11Context) diffWMState(w *x11Window, newState map[xlib.Atom]bool) {
	horz, errH := c.atom("_NET_WM_STATE_MAXIMIZED_HORZ")
	vert, errV := c.atom("_NET_WM_STATE_MAXIMIZED_VERT")
	hidden, errHid := c.atom("_NET_WM_STATE_HIDDEN")

	handle := WindowHandle(w.win)
	restored := false
	if errH == nil && errV == nil {
		wasMax := w.knownState[horz] && w.knownState[vert]
		isMax := newState[horz] && newState[vert]
		if isMax && !wasMax {
			c.queue.push(WindowMaximizedEvent{Window: handle})
		}
		if wasMax && !isMax {
			restored = true
		}
	}
	if errHid == nil {
		wasHidden := w.knownState[hidden]
		isHidden := newState[hidden]
		if isHidden && !wasHidden {
			c.queue.push(WindowMinimizedEvent{Window: handle})
		}
		if wasHidden && !isHidden {
			restored = true
		}
	}
	if restored {
		c.queue.push(WindowRestoredEvent{Window: handle})
	}
}

func (c *x11Context) onClientMessage(cm *xlib.ClientMessageEvent) {
	if a, err := c.atom("WM_PROTOCOLS"); err == nil && cm.MessageType == a {
		c.onWMProtocol(cm)
		return
	}
	if a, err := c.atom("XdndEnter"); err == nil && cm.MessageType == a {
		c.onDndEnter(cm)
		return
	}
	if a, err := c.atom("XdndPosition"); err == nil && cm.MessageType == a {
		c.onDndPosition(cm)
		return
	}
	if a, err := c.atom("XdndLeave"); err == nil && cm.MessageType == a {
		c.onDndLeave(cm)
		return
	}
	if a, err := c.atom("XdndDrop"); err == nil && cm.MessageType == a {
		c.onDndDrop(cm)
		return
	}
}

func (c *x11Context) onWMProtocol(cm *xlib.ClientMessageEvent) {
	proto := xlib.Atom(cm.Data[0])
	if a, err := c.atom("WM_DELETE_WINDOW"); err == nil && proto == a {
		c.queue.push(WindowCloseRequestedEvent{Window: WindowHandle(cm.Window)})
		return
	}
	if a, err := c.atom("_NET_WM_PING"); err == nil && proto == a {
		// Bounce the ping back at the root window so the WM knows we
		// are alive. No portable event is produced.
		var reply xlib.XEvent
		r := reply.Client()
		*r = *cm
		r.Window = c.root
		xlib.XSendEvent(c.display, c.root, 0,
			xlib.SubstructureNotifyMask|xlib.SubstructureRedirectMask, &reply)
		c.flush()
		return
	}
	if a, err := c.atom("WM_TAKE_FOCUS"); err == nil && proto == a {
		xlib.XSetInputFocus(c.display, cm.Window, xlib.RevertToParent, xlib.Time(cm.Data[1]))
		c.flush()
		return
	}
}

// pickDndFormat picks the best offered target: file lists first, then
// UTF-8 text, then plain text, then whatever came first.
func (c *x11Context) pickDndFormat(offered []xlib.Atom) xlib.Atom {
	for _, name := range []string{"text/uri-list", "text/plain;charset=utf-8", "text/plain"} {
		want, err := c.atom(name)
		if err != nil {
			continue
		}
		for _, a := range offered {
			if a == want {
				return a
			}
		}
	}
	if len(offered) > 0 {
		return offered[0]
	}
	return xlib.None
}

func (c *x11Context) onDndEnter(cm *xlib.ClientMessageEvent) {
	w := c.windows[cm.Window]
	if w == nil {
		return
	}
	source := xlib.Window(cm.Data[0])
	version := cm.Data[1] >> 24
	if version > xdndVersion {
		version = xdndVersion
	}

	var offered []xlib.Atom
	if cm.Data[1]&1 != 0 {
		// More than three types: the full list lives on the source.
		if listAtom, err := c.atom("XdndTypeList"); err == nil {
			if pd, err := c.getPropCards(source, listAtom, xlib.XAAtom, 0, 64); err == nil {
				for _, v := range pd.data {
					offered = append(offered, xlib.Atom(v))
				}
			}
		}
	} else {
		for _, v := range cm.Data[2:5] {
			if v != 0 {
				offered = append(offered, xlib.Atom(v))
			}
		}
	}

	w.dndSource = source
	w.dndVersion = version
	w.dndFormat = c.pickDndFormat(offered)
	c.queue.push(DragAndDropBeginEvent{Window: WindowHandle(cm.Window)})
}

func (c *x11Context) sendDndMessage(target xlib.Window, messageType xlib.Atom, data [5]int64) {
	var ev xlib.XEvent
	m := ev.Client()
	m.Type = xlib.ClientMessage
	m.Window = target
	m.MessageType = messageType
	m.Format = 32
	copy(m.Data[:], data[:])
	xlib.XSendEvent(c.display, target, 0, 0, &ev)
	c.flush()
}

func (c *x11Context) onDndPosition(cm *xlib.ClientMessageEvent) {
	w := c.windows[cm.Window]
	if w == nil || w.dndSource == 0 {
		return
	}
	statusAtom, err := c.atom("XdndStatus")
	if err != nil {
		return
	}
	accept := int64(0)
	var action int64
	if w.dndFormat != xlib.None {
		accept = 1
		if copyAtom, err := c.atom("XdndActionCopy"); err == nil {
			action = int64(copyAtom)
		}
	}
	c.sendDndMessage(w.dndSource, statusAtom,
		[5]int64{int64(cm.Window), accept, 0, 0, action})
}

func (c *x11Context) onDndLeave(cm *xlib.ClientMessageEvent) {
	w := c.windows[cm.Window]
	if w == nil || w.dndSource == 0 {
		return
	}
	w.dndSource, w.dndVersion, w.dndFormat = 0, 0, xlib.None
	c.queue.push(DragAndDropCancelEvent{Window: WindowHandle(cm.Window)})
}

func (c *x11Context) onDndDrop(cm *xlib.ClientMessageEvent) {
	w := c.windows[cm.Window]
	if w == nil || w.dndSource == 0 {
		return
	}
	if w.dndFormat == xlib.None {
		c.finishDnd(w, false)
		c.queue.push(DragAndDropCancelEvent{Window: WindowHandle(cm.Window)})
		return
	}
	selAtom, err := c.atom("XdndSelection")
	if err != nil {
		return
	}
	destAtom, err := c.atom("_WINDC_DND_DATA")
	if err != nil {
		return
	}
	t := xlib.Time(cm.Data[2])
	if w.dndVersion < 1 || t == 0 {
		t = xlib.CurrentTime
	}
	// The data arrives later as a SelectionNotify.
	xlib.XConvertSelection(c.display, selAtom, w.dndFormat, destAtom, w.win, t)
	c.flush()
}

func (c *x11Context) finishDnd(w *x11Window, accepted bool) {
	finAtom, err := c.atom("XdndFinished")
	if err != nil || w.dndSource == 0 {
		return
	}
	var flag, action int64
	if accepted {
		flag = 1
		if copyAtom, err := c.atom("XdndActionCopy"); err == nil {
			action = int64(copyAtom)
		}
	}
	c.sendDndMessage(w.dndSource, finAtom, [5]int64{int64(w.win), flag, action, 0, 0})
	w.dndSource, w.dndVersion, w.dndFormat = 0, 0, xlib.None
}

func (c *x11Context) onSelectionNotify(s *xlib.SelectionEvent) {
	w := c.windows[s.Requestor]
	if w == nil || w.dndSource == 0 {
		return
	}
	destAtom, err := c.atom("_WINDC_DND_DATA")
	if err != nil || s.Property != destAtom {
		return
	}
	handle := WindowHandle(s.Requestor)
	pd, err := c.getPropBytes(s.Requestor, destAtom, s.Target, 0, 1<<20)
	if err != nil {
		c.finishDnd(w, false)
		c.queue.push(DragAndDropCancelEvent{Window: handle})
		return
	}
	c.deleteProp(s.Requestor, destAtom)

	uriList, _ := c.atom("text/uri-list")
	textUTF8, _ := c.atom("text/plain;charset=utf-8")
	textPlain, _ := c.atom("text/plain")
	switch s.Target {
	case uriList:
		for _, path := range parseURIList(string(pd.data)) {
			c.queue.push(DragAndDropFileEvent{Window: handle, Path: path})
		}
	case textUTF8, textPlain:
		c.queue.push(DragAndDropTextEvent{Window: handle, Text: string(pd.data)})
	default:
		c.queue.push(DragAndDropRawDataEvent{Window: handle, Data: pd.data})
	}
	c.finishDnd(w, true)
}

// parseURIList extracts local paths from a text/uri-list payload.
func parseURIList(s string) []string {
	var paths []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "file://"); ok {
			// Strip an authority component, usually empty or localhost.
			if i := strings.IndexByte(rest, '/'); i > 0 {
				rest = rest[i:]
			}
			paths = append(paths, rest)
			continue
		}
		paths = append(paths, line)
	}
	return paths
}

func (c *x11Context) onGenericEvent(cookie *xlib.XGenericEventCookie) {
	if c.xiErr != nil || cookie.Extension != c.xi.opcode {
		return
	}
	if xlib.XGetEventData(c.display, cookie) == 0 {
		return
	}
	defer xlib.XFreeEventData(c.display, cookie)

	raw := (*xlib.XIRawEvent)(unsafe.Pointer(cookie.Data))
	// Master devices re-deliver their slaves' raw events; keep the
	// slave's copy only.
	if raw.DeviceID != raw.SourceID {
		return
	}
	switch cookie.Evtype {
	case xlib.XIRawKeyPress:
		c.lastRawKeyDevice = raw.DeviceID
		c.lastRawKeyTime = raw.Time
		c.lastRawKeyCode = uint32(raw.Detail)
	case xlib.XIRawTouchBegin, xlib.XIRawTouchUpdate, xlib.XIRawTouchEnd:
		c.onRawTouch(raw, cookie.Evtype)
	}
}

func (c *x11Context) onRawTouch(raw *xlib.XIRawEvent, evtype int32) {
	instant := instantFromX11Millis(uint64(raw.Time))
	x, _ := raw.RawValuator(0)
	y, _ := raw.RawValuator(1)
	touch := DeviceID{Backend: DeviceBackendX11, Token: 0, Native: int64(raw.DeviceID)}
	switch evtype {
	case xlib.XIRawTouchBegin:
		c.queue.push(TouchFingerPressedEvent{
			Touch:    touch,
			Instant:  instant,
			Finger:   uint32(raw.Detail),
			Pressure: 1,
			Position: Vec2F{X: x, Y: y},
		})
	case xlib.XIRawTouchUpdate:
		c.queue.push(TouchFingerMotionEvent{
			Touch:    touch,
			Instant:  instant,
			Finger:   uint32(raw.Detail),
			Pressure: 1,
			Position: Vec2F{X: x, Y: y},
		})
	case xlib.XIRawTouchEnd:
		c.queue.push(TouchFingerReleasedEvent{
			Touch:    touch,
			Instant:  instant,
			Finger:   uint32(raw.Detail),
			Position: Vec2F{X: x, Y: y},
		})
	}
}
