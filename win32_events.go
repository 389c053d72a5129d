//go:build windows

package windc

import (
	"unicode/utf16"
	"unsafe"
)

// handleMessage translates one window message into portable events.
// Messages with default behavior worth keeping fall through to
// DefWindowProcW.
func (w *win32Window) handleMessage(message uint32, wParam, lParam uintptr) uintptr {
	c := w.ctx
	switch message {
	case wmClose:
		c.queue.push(WindowCloseRequestedEvent{Window: w.handle()})
		return 0

	case wmShowWindow:
		if wParam != 0 {
			c.queue.push(WindowShownEvent{Window: w.handle()})
		} else {
			c.queue.push(WindowHiddenEvent{Window: w.handle()})
		}

	case wmPaint:
		var client winRect
		procGetClientRect.Call(uintptr(w.win), uintptr(unsafe.Pointer(&client)))
		c.queue.push(WindowContentDamagedEvent{
			Window: w.handle(),
			Zone:   Rect{W: uint32(client.right), H: uint32(client.bottom)},
		})
		procValidateRect.Call(uintptr(w.win), 0)
		return 0

	case wmGetMinMaxInfo:
		w.onMinMaxInfo(lParam)
		return 0

	case wmWindowPosChanged:
		w.onPosChanged()
		// Fall through so WM_SIZE still fires for state tracking.

	case wmSize:
		w.onSizeState(wParam)

	case wmSetFocus:
		c.queue.push(KeyboardFocusGainedEvent{Keyboard: c.coreKeyboard, Window: w.handle()})
		return 0
	case wmKillFocus:
		c.queue.push(KeyboardFocusLostEvent{Keyboard: c.coreKeyboard, Window: w.handle()})
		return 0

	case wmKeyDown, wmSysKeyDown:
		w.onKey(wParam, lParam, true)
	case wmKeyUp, wmSysKeyUp:
		w.onKey(wParam, lParam, false)
	case wmChar:
		w.onChar(wParam)
		return 0

	case wmMouseMove:
		w.onMouseMove(lParam)
		return 0
	case wmMouseLeave:
		w.onMouseLeave()
		return 0

	case wmLButtonDown:
		w.onButton(MouseButtonLeft, lParam, true, ClickSingle)
		return 0
	case wmLButtonDblClk:
		w.onButton(MouseButtonLeft, lParam, true, ClickDouble)
		return 0
	case wmLButtonUp:
		w.onButton(MouseButtonLeft, lParam, false, ClickSingle)
		return 0
	case wmMButtonDown:
		w.onButton(MouseButtonMiddle, lParam, true, ClickSingle)
		return 0
	case wmMButtonDblClk:
		w.onButton(MouseButtonMiddle, lParam, true, ClickDouble)
		return 0
	case wmMButtonUp:
		w.onButton(MouseButtonMiddle, lParam, false, ClickSingle)
		return 0
	case wmRButtonDown:
		w.onButton(MouseButtonRight, lParam, true, ClickSingle)
		return 0
	case wmRButtonDblClk:
		w.onButton(MouseButtonRight, lParam, true, ClickDouble)
		return 0
	case wmRButtonUp:
		w.onButton(MouseButtonRight, lParam, false, ClickSingle)
		return 0
	case wmXButtonDown:
		w.onButton(win32XButton(wParam), lParam, true, ClickSingle)
		return 1
	case wmXButtonDblClk:
		w.onButton(win32XButton(wParam), lParam, true, ClickDouble)
		return 1
	case wmXButtonUp:
		w.onButton(win32XButton(wParam), lParam, false, ClickSingle)
		return 1

	case wmMouseWheel:
		w.onWheel(wParam, false)
		return 0
	case wmMouseHWheel:
		w.onWheel(wParam, true)
		return 0

	case wmSetCursor:
		if lParam&0xFFFF == htClient {
			procSetCursor.Call(uintptr(w.effectiveCursor()))
			return 1
		}
	}
	return defWindowProc(w.win, message, wParam, lParam)
}

func (w *win32Window) onMinMaxInfo(lParam uintptr) {
	info := (*minMaxInfo)(unsafe.Pointer(lParam))
	if w.minSize.W != 0 || w.minSize.H != 0 {
		outer := w.frameOffsets(winRect{right: int32(w.minSize.W), bottom: int32(w.minSize.H)})
		info.ptMinTrackSize = winPoint{x: outer.right - outer.left, y: outer.bottom - outer.top}
	}
	if w.maxSize.W != 0 || w.maxSize.H != 0 {
		outer := w.frameOffsets(winRect{right: int32(w.maxSize.W), bottom: int32(w.maxSize.H)})
		info.ptMaxTrackSize = winPoint{x: outer.right - outer.left, y: outer.bottom - outer.top}
	}
}

func (w *win32Window) onPosChanged() {
	geom, err := w.positionAndSize()
	if err != nil {
		return
	}
	byUser := w.selfChange == 0
	if geom.Position() != w.knownGeom.Position() {
		w.ctx.queue.push(WindowMovedEvent{Window: w.handle(), Position: geom.Position(), ByUser: byUser})
	}
	if geom.Size() != w.knownGeom.Size() {
		w.ctx.queue.push(WindowResizedEvent{Window: w.handle(), Size: geom.Size(), ByUser: byUser})
	}
	w.knownGeom = geom
}

const (
	sizeRestored  = 0
	sizeMinimized = 1
	sizeMaximized = 2
)

func (w *win32Window) onSizeState(wParam uintptr) {
	switch wParam {
	case sizeMinimized:
		if !w.stateMin {
			w.stateMin = true
			w.ctx.queue.push(WindowMinimizedEvent{Window: w.handle()})
		}
	case sizeMaximized:
		if !w.stateMax {
			w.stateMax = true
			w.stateMin = false
			w.ctx.queue.push(WindowMaximizedEvent{Window: w.handle()})
		}
	case sizeRestored:
		if w.stateMin || w.stateMax {
			w.stateMin, w.stateMax = false, false
			w.ctx.queue.push(WindowRestoredEvent{Window: w.handle()})
		}
	}
}

func (w *win32Window) onKey(wParam, lParam uintptr, pressed bool) {
	// Physical key: scancode plus the extended bit, so the right-hand
	// modifier keys stay distinct.
	code := Keycode((lParam >> 16) & 0xFF)
	if lParam&(1<<24) != 0 {
		code |= 0x100
	}
	c := w.ctx
	if pressed {
		c.queue.push(KeyPressedEvent{
			Keyboard: c.coreKeyboard,
			Window:   w.handle(),
			Instant:  c.messageInstant(),
			Key:      code,
			VKey:     Keysym(wParam),
			IsRepeat: lParam&(1<<30) != 0,
		})
	} else {
		c.queue.push(KeyReleasedEvent{
			Keyboard: c.coreKeyboard,
			Window:   w.handle(),
			Instant:  c.messageInstant(),
			Key:      code,
			VKey:     Keysym(wParam),
		})
	}
}

func (w *win32Window) onChar(wParam uintptr) {
	u := uint16(wParam)
	if utf16.IsSurrogate(rune(u)) {
		if w.pendingSurrogate == 0 {
			w.pendingSurrogate = u
			return
		}
		r := utf16.DecodeRune(rune(w.pendingSurrogate), rune(u))
		w.pendingSurrogate = 0
		w.pushText(string(r))
		return
	}
	w.pendingSurrogate = 0
	if u < 0x20 || u == 0x7F {
		return
	}
	w.pushText(string(rune(u)))
}

func (w *win32Window) pushText(s string) {
	c := w.ctx
	c.queue.push(TextInputEvent{
		Window:  w.handle(),
		Instant: c.messageInstant(),
		Text:    s,
	})
}

func win32XButton(wParam uintptr) MouseButton {
	if (wParam>>16)&0xFFFF == xbutton2 {
		return MouseButtonForward
	}
	return MouseButtonBack
}

func (w *win32Window) mousePositions(lParam uintptr) (Vec2F, Vec2F) {
	x := int16(lParam & 0xFFFF)
	y := int16((lParam >> 16) & 0xFFFF)
	pt := winPoint{x: int32(x), y: int32(y)}
	procClientToScreen.Call(uintptr(w.win), uintptr(unsafe.Pointer(&pt)))
	return Vec2F{X: float64(x), Y: float64(y)}, Vec2F{X: float64(pt.x), Y: float64(pt.y)}
}

func (w *win32Window) focused() bool {
	f, _, _ := procGetFocus.Call()
	return hwnd(f) == w.win
}

func (w *win32Window) onMouseMove(lParam uintptr) {
	c := w.ctx
	pos, root := w.mousePositions(lParam)
	if !w.mouseInside {
		w.mouseInside = true
		track := trackMouseEventArgs{
			cbSize:    uint32(unsafe.Sizeof(trackMouseEventArgs{})),
			dwFlags:   tmeLeave,
			hwndTrack: w.win,
		}
		procTrackMouseEvent.Call(uintptr(unsafe.Pointer(&track)))
		c.queue.push(MouseFocusGainedEvent{Mouse: c.coreMouse, Window: w.handle()})
		c.queue.push(MouseEnterEvent{
			Mouse:        c.coreMouse,
			Window:       w.handle(),
			Instant:      c.messageInstant(),
			Position:     pos,
			RootPosition: root,
			Grabbed:      w.trapped,
			Focused:      w.focused(),
		})
		w.refreshCursor()
	}
	c.queue.push(MouseMotionEvent{
		Mouse:        c.coreMouse,
		Window:       w.handle(),
		Instant:      c.messageInstant(),
		Position:     pos,
		RootPosition: root,
	})
}

func (w *win32Window) onMouseLeave() {
	c := w.ctx
	w.mouseInside = false
	c.queue.push(MouseLeaveEvent{
		Mouse:   c.coreMouse,
		Window:  w.handle(),
		Instant: c.messageInstant(),
		Grabbed: w.trapped,
		Focused: w.focused(),
	})
	c.queue.push(MouseFocusLostEvent{Mouse: c.coreMouse, Window: w.handle()})
}

func (w *win32Window) onButton(button MouseButton, lParam uintptr, pressed bool, click Click) {
	c := w.ctx
	pos, root := w.mousePositions(lParam)
	if pressed {
		c.queue.push(MouseButtonPressedEvent{
			Mouse:        c.coreMouse,
			Window:       w.handle(),
			Instant:      c.messageInstant(),
			Button:       button,
			Click:        click,
			Position:     pos,
			RootPosition: root,
		})
	} else {
		c.queue.push(MouseButtonReleasedEvent{
			Mouse:        c.coreMouse,
			Window:       w.handle(),
			Instant:      c.messageInstant(),
			Button:       button,
			Position:     pos,
			RootPosition: root,
		})
	}
}

func (w *win32Window) onWheel(wParam uintptr, horizontal bool) {
	c := w.ctx
	delta := int32(int16(wParam>>16)) / wheelDelta
	scroll := Vec2{Y: delta}
	if horizontal {
		// Positive WM_MOUSEHWHEEL means scrolling right.
		scroll = Vec2{X: delta}
	}
	c.queue.push(MouseScrollEvent{
		Mouse:   c.coreMouse,
		Window:  w.handle(),
		Instant: c.messageInstant(),
		Scroll:  scroll,
	})
}
