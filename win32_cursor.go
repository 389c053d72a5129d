//go:build windows

package windc

import "unsafe"

type win32Cursor struct {
	handle hcursor
	// shared cursors come from LoadCursorW and belong to the system.
	shared bool
}

func (c *win32Cursor) destroy() error {
	if c.shared || c.handle == 0 {
		c.handle = 0
		return nil
	}
	clearLastError()
	if r, _, _ := procDestroyCursor.Call(uintptr(c.handle)); r == 0 {
		return winFailed("DestroyCursor")
	}
	c.handle = 0
	return nil
}

func win32CursorShape(shape SystemCursor) uintptr {
	switch shape {
	case SystemCursorArrow:
		return idcArrow
	case SystemCursorHand:
		return idcHand
	case SystemCursorIbeam:
		return idcIBeam
	case SystemCursorCrosshair:
		return idcCross
	case SystemCursorWait:
		return idcWait
	case SystemCursorQuestion:
		return idcHelp
	case SystemCursorMove:
		return idcSizeAll
	case SystemCursorResizeNS:
		return idcSizeNS
	case SystemCursorResizeWE:
		return idcSizeWE
	case SystemCursorResizeNWSE:
		return idcSizeNWSE
	case SystemCursorResizeNESW:
		return idcSizeNESW
	case SystemCursorForbidden:
		return idcNo
	}
	return idcArrow
}

func (c *win32Context) createSystemCursor(shape SystemCursor) (osCursor, error) {
	clearLastError()
	h, _, _ := procLoadCursor.Call(0, win32CursorShape(shape))
	if h == 0 {
		return nil, winFailed("LoadCursorW")
	}
	return &win32Cursor{handle: hcursor(h), shared: true}, nil
}

func checkWin32CursorFrame(frame *CursorFrame) error {
	if frame.Size.W == 0 || frame.Size.H == 0 {
		return InvalidArgument("zero cursor size")
	}
	if int(frame.Size.W)*int(frame.Size.H) > len(frame.Pixels) {
		return InvalidArgument("cursor pixel buffer shorter than size")
	}
	return nil
}

func (c *win32Context) createRGBACursor(frame *CursorFrame) (osCursor, error) {
	if err := checkWin32CursorFrame(frame); err != nil {
		return nil, err
	}
	w, h := int(frame.Size.W), int(frame.Size.H)

	// 32bpp top-down BGRA for the color plane; the monochrome mask is
	// ignored when the color plane carries alpha but must still exist.
	bgra := make([]byte, w*h*4)
	for i, p := range frame.Pixels[:w*h] {
		bgra[i*4+0] = p.B
		bgra[i*4+1] = p.G
		bgra[i*4+2] = p.R
		bgra[i*4+3] = p.A
	}
	// Mask rows are word aligned.
	mask := make([]byte, ((w+15)/16*2)*h)

	clearLastError()
	color, _, _ := procCreateBitmap.Call(uintptr(w), uintptr(h), 1, 32, uintptr(unsafe.Pointer(&bgra[0])))
	if color == 0 {
		return nil, winFailed("CreateBitmap")
	}
	defer procDeleteObject.Call(color)
	mono, _, _ := procCreateBitmap.Call(uintptr(w), uintptr(h), 1, 1, uintptr(unsafe.Pointer(&mask[0])))
	if mono == 0 {
		return nil, winFailed("CreateBitmap")
	}
	defer procDeleteObject.Call(mono)

	info := iconInfo{
		fIcon:    0,
		xHotspot: uint32(frame.Hotspot.X),
		yHotspot: uint32(frame.Hotspot.Y),
		hbmMask:  hbitmap(mono),
		hbmColor: hbitmap(color),
	}
	cur, _, _ := procCreateIconIndirect.Call(uintptr(unsafe.Pointer(&info)))
	if cur == 0 {
		return nil, winFailed("CreateIconIndirect")
	}
	return &win32Cursor{handle: hcursor(cur)}, nil
}

func (c *win32Context) createAnimatedCursor(frames []CursorFrame) (osCursor, error) {
	if len(frames) == 0 {
		return nil, InvalidArgument("no cursor frames")
	}
	if len(frames) == 1 {
		return c.createRGBACursor(&frames[0])
	}
	// Win32 animated cursors only load from .ani resources.
	return nil, Unsupported("in-memory animated cursors are not supported on Win32")
}
