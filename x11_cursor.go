//go:build linux || freebsd

package windc

import (
	"github.com/lunarsen/windc/xlib"
)

// x11Cursor wraps one server-side cursor.
type x11Cursor struct {
	ctx    *x11Context
	cursor xlib.Cursor
}

func (c *x11Cursor) destroy() error {
	if c.cursor != 0 {
		xlib.XFreeCursor(c.ctx.display, c.cursor)
		c.cursor = 0
	}
	return nil
}

var x11FontCursorShapes = map[SystemCursor]uint32{
	SystemCursorArrow:      xlib.XCLeftPtr,
	SystemCursorHand:       xlib.XCHand2,
	SystemCursorIbeam:      xlib.XCXterm,
	SystemCursorCrosshair:  xlib.XCCrosshair,
	SystemCursorWait:       xlib.XCWatch,
	SystemCursorQuestion:   xlib.XCQuestionArrow,
	SystemCursorMove:       xlib.XCFleur,
	SystemCursorResizeNS:   xlib.XCSBVDoubleArrow,
	SystemCursorResizeWE:   xlib.XCSBHDoubleArrow,
	SystemCursorResizeNWSE: xlib.XCBottomRightCorner,
	SystemCursorResizeNESW: xlib.XCBottomLeftCorner,
	SystemCursorForbidden:  xlib.XCPirate,
}

func (c *x11Context) createSystemCursor(shape SystemCursor) (osCursor, error) {
	xc, ok := x11FontCursorShapes[shape]
	if !ok {
		return nil, InvalidArgument("unknown system cursor")
	}
	cur := xlib.XCreateFontCursor(c.display, xc)
	if cur == 0 {
		return nil, Failed("XCreateFontCursor failed")
	}
	return &x11Cursor{ctx: c, cursor: cur}, nil
}

// fillXcursorImage copies straight RGBA pixels into Xcursor's packed
// ARGB layout.
func fillXcursorImage(img *xlib.XcursorImage, frame *CursorFrame) {
	img.Xhot = uint32(frame.Hotspot.X)
	img.Yhot = uint32(frame.Hotspot.Y)
	img.Delay = frame.DelayMS
	dst := img.ImagePixels()
	for i, p := range frame.Pixels {
		if i >= len(dst) {
			break
		}
		dst[i] = uint32(p.A)<<24 | uint32(p.R)<<16 | uint32(p.G)<<8 | uint32(p.B)
	}
}

func (c *x11Context) checkCursorFrame(frame *CursorFrame) error {
	if c.xrenderErr != nil {
		return Unsupported("RGBA cursors need XRender: " + c.xrenderErr.Error())
	}
	if !c.xrender.argb32 {
		return Unsupported("server has no ARGB32 picture format")
	}
	if int(frame.Size.W)*int(frame.Size.H) > len(frame.Pixels) {
		return InvalidArgument("cursor pixel buffer shorter than size")
	}
	return nil
}

func (c *x11Context) createRGBACursor(frame *CursorFrame) (osCursor, error) {
	if err := c.checkCursorFrame(frame); err != nil {
		return nil, err
	}
	img := xlib.XcursorImageCreate(int32(frame.Size.W), int32(frame.Size.H))
	if img == nil {
		return nil, Failed("XcursorImageCreate failed")
	}
	defer xlib.XcursorImageDestroy(img)
	fillXcursorImage(img, frame)
	cur := xlib.XcursorImageLoadCursor(c.display, img)
	if cur == 0 {
		return nil, Failed("XcursorImageLoadCursor failed")
	}
	return &x11Cursor{ctx: c, cursor: cur}, nil
}

func (c *x11Context) createAnimatedCursor(frames []CursorFrame) (osCursor, error) {
	if len(frames) == 0 {
		return nil, InvalidArgument("no cursor frames")
	}
	for i := range frames {
		if err := c.checkCursorFrame(&frames[i]); err != nil {
			return nil, err
		}
	}
	imgs := xlib.XcursorImagesCreate(int32(len(frames)))
	if imgs == nil {
		return nil, Failed("XcursorImagesCreate failed")
	}
	defer xlib.XcursorImagesDestroy(imgs)
	for i := range frames {
		img := xlib.XcursorImageCreate(int32(frames[i].Size.W), int32(frames[i].Size.H))
		if img == nil {
			return nil, Failed("XcursorImageCreate failed")
		}
		fillXcursorImage(img, &frames[i])
		imgs.SetImage(i, img)
	}
	imgs.NImage = int32(len(frames))
	cur := xlib.XcursorImagesLoadCursor(c.display, imgs)
	if cur == 0 {
		return nil, Failed("XcursorImagesLoadCursor failed")
	}
	return &x11Cursor{ctx: c, cursor: cur}, nil
}
