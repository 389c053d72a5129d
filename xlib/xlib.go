//go:build linux || freebsd

// Package xlib provides runtime bindings to libX11 (plus the Xcursor,
// Xrender and Xi extension libraries) via purego. No cgo is involved:
// every entry point is resolved with dlopen/dlsym at Load time and stored
// in a package-level function variable.
//
// The function variables double as seams: tests replace them with fakes
// and never load the real libraries.
package xlib

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

// Handle types, mirroring the Xlib typedefs on 64-bit platforms.
type (
	Display  = uintptr // Display*
	XID      = uint64
	Window   = XID
	Pixmap   = XID
	Cursor   = XID
	Colormap = XID
	Atom     = uint64
	Time     = uint64
	KeySym   = uint64
	XIM      = uintptr
	XIC      = uintptr
	GC       = uintptr
	Status   = int32
)

var (
	libX11 uintptr

	loadOnce sync.Once
	loadErr  error
)

// Core connection and event management.
var (
	XOpenDisplay      func(name *byte) Display
	XCloseDisplay     func(d Display) int32
	XSync             func(d Display, discard int32) int32
	XFlush            func(d Display) int32
	XPending          func(d Display) int32
	XNextEvent        func(d Display, ev *XEvent) int32
	XPeekEvent        func(d Display, ev *XEvent) int32
	XSendEvent        func(d Display, w Window, propagate int32, mask int64, ev *XEvent) Status
	XFilterEvent      func(ev *XEvent, w Window) int32
	XGetEventData     func(d Display, cookie *XGenericEventCookie) int32
	XFreeEventData    func(d Display, cookie *XGenericEventCookie)
	XConvertSelection func(d Display, selection, target, property Atom, requestor Window, t Time) int32
	XSetInputFocus    func(d Display, w Window, revertTo int32, t Time) int32
	XFree             func(p uintptr) int32
	XInternAtoms      func(d Display, names **byte, count int32, onlyIfExists int32, out *Atom) Status
	XGetAtomName      func(d Display, a Atom) uintptr
	XDefaultScreen    func(d Display) int32
	XDefaultRootWindow func(d Display) Window
	XDefaultVisual    func(d Display, screen int32) uintptr
	XDefaultDepth     func(d Display, screen int32) int32
	XDisplayWidth     func(d Display, screen int32) int32
	XDisplayHeight    func(d Display, screen int32) int32
	XWhitePixel       func(d Display, screen int32) uint64
	XQueryExtension   func(d Display, name *byte, opcode, event, err *int32) int32
)

// Window and resource lifecycle.
var (
	XCreateWindow    func(d Display, parent Window, x, y int32, w, h, borderW uint32, depth int32, class uint32, visual uintptr, valuemask uint64, attrs *SetWindowAttributes) Window
	XDestroyWindow   func(d Display, w Window) int32
	XCreateColormap  func(d Display, w Window, visual uintptr, alloc int32) Colormap
	XFreeColormap    func(d Display, cmap Colormap) int32
	XMapWindow       func(d Display, w Window) int32
	XMapRaised       func(d Display, w Window) int32
	XUnmapWindow     func(d Display, w Window) int32
	XRaiseWindow     func(d Display, w Window) int32
	XLowerWindow     func(d Display, w Window) int32
	XMoveWindow      func(d Display, w Window, x, y int32) int32
	XResizeWindow    func(d Display, w Window, width, height uint32) int32
	XMoveResizeWindow func(d Display, w Window, x, y int32, width, height uint32) int32
	XIconifyWindow   func(d Display, w Window, screen int32) Status
	XGetGeometry     func(d Display, drawable XID, root *Window, x, y *int32, width, height, borderW, depth *uint32) Status
	XQueryTree       func(d Display, w Window, root, parent *Window, children *uintptr, nChildren *uint32) Status
	XTranslateCoordinates func(d Display, src, dst Window, srcX, srcY int32, dstX, dstY *int32, child *Window) int32
	XQueryPointer    func(d Display, w Window, root, child *Window, rootX, rootY, winX, winY *int32, mask *uint32) int32
)

// WM protocol surface.
var (
	XSetWMProtocols   func(d Display, w Window, protocols *Atom, count int32) Status
	XSetWMNormalHints func(d Display, w Window, hints *SizeHints)
	XGetWMNormalHints func(d Display, w Window, hints *SizeHints, supplied *int64) Status
	XSetWMHints       func(d Display, w Window, hints *WMHints) int32
	XSetClassHint     func(d Display, w Window, hint *ClassHint) int32
	XSetCommand       func(d Display, w Window, argv **byte, argc int32) int32

	XChangeProperty   func(d Display, w Window, prop, typ Atom, format int32, mode int32, data uintptr, nelements int32) int32
	XDeleteProperty   func(d Display, w Window, prop Atom) int32
	XGetWindowProperty func(d Display, w Window, prop Atom, longOffset, longLength int64, delete int32, reqType Atom, actualType *Atom, actualFormat *int32, nitems, bytesAfter *uint64, data *uintptr) int32

	Xutf8TextListToTextProperty func(d Display, list **byte, count int32, style int32, prop *TextProperty) int32
	Xutf8TextPropertyToTextList func(d Display, prop *TextProperty, list *uintptr, count *int32) int32
	XFreeStringList             func(list uintptr)
	XSetWMName                  func(d Display, w Window, prop *TextProperty)
	XSetWMIconName              func(d Display, w Window, prop *TextProperty)
	XSetTextProperty            func(d Display, w Window, prop *TextProperty, atom Atom)
	XGetTextProperty            func(d Display, w Window, prop *TextProperty, atom Atom) Status
)

// Pointer, keyboard and cursor management.
var (
	XGrabPointer      func(d Display, grabWindow Window, ownerEvents int32, eventMask uint32, pointerMode, keyboardMode int32, confineTo Window, cursor Cursor, t Time) int32
	XUngrabPointer    func(d Display, t Time) int32
	XDefineCursor     func(d Display, w Window, c Cursor) int32
	XUndefineCursor   func(d Display, w Window) int32
	XCreateFontCursor func(d Display, shape uint32) Cursor
	XCreatePixmapCursor func(d Display, source, mask Pixmap, fg, bg *Color, x, y uint32) Cursor
	XFreeCursor       func(d Display, c Cursor) int32
	XQueryBestCursor  func(d Display, drawable XID, width, height uint32, bestW, bestH *uint32) Status
	XCreateBitmapFromData func(d Display, drawable XID, data *byte, width, height uint32) Pixmap
	XFreePixmap       func(d Display, p Pixmap) int32

	XQueryKeymap    func(d Display, keys *byte) int32
	XLookupKeysym   func(ev *XKeyEvent, index int32) KeySym
	XKeysymToString func(ks KeySym) uintptr
)

// Input methods (text input).
var (
	XOpenIM          func(d Display, db, resName, resClass uintptr) XIM
	XCloseIM         func(im XIM) Status
	XCreateIC        func(im XIM, k1 *byte, v1 uintptr, k2 *byte, v2 Window, term uintptr) XIC
	XDestroyIC       func(ic XIC)
	XSetICFocus      func(ic XIC)
	XUnsetICFocus    func(ic XIC)
	Xutf8LookupString func(ic XIC, ev *XKeyEvent, buf *byte, bufLen int32, keysym *KeySym, status *Status) int32
	Xutf8ResetIC     func(ic XIC) uintptr
)

// Error handling. Handlers are registered as raw callback pointers
// obtained from purego.NewCallback.
var (
	XSetErrorHandler   func(handler uintptr) uintptr
	XSetIOErrorHandler func(handler uintptr) uintptr
	XGetErrorText      func(d Display, code int32, buf *byte, bufLen int32) int32
)

// Load resolves libX11 and the extension libraries. It is safe to call
// more than once; only the first call does work.
func Load() error {
	loadOnce.Do(func() { loadErr = load() })
	return loadErr
}

func load() error {
	var err error
	libX11, err = purego.Dlopen("libX11.so.6", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("xlib: %w", err)
	}
	registerCore()
	if err := loadXcursor(); err != nil {
		return err
	}
	if err := loadXrender(); err != nil {
		return err
	}
	if err := loadXi(); err != nil {
		return err
	}
	return nil
}

func registerCore() {
	register := func(fptr any, name string) {
		purego.RegisterLibFunc(fptr, libX11, name)
	}
	register(&XOpenDisplay, "XOpenDisplay")
	register(&XCloseDisplay, "XCloseDisplay")
	register(&XSync, "XSync")
	register(&XFlush, "XFlush")
	register(&XPending, "XPending")
	register(&XNextEvent, "XNextEvent")
	register(&XPeekEvent, "XPeekEvent")
	register(&XSendEvent, "XSendEvent")
	register(&XFilterEvent, "XFilterEvent")
	register(&XGetEventData, "XGetEventData")
	register(&XFreeEventData, "XFreeEventData")
	register(&XConvertSelection, "XConvertSelection")
	register(&XSetInputFocus, "XSetInputFocus")
	register(&XFree, "XFree")
	register(&XInternAtoms, "XInternAtoms")
	register(&XGetAtomName, "XGetAtomName")
	register(&XDefaultScreen, "XDefaultScreen")
	register(&XDefaultRootWindow, "XDefaultRootWindow")
	register(&XDefaultVisual, "XDefaultVisual")
	register(&XDefaultDepth, "XDefaultDepth")
	register(&XDisplayWidth, "XDisplayWidth")
	register(&XDisplayHeight, "XDisplayHeight")
	register(&XWhitePixel, "XWhitePixel")
	register(&XQueryExtension, "XQueryExtension")

	register(&XCreateWindow, "XCreateWindow")
	register(&XDestroyWindow, "XDestroyWindow")
	register(&XCreateColormap, "XCreateColormap")
	register(&XFreeColormap, "XFreeColormap")
	register(&XMapWindow, "XMapWindow")
	register(&XMapRaised, "XMapRaised")
	register(&XUnmapWindow, "XUnmapWindow")
	register(&XRaiseWindow, "XRaiseWindow")
	register(&XLowerWindow, "XLowerWindow")
	register(&XMoveWindow, "XMoveWindow")
	register(&XResizeWindow, "XResizeWindow")
	register(&XMoveResizeWindow, "XMoveResizeWindow")
	register(&XIconifyWindow, "XIconifyWindow")
	register(&XGetGeometry, "XGetGeometry")
	register(&XQueryTree, "XQueryTree")
	register(&XTranslateCoordinates, "XTranslateCoordinates")
	register(&XQueryPointer, "XQueryPointer")

	register(&XSetWMProtocols, "XSetWMProtocols")
	register(&XSetWMNormalHints, "XSetWMNormalHints")
	register(&XGetWMNormalHints, "XGetWMNormalHints")
	register(&XSetWMHints, "XSetWMHints")
	register(&XSetClassHint, "XSetClassHint")
	register(&XSetCommand, "XSetCommand")
	register(&XChangeProperty, "XChangeProperty")
	register(&XDeleteProperty, "XDeleteProperty")
	register(&XGetWindowProperty, "XGetWindowProperty")
	register(&Xutf8TextListToTextProperty, "Xutf8TextListToTextProperty")
	register(&Xutf8TextPropertyToTextList, "Xutf8TextPropertyToTextList")
	register(&XFreeStringList, "XFreeStringList")
	register(&XSetWMName, "XSetWMName")
	register(&XSetWMIconName, "XSetWMIconName")
	register(&XSetTextProperty, "XSetTextProperty")
	register(&XGetTextProperty, "XGetTextProperty")

	register(&XGrabPointer, "XGrabPointer")
	register(&XUngrabPointer, "XUngrabPointer")
	register(&XDefineCursor, "XDefineCursor")
	register(&XUndefineCursor, "XUndefineCursor")
	register(&XCreateFontCursor, "XCreateFontCursor")
	register(&XCreatePixmapCursor, "XCreatePixmapCursor")
	register(&XFreeCursor, "XFreeCursor")
	register(&XQueryBestCursor, "XQueryBestCursor")
	register(&XCreateBitmapFromData, "XCreateBitmapFromData")
	register(&XFreePixmap, "XFreePixmap")
	register(&XQueryKeymap, "XQueryKeymap")
	register(&XLookupKeysym, "XLookupKeysym")
	register(&XKeysymToString, "XKeysymToString")

	register(&XOpenIM, "XOpenIM")
	register(&XCloseIM, "XCloseIM")
	register(&XCreateIC, "XCreateIC")
	register(&XDestroyIC, "XDestroyIC")
	register(&XSetICFocus, "XSetICFocus")
	register(&XUnsetICFocus, "XUnsetICFocus")
	register(&Xutf8LookupString, "Xutf8LookupString")
	register(&Xutf8ResetIC, "Xutf8ResetIC")

	register(&XSetErrorHandler, "XSetErrorHandler")
	register(&XSetIOErrorHandler, "XSetIOErrorHandler")
	register(&XGetErrorText, "XGetErrorText")
}
