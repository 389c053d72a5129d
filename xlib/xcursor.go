//go:build linux || freebsd

package xlib

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Xcursor bindings (libXcursor). Used for RGBA and animated cursors;
// core font cursors go through XCreateFontCursor instead.

// XcursorImage mirrors the libXcursor struct of the same name.
type XcursorImage struct {
	Version uint32
	Size    uint32
	Width   uint32
	Height  uint32
	Xhot    uint32
	Yhot    uint32
	Delay   uint32 // milliseconds, used for animated cursors
	_       uint32
	Pixels  uintptr // *uint32, ARGB packed
}

// XcursorImages mirrors XcursorImages: a counted vector of frame pointers.
type XcursorImages struct {
	NImage int32
	_      int32
	Images uintptr // **XcursorImage
	Name   uintptr
}

var (
	libXcursor uintptr

	XcursorImageCreate func(width, height int32) *XcursorImage
	XcursorImageDestroy func(img *XcursorImage)
	XcursorImagesCreate func(size int32) *XcursorImages
	XcursorImagesDestroy func(imgs *XcursorImages)
	XcursorImageLoadCursor  func(d Display, img *XcursorImage) Cursor
	XcursorImagesLoadCursor func(d Display, imgs *XcursorImages) Cursor
	XcursorLibraryLoadCursor func(d Display, name *byte) Cursor
	XcursorSupportsARGB     func(d Display) int32
	XcursorSupportsAnim     func(d Display) int32
)

func loadXcursor() error {
	var err error
	libXcursor, err = purego.Dlopen("libXcursor.so.1", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("xlib: %w", err)
	}
	purego.RegisterLibFunc(&XcursorImageCreate, libXcursor, "XcursorImageCreate")
	purego.RegisterLibFunc(&XcursorImageDestroy, libXcursor, "XcursorImageDestroy")
	purego.RegisterLibFunc(&XcursorImagesCreate, libXcursor, "XcursorImagesCreate")
	purego.RegisterLibFunc(&XcursorImagesDestroy, libXcursor, "XcursorImagesDestroy")
	purego.RegisterLibFunc(&XcursorImageLoadCursor, libXcursor, "XcursorImageLoadCursor")
	purego.RegisterLibFunc(&XcursorImagesLoadCursor, libXcursor, "XcursorImagesLoadCursor")
	purego.RegisterLibFunc(&XcursorLibraryLoadCursor, libXcursor, "XcursorLibraryLoadCursor")
	purego.RegisterLibFunc(&XcursorSupportsARGB, libXcursor, "XcursorSupportsARGB")
	purego.RegisterLibFunc(&XcursorSupportsAnim, libXcursor, "XcursorSupportsAnim")
	return nil
}

// ImagePixels exposes an XcursorImage's pixel buffer as a Go slice.
func (img *XcursorImage) ImagePixels() []uint32 {
	n := int(img.Width) * int(img.Height)
	return unsafe.Slice((*uint32)(unsafe.Pointer(img.Pixels)), n)
}

// SetImage stores frame i of imgs.
func (imgs *XcursorImages) SetImage(i int, img *XcursorImage) {
	p := (**XcursorImage)(unsafe.Pointer(imgs.Images + uintptr(i)*unsafe.Sizeof(uintptr(0))))
	*p = img
}
