//go:build linux || freebsd

package windc

import (
	"unsafe"

	"github.com/lunarsen/windc/xlib"
)

// Typed window property I/O. X properties come in three element widths
// (8/16/32 bits); a read fails when the server's reported format does
// not match the requested width. Note that on 64-bit platforms Xlib
// hands format-32 data back as longs, so 32-bit elements occupy eight
// bytes each in the returned buffer.

type propMode int32

const (
	propReplace propMode = xlib.PropModeReplace
	propPrepend propMode = xlib.PropModePrepend
	propAppend  propMode = xlib.PropModeAppend
)

// propData carries a windowed read plus how many bytes the server still
// holds past the requested long-range.
type propData[T any] struct {
	data           []T
	bytesRemaining uint64
}

func (c *x11Context) getPropRaw(w xlib.Window, prop, reqType xlib.Atom, wantFormat int32, longOffset, longLength int64) (uintptr, uint64, uint64, error) {
	var (
		actualType   xlib.Atom
		actualFormat int32
		nitems       uint64
		bytesAfter   uint64
		data         uintptr
	)
	var status int32
	err := c.syncCatch(func() {
		status = xlib.XGetWindowProperty(c.display, w, prop, longOffset, longLength, 0,
			reqType, &actualType, &actualFormat, &nitems, &bytesAfter, &data)
	})
	if err != nil {
		if data != 0 {
			xlib.XFree(data)
		}
		return 0, 0, 0, err
	}
	if status != xlib.Success {
		return 0, 0, 0, Failed("XGetWindowProperty failed")
	}
	if actualType == xlib.None {
		return 0, 0, 0, Failed("property does not exist")
	}
	if actualFormat != wantFormat {
		if data != 0 {
			xlib.XFree(data)
		}
		return 0, 0, 0, Failedf("property format is %d, wanted %d", actualFormat, wantFormat)
	}
	return data, nitems, bytesAfter, nil
}

// getPropBytes reads a format-8 property.
func (c *x11Context) getPropBytes(w xlib.Window, prop, reqType xlib.Atom, longOffset, longLength int64) (propData[byte], error) {
	data, n, after, err := c.getPropRaw(w, prop, reqType, 8, longOffset, longLength)
	if err != nil {
		return propData[byte]{}, err
	}
	defer xlib.XFree(data)
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(data)), n))
	return propData[byte]{data: out, bytesRemaining: after}, nil
}

// getPropCards reads a format-32 property. Elements arrive as longs.
func (c *x11Context) getPropCards(w xlib.Window, prop, reqType xlib.Atom, longOffset, longLength int64) (propData[uint64], error) {
	data, n, after, err := c.getPropRaw(w, prop, reqType, 32, longOffset, longLength)
	if err != nil {
		return propData[uint64]{}, err
	}
	defer xlib.XFree(data)
	src := unsafe.Slice((*uint64)(unsafe.Pointer(data)), n)
	out := make([]uint64, n)
	copy(out, src)
	return propData[uint64]{data: out, bytesRemaining: after}, nil
}

// setProp writes a property under the synchronized error catch.
func (c *x11Context) setProp(w xlib.Window, prop, typ xlib.Atom, format int32, mode propMode, data unsafe.Pointer, nelements int) error {
	return c.syncCatch(func() {
		xlib.XChangeProperty(c.display, w, prop, typ, format, int32(mode), uintptr(data), int32(nelements))
	})
}

// setPropCards writes a format-32 property from longs.
func (c *x11Context) setPropCards(w xlib.Window, prop, typ xlib.Atom, mode propMode, data []uint64) error {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	return c.setProp(w, prop, typ, 32, mode, p, len(data))
}

// setPropBytes writes a format-8 property.
func (c *x11Context) setPropBytes(w xlib.Window, prop, typ xlib.Atom, mode propMode, data []byte) error {
	var p unsafe.Pointer
	if len(data) > 0 {
		p = unsafe.Pointer(&data[0])
	}
	return c.setProp(w, prop, typ, 8, mode, p, len(data))
}

func (c *x11Context) deleteProp(w xlib.Window, prop xlib.Atom) error {
	return c.syncCatch(func() {
		xlib.XDeleteProperty(c.display, w, prop)
	})
}
