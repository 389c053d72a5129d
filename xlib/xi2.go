//go:build linux || freebsd

package xlib

import (
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// XInput2 bindings (libXi).

const (
	XIAllDevices       = 0
	XIAllMasterDevices = 1

	XIRawKeyPress      = 13
	XIRawKeyRelease    = 14
	XIRawButtonPress   = 15
	XIRawButtonRelease = 16
	XIRawMotion        = 17
	XIRawTouchBegin    = 22
	XIRawTouchUpdate   = 23
	XIRawTouchEnd      = 24

	XILastEvent = 26
)

// XIEventMask mirrors the libXi struct of the same name.
type XIEventMask struct {
	DeviceID int32
	MaskLen  int32
	Mask     *byte
}

// XIValuatorState mirrors the raw-event valuator vector.
type XIValuatorState struct {
	MaskLen int32
	_       int32
	Mask    uintptr // *byte
	Values  uintptr // *float64
}

// XIRawEvent mirrors the cookie payload for XI_Raw* events.
type XIRawEvent struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Extension int32
	Evtype    int32
	Time      Time
	DeviceID  int32
	SourceID  int32
	Detail    int32
	Flags     int32
	Valuators XIValuatorState
	RawValues uintptr // *float64
}

var (
	libXi uintptr

	XIQueryVersion func(d Display, major, minor *int32) Status
	XISelectEvents func(d Display, w Window, masks *XIEventMask, num int32) Status
)

func loadXi() error {
	var err error
	libXi, err = purego.Dlopen("libXi.so.6", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("xlib: %w", err)
	}
	purego.RegisterLibFunc(&XIQueryVersion, libXi, "XIQueryVersion")
	purego.RegisterLibFunc(&XISelectEvents, libXi, "XISelectEvents")
	return nil
}

// XISetMask sets event bit ev in an XI event mask buffer.
func XISetMask(mask []byte, ev int) {
	mask[ev>>3] |= 1 << (uint(ev) & 7)
}

// RawValuator returns valuator i of a raw event along with whether the
// device reported it.
func (e *XIRawEvent) RawValuator(i int) (float64, bool) {
	if e.Valuators.Mask == 0 || i>>3 >= int(e.Valuators.MaskLen) {
		return 0, false
	}
	b := *(*byte)(unsafe.Pointer(e.Valuators.Mask + uintptr(i>>3)))
	if b&(1<<(uint(i)&7)) == 0 {
		return 0, false
	}
	// Values is packed: one entry per set mask bit, in bit order.
	idx := 0
	for j := 0; j < i; j++ {
		bj := *(*byte)(unsafe.Pointer(e.Valuators.Mask + uintptr(j>>3)))
		if bj&(1<<(uint(j)&7)) != 0 {
			idx++
		}
	}
	v := *(*float64)(unsafe.Pointer(e.Valuators.Values + uintptr(idx)*8))
	return v, true
}
