//go:build linux

// Package evdev provides runtime bindings to libevdev via purego plus
// the kernel input-event constants, struct mirrors, and force-feedback
// ioctl numbers the controller layer needs.
package evdev

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Libevdev is a struct libevdev* handle.
type Libevdev = uintptr

// Read flags and statuses for NextEvent.
const (
	ReadFlagSync     = 1
	ReadFlagNormal   = 2
	ReadFlagForceSync = 4
	ReadFlagBlocking = 8

	ReadStatusSuccess = 0
	ReadStatusSync    = 1
)

var (
	libevdev uintptr

	loadOnce sync.Once
	loadErr  error
)

var (
	NewFromFd func(fd int32, dev *Libevdev) int32
	Free      func(dev Libevdev)
	NextEvent func(dev Libevdev, flags uint32, ev *InputEvent) int32

	HasEventType func(dev Libevdev, typ uint32) int32
	HasEventCode func(dev Libevdev, typ, code uint32) int32
	GetAbsInfo   func(dev Libevdev, code uint32) *AbsInfo
	GetEventValue func(dev Libevdev, typ, code uint32) int32

	GetName          func(dev Libevdev) uintptr
	GetUniq          func(dev Libevdev) uintptr
	GetIDBustype     func(dev Libevdev) int32
	GetIDVendor      func(dev Libevdev) int32
	GetIDProduct     func(dev Libevdev) int32
	GetIDVersion     func(dev Libevdev) int32
	GetDriverVersion func(dev Libevdev) int32
	GetRepeat        func(dev Libevdev, delay, period *int32) int32
)

// Load resolves libevdev. Safe to call more than once.
func Load() error {
	loadOnce.Do(func() { loadErr = load() })
	return loadErr
}

func load() error {
	var err error
	libevdev, err = purego.Dlopen("libevdev.so.2", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("evdev: %w", err)
	}
	register := func(fptr any, name string) {
		purego.RegisterLibFunc(fptr, libevdev, name)
	}
	register(&NewFromFd, "libevdev_new_from_fd")
	register(&Free, "libevdev_free")
	register(&NextEvent, "libevdev_next_event")
	register(&HasEventType, "libevdev_has_event_type")
	register(&HasEventCode, "libevdev_has_event_code")
	register(&GetAbsInfo, "libevdev_get_abs_info")
	register(&GetEventValue, "libevdev_get_event_value")
	register(&GetName, "libevdev_get_name")
	register(&GetUniq, "libevdev_get_uniq")
	register(&GetIDBustype, "libevdev_get_id_bustype")
	register(&GetIDVendor, "libevdev_get_id_vendor")
	register(&GetIDProduct, "libevdev_get_id_product")
	register(&GetIDVersion, "libevdev_get_id_version")
	register(&GetDriverVersion, "libevdev_get_driver_version")
	register(&GetRepeat, "libevdev_get_repeat")
	return nil
}

// InputEvent mirrors struct input_event on 64-bit platforms.
type InputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// AbsInfo mirrors struct input_absinfo.
type AbsInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// FFEffect mirrors struct ff_effect. The type-specific union is kept as
// raw bytes; Rumble effects use SetRumble.
type FFEffect struct {
	Type            uint16
	ID              int16
	Direction       uint16
	TriggerButton   uint16
	TriggerInterval uint16
	ReplayLength    uint16 // milliseconds, kernel caps at 0x7FFF
	ReplayDelay     uint16
	_               uint16
	U               [32]byte
}

// SetRumble fills the union for an FF_RUMBLE effect.
func (e *FFEffect) SetRumble(strong, weak uint16) {
	*(*uint16)(unsafe.Pointer(&e.U[0])) = strong
	*(*uint16)(unsafe.Pointer(&e.U[2])) = weak
}

// Rumble reads back the FF_RUMBLE magnitudes.
func (e *FFEffect) Rumble() (strong, weak uint16) {
	return *(*uint16)(unsafe.Pointer(&e.U[0])), *(*uint16)(unsafe.Pointer(&e.U[2]))
}

// GoString copies a NUL-terminated C string; empty for a nil pointer.
func GoString(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	var out []byte
	for i := uintptr(0); ; i++ {
		c := *(*byte)(unsafe.Pointer(ptr + i))
		if c == 0 {
			break
		}
		out = append(out, c)
	}
	return string(out)
}
