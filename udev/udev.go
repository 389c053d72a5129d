//go:build linux

// Package udev provides runtime bindings to libudev via purego: device
// enumeration, property access, and the hotplug netlink monitor.
package udev

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

type (
	Udev      = uintptr // struct udev*
	Enumerate = uintptr // struct udev_enumerate*
	ListEntry = uintptr // struct udev_list_entry*
	Device    = uintptr // struct udev_device*
	Monitor   = uintptr // struct udev_monitor*
)

var (
	libudev uintptr

	loadOnce sync.Once
	loadErr  error
)

var (
	New   func() Udev
	Unref func(u Udev) Udev

	EnumerateNew               func(u Udev) Enumerate
	EnumerateAddMatchSubsystem func(e Enumerate, subsystem *byte) int32
	EnumerateScanDevices       func(e Enumerate) int32
	EnumerateGetListEntry      func(e Enumerate) ListEntry
	EnumerateUnref             func(e Enumerate) Enumerate

	ListEntryGetNext func(le ListEntry) ListEntry
	ListEntryGetName func(le ListEntry) uintptr

	DeviceNewFromSyspath   func(u Udev, syspath *byte) Device
	DeviceRef              func(d Device) Device
	DeviceUnref            func(d Device) Device
	DeviceGetDevnode       func(d Device) uintptr
	DeviceGetSyspath       func(d Device) uintptr
	DeviceGetAction        func(d Device) uintptr
	DeviceGetPropertyValue func(d Device, key *byte) uintptr
	DeviceGetParent        func(d Device) Device

	MonitorNewFromNetlink               func(u Udev, name *byte) Monitor
	MonitorFilterAddMatchSubsystemDevtype func(m Monitor, subsystem, devtype *byte) int32
	MonitorEnableReceiving              func(m Monitor) int32
	MonitorGetFd                        func(m Monitor) int32
	MonitorReceiveDevice                func(m Monitor) Device
	MonitorUnref                        func(m Monitor) Monitor
)

// Load resolves libudev. Safe to call more than once.
func Load() error {
	loadOnce.Do(func() { loadErr = load() })
	return loadErr
}

func load() error {
	var err error
	libudev, err = purego.Dlopen("libudev.so.1", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("udev: %w", err)
	}
	register := func(fptr any, name string) {
		purego.RegisterLibFunc(fptr, libudev, name)
	}
	register(&New, "udev_new")
	register(&Unref, "udev_unref")
	register(&EnumerateNew, "udev_enumerate_new")
	register(&EnumerateAddMatchSubsystem, "udev_enumerate_add_match_subsystem")
	register(&EnumerateScanDevices, "udev_enumerate_scan_devices")
	register(&EnumerateGetListEntry, "udev_enumerate_get_list_entry")
	register(&EnumerateUnref, "udev_enumerate_unref")
	register(&ListEntryGetNext, "udev_list_entry_get_next")
	register(&ListEntryGetName, "udev_list_entry_get_name")
	register(&DeviceNewFromSyspath, "udev_device_new_from_syspath")
	register(&DeviceRef, "udev_device_ref")
	register(&DeviceUnref, "udev_device_unref")
	register(&DeviceGetDevnode, "udev_device_get_devnode")
	register(&DeviceGetSyspath, "udev_device_get_syspath")
	register(&DeviceGetAction, "udev_device_get_action")
	register(&DeviceGetPropertyValue, "udev_device_get_property_value")
	register(&DeviceGetParent, "udev_device_get_parent")
	register(&MonitorNewFromNetlink, "udev_monitor_new_from_netlink")
	register(&MonitorFilterAddMatchSubsystemDevtype, "udev_monitor_filter_add_match_subsystem_devtype")
	register(&MonitorEnableReceiving, "udev_monitor_enable_receiving")
	register(&MonitorGetFd, "udev_monitor_get_fd")
	register(&MonitorReceiveDevice, "udev_monitor_receive_device")
	register(&MonitorUnref, "udev_monitor_unref")
	return nil
}

// CString returns a NUL-terminated byte pointer for s.
func CString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
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

// Property returns the value of a udev property, and whether it was set.
func Property(d Device, key string) (string, bool) {
	p := DeviceGetPropertyValue(d, CString(key))
	if p == 0 {
		return "", false
	}
	return GoString(p), true
}
