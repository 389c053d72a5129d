//go:build linux

package windc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/lunarsen/windc/evdev"
	"github.com/lunarsen/windc/udev"
)

func TestLinuxdevAxisNameRole(t *testing.T) {
	// The same code reads differently depending on the device role.
	axis, ok := linuxdevAxisName(evdev.AbsX, true)
	assert.True(t, ok)
	assert.Equal(t, ControllerAxisJoystickX, axis)

	axis, ok = linuxdevAxisName(evdev.AbsX, false)
	assert.True(t, ok)
	assert.Equal(t, ControllerAxisLeftX, axis)

	axis, _ = linuxdevAxisName(evdev.AbsZ, false)
	assert.Equal(t, ControllerAxisLeftTrigger, axis)
	axis, _ = linuxdevAxisName(evdev.AbsZ, true)
	assert.Equal(t, ControllerAxisJoystickZ, axis)

	axis, _ = linuxdevAxisName(evdev.AbsHat0X, false)
	assert.Equal(t, ControllerAxisDpadX, axis)
	axis, _ = linuxdevAxisName(evdev.AbsHat0X, true)
	assert.Equal(t, ControllerAxisHat0X, axis)

	// Role-independent tail.
	for _, joystick := range []bool{true, false} {
		axis, ok = linuxdevAxisName(evdev.AbsThrottle, joystick)
		assert.True(t, ok)
		assert.Equal(t, ControllerAxisThrottle, axis)
	}

	_, ok = linuxdevAxisName(0xFF, false)
	assert.False(t, ok)
}

func TestLinuxdevButtonNames(t *testing.T) {
	assert.Equal(t, ControllerButtonA, linuxdevButtonNames[evdev.BtnA])
	assert.Equal(t, ControllerButtonLShoulder, linuxdevButtonNames[evdev.BtnTL])
	assert.Equal(t, ControllerButtonLStickClick, linuxdevButtonNames[evdev.BtnThumbL])
	assert.Equal(t, ControllerButtonNum0, linuxdevButtonNames[evdev.Btn0])
	assert.Equal(t, ControllerButtonBase1, linuxdevButtonNames[evdev.BtnBase])
}

func TestLinuxdevGuid(t *testing.T) {
	g := linuxdevGuid(0x0003, 0x045E, 0x028E, 0x0110)
	assert.Equal(t, byte(0x03), g[0])
	assert.Equal(t, byte(0x00), g[1])
	assert.Equal(t, byte(0x5E), g[4])
	assert.Equal(t, byte(0x04), g[5])
	assert.Equal(t, byte(0x8E), g[8])
	assert.Equal(t, byte(0x02), g[9])
	assert.Equal(t, byte(0x10), g[12])
	assert.Equal(t, byte(0x01), g[13])
	// Padding bytes stay zero.
	assert.Equal(t, byte(0), g[2])
	assert.Equal(t, byte(0), g[15])
}

func TestBusKindOf(t *testing.T) {
	// The udev property wins over the kernel bustype.
	assert.Equal(t, BusUsb, busKindOf("usb", 0x05))
	assert.Equal(t, BusBluetooth, busKindOf("bluetooth", 0))
	assert.Equal(t, BusPci, busKindOf("pci", 0))

	assert.Equal(t, BusPci, busKindOf("", 0x01))
	assert.Equal(t, BusUsb, busKindOf("", 0x03))
	assert.Equal(t, BusBluetooth, busKindOf("", 0x05))
	assert.Equal(t, BusVirtual, busKindOf("", 0x06))
	assert.Equal(t, BusVirtual, busKindOf("", 0x19))
	assert.Equal(t, BusUnknown, busKindOf("", 0x42))
}

func TestParseHexID(t *testing.T) {
	v, ok := parseHexID("045e")
	assert.True(t, ok)
	assert.Equal(t, uint16(0x045E), v)

	_, ok = parseHexID("")
	assert.False(t, ok)
	_, ok = parseHexID("xyz")
	assert.False(t, ok)
	_, ok = parseHexID("12345")
	assert.False(t, ok)
}

func TestAxisInfoOf(t *testing.T) {
	info := axisInfoOf(&evdev.AbsInfo{
		Minimum:    -32768,
		Maximum:    32767,
		Fuzz:       16,
		Flat:       128,
		Resolution: 1,
	})
	assert.Equal(t, AxisRange{Min: -32768, Max: 32767}, info.Range)
	assert.Equal(t, 16.0, info.Fuzz)
	dz, ok := info.DeadZone.Value()
	assert.True(t, ok)
	assert.Equal(t, AxisRange{Min: -128, Max: 128}, dz)

	// Flat of zero means the driver reported no dead zone.
	info = axisInfoOf(&evdev.AbsInfo{Minimum: 0, Maximum: 255})
	assert.False(t, info.DeadZone.IsKnown())

	assert.Equal(t, AxisInfo{}, axisInfoOf(nil))
}

func TestFFEffectRumble(t *testing.T) {
	var e evdev.FFEffect
	e.SetRumble(0xC000, 0x4000)
	strong, weak := e.Rumble()
	assert.Equal(t, uint16(0xC000), strong)
	assert.Equal(t, uint16(0x4000), weak)
}

func TestClampReplayLength(t *testing.T) {
	assert.Equal(t, uint16(250), clampReplayLength(250))
	assert.Equal(t, uint16(0x7FFF), clampReplayLength(0x7FFF))
	assert.Equal(t, uint16(0x7FFF), clampReplayLength(40000))
}

func newTestLinuxdevContext() (*linuxdevContext, *eventQueue) {
	q := &eventQueue{}
	return &linuxdevContext{
		bySyspath: make(map[string]*linuxdevDevice),
		byToken:   make(map[DeviceToken]*linuxdevDevice),
		queue:     q,
		tokens:    &deviceTokens{},
	}, q
}

func addTestController(dc *linuxdevContext, syspath, devnode string, ev evdev.Libevdev) *linuxdevDevice {
	dev := &linuxdevDevice{
		syspath:  syspath,
		devnode:  devnode,
		fd:       -1,
		ev:       ev,
		isEvdev:  true,
		effectID: -1,
		buttons:  map[uint16]ControllerButton{evdev.BtnA: ControllerButtonA},
		axes:     map[uint16]ControllerAxis{},
	}
	dev.id = DeviceID{Backend: DeviceBackendUdev, Token: dc.tokens.nextToken()}
	dc.bySyspath[syspath] = dev
	dc.byToken[dev.id.Token] = dev
	return dev
}

func cPtr(b []byte) uintptr { return uintptr(unsafe.Pointer(&b[0])) }

func TestPumpDeliversPendingEventsBeforeDisconnected(t *testing.T) {
	dc, q := newTestLinuxdevContext()
	dev := addTestController(dc, "/sys/devices/fake/input/event91", "/dev/input/event91", 1)

	// One queued button press, then the read side runs dry.
	calls := 0
	savedNext, savedFree := evdev.NextEvent, evdev.Free
	evdev.NextEvent = func(h evdev.Libevdev, flags uint32, out *evdev.InputEvent) int32 {
		calls++
		if calls == 1 {
			*out = evdev.InputEvent{Sec: 5, Type: evdev.EvKey, Code: evdev.BtnA, Value: 1}
			return evdev.ReadStatusSuccess
		}
		return -int32(unix.EAGAIN)
	}
	evdev.Free = func(h evdev.Libevdev) {}
	defer func() { evdev.NextEvent, evdev.Free = savedNext, savedFree }()

	// Scripted monitor: the same device's removal is already pending.
	action := []byte("remove\x00")
	syspath := []byte(dev.syspath + "\x00")
	received := false
	savedRecv := udev.MonitorReceiveDevice
	savedAction := udev.DeviceGetAction
	savedSyspath := udev.DeviceGetSyspath
	savedUnref := udev.DeviceUnref
	udev.MonitorReceiveDevice = func(m udev.Monitor) udev.Device {
		if received {
			return 0
		}
		received = true
		return udev.Device(7)
	}
	udev.DeviceGetAction = func(d udev.Device) uintptr { return cPtr(action) }
	udev.DeviceGetSyspath = func(d udev.Device) uintptr { return cPtr(syspath) }
	udev.DeviceUnref = func(d udev.Device) udev.Device { return 0 }
	defer func() {
		udev.MonitorReceiveDevice = savedRecv
		udev.DeviceGetAction = savedAction
		udev.DeviceGetSyspath = savedSyspath
		udev.DeviceUnref = savedUnref
	}()

	dc.monitor = udev.Monitor(3)
	dc.pump()
	dc.monitor = 0

	require.Equal(t, 2, q.len())
	first, _ := q.pop()
	press, ok := first.(ControllerButtonPressedEvent)
	require.True(t, ok)
	assert.Equal(t, dev.id, press.Controller)
	assert.Equal(t, ControllerButtonA, press.Button)

	second, _ := q.pop()
	disc, ok := second.(ControllerDisconnectedEvent)
	require.True(t, ok)
	assert.Equal(t, dev.id, disc.Controller)
	assert.Equal(t, press.Instant, disc.Instant)

	// The row stays queryable until the Disconnected event is drained.
	_, err := dc.hidInfo(dev.id)
	assert.EqualError(t, err, "device disconnected")
	dc.onDrained(disc)
	assert.NotContains(t, dc.byToken, dev.id.Token)
}

func TestReconnectGetsFreshToken(t *testing.T) {
	dc, q := newTestLinuxdevContext()

	devnode := []byte("/dev/input/event-nonexistent\x00")
	syspath := []byte("/sys/devices/fake/input/event-nonexistent\x00")
	joystick := []byte("1\x00")
	savedDevnode := udev.DeviceGetDevnode
	savedSyspath := udev.DeviceGetSyspath
	savedProp := udev.DeviceGetPropertyValue
	savedUnref := udev.DeviceUnref
	udev.DeviceGetDevnode = func(d udev.Device) uintptr { return cPtr(devnode) }
	udev.DeviceGetSyspath = func(d udev.Device) uintptr { return cPtr(syspath) }
	udev.DeviceGetPropertyValue = func(d udev.Device, key *byte) uintptr {
		if udev.GoString(uintptr(unsafe.Pointer(key))) == "ID_INPUT_JOYSTICK" {
			return cPtr(joystick)
		}
		return 0
	}
	udev.DeviceUnref = func(d udev.Device) udev.Device { return 0 }
	defer func() {
		udev.DeviceGetDevnode = savedDevnode
		udev.DeviceGetSyspath = savedSyspath
		udev.DeviceGetPropertyValue = savedProp
		udev.DeviceUnref = savedUnref
	}()

	path := "/sys/devices/fake/input/event-nonexistent"
	dc.addDevice(udev.Device(11))
	firstDev, ok := dc.bySyspath[path]
	require.True(t, ok)
	oldID := firstDev.id

	dc.markDisconnected(firstDev)
	_, _ = q.pop() // Connected
	disc, _ := q.pop()
	dc.onDrained(disc.(ControllerDisconnectedEvent))

	// The same node reappears and must not be mistaken for its
	// previous incarnation.
	dc.addDevice(udev.Device(12))
	secondDev, ok := dc.bySyspath[path]
	require.True(t, ok)
	assert.NotEqual(t, oldID.Token, secondDev.id.Token)

	_, err := dc.hidInfo(oldID)
	assert.EqualError(t, err, "device disconnected")
	info, err := dc.hidInfo(secondDev.id)
	require.NoError(t, err)
	node, _ := info.DevNodePath.Value()
	assert.Equal(t, "/dev/input/event-nonexistent", node)
}

func TestControllerSetVibrationUpload(t *testing.T) {
	dc, _ := newTestLinuxdevContext()
	dev := addTestController(dc, "/sys/devices/fake/input/event93", "/dev/input/event93", 1)
	dev.fd = 9
	dev.writable = true
	dev.info.Controller = &ControllerInfo{SupportsRumble: true}

	var reqs []uintptr
	var uploaded evdev.FFEffect
	var writes []evdev.InputEvent
	savedIoctl, savedWrite := ioctlFd, writeFd
	ioctlFd = func(fd int, req, arg uintptr) unix.Errno {
		reqs = append(reqs, req)
		if req == evdev.EVIOCSFF {
			e := (*evdev.FFEffect)(unsafe.Pointer(arg))
			uploaded = *e
			// The kernel assigns a slot on first upload.
			e.ID = 3
		}
		return 0
	}
	writeFd = func(fd int, p []byte) (int, error) {
		writes = append(writes, *(*evdev.InputEvent)(unsafe.Pointer(&p[0])))
		return len(p), nil
	}
	defer func() { ioctlFd, writeFd = savedIoctl, savedWrite }()

	err := dc.controllerSetVibration(dev.id, &VibrationState{
		StrongMagnitude: 0xC000,
		WeakMagnitude:   0x4000,
		DurationMS:      40000,
	})
	require.NoError(t, err)

	require.Equal(t, []uintptr{evdev.EVIOCSFF}, reqs)
	assert.Equal(t, uint16(evdev.FFRumble), uploaded.Type)
	assert.Equal(t, uint16(0x7FFF), uploaded.ReplayLength)
	strong, weak := uploaded.Rumble()
	assert.Equal(t, uint16(0xC000), strong)
	assert.Equal(t, uint16(0x4000), weak)
	assert.Equal(t, int16(3), dev.effectID)

	// First upload sets full gain, then plays the effect.
	require.Len(t, writes, 2)
	assert.Equal(t, uint16(evdev.EvFF), writes[0].Type)
	assert.Equal(t, uint16(evdev.FFGain), writes[0].Code)
	assert.Equal(t, int32(0xFFFF), writes[0].Value)
	assert.Equal(t, uint16(3), writes[1].Code)
	assert.NotZero(t, writes[1].Value)

	// Stopping reuses the slot and skips the gain write.
	writes = writes[:0]
	err = dc.controllerSetVibration(dev.id, &VibrationState{})
	require.NoError(t, err)
	assert.Equal(t, uint16(0), uploaded.ReplayLength)
	require.Len(t, writes, 1)
	assert.Equal(t, int32(0), writes[0].Value)
}
