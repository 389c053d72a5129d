//go:build linux

package windc

import (
	"path"
	"strconv"
	"strings"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/lunarsen/windc/evdev"
	"github.com/lunarsen/windc/udev"
)

// linuxdevButtonNames maps evdev key codes into the portable button
// taxonomy. The table is total over the codes the library enumerates.
var linuxdevButtonNames = map[uint16]ControllerButton{
	evdev.BtnA:        ControllerButtonA,
	evdev.BtnB:        ControllerButtonB,
	evdev.BtnC:        ControllerButtonC,
	evdev.BtnX:        ControllerButtonX,
	evdev.BtnY:        ControllerButtonY,
	evdev.BtnZ:        ControllerButtonZ,
	evdev.BtnTL:       ControllerButtonLShoulder,
	evdev.BtnTR:       ControllerButtonRShoulder,
	evdev.BtnTL2:      ControllerButtonLShoulder2,
	evdev.BtnTR2:      ControllerButtonRShoulder2,
	evdev.BtnSelect:   ControllerButtonSelect,
	evdev.BtnStart:    ControllerButtonStart,
	evdev.BtnMode:     ControllerButtonMode,
	evdev.BtnThumbL:   ControllerButtonLStickClick,
	evdev.BtnThumbR:   ControllerButtonRStickClick,
	evdev.BtnDpadUp:   ControllerButtonDpadUp,
	evdev.BtnDpadDown: ControllerButtonDpadDown,
	evdev.BtnDpadLeft: ControllerButtonDpadLeft,
	evdev.BtnDpadRight: ControllerButtonDpadRight,
	evdev.BtnTrigger:  ControllerButtonTrigger,
	evdev.BtnThumb:    ControllerButtonThumb,
	evdev.BtnThumb2:   ControllerButtonThumb2,
	evdev.BtnTop:      ControllerButtonTop,
	evdev.BtnTop2:     ControllerButtonTop2,
	evdev.BtnPinkie:   ControllerButtonPinkie,
	evdev.BtnDead:     ControllerButtonDead,
	evdev.BtnGearUp:   ControllerButtonGearUp,
	evdev.BtnGearDown: ControllerButtonGearDown,
	evdev.BtnBase:     ControllerButtonBase1,
	evdev.BtnBase2:    ControllerButtonBase2,
	evdev.BtnBase3:    ControllerButtonBase3,
	evdev.BtnBase4:    ControllerButtonBase4,
	evdev.BtnBase5:    ControllerButtonBase5,
	evdev.BtnBase6:    ControllerButtonBase6,
	evdev.Btn0:        ControllerButtonNum0,
	evdev.Btn1:        ControllerButtonNum1,
	evdev.Btn2:        ControllerButtonNum2,
	evdev.Btn3:        ControllerButtonNum3,
	evdev.Btn4:        ControllerButtonNum4,
	evdev.Btn5:        ControllerButtonNum5,
	evdev.Btn6:        ControllerButtonNum6,
	evdev.Btn7:        ControllerButtonNum7,
	evdev.Btn8:        ControllerButtonNum8,
	evdev.Btn9:        ControllerButtonNum9,
}

// linuxdevAxisName maps an absolute axis code to the portable axis
// taxonomy. The main stick and hat codes are role-dependent: a
// joystick's ABS_X is its stick, a gamepad's ABS_X is the left stick
// and its triggers live on ABS_Z/ABS_RZ.
func linuxdevAxisName(code uint16, joystick bool) (ControllerAxis, bool) {
	if joystick {
		switch code {
		case evdev.AbsX:
			return ControllerAxisJoystickX, true
		case evdev.AbsY:
			return ControllerAxisJoystickY, true
		case evdev.AbsZ:
			return ControllerAxisJoystickZ, true
		case evdev.AbsRX:
			return ControllerAxisJoystickRotX, true
		case evdev.AbsRY:
			return ControllerAxisJoystickRotY, true
		case evdev.AbsRZ:
			return ControllerAxisJoystickRotZ, true
		case evdev.AbsHat0X:
			return ControllerAxisHat0X, true
		case evdev.AbsHat0Y:
			return ControllerAxisHat0Y, true
		}
	} else {
		switch code {
		case evdev.AbsX:
			return ControllerAxisLeftX, true
		case evdev.AbsY:
			return ControllerAxisLeftY, true
		case evdev.AbsZ:
			return ControllerAxisLeftTrigger, true
		case evdev.AbsRX:
			return ControllerAxisRightX, true
		case evdev.AbsRY:
			return ControllerAxisRightY, true
		case evdev.AbsRZ:
			return ControllerAxisRightTrigger, true
		case evdev.AbsHat0X:
			return ControllerAxisDpadX, true
		case evdev.AbsHat0Y:
			return ControllerAxisDpadY, true
		}
	}
	switch code {
	case evdev.AbsHat1X:
		return ControllerAxisHat1X, true
	case evdev.AbsHat1Y:
		return ControllerAxisHat1Y, true
	case evdev.AbsHat2X:
		return ControllerAxisHat2X, true
	case evdev.AbsHat2Y:
		return ControllerAxisHat2Y, true
	case evdev.AbsHat3X:
		return ControllerAxisHat3X, true
	case evdev.AbsHat3Y:
		return ControllerAxisHat3Y, true
	case evdev.AbsThrottle:
		return ControllerAxisThrottle, true
	case evdev.AbsRudder:
		return ControllerAxisRudder, true
	case evdev.AbsWheel:
		return ControllerAxisWheel, true
	case evdev.AbsGas:
		return ControllerAxisGas, true
	case evdev.AbsBrake:
		return ControllerAxisBrake, true
	}
	return 0, false
}

// linuxdevAxisCodes is the fixed enumeration order the capability scan
// walks.
var linuxdevAxisCodes = []uint16{
	evdev.AbsX, evdev.AbsY, evdev.AbsZ,
	evdev.AbsRX, evdev.AbsRY, evdev.AbsRZ,
	evdev.AbsHat0X, evdev.AbsHat0Y,
	evdev.AbsHat1X, evdev.AbsHat1Y,
	evdev.AbsHat2X, evdev.AbsHat2Y,
	evdev.AbsHat3X, evdev.AbsHat3Y,
	evdev.AbsThrottle, evdev.AbsRudder, evdev.AbsWheel,
	evdev.AbsGas, evdev.AbsBrake,
}

// linuxdevDevice is one row of the device table: the udev handle, the
// open node (if any), the libevdev session (if any), and everything
// derived from them.
type linuxdevDevice struct {
	id      DeviceID
	syspath string
	devnode string

	udevDev  udev.Device
	fd       int
	writable bool
	ev       evdev.Libevdev
	isEvdev  bool

	info    HidInfo
	buttons map[uint16]ControllerButton
	axes    map[uint16]ControllerAxis

	effectID    int16
	maxEffects  int32
	syncing     bool
	lastInstant *EventInstant
	// gone is set once Disconnected is enqueued; the row survives
	// until the application drains that event.
	gone bool
}

// linuxdevContext is the udev/evdev controller subsystem. It shares
// the owning context's event queue and token counter.
type linuxdevContext struct {
	udevHandle udev.Udev
	monitor    udev.Monitor

	bySyspath map[string]*linuxdevDevice
	byToken   map[DeviceToken]*linuxdevDevice

	queue  *eventQueue
	tokens *deviceTokens
}

func newLinuxdevContext(queue *eventQueue, tokens *deviceTokens) (*linuxdevContext, error) {
	if err := udev.Load(); err != nil {
		return nil, Unsupported(err.Error())
	}
	if err := evdev.Load(); err != nil {
		return nil, Unsupported(err.Error())
	}
	u := udev.New()
	if u == 0 {
		return nil, Failed("udev_new failed")
	}
	dc := &linuxdevContext{
		udevHandle: u,
		bySyspath:  make(map[string]*linuxdevDevice),
		byToken:    make(map[DeviceToken]*linuxdevDevice),
		queue:      queue,
		tokens:     tokens,
	}

	name := udev.CString("udev")
	dc.monitor = udev.MonitorNewFromNetlink(u, name)
	if dc.monitor != 0 {
		subsystem := udev.CString("input")
		udev.MonitorFilterAddMatchSubsystemDevtype(dc.monitor, subsystem, nil)
		udev.MonitorEnableReceiving(dc.monitor)
	} else {
		logger.Warn("udev monitor unavailable; hotplug disabled")
	}

	dc.enumerate()
	return dc, nil
}

func (dc *linuxdevContext) close() error {
	for _, dev := range dc.bySyspath {
		dc.destroyDevice(dev)
	}
	if dc.monitor != 0 {
		udev.MonitorUnref(dc.monitor)
		dc.monitor = 0
	}
	if dc.udevHandle != 0 {
		udev.Unref(dc.udevHandle)
		dc.udevHandle = 0
	}
	return nil
}

func (dc *linuxdevContext) enumerate() {
	e := udev.EnumerateNew(dc.udevHandle)
	if e == 0 {
		logger.Warn("udev_enumerate_new failed; no initial device scan")
		return
	}
	defer udev.EnumerateUnref(e)
	subsystem := udev.CString("input")
	udev.EnumerateAddMatchSubsystem(e, subsystem)
	udev.EnumerateScanDevices(e)
	for le := udev.EnumerateGetListEntry(e); le != 0; le = udev.ListEntryGetNext(le) {
		syspath := udev.GoString(udev.ListEntryGetName(le))
		d := udev.DeviceNewFromSyspath(dc.udevHandle, udev.CString(syspath))
		if d == 0 {
			continue
		}
		dc.addDevice(d)
	}
}

// addDevice takes ownership of d: it either stores it in the table or
// unrefs it.
func (dc *linuxdevContext) addDevice(d udev.Device) {
	devnode := udev.GoString(udev.DeviceGetDevnode(d))
	joystick, _ := udev.Property(d, "ID_INPUT_JOYSTICK")
	if devnode == "" || joystick != "1" {
		udev.DeviceUnref(d)
		return
	}
	syspath := udev.GoString(udev.DeviceGetSyspath(d))
	if _, dup := dc.bySyspath[syspath]; dup {
		udev.DeviceUnref(d)
		return
	}

	dev := &linuxdevDevice{
		syspath:  syspath,
		devnode:  devnode,
		udevDev:  d,
		fd:       -1,
		isEvdev:  strings.HasPrefix(path.Base(devnode), "event"),
		effectID: -1,
		buttons:  make(map[uint16]ControllerButton),
		axes:     make(map[uint16]ControllerAxis),
	}
	dev.id = DeviceID{Backend: DeviceBackendUdev, Token: dc.tokens.nextToken()}

	dc.openDeviceNode(dev)
	dc.fillHidInfo(dev)

	dc.bySyspath[syspath] = dev
	dc.byToken[dev.id.Token] = dev
	if dev.isEvdev {
		instant := EventInstant{}
		if pi, ok := dev.info.PlugInstant.Value(); ok {
			instant = pi
		}
		dc.queue.push(ControllerConnectedEvent{Controller: dev.id, Instant: instant})
	}
}

// openDeviceNode opens the node read-write so rumble can be uploaded,
// stepping down to read-only when the node's permissions demand it.
func (dc *linuxdevContext) openDeviceNode(dev *linuxdevDevice) {
	fd, err := unix.Open(dev.devnode, unix.O_RDWR|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err == nil {
		dev.fd = fd
		dev.writable = true
	} else if err == unix.EACCES {
		fd, err = unix.Open(dev.devnode, unix.O_RDONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
		if err == nil {
			dev.fd = fd
		}
	}
	if err != nil {
		logger.Warn("could not open input device node", "devnode", dev.devnode, "err", err)
		return
	}
	if !dev.isEvdev {
		return
	}
	if status := evdev.NewFromFd(int32(dev.fd), &dev.ev); status < 0 {
		logger.Warn("libevdev rejected device node", "devnode", dev.devnode, "status", status)
		dev.ev = 0
	}
}

func parseHexID(s string) (uint16, bool) {
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}

func busKindOf(idBus string, bustype int32) BusKind {
	switch idBus {
	case "usb":
		return BusUsb
	case "bluetooth":
		return BusBluetooth
	case "pci":
		return BusPci
	}
	switch bustype {
	case 0x01:
		return BusPci
	case 0x03:
		return BusUsb
	case 0x05:
		return BusBluetooth
	case 0x06, 0x19:
		return BusVirtual
	}
	return BusUnknown
}

// fillHidInfo populates the identity record from udev properties and
// the libevdev session, and runs the capability scan.
func (dc *linuxdevContext) fillHidInfo(dev *linuxdevDevice) {
	info := &dev.info
	info.DevNodePath = Known(dev.devnode)

	if v, ok := udev.Property(dev.udevDev, "NAME"); ok {
		info.Name = Known(strings.Trim(v, `"`))
	}
	if v, ok := udev.Property(dev.udevDev, "ID_SERIAL"); ok {
		info.Serial = Known(v)
	}
	if v, ok := udev.Property(dev.udevDev, "ID_VENDOR"); ok {
		info.VendorName = Known(v)
	}
	if v, ok := udev.Property(dev.udevDev, "ID_MODEL"); ok {
		info.ProductName = Known(v)
	}
	if v, ok := udev.Property(dev.udevDev, "ID_VENDOR_ID"); ok {
		if id, ok := parseHexID(v); ok {
			info.VendorID = Known(id)
		}
	}
	if v, ok := udev.Property(dev.udevDev, "ID_MODEL_ID"); ok {
		if id, ok := parseHexID(v); ok {
			info.ProductID = Known(id)
		}
	}
	if v, ok := udev.Property(dev.udevDev, "ID_USB_DRIVER"); ok {
		info.DriverName = Known(v)
	}
	if v, ok := udev.Property(dev.udevDev, "USEC_INITIALIZED"); ok {
		if usecs, err := strconv.ParseInt(v, 10, 64); err == nil {
			info.PlugInstant = Known(instantFromMicros(InstantSourceUdev, usecs))
		}
	}
	info.IsPhysical = Known(!strings.Contains(dev.syspath, "/devices/virtual/"))

	roleFlag := func(key string) bool {
		v, _ := udev.Property(dev.udevDev, key)
		return v == "1"
	}
	if roleFlag("ID_INPUT_MOUSE") || roleFlag("ID_INPUT_POINTINGSTICK") || roleFlag("ID_INPUT_TRACKBALL") {
		info.Mouse = &MouseInfo{
			IsPointingStick: roleFlag("ID_INPUT_POINTINGSTICK"),
			IsTrackball:     roleFlag("ID_INPUT_TRACKBALL"),
		}
	}
	if roleFlag("ID_INPUT_KEYBOARD") {
		info.Keyboard = &KeyboardInfo{}
	}
	if roleFlag("ID_INPUT_TOUCHPAD") || roleFlag("ID_INPUT_TOUCHSCREEN") {
		info.Touch = &TouchInfo{
			IsTouchpad:    roleFlag("ID_INPUT_TOUCHPAD"),
			IsTouchscreen: roleFlag("ID_INPUT_TOUCHSCREEN"),
		}
	}
	if roleFlag("ID_INPUT_TABLET") || roleFlag("ID_INPUT_TABLET_PAD") {
		info.Tablet = &TabletInfo{IsPad: roleFlag("ID_INPUT_TABLET_PAD")}
	}

	idBus, _ := udev.Property(dev.udevDev, "ID_BUS")
	var bustype int32
	if dev.ev != 0 {
		bustype = evdev.GetIDBustype(dev.ev)
		if !info.Name.IsKnown() {
			if name := evdev.GoString(evdev.GetName(dev.ev)); name != "" {
				info.Name = Known(name)
			}
		}
		if serial := evdev.GoString(evdev.GetUniq(dev.ev)); serial != "" && !info.Serial.IsKnown() {
			info.Serial = Known(serial)
		}
		if !info.VendorID.IsKnown() {
			info.VendorID = Known(uint16(evdev.GetIDVendor(dev.ev)))
		}
		if !info.ProductID.IsKnown() {
			info.ProductID = Known(uint16(evdev.GetIDProduct(dev.ev)))
		}
		dv := evdev.GetDriverVersion(dev.ev)
		info.DriverVersion = Known(
			strconv.Itoa(int(dv>>16)) + "." + strconv.Itoa(int(dv>>8&0xFF)) + "." + strconv.Itoa(int(dv&0xFF)))
		if info.Keyboard != nil {
			var delay, period int32
			if evdev.GetRepeat(dev.ev, &delay, &period) == 0 {
				info.Keyboard.RepeatDelayMS = Known(delay)
				info.Keyboard.RepeatPeriodMS = Known(period)
			}
		}
		info.Guid = Known(linuxdevGuid(uint16(bustype),
			info.VendorID.Or(0), info.ProductID.Or(0), uint16(evdev.GetIDVersion(dev.ev))))
	}
	info.Bus = Known(busKindOf(idBus, bustype))

	if dev.ev != 0 {
		dc.scanCapabilities(dev)
	}
}

// linuxdevGuid builds an SDL-compatible joystick GUID from the kernel
// identity quadruple. All fields are little-endian.
func linuxdevGuid(bustype, vendor, product, version uint16) Guid {
	var g Guid
	put := func(off int, v uint16) {
		g[off] = byte(v)
		g[off+1] = byte(v >> 8)
	}
	put(0, bustype)
	put(4, vendor)
	put(8, product)
	put(12, version)
	return g
}

func (dc *linuxdevContext) scanCapabilities(dev *linuxdevDevice) {
	ctrl := &ControllerInfo{
		Buttons: make(map[ControllerButton]bool),
		Axes:    make(map[ControllerAxis]AxisInfo),
	}
	ctrl.IsJoystick = evdev.HasEventCode(dev.ev, evdev.EvKey, evdev.BtnJoystick) != 0
	ctrl.IsGamepad = evdev.HasEventCode(dev.ev, evdev.EvKey, evdev.BtnGamepad) != 0
	ctrl.IsSteeringWheel = evdev.HasEventCode(dev.ev, evdev.EvKey, evdev.BtnWheel) != 0 ||
		evdev.HasEventCode(dev.ev, evdev.EvAbs, evdev.AbsWheel) != 0

	for code, button := range linuxdevButtonNames {
		if evdev.HasEventCode(dev.ev, evdev.EvKey, uint32(code)) != 0 {
			dev.buttons[code] = button
			ctrl.Buttons[button] = true
		}
	}
	for _, code := range linuxdevAxisCodes {
		if evdev.HasEventCode(dev.ev, evdev.EvAbs, uint32(code)) == 0 {
			continue
		}
		axis, ok := linuxdevAxisName(code, ctrl.IsJoystick)
		if !ok {
			continue
		}
		dev.axes[code] = axis
		ctrl.Axes[axis] = axisInfoOf(evdev.GetAbsInfo(dev.ev, uint32(code)))
	}

	if evdev.HasEventCode(dev.ev, evdev.EvFF, evdev.FFRumble) != 0 && dev.writable {
		ctrl.SupportsRumble = true
		var n int32
		if err := dc.ioctlPtr(dev, evdev.EVIOCGEFFECTS, unsafe.Pointer(&n)); err == nil {
			dev.maxEffects = n
		}
	}
	dev.info.Controller = ctrl
}

func axisInfoOf(abs *evdev.AbsInfo) AxisInfo {
	if abs == nil {
		return AxisInfo{}
	}
	info := AxisInfo{
		Range:      AxisRange{Min: float64(abs.Minimum), Max: float64(abs.Maximum)},
		Fuzz:       float64(abs.Fuzz),
		Resolution: float64(abs.Resolution),
	}
	if abs.Flat != 0 {
		flat := float64(abs.Flat)
		if flat < 0 {
			flat = -flat
		}
		info.DeadZone = Known(AxisRange{Min: -flat, Max: flat})
	}
	return info
}

// pump drains evdev events for every known device, then the udev
// monitor. The order guarantees a disconnecting device's last events
// precede its Disconnected.
func (dc *linuxdevContext) pump() {
	for _, dev := range dc.bySyspath {
		if dev.ev != 0 && !dev.gone {
			dc.pumpDevice(dev)
		}
	}
	dc.pumpMonitor()
}

func (dc *linuxdevContext) pumpDevice(dev *linuxdevDevice) {
	for {
		flags := uint32(evdev.ReadFlagNormal)
		if dev.syncing {
			flags = evdev.ReadFlagSync
		}
		var ev evdev.InputEvent
		status := evdev.NextEvent(dev.ev, flags, &ev)
		switch {
		case status == evdev.ReadStatusSuccess:
			dc.translateInputEvent(dev, &ev)
		case status == evdev.ReadStatusSync:
			// Dropped events; drain the resynced state.
			dev.syncing = true
			dc.translateInputEvent(dev, &ev)
		case status == -int32(unix.EAGAIN):
			if dev.syncing {
				dev.syncing = false
				continue
			}
			return
		case status == -int32(unix.ENODEV):
			dc.markDisconnected(dev)
			return
		default:
			logger.Warn("libevdev_next_event failed", "devnode", dev.devnode, "status", status)
			return
		}
	}
}

func (dc *linuxdevContext) translateInputEvent(dev *linuxdevDevice, ev *evdev.InputEvent) {
	instant := instantFromMicros(InstantSourceLinuxInput, ev.Sec*1_000_000+ev.Usec)
	dev.lastInstant = &instant
	switch ev.Type {
	case evdev.EvKey:
		button, ok := dev.buttons[ev.Code]
		if !ok {
			return
		}
		if ev.Value != 0 {
			dc.queue.push(ControllerButtonPressedEvent{Controller: dev.id, Instant: instant, Button: button})
		} else {
			dc.queue.push(ControllerButtonReleasedEvent{Controller: dev.id, Instant: instant, Button: button})
		}
	case evdev.EvAbs:
		axis, ok := dev.axes[ev.Code]
		if !ok {
			return
		}
		dc.queue.push(ControllerAxisMotionEvent{
			Controller: dev.id,
			Instant:    instant,
			Axis:       axis,
			Value:      float64(ev.Value),
		})
	}
	// All other event types carry no portable meaning.
}

func (dc *linuxdevContext) pumpMonitor() {
	if dc.monitor == 0 {
		return
	}
	for {
		d := udev.MonitorReceiveDevice(dc.monitor)
		if d == 0 {
			return
		}
		action := udev.GoString(udev.DeviceGetAction(d))
		switch action {
		case "add":
			dc.addDevice(d)
		case "remove":
			syspath := udev.GoString(udev.DeviceGetSyspath(d))
			if dev, ok := dc.bySyspath[syspath]; ok {
				dc.markDisconnected(dev)
			}
			udev.DeviceUnref(d)
		default:
			logger.Debug("ignoring udev action", "action", action)
			udev.DeviceUnref(d)
		}
	}
}

// markDisconnected enqueues Disconnected but keeps the row alive until
// the application drains the event.
func (dc *linuxdevContext) markDisconnected(dev *linuxdevDevice) {
	if dev.gone {
		return
	}
	dev.gone = true
	if dev.isEvdev {
		instant := EventInstant{}
		if dev.lastInstant != nil {
			instant = *dev.lastInstant
		}
		dc.queue.push(ControllerDisconnectedEvent{Controller: dev.id, Instant: instant})
		return
	}
	dc.removeDevice(dev)
}

// onDrained finalizes removal once the Disconnected event left the
// queue.
func (dc *linuxdevContext) onDrained(e Event) {
	d, ok := e.(ControllerDisconnectedEvent)
	if !ok {
		return
	}
	if dev, live := dc.byToken[d.Controller.Token]; live && dev.gone {
		dc.removeDevice(dev)
	}
}

func (dc *linuxdevContext) removeDevice(dev *linuxdevDevice) {
	delete(dc.bySyspath, dev.syspath)
	delete(dc.byToken, dev.id.Token)
	dc.destroyDevice(dev)
}

func (dc *linuxdevContext) destroyDevice(dev *linuxdevDevice) {
	if dev.effectID >= 0 {
		// Tolerate ENODEV: the node may already be gone.
		dc.ioctlInt(dev, evdev.EVIOCRMFF, int32(dev.effectID))
		dev.effectID = -1
	}
	if dev.ev != 0 {
		evdev.Free(dev.ev)
		dev.ev = 0
	}
	if dev.fd >= 0 {
		unix.Close(dev.fd)
		dev.fd = -1
	}
	if dev.udevDev != 0 {
		udev.DeviceUnref(dev.udevDev)
		dev.udevDev = 0
	}
}

// lookup resolves an external id against the live table.
func (dc *linuxdevContext) lookup(id DeviceID) (*linuxdevDevice, error) {
	dev, ok := dc.byToken[id.Token]
	if !ok || dev.gone {
		return nil, errDeviceDisconnected(nil)
	}
	return dev, nil
}

func (dc *linuxdevContext) controllers() ([]DeviceID, error) {
	var out []DeviceID
	for _, dev := range dc.bySyspath {
		if dev.isEvdev && !dev.gone {
			out = append(out, dev.id)
		}
	}
	return out, nil
}

func (dc *linuxdevContext) hidInfo(id DeviceID) (*HidInfo, error) {
	dev, err := dc.lookup(id)
	if err != nil {
		return nil, err
	}
	info := dev.info
	return &info, nil
}

func (dc *linuxdevContext) controllerState(id DeviceID) (*ControllerState, error) {
	dev, err := dc.lookup(id)
	if err != nil {
		return nil, err
	}
	if dev.ev == 0 {
		return nil, errDeviceNotSupported("device node is not readable")
	}
	state := &ControllerState{
		Buttons: make(map[ControllerButton]ButtonState, len(dev.buttons)),
		Axes:    make(map[ControllerAxis]float64, len(dev.axes)),
	}
	for code, button := range dev.buttons {
		st := ButtonUp
		if evdev.GetEventValue(dev.ev, evdev.EvKey, uint32(code)) != 0 {
			st = ButtonDown
		}
		state.Buttons[button] = st
	}
	for code, axis := range dev.axes {
		state.Axes[axis] = float64(evdev.GetEventValue(dev.ev, evdev.EvAbs, uint32(code)))
	}
	return state, nil
}

func (dc *linuxdevContext) controllerButtonState(id DeviceID, b ControllerButton) (ButtonState, error) {
	dev, err := dc.lookup(id)
	if err != nil {
		return ButtonUp, err
	}
	if dev.ev == 0 {
		return ButtonUp, errDeviceNotSupported("device node is not readable")
	}
	for code, button := range dev.buttons {
		if button != b {
			continue
		}
		if evdev.GetEventValue(dev.ev, evdev.EvKey, uint32(code)) != 0 {
			return ButtonDown, nil
		}
		return ButtonUp, nil
	}
	return ButtonUp, errDeviceNotSupported("button not present on this device")
}

func (dc *linuxdevContext) controllerAxisState(id DeviceID, a ControllerAxis) (float64, error) {
	dev, err := dc.lookup(id)
	if err != nil {
		return 0, err
	}
	if dev.ev == 0 {
		return 0, errDeviceNotSupported("device node is not readable")
	}
	for code, axis := range dev.axes {
		if axis == a {
			return float64(evdev.GetEventValue(dev.ev, evdev.EvAbs, uint32(code))), nil
		}
	}
	return 0, errDeviceNotSupported("axis not present on this device")
}

// ioctlFd and writeFd are variables in the same way the binding
// packages expose function variables: tests swap them for fakes.
var (
	ioctlFd = func(fd int, req, arg uintptr) unix.Errno {
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, arg)
		return errno
	}
	writeFd = unix.Write
)

func (dc *linuxdevContext) ioctlPtr(dev *linuxdevDevice, req uintptr, arg unsafe.Pointer) error {
	if errno := ioctlFd(dev.fd, req, uintptr(arg)); errno != 0 {
		return errno
	}
	return nil
}

// ioctlInt is for requests whose argument is a value, not a pointer.
func (dc *linuxdevContext) ioctlInt(dev *linuxdevDevice, req uintptr, arg int32) error {
	if errno := ioctlFd(dev.fd, req, uintptr(arg)); errno != 0 {
		return errno
	}
	return nil
}

// The kernel caps replay length at 0x7FFF ms.
const ffMaxReplayMillis = 0x7FFF

func clampReplayLength(ms uint32) uint16 {
	if ms > ffMaxReplayMillis {
		ms = ffMaxReplayMillis
	}
	return uint16(ms)
}

func (dc *linuxdevContext) controllerSetVibration(id DeviceID, v *VibrationState) error {
	dev, err := dc.lookup(id)
	if err != nil {
		return err
	}
	ctrl := dev.info.Controller
	if ctrl == nil || !ctrl.SupportsRumble || !dev.writable {
		return errDeviceNotSupported("no rumble support")
	}
	if v.IsZero() && dev.effectID < 0 {
		return nil
	}

	effect := evdev.FFEffect{
		Type:         evdev.FFRumble,
		ID:           dev.effectID,
		ReplayLength: clampReplayLength(v.DurationMS),
	}
	effect.SetRumble(v.StrongMagnitude, v.WeakMagnitude)

	firstUpload := dev.effectID < 0
	if err := dc.ioctlPtr(dev, evdev.EVIOCSFF, unsafe.Pointer(&effect)); err != nil {
		if err == unix.ENODEV {
			return errDeviceDisconnected(dev.lastInstant)
		}
		return &DeviceError{Kind: DeviceOther, Err: Failedf("EVIOCSFF: %v", err)}
	}
	dev.effectID = effect.ID

	if firstUpload {
		// Magnitudes come pre-scaled from the application; run the
		// device at full gain.
		gain := evdev.InputEvent{Type: evdev.EvFF, Code: evdev.FFGain, Value: 0xFFFF}
		dc.writeInputEvent(dev, &gain)
	}

	var value int32
	if !v.IsZero() {
		value = 1<<31 - 1
	}
	play := evdev.InputEvent{Type: evdev.EvFF, Code: uint16(dev.effectID), Value: value}
	return dc.writeInputEvent(dev, &play)
}

// writeInputEvent writes one input_event, retrying on EAGAIN.
func (dc *linuxdevContext) writeInputEvent(dev *linuxdevDevice, ev *evdev.InputEvent) error {
	buf := unsafe.Slice((*byte)(unsafe.Pointer(ev)), unsafe.Sizeof(*ev))
	for {
		_, err := writeFd(dev.fd, buf)
		switch err {
		case nil:
			return nil
		case unix.EAGAIN:
			continue
		case unix.ENODEV:
			return errDeviceDisconnected(dev.lastInstant)
		default:
			return &DeviceError{Kind: DeviceOther, Err: Failedf("writing input event: %v", err)}
		}
	}
}
