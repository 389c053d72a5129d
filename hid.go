package windc

// BusKind says which bus a device hangs off.
type BusKind int

const (
	BusUnknown BusKind = iota
	BusPci
	BusUsb
	BusBluetooth
	BusVirtual
)

// ButtonState is a digital button position.
type ButtonState uint8

const (
	ButtonUp ButtonState = iota
	ButtonDown
)

// IsDown reports whether the button is held.
func (s ButtonState) IsDown() bool { return s == ButtonDown }

// Guid is a 16-byte device identity, SDL-compatible where the backend
// can compute one.
type Guid [16]byte

// HidInfo describes one human input device. Every field is optional:
// it is the common denominator across backends. A single physical
// device may present several roles simultaneously, so more than one of
// the role records may be non-nil.
type HidInfo struct {
	Master      Knowledge[DeviceID]
	Parent      Knowledge[DeviceID]
	DevNodePath Knowledge[string]
	Name        Knowledge[string]
	Serial      Knowledge[string]
	VendorID    Knowledge[uint16]
	ProductID   Knowledge[uint16]
	VendorName  Knowledge[string]
	ProductName Knowledge[string]
	Guid        Knowledge[Guid]
	PlugInstant Knowledge[EventInstant]
	Bus         Knowledge[BusKind]
	DriverName  Knowledge[string]
	// DriverVersion is the driver's version string, e.g. "1.0.1".
	DriverVersion Knowledge[string]
	// IsPhysical is false for virtual devices such as uinput nodes.
	IsPhysical Knowledge[bool]

	Controller *ControllerInfo
	Mouse      *MouseInfo
	Keyboard   *KeyboardInfo
	Touch      *TouchInfo
	Tablet     *TabletInfo
}

// MouseInfo marks the mouse role.
type MouseInfo struct {
	IsPointingStick bool
	IsTrackball     bool
}

// KeyboardInfo marks the keyboard role.
type KeyboardInfo struct {
	// RepeatDelayMS and RepeatPeriodMS come from the kernel's EV_REP
	// state when available.
	RepeatDelayMS  Knowledge[int32]
	RepeatPeriodMS Knowledge[int32]
}

// TouchInfo marks the touch-surface role.
type TouchInfo struct {
	IsTouchpad    bool
	IsTouchscreen bool
}

// TabletInfo marks the graphics-tablet role.
type TabletInfo struct {
	IsPad bool
}

// AxisRange is a closed interval of axis values.
type AxisRange struct {
	Min, Max float64
}

// AxisInfo describes one absolute axis. Runtime values are f64, which
// is lossless from the native 16/32-bit integers.
type AxisInfo struct {
	Range AxisRange
	// DeadZone is the driver-reported centered dead zone, when any.
	DeadZone Knowledge[AxisRange]
	// Fuzz is the driver's noise filter threshold.
	Fuzz float64
	// Resolution is in units per millimeter, or units per radian for
	// rotational axes.
	Resolution float64
}

// ControllerButton is the portable game-controller button taxonomy.
type ControllerButton int

const (
	ControllerButtonA ControllerButton = iota
	ControllerButtonB
	ControllerButtonC
	ControllerButtonX
	ControllerButtonY
	ControllerButtonZ
	ControllerButtonLShoulder
	ControllerButtonRShoulder
	ControllerButtonLShoulder2
	ControllerButtonRShoulder2
	ControllerButtonSelect
	ControllerButtonStart
	ControllerButtonMode
	ControllerButtonLStickClick
	ControllerButtonRStickClick
	ControllerButtonDpadUp
	ControllerButtonDpadDown
	ControllerButtonDpadLeft
	ControllerButtonDpadRight
	ControllerButtonTrigger
	ControllerButtonThumb
	ControllerButtonThumb2
	ControllerButtonTop
	ControllerButtonTop2
	ControllerButtonPinkie
	ControllerButtonDead
	ControllerButtonGearUp
	ControllerButtonGearDown
	ControllerButtonBase1
	ControllerButtonBase2
	ControllerButtonBase3
	ControllerButtonBase4
	ControllerButtonBase5
	ControllerButtonBase6
	ControllerButtonNum0
	ControllerButtonNum1
	ControllerButtonNum2
	ControllerButtonNum3
	ControllerButtonNum4
	ControllerButtonNum5
	ControllerButtonNum6
	ControllerButtonNum7
	ControllerButtonNum8
	ControllerButtonNum9
)

// ControllerAxis is the portable game-controller axis taxonomy.
// Gamepads and steering wheels report the Left*/Right*/Dpad* axes;
// joysticks report the Joystick*/Hat* axes instead.
type ControllerAxis int

const (
	ControllerAxisLeftX ControllerAxis = iota
	ControllerAxisLeftY
	ControllerAxisLeftTrigger
	ControllerAxisRightX
	ControllerAxisRightY
	ControllerAxisRightTrigger
	ControllerAxisDpadX
	ControllerAxisDpadY
	ControllerAxisJoystickX
	ControllerAxisJoystickY
	ControllerAxisJoystickZ
	ControllerAxisJoystickRotX
	ControllerAxisJoystickRotY
	ControllerAxisJoystickRotZ
	ControllerAxisHat0X
	ControllerAxisHat0Y
	ControllerAxisHat1X
	ControllerAxisHat1Y
	ControllerAxisHat2X
	ControllerAxisHat2Y
	ControllerAxisHat3X
	ControllerAxisHat3Y
	ControllerAxisThrottle
	ControllerAxisRudder
	ControllerAxisWheel
	ControllerAxisGas
	ControllerAxisBrake
)

// ControllerInfo describes a controller's flavor and capabilities.
type ControllerInfo struct {
	IsGamepad       bool
	IsJoystick      bool
	IsSteeringWheel bool
	SupportsRumble  bool

	// Buttons is the set of buttons the device exposes.
	Buttons map[ControllerButton]bool
	// Axes maps each exposed axis to its metadata.
	Axes map[ControllerAxis]AxisInfo
}

// HasButton reports whether the device exposes b.
func (ci *ControllerInfo) HasButton(b ControllerButton) bool {
	return ci.Buttons[b]
}

// AxisInfo returns the metadata for a, if the device exposes it.
func (ci *ControllerInfo) AxisInfo(a ControllerAxis) (AxisInfo, bool) {
	info, ok := ci.Axes[a]
	return info, ok
}

// ControllerState is a live snapshot of a controller.
type ControllerState struct {
	Buttons map[ControllerButton]ButtonState
	Axes    map[ControllerAxis]float64
}

// VibrationState is a rumble request: two motor magnitudes plus how
// long to keep the effect loaded. The kernel caps effect length at
// 32767 ms; longer requests are clamped on submission.
type VibrationState struct {
	StrongMagnitude uint16
	WeakMagnitude   uint16
	DurationMS      uint32
}

// IsZero reports an all-stop request.
func (v VibrationState) IsZero() bool {
	return v.StrongMagnitude == 0 && v.WeakMagnitude == 0
}
