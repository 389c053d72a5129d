package windc

import "time"

// DeviceBackend tags which backend allocated a device identifier.
type DeviceBackend uint8

const (
	DeviceBackendX11 DeviceBackend = iota
	DeviceBackendUdev
	DeviceBackendWin32
)

// DeviceToken is allocated from a per-Context wrapping counter the first
// time a physical device is seen, making stale DeviceIDs detectable
// after the backend reuses a native identifier.
type DeviceToken uint32

// DeviceID identifies a human input device for the lifetime of its
// connection. It pairs the backend's native identifier with a token.
type DeviceID struct {
	Backend DeviceBackend
	Token   DeviceToken
	// Native is the backend identifier: an XInput2 device id, an index
	// into the udev device table, or a Win32 handle value.
	Native int64
}

// InstantSource says which platform clock an EventInstant was read from.
// Instants from different sources are not comparable.
type InstantSource uint8

const (
	InstantSourceNone InstantSource = iota
	InstantSourceX11        // X server Time, milliseconds
	InstantSourceUdev       // USEC_INITIALIZED, microseconds
	InstantSourceLinuxInput // input_event timeval, microseconds
	InstantSourceWin32      // GetMessageTime, milliseconds
)

// EventInstant is a platform-specific monotonic timestamp.
type EventInstant struct {
	Source InstantSource
	Micros int64
}

func instantFromX11Millis(t uint64) EventInstant {
	return EventInstant{Source: InstantSourceX11, Micros: int64(t) * 1000}
}

func instantFromMicros(src InstantSource, usecs int64) EventInstant {
	return EventInstant{Source: src, Micros: usecs}
}

// DurationSince returns the elapsed time from earlier to i. It reports
// false when the two instants come from different clocks or earlier is
// the later one.
func (i EventInstant) DurationSince(earlier EventInstant) (time.Duration, bool) {
	if i.Source == InstantSourceNone || i.Source != earlier.Source || i.Micros < earlier.Micros {
		return 0, false
	}
	return time.Duration(i.Micros-earlier.Micros) * time.Microsecond, true
}

// WindowHandle is a native window identifier (X Window, HWND).
type WindowHandle uint64

// Event is one portable input or lifecycle event. The concrete type is
// one of the *Event structs in this file.
type Event interface {
	isEvent()
}

// Lifecycle events.
type (
	QuitEvent                  struct{}
	AppTerminatingEvent        struct{}
	AppLowMemoryEvent          struct{}
	AppEnteringBackgroundEvent struct{}
	AppEnteredBackgroundEvent  struct{}
	AppEnteringForegroundEvent struct{}
	AppEnteredForegroundEvent  struct{}
	SessionEndRequestedEvent   struct{}
	SessionEndingEvent         struct{}
	RenderTargetResetEvent     struct{}
	DisplayLostEvent           struct{}
	ClipboardChangedEvent      struct{}
)

// TextInputEvent carries committed text from the input method.
type TextInputEvent struct {
	Window  WindowHandle
	Instant EventInstant
	Text    string
}

// Window events.
type (
	WindowShownEvent struct {
		Window WindowHandle
	}
	WindowHiddenEvent struct {
		Window WindowHandle
	}
	WindowContentDamagedEvent struct {
		Window       WindowHandle
		Zone         Rect
		MoreToFollow bool
	}
	WindowMovedEvent struct {
		Window   WindowHandle
		Position Vec2
		ByUser   bool
	}
	WindowResizedEvent struct {
		Window WindowHandle
		Size   Extent2
		ByUser bool
	}
	WindowMinimizedEvent struct {
		Window WindowHandle
	}
	WindowMaximizedEvent struct {
		Window WindowHandle
	}
	WindowRestoredEvent struct {
		Window WindowHandle
	}
	WindowCloseRequestedEvent struct {
		Window WindowHandle
	}
)

// Drag-and-drop events.
type (
	DragAndDropBeginEvent struct {
		Window WindowHandle
	}
	DragAndDropCancelEvent struct {
		Window WindowHandle
	}
	DragAndDropFileEvent struct {
		Window WindowHandle
		Path   string
	}
	DragAndDropTextEvent struct {
		Window WindowHandle
		Text   string
	}
	DragAndDropRawDataEvent struct {
		Window WindowHandle
		Data   []byte
	}
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonBack
	MouseButtonForward
	mouseButtonExtraBase
)

// MouseButtonExtra names a button beyond the standard five.
func MouseButtonExtra(n int) MouseButton { return mouseButtonExtraBase + MouseButton(n) }

// Click distinguishes single from double clicks.
type Click int

const (
	ClickSingle Click = iota
	ClickDouble
)

// Mouse events. Positions are window-local; RootPosition is in
// root-window coordinates.
type (
	MouseConnectedEvent struct {
		Mouse DeviceID
	}
	MouseDisconnectedEvent struct {
		Mouse DeviceID
	}
	MouseButtonPressedEvent struct {
		Mouse        DeviceID
		Window       WindowHandle
		Instant      EventInstant
		Button       MouseButton
		Click        Click
		Position     Vec2F
		RootPosition Vec2F
	}
	MouseButtonReleasedEvent struct {
		Mouse        DeviceID
		Window       WindowHandle
		Instant      EventInstant
		Button       MouseButton
		Position     Vec2F
		RootPosition Vec2F
	}
	MouseScrollEvent struct {
		Mouse   DeviceID
		Window  WindowHandle
		Instant EventInstant
		Scroll  Vec2
	}
	MouseMotionEvent struct {
		Mouse        DeviceID
		Window       WindowHandle
		Instant      EventInstant
		Position     Vec2F
		RootPosition Vec2F
	}
	MouseEnterEvent struct {
		Mouse        DeviceID
		Window       WindowHandle
		Instant      EventInstant
		Position     Vec2F
		RootPosition Vec2F
		Grabbed      bool
		Focused      bool
	}
	MouseLeaveEvent struct {
		Mouse        DeviceID
		Window       WindowHandle
		Instant      EventInstant
		Position     Vec2F
		RootPosition Vec2F
		Grabbed      bool
		Focused      bool
	}
	MouseFocusGainedEvent struct {
		Mouse  DeviceID
		Window WindowHandle
	}
	MouseFocusLostEvent struct {
		Mouse  DeviceID
		Window WindowHandle
	}
)

// Keycode is a physical key identifier; Keysym is the layout-dependent
// virtual key it produced.
type (
	Keycode uint32
	Keysym  uint64
)

// Keyboard events.
type (
	KeyboardConnectedEvent struct {
		Keyboard DeviceID
	}
	KeyboardDisconnectedEvent struct {
		Keyboard DeviceID
	}
	KeyPressedEvent struct {
		Keyboard DeviceID
		Window   WindowHandle
		Instant  EventInstant
		Key      Keycode
		VKey     Keysym
		IsRepeat bool
	}
	KeyReleasedEvent struct {
		Keyboard DeviceID
		Window   WindowHandle
		Instant  EventInstant
		Key      Keycode
		VKey     Keysym
	}
	KeyboardFocusGainedEvent struct {
		Keyboard DeviceID
		Window   WindowHandle
	}
	KeyboardFocusLostEvent struct {
		Keyboard DeviceID
		Window   WindowHandle
	}
)

// Touch events. Positions are normalized to [0, 1].
type (
	TouchConnectedEvent struct {
		Touch DeviceID
	}
	TouchDisconnectedEvent struct {
		Touch DeviceID
	}
	TouchFingerPressedEvent struct {
		Touch    DeviceID
		Window   WindowHandle
		Instant  EventInstant
		Finger   uint32
		Pressure float64
		Position Vec2F
	}
	TouchFingerReleasedEvent struct {
		Touch    DeviceID
		Window   WindowHandle
		Instant  EventInstant
		Finger   uint32
		Pressure float64
		Position Vec2F
	}
	TouchFingerMotionEvent struct {
		Touch    DeviceID
		Window   WindowHandle
		Instant  EventInstant
		Finger   uint32
		Pressure float64
		Position Vec2F
	}
	TouchMultiGestureEvent struct {
		Touch       DeviceID
		Window      WindowHandle
		Instant     EventInstant
		Rotation    float64
		Pinch       float64
		Center      Vec2F
		FingerCount uint32
	}
)

// TabletStylusKind says which tool is near the tablet surface.
type TabletStylusKind int

const (
	TabletStylusPen TabletStylusKind = iota
	TabletStylusEraser
	TabletStylusBrush
	TabletStylusAirbrush
	TabletStylusUnknown
)

// tabletMotion is the state shared by all stylus events.
type TabletStylusState struct {
	Pressure     float64
	Tilt         Vec2F
	RawPosition  Vec2F // sub-pixel, device units
	Position     Vec2F
	RootPosition Vec2F
}

// Tablet events.
type (
	TabletConnectedEvent struct {
		Tablet DeviceID
	}
	TabletDisconnectedEvent struct {
		Tablet DeviceID
	}
	TabletPadButtonPressedEvent struct {
		Tablet  DeviceID
		Window  WindowHandle
		Instant EventInstant
		Button  uint32
	}
	TabletPadButtonReleasedEvent struct {
		Tablet  DeviceID
		Window  WindowHandle
		Instant EventInstant
		Button  uint32
	}
	TabletStylusToolTypeEvent struct {
		Tablet  DeviceID
		Window  WindowHandle
		Instant EventInstant
		Tool    TabletStylusKind
	}
	TabletStylusButtonPressedEvent struct {
		Tablet  DeviceID
		Window  WindowHandle
		Instant EventInstant
		Button  uint32
		State   TabletStylusState
	}
	TabletStylusButtonReleasedEvent struct {
		Tablet  DeviceID
		Window  WindowHandle
		Instant EventInstant
		Button  uint32
		State   TabletStylusState
	}
	TabletStylusMotionEvent struct {
		Tablet  DeviceID
		Window  WindowHandle
		Instant EventInstant
		State   TabletStylusState
	}
	TabletStylusPressedEvent struct {
		Tablet  DeviceID
		Window  WindowHandle
		Instant EventInstant
		State   TabletStylusState
	}
	TabletStylusReleasedEvent struct {
		Tablet  DeviceID
		Window  WindowHandle
		Instant EventInstant
		State   TabletStylusState
	}
)

// Controller events.
type (
	ControllerConnectedEvent struct {
		Controller DeviceID
		Instant    EventInstant
	}
	ControllerDisconnectedEvent struct {
		Controller DeviceID
		Instant    EventInstant
	}
	ControllerButtonPressedEvent struct {
		Controller DeviceID
		Instant    EventInstant
		Button     ControllerButton
	}
	ControllerButtonReleasedEvent struct {
		Controller DeviceID
		Instant    EventInstant
		Button     ControllerButton
	}
	ControllerAxisMotionEvent struct {
		Controller DeviceID
		Instant    EventInstant
		Axis       ControllerAxis
		Value      float64
	}
)

func (QuitEvent) isEvent()                  {}
func (AppTerminatingEvent) isEvent()        {}
func (AppLowMemoryEvent) isEvent()          {}
func (AppEnteringBackgroundEvent) isEvent() {}
func (AppEnteredBackgroundEvent) isEvent()  {}
func (AppEnteringForegroundEvent) isEvent() {}
func (AppEnteredForegroundEvent) isEvent()  {}
func (SessionEndRequestedEvent) isEvent()   {}
func (SessionEndingEvent) isEvent()         {}
func (RenderTargetResetEvent) isEvent()     {}
func (DisplayLostEvent) isEvent()           {}
func (ClipboardChangedEvent) isEvent()      {}
func (TextInputEvent) isEvent()             {}

func (WindowShownEvent) isEvent()          {}
func (WindowHiddenEvent) isEvent()         {}
func (WindowContentDamagedEvent) isEvent() {}
func (WindowMovedEvent) isEvent()          {}
func (WindowResizedEvent) isEvent()        {}
func (WindowMinimizedEvent) isEvent()      {}
func (WindowMaximizedEvent) isEvent()      {}
func (WindowRestoredEvent) isEvent()       {}
func (WindowCloseRequestedEvent) isEvent() {}

func (DragAndDropBeginEvent) isEvent()   {}
func (DragAndDropCancelEvent) isEvent()  {}
func (DragAndDropFileEvent) isEvent()    {}
func (DragAndDropTextEvent) isEvent()    {}
func (DragAndDropRawDataEvent) isEvent() {}

func (MouseConnectedEvent) isEvent()      {}
func (MouseDisconnectedEvent) isEvent()   {}
func (MouseButtonPressedEvent) isEvent()  {}
func (MouseButtonReleasedEvent) isEvent() {}
func (MouseScrollEvent) isEvent()         {}
func (MouseMotionEvent) isEvent()         {}
func (MouseEnterEvent) isEvent()          {}
func (MouseLeaveEvent) isEvent()          {}
func (MouseFocusGainedEvent) isEvent()    {}
func (MouseFocusLostEvent) isEvent()      {}

func (KeyboardConnectedEvent) isEvent()    {}
func (KeyboardDisconnectedEvent) isEvent() {}
func (KeyPressedEvent) isEvent()           {}
func (KeyReleasedEvent) isEvent()          {}
func (KeyboardFocusGainedEvent) isEvent()  {}
func (KeyboardFocusLostEvent) isEvent()    {}

func (TouchConnectedEvent) isEvent()      {}
func (TouchDisconnectedEvent) isEvent()   {}
func (TouchFingerPressedEvent) isEvent()  {}
func (TouchFingerReleasedEvent) isEvent() {}
func (TouchFingerMotionEvent) isEvent()   {}
func (TouchMultiGestureEvent) isEvent()   {}

func (TabletConnectedEvent) isEvent()            {}
func (TabletDisconnectedEvent) isEvent()         {}
func (TabletPadButtonPressedEvent) isEvent()     {}
func (TabletPadButtonReleasedEvent) isEvent()    {}
func (TabletStylusToolTypeEvent) isEvent()       {}
func (TabletStylusButtonPressedEvent) isEvent()  {}
func (TabletStylusButtonReleasedEvent) isEvent() {}
func (TabletStylusMotionEvent) isEvent()         {}
func (TabletStylusPressedEvent) isEvent()        {}
func (TabletStylusReleasedEvent) isEvent()       {}

func (ControllerConnectedEvent) isEvent()      {}
func (ControllerDisconnectedEvent) isEvent()   {}
func (ControllerButtonPressedEvent) isEvent()  {}
func (ControllerButtonReleasedEvent) isEvent() {}
func (ControllerAxisMotionEvent) isEvent()     {}

// eventQueue is the Context's FIFO of translated-but-undrained events.
type eventQueue struct {
	events []Event
}

func (q *eventQueue) push(e Event) {
	q.events = append(q.events, e)
}

func (q *eventQueue) pop() (Event, bool) {
	if len(q.events) == 0 {
		return nil, false
	}
	e := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]
	return e, true
}

func (q *eventQueue) len() int { return len(q.events) }
