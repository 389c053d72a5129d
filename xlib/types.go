//go:build linux || freebsd

package xlib

import "unsafe"

// Event type codes from X.h.
const (
	KeyPress         = 2
	KeyRelease       = 3
	ButtonPress      = 4
	ButtonRelease    = 5
	MotionNotify     = 6
	EnterNotify      = 7
	LeaveNotify      = 8
	FocusIn          = 9
	FocusOut         = 10
	KeymapNotify     = 11
	Expose           = 12
	GraphicsExpose   = 13
	NoExpose         = 14
	VisibilityNotify = 15
	CreateNotify     = 16
	DestroyNotify    = 17
	UnmapNotify      = 18
	MapNotify        = 19
	MapRequest       = 20
	ReparentNotify   = 21
	ConfigureNotify  = 22
	ConfigureRequest = 23
	GravityNotify    = 24
	ResizeRequest    = 25
	CirculateNotify  = 26
	CirculateRequest = 27
	PropertyNotify   = 28
	SelectionClear   = 29
	SelectionRequest = 30
	SelectionNotify  = 31
	ColormapNotify   = 32
	ClientMessage    = 33
	MappingNotify    = 34
	GenericEvent     = 35
)

// Input event masks.
const (
	KeyPressMask          int64 = 1 << 0
	KeyReleaseMask        int64 = 1 << 1
	ButtonPressMask       int64 = 1 << 2
	ButtonReleaseMask     int64 = 1 << 3
	EnterWindowMask       int64 = 1 << 4
	LeaveWindowMask       int64 = 1 << 5
	PointerMotionMask     int64 = 1 << 6
	PointerMotionHintMask int64 = 1 << 7
	Button1MotionMask     int64 = 1 << 8
	Button2MotionMask     int64 = 1 << 9
	Button3MotionMask     int64 = 1 << 10
	Button4MotionMask     int64 = 1 << 11
	Button5MotionMask     int64 = 1 << 12
	ButtonMotionMask      int64 = 1 << 13
	KeymapStateMask       int64 = 1 << 14
	ExposureMask          int64 = 1 << 15
	VisibilityChangeMask  int64 = 1 << 16
	StructureNotifyMask   int64 = 1 << 17
	ResizeRedirectMask    int64 = 1 << 18
	SubstructureNotifyMask int64 = 1 << 19
	SubstructureRedirectMask int64 = 1 << 20
	FocusChangeMask       int64 = 1 << 21
	PropertyChangeMask    int64 = 1 << 22
	ColormapChangeMask    int64 = 1 << 23
	OwnerGrabButtonMask   int64 = 1 << 24
	NoEventMask           int64 = 0
)

// XCreateWindow value mask bits and related constants.
const (
	CWBackPixmap       uint64 = 1 << 0
	CWBackPixel        uint64 = 1 << 1
	CWBorderPixmap     uint64 = 1 << 2
	CWBorderPixel      uint64 = 1 << 3
	CWEventMask        uint64 = 1 << 11
	CWColormap         uint64 = 1 << 13
	CWCursor           uint64 = 1 << 14

	InputOutput    = 1
	InputOnly      = 2
	CopyFromParent = 0
	AllocNone      = 0
)

// Property modes and predefined atoms.
const (
	PropModeReplace = 0
	PropModePrepend = 1
	PropModeAppend  = 2

	AnyPropertyType Atom = 0
	XAAtom          Atom = 4
	XACardinal      Atom = 6
	XAString        Atom = 31
	XAWindow        Atom = 33
	XAWMHints       Atom = 35
)

// Misc protocol constants.
const (
	None        = 0
	CurrentTime = 0
	Success     = 0

	GrabModeSync    = 0
	GrabModeAsync   = 1
	GrabSuccess     = 0
	AlreadyGrabbed  = 1
	GrabInvalidTime = 2
	GrabNotViewable = 3
	GrabFrozen      = 4

	RevertToParent = 2

	NotifyNormal = 0
	NotifyGrab   = 1
	NotifyUngrab = 2

	QueuedAlready      = 0
	QueuedAfterReading = 1
	QueuedAfterFlush   = 2

	Button1 = 1
	Button2 = 2
	Button3 = 3
	Button4 = 4
	Button5 = 5
)

// ICCCM WM_STATE values.
const (
	WithdrawnState = 0
	NormalState    = 1
	IconicState    = 3
)

// XSizeHints flag bits.
const (
	USPosition = 1 << 0
	USSize     = 1 << 1
	PPosition  = 1 << 2
	PSize      = 1 << 3
	PMinSize   = 1 << 4
	PMaxSize   = 1 << 5
	PResizeInc = 1 << 6
	PAspect    = 1 << 7
	PBaseSize  = 1 << 8
	PWinGravity = 1 << 9
)

// XWMHints flag bits.
const (
	InputHint = 1 << 0
	StateHint = 1 << 1
)

// Text property encoding styles (XICCEncodingStyle).
const (
	XUTF8StringStyle = 4

	XNoMemory           = -1
	XLocaleNotSupported = -2
)

// Xutf8LookupString status values.
const (
	XBufferOverflow Status = -1
	XLookupNone     Status = 1
	XLookupChars    Status = 2
	XLookupKeySymOnly Status = 3
	XLookupBoth     Status = 4
)

// XIM input styles and XCreateIC argument names.
const (
	XIMPreeditNothing = 0x0008
	XIMStatusNothing  = 0x0400
)

var (
	XNInputStyle   = [...]byte{'i', 'n', 'p', 'u', 't', 'S', 't', 'y', 'l', 'e', 0}
	XNClientWindow = [...]byte{'c', 'l', 'i', 'e', 'n', 't', 'W', 'i', 'n', 'd', 'o', 'w', 0}
)

// Font cursor shapes from cursorfont.h.
const (
	XCXCursor          = 0
	XCArrow            = 2
	XCCrosshair        = 34
	XCFleur            = 52
	XCHand2            = 60
	XCQuestionArrow    = 92
	XCSBHDoubleArrow   = 108
	XCSBVDoubleArrow   = 116
	XCTopLeftCorner    = 134
	XCTopRightCorner   = 136
	XCBottomLeftCorner = 12
	XCBottomRightCorner = 14
	XCTopSide          = 138
	XCBottomSide       = 16
	XCLeftSide         = 70
	XCRightSide        = 96
	XCWatch            = 150
	XCXterm            = 152
	XCLeftPtr          = 68
	XCPirate           = 88
	XCCircle           = 24
)

// VisualInfo mirrors XVisualInfo.
type VisualInfo struct {
	Visual       uintptr
	VisualID     uint64
	Screen       int32
	Depth        int32
	Class        int32
	_            int32
	RedMask      uint64
	GreenMask    uint64
	BlueMask     uint64
	ColormapSize int32
	BitsPerRGB   int32
}

// SetWindowAttributes mirrors XSetWindowAttributes.
type SetWindowAttributes struct {
	BackgroundPixmap   Pixmap
	BackgroundPixel    uint64
	BorderPixmap       Pixmap
	BorderPixel        uint64
	BitGravity         int32
	WinGravity         int32
	BackingStore       int32
	_                  int32
	BackingPlanes      uint64
	BackingPixel       uint64
	SaveUnder          int32
	_                  int32
	EventMask          int64
	DoNotPropagateMask int64
	OverrideRedirect   int32
	_                  int32
	Colormap           Colormap
	Cursor             Cursor
}

// SizeHints mirrors XSizeHints.
type SizeHints struct {
	Flags      int64
	X, Y       int32
	Width      int32
	Height     int32
	MinWidth   int32
	MinHeight  int32
	MaxWidth   int32
	MaxHeight  int32
	WidthInc   int32
	HeightInc  int32
	MinAspectX int32
	MinAspectY int32
	MaxAspectX int32
	MaxAspectY int32
	BaseWidth  int32
	BaseHeight int32
	WinGravity int32
}

// WMHints mirrors XWMHints.
type WMHints struct {
	Flags        int64
	Input        int32
	InitialState int32
	IconPixmap   Pixmap
	IconWindow   Window
	IconX, IconY int32
	IconMask     Pixmap
	WindowGroup  XID
}

// ClassHint mirrors XClassHint.
type ClassHint struct {
	ResName  *byte
	ResClass *byte
}

// TextProperty mirrors XTextProperty.
type TextProperty struct {
	Value    uintptr
	Encoding Atom
	Format   int32
	_        int32
	NItems   uint64
}

// Color mirrors XColor.
type Color struct {
	Pixel uint64
	Red   uint16
	Green uint16
	Blue  uint16
	Flags byte
	Pad   byte
	_     [2]byte
}

// ErrorEvent mirrors XErrorEvent.
type ErrorEvent struct {
	Type       int32
	_          int32
	Display    uintptr
	ResourceID XID
	Serial     uint64
	ErrorCode  uint8
	RequestCode uint8
	MinorCode  uint8
	_          [5]byte
}

// XEvent is the raw 192-byte event union. Typed views reinterpret it.
type XEvent [192]byte

func (e *XEvent) Type() int32 {
	return *(*int32)(unsafe.Pointer(e))
}

func (e *XEvent) Any() *AnyEvent           { return (*AnyEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Key() *XKeyEvent          { return (*XKeyEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Button() *ButtonEvent     { return (*ButtonEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Motion() *MotionEvent     { return (*MotionEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Crossing() *CrossingEvent { return (*CrossingEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Focus() *FocusChangeEvent { return (*FocusChangeEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Expose() *ExposeEvent     { return (*ExposeEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Configure() *ConfigureEvent { return (*ConfigureEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Map() *MapEvent           { return (*MapEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Unmap() *UnmapEvent       { return (*UnmapEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Property() *PropertyEvent { return (*PropertyEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Client() *ClientMessageEvent { return (*ClientMessageEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Selection() *SelectionEvent  { return (*SelectionEvent)(unsafe.Pointer(e)) }
func (e *XEvent) Cookie() *XGenericEventCookie { return (*XGenericEventCookie)(unsafe.Pointer(e)) }

// AnyEvent mirrors XAnyEvent.
type AnyEvent struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Window    Window
}

// XKeyEvent mirrors the C struct of the same name.
type XKeyEvent struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Window    Window
	Root      Window
	Subwindow Window
	Time      Time
	X, Y      int32
	XRoot     int32
	YRoot     int32
	State     uint32
	Keycode   uint32
	SameScreen int32
	_         int32
}

// ButtonEvent mirrors XButtonEvent.
type ButtonEvent struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Window    Window
	Root      Window
	Subwindow Window
	Time      Time
	X, Y      int32
	XRoot     int32
	YRoot     int32
	State     uint32
	ButtonNum uint32
	SameScreen int32
	_         int32
}

// MotionEvent mirrors XMotionEvent.
type MotionEvent struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Window    Window
	Root      Window
	Subwindow Window
	Time      Time
	X, Y      int32
	XRoot     int32
	YRoot     int32
	State     uint32
	IsHint    byte
	_         [3]byte
	SameScreen int32
	_         int32
}

// CrossingEvent mirrors XCrossingEvent (Enter/LeaveNotify).
type CrossingEvent struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Window    Window
	Root      Window
	Subwindow Window
	Time      Time
	X, Y      int32
	XRoot     int32
	YRoot     int32
	Mode      int32
	Detail    int32
	SameScreen int32
	Focus     int32
	State     uint32
	_         int32
}

// FocusChangeEvent mirrors XFocusChangeEvent.
type FocusChangeEvent struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Window    Window
	Mode      int32
	Detail    int32
}

// ExposeEvent mirrors XExposeEvent.
type ExposeEvent struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Window    Window
	X, Y      int32
	Width     int32
	Height    int32
	Count     int32
	_         int32
}

// ConfigureEvent mirrors XConfigureEvent.
type ConfigureEvent struct {
	Type        int32
	_           int32
	Serial      uint64
	SendEvent   int32
	_           int32
	Display     uintptr
	Event       Window
	Window      Window
	X, Y        int32
	Width       int32
	Height      int32
	BorderWidth int32
	_           int32
	Above       Window
	OverrideRedirect int32
	_           int32
}

// MapEvent mirrors XMapEvent.
type MapEvent struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Event     Window
	Window    Window
	OverrideRedirect int32
	_         int32
}

// UnmapEvent mirrors XUnmapEvent.
type UnmapEvent struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Event     Window
	Window    Window
	FromConfigure int32
	_         int32
}

// PropertyEvent mirrors XPropertyEvent.
type PropertyEvent struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Window    Window
	Atom      Atom
	Time      Time
	State     int32
	_         int32
}

// SelectionEvent mirrors XSelectionEvent.
type SelectionEvent struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Requestor Window
	Selection Atom
	Target    Atom
	Property  Atom
	Time      Time
}

// ClientMessageEvent mirrors XClientMessageEvent with the data union
// viewed as five longs.
type ClientMessageEvent struct {
	Type        int32
	_           int32
	Serial      uint64
	SendEvent   int32
	_           int32
	Display     uintptr
	Window      Window
	MessageType Atom
	Format      int32
	_           int32
	Data        [5]int64
}

// XGenericEventCookie mirrors the GenericEvent cookie header.
type XGenericEventCookie struct {
	Type      int32
	_         int32
	Serial    uint64
	SendEvent int32
	_         int32
	Display   uintptr
	Extension int32
	Evtype    int32
	Cookie    uint32
	_         int32
	Data      uintptr
}

// CString returns a NUL-terminated byte pointer for s.
func CString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}

// GoString copies a NUL-terminated C string.
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
