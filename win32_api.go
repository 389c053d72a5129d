//go:build windows

package windc

import "syscall"

// Win32 handle aliases.
type (
	hwnd      = syscall.Handle
	hdc       = syscall.Handle
	hglrc     = syscall.Handle
	hcursor   = syscall.Handle
	hicon     = syscall.Handle
	hbitmap   = syscall.Handle
	hmonitor  = syscall.Handle
	himc      = syscall.Handle
	hinstance = syscall.Handle
)

const (
	csOwnDC   = 0x0020
	csHRedraw = 0x0002
	csVRedraw = 0x0001
	csDblClks = 0x0008

	wsOverlappedWindow = 0x00CF0000
	wsCaption          = 0x00C00000
	wsSysMenu          = 0x00080000
	wsThickFrame       = 0x00040000
	wsMinimizeBox      = 0x00020000
	wsMaximizeBox      = 0x00010000
	wsBorder           = 0x00800000
	wsClipSiblings     = 0x04000000
	wsClipChildren     = 0x02000000
	wsPopup            = 0x80000000

	wsExLayered = 0x00080000

	gwlStyle   = ^uintptr(15) // GWL_STYLE, -16
	gwlExStyle = ^uintptr(19) // GWL_EXSTYLE, -20

	swHide     = 0
	swShow     = 5
	swMinimize = 6
	swMaximize = 3
	swRestore  = 9

	swpNoSize         = 0x0001
	swpNoMove         = 0x0002
	swpNoZOrder       = 0x0004
	swpNoActivate     = 0x0010
	swpFrameChanged   = 0x0020
	swpShowWindow     = 0x0040
	swpNoOwnerZOrder  = 0x0200

	hwndTop    = 0
	hwndBottom = 1

	wmDestroy         = 0x0002
	wmMove            = 0x0003
	wmSize            = 0x0005
	wmSetFocus        = 0x0007
	wmKillFocus       = 0x0008
	wmPaint           = 0x000F
	wmClose           = 0x0010
	wmShowWindow      = 0x0018
	wmSetCursor       = 0x0020
	wmGetMinMaxInfo   = 0x0024
	wmWindowPosChanged = 0x0047
	wmKeyDown         = 0x0100
	wmKeyUp           = 0x0101
	wmChar            = 0x0102
	wmSysKeyDown      = 0x0104
	wmSysKeyUp        = 0x0105
	wmMouseMove       = 0x0200
	wmLButtonDown     = 0x0201
	wmLButtonUp       = 0x0202
	wmLButtonDblClk   = 0x0203
	wmRButtonDown     = 0x0204
	wmRButtonUp       = 0x0205
	wmRButtonDblClk   = 0x0206
	wmMButtonDown     = 0x0207
	wmMButtonUp       = 0x0208
	wmMButtonDblClk   = 0x0209
	wmMouseWheel      = 0x020A
	wmXButtonDown     = 0x020B
	wmXButtonUp       = 0x020C
	wmXButtonDblClk   = 0x020D
	wmMouseHWheel     = 0x020E
	wmMouseLeave      = 0x02A3
	wmSetIcon         = 0x0080

	pmRemove = 0x0001

	htClient = 1

	iconSmall = 0
	iconBig   = 1

	idcArrow       = 32512
	idcIBeam       = 32513
	idcWait        = 32514
	idcCross       = 32515
	idcSizeNWSE    = 32642
	idcSizeNESW    = 32643
	idcSizeWE      = 32644
	idcSizeNS      = 32645
	idcSizeAll     = 32646
	idcNo          = 32648
	idcHand        = 32649
	idcAppStarting = 32650
	idcHelp        = 32651

	smCxCursor = 13
	smCyCursor = 14

	lwaAlpha = 0x0002

	flashwAll   = 0x0003
	flashwTimerNoFG = 0x0000000C

	tmeLeave = 0x0002

	monitorDefaultToNearest = 0x0002

	wheelDelta = 120

	xbutton1 = 0x0001
	xbutton2 = 0x0002

	vkShift = 0x10

	cwUseDefault = 0x80000000

	pfdTypeRGBA      = 0
	pfdMainPlane     = 0
	pfdDrawToWindow  = 0x00000004
	pfdSupportOpenGL = 0x00000020
	pfdDoubleBuffer  = 0x00000001
	pfdStereo        = 0x00000002
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     hinstance
	hIcon         hicon
	hCursor       hcursor
	hbrBackground syscall.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       hicon
}

type winMsg struct {
	hwnd     hwnd
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       winPoint
	lPrivate uint32
}

type winPoint struct {
	x int32
	y int32
}

type winRect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

type minMaxInfo struct {
	ptReserved     winPoint
	ptMaxSize      winPoint
	ptMaxPosition  winPoint
	ptMinTrackSize winPoint
	ptMaxTrackSize winPoint
}

type windowPos struct {
	hwnd            hwnd
	hwndInsertAfter hwnd
	x               int32
	y               int32
	cx              int32
	cy              int32
	flags           uint32
}

type trackMouseEventArgs struct {
	cbSize      uint32
	dwFlags     uint32
	hwndTrack   hwnd
	dwHoverTime uint32
}

type flashWInfo struct {
	cbSize    uint32
	hwnd      hwnd
	dwFlags   uint32
	uCount    uint32
	dwTimeout uint32
}

type iconInfo struct {
	fIcon    int32
	xHotspot uint32
	yHotspot uint32
	hbmMask  hbitmap
	hbmColor hbitmap
}

type monitorInfo struct {
	cbSize    uint32
	rcMonitor winRect
	rcWork    winRect
	dwFlags   uint32
}

// Mirrors PIXELFORMATDESCRIPTOR (must be 40 bytes).
type pixelFormatDescriptor struct {
	nSize           uint16
	nVersion        uint16
	dwFlags         uint32
	iPixelType      byte
	cColorBits      byte
	cRedBits        byte
	cRedShift       byte
	cGreenBits      byte
	cGreenShift     byte
	cBlueBits       byte
	cBlueShift      byte
	cAlphaBits      byte
	cAlphaShift     byte
	cAccumBits      byte
	cAccumRedBits   byte
	cAccumGreenBits byte
	cAccumBlueBits  byte
	cAccumAlphaBits byte
	cDepthBits      byte
	cStencilBits    byte
	cAuxBuffers     byte
	iLayerType      byte
	bReserved       byte
	dwLayerMask     uint32
	dwVisibleMask   uint32
	dwDamageMask    uint32
}

var (
	user32   = syscall.NewLazyDLL("user32.dll")
	gdi32    = syscall.NewLazyDLL("gdi32.dll")
	opengl32 = syscall.NewLazyDLL("opengl32.dll")
	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	procRegisterClassEx   = user32.NewProc("RegisterClassExW")
	procCreateWindowEx    = user32.NewProc("CreateWindowExW")
	procDefWindowProc     = user32.NewProc("DefWindowProcW")
	procDestroyWindow     = user32.NewProc("DestroyWindow")
	procShowWindow        = user32.NewProc("ShowWindow")
	procSetWindowText     = user32.NewProc("SetWindowTextW")
	procGetWindowTextLen  = user32.NewProc("GetWindowTextLengthW")
	procGetWindowText     = user32.NewProc("GetWindowTextW")
	procGetClientRect     = user32.NewProc("GetClientRect")
	procGetWindowRect     = user32.NewProc("GetWindowRect")
	procSetWindowPos      = user32.NewProc("SetWindowPos")
	procGetWindowLongPtr  = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtr  = user32.NewProc("SetWindowLongPtrW")
	procIsZoomed          = user32.NewProc("IsZoomed")
	procIsIconic          = user32.NewProc("IsIconic")
	procIsWindowVisible   = user32.NewProc("IsWindowVisible")
	procPeekMessage       = user32.NewProc("PeekMessageW")
	procTranslateMessage  = user32.NewProc("TranslateMessage")
	procDispatchMessage   = user32.NewProc("DispatchMessageW")
	procGetMessageTime    = user32.NewProc("GetMessageTime")
	procGetDC             = user32.NewProc("GetDC")
	procReleaseDC         = user32.NewProc("ReleaseDC")
	procLoadCursor        = user32.NewProc("LoadCursorW")
	procSetCursor         = user32.NewProc("SetCursor")
	procDestroyCursor     = user32.NewProc("DestroyCursor")
	procCreateIconIndirect = user32.NewProc("CreateIconIndirect")
	procDestroyIcon       = user32.NewProc("DestroyIcon")
	procSendMessage       = user32.NewProc("SendMessageW")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procFlashWindowEx     = user32.NewProc("FlashWindowEx")
	procClipCursor        = user32.NewProc("ClipCursor")
	procTrackMouseEvent   = user32.NewProc("TrackMouseEvent")
	procGetSystemMetrics  = user32.NewProc("GetSystemMetrics")
	procMonitorFromWindow = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfo    = user32.NewProc("GetMonitorInfoW")
	procMapVirtualKey     = user32.NewProc("MapVirtualKeyW")
	procClientToScreen    = user32.NewProc("ClientToScreen")
	procSetFocus          = user32.NewProc("SetFocus")
	procGetFocus          = user32.NewProc("GetFocus")
	procBringWindowToTop  = user32.NewProc("BringWindowToTop")
	procAdjustWindowRectEx = user32.NewProc("AdjustWindowRectEx")
	procValidateRect      = user32.NewProc("ValidateRect")

	procChoosePixelFormat   = gdi32.NewProc("ChoosePixelFormat")
	procDescribePixelFormat = gdi32.NewProc("DescribePixelFormat")
	procSetPixelFormat      = gdi32.NewProc("SetPixelFormat")
	procSwapBuffers         = gdi32.NewProc("SwapBuffers")
	procCreateBitmap        = gdi32.NewProc("CreateBitmap")
	procDeleteObject        = gdi32.NewProc("DeleteObject")

	procWglCreateContext  = opengl32.NewProc("wglCreateContext")
	procWglDeleteContext  = opengl32.NewProc("wglDeleteContext")
	procWglMakeCurrent    = opengl32.NewProc("wglMakeCurrent")
	procWglGetProcAddress = opengl32.NewProc("wglGetProcAddress")

	procGetModuleHandle = kernel32.NewProc("GetModuleHandleW")
	procSetLastError    = kernel32.NewProc("SetLastError")
	procGetLastError    = kernel32.NewProc("GetLastError")
)

func lastError() syscall.Errno {
	e, _, _ := procGetLastError.Call()
	return syscall.Errno(e)
}

func clearLastError() {
	procSetLastError.Call(0)
}

func winFailed(op string) error {
	if e := lastError(); e != 0 {
		return Failedf("%s failed: %v", op, e)
	}
	return Failedf("%s failed", op)
}

func moduleHandle() hinstance {
	h, _, _ := procGetModuleHandle.Call(0)
	return hinstance(h)
}
