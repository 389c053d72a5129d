//go:build windows

package windc

import (
	"strings"
	"syscall"
	"time"
	"unsafe"
)

// WGL attribute keys and context bits. The ARB values are shared with
// GLX, so context attribute generation mirrors the X11 path exactly.
const (
	wglDrawToWindowARB    = 0x2001
	wglAccelerationARB    = 0x2003
	wglSupportOpenGLARB   = 0x2010
	wglDoubleBufferARB    = 0x2011
	wglStereoARB          = 0x2012
	wglPixelTypeARB       = 0x2013
	wglColorBitsARB       = 0x2014
	wglRedBitsARB         = 0x2015
	wglGreenBitsARB       = 0x2017
	wglBlueBitsARB        = 0x2019
	wglAlphaBitsARB       = 0x201B
	wglAccumRedBitsARB    = 0x201E
	wglAccumGreenBitsARB  = 0x201F
	wglAccumBlueBitsARB   = 0x2020
	wglAccumAlphaBitsARB  = 0x2021
	wglDepthBitsARB       = 0x2022
	wglStencilBitsARB     = 0x2023
	wglAuxBuffersARB      = 0x2024
	wglFullAccelerationARB = 0x2027
	wglTypeRGBAARB        = 0x202B
	wglSampleBuffersARB   = 0x2041
	wglSamplesARB         = 0x2042

	wglContextMajorVersionARB = 0x2091
	wglContextMinorVersionARB = 0x2092
	wglContextFlagsARB        = 0x2094
	wglContextProfileMaskARB  = 0x9126

	wglContextDebugBitARB             = 0x0001
	wglContextForwardCompatibleBitARB = 0x0002
	wglContextRobustAccessBitARB      = 0x0004

	wglContextCoreProfileBitARB          = 0x0001
	wglContextCompatibilityProfileBitARB = 0x0002
	wglContextESProfileBitEXT            = 0x0004

	wglContextResetNotificationStrategyARB = 0x8256
	wglLoseContextOnResetARB               = 0x8252
	wglNoResetNotificationARB              = 0x8261
)

// wglCaps holds the extension entry points resolved during bootstrap.
type wglCaps struct {
	getExtensionsStringARB  uintptr
	choosePixelFormatARB    uintptr
	createContextAttribsARB uintptr
	swapIntervalEXT         uintptr

	pixelFormatARB   bool
	multisample      bool
	arbCreateContext bool
	profile          bool
	robustness       bool
	esProfile        bool
	es2Profile       bool
	swapControl      bool
	swapControlTear  bool
}

func wglGetProc(name string) uintptr {
	b, err := syscall.BytePtrFromString(name)
	if err != nil {
		return 0
	}
	p, _, _ := procWglGetProcAddress.Call(uintptr(unsafe.Pointer(b)))
	// Drivers return small sentinel values for unknown entry points.
	if p == 0 || p == 1 || p == 2 || p == 3 || p == ^uintptr(0) {
		return 0
	}
	return p
}

func goStringFromPtr(p uintptr) string {
	if p == 0 {
		return ""
	}
	var b []byte
	for {
		c := *(*byte)(unsafe.Pointer(p + uintptr(len(b))))
		if c == 0 {
			return string(b)
		}
		b = append(b, c)
	}
}

// legacyPixelFormatDescriptor is the bootstrap descriptor; the real
// request is negotiated through wglChoosePixelFormatARB when present.
func legacyPixelFormatDescriptor(settings *GLPixelFormatSettings) pixelFormatDescriptor {
	flags := uint32(pfdDrawToWindow | pfdSupportOpenGL)
	if settings.DoubleBuffer {
		flags |= pfdDoubleBuffer
	}
	if settings.Stereo {
		flags |= pfdStereo
	}
	return pixelFormatDescriptor{
		nSize:           uint16(unsafe.Sizeof(pixelFormatDescriptor{})),
		nVersion:        1,
		dwFlags:         flags,
		iPixelType:      pfdTypeRGBA,
		cColorBits:      settings.RedBits + settings.GreenBits + settings.BlueBits,
		cRedBits:        settings.RedBits,
		cGreenBits:      settings.GreenBits,
		cBlueBits:       settings.BlueBits,
		cAlphaBits:      settings.AlphaBits,
		cAccumRedBits:   settings.AccumRedBits,
		cAccumGreenBits: settings.AccumGreenBits,
		cAccumBlueBits:  settings.AccumBlueBits,
		cAccumAlphaBits: settings.AccumAlphaBits,
		cDepthBits:      settings.DepthBits,
		cStencilBits:    settings.StencilBits,
		cAuxBuffers:     settings.AuxBuffers,
		iLayerType:      pfdMainPlane,
	}
}

// scratchGLWindow makes a hidden window whose DC can carry a pixel
// format. WGL negotiation needs one because SetPixelFormat is
// once-per-window.
func (c *win32Context) scratchGLWindow() (hwnd, hdc, error) {
	clearLastError()
	h, _, _ := procCreateWindowEx.Call(0,
		uintptr(unsafe.Pointer(c.className)), 0,
		wsClipSiblings|wsClipChildren,
		0, 0, 1, 1, 0, 0, uintptr(c.instance), 0)
	if h == 0 {
		return 0, 0, winFailed("CreateWindowExW")
	}
	dc, _, _ := procGetDC.Call(h)
	if dc == 0 {
		procDestroyWindow.Call(h)
		return 0, 0, Failed("GetDC failed")
	}
	return hwnd(h), hdc(dc), nil
}

func (c *win32Context) destroyScratch(h hwnd, dc hdc) {
	procReleaseDC.Call(uintptr(h), uintptr(dc))
	procDestroyWindow.Call(uintptr(h))
}

// bootstrapWGL spins up a throwaway legacy context to resolve the ARB
// entry points and extension list. Failure leaves the windowing side
// usable; GL calls report wglErr.
func (c *win32Context) bootstrapWGL() {
	h, dc, err := c.scratchGLWindow()
	if err != nil {
		c.wglErr = err
		return
	}
	defer c.destroyScratch(h, dc)

	def := DefaultGLPixelFormatSettings()
	pfd := legacyPixelFormatDescriptor(&def)
	format, _, _ := procChoosePixelFormat.Call(uintptr(dc), uintptr(unsafe.Pointer(&pfd)))
	if format == 0 {
		c.wglErr = Failed("ChoosePixelFormat found no OpenGL pixel format")
		return
	}
	if r, _, _ := procSetPixelFormat.Call(uintptr(dc), format, uintptr(unsafe.Pointer(&pfd))); r == 0 {
		c.wglErr = winFailed("SetPixelFormat")
		return
	}

	glrc, _, _ := procWglCreateContext.Call(uintptr(dc))
	if glrc == 0 {
		c.wglErr = winFailed("wglCreateContext")
		return
	}
	defer procWglDeleteContext.Call(glrc)
	if r, _, _ := procWglMakeCurrent.Call(uintptr(dc), glrc); r == 0 {
		c.wglErr = winFailed("wglMakeCurrent")
		return
	}
	defer procWglMakeCurrent.Call(0, 0)

	g := &c.wgl
	g.getExtensionsStringARB = wglGetProc("wglGetExtensionsStringARB")
	var extensions string
	if g.getExtensionsStringARB != 0 {
		p, _, _ := syscall.SyscallN(g.getExtensionsStringARB, uintptr(dc))
		extensions = goStringFromPtr(p)
	}
	has := func(name string) bool {
		for _, e := range strings.Fields(extensions) {
			if e == name {
				return true
			}
		}
		return false
	}

	g.pixelFormatARB = has("WGL_ARB_pixel_format")
	g.multisample = has("WGL_ARB_multisample")
	g.arbCreateContext = has("WGL_ARB_create_context")
	g.profile = has("WGL_ARB_create_context_profile")
	g.robustness = has("WGL_ARB_create_context_robustness")
	g.esProfile = has("WGL_EXT_create_context_es_profile")
	g.es2Profile = has("WGL_EXT_create_context_es2_profile")
	g.swapControl = has("WGL_EXT_swap_control")
	g.swapControlTear = has("WGL_EXT_swap_control_tear")

	if g.pixelFormatARB {
		g.choosePixelFormatARB = wglGetProc("wglChoosePixelFormatARB")
	}
	if g.arbCreateContext {
		g.createContextAttribsARB = wglGetProc("wglCreateContextAttribsARB")
	}
	if g.swapControl {
		g.swapIntervalEXT = wglGetProc("wglSwapIntervalEXT")
	}
}

// win32GLPixelFormat is a chosen pixel format index, valid for any
// window DC on the same display driver.
type win32GLPixelFormat struct {
	ctx       *win32Context
	requested GLPixelFormatSettings
	index     int32
}

func (pf *win32GLPixelFormat) settings() *GLPixelFormatSettings {
	s := pf.requested
	return &s
}

func (pf *win32GLPixelFormat) applyTo(dc hdc) error {
	var pfd pixelFormatDescriptor
	clearLastError()
	r, _, _ := procDescribePixelFormat.Call(uintptr(dc), uintptr(pf.index),
		unsafe.Sizeof(pfd), uintptr(unsafe.Pointer(&pfd)))
	if r == 0 {
		return winFailed("DescribePixelFormat")
	}
	if r, _, _ := procSetPixelFormat.Call(uintptr(dc), uintptr(pf.index), uintptr(unsafe.Pointer(&pfd))); r == 0 {
		return winFailed("SetPixelFormat")
	}
	return nil
}

func genWGLPixelFormatAttribs(settings *GLPixelFormatSettings, multisample bool) []int32 {
	attribs := []int32{
		wglDrawToWindowARB, 1,
		wglSupportOpenGLARB, 1,
		wglAccelerationARB, wglFullAccelerationARB,
		wglPixelTypeARB, wglTypeRGBAARB,
		wglRedBitsARB, int32(settings.RedBits),
		wglGreenBitsARB, int32(settings.GreenBits),
		wglBlueBitsARB, int32(settings.BlueBits),
		wglAlphaBitsARB, int32(settings.AlphaBits),
		wglAccumRedBitsARB, int32(settings.AccumRedBits),
		wglAccumGreenBitsARB, int32(settings.AccumGreenBits),
		wglAccumBlueBitsARB, int32(settings.AccumBlueBits),
		wglAccumAlphaBitsARB, int32(settings.AccumAlphaBits),
		wglDepthBitsARB, int32(settings.DepthBits),
		wglStencilBitsARB, int32(settings.StencilBits),
		wglAuxBuffersARB, int32(settings.AuxBuffers),
	}
	if settings.DoubleBuffer {
		attribs = append(attribs, wglDoubleBufferARB, 1)
	}
	if settings.Stereo {
		attribs = append(attribs, wglStereoARB, 1)
	}
	if settings.MsaaEnabled && multisample {
		attribs = append(attribs,
			wglSampleBuffersARB, int32(settings.Msaa.BufferCount),
			wglSamplesARB, int32(settings.Msaa.SampleCount))
	}
	return append(attribs, 0)
}

func (c *win32Context) chooseGLPixelFormat(settings *GLPixelFormatSettings) (osGLPixelFormat, error) {
	if c.wglErr != nil {
		return nil, c.wglErr
	}
	h, dc, err := c.scratchGLWindow()
	if err != nil {
		return nil, err
	}
	defer c.destroyScratch(h, dc)

	if c.wgl.choosePixelFormatARB != 0 {
		attribs := genWGLPixelFormatAttribs(settings, c.wgl.multisample)
		var format int32
		var count uint32
		r, _, _ := syscall.SyscallN(c.wgl.choosePixelFormatARB,
			uintptr(dc),
			uintptr(unsafe.Pointer(&attribs[0])),
			0, 1,
			uintptr(unsafe.Pointer(&format)),
			uintptr(unsafe.Pointer(&count)))
		if r == 0 || count == 0 {
			return nil, Failed("wglChoosePixelFormatARB found no matching pixel format")
		}
		return &win32GLPixelFormat{ctx: c, requested: *settings, index: format}, nil
	}

	pfd := legacyPixelFormatDescriptor(settings)
	format, _, _ := procChoosePixelFormat.Call(uintptr(dc), uintptr(unsafe.Pointer(&pfd)))
	if format == 0 {
		return nil, Failed("ChoosePixelFormat found no matching pixel format")
	}
	return &win32GLPixelFormat{ctx: c, requested: *settings, index: int32(format)}, nil
}

// genWGLContextAttribs mirrors the GLX attribute generator; only the
// extension names in the errors differ.
func genWGLContextAttribs(settings *GLContextSettings, g *wglCaps) ([]int32, error) {
	version := settings.Version.Or(GLDesktop(3, 0))

	var flags int32
	if settings.Debug {
		flags |= wglContextDebugBitARB
	}
	if settings.ForwardCompatible {
		flags |= wglContextForwardCompatibleBitARB
	}
	if settings.RobustAccess.IsKnown() {
		if !g.robustness {
			return nil, Unsupported("missing extension WGL_ARB_create_context_robustness")
		}
		flags |= wglContextRobustAccessBitARB
	}

	attribs := []int32{
		wglContextMajorVersionARB, int32(version.Major),
		wglContextMinorVersionARB, int32(version.Minor),
		wglContextFlagsARB, flags,
	}

	switch version.Variant {
	case GLVariantES:
		switch {
		case g.esProfile:
		case g.es2Profile && version.Major == 2:
		default:
			return nil, Unsupported("missing extension WGL_EXT_create_context_es_profile")
		}
		attribs = append(attribs, wglContextProfileMaskARB, wglContextESProfileBitEXT)
	default:
		if g.profile {
			mask := int32(wglContextCompatibilityProfileBitARB)
			if p, ok := settings.Profile.Value(); ok && p == GLProfileCore {
				mask = wglContextCoreProfileBitARB
			}
			attribs = append(attribs, wglContextProfileMaskARB, mask)
		}
	}

	if strategy, ok := settings.RobustAccess.Value(); ok {
		value := int32(wglNoResetNotificationARB)
		if strategy == GLResetLoseContext {
			value = wglLoseContextOnResetARB
		}
		attribs = append(attribs, wglContextResetNotificationStrategyARB, value)
	}

	return append(attribs, 0), nil
}

// win32GLContext wraps one HGLRC.
type win32GLContext struct {
	ctx    *win32Context
	handle hglrc
}

func (g *win32GLContext) procAddress(name string) uintptr {
	if p := wglGetProc(name); p != 0 {
		return p
	}
	// GL 1.1 entry points live in opengl32.dll itself.
	p, _ := syscall.GetProcAddress(syscall.Handle(opengl32.Handle()), name)
	return p
}

func (g *win32GLContext) destroy() error {
	if g.handle != 0 {
		procWglDeleteContext.Call(uintptr(g.handle))
		g.handle = 0
	}
	return nil
}

func (c *win32Context) createGLContext(pf osGLPixelFormat, settings *GLContextSettings) (osGLContext, error) {
	if c.wglErr != nil {
		return nil, c.wglErr
	}
	wpf, ok := pf.(*win32GLPixelFormat)
	if !ok || wpf.ctx != c {
		return nil, InvalidArgument("pixel format belongs to another context")
	}

	// A context made against any DC of this pixel format works with
	// every window carrying the same format.
	h, dc, err := c.scratchGLWindow()
	if err != nil {
		return nil, err
	}
	defer c.destroyScratch(h, dc)
	if err := wpf.applyTo(dc); err != nil {
		return nil, err
	}

	var handle uintptr
	if !c.wgl.arbCreateContext || c.wgl.createContextAttribsARB == 0 {
		clearLastError()
		handle, _, _ = procWglCreateContext.Call(uintptr(dc))
	} else {
		attribs, err := genWGLContextAttribs(settings, &c.wgl)
		if err != nil {
			return nil, err
		}
		clearLastError()
		handle, _, _ = syscall.SyscallN(c.wgl.createContextAttribsARB,
			uintptr(dc), 0, uintptr(unsafe.Pointer(&attribs[0])))
	}
	if handle == 0 {
		return nil, winFailed("context creation")
	}
	return &win32GLContext{ctx: c, handle: hglrc(handle)}, nil
}

func (w *win32Window) makeGLCurrent(ctx osGLContext) error {
	c := w.ctx
	if c.wglErr != nil {
		return c.wglErr
	}
	if ctx == nil {
		procWglMakeCurrent.Call(0, 0)
		w.currentCtx = nil
		return nil
	}
	g, ok := ctx.(*win32GLContext)
	if !ok || g.ctx != c {
		return InvalidArgument("GL context belongs to another context")
	}
	clearLastError()
	if r, _, _ := procWglMakeCurrent.Call(uintptr(w.dc), uintptr(g.handle)); r == 0 {
		return winFailed("wglMakeCurrent")
	}
	w.currentCtx = g
	return nil
}

func (w *win32Window) presentGL() error {
	if w.ctx.wglErr != nil {
		return w.ctx.wglErr
	}
	procSwapBuffers.Call(uintptr(w.dc))
	if w.fpsLimit > 0 {
		w.limitFrameRate()
	}
	return nil
}

// limitFrameRate enforces the software FPS cap with a fixed time step.
func (w *win32Window) limitFrameRate() {
	step := int64(float64(time.Second) / w.fpsLimit)
	now := time.Now().UnixNano()
	if w.lastSwap != 0 {
		if due := w.lastSwap + step; now < due {
			time.Sleep(time.Duration(due - now))
			now = due
		}
	}
	w.lastSwap = now
}

func (w *win32Window) setGLSwapInterval(interval GLSwapInterval) error {
	c := w.ctx
	if c.wglErr != nil {
		return c.wglErr
	}

	if interval.Kind == GLSwapLimitFps {
		if interval.Fps <= 0 {
			return InvalidArgument("FPS limit must be positive")
		}
		w.fpsLimit = interval.Fps
		w.lastSwap = 0
		return nil
	}
	w.fpsLimit = 0

	var value int32
	switch interval.Kind {
	case GLSwapVSync:
		value = 1
	case GLSwapImmediate:
		value = 0
	case GLSwapIntervalN:
		value = interval.Interval
	case GLSwapLateTearing:
		value = -1
	}

	if value < 0 && !c.wgl.swapControlTear {
		return Failed("missing extension WGL_EXT_swap_control_tear")
	}
	if c.wgl.swapIntervalEXT == 0 {
		return Failed("no swap control extension available")
	}
	if r, _, _ := syscall.SyscallN(c.wgl.swapIntervalEXT, uintptr(value)); r == 0 {
		return Failed("wglSwapIntervalEXT rejected the interval")
	}
	return nil
}
