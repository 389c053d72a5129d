package windc

// GLVariant distinguishes desktop OpenGL from OpenGL ES.
type GLVariant uint8

const (
	GLVariantDesktop GLVariant = iota
	GLVariantES
)

// GLVersion is a requested API version.
type GLVersion struct {
	Variant GLVariant
	Major   uint8
	Minor   uint8
}

// GLDesktop is shorthand for a desktop GL version.
func GLDesktop(major, minor uint8) GLVersion {
	return GLVersion{Variant: GLVariantDesktop, Major: major, Minor: minor}
}

// GLES is shorthand for an OpenGL ES version.
func GLES(major, minor uint8) GLVersion {
	return GLVersion{Variant: GLVariantES, Major: major, Minor: minor}
}

// GLProfile selects the desktop GL profile.
type GLProfile uint8

const (
	GLProfileCore GLProfile = iota
	GLProfileCompatibility
)

// GLResetNotificationStrategy is the robustness reset strategy
// requested alongside robust access.
type GLResetNotificationStrategy uint8

const (
	GLResetNoNotification GLResetNotificationStrategy = iota
	GLResetLoseContext
)

// GLContextSettings is a context request.
type GLContextSettings struct {
	// Version defaults to desktop 3.0 when Auto.
	Version Decision[GLVersion]
	// Profile applies to desktop GL 3.2+; Auto means compatibility.
	Profile           Decision[GLProfile]
	Debug             bool
	ForwardCompatible bool
	// RobustAccess requests GL_ARB_robustness with the given strategy.
	RobustAccess Knowledge[GLResetNotificationStrategy]
}

// GLMsaa is a multisampling request.
type GLMsaa struct {
	BufferCount uint32
	SampleCount uint32
}

// GLPixelFormatSettings enumerates the framebuffer properties an
// application can ask for.
type GLPixelFormatSettings struct {
	MsaaEnabled    bool
	Msaa           GLMsaa
	DepthBits      uint8
	StencilBits    uint8
	DoubleBuffer   bool
	Stereo         bool
	AuxBuffers     uint8
	RedBits        uint8
	GreenBits      uint8
	BlueBits       uint8
	AlphaBits      uint8
	AccumRedBits   uint8
	AccumGreenBits uint8
	AccumBlueBits  uint8
	AccumAlphaBits uint8
}

// DefaultGLPixelFormatSettings is a 32-bit RGBA, 24/8 depth/stencil,
// double-buffered request with no MSAA.
func DefaultGLPixelFormatSettings() GLPixelFormatSettings {
	return GLPixelFormatSettings{
		DepthBits:    24,
		StencilBits:  8,
		DoubleBuffer: true,
		RedBits:      8,
		GreenBits:    8,
		BlueBits:     8,
		AlphaBits:    8,
	}
}

// GLSwapIntervalKind enumerates the swap-interval strategies.
type GLSwapIntervalKind uint8

const (
	// GLSwapVSync waits for vertical sync (interval 1).
	GLSwapVSync GLSwapIntervalKind = iota
	// GLSwapImmediate never waits (interval 0).
	GLSwapImmediate
	// GLSwapIntervalN waits N vertical syncs; negative values request
	// late swap tearing.
	GLSwapIntervalN
	// GLSwapLateTearing is adaptive vsync (interval -1); requires
	// GLX_EXT_swap_control_tear or its WGL equivalent.
	GLSwapLateTearing
	// GLSwapLimitFps never touches the swap extensions: present()
	// enforces a fixed time-step sleep instead.
	GLSwapLimitFps
)

// GLSwapInterval is a swap-interval request.
type GLSwapInterval struct {
	Kind     GLSwapIntervalKind
	Interval int32
	Fps      float64
}

// GLSwapIntervalVSync builds a vsync request.
func GLSwapIntervalVSync() GLSwapInterval { return GLSwapInterval{Kind: GLSwapVSync} }

// GLSwapIntervalImmediate builds an immediate-present request.
func GLSwapIntervalImmediate() GLSwapInterval { return GLSwapInterval{Kind: GLSwapImmediate} }

// GLSwapIntervalOf builds an explicit interval request.
func GLSwapIntervalOf(i int32) GLSwapInterval {
	return GLSwapInterval{Kind: GLSwapIntervalN, Interval: i}
}

// GLSwapIntervalLateTearing builds an adaptive-vsync request.
func GLSwapIntervalLateTearing() GLSwapInterval { return GLSwapInterval{Kind: GLSwapLateTearing} }

// GLSwapIntervalLimitFps builds a software FPS limiter request.
func GLSwapIntervalLimitFps(fps float64) GLSwapInterval {
	return GLSwapInterval{Kind: GLSwapLimitFps, Fps: fps}
}

// intervalValue is the integer the platform swap extension receives.
func (s GLSwapInterval) intervalValue() int32 {
	switch s.Kind {
	case GLSwapVSync:
		return 1
	case GLSwapImmediate:
		return 0
	case GLSwapLateTearing:
		return -1
	default:
		return s.Interval
	}
}

// GLPixelFormat is a framebuffer configuration chosen by a Context. It
// is only meaningful with the Context that produced it.
type GLPixelFormat struct {
	os osGLPixelFormat
}

// GLContext is an OpenGL context bound to at most one window-as-drawable
// on one thread at a time.
type GLContext struct {
	os osGLContext
}

// GetProcAddress resolves a GL entry point. A current context is not
// required. Zero means the symbol is unknown.
func (c *GLContext) GetProcAddress(name string) uintptr {
	return c.os.procAddress(name)
}

// Destroy releases the native context. The context must not be current
// on any thread.
func (c *GLContext) Destroy() error {
	return c.os.destroy()
}
