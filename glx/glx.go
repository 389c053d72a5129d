//go:build linux || freebsd

// Package glx provides runtime bindings to the GLX entry points of
// libGL via purego. Extension entry points are not declared here: they
// must be resolved through GetProcAddress and bound with purego's
// RegisterFunc, because a GLX implementation is free to omit them from
// its export table.
package glx

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

type (
	Display   = uintptr
	FBConfig  = uintptr
	Context   = uintptr
	Drawable  = uint64
	GLXWindow = uint64
)

// GLX attribute keys and values.
const (
	UseGL          = 1
	BufferSize     = 2
	Level          = 3
	RGBA           = 4
	DoubleBuffer   = 5
	Stereo         = 6
	AuxBuffers     = 7
	RedSize        = 8
	GreenSize      = 9
	BlueSize       = 10
	AlphaSize      = 11
	DepthSize      = 12
	StencilSize    = 13
	AccumRedSize   = 14
	AccumGreenSize = 15
	AccumBlueSize  = 16
	AccumAlphaSize = 17

	DrawableType = 0x8010
	RenderType   = 0x8011
	XRenderable  = 0x8012
	FBConfigID   = 0x8013
	RGBAType     = 0x8014

	WindowBit = 0x0001
	RGBABit   = 0x0001

	SampleBuffers = 100000
	Samples       = 100001
)

// GLX_ARB_create_context and friends.
const (
	ContextMajorVersionARB = 0x2091
	ContextMinorVersionARB = 0x2092
	ContextFlagsARB        = 0x2094
	ContextProfileMaskARB  = 0x9126

	ContextDebugBitARB             = 0x0001
	ContextForwardCompatibleBitARB = 0x0002
	ContextRobustAccessBitARB      = 0x0004

	ContextCoreProfileBitARB          = 0x0001
	ContextCompatibilityProfileBitARB = 0x0002
	ContextESProfileBitEXT            = 0x0004

	ContextResetNotificationStrategyARB = 0x8256
	NoResetNotificationARB              = 0x8261
	LoseContextOnResetARB               = 0x8252
)

var (
	libGL uintptr

	loadOnce sync.Once
	loadErr  error
)

var (
	QueryExtension        func(d Display, errorBase, eventBase *int32) int32
	QueryVersion          func(d Display, major, minor *int32) int32
	QueryExtensionsString func(d Display, screen int32) uintptr
	ChooseVisual          func(d Display, screen int32, attribs *int32) uintptr
	ChooseFBConfig        func(d Display, screen int32, attribs *int32, nitems *int32) uintptr
	GetFBConfigAttrib     func(d Display, config FBConfig, attrib int32, value *int32) int32
	GetVisualFromFBConfig func(d Display, config FBConfig) uintptr
	CreateContext         func(d Display, vis uintptr, shareList Context, direct int32) Context
	CreateNewContext      func(d Display, config FBConfig, renderType int32, shareList Context, direct int32) Context
	DestroyContext        func(d Display, ctx Context)
	MakeCurrent           func(d Display, drawable Drawable, ctx Context) int32
	MakeContextCurrent    func(d Display, draw, read Drawable, ctx Context) int32
	SwapBuffers           func(d Display, drawable Drawable)
	CreateWindow          func(d Display, config FBConfig, win uint64, attribs *int32) GLXWindow
	DestroyWindow         func(d Display, win GLXWindow)
	IsDirect              func(d Display, ctx Context) int32
	GetProcAddressARB     func(name *byte) uintptr
)

// Load resolves libGL. Safe to call more than once.
func Load() error {
	loadOnce.Do(func() { loadErr = load() })
	return loadErr
}

func load() error {
	var err error
	libGL, err = purego.Dlopen("libGL.so.1", purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return fmt.Errorf("glx: %w", err)
	}
	register := func(fptr any, name string) {
		purego.RegisterLibFunc(fptr, libGL, name)
	}
	register(&QueryExtension, "glXQueryExtension")
	register(&QueryVersion, "glXQueryVersion")
	register(&QueryExtensionsString, "glXQueryExtensionsString")
	register(&ChooseVisual, "glXChooseVisual")
	register(&ChooseFBConfig, "glXChooseFBConfig")
	register(&GetFBConfigAttrib, "glXGetFBConfigAttrib")
	register(&GetVisualFromFBConfig, "glXGetVisualFromFBConfig")
	register(&CreateContext, "glXCreateContext")
	register(&CreateNewContext, "glXCreateNewContext")
	register(&DestroyContext, "glXDestroyContext")
	register(&MakeCurrent, "glXMakeCurrent")
	register(&MakeContextCurrent, "glXMakeContextCurrent")
	register(&SwapBuffers, "glXSwapBuffers")
	register(&CreateWindow, "glXCreateWindow")
	register(&DestroyWindow, "glXDestroyWindow")
	register(&IsDirect, "glXIsDirect")
	register(&GetProcAddressARB, "glXGetProcAddressARB")
	return nil
}

// ProcAddress resolves a GL or GLX extension entry point by name. A
// current context is not required.
func ProcAddress(name string) uintptr {
	b := append([]byte(name), 0)
	return GetProcAddressARB(&b[0])
}

// FBConfigAt indexes the array returned by ChooseFBConfig.
func FBConfigAt(configs uintptr, i int) FBConfig {
	return *(*FBConfig)(unsafe.Pointer(configs + uintptr(i)*unsafe.Sizeof(uintptr(0))))
}
