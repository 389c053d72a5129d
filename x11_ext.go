//go:build linux || freebsd

package windc

import (
	"strings"

	"github.com/ebitengine/purego"

	"github.com/lunarsen/windc/glx"
	"github.com/lunarsen/windc/xlib"
)

// Extension records. Each extension the Context needs is probed once at
// creation time; the result is stored as (record, error) and consumers
// go through an accessor that surfaces the error when the probe failed.

// glxExt caches the GLX version, the extension set, and the extension
// entry points resolved through glXGetProcAddressARB. A nil function
// pointer and a false flag both mean "absent"; callers check the flag.
type glxExt struct {
	major, minor int32
	errorBase    int32
	eventBase    int32

	arbMultisample             bool
	extSwapControl             bool
	extSwapControlTear         bool
	mesaSwapControl            bool
	sgiSwapControl             bool
	sgiVideoSync               bool
	omlSwapMethod              bool
	omlSyncControl             bool
	arbCreateContext           bool
	arbCreateContextProfile    bool
	arbCreateContextRobustness bool
	extCreateContextESProfile  bool
	extCreateContextES2Profile bool

	swapIntervalEXT         func(d glx.Display, drawable glx.Drawable, interval int32)
	swapIntervalMESA        func(interval int32) int32
	getSwapIntervalMESA     func() int32
	swapIntervalSGI         func(interval int32) int32
	createContextAttribsARB func(d glx.Display, config glx.FBConfig, share glx.Context, direct int32, attribs *int32) glx.Context
}

func (g *glxExt) atLeast(major, minor int32) bool {
	return g.major > major || (g.major == major && g.minor >= minor)
}

func probeGLX(c *x11Context) (*glxExt, error) {
	if err := glx.Load(); err != nil {
		return nil, Failedf("loading libGL: %v", err)
	}
	g := &glxExt{}
	if glx.QueryExtension(c.display, &g.errorBase, &g.eventBase) == 0 {
		return nil, Failed("GLX extension not present")
	}
	if glx.QueryVersion(c.display, &g.major, &g.minor) == 0 {
		return nil, Failed("glXQueryVersion failed")
	}
	extStr := xlib.GoString(glx.QueryExtensionsString(c.display, c.screen))
	for _, name := range strings.Fields(extStr) {
		switch name {
		case "GLX_ARB_multisample":
			g.arbMultisample = true
		case "GLX_EXT_swap_control":
			g.extSwapControl = true
		case "GLX_EXT_swap_control_tear":
			g.extSwapControlTear = true
		case "GLX_MESA_swap_control":
			g.mesaSwapControl = true
		case "GLX_SGI_swap_control":
			g.sgiSwapControl = true
		case "GLX_SGI_video_sync":
			g.sgiVideoSync = true
		case "GLX_OML_swap_method":
			g.omlSwapMethod = true
		case "GLX_OML_sync_control":
			g.omlSyncControl = true
		case "GLX_ARB_create_context":
			g.arbCreateContext = true
		case "GLX_ARB_create_context_profile":
			g.arbCreateContextProfile = true
		case "GLX_ARB_create_context_robustness":
			g.arbCreateContextRobustness = true
		case "GLX_EXT_create_context_es_profile":
			g.extCreateContextESProfile = true
		case "GLX_EXT_create_context_es2_profile":
			g.extCreateContextES2Profile = true
		}
	}
	bind := func(fptr any, name string, present bool) {
		if !present {
			return
		}
		if p := glx.ProcAddress(name); p != 0 {
			purego.RegisterFunc(fptr, p)
		}
	}
	bind(&g.swapIntervalEXT, "glXSwapIntervalEXT", g.extSwapControl)
	bind(&g.swapIntervalMESA, "glXSwapIntervalMESA", g.mesaSwapControl)
	bind(&g.getSwapIntervalMESA, "glXGetSwapIntervalMESA", g.mesaSwapControl)
	bind(&g.swapIntervalSGI, "glXSwapIntervalSGI", g.sgiSwapControl)
	bind(&g.createContextAttribsARB, "glXCreateContextAttribsARB", g.arbCreateContext)
	logger.Debug("probed GLX", "version", []int32{g.major, g.minor}, "extensions", extStr)
	return g, nil
}

// xrenderExt records the Render extension probe; ARGB and animated
// cursors depend on it.
type xrenderExt struct {
	eventBase int32
	errorBase int32
	major     int32
	minor     int32
	argb32    bool
}

func probeXRender(c *x11Context) (*xrenderExt, error) {
	r := &xrenderExt{}
	if xlib.XRenderQueryExtension(c.display, &r.eventBase, &r.errorBase) == 0 {
		return nil, Failed("XRender extension not present")
	}
	if xlib.XRenderQueryVersion(c.display, &r.major, &r.minor) == 0 {
		return nil, Failed("XRenderQueryVersion failed")
	}
	r.argb32 = xlib.XRenderFindStandardFormat(c.display, xlib.PictStandardARGB32) != 0
	return r, nil
}

// xiExt records the XInput2 probe. The library requires 2.3.
type xiExt struct {
	opcode    int32
	eventBase int32
	errorBase int32
	major     int32
	minor     int32
}

func probeXI(c *x11Context) (*xiExt, error) {
	x := &xiExt{}
	name := xlib.CString("XInputExtension")
	if xlib.XQueryExtension(c.display, name, &x.opcode, &x.eventBase, &x.errorBase) == 0 {
		return nil, Failed("XInputExtension not present")
	}
	x.major, x.minor = 2, 3
	if xlib.XIQueryVersion(c.display, &x.major, &x.minor) != xlib.Success {
		return nil, Failedf("server supports XInput %d.%d, need 2.3", x.major, x.minor)
	}
	if x.major < 2 || (x.major == 2 && x.minor < 3) {
		return nil, Failedf("server supports XInput %d.%d, need 2.3", x.major, x.minor)
	}
	if err := selectXIRawEvents(c, x); err != nil {
		return nil, err
	}
	return x, nil
}

// selectXIRawEvents asks for raw device events on the root window for
// all devices. Raw key presses feed auto-repeat detection; XI KeyPress
// events proper are not selected so Xutf8LookupString keeps working on
// core events.
func selectXIRawEvents(c *x11Context, x *xiExt) error {
	var mask [(xlib.XILastEvent + 7) / 8]byte
	for _, ev := range []int{
		xlib.XIRawKeyPress,
		xlib.XIRawKeyRelease,
		xlib.XIRawButtonPress,
		xlib.XIRawButtonRelease,
		xlib.XIRawMotion,
		xlib.XIRawTouchBegin,
		xlib.XIRawTouchUpdate,
		xlib.XIRawTouchEnd,
	} {
		xlib.XISetMask(mask[:], ev)
	}
	em := xlib.XIEventMask{
		DeviceID: xlib.XIAllDevices,
		MaskLen:  int32(len(mask)),
		Mask:     &mask[0],
	}
	return c.syncCatch(func() {
		xlib.XISelectEvents(c.display, c.root, &em, 1)
	})
}
