//go:build linux || freebsd

package windc

import (
	"time"
	"unsafe"

	"github.com/lunarsen/windc/glx"
	"github.com/lunarsen/windc/xlib"
)

// x11GLPixelFormat is a chosen framebuffer configuration. Below GLX
// 1.3 only the visual is meaningful; from 1.3 on the FBConfig is the
// authoritative handle and the visual is derived from it.
type x11GLPixelFormat struct {
	ctx          *x11Context
	requested    GLPixelFormatSettings
	visualInfo   *xlib.VisualInfo
	fbConfig     glx.FBConfig
	usesFBConfig bool
}

func (p *x11GLPixelFormat) settings() *GLPixelFormatSettings {
	s := p.requested
	return &s
}

// genVisualAttribs builds a glXChooseVisual attribute list. Boolean
// keys are flags: present means true, absent means false.
func genVisualAttribs(s *GLPixelFormatSettings, multisample bool) []int32 {
	attribs := []int32{
		glx.RGBA,
		glx.RedSize, int32(s.RedBits),
		glx.GreenSize, int32(s.GreenBits),
		glx.BlueSize, int32(s.BlueBits),
		glx.AlphaSize, int32(s.AlphaBits),
		glx.DepthSize, int32(s.DepthBits),
		glx.StencilSize, int32(s.StencilBits),
		glx.AuxBuffers, int32(s.AuxBuffers),
		glx.AccumRedSize, int32(s.AccumRedBits),
		glx.AccumGreenSize, int32(s.AccumGreenBits),
		glx.AccumBlueSize, int32(s.AccumBlueBits),
		glx.AccumAlphaSize, int32(s.AccumAlphaBits),
	}
	if s.DoubleBuffer {
		attribs = append(attribs, glx.DoubleBuffer)
	}
	if s.Stereo {
		attribs = append(attribs, glx.Stereo)
	}
	if s.MsaaEnabled && multisample {
		attribs = append(attribs,
			glx.SampleBuffers, int32(s.Msaa.BufferCount),
			glx.Samples, int32(s.Msaa.SampleCount))
	}
	return append(attribs, 0)
}

// genFBConfigAttribs builds a glXChooseFBConfig attribute list. Every
// key is key/value, booleans included, closed by a 0 terminator.
func genFBConfigAttribs(s *GLPixelFormatSettings, multisample bool) []int32 {
	boolVal := func(b bool) int32 {
		if b {
			return 1
		}
		return 0
	}
	attribs := []int32{
		glx.XRenderable, 1,
		glx.DrawableType, glx.WindowBit,
		glx.RenderType, glx.RGBABit,
		glx.RedSize, int32(s.RedBits),
		glx.GreenSize, int32(s.GreenBits),
		glx.BlueSize, int32(s.BlueBits),
		glx.AlphaSize, int32(s.AlphaBits),
		glx.DepthSize, int32(s.DepthBits),
		glx.StencilSize, int32(s.StencilBits),
		glx.DoubleBuffer, boolVal(s.DoubleBuffer),
		glx.Stereo, boolVal(s.Stereo),
		glx.AuxBuffers, int32(s.AuxBuffers),
		glx.AccumRedSize, int32(s.AccumRedBits),
		glx.AccumGreenSize, int32(s.AccumGreenBits),
		glx.AccumBlueSize, int32(s.AccumBlueBits),
		glx.AccumAlphaSize, int32(s.AccumAlphaBits),
	}
	if s.MsaaEnabled && multisample {
		attribs = append(attribs,
			glx.SampleBuffers, int32(s.Msaa.BufferCount),
			glx.Samples, int32(s.Msaa.SampleCount))
	}
	return append(attribs, 0)
}

// fbconfigTriple is the part of a candidate config that
// glXChooseFBConfig's own sort ignores or gets wrong.
type fbconfigTriple struct {
	sampleBuffers int32
	samples       int32
	doubleBuffer  bool
}

// chooseFBConfigIndex returns the first candidate matching the request
// exactly, or 0 when none does.
func chooseFBConfigIndex(candidates []fbconfigTriple, want fbconfigTriple) int {
	for i, c := range candidates {
		if c == want {
			return i
		}
	}
	return 0
}

func (c *x11Context) chooseGLPixelFormat(settings *GLPixelFormatSettings) (osGLPixelFormat, error) {
	if c.glxErr != nil {
		return nil, c.glxErr
	}
	g := c.glx

	if !g.atLeast(1, 3) {
		attribs := genVisualAttribs(settings, g.arbMultisample)
		vi := glx.ChooseVisual(c.display, c.screen, &attribs[0])
		if vi == 0 {
			return nil, Failed("glXChooseVisual found no matching visual")
		}
		return &x11GLPixelFormat{
			ctx:        c,
			requested:  *settings,
			visualInfo: (*xlib.VisualInfo)(unsafe.Pointer(vi)),
		}, nil
	}

	attribs := genFBConfigAttribs(settings, g.arbMultisample)
	var count int32
	configs := glx.ChooseFBConfig(c.display, c.screen, &attribs[0], &count)
	if configs == 0 || count == 0 {
		return nil, Failed("glXChooseFBConfig found no matching config")
	}
	defer xlib.XFree(configs)

	candidates := make([]fbconfigTriple, count)
	for i := range candidates {
		cfg := glx.FBConfigAt(configs, i)
		var sb, samples, db int32
		glx.GetFBConfigAttrib(c.display, cfg, glx.SampleBuffers, &sb)
		glx.GetFBConfigAttrib(c.display, cfg, glx.Samples, &samples)
		glx.GetFBConfigAttrib(c.display, cfg, glx.DoubleBuffer, &db)
		candidates[i] = fbconfigTriple{sampleBuffers: sb, samples: samples, doubleBuffer: db != 0}
	}
	want := fbconfigTriple{doubleBuffer: settings.DoubleBuffer}
	if settings.MsaaEnabled && g.arbMultisample {
		want.sampleBuffers = int32(settings.Msaa.BufferCount)
		want.samples = int32(settings.Msaa.SampleCount)
	}
	chosen := glx.FBConfigAt(configs, chooseFBConfigIndex(candidates, want))

	vi := glx.GetVisualFromFBConfig(c.display, chosen)
	if vi == 0 {
		return nil, Failed("chosen FBConfig has no associated visual")
	}
	return &x11GLPixelFormat{
		ctx:          c,
		requested:    *settings,
		visualInfo:   (*xlib.VisualInfo)(unsafe.Pointer(vi)),
		fbConfig:     chosen,
		usesFBConfig: true,
	}, nil
}

// arbExtensions is the subset of the GLX probe that context attribute
// generation depends on.
type arbExtensions struct {
	profile    bool
	robustness bool
	esProfile  bool
	es2Profile bool
}

// genARBAttribs builds the glXCreateContextAttribsARB attribute list.
// The same keys and values are used by WGL's ARB counterpart.
func genARBAttribs(settings *GLContextSettings, ext arbExtensions) ([]int32, error) {
	version := settings.Version.Or(GLDesktop(3, 0))

	var flags int32
	if settings.Debug {
		flags |= glx.ContextDebugBitARB
	}
	if settings.ForwardCompatible {
		flags |= glx.ContextForwardCompatibleBitARB
	}
	if settings.RobustAccess.IsKnown() {
		if !ext.robustness {
			return nil, Unsupported("missing extension GLX_ARB_create_context_robustness")
		}
		flags |= glx.ContextRobustAccessBitARB
	}

	attribs := []int32{
		glx.ContextMajorVersionARB, int32(version.Major),
		glx.ContextMinorVersionARB, int32(version.Minor),
		glx.ContextFlagsARB, flags,
	}

	switch version.Variant {
	case GLVariantES:
		switch {
		case ext.esProfile:
		case ext.es2Profile && version.Major == 2:
		default:
			return nil, Unsupported("missing extension GLX_EXT_create_context_es_profile")
		}
		attribs = append(attribs, glx.ContextProfileMaskARB, glx.ContextESProfileBitEXT)
	default:
		if ext.profile {
			mask := int32(glx.ContextCompatibilityProfileBitARB)
			if p, ok := settings.Profile.Value(); ok && p == GLProfileCore {
				mask = glx.ContextCoreProfileBitARB
			}
			attribs = append(attribs, glx.ContextProfileMaskARB, mask)
		}
	}

	if strategy, ok := settings.RobustAccess.Value(); ok {
		value := int32(glx.NoResetNotificationARB)
		if strategy == GLResetLoseContext {
			value = glx.LoseContextOnResetARB
		}
		attribs = append(attribs, glx.ContextResetNotificationStrategyARB, value)
	}

	return append(attribs, 0), nil
}

// x11GLContext wraps one GLXContext.
type x11GLContext struct {
	ctx    *x11Context
	handle glx.Context
}

func (g *x11GLContext) procAddress(name string) uintptr {
	return glx.ProcAddress(name)
}

func (g *x11GLContext) destroy() error {
	if g.handle != 0 {
		glx.DestroyContext(g.ctx.display, g.handle)
		g.handle = 0
	}
	return nil
}

func (c *x11Context) createGLContext(pf osGLPixelFormat, settings *GLContextSettings) (osGLContext, error) {
	if c.glxErr != nil {
		return nil, c.glxErr
	}
	xpf, ok := pf.(*x11GLPixelFormat)
	if !ok || xpf.ctx != c {
		return nil, InvalidArgument("pixel format belongs to another context")
	}
	g := c.glx

	var handle glx.Context
	var createErr error
	err := c.syncCatch(func() {
		switch {
		case !g.atLeast(1, 3):
			handle = glx.CreateContext(c.display, uintptr(unsafe.Pointer(xpf.visualInfo)), 0, 1)
		case !g.atLeast(1, 4) || !g.arbCreateContext || g.createContextAttribsARB == nil:
			handle = glx.CreateNewContext(c.display, xpf.fbConfig, glx.RGBAType, 0, 1)
		default:
			var attribs []int32
			attribs, createErr = genARBAttribs(settings, arbExtensions{
				profile:    g.arbCreateContextProfile,
				robustness: g.arbCreateContextRobustness,
				esProfile:  g.extCreateContextESProfile,
				es2Profile: g.extCreateContextES2Profile,
			})
			if createErr != nil {
				return
			}
			handle = g.createContextAttribsARB(c.display, xpf.fbConfig, 0, 1, &attribs[0])
		}
	})
	if createErr != nil {
		return nil, createErr
	}
	if err != nil {
		return nil, err
	}
	if handle == 0 {
		return nil, Failed("GLX context creation returned a null context")
	}
	return &x11GLContext{ctx: c, handle: handle}, nil
}

// glxDrawable is the drawable buffer swaps and makes current target:
// the GLXWindow when one exists, the plain window otherwise.
func (w *x11Window) glxDrawable() glx.Drawable {
	if w.glxWindow != 0 {
		return glx.Drawable(w.glxWindow)
	}
	return glx.Drawable(w.win)
}

func (w *x11Window) makeGLCurrent(ctx osGLContext) error {
	c := w.ctx
	if c.glxErr != nil {
		return c.glxErr
	}
	if ctx == nil {
		w.currentCtx = nil
		if glx.MakeCurrent(c.display, 0, 0) == 0 {
			return Failed("glXMakeCurrent(None) failed")
		}
		return nil
	}
	gc, ok := ctx.(*x11GLContext)
	if !ok || gc.ctx != c {
		return InvalidArgument("GL context belongs to another context")
	}
	var status int32
	if c.glx.atLeast(1, 3) && w.glxWindow != 0 {
		d := glx.Drawable(w.glxWindow)
		status = glx.MakeContextCurrent(c.display, d, d, gc.handle)
	} else {
		status = glx.MakeCurrent(c.display, glx.Drawable(w.win), gc.handle)
	}
	if status == 0 {
		return Failed("glXMakeCurrent failed")
	}
	w.currentCtx = gc
	return nil
}

func (w *x11Window) presentGL() error {
	c := w.ctx
	if c.glxErr != nil {
		return c.glxErr
	}
	glx.SwapBuffers(c.display, w.glxDrawable())
	if w.fpsLimit > 0 {
		w.limitFrameRate()
	}
	return nil
}

// limitFrameRate enforces the software FPS cap with a fixed time step.
func (w *x11Window) limitFrameRate() {
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

func (w *x11Window) setGLSwapInterval(interval GLSwapInterval) error {
	c := w.ctx
	if c.glxErr != nil {
		return c.glxErr
	}
	g := c.glx

	if interval.Kind == GLSwapLimitFps {
		if interval.Fps <= 0 {
			return InvalidArgument("FPS limit must be positive")
		}
		w.fpsLimit = interval.Fps
		return nil
	}
	w.fpsLimit = 0

	value := interval.intervalValue()
	if value < 0 && !g.extSwapControlTear {
		return Failed("missing extension GLX_EXT_swap_control_tear")
	}
	switch {
	case g.extSwapControl && g.swapIntervalEXT != nil && w.glxWindow != 0:
		g.swapIntervalEXT(c.display, glx.Drawable(w.glxWindow), value)
	case g.mesaSwapControl && g.swapIntervalMESA != nil:
		if g.swapIntervalMESA(value) != 0 {
			return Failed("glXSwapIntervalMESA rejected the interval")
		}
	case g.sgiSwapControl && g.swapIntervalSGI != nil:
		if g.swapIntervalSGI(value) != 0 {
			return Failed("glXSwapIntervalSGI rejected the interval")
		}
	default:
		return Failed("no swap control extension available")
	}
	return nil
}
