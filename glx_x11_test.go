//go:build linux || freebsd

package windc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarsen/windc/glx"
)

func TestChooseFBConfigIndex(t *testing.T) {
	candidates := []fbconfigTriple{
		{sampleBuffers: 0, samples: 0, doubleBuffer: true},
		{sampleBuffers: 1, samples: 4, doubleBuffer: true},
		{sampleBuffers: 1, samples: 4, doubleBuffer: false},
	}

	idx := chooseFBConfigIndex(candidates, fbconfigTriple{sampleBuffers: 1, samples: 4, doubleBuffer: true})
	assert.Equal(t, 1, idx)

	// No exact match falls back to the server's first choice.
	idx = chooseFBConfigIndex(candidates, fbconfigTriple{sampleBuffers: 2, samples: 8, doubleBuffer: true})
	assert.Equal(t, 0, idx)
}

func TestGenARBAttribsCoreDebugForward(t *testing.T) {
	settings := &GLContextSettings{
		Version:           Manual(GLDesktop(3, 2)),
		Profile:           Manual(GLProfileCore),
		Debug:             true,
		ForwardCompatible: true,
	}
	attribs, err := genARBAttribs(settings, arbExtensions{profile: true})
	require.NoError(t, err)
	assert.Equal(t, []int32{
		glx.ContextMajorVersionARB, 3,
		glx.ContextMinorVersionARB, 2,
		glx.ContextFlagsARB, glx.ContextDebugBitARB | glx.ContextForwardCompatibleBitARB,
		glx.ContextProfileMaskARB, glx.ContextCoreProfileBitARB,
		0,
	}, attribs)
}

func TestGenARBAttribsDefaults(t *testing.T) {
	// Auto version means desktop 3.0; without the profile extension no
	// profile mask is emitted.
	attribs, err := genARBAttribs(&GLContextSettings{}, arbExtensions{})
	require.NoError(t, err)
	assert.Equal(t, []int32{
		glx.ContextMajorVersionARB, 3,
		glx.ContextMinorVersionARB, 0,
		glx.ContextFlagsARB, 0,
		0,
	}, attribs)
}

func TestGenARBAttribsRobustnessMissing(t *testing.T) {
	settings := &GLContextSettings{
		RobustAccess: Known(GLResetLoseContext),
	}
	_, err := genARBAttribs(settings, arbExtensions{})
	assert.Equal(t, Unsupported("missing extension GLX_ARB_create_context_robustness"), err)
}

func TestGenARBAttribsRobustnessStrategy(t *testing.T) {
	settings := &GLContextSettings{
		RobustAccess: Known(GLResetLoseContext),
	}
	attribs, err := genARBAttribs(settings, arbExtensions{robustness: true})
	require.NoError(t, err)
	assert.Contains(t, attribs, int32(glx.ContextResetNotificationStrategyARB))
	assert.Contains(t, attribs, int32(glx.LoseContextOnResetARB))
	assert.Contains(t, attribs, int32(glx.ContextRobustAccessBitARB))
}

func TestGenARBAttribsESProfile(t *testing.T) {
	settings := &GLContextSettings{Version: Manual(GLES(3, 0))}

	_, err := genARBAttribs(settings, arbExtensions{})
	assert.Equal(t, Unsupported("missing extension GLX_EXT_create_context_es_profile"), err)

	// The es2 variant only covers major version 2.
	_, err = genARBAttribs(settings, arbExtensions{es2Profile: true})
	assert.Error(t, err)

	settings.Version = Manual(GLES(2, 0))
	attribs, err := genARBAttribs(settings, arbExtensions{es2Profile: true})
	require.NoError(t, err)
	assert.Contains(t, attribs, int32(glx.ContextESProfileBitEXT))
}

func TestGenPixelFormatAttribsTerminated(t *testing.T) {
	s := DefaultGLPixelFormatSettings()
	s.MsaaEnabled = true
	s.Msaa = GLMsaa{BufferCount: 1, SampleCount: 4}

	visual := genVisualAttribs(&s, true)
	assert.Equal(t, int32(0), visual[len(visual)-1])

	fbc := genFBConfigAttribs(&s, true)
	assert.Equal(t, int32(0), fbc[len(fbc)-1])
	assert.Contains(t, fbc, int32(glx.Samples))

	// Without the multisample extension the MSAA keys are left out.
	fbc = genFBConfigAttribs(&s, false)
	assert.NotContains(t, fbc, int32(glx.Samples))
}

func TestSetGLSwapIntervalDispatch(t *testing.T) {
	var got []int32
	c := &x11Context{
		glx: &glxExt{
			mesaSwapControl: true,
			swapIntervalMESA: func(interval int32) int32 {
				got = append(got, interval)
				return 0
			},
		},
	}
	w := &x11Window{ctx: c}

	require.NoError(t, w.setGLSwapInterval(GLSwapIntervalVSync()))
	assert.Equal(t, []int32{1}, got)

	// Late tearing needs GLX_EXT_swap_control_tear regardless of which
	// extension would carry the value.
	err := w.setGLSwapInterval(GLSwapIntervalLateTearing())
	assert.Equal(t, Failed("missing extension GLX_EXT_swap_control_tear"), err)

	c.glx.extSwapControlTear = true
	require.NoError(t, w.setGLSwapInterval(GLSwapIntervalLateTearing()))
	assert.Equal(t, []int32{1, -1}, got)
}

func TestSetGLSwapIntervalLimitFps(t *testing.T) {
	c := &x11Context{glx: &glxExt{}}
	w := &x11Window{ctx: c}

	err := w.setGLSwapInterval(GLSwapIntervalLimitFps(0))
	assert.Equal(t, InvalidArgument("FPS limit must be positive"), err)

	// The limiter never touches the swap extensions, so it works with
	// none present.
	require.NoError(t, w.setGLSwapInterval(GLSwapIntervalLimitFps(60)))
	assert.Equal(t, 60.0, w.fpsLimit)

	// Switching to a hardware interval clears the limiter first.
	err = w.setGLSwapInterval(GLSwapIntervalVSync())
	assert.Equal(t, Failed("no swap control extension available"), err)
	assert.Equal(t, 0.0, w.fpsLimit)
}
