//go:build windows

package windc

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelFormatDescriptorSize(t *testing.T) {
	assert.Equal(t, uintptr(40), unsafe.Sizeof(pixelFormatDescriptor{}))
}

func TestGenWGLContextAttribsCoreDebugForward(t *testing.T) {
	settings := &GLContextSettings{
		Version:           Manual(GLDesktop(3, 2)),
		Profile:           Manual(GLProfileCore),
		Debug:             true,
		ForwardCompatible: true,
	}
	attribs, err := genWGLContextAttribs(settings, &wglCaps{profile: true})
	require.NoError(t, err)
	assert.Equal(t, []int32{
		wglContextMajorVersionARB, 3,
		wglContextMinorVersionARB, 2,
		wglContextFlagsARB, wglContextDebugBitARB | wglContextForwardCompatibleBitARB,
		wglContextProfileMaskARB, wglContextCoreProfileBitARB,
		0,
	}, attribs)
}

func TestGenWGLContextAttribsRobustnessMissing(t *testing.T) {
	settings := &GLContextSettings{RobustAccess: Known(GLResetNoNotification)}
	_, err := genWGLContextAttribs(settings, &wglCaps{})
	assert.Equal(t, Unsupported("missing extension WGL_ARB_create_context_robustness"), err)
}

func TestGenWGLPixelFormatAttribs(t *testing.T) {
	s := DefaultGLPixelFormatSettings()
	attribs := genWGLPixelFormatAttribs(&s, false)
	assert.Equal(t, int32(0), attribs[len(attribs)-1])
	assert.Contains(t, attribs, int32(wglDoubleBufferARB))
	assert.NotContains(t, attribs, int32(wglSamplesARB))

	s.MsaaEnabled = true
	s.Msaa = GLMsaa{BufferCount: 1, SampleCount: 4}
	attribs = genWGLPixelFormatAttribs(&s, true)
	assert.Contains(t, attribs, int32(wglSamplesARB))
}

func TestWin32CursorShape(t *testing.T) {
	assert.Equal(t, uintptr(idcArrow), win32CursorShape(SystemCursorArrow))
	assert.Equal(t, uintptr(idcNo), win32CursorShape(SystemCursorForbidden))
	assert.Equal(t, uintptr(idcArrow), win32CursorShape(SystemCursor(99)))
}
