package windc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSwapIntervalValue(t *testing.T) {
	assert.Equal(t, int32(1), GLSwapIntervalVSync().intervalValue())
	assert.Equal(t, int32(0), GLSwapIntervalImmediate().intervalValue())
	assert.Equal(t, int32(-1), GLSwapIntervalLateTearing().intervalValue())
	assert.Equal(t, int32(2), GLSwapIntervalOf(2).intervalValue())
	assert.Equal(t, int32(-2), GLSwapIntervalOf(-2).intervalValue())
}

func TestDefaultGLPixelFormatSettings(t *testing.T) {
	s := DefaultGLPixelFormatSettings()
	assert.True(t, s.DoubleBuffer)
	assert.False(t, s.MsaaEnabled)
	assert.Equal(t, uint8(24), s.DepthBits)
	assert.Equal(t, uint8(8), s.StencilBits)
	assert.Equal(t, uint8(8), s.RedBits)
}

func TestGLVersionShorthands(t *testing.T) {
	v := GLDesktop(3, 2)
	assert.Equal(t, GLVariantDesktop, v.Variant)
	assert.Equal(t, uint8(3), v.Major)

	e := GLES(2, 0)
	assert.Equal(t, GLVariantES, e.Variant)
	assert.Equal(t, uint8(2), e.Major)
}
